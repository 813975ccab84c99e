// file: internals/features/reports/dto/report_dto.go
package dto

import (
	"github.com/google/uuid"

	"kampusku_backend/internals/features/teaching/classes/service"
)

// AttendanceReportRow aggregates one student's attendance across every
// session of a class. Percentage counts Present over recorded sessions.
type AttendanceReportRow struct {
	StudentID         uuid.UUID `json:"student_id"`
	StudentRollNumber string    `json:"student_roll_number"`
	StudentName       string    `json:"student_name"`
	Present           int       `json:"present"`
	Absent            int       `json:"absent"`
	Leave             int       `json:"leave"`
	Recorded          int       `json:"recorded"`
	Percentage        float64   `json:"percentage"`
}

type AttendanceReport struct {
	Class         *service.ClassDetail  `json:"class,omitempty"`
	TotalSessions int64                 `json:"total_sessions"`
	Rows          []AttendanceReportRow `json:"rows"`
}
