// file: internals/features/teaching/attendance/dto/attendance_dto.go
package dto

import (
	"github.com/google/uuid"
)

// RosterRow is one line of the session roster: every enrolled student,
// with the stored status where one exists. Recorded says whether the
// status came from the table or is the display default.
type RosterRow struct {
	StudentID         uuid.UUID `json:"student_id"`
	StudentRollNumber string    `json:"student_roll_number"`
	StudentName       string    `json:"student_name"`
	Status            string    `json:"status"`
	Recorded          bool      `json:"recorded"`
}

type MarkAttendanceItem struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=Present Absent Leave"`
}

// MarkAttendanceRequest carries partial updates; rows not listed keep
// whatever they had.
type MarkAttendanceRequest struct {
	Records []MarkAttendanceItem `json:"records" validate:"required,min=1,dive"`
}

// ReplaceAttendanceRequest swaps the full attendance sheet of a session.
type ReplaceAttendanceRequest struct {
	Records []MarkAttendanceItem `json:"records" validate:"required,dive"`
}

type AttendanceWriteResult struct {
	SessionID uuid.UUID `json:"session_id"`
	Written   int       `json:"written"`
	Status    string    `json:"session_status"`
}
