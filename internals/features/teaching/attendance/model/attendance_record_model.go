// file: internals/features/teaching/attendance/model/attendance_record_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
	AttendanceLeave   = "Leave"
)

var AttendanceStatuses = []string{AttendancePresent, AttendanceAbsent, AttendanceLeave}

/* =======================================================
   AttendanceRecordModel — maps to table attendance_records

   At most one record per (student, session); writers go
   through an ON CONFLICT upsert on uq_attendance_pair.
   ======================================================= */

type AttendanceRecordModel struct {
	AttendanceRecordID uuid.UUID `json:"attendance_record_id" gorm:"type:uuid;primaryKey;column:attendance_record_id"`

	AttendanceRecordStudentID uuid.UUID `json:"attendance_record_student_id" gorm:"type:uuid;not null;uniqueIndex:uq_attendance_pair;column:attendance_record_student_id"`
	AttendanceRecordSessionID uuid.UUID `json:"attendance_record_session_id" gorm:"type:uuid;not null;uniqueIndex:uq_attendance_pair;index;column:attendance_record_session_id"`

	AttendanceRecordStatus string `json:"attendance_record_status" gorm:"type:varchar(7);not null;column:attendance_record_status"` // Present | Absent | Leave

	AttendanceRecordRecordedAt time.Time `json:"attendance_record_recorded_at" gorm:"column:attendance_record_recorded_at;not null;autoCreateTime"`
}

func (AttendanceRecordModel) TableName() string {
	return "attendance_records"
}

func (m *AttendanceRecordModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceRecordID == uuid.Nil {
		m.AttendanceRecordID = uuid.New()
	}
	return nil
}
