// file: internals/features/teaching/sessions/model/class_session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionStatus = string

const (
	SessionScheduled   SessionStatus = "Scheduled"
	SessionCompleted   SessionStatus = "Completed"
	SessionCancelled   SessionStatus = "Cancelled"
	SessionRescheduled SessionStatus = "Rescheduled"
)

var SessionStatuses = []string{
	SessionScheduled, SessionCompleted, SessionCancelled, SessionRescheduled,
}

/* =======================================================
   ClassSessionModel — maps to table class_sessions

   One dated occurrence of a teacher class. Attendance is
   recorded against a session; deleting a session takes its
   attendance records with it.
   ======================================================= */

type ClassSessionModel struct {
	ClassSessionID uuid.UUID `json:"class_session_id" gorm:"type:uuid;primaryKey;column:class_session_id"`

	ClassSessionTeacherClassID uuid.UUID `json:"class_session_teacher_class_id" gorm:"type:uuid;not null;index;column:class_session_teacher_class_id"`

	ClassSessionDate      time.Time `json:"class_session_date" gorm:"type:date;not null;column:class_session_date"`
	ClassSessionStartTime string    `json:"class_session_start_time" gorm:"type:varchar(5);not null;column:class_session_start_time"`
	ClassSessionEndTime   *string   `json:"class_session_end_time,omitempty" gorm:"type:varchar(5);column:class_session_end_time"`

	ClassSessionStatus SessionStatus `json:"class_session_status" gorm:"type:varchar(12);not null;default:'Scheduled';column:class_session_status"`
	ClassSessionNotes  *string       `json:"class_session_notes,omitempty" gorm:"type:text;column:class_session_notes"`

	ClassSessionCreatedAt time.Time `json:"class_session_created_at" gorm:"column:class_session_created_at;not null;autoCreateTime"`
	ClassSessionUpdatedAt time.Time `json:"class_session_updated_at" gorm:"column:class_session_updated_at;not null;autoUpdateTime"`
}

func (ClassSessionModel) TableName() string {
	return "class_sessions"
}

func (m *ClassSessionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassSessionID == uuid.Nil {
		m.ClassSessionID = uuid.New()
	}
	return nil
}
