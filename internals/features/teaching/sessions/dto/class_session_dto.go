// file: internals/features/teaching/sessions/dto/class_session_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"kampusku_backend/internals/features/teaching/classes/service"
	"kampusku_backend/internals/features/teaching/sessions/model"
)

type CreateClassSessionRequest struct {
	TeacherClassID uuid.UUID `json:"teacher_class_id" validate:"required"`
	Date           string    `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime      string    `json:"start_time" validate:"required,len=5"`
	EndTime        *string   `json:"end_time,omitempty" validate:"omitempty,len=5"`
	Notes          *string   `json:"notes,omitempty"`
}

type UpdateClassSessionRequest struct {
	Date      *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime *string `json:"start_time,omitempty" validate:"omitempty,len=5"`
	EndTime   *string `json:"end_time,omitempty" validate:"omitempty,len=5"`
	Status    *string `json:"status,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

func (r *UpdateClassSessionRequest) BuildUpdateMap() map[string]interface{} {
	up := map[string]interface{}{}
	if r.Date != nil {
		if d, err := time.Parse("2006-01-02", *r.Date); err == nil {
			up["class_session_date"] = d
		}
	}
	if r.StartTime != nil {
		up["class_session_start_time"] = *r.StartTime
	}
	if r.EndTime != nil {
		up["class_session_end_time"] = *r.EndTime
	}
	if r.Status != nil {
		up["class_session_status"] = *r.Status
	}
	if r.Notes != nil {
		up["class_session_notes"] = r.Notes
	}
	return up
}

type ClassSessionResponse struct {
	ClassSessionID uuid.UUID `json:"class_session_id"`
	TeacherClassID uuid.UUID `json:"teacher_class_id"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	EndTime        *string   `json:"end_time,omitempty"`
	Status         string    `json:"status"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`

	Class *service.ClassDetail `json:"class,omitempty"`
}

func ToClassSessionResponse(m model.ClassSessionModel, detail *service.ClassDetail) ClassSessionResponse {
	return ClassSessionResponse{
		ClassSessionID: m.ClassSessionID,
		TeacherClassID: m.ClassSessionTeacherClassID,
		Date:           m.ClassSessionDate.Format("2006-01-02"),
		StartTime:      m.ClassSessionStartTime,
		EndTime:        m.ClassSessionEndTime,
		Status:         m.ClassSessionStatus,
		Notes:          m.ClassSessionNotes,
		CreatedAt:      m.ClassSessionCreatedAt,
		Class:          detail,
	}
}
