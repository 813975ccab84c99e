// file: internals/features/teaching/classes/dto/teacher_class_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"kampusku_backend/internals/features/teaching/classes/model"
	"kampusku_backend/internals/features/teaching/classes/service"
)

type CreateTeacherClassRequest struct {
	AllocationType   string     `json:"allocation_type" validate:"required,oneof=class lab"`
	TimetableEntryID *uuid.UUID `json:"timetable_entry_id,omitempty"`
	LabEntryID       *uuid.UUID `json:"lab_entry_id,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
}

type UpdateTeacherClassRequest struct {
	IsActive *bool   `json:"is_active,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

type EnrollStudentRequest struct {
	StudentID  *uuid.UUID `json:"student_id,omitempty"`
	RollNumber string     `json:"roll_number,omitempty"`
}

type TeacherClassResponse struct {
	TeacherClassID   uuid.UUID  `json:"teacher_class_id"`
	TeacherID        uuid.UUID  `json:"teacher_id"`
	AllocationType   string     `json:"allocation_type"`
	TimetableEntryID *uuid.UUID `json:"timetable_entry_id,omitempty"`
	LabEntryID       *uuid.UUID `json:"lab_entry_id,omitempty"`
	AssignedAt       time.Time  `json:"assigned_at"`
	IsActive         bool       `json:"is_active"`
	Notes            *string    `json:"notes,omitempty"`

	Detail *service.ClassDetail `json:"detail,omitempty"`
}

func ToTeacherClassResponse(m model.TeacherClassModel, detail *service.ClassDetail) TeacherClassResponse {
	return TeacherClassResponse{
		TeacherClassID:   m.TeacherClassID,
		TeacherID:        m.TeacherClassTeacherID,
		AllocationType:   m.TeacherClassAllocationType,
		TimetableEntryID: m.TeacherClassTimetableEntryID,
		LabEntryID:       m.TeacherClassLabEntryID,
		AssignedAt:       m.TeacherClassAssignedAt,
		IsActive:         m.TeacherClassIsActive,
		Notes:            m.TeacherClassNotes,
		Detail:           detail,
	}
}
