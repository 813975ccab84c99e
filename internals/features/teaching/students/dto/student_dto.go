// file: internals/features/teaching/students/dto/student_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"kampusku_backend/internals/features/teaching/students/model"
)

type CreateStudentRequest struct {
	StudentRollNumber string `json:"student_roll_number" validate:"required,min=1,max=20"`
	StudentName       string `json:"student_name" validate:"required,min=1,max=100"`
	StudentEmail      string `json:"student_email" validate:"required,email"`
	StudentBatchYear  int    `json:"student_batch_year" validate:"required,min=2000,max=2100"`
}

func (r *CreateStudentRequest) Normalize() {
	r.StudentRollNumber = strings.ToUpper(strings.TrimSpace(r.StudentRollNumber))
	r.StudentName = strings.TrimSpace(r.StudentName)
	r.StudentEmail = strings.ToLower(strings.TrimSpace(r.StudentEmail))
}

type UpdateStudentRequest struct {
	StudentName      *string `json:"student_name,omitempty" validate:"omitempty,min=1,max=100"`
	StudentEmail     *string `json:"student_email,omitempty" validate:"omitempty,email"`
	StudentBatchYear *int    `json:"student_batch_year,omitempty" validate:"omitempty,min=2000,max=2100"`
	StudentIsActive  *bool   `json:"student_is_active,omitempty"`
}

func (r *UpdateStudentRequest) BuildUpdateMap() map[string]interface{} {
	up := map[string]interface{}{}
	if r.StudentName != nil {
		up["student_name"] = strings.TrimSpace(*r.StudentName)
	}
	if r.StudentEmail != nil {
		up["student_email"] = strings.ToLower(strings.TrimSpace(*r.StudentEmail))
	}
	if r.StudentBatchYear != nil {
		up["student_batch_year"] = *r.StudentBatchYear
	}
	if r.StudentIsActive != nil {
		up["student_is_active"] = *r.StudentIsActive
	}
	return up
}

type StudentResponse struct {
	StudentID         uuid.UUID `json:"student_id"`
	StudentRollNumber string    `json:"student_roll_number"`
	StudentName       string    `json:"student_name"`
	StudentEmail      string    `json:"student_email"`
	StudentBatchYear  int       `json:"student_batch_year"`
	StudentIsActive   bool      `json:"student_is_active"`
	StudentCreatedAt  time.Time `json:"student_created_at"`
}

func ToStudentResponse(m model.StudentModel) StudentResponse {
	return StudentResponse{
		StudentID:         m.StudentID,
		StudentRollNumber: m.StudentRollNumber,
		StudentName:       m.StudentName,
		StudentEmail:      m.StudentEmail,
		StudentBatchYear:  m.StudentBatchYear,
		StudentIsActive:   m.StudentIsActive,
		StudentCreatedAt:  m.StudentCreatedAt,
	}
}
