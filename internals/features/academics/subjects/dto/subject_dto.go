// file: internals/features/academics/subjects/dto/subject_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"kampusku_backend/internals/features/academics/subjects/model"
)

type CreateSubjectRequest struct {
	SubjectCourseCode   string  `json:"subject_course_code" validate:"required,min=2,max=20"`
	SubjectCourseName   string  `json:"subject_course_name" validate:"required,min=2,max=150"`
	SubjectShortName    string  `json:"subject_short_name" validate:"required,min=1,max=30"`
	SubjectType         *string `json:"subject_type,omitempty" validate:"omitempty,oneof=theory lab elective"`
	SubjectCredits      int     `json:"subject_credits" validate:"min=0,max=10"`
	SubjectHoursPerWeek int     `json:"subject_hours_per_week" validate:"min=0,max=40"`
	SubjectIsActive     *bool   `json:"subject_is_active,omitempty"`
}

func (r *CreateSubjectRequest) Normalize() {
	r.SubjectCourseCode = strings.ToUpper(strings.TrimSpace(r.SubjectCourseCode))
	r.SubjectCourseName = strings.TrimSpace(r.SubjectCourseName)
	r.SubjectShortName = strings.TrimSpace(r.SubjectShortName)
}

type UpdateSubjectRequest struct {
	SubjectCourseName   *string `json:"subject_course_name,omitempty" validate:"omitempty,min=2,max=150"`
	SubjectShortName    *string `json:"subject_short_name,omitempty" validate:"omitempty,min=1,max=30"`
	SubjectType         *string `json:"subject_type,omitempty" validate:"omitempty,oneof=theory lab elective"`
	SubjectCredits      *int    `json:"subject_credits,omitempty" validate:"omitempty,min=0,max=10"`
	SubjectHoursPerWeek *int    `json:"subject_hours_per_week,omitempty" validate:"omitempty,min=0,max=40"`
	SubjectIsActive     *bool   `json:"subject_is_active,omitempty"`
}

func (r *UpdateSubjectRequest) BuildUpdateMap() map[string]interface{} {
	up := map[string]interface{}{}
	if r.SubjectCourseName != nil {
		up["subject_course_name"] = strings.TrimSpace(*r.SubjectCourseName)
	}
	if r.SubjectShortName != nil {
		up["subject_short_name"] = strings.TrimSpace(*r.SubjectShortName)
	}
	if r.SubjectType != nil {
		up["subject_type"] = r.SubjectType
	}
	if r.SubjectCredits != nil {
		up["subject_credits"] = *r.SubjectCredits
	}
	if r.SubjectHoursPerWeek != nil {
		up["subject_hours_per_week"] = *r.SubjectHoursPerWeek
	}
	if r.SubjectIsActive != nil {
		up["subject_is_active"] = *r.SubjectIsActive
	}
	return up
}

type ListSubjectsQuery struct {
	Search   string `query:"search"`
	IsActive *bool  `query:"is_active"`
}

type SubjectResponse struct {
	SubjectID           uuid.UUID `json:"subject_id"`
	SubjectCourseCode   string    `json:"subject_course_code"`
	SubjectCourseName   string    `json:"subject_course_name"`
	SubjectShortName    string    `json:"subject_short_name"`
	SubjectType         *string   `json:"subject_type,omitempty"`
	SubjectCredits      int       `json:"subject_credits"`
	SubjectHoursPerWeek int       `json:"subject_hours_per_week"`
	SubjectIsActive     bool      `json:"subject_is_active"`
	SubjectCreatedAt    time.Time `json:"subject_created_at"`
	SubjectUpdatedAt    time.Time `json:"subject_updated_at"`
}

func ToSubjectResponse(m model.SubjectModel) SubjectResponse {
	return SubjectResponse{
		SubjectID:           m.SubjectID,
		SubjectCourseCode:   m.SubjectCourseCode,
		SubjectCourseName:   m.SubjectCourseName,
		SubjectShortName:    m.SubjectShortName,
		SubjectType:         m.SubjectType,
		SubjectCredits:      m.SubjectCredits,
		SubjectHoursPerWeek: m.SubjectHoursPerWeek,
		SubjectIsActive:     m.SubjectIsActive,
		SubjectCreatedAt:    m.SubjectCreatedAt,
		SubjectUpdatedAt:    m.SubjectUpdatedAt,
	}
}
