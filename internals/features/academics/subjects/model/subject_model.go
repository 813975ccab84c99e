// file: internals/features/academics/subjects/model/subject_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =======================================================
   SubjectModel — maps to table subjects
   ======================================================= */

type SubjectModel struct {
	SubjectID uuid.UUID `json:"subject_id" gorm:"type:uuid;primaryKey;column:subject_id"`

	SubjectCourseCode string  `json:"subject_course_code" gorm:"type:varchar(20);not null;uniqueIndex;column:subject_course_code"`
	SubjectCourseName string  `json:"subject_course_name" gorm:"type:varchar(150);not null;column:subject_course_name"`
	SubjectShortName  string  `json:"subject_short_name" gorm:"type:varchar(30);not null;column:subject_short_name"`
	SubjectType       *string `json:"subject_type,omitempty" gorm:"type:varchar(30);column:subject_type"` // theory | lab | elective

	SubjectCredits      int `json:"subject_credits" gorm:"not null;default:0;column:subject_credits"`
	SubjectHoursPerWeek int `json:"subject_hours_per_week" gorm:"not null;default:0;column:subject_hours_per_week"`

	SubjectIsActive bool `json:"subject_is_active" gorm:"not null;default:true;column:subject_is_active"`

	SubjectCreatedAt time.Time      `json:"subject_created_at" gorm:"column:subject_created_at;not null;autoCreateTime"`
	SubjectUpdatedAt time.Time      `json:"subject_updated_at" gorm:"column:subject_updated_at;not null;autoUpdateTime"`
	SubjectDeletedAt gorm.DeletedAt `json:"subject_deleted_at" gorm:"column:subject_deleted_at;index"`
}

func (SubjectModel) TableName() string {
	return "subjects"
}

func (m *SubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubjectID == uuid.Nil {
		m.SubjectID = uuid.New()
	}
	return nil
}
