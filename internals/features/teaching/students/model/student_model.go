// file: internals/features/teaching/students/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	StudentID uuid.UUID `json:"student_id" gorm:"type:uuid;primaryKey;column:student_id"`

	StudentRollNumber string `json:"student_roll_number" gorm:"type:varchar(20);not null;uniqueIndex;column:student_roll_number"`
	StudentName       string `json:"student_name" gorm:"type:varchar(100);not null;column:student_name"`
	StudentEmail      string `json:"student_email" gorm:"type:varchar(150);not null;column:student_email"`
	StudentBatchYear  int    `json:"student_batch_year" gorm:"not null;column:student_batch_year"`

	StudentIsActive bool `json:"student_is_active" gorm:"not null;default:true;column:student_is_active"`

	StudentCreatedAt time.Time `json:"student_created_at" gorm:"column:student_created_at;not null;autoCreateTime"`
	StudentUpdatedAt time.Time `json:"student_updated_at" gorm:"column:student_updated_at;not null;autoUpdateTime"`
}

func (StudentModel) TableName() string {
	return "students"
}

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	return nil
}

/* =======================================================
   ClassStudentModel — enrollment of a student in a
   teacher class. Unique per (class, student).
   ======================================================= */

type ClassStudentModel struct {
	ClassStudentID uuid.UUID `json:"class_student_id" gorm:"type:uuid;primaryKey;column:class_student_id"`

	ClassStudentClassID   uuid.UUID `json:"class_student_class_id" gorm:"type:uuid;not null;uniqueIndex:uq_class_student;column:class_student_class_id"`
	ClassStudentStudentID uuid.UUID `json:"class_student_student_id" gorm:"type:uuid;not null;uniqueIndex:uq_class_student;column:class_student_student_id"`

	Student *StudentModel `json:"student,omitempty" gorm:"foreignKey:ClassStudentStudentID;references:StudentID"`

	ClassStudentCreatedAt time.Time `json:"class_student_created_at" gorm:"column:class_student_created_at;not null;autoCreateTime"`
}

func (ClassStudentModel) TableName() string {
	return "class_students"
}

func (m *ClassStudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassStudentID == uuid.Nil {
		m.ClassStudentID = uuid.New()
	}
	return nil
}
