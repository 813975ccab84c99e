// file: internals/features/teaching/classes/model/teacher_class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AllocationTypeClass = "class"
	AllocationTypeLab   = "lab"
)

/* =======================================================
   TeacherClassModel — maps to table teacher_classes

   Binds a teacher to exactly one of a timetable entry or a
   lab entry. The pair (type, entry id) is resolved once at
   the data layer into a ClassDetail, so handlers never branch
   on the string tag themselves.
   ======================================================= */

type TeacherClassModel struct {
	TeacherClassID uuid.UUID `json:"teacher_class_id" gorm:"type:uuid;primaryKey;column:teacher_class_id"`

	// The teacher column sits in both composite indexes: the same entry can
	// be taught by several teachers, but never twice by one.
	TeacherClassTeacherID uuid.UUID `json:"teacher_class_teacher_id" gorm:"type:uuid;not null;index;uniqueIndex:uq_teacher_entry,priority:1;uniqueIndex:uq_teacher_lab,priority:1;column:teacher_class_teacher_id"`

	TeacherClassAllocationType string `json:"teacher_class_allocation_type" gorm:"type:varchar(5);not null;column:teacher_class_allocation_type"` // class | lab

	TeacherClassTimetableEntryID *uuid.UUID `json:"teacher_class_timetable_entry_id,omitempty" gorm:"type:uuid;uniqueIndex:uq_teacher_entry,priority:2;column:teacher_class_timetable_entry_id"`
	TeacherClassLabEntryID       *uuid.UUID `json:"teacher_class_lab_entry_id,omitempty" gorm:"type:uuid;uniqueIndex:uq_teacher_lab,priority:2;column:teacher_class_lab_entry_id"`

	TeacherClassAssignedAt time.Time `json:"teacher_class_assigned_at" gorm:"column:teacher_class_assigned_at;not null;autoCreateTime"`
	TeacherClassIsActive   bool      `json:"teacher_class_is_active" gorm:"not null;default:true;column:teacher_class_is_active"`
	TeacherClassNotes      *string   `json:"teacher_class_notes,omitempty" gorm:"type:text;column:teacher_class_notes"`
}

func (TeacherClassModel) TableName() string {
	return "teacher_classes"
}

func (m *TeacherClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.TeacherClassID == uuid.Nil {
		m.TeacherClassID = uuid.New()
	}
	return nil
}
