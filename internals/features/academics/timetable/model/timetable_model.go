// file: internals/features/academics/timetable/model/timetable_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	allocModel "kampusku_backend/internals/features/academics/allocations/model"
	subjectModel "kampusku_backend/internals/features/academics/subjects/model"
)

/* =======================================================
   TimetableEntryModel — maps to table timetable_entries

   One entry = one subject scheduled inside one allocation.
   The grid cells live in timetable_timings.
   ======================================================= */

type TimetableEntryModel struct {
	TimetableEntryID uuid.UUID `json:"timetable_entry_id" gorm:"type:uuid;primaryKey;column:timetable_entry_id"`

	TimetableEntryAllocationID uuid.UUID `json:"timetable_entry_allocation_id" gorm:"type:uuid;not null;uniqueIndex:uq_entry_alloc_subject;column:timetable_entry_allocation_id"`
	TimetableEntrySubjectID    uuid.UUID `json:"timetable_entry_subject_id" gorm:"type:uuid;not null;uniqueIndex:uq_entry_alloc_subject;column:timetable_entry_subject_id"`

	TimetableEntryNotes *string `json:"timetable_entry_notes,omitempty" gorm:"type:text;column:timetable_entry_notes"`
	TimetableEntryColor *string `json:"timetable_entry_color,omitempty" gorm:"type:varchar(20);column:timetable_entry_color"`

	Allocation *allocModel.AllocationModel   `json:"allocation,omitempty" gorm:"foreignKey:TimetableEntryAllocationID;references:AllocationID"`
	Subject    *subjectModel.SubjectModel    `json:"subject,omitempty" gorm:"foreignKey:TimetableEntrySubjectID;references:SubjectID"`
	Timings    []TimetableTimingModel        `json:"timings,omitempty" gorm:"foreignKey:TimetableTimingEntryID;references:TimetableEntryID"`

	TimetableEntryCreatedAt time.Time `json:"timetable_entry_created_at" gorm:"column:timetable_entry_created_at;not null;autoCreateTime"`
	TimetableEntryUpdatedAt time.Time `json:"timetable_entry_updated_at" gorm:"column:timetable_entry_updated_at;not null;autoUpdateTime"`
}

func (TimetableEntryModel) TableName() string {
	return "timetable_entries"
}

func (m *TimetableEntryModel) BeforeCreate(tx *gorm.DB) error {
	if m.TimetableEntryID == uuid.Nil {
		m.TimetableEntryID = uuid.New()
	}
	return nil
}

/* =======================================================
   TimetableTimingModel — maps to table timetable_timings
   ======================================================= */

type TimetableTimingModel struct {
	TimetableTimingID uuid.UUID `json:"timetable_timing_id" gorm:"type:uuid;primaryKey;column:timetable_timing_id"`

	TimetableTimingEntryID uuid.UUID `json:"timetable_timing_entry_id" gorm:"type:uuid;not null;uniqueIndex:uq_timing_cell;column:timetable_timing_entry_id"`

	TimetableTimingDay      string `json:"timetable_timing_day" gorm:"type:varchar(10);not null;uniqueIndex:uq_timing_cell;column:timetable_timing_day"`
	TimetableTimingTimeSlot string `json:"timetable_timing_time_slot" gorm:"type:varchar(12);not null;uniqueIndex:uq_timing_cell;column:timetable_timing_time_slot"`

	TimetableTimingCreatedAt time.Time `json:"timetable_timing_created_at" gorm:"column:timetable_timing_created_at;not null;autoCreateTime"`
}

func (TimetableTimingModel) TableName() string {
	return "timetable_timings"
}

func (m *TimetableTimingModel) BeforeCreate(tx *gorm.DB) error {
	if m.TimetableTimingID == uuid.Nil {
		m.TimetableTimingID = uuid.New()
	}
	return nil
}
