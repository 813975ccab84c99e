// file: internals/features/academics/labs/model/lab_entry_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	roomModel "kampusku_backend/internals/features/academics/rooms/model"
	subjectModel "kampusku_backend/internals/features/academics/subjects/model"
)

/* =======================================================
   LabEntryModel — maps to table lab_entries

   A lab spans a contiguous range of hours [start_time, end_time)
   rather than one fixed slot. Times are stored as "HH:MM".
   ======================================================= */

type LabEntryModel struct {
	LabEntryID uuid.UUID `json:"lab_entry_id" gorm:"type:uuid;primaryKey;column:lab_entry_id"`

	LabEntryRoomID    uuid.UUID `json:"lab_entry_room_id" gorm:"type:uuid;not null;index;column:lab_entry_room_id"`
	LabEntrySubjectID uuid.UUID `json:"lab_entry_subject_id" gorm:"type:uuid;not null;column:lab_entry_subject_id"`

	LabEntryAcademicYear string `json:"lab_entry_academic_year" gorm:"type:varchar(9);not null;column:lab_entry_academic_year"`
	LabEntrySemesterType string `json:"lab_entry_semester_type" gorm:"type:varchar(4);not null;column:lab_entry_semester_type"`
	LabEntrySemester     int    `json:"lab_entry_semester" gorm:"not null;column:lab_entry_semester"`
	LabEntryBranch       string `json:"lab_entry_branch" gorm:"type:varchar(20);not null;column:lab_entry_branch"`
	LabEntrySection      string `json:"lab_entry_section" gorm:"type:varchar(2);not null;column:lab_entry_section"` // A..C, A1..C2

	LabEntryDay           string `json:"lab_entry_day" gorm:"type:varchar(10);not null;column:lab_entry_day"`
	LabEntryStartTime     string `json:"lab_entry_start_time" gorm:"type:varchar(5);not null;column:lab_entry_start_time"`
	LabEntryEndTime       string `json:"lab_entry_end_time" gorm:"type:varchar(5);not null;column:lab_entry_end_time"`
	LabEntryDurationHours int    `json:"lab_entry_duration_hours" gorm:"not null;column:lab_entry_duration_hours"`

	LabEntryNotes *string `json:"lab_entry_notes,omitempty" gorm:"type:text;column:lab_entry_notes"`
	LabEntryColor *string `json:"lab_entry_color,omitempty" gorm:"type:varchar(20);column:lab_entry_color"`

	Room    *roomModel.RoomModel       `json:"room,omitempty" gorm:"foreignKey:LabEntryRoomID;references:RoomID"`
	Subject *subjectModel.SubjectModel `json:"subject,omitempty" gorm:"foreignKey:LabEntrySubjectID;references:SubjectID"`

	LabEntryCreatedAt time.Time `json:"lab_entry_created_at" gorm:"column:lab_entry_created_at;not null;autoCreateTime"`
	LabEntryUpdatedAt time.Time `json:"lab_entry_updated_at" gorm:"column:lab_entry_updated_at;not null;autoUpdateTime"`
}

func (LabEntryModel) TableName() string {
	return "lab_entries"
}

func (m *LabEntryModel) BeforeCreate(tx *gorm.DB) error {
	if m.LabEntryID == uuid.Nil {
		m.LabEntryID = uuid.New()
	}
	return nil
}
