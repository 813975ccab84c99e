// file: internals/features/academics/labs/dto/lab_entry_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"kampusku_backend/internals/features/academics/labs/model"
	roomDTO "kampusku_backend/internals/features/academics/rooms/dto"
	subjectDTO "kampusku_backend/internals/features/academics/subjects/dto"
)

type CreateLabEntryRequest struct {
	RoomID       uuid.UUID `json:"room_id" validate:"required"`
	SubjectID    uuid.UUID `json:"subject_id" validate:"required"`
	AcademicYear string    `json:"academic_year" validate:"required,min=4,max=9"`
	SemesterType string    `json:"semester_type" validate:"required,oneof=odd even"`
	Semester     int       `json:"semester" validate:"required,min=1,max=8"`
	Branch       string    `json:"branch" validate:"required"`
	Section      string    `json:"section" validate:"required"`
	Day          string    `json:"day" validate:"required"`
	StartTime    string    `json:"start_time" validate:"required"` // "HH:MM"
	EndTime      string    `json:"end_time" validate:"required"`
	Notes        *string   `json:"notes,omitempty"`
	Color        *string   `json:"color,omitempty" validate:"omitempty,max=20"`
}

func (r *CreateLabEntryRequest) Normalize() {
	r.AcademicYear = strings.TrimSpace(r.AcademicYear)
	r.SemesterType = strings.ToLower(strings.TrimSpace(r.SemesterType))
	r.Branch = strings.ToUpper(strings.TrimSpace(r.Branch))
	r.Section = strings.ToUpper(strings.TrimSpace(r.Section))
	r.StartTime = strings.TrimSpace(r.StartTime)
	r.EndTime = strings.TrimSpace(r.EndTime)
}

type ListLabEntriesQuery struct {
	RoomID       string `query:"room_id"`
	Day          string `query:"day"`
	AcademicYear string `query:"academic_year"`
	SemesterType string `query:"semester_type"`
	Branch       string `query:"branch"`
	Section      string `query:"section"`
}

type LabEntryResponse struct {
	LabEntryID    uuid.UUID `json:"lab_entry_id"`
	RoomID        uuid.UUID `json:"room_id"`
	SubjectID     uuid.UUID `json:"subject_id"`
	AcademicYear  string    `json:"academic_year"`
	SemesterType  string    `json:"semester_type"`
	Semester      int       `json:"semester"`
	Branch        string    `json:"branch"`
	Section       string    `json:"section"`
	Day           string    `json:"day"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	DurationHours int       `json:"duration_hours"`
	Notes         *string   `json:"notes,omitempty"`
	Color         *string   `json:"color,omitempty"`

	Room    *roomDTO.RoomResponse       `json:"room,omitempty"`
	Subject *subjectDTO.SubjectResponse `json:"subject,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func ToLabEntryResponse(m model.LabEntryModel) LabEntryResponse {
	resp := LabEntryResponse{
		LabEntryID:    m.LabEntryID,
		RoomID:        m.LabEntryRoomID,
		SubjectID:     m.LabEntrySubjectID,
		AcademicYear:  m.LabEntryAcademicYear,
		SemesterType:  m.LabEntrySemesterType,
		Semester:      m.LabEntrySemester,
		Branch:        m.LabEntryBranch,
		Section:       m.LabEntrySection,
		Day:           m.LabEntryDay,
		StartTime:     m.LabEntryStartTime,
		EndTime:       m.LabEntryEndTime,
		DurationHours: m.LabEntryDurationHours,
		Notes:         m.LabEntryNotes,
		Color:         m.LabEntryColor,
		CreatedAt:     m.LabEntryCreatedAt,
	}
	if m.Room != nil {
		r := roomDTO.ToRoomResponse(*m.Room)
		resp.Room = &r
	}
	if m.Subject != nil {
		s := subjectDTO.ToSubjectResponse(*m.Subject)
		resp.Subject = &s
	}
	return resp
}
