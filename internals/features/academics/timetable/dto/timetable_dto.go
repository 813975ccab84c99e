// file: internals/features/academics/timetable/dto/timetable_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	allocDTO "kampusku_backend/internals/features/academics/allocations/dto"
	subjectDTO "kampusku_backend/internals/features/academics/subjects/dto"
	"kampusku_backend/internals/features/academics/timetable/model"
)

type TimingInput struct {
	Day      string `json:"day" validate:"required"`
	TimeSlot string `json:"time_slot" validate:"required"`
}

type CreateTimetableEntryRequest struct {
	AllocationID uuid.UUID     `json:"allocation_id" validate:"required"`
	SubjectID    uuid.UUID     `json:"subject_id" validate:"required"`
	Timings      []TimingInput `json:"timings" validate:"required,min=1,dive"`
	Notes        *string       `json:"notes,omitempty"`
	Color        *string       `json:"color,omitempty" validate:"omitempty,max=20"`
}

// CreateDirectEntryRequest is the flat legacy shape; it is resolved onto the
// allocation model before insertion (day_half derived from the slot).
type CreateDirectEntryRequest struct {
	RoomID       uuid.UUID `json:"room_id" validate:"required"`
	SubjectID    uuid.UUID `json:"subject_id" validate:"required"`
	AcademicYear string    `json:"academic_year" validate:"required,min=4,max=9"`
	SemesterType string    `json:"semester_type" validate:"required,oneof=odd even"`
	Semester     int       `json:"semester" validate:"required,min=1,max=8"`
	Branch       string    `json:"branch" validate:"required"`
	Section      string    `json:"section" validate:"required,oneof=A B C"`
	Day          string    `json:"day" validate:"required"`
	TimeSlot     string    `json:"time_slot" validate:"required"`
	Notes        *string   `json:"notes,omitempty"`
	Color        *string   `json:"color,omitempty" validate:"omitempty,max=20"`
}

func (r *CreateDirectEntryRequest) Normalize() {
	r.AcademicYear = strings.TrimSpace(r.AcademicYear)
	r.SemesterType = strings.ToLower(strings.TrimSpace(r.SemesterType))
	r.Branch = strings.ToUpper(strings.TrimSpace(r.Branch))
	r.Section = strings.ToUpper(strings.TrimSpace(r.Section))
}

type ListTimetableQuery struct {
	AllocationID  string `query:"allocation_id"`
	AllocationIDs string `query:"allocation_ids"` // comma-joined
	AcademicYear  string `query:"academic_year"`
	SemesterType  string `query:"semester_type"`
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type TimingResponse struct {
	TimingID uuid.UUID `json:"timing_id"`
	Day      string    `json:"day"`
	TimeSlot string    `json:"time_slot"`
}

type TimetableEntryResponse struct {
	TimetableEntryID uuid.UUID `json:"timetable_entry_id"`
	AllocationID     uuid.UUID `json:"allocation_id"`
	SubjectID        uuid.UUID `json:"subject_id"`
	Notes            *string   `json:"notes,omitempty"`
	Color            *string   `json:"color,omitempty"`

	Timings    []TimingResponse               `json:"timings"`
	Subject    *subjectDTO.SubjectResponse    `json:"subject,omitempty"`
	Allocation *allocDTO.AllocationResponse   `json:"allocation,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToTimetableEntryResponse(m model.TimetableEntryModel) TimetableEntryResponse {
	timings := make([]TimingResponse, 0, len(m.Timings))
	for _, t := range m.Timings {
		timings = append(timings, TimingResponse{
			TimingID: t.TimetableTimingID,
			Day:      t.TimetableTimingDay,
			TimeSlot: t.TimetableTimingTimeSlot,
		})
	}
	resp := TimetableEntryResponse{
		TimetableEntryID: m.TimetableEntryID,
		AllocationID:     m.TimetableEntryAllocationID,
		SubjectID:        m.TimetableEntrySubjectID,
		Notes:            m.TimetableEntryNotes,
		Color:            m.TimetableEntryColor,
		Timings:          timings,
		CreatedAt:        m.TimetableEntryCreatedAt,
		UpdatedAt:        m.TimetableEntryUpdatedAt,
	}
	if m.Subject != nil {
		s := subjectDTO.ToSubjectResponse(*m.Subject)
		resp.Subject = &s
	}
	if m.Allocation != nil {
		a := allocDTO.ToAllocationResponse(*m.Allocation)
		resp.Allocation = &a
	}
	return resp
}
