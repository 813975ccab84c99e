// file: internals/features/academics/allocations/dto/allocation_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"kampusku_backend/internals/features/academics/allocations/model"
	roomDTO "kampusku_backend/internals/features/academics/rooms/dto"
)

type CreateAllocationRequest struct {
	AcademicYear string    `json:"academic_year" validate:"required,min=4,max=9"`
	SemesterType string    `json:"semester_type" validate:"required,oneof=odd even"`
	Semester     int       `json:"semester" validate:"required,min=1,max=8"`
	Branch       string    `json:"branch" validate:"required"`
	Section      string    `json:"section" validate:"required,oneof=A B C"`
	RoomID       uuid.UUID `json:"room_id" validate:"required"`

	// Required for Classroom rooms, ignored for Lab rooms.
	DayHalf *string `json:"day_half,omitempty" validate:"omitempty,oneof=first_half second_half"`
}

func (r *CreateAllocationRequest) Normalize() {
	r.AcademicYear = strings.TrimSpace(r.AcademicYear)
	r.SemesterType = strings.ToLower(strings.TrimSpace(r.SemesterType))
	r.Branch = strings.ToUpper(strings.TrimSpace(r.Branch))
	r.Section = strings.ToUpper(strings.TrimSpace(r.Section))
}

type ListAllocationsQuery struct {
	AcademicYear string `query:"academic_year"`
	SemesterType string `query:"semester_type"`
	Branch       string `query:"branch"`
	Section      string `query:"section"`
}

type AllocationResponse struct {
	AllocationID uuid.UUID `json:"allocation_id"`
	AcademicYear string    `json:"academic_year"`
	SemesterType string    `json:"semester_type"`
	Semester     int       `json:"semester"`
	Branch       string    `json:"branch"`
	Section      string    `json:"section"`
	DayHalf      *string   `json:"day_half,omitempty"`
	RoomID       uuid.UUID `json:"room_id"`

	Room *roomDTO.RoomResponse `json:"room,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToAllocationResponse(m model.AllocationModel) AllocationResponse {
	var dayHalf *string
	if m.AllocationDayHalf != "" {
		v := m.AllocationDayHalf
		dayHalf = &v
	}
	resp := AllocationResponse{
		AllocationID: m.AllocationID,
		AcademicYear: m.AllocationAcademicYear,
		SemesterType: m.AllocationSemesterType,
		Semester:     m.AllocationSemester,
		Branch:       m.AllocationBranch,
		Section:      m.AllocationSection,
		DayHalf:      dayHalf,
		RoomID:       m.AllocationRoomID,
		CreatedAt:    m.AllocationCreatedAt,
		UpdatedAt:    m.AllocationUpdatedAt,
	}
	if m.Room != nil {
		r := roomDTO.ToRoomResponse(*m.Room)
		resp.Room = &r
	}
	return resp
}
