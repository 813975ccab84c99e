// file: internals/features/academics/rooms/dto/room_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"kampusku_backend/internals/features/academics/rooms/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type CreateRoomRequest struct {
	RoomNumber     string         `json:"room_number" validate:"required,min=1,max=20"`
	RoomType       string         `json:"room_type" validate:"required,oneof=Classroom Lab"`
	RoomCapacity   int            `json:"room_capacity" validate:"min=0"`
	RoomFloor      *int           `json:"room_floor,omitempty"`
	RoomBuilding   *string        `json:"room_building,omitempty" validate:"omitempty,max=100"`
	RoomFacilities datatypes.JSON `json:"room_facilities" validate:"omitempty"`
	RoomIsActive   *bool          `json:"room_is_active,omitempty"`
}

func (r *CreateRoomRequest) Normalize() {
	r.RoomNumber = strings.TrimSpace(r.RoomNumber)
	r.RoomType = strings.TrimSpace(r.RoomType)
	if r.RoomBuilding != nil {
		b := strings.TrimSpace(*r.RoomBuilding)
		r.RoomBuilding = &b
	}
}

type UpdateRoomRequest struct {
	RoomCapacity   *int            `json:"room_capacity,omitempty" validate:"omitempty,min=0"`
	RoomFloor      *int            `json:"room_floor,omitempty"`
	RoomBuilding   *string         `json:"room_building,omitempty" validate:"omitempty,max=100"`
	RoomFacilities *datatypes.JSON `json:"room_facilities,omitempty"`
	RoomIsActive   *bool           `json:"room_is_active,omitempty"`
}

// BuildUpdateMap returns only the supplied columns. room_number and room_type
// are not editable once a room exists (entries reference them by meaning).
func (r *UpdateRoomRequest) BuildUpdateMap() map[string]interface{} {
	up := map[string]interface{}{}
	if r.RoomCapacity != nil {
		up["room_capacity"] = *r.RoomCapacity
	}
	if r.RoomFloor != nil {
		up["room_floor"] = r.RoomFloor
	}
	if r.RoomBuilding != nil {
		up["room_building"] = r.RoomBuilding
	}
	if r.RoomFacilities != nil {
		up["room_facilities"] = *r.RoomFacilities
	}
	if r.RoomIsActive != nil {
		up["room_is_active"] = *r.RoomIsActive
	}
	return up
}

/* =======================================================
   QUERY FILTER DTO
   ======================================================= */

type ListRoomsQuery struct {
	Search   string `query:"search"`
	RoomType string `query:"room_type"`
	IsActive *bool  `query:"is_active"`
}

func (q *ListRoomsQuery) Normalize() {
	q.Search = strings.TrimSpace(q.Search)
	q.RoomType = strings.TrimSpace(q.RoomType)
}

/* =======================================================
   RESPONSE DTO
   ======================================================= */

type RoomResponse struct {
	RoomID         uuid.UUID      `json:"room_id"`
	RoomNumber     string         `json:"room_number"`
	RoomType       string         `json:"room_type"`
	RoomCapacity   int            `json:"room_capacity"`
	RoomFloor      *int           `json:"room_floor,omitempty"`
	RoomBuilding   *string        `json:"room_building,omitempty"`
	RoomFacilities datatypes.JSON `json:"room_facilities"`
	RoomIsActive   bool           `json:"room_is_active"`
	RoomCreatedAt  time.Time      `json:"room_created_at"`
	RoomUpdatedAt  time.Time      `json:"room_updated_at"`
}

func ToRoomResponse(m model.RoomModel) RoomResponse {
	return RoomResponse{
		RoomID:         m.RoomID,
		RoomNumber:     m.RoomNumber,
		RoomType:       m.RoomType,
		RoomCapacity:   m.RoomCapacity,
		RoomFloor:      m.RoomFloor,
		RoomBuilding:   m.RoomBuilding,
		RoomFacilities: m.RoomFacilities,
		RoomIsActive:   m.RoomIsActive,
		RoomCreatedAt:  m.RoomCreatedAt,
		RoomUpdatedAt:  m.RoomUpdatedAt,
	}
}
