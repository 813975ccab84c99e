// file: internals/features/academics/rooms/model/room_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =======================================================
   RoomModel — maps to table rooms
   ======================================================= */

type RoomModel struct {
	RoomID uuid.UUID `json:"room_id" gorm:"type:uuid;primaryKey;column:room_id"`

	RoomNumber string `json:"room_number" gorm:"type:varchar(20);not null;uniqueIndex;column:room_number"`
	RoomType   string `json:"room_type" gorm:"type:varchar(20);not null;column:room_type"` // Classroom | Lab

	RoomCapacity int     `json:"room_capacity" gorm:"not null;default:0;column:room_capacity"`
	RoomFloor    *int    `json:"room_floor,omitempty" gorm:"column:room_floor"`
	RoomBuilding *string `json:"room_building,omitempty" gorm:"type:varchar(100);column:room_building"`

	// Facility tags, e.g. ["projector","ac","smart_board"]
	RoomFacilities datatypes.JSON `json:"room_facilities" gorm:"column:room_facilities"`

	RoomIsActive bool `json:"room_is_active" gorm:"not null;default:true;column:room_is_active"`

	RoomCreatedAt time.Time      `json:"room_created_at" gorm:"column:room_created_at;not null;autoCreateTime"`
	RoomUpdatedAt time.Time      `json:"room_updated_at" gorm:"column:room_updated_at;not null;autoUpdateTime"`
	RoomDeletedAt gorm.DeletedAt `json:"room_deleted_at" gorm:"column:room_deleted_at;index"`
}

func (RoomModel) TableName() string {
	return "rooms"
}

func (m *RoomModel) BeforeCreate(tx *gorm.DB) error {
	if m.RoomID == uuid.Nil {
		m.RoomID = uuid.New()
	}
	return nil
}
