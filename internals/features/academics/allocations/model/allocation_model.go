// file: internals/features/academics/allocations/model/allocation_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	roomModel "kampusku_backend/internals/features/academics/rooms/model"
)

/* =======================================================
   AllocationModel — maps to table allocations

   One row binds a class group (year, semester type, semester,
   branch, section) to a room for a half of the day. Lab rooms
   have no half split: day_half is stored as '' so the composite
   unique index covers the one-per-section rule for labs too.
   ======================================================= */

type AllocationModel struct {
	AllocationID uuid.UUID `json:"allocation_id" gorm:"type:uuid;primaryKey;column:allocation_id"`

	AllocationAcademicYear string `json:"allocation_academic_year" gorm:"type:varchar(9);not null;uniqueIndex:uq_allocation_tuple;column:allocation_academic_year"`
	AllocationSemesterType string `json:"allocation_semester_type" gorm:"type:varchar(4);not null;uniqueIndex:uq_allocation_tuple;column:allocation_semester_type"` // odd | even
	AllocationSemester     int    `json:"allocation_semester" gorm:"not null;uniqueIndex:uq_allocation_tuple;column:allocation_semester"`                           // 1..8
	AllocationBranch       string `json:"allocation_branch" gorm:"type:varchar(20);not null;uniqueIndex:uq_allocation_tuple;column:allocation_branch"`
	AllocationSection      string `json:"allocation_section" gorm:"type:varchar(2);not null;uniqueIndex:uq_allocation_tuple;column:allocation_section"`

	// '' means not applicable (lab rooms).
	AllocationDayHalf string `json:"allocation_day_half" gorm:"type:varchar(12);not null;default:'';uniqueIndex:uq_allocation_tuple;column:allocation_day_half"`

	AllocationRoomID uuid.UUID            `json:"allocation_room_id" gorm:"type:uuid;not null;column:allocation_room_id"`
	Room             *roomModel.RoomModel `json:"room,omitempty" gorm:"foreignKey:AllocationRoomID;references:RoomID"`

	AllocationCreatedAt time.Time `json:"allocation_created_at" gorm:"column:allocation_created_at;not null;autoCreateTime"`
	AllocationUpdatedAt time.Time `json:"allocation_updated_at" gorm:"column:allocation_updated_at;not null;autoUpdateTime"`
}

func (AllocationModel) TableName() string {
	return "allocations"
}

func (m *AllocationModel) BeforeCreate(tx *gorm.DB) error {
	if m.AllocationID == uuid.Nil {
		m.AllocationID = uuid.New()
	}
	return nil
}
