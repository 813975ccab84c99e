// file: internals/features/academics/rooms/controller/room_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kampusku_backend/internals/constants"
	"kampusku_backend/internals/features/academics/rooms/dto"
	"kampusku_backend/internals/features/academics/rooms/model"
	helper "kampusku_backend/internals/helpers"
)

type RoomController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewRoomController(db *gorm.DB, v *validator.Validate) *RoomController {
	return &RoomController{DB: db, Validate: v}
}

func (ctl *RoomController) List(c *fiber.Ctx) error {
	var q dto.ListRoomsQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	q.Normalize()
	p := helper.ResolvePaging(c, 20, 200)

	db := ctl.DB.WithContext(c.UserContext()).Model(&model.RoomModel{})

	if q.Search != "" {
		s := "%" + strings.ToLower(q.Search) + "%"
		db = db.Where("(LOWER(room_number) LIKE ? OR LOWER(COALESCE(room_building,'')) LIKE ?)", s, s)
	}
	if q.RoomType != "" {
		if q.RoomType != constants.RoomTypeClassroom && q.RoomType != constants.RoomTypeLab {
			return helper.JsonError(c, fiber.StatusBadRequest, "room_type must be Classroom or Lab")
		}
		db = db.Where("room_type = ?", q.RoomType)
	}
	if q.IsActive != nil {
		db = db.Where("room_is_active = ?", *q.IsActive)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count rooms")
	}

	var rows []model.RoomModel
	if err := db.Order("room_number ASC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch rooms")
	}

	out := make([]dto.RoomResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToRoomResponse(m))
	}
	return helper.JsonList(c, "", out, helper.BuildPagination(total, p.Page, p.PerPage))
}

func (ctl *RoomController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid room ID")
	}

	var m model.RoomModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "room_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Room not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch room")
	}
	return helper.JsonOK(c, "", dto.ToRoomResponse(m))
}

func (ctl *RoomController) Create(c *fiber.Ctx) error {
	var req dto.CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	active := true
	if req.RoomIsActive != nil {
		active = *req.RoomIsActive
	}

	m := model.RoomModel{
		RoomNumber:     req.RoomNumber,
		RoomType:       req.RoomType,
		RoomCapacity:   req.RoomCapacity,
		RoomFloor:      req.RoomFloor,
		RoomBuilding:   req.RoomBuilding,
		RoomFacilities: req.RoomFacilities,
		RoomIsActive:   active,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Room number already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create room")
	}
	return helper.JsonCreated(c, "Room created", dto.ToRoomResponse(m))
}

func (ctl *RoomController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid room ID")
	}

	var req dto.UpdateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.RoomModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "room_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Room not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch room")
	}

	updates := req.BuildUpdateMap()
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "No fields to update")
	}
	updates["room_updated_at"] = time.Now()

	if err := ctl.DB.WithContext(c.UserContext()).Model(&m).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update room")
	}
	return helper.JsonUpdated(c, "Room updated", dto.ToRoomResponse(m))
}

// Delete soft-deletes; rooms referenced by entries are kept addressable.
func (ctl *RoomController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid room ID")
	}

	tx := ctl.DB.WithContext(c.UserContext()).Delete(&model.RoomModel{}, "room_id = ?", id)
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete room")
	}
	if tx.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Room not found")
	}
	return helper.JsonDeleted(c, "Room deleted", fiber.Map{"room_id": id})
}
