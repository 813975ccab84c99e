// file: internals/features/academics/allocations/controller/allocation_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kampusku_backend/internals/constants"
	"kampusku_backend/internals/features/academics/allocations/dto"
	"kampusku_backend/internals/features/academics/allocations/model"
	roomModel "kampusku_backend/internals/features/academics/rooms/model"
	ttModel "kampusku_backend/internals/features/academics/timetable/model"
	helper "kampusku_backend/internals/helpers"
)

type AllocationController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAllocationController(db *gorm.DB, v *validator.Validate) *AllocationController {
	return &AllocationController{DB: db, Validate: v}
}

// Create reserves a room for a class group. The one-per-tuple rule is the
// composite unique index on allocations; the insert either lands or comes
// back as a duplicate key, there is no check-then-act window.
func (ctl *AllocationController) Create(c *fiber.Ctx) error {
	var req dto.CreateAllocationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if !constants.InSet(constants.Branches, req.Branch) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown branch")
	}

	var room roomModel.RoomModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&room, "room_id = ?", req.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Room not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch room")
	}

	dayHalf := ""
	switch room.RoomType {
	case constants.RoomTypeClassroom:
		if req.DayHalf == nil || *req.DayHalf == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "day_half is required for Classroom rooms")
		}
		dayHalf = *req.DayHalf
	case constants.RoomTypeLab:
		// labs have no half split, whatever was supplied is dropped
	}

	m := model.AllocationModel{
		AllocationAcademicYear: req.AcademicYear,
		AllocationSemesterType: req.SemesterType,
		AllocationSemester:     req.Semester,
		AllocationBranch:       req.Branch,
		AllocationSection:      req.Section,
		AllocationDayHalf:      dayHalf,
		AllocationRoomID:       room.RoomID,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Allocation already exists for this class group")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create allocation")
	}

	m.Room = &room
	return helper.JsonCreated(c, "Allocation created", dto.ToAllocationResponse(m))
}

func (ctl *AllocationController) List(c *fiber.Ctx) error {
	var q dto.ListAllocationsQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}

	db := ctl.DB.WithContext(c.UserContext()).Model(&model.AllocationModel{}).Preload("Room")
	if q.AcademicYear != "" {
		db = db.Where("allocation_academic_year = ?", q.AcademicYear)
	}
	if q.SemesterType != "" {
		if !constants.InSet(constants.SemesterTypes, q.SemesterType) {
			return helper.JsonError(c, fiber.StatusBadRequest, "semester_type must be odd or even")
		}
		db = db.Where("allocation_semester_type = ?", q.SemesterType)
	}
	if q.Branch != "" {
		db = db.Where("allocation_branch = ?", q.Branch)
	}
	if q.Section != "" {
		db = db.Where("allocation_section = ?", q.Section)
	}

	var rows []model.AllocationModel
	if err := db.Order("allocation_branch ASC, allocation_section ASC, allocation_semester ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch allocations")
	}

	out := make([]dto.AllocationResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToAllocationResponse(m))
	}
	return helper.JsonList(c, "", out, nil)
}

func (ctl *AllocationController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid allocation ID")
	}
	var m model.AllocationModel
	if err := ctl.DB.WithContext(c.UserContext()).Preload("Room").First(&m, "allocation_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Allocation not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch allocation")
	}
	return helper.JsonOK(c, "", dto.ToAllocationResponse(m))
}

// Delete removes the allocation together with its timetable entries and
// timings in one transaction.
func (ctl *AllocationController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid allocation ID")
	}

	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var entryIDs []uuid.UUID
		if err := tx.Model(&ttModel.TimetableEntryModel{}).
			Where("timetable_entry_allocation_id = ?", id).
			Pluck("timetable_entry_id", &entryIDs).Error; err != nil {
			return err
		}
		if len(entryIDs) > 0 {
			if err := tx.Delete(&ttModel.TimetableTimingModel{}, "timetable_timing_entry_id IN ?", entryIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&ttModel.TimetableEntryModel{}, "timetable_entry_id IN ?", entryIDs).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&model.AllocationModel{}, "allocation_id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Allocation not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete allocation")
	}
	return helper.JsonDeleted(c, "Allocation deleted", fiber.Map{"allocation_id": id})
}
