// file: internals/features/academics/labs/controller/lab_entry_controller.go
package controller

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kampusku_backend/internals/constants"
	"kampusku_backend/internals/features/academics/labs/dto"
	"kampusku_backend/internals/features/academics/labs/model"
	roomModel "kampusku_backend/internals/features/academics/rooms/model"
	helper "kampusku_backend/internals/helpers"
)

type LabEntryController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewLabEntryController(db *gorm.DB, v *validator.Validate) *LabEntryController {
	return &LabEntryController{DB: db, Validate: v}
}

// parseClock turns "HH:MM" into minutes since midnight, -1 when malformed.
func parseClock(s string) int {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return -1
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return -1
	}
	return h*60 + m
}

// Create books a lab. Bookings in the same room, day and term must not
// overlap: [start, end) intervals are compared and any intersection is a 409.
func (ctl *LabEntryController) Create(c *fiber.Ctx) error {
	var req dto.CreateLabEntryRequest
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
	if !constants.InSet(constants.LabSections, req.Section) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown section")
	}
	if !constants.InSet(constants.Days, req.Day) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown day")
	}

	start, end := parseClock(req.StartTime), parseClock(req.EndTime)
	if start < 0 || end < 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "start_time/end_time must be HH:MM")
	}
	if end <= start {
		return helper.JsonError(c, fiber.StatusBadRequest, "end_time must be after start_time")
	}

	var room roomModel.RoomModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&room, "room_id = ?", req.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Room not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch room")
	}
	if room.RoomType != constants.RoomTypeLab {
		return helper.JsonError(c, fiber.StatusBadRequest, "Lab entries require a Lab room")
	}

	m := model.LabEntryModel{
		LabEntryRoomID:        req.RoomID,
		LabEntrySubjectID:     req.SubjectID,
		LabEntryAcademicYear:  req.AcademicYear,
		LabEntrySemesterType:  req.SemesterType,
		LabEntrySemester:      req.Semester,
		LabEntryBranch:        req.Branch,
		LabEntrySection:       req.Section,
		LabEntryDay:           req.Day,
		LabEntryStartTime:     req.StartTime,
		LabEntryEndTime:       req.EndTime,
		LabEntryDurationHours: (end - start + 59) / 60,
		LabEntryNotes:         req.Notes,
		LabEntryColor:         req.Color,
	}

	txErr := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var existing []model.LabEntryModel
		if err := tx.Where(
			"lab_entry_room_id = ? AND lab_entry_day = ? AND lab_entry_academic_year = ? AND lab_entry_semester_type = ?",
			req.RoomID, req.Day, req.AcademicYear, req.SemesterType,
		).Find(&existing).Error; err != nil {
			return err
		}
		for _, e := range existing {
			es, ee := parseClock(e.LabEntryStartTime), parseClock(e.LabEntryEndTime)
			if es < 0 || ee < 0 {
				continue
			}
			if start < ee && es < end {
				return fmt.Errorf("%w %s-%s", errLabOverlap, e.LabEntryStartTime, e.LabEntryEndTime)
			}
		}
		return tx.Create(&m).Error
	})
	if txErr != nil {
		if errors.Is(txErr, errLabOverlap) {
			return helper.JsonError(c, fiber.StatusConflict, txErr.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create lab entry")
	}

	var out model.LabEntryModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Preload("Room").Preload("Subject").
		First(&out, "lab_entry_id = ?", m.LabEntryID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reload lab entry")
	}
	return helper.JsonCreated(c, "Lab entry created", dto.ToLabEntryResponse(out))
}

var errLabOverlap = errors.New("room already has a lab booked")

func (ctl *LabEntryController) List(c *fiber.Ctx) error {
	var q dto.ListLabEntriesQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}

	db := ctl.DB.WithContext(c.UserContext()).Model(&model.LabEntryModel{}).
		Preload("Room").Preload("Subject")
	if q.RoomID != "" {
		id, err := uuid.Parse(q.RoomID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid room_id")
		}
		db = db.Where("lab_entry_room_id = ?", id)
	}
	if q.Day != "" {
		db = db.Where("lab_entry_day = ?", q.Day)
	}
	if q.AcademicYear != "" {
		db = db.Where("lab_entry_academic_year = ?", q.AcademicYear)
	}
	if q.SemesterType != "" {
		db = db.Where("lab_entry_semester_type = ?", q.SemesterType)
	}
	if q.Branch != "" {
		db = db.Where("lab_entry_branch = ?", q.Branch)
	}
	if q.Section != "" {
		db = db.Where("lab_entry_section = ?", q.Section)
	}

	var rows []model.LabEntryModel
	if err := db.Order("lab_entry_day ASC, lab_entry_start_time ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch lab entries")
	}

	out := make([]dto.LabEntryResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToLabEntryResponse(m))
	}
	return helper.JsonList(c, "", out, nil)
}

func (ctl *LabEntryController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid lab entry ID")
	}
	tx := ctl.DB.WithContext(c.UserContext()).Delete(&model.LabEntryModel{}, "lab_entry_id = ?", id)
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete lab entry")
	}
	if tx.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Lab entry not found")
	}
	return helper.JsonDeleted(c, "Lab entry deleted", fiber.Map{"lab_entry_id": id})
}
