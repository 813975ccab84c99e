// file: internals/features/academics/timetable/controller/timetable_controller.go
package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kampusku_backend/internals/constants"
	allocModel "kampusku_backend/internals/features/academics/allocations/model"
	roomModel "kampusku_backend/internals/features/academics/rooms/model"
	subjectModel "kampusku_backend/internals/features/academics/subjects/model"
	"kampusku_backend/internals/features/academics/timetable/dto"
	"kampusku_backend/internals/features/academics/timetable/model"
	helper "kampusku_backend/internals/helpers"
)

type TimetableController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewTimetableController(db *gorm.DB, v *validator.Validate) *TimetableController {
	return &TimetableController{DB: db, Validate: v}
}

var errSlotTaken = errors.New("slot taken")

// insertTimings adds grid cells to an entry inside tx. A cell is rejected
// when any entry of the same allocation already holds it, or when the
// allocation's room is occupied at that cell by another class group in the
// same term. A cell the entry itself already holds is skipped.
func insertTimings(tx *gorm.DB, alloc allocModel.AllocationModel, entryID uuid.UUID, timings []dto.TimingInput) error {
	for _, t := range timings {
		var own int64
		if err := tx.Model(&model.TimetableTimingModel{}).
			Where("timetable_timing_entry_id = ? AND timetable_timing_day = ? AND timetable_timing_time_slot = ?",
				entryID, t.Day, t.TimeSlot).
			Count(&own).Error; err != nil {
			return err
		}
		if own > 0 {
			continue
		}

		var clash int64
		if err := tx.Model(&model.TimetableTimingModel{}).
			Joins("JOIN timetable_entries ON timetable_entries.timetable_entry_id = timetable_timings.timetable_timing_entry_id").
			Where("timetable_entries.timetable_entry_allocation_id = ? AND timetable_timing_day = ? AND timetable_timing_time_slot = ?",
				alloc.AllocationID, t.Day, t.TimeSlot).
			Count(&clash).Error; err != nil {
			return err
		}
		if clash > 0 {
			return fmt.Errorf("%w: %s %s is already scheduled for this class group", errSlotTaken, t.Day, t.TimeSlot)
		}

		// room-level clash across class groups sharing the room in this term
		if err := tx.Model(&model.TimetableTimingModel{}).
			Joins("JOIN timetable_entries ON timetable_entries.timetable_entry_id = timetable_timings.timetable_timing_entry_id").
			Joins("JOIN allocations ON allocations.allocation_id = timetable_entries.timetable_entry_allocation_id").
			Where("allocations.allocation_room_id = ? AND allocations.allocation_academic_year = ? AND allocations.allocation_semester_type = ?",
				alloc.AllocationRoomID, alloc.AllocationAcademicYear, alloc.AllocationSemesterType).
			Where("timetable_timing_day = ? AND timetable_timing_time_slot = ?", t.Day, t.TimeSlot).
			Count(&clash).Error; err != nil {
			return err
		}
		if clash > 0 {
			return fmt.Errorf("%w: room is already occupied on %s %s", errSlotTaken, t.Day, t.TimeSlot)
		}

		timing := model.TimetableTimingModel{
			TimetableTimingEntryID:  entryID,
			TimetableTimingDay:      t.Day,
			TimetableTimingTimeSlot: t.TimeSlot,
		}
		if err := tx.Create(&timing).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				continue
			}
			return err
		}
	}
	return nil
}

func validateTimings(timings []dto.TimingInput) string {
	for _, t := range timings {
		if !constants.InSet(constants.Days, t.Day) {
			return "Unknown day: " + t.Day
		}
		if constants.SlotIndex(t.TimeSlot) < 0 {
			return "Unknown time slot: " + t.TimeSlot
		}
	}
	return ""
}

// Create makes (or extends) the entry for (allocation, subject) and attaches
// the requested timings. Everything runs in one transaction so a failed
// timing never leaves an orphaned empty entry behind.
func (ctl *TimetableController) Create(c *fiber.Ctx) error {
	var req dto.CreateTimetableEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if msg := validateTimings(req.Timings); msg != "" {
		return helper.JsonError(c, fiber.StatusBadRequest, msg)
	}

	var alloc allocModel.AllocationModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&alloc, "allocation_id = ?", req.AllocationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Allocation not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch allocation")
	}
	var subjCount int64
	if err := ctl.DB.WithContext(c.UserContext()).Model(&subjectModel.SubjectModel{}).
		Where("subject_id = ?", req.SubjectID).Count(&subjCount).Error; err != nil || subjCount == 0 {
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch subject")
		}
		return helper.JsonError(c, fiber.StatusNotFound, "Subject not found")
	}

	var entry model.TimetableEntryModel
	txErr := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("timetable_entry_allocation_id = ? AND timetable_entry_subject_id = ?",
			req.AllocationID, req.SubjectID).First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			entry = model.TimetableEntryModel{
				TimetableEntryAllocationID: req.AllocationID,
				TimetableEntrySubjectID:    req.SubjectID,
				TimetableEntryNotes:        req.Notes,
				TimetableEntryColor:        req.Color,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		return insertTimings(tx, alloc, entry.TimetableEntryID, req.Timings)
	})
	if txErr != nil {
		if errors.Is(txErr, errSlotTaken) {
			return helper.JsonError(c, fiber.StatusConflict, txErr.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save timetable entry")
	}

	var out model.TimetableEntryModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Preload("Timings").Preload("Subject").Preload("Allocation.Room").
		First(&out, "timetable_entry_id = ?", entry.TimetableEntryID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reload timetable entry")
	}
	return helper.JsonCreated(c, "Timetable entry saved", dto.ToTimetableEntryResponse(out))
}

// CreateDirect takes the flat room/day/slot shape and folds it onto the
// allocation model: the matching allocation is reused or created first, with
// day_half derived from the slot.
func (ctl *TimetableController) CreateDirect(c *fiber.Ctx) error {
	var req dto.CreateDirectEntryRequest
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
	if msg := validateTimings([]dto.TimingInput{{Day: req.Day, TimeSlot: req.TimeSlot}}); msg != "" {
		return helper.JsonError(c, fiber.StatusBadRequest, msg)
	}

	var room roomModel.RoomModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&room, "room_id = ?", req.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Room not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch room")
	}

	dayHalf := ""
	if room.RoomType == constants.RoomTypeClassroom {
		dayHalf = constants.DayHalfForSlot(req.TimeSlot)
	}

	var entryID uuid.UUID
	txErr := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var alloc allocModel.AllocationModel
		err := tx.Where(
			"allocation_academic_year = ? AND allocation_semester_type = ? AND allocation_semester = ? AND allocation_branch = ? AND allocation_section = ? AND allocation_day_half = ?",
			req.AcademicYear, req.SemesterType, req.Semester, req.Branch, req.Section, dayHalf,
		).First(&alloc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			alloc = allocModel.AllocationModel{
				AllocationAcademicYear: req.AcademicYear,
				AllocationSemesterType: req.SemesterType,
				AllocationSemester:     req.Semester,
				AllocationBranch:       req.Branch,
				AllocationSection:      req.Section,
				AllocationDayHalf:      dayHalf,
				AllocationRoomID:       room.RoomID,
			}
			if err := tx.Create(&alloc).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var entry model.TimetableEntryModel
		err = tx.Where("timetable_entry_allocation_id = ? AND timetable_entry_subject_id = ?",
			alloc.AllocationID, req.SubjectID).First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			entry = model.TimetableEntryModel{
				TimetableEntryAllocationID: alloc.AllocationID,
				TimetableEntrySubjectID:    req.SubjectID,
				TimetableEntryNotes:        req.Notes,
				TimetableEntryColor:        req.Color,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		entryID = entry.TimetableEntryID

		return insertTimings(tx, alloc, entry.TimetableEntryID, []dto.TimingInput{{Day: req.Day, TimeSlot: req.TimeSlot}})
	})
	if txErr != nil {
		if errors.Is(txErr, errSlotTaken) {
			return helper.JsonError(c, fiber.StatusConflict, txErr.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save timetable entry")
	}

	var out model.TimetableEntryModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Preload("Timings").Preload("Subject").Preload("Allocation.Room").
		First(&out, "timetable_entry_id = ?", entryID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reload timetable entry")
	}
	return helper.JsonCreated(c, "Timetable entry saved", dto.ToTimetableEntryResponse(out))
}

func (ctl *TimetableController) List(c *fiber.Ctx) error {
	var q dto.ListTimetableQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}

	db := ctl.DB.WithContext(c.UserContext()).Model(&model.TimetableEntryModel{}).
		Preload("Timings").Preload("Subject").Preload("Allocation.Room")

	if q.AllocationID != "" {
		id, err := uuid.Parse(q.AllocationID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid allocation_id")
		}
		db = db.Where("timetable_entry_allocation_id = ?", id)
	}
	if q.AllocationIDs != "" {
		ids := []uuid.UUID{}
		for _, raw := range strings.Split(q.AllocationIDs, ",") {
			id, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				return helper.JsonError(c, fiber.StatusBadRequest, "Invalid allocation_ids")
			}
			ids = append(ids, id)
		}
		db = db.Where("timetable_entry_allocation_id IN ?", ids)
	}
	if q.AcademicYear != "" || q.SemesterType != "" {
		sub := ctl.DB.Model(&allocModel.AllocationModel{}).Select("allocation_id")
		if q.AcademicYear != "" {
			sub = sub.Where("allocation_academic_year = ?", q.AcademicYear)
		}
		if q.SemesterType != "" {
			sub = sub.Where("allocation_semester_type = ?", q.SemesterType)
		}
		db = db.Where("timetable_entry_allocation_id IN (?)", sub)
	}

	var rows []model.TimetableEntryModel
	if err := db.Order("timetable_entry_created_at ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch timetable entries")
	}

	out := make([]dto.TimetableEntryResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToTimetableEntryResponse(m))
	}
	return helper.JsonList(c, "", out, nil)
}

func (ctl *TimetableController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid entry ID")
	}
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.TimetableTimingModel{}, "timetable_timing_entry_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.TimetableEntryModel{}, "timetable_entry_id = ?", id)
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
			return helper.JsonError(c, fiber.StatusNotFound, "Timetable entry not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete timetable entry")
	}
	return helper.JsonDeleted(c, "Timetable entry deleted", fiber.Map{"timetable_entry_id": id})
}

func (ctl *TimetableController) DeleteTiming(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("timingId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid timing ID")
	}
	tx := ctl.DB.WithContext(c.UserContext()).Delete(&model.TimetableTimingModel{}, "timetable_timing_id = ?", id)
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete timing")
	}
	if tx.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Timing not found")
	}
	return helper.JsonDeleted(c, "Timing deleted", fiber.Map{"timetable_timing_id": id})
}
