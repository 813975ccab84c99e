// file: internals/features/academics/timetable/controller/import_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"kampusku_backend/internals/constants"
	allocModel "kampusku_backend/internals/features/academics/allocations/model"
	roomModel "kampusku_backend/internals/features/academics/rooms/model"
	subjectModel "kampusku_backend/internals/features/academics/subjects/model"
	"kampusku_backend/internals/features/academics/timetable/dto"
	"kampusku_backend/internals/features/academics/timetable/model"
	helper "kampusku_backend/internals/helpers"
)

type ImportController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewImportController(db *gorm.DB, v *validator.Validate) *ImportController {
	return &ImportController{DB: db, Validate: v}
}

// Import loads a whole term's timetable in one request: a JSON body, or a
// multipart .xlsx upload. The term's existing entries are wiped first, then
// rows are applied best-effort: a bad row is reported and skipped, the rest
// still land.
func (ctl *ImportController) Import(c *fiber.Ctx) error {
	req, fe := ctl.parseRequest(c)
	if fe != nil {
		return helper.JsonErrorFrom(c, fe)
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if len(req.Rows) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "No rows to import")
	}

	db := ctl.DB.WithContext(c.UserContext())

	if err := ctl.wipeTerm(db, req.AcademicYear, req.SemesterType); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to clear existing timetable")
	}

	result := dto.ImportResult{Total: len(req.Rows)}
	for i, row := range req.Rows {
		row.Normalize()
		if reason := ctl.importRow(db, req.AcademicYear, req.SemesterType, row); reason != "" {
			result.Failed++
			result.Errors = append(result.Errors, dto.ImportRowError{Row: i + 1, Reason: reason})
			continue
		}
		result.Imported++
	}

	log.Printf("[INFO] import: %d/%d rows imported for %s %s", result.Imported, result.Total, req.AcademicYear, req.SemesterType)
	return helper.JsonOK(c, "Import finished", result)
}

// importRow applies one cell in its own transaction so one bad row never
// poisons its neighbours. Returns "" on success, a reason otherwise.
func (ctl *ImportController) importRow(db *gorm.DB, year, semType string, row dto.ImportRow) string {
	if !constants.InSet(constants.Branches, row.Branch) {
		return "unknown branch: " + row.Branch
	}
	if !constants.InSet(constants.Sections, row.Section) {
		return "unknown section: " + row.Section
	}
	if !constants.InSet(constants.Days, row.Day) {
		return "unknown day: " + row.Day
	}
	if constants.SlotIndex(row.TimeSlot) < 0 {
		return "unknown time slot: " + row.TimeSlot
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		var subject subjectModel.SubjectModel
		if err := tx.First(&subject, "subject_course_code = ?", row.CourseCode).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("unknown course code: %s", row.CourseCode)
			}
			return err
		}

		room, err := findOrCreateRoom(tx, row.RoomNumber, row.RoomType)
		if err != nil {
			return err
		}

		dayHalf := ""
		if room.RoomType == constants.RoomTypeClassroom {
			dayHalf = constants.DayHalfForSlot(row.TimeSlot)
		}

		var alloc allocModel.AllocationModel
		err = tx.Where(
			"allocation_academic_year = ? AND allocation_semester_type = ? AND allocation_semester = ? AND allocation_branch = ? AND allocation_section = ? AND allocation_day_half = ?",
			year, semType, row.Semester, row.Branch, row.Section, dayHalf,
		).First(&alloc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			alloc = allocModel.AllocationModel{
				AllocationAcademicYear: year,
				AllocationSemesterType: semType,
				AllocationSemester:     row.Semester,
				AllocationBranch:       row.Branch,
				AllocationSection:      row.Section,
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
			alloc.AllocationID, subject.SubjectID).First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			entry = model.TimetableEntryModel{
				TimetableEntryAllocationID: alloc.AllocationID,
				TimetableEntrySubjectID:    subject.SubjectID,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		return insertTimings(tx, alloc, entry.TimetableEntryID, []dto.TimingInput{{Day: row.Day, TimeSlot: row.TimeSlot}})
	})
	if txErr != nil {
		return txErr.Error()
	}
	return ""
}

func findOrCreateRoom(tx *gorm.DB, number, roomType string) (*roomModel.RoomModel, error) {
	var room roomModel.RoomModel
	err := tx.First(&room, "room_number = ?", number).Error
	if err == nil {
		return &room, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if roomType == "" {
		roomType = constants.RoomTypeClassroom
	}
	room = roomModel.RoomModel{
		RoomNumber:   number,
		RoomType:     roomType,
		RoomIsActive: true,
	}
	if err := tx.Create(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// wipeTerm removes every entry and timing under the term's allocations.
// The allocations themselves stay; rooms keep their bindings.
func (ctl *ImportController) wipeTerm(db *gorm.DB, year, semType string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&allocModel.AllocationModel{}).Select("allocation_id").
			Where("allocation_academic_year = ? AND allocation_semester_type = ?", year, semType)

		var entryIDs []string
		if err := tx.Model(&model.TimetableEntryModel{}).
			Where("timetable_entry_allocation_id IN (?)", sub).
			Pluck("timetable_entry_id", &entryIDs).Error; err != nil {
			return err
		}
		if len(entryIDs) == 0 {
			return nil
		}
		if err := tx.Delete(&model.TimetableTimingModel{}, "timetable_timing_entry_id IN ?", entryIDs).Error; err != nil {
			return err
		}
		return tx.Delete(&model.TimetableEntryModel{}, "timetable_entry_id IN ?", entryIDs).Error
	})
}

/* =======================================================
   Request parsing (JSON or multipart xlsx)
   ======================================================= */

func (ctl *ImportController) parseRequest(c *fiber.Ctx) (*dto.ImportRequest, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		var req dto.ImportRequest
		if err := c.BodyParser(&req); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
		}
		return &req, nil
	}

	req := dto.ImportRequest{
		AcademicYear: strings.TrimSpace(c.FormValue("academic_year")),
		SemesterType: strings.ToLower(strings.TrimSpace(c.FormValue("semester_type"))),
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Failed to open upload")
	}
	defer src.Close()

	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File is not a valid xlsx workbook")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Failed to read sheet")
	}

	// Fixed column order, header on row 1:
	// semester | branch | section | room_number | room_type | course_code | day | time_slot
	for i, cells := range rows {
		if i == 0 {
			continue
		}
		if len(cells) < 8 {
			continue
		}
		semester, _ := strconv.Atoi(strings.TrimSpace(cells[0]))
		req.Rows = append(req.Rows, dto.ImportRow{
			Semester:   semester,
			Branch:     cells[1],
			Section:    cells[2],
			RoomNumber: cells[3],
			RoomType:   cells[4],
			CourseCode: cells[5],
			Day:        cells[6],
			TimeSlot:   cells[7],
		})
	}
	return &req, nil
}
