// file: internals/features/reports/controller/report_controller.go
package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"kampusku_backend/internals/constants"
	allocModel "kampusku_backend/internals/features/academics/allocations/model"
	ttModel "kampusku_backend/internals/features/academics/timetable/model"
	"kampusku_backend/internals/features/reports/dto"
	classModel "kampusku_backend/internals/features/teaching/classes/model"
	"kampusku_backend/internals/features/teaching/classes/service"
	helper "kampusku_backend/internals/helpers"
)

type ReportController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewReportController(db *gorm.DB, v *validator.Validate) *ReportController {
	return &ReportController{DB: db, Validate: v}
}

/* =======================================================
   Attendance report (per teacher class)
   ======================================================= */

// AttendanceReport aggregates per-student attendance across all sessions of
// a class. ?format=xlsx streams a spreadsheet instead of JSON.
func (ctl *ReportController) AttendanceReport(c *fiber.Ctx) error {
	tc, fe := ctl.ownedClass(c)
	if fe != nil {
		return helper.JsonErrorFrom(c, fe)
	}
	db := ctl.DB.WithContext(c.UserContext())

	var totalSessions int64
	if err := db.Table("class_sessions").
		Where("class_session_teacher_class_id = ?", tc.TeacherClassID).
		Count(&totalSessions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count sessions")
	}

	var rows []dto.AttendanceReportRow
	err := db.Table("class_students").
		Select(`students.student_id,
			students.student_roll_number,
			students.student_name,
			COUNT(CASE WHEN attendance_records.attendance_record_status = 'Present' THEN 1 END) AS present,
			COUNT(CASE WHEN attendance_records.attendance_record_status = 'Absent' THEN 1 END) AS absent,
			COUNT(CASE WHEN attendance_records.attendance_record_status = 'Leave' THEN 1 END) AS leave,
			COUNT(attendance_records.attendance_record_id) AS recorded`).
		Joins("JOIN students ON students.student_id = class_students.class_student_student_id").
		Joins(`LEFT JOIN attendance_records ON attendance_records.attendance_record_student_id = students.student_id
			AND attendance_records.attendance_record_session_id IN (
				SELECT class_session_id FROM class_sessions WHERE class_session_teacher_class_id = ?)`, tc.TeacherClassID).
		Where("class_students.class_student_class_id = ?", tc.TeacherClassID).
		Group("students.student_id, students.student_roll_number, students.student_name").
		Order("students.student_roll_number ASC").
		Scan(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build report")
	}
	for i := range rows {
		if rows[i].Recorded > 0 {
			rows[i].Percentage = float64(rows[i].Present) * 100 / float64(rows[i].Recorded)
		}
	}

	detail, derr := service.ResolveFrom(db, *tc)
	if derr != nil {
		detail = nil
	}

	if c.Query("format") == "xlsx" {
		return ctl.attendanceXLSX(c, detail, rows)
	}
	return helper.JsonOK(c, "", dto.AttendanceReport{
		Class:         detail,
		TotalSessions: totalSessions,
		Rows:          rows,
	})
}

func (ctl *ReportController) attendanceXLSX(c *fiber.Ctx, detail *service.ClassDetail, rows []dto.AttendanceReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build spreadsheet")
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Roll Number", "Name", "Present", "Absent", "Leave", "Recorded", "Percentage"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.StudentRollNumber)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.StudentName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Present)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Absent)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Leave)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Recorded)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), fmt.Sprintf("%.1f%%", r.Percentage))
	}

	name := "attendance"
	if detail != nil {
		name = fmt.Sprintf("attendance_%s_%s", detail.SubjectCode, detail.Section)
	}
	return streamXLSX(c, f, name)
}

/* =======================================================
   Timetable grid export (per allocation)
   ======================================================= */

// TimetableExport writes one allocation's weekly grid (slots x days) as xlsx.
func (ctl *ReportController) TimetableExport(c *fiber.Ctx) error {
	allocationID, err := uuid.Parse(c.Query("allocation_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "allocation_id is required")
	}
	db := ctl.DB.WithContext(c.UserContext())

	var alloc allocModel.AllocationModel
	if err := db.First(&alloc, "allocation_id = ?", allocationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Allocation not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch allocation")
	}

	var entries []ttModel.TimetableEntryModel
	if err := db.Preload("Subject").Preload("Timings").
		Where("timetable_entry_allocation_id = ?", allocationID).
		Find(&entries).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch entries")
	}

	// cell key day|slot -> subject label
	grid := map[string]string{}
	for _, e := range entries {
		label := ""
		if e.Subject != nil {
			label = e.Subject.SubjectShortName
			if label == "" {
				label = e.Subject.SubjectCourseCode
			}
		}
		for _, t := range e.Timings {
			grid[t.TimetableTimingDay+"|"+t.TimetableTimingTimeSlot] = label
		}
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Timetable"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build spreadsheet")
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	f.SetCellValue(sheet, "A1", fmt.Sprintf("%s %s sem %d — %s %s",
		alloc.AllocationAcademicYear, alloc.AllocationSemesterType,
		alloc.AllocationSemester, alloc.AllocationBranch, alloc.AllocationSection))

	// header row: slot column then one column per day
	f.SetCellValue(sheet, "A2", "Time")
	for i, day := range constants.Days {
		cell, _ := excelize.CoordinatesToCellName(i+2, 2)
		f.SetCellValue(sheet, cell, day)
	}
	for r, slot := range constants.TimeSlots {
		rowCell, _ := excelize.CoordinatesToCellName(1, r+3)
		f.SetCellValue(sheet, rowCell, slot)
		for col, day := range constants.Days {
			if label, ok := grid[day+"|"+slot]; ok {
				cell, _ := excelize.CoordinatesToCellName(col+2, r+3)
				f.SetCellValue(sheet, cell, label)
			}
		}
	}

	name := fmt.Sprintf("timetable_%s_%s_%d", alloc.AllocationBranch, alloc.AllocationSection, alloc.AllocationSemester)
	return streamXLSX(c, f, name)
}

/* =======================================================
   Helpers
   ======================================================= */

func streamXLSX(c *fiber.Ctx, f *excelize.File, baseName string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to write spreadsheet")
	}
	fileName := fmt.Sprintf("%s_%s.xlsx", baseName, time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+fileName)
	return c.Send(buf.Bytes())
}

// ownedClass loads :id and enforces ownership (admin passes). Failures come
// back as *fiber.Error for the handler to render.
func (ctl *ReportController) ownedClass(c *fiber.Ctx) (*classModel.TeacherClassModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid class ID")
	}
	var tc classModel.TeacherClassModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&tc, "teacher_class_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class")
	}
	if helper.GetUserRole(c) != "admin" {
		teacherID, err := helper.GetUserID(c)
		if err != nil || tc.TeacherClassTeacherID != teacherID {
			return nil, fiber.NewError(fiber.StatusForbidden, "Class does not belong to you")
		}
	}
	return &tc, nil
}
