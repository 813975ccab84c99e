// file: internals/features/teaching/attendance/controller/attendance_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kampusku_backend/internals/features/teaching/attendance/dto"
	"kampusku_backend/internals/features/teaching/attendance/model"
	classModel "kampusku_backend/internals/features/teaching/classes/model"
	sessionModel "kampusku_backend/internals/features/teaching/sessions/model"
	helper "kampusku_backend/internals/helpers"
)

type AttendanceController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAttendanceController(db *gorm.DB, v *validator.Validate) *AttendanceController {
	return &AttendanceController{DB: db, Validate: v}
}

/* =======================================================
   Roster
   ======================================================= */

// Roster lists every student enrolled in the session's class, left-joined
// with any stored attendance. Unrecorded students default to Present for
// display only; nothing is written here.
func (ctl *AttendanceController) Roster(c *fiber.Ctx) error {
	session, fe := ctl.ownedSession(c)
	if fe != nil {
		return helper.JsonErrorFrom(c, fe)
	}

	var rows []dto.RosterRow
	err := ctl.DB.WithContext(c.UserContext()).
		Table("class_students").
		Select(`students.student_id,
			students.student_roll_number,
			students.student_name,
			COALESCE(attendance_records.attendance_record_status, ?) AS status,
			attendance_records.attendance_record_id IS NOT NULL AS recorded`, model.AttendancePresent).
		Joins("JOIN students ON students.student_id = class_students.class_student_student_id").
		Joins("LEFT JOIN attendance_records ON attendance_records.attendance_record_student_id = students.student_id AND attendance_records.attendance_record_session_id = ?", session.ClassSessionID).
		Where("class_students.class_student_class_id = ?", session.ClassSessionTeacherClassID).
		Order("students.student_roll_number ASC").
		Scan(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch roster")
	}
	return helper.JsonList(c, "", rows, nil)
}

/* =======================================================
   Writers
   ======================================================= */

// Mark upserts the listed records and flips the session to Completed, all
// in one transaction. Re-marking a student overwrites the previous status
// instead of erroring.
func (ctl *AttendanceController) Mark(c *fiber.Ctx) error {
	session, fe := ctl.ownedSession(c)
	if fe != nil {
		return helper.JsonErrorFrom(c, fe)
	}

	var req dto.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	records := dedupeRecords(req.Records)
	if fe := ctl.checkEnrolled(c, session, records); fe != nil {
		return helper.JsonErrorFrom(c, fe)
	}

	err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		recs := make([]model.AttendanceRecordModel, 0, len(records))
		for _, r := range records {
			recs = append(recs, model.AttendanceRecordModel{
				AttendanceRecordStudentID: r.StudentID,
				AttendanceRecordSessionID: session.ClassSessionID,
				AttendanceRecordStatus:    r.Status,
			})
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "attendance_record_student_id"}, {Name: "attendance_record_session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"attendance_record_status", "attendance_record_recorded_at"}),
		}).Create(&recs).Error; err != nil {
			return err
		}
		return tx.Model(&sessionModel.ClassSessionModel{}).
			Where("class_session_id = ?", session.ClassSessionID).
			Update("class_session_status", sessionModel.SessionCompleted).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record attendance")
	}

	return helper.JsonUpdated(c, "Attendance recorded", dto.AttendanceWriteResult{
		SessionID: session.ClassSessionID,
		Written:   len(records),
		Status:    sessionModel.SessionCompleted,
	})
}

// Replace swaps the session's whole sheet: delete everything, insert the
// new rows, mark the session Completed. One transaction, so a failed
// insert never leaves the sheet empty.
func (ctl *AttendanceController) Replace(c *fiber.Ctx) error {
	session, fe := ctl.ownedSession(c)
	if fe != nil {
		return helper.JsonErrorFrom(c, fe)
	}

	var req dto.ReplaceAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	records := dedupeRecords(req.Records)
	if fe := ctl.checkEnrolled(c, session, records); fe != nil {
		return helper.JsonErrorFrom(c, fe)
	}

	err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.AttendanceRecordModel{}, "attendance_record_session_id = ?", session.ClassSessionID).Error; err != nil {
			return err
		}
		if len(records) > 0 {
			recs := make([]model.AttendanceRecordModel, 0, len(records))
			for _, r := range records {
				recs = append(recs, model.AttendanceRecordModel{
					AttendanceRecordStudentID: r.StudentID,
					AttendanceRecordSessionID: session.ClassSessionID,
					AttendanceRecordStatus:    r.Status,
				})
			}
			if err := tx.Create(&recs).Error; err != nil {
				return err
			}
		}
		return tx.Model(&sessionModel.ClassSessionModel{}).
			Where("class_session_id = ?", session.ClassSessionID).
			Update("class_session_status", sessionModel.SessionCompleted).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to replace attendance")
	}

	return helper.JsonUpdated(c, "Attendance replaced", dto.AttendanceWriteResult{
		SessionID: session.ClassSessionID,
		Written:   len(records),
		Status:    sessionModel.SessionCompleted,
	})
}

/* =======================================================
   Helpers
   ======================================================= */

// dedupeRecords keeps one item per student, last listed status wins. A
// duplicate student inside one upsert statement is a database error, so
// collapsing here is what makes "last wins" hold within a single payload too.
func dedupeRecords(items []dto.MarkAttendanceItem) []dto.MarkAttendanceItem {
	idx := make(map[uuid.UUID]int, len(items))
	out := make([]dto.MarkAttendanceItem, 0, len(items))
	for _, r := range items {
		if i, ok := idx[r.StudentID]; ok {
			out[i].Status = r.Status
			continue
		}
		idx[r.StudentID] = len(out)
		out = append(out, r)
	}
	return out
}

// checkEnrolled rejects records naming students outside the class roster.
// Failures come back as *fiber.Error for the handler to render.
func (ctl *AttendanceController) checkEnrolled(c *fiber.Ctx, session *sessionModel.ClassSessionModel, items []dto.MarkAttendanceItem) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, r := range items {
		ids = append(ids, r.StudentID)
	}
	var n int64
	if err := ctl.DB.WithContext(c.UserContext()).Table("class_students").
		Where("class_student_class_id = ? AND class_student_student_id IN ?", session.ClassSessionTeacherClassID, ids).
		Count(&n).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to verify enrollment")
	}
	if int(n) != len(ids) {
		return fiber.NewError(fiber.StatusBadRequest, "One or more students are not enrolled in this class")
	}
	return nil
}

// ownedSession loads :id and enforces that the caller owns the class behind
// it. Failures come back as *fiber.Error for the handler to render.
func (ctl *AttendanceController) ownedSession(c *fiber.Ctx) (*sessionModel.ClassSessionModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session ID")
	}
	var session sessionModel.ClassSessionModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&session, "class_session_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch session")
	}

	if helper.GetUserRole(c) != "admin" {
		teacherID, err := helper.GetUserID(c)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		var tc classModel.TeacherClassModel
		if err := ctl.DB.WithContext(c.UserContext()).
			First(&tc, "teacher_class_id = ?", session.ClassSessionTeacherClassID).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class")
		}
		if tc.TeacherClassTeacherID != teacherID {
			return nil, fiber.NewError(fiber.StatusForbidden, "Class does not belong to you")
		}
	}
	return &session, nil
}
