// file: internals/features/teaching/sessions/controller/class_session_controller.go
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
	attModel "kampusku_backend/internals/features/teaching/attendance/model"
	classModel "kampusku_backend/internals/features/teaching/classes/model"
	"kampusku_backend/internals/features/teaching/classes/service"
	"kampusku_backend/internals/features/teaching/sessions/dto"
	"kampusku_backend/internals/features/teaching/sessions/model"
	helper "kampusku_backend/internals/helpers"
)

type ClassSessionController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewClassSessionController(db *gorm.DB, v *validator.Validate) *ClassSessionController {
	return &ClassSessionController{DB: db, Validate: v}
}

func (ctl *ClassSessionController) Create(c *fiber.Ctx) error {
	var req dto.CreateClassSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	tc, fe := ctl.ownedTeacherClass(c, req.TeacherClassID)
	if fe != nil {
		return helper.JsonErrorFrom(c, fe)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
	}

	m := model.ClassSessionModel{
		ClassSessionTeacherClassID: tc.TeacherClassID,
		ClassSessionDate:           date,
		ClassSessionStartTime:      req.StartTime,
		ClassSessionEndTime:        req.EndTime,
		ClassSessionStatus:         model.SessionScheduled,
		ClassSessionNotes:          req.Notes,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create session")
	}

	detail, _ := service.ResolveFrom(ctl.DB.WithContext(c.UserContext()), *tc)
	return helper.JsonCreated(c, "Session created", dto.ToClassSessionResponse(m, detail))
}

func (ctl *ClassSessionController) List(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	p := helper.ResolvePaging(c, 50, 200)

	db := ctl.DB.WithContext(c.UserContext()).Model(&model.ClassSessionModel{}).
		Joins("JOIN teacher_classes ON teacher_classes.teacher_class_id = class_sessions.class_session_teacher_class_id")
	if helper.GetUserRole(c) != "admin" {
		db = db.Where("teacher_classes.teacher_class_teacher_id = ?", teacherID)
	}

	if v := strings.TrimSpace(c.Query("teacher_class_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher_class_id")
		}
		db = db.Where("class_session_teacher_class_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("date_from")); v != "" {
		db = db.Where("class_session_date >= ?", v)
	}
	if v := strings.TrimSpace(c.Query("date_to")); v != "" {
		db = db.Where("class_session_date <= ?", v)
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		db = db.Where("class_session_status = ?", v)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count sessions")
	}
	var rows []model.ClassSessionModel
	if err := db.Order("class_session_date DESC, class_session_start_time DESC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch sessions")
	}

	out := make([]dto.ClassSessionResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToClassSessionResponse(m, nil))
	}
	return helper.JsonList(c, "", out, helper.BuildPagination(total, p.Page, p.PerPage))
}

func (ctl *ClassSessionController) GetByID(c *fiber.Ctx) error {
	m, tc, fe := ctl.ownedSession(c)
	if fe != nil {
		return helper.JsonErrorFrom(c, fe)
	}
	detail, derr := service.ResolveFrom(ctl.DB.WithContext(c.UserContext()), *tc)
	if derr != nil {
		detail = nil
	}
	return helper.JsonOK(c, "", dto.ToClassSessionResponse(*m, detail))
}

func (ctl *ClassSessionController) Update(c *fiber.Ctx) error {
	m, _, fe := ctl.ownedSession(c)
	if fe != nil {
		return helper.JsonErrorFrom(c, fe)
	}

	var req dto.UpdateClassSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.Status != nil && !constants.InSet(model.SessionStatuses, *req.Status) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid session status")
	}

	updates := req.BuildUpdateMap()
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "No fields to update")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Model(m).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update session")
	}
	return helper.JsonUpdated(c, "Session updated", dto.ToClassSessionResponse(*m, nil))
}

// Delete removes the session together with its attendance records.
func (ctl *ClassSessionController) Delete(c *fiber.Ctx) error {
	m, _, fe := ctl.ownedSession(c)
	if fe != nil {
		return helper.JsonErrorFrom(c, fe)
	}

	err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&attModel.AttendanceRecordModel{}, "attendance_record_session_id = ?", m.ClassSessionID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ClassSessionModel{}, "class_session_id = ?", m.ClassSessionID).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete session")
	}
	return helper.JsonDeleted(c, "Session deleted", fiber.Map{"class_session_id": m.ClassSessionID})
}

/* =======================================================
   Helpers
   ======================================================= */

// ownedSession loads :id plus its teacher class and enforces ownership.
// Failures come back as *fiber.Error for the handler to render.
func (ctl *ClassSessionController) ownedSession(c *fiber.Ctx) (*model.ClassSessionModel, *classModel.TeacherClassModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session ID")
	}
	var m model.ClassSessionModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "class_session_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
		}
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch session")
	}
	tc, fe := ctl.ownedTeacherClass(c, m.ClassSessionTeacherClassID)
	if fe != nil {
		return nil, nil, fe
	}
	return &m, tc, nil
}

func (ctl *ClassSessionController) ownedTeacherClass(c *fiber.Ctx, id uuid.UUID) (*classModel.TeacherClassModel, error) {
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
