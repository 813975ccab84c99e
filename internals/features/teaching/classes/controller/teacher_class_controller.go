// file: internals/features/teaching/classes/controller/teacher_class_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	labModel "kampusku_backend/internals/features/academics/labs/model"
	ttModel "kampusku_backend/internals/features/academics/timetable/model"
	attModel "kampusku_backend/internals/features/teaching/attendance/model"
	"kampusku_backend/internals/features/teaching/classes/dto"
	"kampusku_backend/internals/features/teaching/classes/model"
	"kampusku_backend/internals/features/teaching/classes/service"
	sessionModel "kampusku_backend/internals/features/teaching/sessions/model"
	studentModel "kampusku_backend/internals/features/teaching/students/model"
	helper "kampusku_backend/internals/helpers"
)

type TeacherClassController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewTeacherClassController(db *gorm.DB, v *validator.Validate) *TeacherClassController {
	return &TeacherClassController{DB: db, Validate: v}
}

// Create assigns the calling teacher to a timetable entry or a lab entry —
// exactly one of the two.
func (ctl *TeacherClassController) Create(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateTeacherClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	switch req.AllocationType {
	case model.AllocationTypeClass:
		if req.TimetableEntryID == nil || req.LabEntryID != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "allocation_type class requires timetable_entry_id only")
		}
		var n int64
		if err := ctl.DB.WithContext(c.UserContext()).Model(&ttModel.TimetableEntryModel{}).
			Where("timetable_entry_id = ?", *req.TimetableEntryID).Count(&n).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check timetable entry")
		}
		if n == 0 {
			return helper.JsonError(c, fiber.StatusNotFound, "Timetable entry not found")
		}
	case model.AllocationTypeLab:
		if req.LabEntryID == nil || req.TimetableEntryID != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "allocation_type lab requires lab_entry_id only")
		}
		var n int64
		if err := ctl.DB.WithContext(c.UserContext()).Model(&labModel.LabEntryModel{}).
			Where("lab_entry_id = ?", *req.LabEntryID).Count(&n).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check lab entry")
		}
		if n == 0 {
			return helper.JsonError(c, fiber.StatusNotFound, "Lab entry not found")
		}
	}

	m := model.TeacherClassModel{
		TeacherClassTeacherID:        teacherID,
		TeacherClassAllocationType:   req.AllocationType,
		TeacherClassTimetableEntryID: req.TimetableEntryID,
		TeacherClassLabEntryID:       req.LabEntryID,
		TeacherClassNotes:            req.Notes,
		TeacherClassIsActive:         true,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "You are already assigned to this entry")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create assignment")
	}

	detail, _ := service.ResolveFrom(ctl.DB.WithContext(c.UserContext()), m)
	return helper.JsonCreated(c, "Class assignment created", dto.ToTeacherClassResponse(m, detail))
}

func (ctl *TeacherClassController) List(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var rows []model.TeacherClassModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("teacher_class_teacher_id = ?", teacherID).
		Order("teacher_class_assigned_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classes")
	}

	out := make([]dto.TeacherClassResponse, 0, len(rows))
	for _, m := range rows {
		detail, derr := service.ResolveFrom(ctl.DB.WithContext(c.UserContext()), m)
		if derr != nil {
			detail = nil // broken arm still listed, just without detail
		}
		out = append(out, dto.ToTeacherClassResponse(m, detail))
	}
	return helper.JsonList(c, "", out, nil)
}

func (ctl *TeacherClassController) GetByID(c *fiber.Ctx) error {
	m, fe := ctl.ownedClass(c)
	if fe != nil {
		return helper.JsonErrorFrom(c, fe)
	}
	detail, derr := service.ResolveFrom(ctl.DB.WithContext(c.UserContext()), *m)
	if derr != nil {
		detail = nil
	}
	return helper.JsonOK(c, "", dto.ToTeacherClassResponse(*m, detail))
}

func (ctl *TeacherClassController) Update(c *fiber.Ctx) error {
	m, fe := ctl.ownedClass(c)
	if fe != nil {
		return helper.JsonErrorFrom(c, fe)
	}

	var req dto.UpdateTeacherClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	updates := map[string]interface{}{}
	if req.IsActive != nil {
		updates["teacher_class_is_active"] = *req.IsActive
	}
	if req.Notes != nil {
		updates["teacher_class_notes"] = req.Notes
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "No fields to update")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Model(m).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update assignment")
	}
	return helper.JsonUpdated(c, "Assignment updated", dto.ToTeacherClassResponse(*m, nil))
}

// Delete removes the assignment with its sessions, enrollments and
// attendance in one transaction.
func (ctl *TeacherClassController) Delete(c *fiber.Ctx) error {
	m, fe := ctl.ownedClass(c)
	if fe != nil {
		return helper.JsonErrorFrom(c, fe)
	}

	err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var sessionIDs []uuid.UUID
		if err := tx.Model(&sessionModel.ClassSessionModel{}).
			Where("class_session_teacher_class_id = ?", m.TeacherClassID).
			Pluck("class_session_id", &sessionIDs).Error; err != nil {
			return err
		}
		if len(sessionIDs) > 0 {
			if err := tx.Delete(&attModel.AttendanceRecordModel{}, "attendance_record_session_id IN ?", sessionIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&sessionModel.ClassSessionModel{}, "class_session_id IN ?", sessionIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&studentModel.ClassStudentModel{}, "class_student_class_id = ?", m.TeacherClassID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.TeacherClassModel{}, "teacher_class_id = ?", m.TeacherClassID).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete assignment")
	}
	return helper.JsonDeleted(c, "Assignment deleted", fiber.Map{"teacher_class_id": m.TeacherClassID})
}

/* =======================================================
   Enrollment
   ======================================================= */

func (ctl *TeacherClassController) EnrollStudent(c *fiber.Ctx) error {
	m, fe := ctl.ownedClass(c)
	if fe != nil {
		return helper.JsonErrorFrom(c, fe)
	}

	var req dto.EnrollStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}

	var student studentModel.StudentModel
	var err error
	switch {
	case req.StudentID != nil:
		err = ctl.DB.WithContext(c.UserContext()).First(&student, "student_id = ?", *req.StudentID).Error
	case strings.TrimSpace(req.RollNumber) != "":
		err = ctl.DB.WithContext(c.UserContext()).First(&student, "student_roll_number = ?", strings.TrimSpace(req.RollNumber)).Error
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id or roll_number is required")
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	enr := studentModel.ClassStudentModel{
		ClassStudentClassID:   m.TeacherClassID,
		ClassStudentStudentID: student.StudentID,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&enr).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Student is already enrolled in this class")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to enroll student")
	}
	enr.Student = &student
	return helper.JsonCreated(c, "Student enrolled", enr)
}

func (ctl *TeacherClassController) ListStudents(c *fiber.Ctx) error {
	m, fe := ctl.ownedClass(c)
	if fe != nil {
		return helper.JsonErrorFrom(c, fe)
	}

	var rows []studentModel.ClassStudentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Preload("Student").
		Joins("JOIN students ON students.student_id = class_students.class_student_student_id").
		Where("class_student_class_id = ?", m.TeacherClassID).
		Order("students.student_roll_number ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch roster")
	}
	return helper.JsonList(c, "", rows, nil)
}

func (ctl *TeacherClassController) UnenrollStudent(c *fiber.Ctx) error {
	m, fe := ctl.ownedClass(c)
	if fe != nil {
		return helper.JsonErrorFrom(c, fe)
	}
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student ID")
	}
	tx := ctl.DB.WithContext(c.UserContext()).
		Delete(&studentModel.ClassStudentModel{}, "class_student_class_id = ? AND class_student_student_id = ?", m.TeacherClassID, studentID)
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to unenroll student")
	}
	if tx.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Enrollment not found")
	}
	return helper.JsonDeleted(c, "Student unenrolled", fiber.Map{"student_id": studentID})
}

/* =======================================================
   Helpers
   ======================================================= */

// ownedClass loads :id and enforces that the caller owns it (admin passes).
// Failures come back as *fiber.Error for the handler to render.
func (ctl *TeacherClassController) ownedClass(c *fiber.Ctx) (*model.TeacherClassModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid class ID")
	}
	var m model.TeacherClassModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "teacher_class_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class")
	}

	if helper.GetUserRole(c) != "admin" {
		teacherID, err := helper.GetUserID(c)
		if err != nil || m.TeacherClassTeacherID != teacherID {
			return nil, fiber.NewError(fiber.StatusForbidden, "Class does not belong to you")
		}
	}
	return &m, nil
}
