// file: internals/features/teaching/classes/service/class_detail_service.go
package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	labModel "kampusku_backend/internals/features/academics/labs/model"
	ttModel "kampusku_backend/internals/features/academics/timetable/model"
	"kampusku_backend/internals/features/teaching/classes/model"
)

// ClassDetail is the one resolved view of a teacher class, whichever side of
// the class/lab union it sits on. Handlers use this instead of re-running the
// two join paths themselves.
type ClassDetail struct {
	TeacherClassID uuid.UUID `json:"teacher_class_id"`
	TeacherID      uuid.UUID `json:"teacher_id"`
	AllocationType string    `json:"allocation_type"` // class | lab
	IsActive       bool      `json:"is_active"`
	Notes          *string   `json:"notes,omitempty"`

	AcademicYear string `json:"academic_year"`
	SemesterType string `json:"semester_type"`
	Semester     int    `json:"semester"`
	Branch       string `json:"branch"`
	Section      string `json:"section"`

	SubjectCode string `json:"subject_code"`
	SubjectName string `json:"subject_name"`
	RoomNumber  string `json:"room_number"`
}

var ErrBrokenAssignment = errors.New("teacher class references a missing entry")

// Resolve loads the teacher class row and follows exactly one of the two
// reference arms.
func Resolve(db *gorm.DB, teacherClassID uuid.UUID) (*ClassDetail, error) {
	var tc model.TeacherClassModel
	if err := db.First(&tc, "teacher_class_id = ?", teacherClassID).Error; err != nil {
		return nil, err
	}
	return ResolveFrom(db, tc)
}

func ResolveFrom(db *gorm.DB, tc model.TeacherClassModel) (*ClassDetail, error) {
	d := &ClassDetail{
		TeacherClassID: tc.TeacherClassID,
		TeacherID:      tc.TeacherClassTeacherID,
		AllocationType: tc.TeacherClassAllocationType,
		IsActive:       tc.TeacherClassIsActive,
		Notes:          tc.TeacherClassNotes,
	}

	switch tc.TeacherClassAllocationType {
	case model.AllocationTypeClass:
		if tc.TeacherClassTimetableEntryID == nil {
			return nil, ErrBrokenAssignment
		}
		var entry ttModel.TimetableEntryModel
		if err := db.Preload("Subject").Preload("Allocation.Room").
			First(&entry, "timetable_entry_id = ?", *tc.TeacherClassTimetableEntryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBrokenAssignment
			}
			return nil, err
		}
		if entry.Allocation == nil || entry.Subject == nil {
			return nil, ErrBrokenAssignment
		}
		d.AcademicYear = entry.Allocation.AllocationAcademicYear
		d.SemesterType = entry.Allocation.AllocationSemesterType
		d.Semester = entry.Allocation.AllocationSemester
		d.Branch = entry.Allocation.AllocationBranch
		d.Section = entry.Allocation.AllocationSection
		d.SubjectCode = entry.Subject.SubjectCourseCode
		d.SubjectName = entry.Subject.SubjectCourseName
		if entry.Allocation.Room != nil {
			d.RoomNumber = entry.Allocation.Room.RoomNumber
		}

	case model.AllocationTypeLab:
		if tc.TeacherClassLabEntryID == nil {
			return nil, ErrBrokenAssignment
		}
		var lab labModel.LabEntryModel
		if err := db.Preload("Subject").Preload("Room").
			First(&lab, "lab_entry_id = ?", *tc.TeacherClassLabEntryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBrokenAssignment
			}
			return nil, err
		}
		d.AcademicYear = lab.LabEntryAcademicYear
		d.SemesterType = lab.LabEntrySemesterType
		d.Semester = lab.LabEntrySemester
		d.Branch = lab.LabEntryBranch
		d.Section = lab.LabEntrySection
		if lab.Subject != nil {
			d.SubjectCode = lab.Subject.SubjectCourseCode
			d.SubjectName = lab.Subject.SubjectCourseName
		}
		if lab.Room != nil {
			d.RoomNumber = lab.Room.RoomNumber
		}

	default:
		return nil, ErrBrokenAssignment
	}
	return d, nil
}
