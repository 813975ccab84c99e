// file: internals/features/academics/timetable/dto/import_dto.go
package dto

import "strings"

// ImportRow is one flat timetable cell from a bulk upload, JSON or xlsx.
type ImportRow struct {
	Semester   int    `json:"semester" validate:"required,min=1,max=8"`
	Branch     string `json:"branch" validate:"required"`
	Section    string `json:"section" validate:"required"`
	RoomNumber string `json:"room_number" validate:"required"`
	RoomType   string `json:"room_type,omitempty" validate:"omitempty,oneof=Classroom Lab"`
	CourseCode string `json:"course_code" validate:"required"`
	Day        string `json:"day" validate:"required"`
	TimeSlot   string `json:"time_slot" validate:"required"`
}

func (r *ImportRow) Normalize() {
	r.Branch = strings.ToUpper(strings.TrimSpace(r.Branch))
	r.Section = strings.ToUpper(strings.TrimSpace(r.Section))
	r.RoomNumber = strings.TrimSpace(r.RoomNumber)
	r.RoomType = strings.TrimSpace(r.RoomType)
	r.CourseCode = strings.ToUpper(strings.TrimSpace(r.CourseCode))
	r.Day = strings.TrimSpace(r.Day)
	r.TimeSlot = strings.TrimSpace(r.TimeSlot)
}

type ImportRequest struct {
	AcademicYear string      `json:"academic_year" validate:"required,min=4,max=9"`
	SemesterType string      `json:"semester_type" validate:"required,oneof=odd even"`
	Rows         []ImportRow `json:"rows" validate:"omitempty,dive"`
}

type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Total    int              `json:"total"`
	Imported int              `json:"imported"`
	Failed   int              `json:"failed"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}
