// file: internals/features/teaching/classes/controller/teacher_class_controller_test.go
package controller_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kampusku_backend/internals/constants"
	"kampusku_backend/internals/testutil"
)

type classFixture struct {
	app     *fiber.App
	editor  string
	teacher string
	entryID string
	labID   string
}

func newClassFixture(t *testing.T) *classFixture {
	db := testutil.NewTestDB(t)
	f := &classFixture{
		app:     testutil.NewApp(t, db),
		editor:  testutil.TokenFor(t, uuid.New(), constants.RoleEditor),
		teacher: testutil.TokenFor(t, uuid.New(), constants.RoleTeacher),
	}

	code, env := testutil.DoJSON(t, f.app, "POST", "/api/a/rooms/", f.editor, map[string]interface{}{
		"room_number": "LT-501", "room_type": "Classroom",
	})
	require.Equal(t, 201, code, "%v", env)
	roomID := testutil.Data(t, env)["room_id"].(string)

	code, env = testutil.DoJSON(t, f.app, "POST", "/api/a/rooms/", f.editor, map[string]interface{}{
		"room_number": "CSL-5", "room_type": "Lab",
	})
	require.Equal(t, 201, code, "%v", env)
	labRoomID := testutil.Data(t, env)["room_id"].(string)

	code, env = testutil.DoJSON(t, f.app, "POST", "/api/a/subjects/", f.editor, map[string]interface{}{
		"subject_course_code": "CS301",
		"subject_course_name": "Operating Systems",
		"subject_short_name":  "OS",
	})
	require.Equal(t, 201, code, "%v", env)
	subjectID := testutil.Data(t, env)["subject_id"].(string)

	code, env = testutil.DoJSON(t, f.app, "POST", "/api/a/allocations/", f.editor, map[string]interface{}{
		"academic_year": "2025-26",
		"semester_type": "odd",
		"semester":      5,
		"branch":        "CSE",
		"section":       "A",
		"room_id":       roomID,
		"day_half":      "first_half",
	})
	require.Equal(t, 201, code, "%v", env)
	allocID := testutil.Data(t, env)["allocation_id"].(string)

	code, env = testutil.DoJSON(t, f.app, "POST", "/api/a/timetable/", f.editor, map[string]interface{}{
		"allocation_id": allocID,
		"subject_id":    subjectID,
		"timings":       []map[string]string{{"day": "Monday", "time_slot": "9:00-9:55"}},
	})
	require.Equal(t, 201, code, "%v", env)
	f.entryID = testutil.Data(t, env)["timetable_entry_id"].(string)

	code, env = testutil.DoJSON(t, f.app, "POST", "/api/a/labs/", f.editor, map[string]interface{}{
		"room_id":       labRoomID,
		"subject_id":    subjectID,
		"academic_year": "2025-26",
		"semester_type": "odd",
		"semester":      5,
		"branch":        "CSE",
		"section":       "A1",
		"day":           "Friday",
		"start_time":    "10:00",
		"end_time":      "12:00",
	})
	require.Equal(t, 201, code, "%v", env)
	f.labID = testutil.Data(t, env)["lab_entry_id"].(string)
	return f
}

func (f *classFixture) student(t *testing.T, roll string) string {
	t.Helper()
	code, env := testutil.DoJSON(t, f.app, "POST", "/api/t/students/", f.teacher, map[string]interface{}{
		"student_roll_number": roll,
		"student_name":        "Student " + roll,
		"student_email":       roll + "@college.edu",
		"student_batch_year":  2023,
	})
	require.Equal(t, 201, code, "%v", env)
	return testutil.Data(t, env)["student_id"].(string)
}

func TestTeacherClassCreateBothArms(t *testing.T) {
	f := newClassFixture(t)

	code, env := testutil.DoJSON(t, f.app, "POST", "/api/t/classes/", f.teacher, map[string]interface{}{
		"allocation_type":    "class",
		"timetable_entry_id": f.entryID,
	})
	require.Equal(t, 201, code, "%v", env)
	detail := testutil.Data(t, env)["detail"].(map[string]interface{})
	assert.Equal(t, "CS301", detail["subject_code"])
	assert.Equal(t, "LT-501", detail["room_number"])

	code, env = testutil.DoJSON(t, f.app, "POST", "/api/t/classes/", f.teacher, map[string]interface{}{
		"allocation_type": "lab",
		"lab_entry_id":    f.labID,
	})
	require.Equal(t, 201, code, "%v", env)
	detail = testutil.Data(t, env)["detail"].(map[string]interface{})
	assert.Equal(t, "A1", detail["section"])
	assert.Equal(t, "CSL-5", detail["room_number"])
}

func TestTeacherClassExactlyOneArm(t *testing.T) {
	f := newClassFixture(t)

	// class type with a lab id is malformed
	code, _ := testutil.DoJSON(t, f.app, "POST", "/api/t/classes/", f.teacher, map[string]interface{}{
		"allocation_type": "class",
		"lab_entry_id":    f.labID,
	})
	assert.Equal(t, 400, code)

	// both arms at once is malformed too
	code, _ = testutil.DoJSON(t, f.app, "POST", "/api/t/classes/", f.teacher, map[string]interface{}{
		"allocation_type":    "class",
		"timetable_entry_id": f.entryID,
		"lab_entry_id":       f.labID,
	})
	assert.Equal(t, 400, code)
}

func TestTeacherClassDuplicateAssignment(t *testing.T) {
	f := newClassFixture(t)
	payload := map[string]interface{}{
		"allocation_type":    "class",
		"timetable_entry_id": f.entryID,
	}
	code, _ := testutil.DoJSON(t, f.app, "POST", "/api/t/classes/", f.teacher, payload)
	require.Equal(t, 201, code)
	code, _ = testutil.DoJSON(t, f.app, "POST", "/api/t/classes/", f.teacher, payload)
	assert.Equal(t, 409, code)
}

func TestTwoTeachersShareEntry(t *testing.T) {
	f := newClassFixture(t)
	other := testutil.TokenFor(t, uuid.New(), constants.RoleTeacher)
	payload := map[string]interface{}{
		"allocation_type":    "class",
		"timetable_entry_id": f.entryID,
	}

	code, _ := testutil.DoJSON(t, f.app, "POST", "/api/t/classes/", f.teacher, payload)
	require.Equal(t, 201, code)

	// uniqueness is per (teacher, entry), not per entry
	code, env := testutil.DoJSON(t, f.app, "POST", "/api/t/classes/", other, payload)
	assert.Equal(t, 201, code, "%v", env)
}

func TestTeacherClassOwnership(t *testing.T) {
	f := newClassFixture(t)
	other := testutil.TokenFor(t, uuid.New(), constants.RoleTeacher)

	code, env := testutil.DoJSON(t, f.app, "POST", "/api/t/classes/", f.teacher, map[string]interface{}{
		"allocation_type":    "class",
		"timetable_entry_id": f.entryID,
	})
	require.Equal(t, 201, code, "%v", env)
	classID := testutil.Data(t, env)["teacher_class_id"].(string)

	code, _ = testutil.DoJSON(t, f.app, "GET", "/api/t/classes/"+classID, other, nil)
	assert.Equal(t, 403, code)

	// admin bypasses ownership
	admin := testutil.TokenFor(t, uuid.New(), constants.RoleAdmin)
	code, _ = testutil.DoJSON(t, f.app, "GET", "/api/t/classes/"+classID, admin, nil)
	assert.Equal(t, 200, code)
}

func TestEnrollmentLifecycle(t *testing.T) {
	f := newClassFixture(t)
	code, env := testutil.DoJSON(t, f.app, "POST", "/api/t/classes/", f.teacher, map[string]interface{}{
		"allocation_type":    "class",
		"timetable_entry_id": f.entryID,
	})
	require.Equal(t, 201, code, "%v", env)
	classID := testutil.Data(t, env)["teacher_class_id"].(string)
	studentID := f.student(t, "23CS001")

	code, _ = testutil.DoJSON(t, f.app, "POST", "/api/t/classes/"+classID+"/students", f.teacher,
		map[string]interface{}{"student_id": studentID})
	require.Equal(t, 201, code)

	// enrolling twice conflicts
	code, _ = testutil.DoJSON(t, f.app, "POST", "/api/t/classes/"+classID+"/students", f.teacher,
		map[string]interface{}{"student_id": studentID})
	assert.Equal(t, 409, code)

	// enrolling by roll number works the same
	f.student(t, "23CS002")
	code, _ = testutil.DoJSON(t, f.app, "POST", "/api/t/classes/"+classID+"/students", f.teacher,
		map[string]interface{}{"roll_number": "23CS002"})
	assert.Equal(t, 201, code)

	code, env = testutil.DoJSON(t, f.app, "GET", "/api/t/classes/"+classID+"/students", f.teacher, nil)
	require.Equal(t, 200, code)
	assert.Len(t, testutil.DataList(t, env), 2)

	code, _ = testutil.DoJSON(t, f.app, "DELETE", "/api/t/classes/"+classID+"/students/"+studentID, f.teacher, nil)
	require.Equal(t, 200, code)

	code, env = testutil.DoJSON(t, f.app, "GET", "/api/t/classes/"+classID+"/students", f.teacher, nil)
	require.Equal(t, 200, code)
	assert.Len(t, testutil.DataList(t, env), 1)
}
