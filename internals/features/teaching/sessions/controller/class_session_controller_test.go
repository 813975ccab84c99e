// file: internals/features/teaching/sessions/controller/class_session_controller_test.go
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

type sessionFixture struct {
	app     *fiber.App
	editor  string
	teacher string
	classID string
}

func newSessionFixture(t *testing.T) *sessionFixture {
	db := testutil.NewTestDB(t)
	f := &sessionFixture{
		app:     testutil.NewApp(t, db),
		editor:  testutil.TokenFor(t, uuid.New(), constants.RoleEditor),
		teacher: testutil.TokenFor(t, uuid.New(), constants.RoleTeacher),
	}

	code, env := testutil.DoJSON(t, f.app, "POST", "/api/a/rooms/", f.editor, map[string]interface{}{
		"room_number": "LT-701", "room_type": "Classroom",
	})
	require.Equal(t, 201, code, "%v", env)
	roomID := testutil.Data(t, env)["room_id"].(string)

	code, env = testutil.DoJSON(t, f.app, "POST", "/api/a/subjects/", f.editor, map[string]interface{}{
		"subject_course_code": "CS402",
		"subject_course_name": "Compiler Design",
		"subject_short_name":  "CD",
	})
	require.Equal(t, 201, code, "%v", env)
	subjectID := testutil.Data(t, env)["subject_id"].(string)

	code, env = testutil.DoJSON(t, f.app, "POST", "/api/a/allocations/", f.editor, map[string]interface{}{
		"academic_year": "2025-26",
		"semester_type": "even",
		"semester":      6,
		"branch":        "CSE",
		"section":       "B",
		"room_id":       roomID,
		"day_half":      "second_half",
	})
	require.Equal(t, 201, code, "%v", env)
	allocID := testutil.Data(t, env)["allocation_id"].(string)

	code, env = testutil.DoJSON(t, f.app, "POST", "/api/a/timetable/", f.editor, map[string]interface{}{
		"allocation_id": allocID,
		"subject_id":    subjectID,
		"timings":       []map[string]string{{"day": "Tuesday", "time_slot": "14:00-14:55"}},
	})
	require.Equal(t, 201, code, "%v", env)
	entryID := testutil.Data(t, env)["timetable_entry_id"].(string)

	code, env = testutil.DoJSON(t, f.app, "POST", "/api/t/classes/", f.teacher, map[string]interface{}{
		"allocation_type":    "class",
		"timetable_entry_id": entryID,
	})
	require.Equal(t, 201, code, "%v", env)
	f.classID = testutil.Data(t, env)["teacher_class_id"].(string)
	return f
}

func (f *sessionFixture) session(t *testing.T, date string) string {
	t.Helper()
	code, env := testutil.DoJSON(t, f.app, "POST", "/api/t/sessions/", f.teacher, map[string]interface{}{
		"teacher_class_id": f.classID,
		"date":             date,
		"start_time":       "14:00",
	})
	require.Equal(t, 201, code, "%v", env)
	return testutil.Data(t, env)["class_session_id"].(string)
}

func TestSessionCreateCarriesClassDetail(t *testing.T) {
	f := newSessionFixture(t)

	code, env := testutil.DoJSON(t, f.app, "POST", "/api/t/sessions/", f.teacher, map[string]interface{}{
		"teacher_class_id": f.classID,
		"date":             "2026-02-10",
		"start_time":       "14:00",
		"end_time":         "14:55",
	})
	require.Equal(t, 201, code, "%v", env)
	data := testutil.Data(t, env)
	assert.Equal(t, "Scheduled", data["status"])
	detail := data["class"].(map[string]interface{})
	assert.Equal(t, "CS402", detail["subject_code"])
}

func TestSessionCreateRejectsForeignClass(t *testing.T) {
	f := newSessionFixture(t)
	other := testutil.TokenFor(t, uuid.New(), constants.RoleTeacher)

	code, _ := testutil.DoJSON(t, f.app, "POST", "/api/t/sessions/", other, map[string]interface{}{
		"teacher_class_id": f.classID,
		"date":             "2026-02-10",
		"start_time":       "14:00",
	})
	assert.Equal(t, 403, code)
}

func TestSessionListDateFilter(t *testing.T) {
	f := newSessionFixture(t)
	f.session(t, "2026-02-03")
	f.session(t, "2026-02-10")
	f.session(t, "2026-02-17")

	code, env := testutil.DoJSON(t, f.app, "GET",
		"/api/t/sessions/?date_from=2026-02-05&date_to=2026-02-12", f.teacher, nil)
	require.Equal(t, 200, code, "%v", env)
	assert.Len(t, testutil.DataList(t, env), 1)
}

func TestSessionUpdateStatus(t *testing.T) {
	f := newSessionFixture(t)
	id := f.session(t, "2026-02-10")

	code, _ := testutil.DoJSON(t, f.app, "PATCH", "/api/t/sessions/"+id, f.teacher,
		map[string]interface{}{"status": "Cancelled", "notes": "Department meeting"})
	require.Equal(t, 200, code)

	code, env := testutil.DoJSON(t, f.app, "GET", "/api/t/sessions/"+id, f.teacher, nil)
	require.Equal(t, 200, code)
	data := testutil.Data(t, env)
	assert.Equal(t, "Cancelled", data["status"])
	assert.Equal(t, "Department meeting", data["notes"])

	code, _ = testutil.DoJSON(t, f.app, "PATCH", "/api/t/sessions/"+id, f.teacher,
		map[string]interface{}{"status": "Done"})
	assert.Equal(t, 400, code)
}

func TestSessionDeleteRemovesAttendance(t *testing.T) {
	f := newSessionFixture(t)
	id := f.session(t, "2026-02-10")

	// one enrolled student with a mark
	code, env := testutil.DoJSON(t, f.app, "POST", "/api/t/students/", f.teacher, map[string]interface{}{
		"student_roll_number": "24CS001",
		"student_name":        "Student One",
		"student_email":       "24cs001@college.edu",
		"student_batch_year":  2024,
	})
	require.Equal(t, 201, code, "%v", env)
	studentID := testutil.Data(t, env)["student_id"].(string)
	code, _ = testutil.DoJSON(t, f.app, "POST", "/api/t/classes/"+f.classID+"/students", f.teacher,
		map[string]interface{}{"student_id": studentID})
	require.Equal(t, 201, code)
	code, _ = testutil.DoJSON(t, f.app, "PATCH", "/api/t/sessions/"+id+"/attendance", f.teacher,
		map[string]interface{}{"records": []map[string]interface{}{
			{"student_id": studentID, "status": "Present"},
		}})
	require.Equal(t, 200, code)

	code, _ = testutil.DoJSON(t, f.app, "DELETE", "/api/t/sessions/"+id, f.teacher, nil)
	require.Equal(t, 200, code)

	code, _ = testutil.DoJSON(t, f.app, "GET", "/api/t/sessions/"+id, f.teacher, nil)
	assert.Equal(t, 404, code)
}
