// file: internals/features/teaching/attendance/controller/attendance_controller_test.go
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

type attendanceFixture struct {
	app       *fiber.App
	editor    string
	teacher   string
	classID   string
	sessionID string
	students  []string // ids ordered by roll number
}

func newAttendanceFixture(t *testing.T) *attendanceFixture {
	db := testutil.NewTestDB(t)
	f := &attendanceFixture{
		app:     testutil.NewApp(t, db),
		editor:  testutil.TokenFor(t, uuid.New(), constants.RoleEditor),
		teacher: testutil.TokenFor(t, uuid.New(), constants.RoleTeacher),
	}

	code, env := testutil.DoJSON(t, f.app, "POST", "/api/a/rooms/", f.editor, map[string]interface{}{
		"room_number": "LT-601", "room_type": "Classroom",
	})
	require.Equal(t, 201, code, "%v", env)
	roomID := testutil.Data(t, env)["room_id"].(string)

	code, env = testutil.DoJSON(t, f.app, "POST", "/api/a/subjects/", f.editor, map[string]interface{}{
		"subject_course_code": "CS401",
		"subject_course_name": "Computer Networks",
		"subject_short_name":  "CN",
	})
	require.Equal(t, 201, code, "%v", env)
	subjectID := testutil.Data(t, env)["subject_id"].(string)

	code, env = testutil.DoJSON(t, f.app, "POST", "/api/a/allocations/", f.editor, map[string]interface{}{
		"academic_year": "2025-26",
		"semester_type": "odd",
		"semester":      7,
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
	entryID := testutil.Data(t, env)["timetable_entry_id"].(string)

	code, env = testutil.DoJSON(t, f.app, "POST", "/api/t/classes/", f.teacher, map[string]interface{}{
		"allocation_type":    "class",
		"timetable_entry_id": entryID,
	})
	require.Equal(t, 201, code, "%v", env)
	f.classID = testutil.Data(t, env)["teacher_class_id"].(string)

	for _, roll := range []string{"23CS001", "23CS002", "23CS003"} {
		code, env = testutil.DoJSON(t, f.app, "POST", "/api/t/students/", f.teacher, map[string]interface{}{
			"student_roll_number": roll,
			"student_name":        "Student " + roll,
			"student_email":       roll + "@college.edu",
			"student_batch_year":  2023,
		})
		require.Equal(t, 201, code, "%v", env)
		id := testutil.Data(t, env)["student_id"].(string)
		f.students = append(f.students, id)

		code, _ = testutil.DoJSON(t, f.app, "POST", "/api/t/classes/"+f.classID+"/students", f.teacher,
			map[string]interface{}{"student_id": id})
		require.Equal(t, 201, code)
	}

	code, env = testutil.DoJSON(t, f.app, "POST", "/api/t/sessions/", f.teacher, map[string]interface{}{
		"teacher_class_id": f.classID,
		"date":             "2026-01-12",
		"start_time":       "09:00",
	})
	require.Equal(t, 201, code, "%v", env)
	f.sessionID = testutil.Data(t, env)["class_session_id"].(string)
	return f
}

func (f *attendanceFixture) sessionStatus(t *testing.T) string {
	t.Helper()
	code, env := testutil.DoJSON(t, f.app, "GET", "/api/t/sessions/"+f.sessionID, f.teacher, nil)
	require.Equal(t, 200, code, "%v", env)
	return testutil.Data(t, env)["status"].(string)
}

func TestRosterDefaultsToPresent(t *testing.T) {
	f := newAttendanceFixture(t)

	code, env := testutil.DoJSON(t, f.app, "GET", "/api/t/sessions/"+f.sessionID+"/students", f.teacher, nil)
	require.Equal(t, 200, code, "%v", env)
	rows := testutil.DataList(t, env)
	require.Len(t, rows, 3)
	for _, raw := range rows {
		row := raw.(map[string]interface{})
		assert.Equal(t, "Present", row["status"])
		assert.Equal(t, false, row["recorded"])
	}
	// ordered by roll number
	assert.Equal(t, "23CS001", rows[0].(map[string]interface{})["student_roll_number"])
}

func TestMarkUpsertsAndCompletesSession(t *testing.T) {
	f := newAttendanceFixture(t)
	require.Equal(t, "Scheduled", f.sessionStatus(t))

	code, env := testutil.DoJSON(t, f.app, "PATCH", "/api/t/sessions/"+f.sessionID+"/attendance", f.teacher,
		map[string]interface{}{"records": []map[string]interface{}{
			{"student_id": f.students[0], "status": "Absent"},
		}})
	require.Equal(t, 200, code, "%v", env)
	assert.Equal(t, "Completed", f.sessionStatus(t))

	// re-marking the same student overwrites instead of erroring
	code, _ = testutil.DoJSON(t, f.app, "PATCH", "/api/t/sessions/"+f.sessionID+"/attendance", f.teacher,
		map[string]interface{}{"records": []map[string]interface{}{
			{"student_id": f.students[0], "status": "Leave"},
		}})
	require.Equal(t, 200, code)

	code, env = testutil.DoJSON(t, f.app, "GET", "/api/t/sessions/"+f.sessionID+"/students", f.teacher, nil)
	require.Equal(t, 200, code)
	rows := testutil.DataList(t, env)
	first := rows[0].(map[string]interface{})
	assert.Equal(t, "Leave", first["status"])
	assert.Equal(t, true, first["recorded"])

	// untouched students stay unrecorded
	second := rows[1].(map[string]interface{})
	assert.Equal(t, false, second["recorded"])
}

func TestMarkDuplicateStudentLastStatusWins(t *testing.T) {
	f := newAttendanceFixture(t)

	// same student twice in one payload collapses to one record
	code, env := testutil.DoJSON(t, f.app, "PATCH", "/api/t/sessions/"+f.sessionID+"/attendance", f.teacher,
		map[string]interface{}{"records": []map[string]interface{}{
			{"student_id": f.students[0], "status": "Present"},
			{"student_id": f.students[0], "status": "Absent"},
		}})
	require.Equal(t, 200, code, "%v", env)
	assert.EqualValues(t, 1, testutil.Data(t, env)["written"])

	code, env = testutil.DoJSON(t, f.app, "GET", "/api/t/sessions/"+f.sessionID+"/students", f.teacher, nil)
	require.Equal(t, 200, code)
	first := testutil.DataList(t, env)[0].(map[string]interface{})
	assert.Equal(t, "Absent", first["status"])
	assert.Equal(t, true, first["recorded"])
}

func TestMarkRejectsUnenrolledStudent(t *testing.T) {
	f := newAttendanceFixture(t)

	code, env := testutil.DoJSON(t, f.app, "PATCH", "/api/t/sessions/"+f.sessionID+"/attendance", f.teacher,
		map[string]interface{}{"records": []map[string]interface{}{
			{"student_id": uuid.New().String(), "status": "Present"},
		}})
	assert.Equal(t, 400, code, "%v", env)
}

func TestMarkRejectsUnknownStatus(t *testing.T) {
	f := newAttendanceFixture(t)

	code, _ := testutil.DoJSON(t, f.app, "PATCH", "/api/t/sessions/"+f.sessionID+"/attendance", f.teacher,
		map[string]interface{}{"records": []map[string]interface{}{
			{"student_id": f.students[0], "status": "Sick"},
		}})
	assert.Equal(t, 422, code)
}

func TestReplaceSwapsWholeSheet(t *testing.T) {
	f := newAttendanceFixture(t)

	code, _ := testutil.DoJSON(t, f.app, "PATCH", "/api/t/sessions/"+f.sessionID+"/attendance", f.teacher,
		map[string]interface{}{"records": []map[string]interface{}{
			{"student_id": f.students[0], "status": "Absent"},
			{"student_id": f.students[1], "status": "Absent"},
		}})
	require.Equal(t, 200, code)

	code, env := testutil.DoJSON(t, f.app, "POST", "/api/t/sessions/"+f.sessionID+"/attendance", f.teacher,
		map[string]interface{}{"records": []map[string]interface{}{
			{"student_id": f.students[2], "status": "Leave"},
		}})
	require.Equal(t, 200, code, "%v", env)

	code, env = testutil.DoJSON(t, f.app, "GET", "/api/t/sessions/"+f.sessionID+"/students", f.teacher, nil)
	require.Equal(t, 200, code)
	rows := testutil.DataList(t, env)
	recorded := 0
	for _, raw := range rows {
		if raw.(map[string]interface{})["recorded"] == true {
			recorded++
			assert.Equal(t, "Leave", raw.(map[string]interface{})["status"])
		}
	}
	assert.Equal(t, 1, recorded)
}

func TestAttendanceOwnership(t *testing.T) {
	f := newAttendanceFixture(t)
	other := testutil.TokenFor(t, uuid.New(), constants.RoleTeacher)

	code, _ := testutil.DoJSON(t, f.app, "PATCH", "/api/t/sessions/"+f.sessionID+"/attendance", other,
		map[string]interface{}{"records": []map[string]interface{}{
			{"student_id": f.students[0], "status": "Present"},
		}})
	assert.Equal(t, 403, code)
}
