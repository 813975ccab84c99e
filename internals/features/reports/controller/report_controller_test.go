// file: internals/features/reports/controller/report_controller_test.go
package controller_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kampusku_backend/internals/constants"
	"kampusku_backend/internals/testutil"
)

type reportFixture struct {
	app      *fiber.App
	editor   string
	teacher  string
	classID  string
	allocID  string
	students []string
}

func newReportFixture(t *testing.T) *reportFixture {
	db := testutil.NewTestDB(t)
	f := &reportFixture{
		app:     testutil.NewApp(t, db),
		editor:  testutil.TokenFor(t, uuid.New(), constants.RoleEditor),
		teacher: testutil.TokenFor(t, uuid.New(), constants.RoleTeacher),
	}

	code, env := testutil.DoJSON(t, f.app, "POST", "/api/a/rooms/", f.editor, map[string]interface{}{
		"room_number": "LT-901", "room_type": "Classroom",
	})
	require.Equal(t, 201, code, "%v", env)
	roomID := testutil.Data(t, env)["room_id"].(string)

	code, env = testutil.DoJSON(t, f.app, "POST", "/api/a/subjects/", f.editor, map[string]interface{}{
		"subject_course_code": "CS501",
		"subject_course_name": "Machine Learning",
		"subject_short_name":  "ML",
	})
	require.Equal(t, 201, code, "%v", env)
	subjectID := testutil.Data(t, env)["subject_id"].(string)

	code, env = testutil.DoJSON(t, f.app, "POST", "/api/a/allocations/", f.editor, map[string]interface{}{
		"academic_year": "2025-26",
		"semester_type": "odd",
		"semester":      7,
		"branch":        "CSE-AIML",
		"section":       "A",
		"room_id":       roomID,
		"day_half":      "first_half",
	})
	require.Equal(t, 201, code, "%v", env)
	f.allocID = testutil.Data(t, env)["allocation_id"].(string)

	code, env = testutil.DoJSON(t, f.app, "POST", "/api/a/timetable/", f.editor, map[string]interface{}{
		"allocation_id": f.allocID,
		"subject_id":    subjectID,
		"timings": []map[string]string{
			{"day": "Monday", "time_slot": "9:00-9:55"},
			{"day": "Wednesday", "time_slot": "10:00-10:55"},
		},
	})
	require.Equal(t, 201, code, "%v", env)
	entryID := testutil.Data(t, env)["timetable_entry_id"].(string)

	code, env = testutil.DoJSON(t, f.app, "POST", "/api/t/classes/", f.teacher, map[string]interface{}{
		"allocation_type":    "class",
		"timetable_entry_id": entryID,
	})
	require.Equal(t, 201, code, "%v", env)
	f.classID = testutil.Data(t, env)["teacher_class_id"].(string)

	for _, roll := range []string{"22AI001", "22AI002"} {
		code, env = testutil.DoJSON(t, f.app, "POST", "/api/t/students/", f.teacher, map[string]interface{}{
			"student_roll_number": roll,
			"student_name":        "Student " + roll,
			"student_email":       roll + "@college.edu",
			"student_batch_year":  2022,
		})
		require.Equal(t, 201, code, "%v", env)
		id := testutil.Data(t, env)["student_id"].(string)
		f.students = append(f.students, id)
		code, _ = testutil.DoJSON(t, f.app, "POST", "/api/t/classes/"+f.classID+"/students", f.teacher,
			map[string]interface{}{"student_id": id})
		require.Equal(t, 201, code)
	}
	return f
}

func (f *reportFixture) markedSession(t *testing.T, date string, statuses []string) {
	t.Helper()
	code, env := testutil.DoJSON(t, f.app, "POST", "/api/t/sessions/", f.teacher, map[string]interface{}{
		"teacher_class_id": f.classID,
		"date":             date,
		"start_time":       "09:00",
	})
	require.Equal(t, 201, code, "%v", env)
	sessionID := testutil.Data(t, env)["class_session_id"].(string)

	records := []map[string]interface{}{}
	for i, s := range statuses {
		records = append(records, map[string]interface{}{"student_id": f.students[i], "status": s})
	}
	code, _ = testutil.DoJSON(t, f.app, "PATCH", "/api/t/sessions/"+sessionID+"/attendance", f.teacher,
		map[string]interface{}{"records": records})
	require.Equal(t, 200, code)
}

func TestAttendanceReportPercentages(t *testing.T) {
	f := newReportFixture(t)
	f.markedSession(t, "2026-01-05", []string{"Present", "Absent"})
	f.markedSession(t, "2026-01-07", []string{"Present", "Present"})
	f.markedSession(t, "2026-01-12", []string{"Absent", "Present"})

	code, env := testutil.DoJSON(t, f.app, "GET", "/api/t/classes/"+f.classID+"/report", f.teacher, nil)
	require.Equal(t, 200, code, "%v", env)
	data := testutil.Data(t, env)
	assert.EqualValues(t, 3, data["total_sessions"])

	rows := data["rows"].([]interface{})
	require.Len(t, rows, 2)
	first := rows[0].(map[string]interface{})
	assert.Equal(t, "22AI001", first["student_roll_number"])
	assert.EqualValues(t, 2, first["present"])
	assert.EqualValues(t, 1, first["absent"])
	assert.EqualValues(t, 3, first["recorded"])
	assert.InDelta(t, 66.6, first["percentage"].(float64), 0.2)
}

func TestAttendanceReportXLSX(t *testing.T) {
	f := newReportFixture(t)
	f.markedSession(t, "2026-01-05", []string{"Present", "Leave"})

	req := httptest.NewRequest("GET", "/api/t/classes/"+f.classID+"/report?format=xlsx", nil)
	req.Header.Set("Authorization", "Bearer "+f.teacher)
	resp := testutil.DoRaw(t, f.app, req)
	defer resp.Body.Close()

	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Disposition"), "attachment;"))
}

func TestTimetableExportXLSX(t *testing.T) {
	f := newReportFixture(t)

	req := httptest.NewRequest("GET", "/api/a/timetable/export?allocation_id="+f.allocID, nil)
	req.Header.Set("Authorization", "Bearer "+f.editor)
	resp := testutil.DoRaw(t, f.app, req)
	defer resp.Body.Close()

	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
}
