// file: internals/features/teaching/students/controller/student_controller_test.go
package controller_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kampusku_backend/internals/constants"
	"kampusku_backend/internals/testutil"
)

func TestStudentCreateNormalizesAndDedupes(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db)
	token := testutil.TokenFor(t, uuid.New(), constants.RoleTeacher)

	code, env := testutil.DoJSON(t, app, "POST", "/api/t/students/", token, map[string]interface{}{
		"student_roll_number": " 23cs010 ",
		"student_name":        "Asha Rao",
		"student_email":       "Asha.Rao@College.EDU",
		"student_batch_year":  2023,
	})
	require.Equal(t, 201, code, "%v", env)
	data := testutil.Data(t, env)
	assert.Equal(t, "23CS010", data["student_roll_number"])
	assert.Equal(t, "asha.rao@college.edu", data["student_email"])

	code, _ = testutil.DoJSON(t, app, "POST", "/api/t/students/", token, map[string]interface{}{
		"student_roll_number": "23CS010",
		"student_name":        "Someone Else",
		"student_email":       "other@college.edu",
		"student_batch_year":  2023,
	})
	assert.Equal(t, 409, code)
}

func TestStudentListSearch(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db)
	token := testutil.TokenFor(t, uuid.New(), constants.RoleTeacher)

	for i, name := range []string{"Asha Rao", "Vikram Iyer", "Asha Menon"} {
		roll := "23CS10" + string(rune('0'+i))
		code, env := testutil.DoJSON(t, app, "POST", "/api/t/students/", token, map[string]interface{}{
			"student_roll_number": roll,
			"student_name":        name,
			"student_email":       roll + "@college.edu",
			"student_batch_year":  2023,
		})
		require.Equal(t, 201, code, "%v", env)
	}

	code, env := testutil.DoJSON(t, app, "GET", "/api/t/students/?search=asha", token, nil)
	require.Equal(t, 200, code)
	assert.Len(t, testutil.DataList(t, env), 2)
}

func TestStudentUpdate(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db)
	token := testutil.TokenFor(t, uuid.New(), constants.RoleTeacher)

	code, env := testutil.DoJSON(t, app, "POST", "/api/t/students/", token, map[string]interface{}{
		"student_roll_number": "23CS020",
		"student_name":        "Asha Rao",
		"student_email":       "asha@college.edu",
		"student_batch_year":  2023,
	})
	require.Equal(t, 201, code, "%v", env)
	id := testutil.Data(t, env)["student_id"].(string)

	code, _ = testutil.DoJSON(t, app, "PATCH", "/api/t/students/"+id, token, map[string]interface{}{
		"student_name": "Asha R.",
	})
	require.Equal(t, 200, code)

	code, _ = testutil.DoJSON(t, app, "PATCH", "/api/t/students/"+id, token, map[string]interface{}{})
	assert.Equal(t, 400, code, "empty update must be rejected")
}

func TestStudentDeleteCascadesAttendance(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db)
	editor := testutil.TokenFor(t, uuid.New(), constants.RoleEditor)
	teacher := testutil.TokenFor(t, uuid.New(), constants.RoleTeacher)

	code, env := testutil.DoJSON(t, app, "POST", "/api/a/rooms/", editor, map[string]interface{}{
		"room_number": "LT-301", "room_type": "Classroom",
	})
	require.Equal(t, 201, code, "%v", env)
	roomID := testutil.Data(t, env)["room_id"].(string)

	code, env = testutil.DoJSON(t, app, "POST", "/api/a/subjects/", editor, map[string]interface{}{
		"subject_course_code": "CS310",
		"subject_course_name": "Database Systems",
		"subject_short_name":  "DBS",
	})
	require.Equal(t, 201, code, "%v", env)
	subjectID := testutil.Data(t, env)["subject_id"].(string)

	code, env = testutil.DoJSON(t, app, "POST", "/api/a/allocations/", editor, map[string]interface{}{
		"academic_year": "2025-26",
		"semester_type": "odd",
		"semester":      5,
		"branch":        "CSE",
		"section":       "C",
		"room_id":       roomID,
		"day_half":      "first_half",
	})
	require.Equal(t, 201, code, "%v", env)
	allocID := testutil.Data(t, env)["allocation_id"].(string)

	code, env = testutil.DoJSON(t, app, "POST", "/api/a/timetable/", editor, map[string]interface{}{
		"allocation_id": allocID,
		"subject_id":    subjectID,
		"timings":       []map[string]string{{"day": "Thursday", "time_slot": "11:00-11:55"}},
	})
	require.Equal(t, 201, code, "%v", env)
	entryID := testutil.Data(t, env)["timetable_entry_id"].(string)

	code, env = testutil.DoJSON(t, app, "POST", "/api/t/classes/", teacher, map[string]interface{}{
		"allocation_type":    "class",
		"timetable_entry_id": entryID,
	})
	require.Equal(t, 201, code, "%v", env)
	classID := testutil.Data(t, env)["teacher_class_id"].(string)

	code, env = testutil.DoJSON(t, app, "POST", "/api/t/students/", teacher, map[string]interface{}{
		"student_roll_number": "23CS030",
		"student_name":        "Vikram Iyer",
		"student_email":       "23cs030@college.edu",
		"student_batch_year":  2023,
	})
	require.Equal(t, 201, code, "%v", env)
	studentID := testutil.Data(t, env)["student_id"].(string)

	code, _ = testutil.DoJSON(t, app, "POST", "/api/t/classes/"+classID+"/students", teacher,
		map[string]interface{}{"student_id": studentID})
	require.Equal(t, 201, code)

	code, env = testutil.DoJSON(t, app, "POST", "/api/t/sessions/", teacher, map[string]interface{}{
		"teacher_class_id": classID,
		"date":             "2026-03-05",
		"start_time":       "11:00",
	})
	require.Equal(t, 201, code, "%v", env)
	sessionID := testutil.Data(t, env)["class_session_id"].(string)

	code, _ = testutil.DoJSON(t, app, "PATCH", "/api/t/sessions/"+sessionID+"/attendance", teacher,
		map[string]interface{}{"records": []map[string]interface{}{
			{"student_id": studentID, "status": "Present"},
		}})
	require.Equal(t, 200, code)

	code, _ = testutil.DoJSON(t, app, "DELETE", "/api/t/students/"+studentID, teacher, nil)
	require.Equal(t, 200, code)

	var records int64
	require.NoError(t, db.Table("attendance_records").Count(&records).Error)
	assert.Zero(t, records, "attendance must go with the student")
	var enrollments int64
	require.NoError(t, db.Table("class_students").Count(&enrollments).Error)
	assert.Zero(t, enrollments, "enrollments must go with the student")
}

func TestStudentDeleteUnknown(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db)
	token := testutil.TokenFor(t, uuid.New(), constants.RoleTeacher)

	code, _ := testutil.DoJSON(t, app, "DELETE", "/api/t/students/"+uuid.New().String(), token, nil)
	assert.Equal(t, 404, code)
}
