// file: internals/features/academics/labs/controller/lab_entry_controller_test.go
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

func seedLabDeps(t *testing.T, app *fiber.App, token string) (labRoomID, classRoomID, subjectID string) {
	t.Helper()
	code, env := testutil.DoJSON(t, app, "POST", "/api/a/rooms/", token, map[string]interface{}{
		"room_number": "CSL-3", "room_type": "Lab",
	})
	require.Equal(t, 201, code, "%v", env)
	labRoomID = testutil.Data(t, env)["room_id"].(string)

	code, env = testutil.DoJSON(t, app, "POST", "/api/a/rooms/", token, map[string]interface{}{
		"room_number": "LT-401", "room_type": "Classroom",
	})
	require.Equal(t, 201, code, "%v", env)
	classRoomID = testutil.Data(t, env)["room_id"].(string)

	code, env = testutil.DoJSON(t, app, "POST", "/api/a/subjects/", token, map[string]interface{}{
		"subject_course_code": "CS351",
		"subject_course_name": "Operating Systems Lab",
		"subject_short_name":  "OSL",
	})
	require.Equal(t, 201, code, "%v", env)
	subjectID = testutil.Data(t, env)["subject_id"].(string)
	return
}

func labPayload(roomID, subjectID, section, start, end string) map[string]interface{} {
	return map[string]interface{}{
		"room_id":       roomID,
		"subject_id":    subjectID,
		"academic_year": "2025-26",
		"semester_type": "odd",
		"semester":      5,
		"branch":        "CSE",
		"section":       section,
		"day":           "Thursday",
		"start_time":    start,
		"end_time":      end,
	}
}

func TestLabEntryCreateAndDuration(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db)
	token := testutil.TokenFor(t, uuid.New(), constants.RoleEditor)
	labRoom, _, subject := seedLabDeps(t, app, token)

	code, env := testutil.DoJSON(t, app, "POST", "/api/a/labs/", token,
		labPayload(labRoom, subject, "A1", "10:00", "12:00"))
	require.Equal(t, 201, code, "%v", env)
	assert.EqualValues(t, 2, testutil.Data(t, env)["duration_hours"])
}

func TestLabEntryOverlapRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db)
	token := testutil.TokenFor(t, uuid.New(), constants.RoleEditor)
	labRoom, _, subject := seedLabDeps(t, app, token)

	code, env := testutil.DoJSON(t, app, "POST", "/api/a/labs/", token,
		labPayload(labRoom, subject, "A1", "10:00", "12:00"))
	require.Equal(t, 201, code, "%v", env)

	// same room, same day, overlapping window -> rejected outright
	code, env = testutil.DoJSON(t, app, "POST", "/api/a/labs/", token,
		labPayload(labRoom, subject, "A2", "11:00", "13:00"))
	assert.Equal(t, 409, code, "%v", env)

	// back-to-back is allowed: 12:00 start meets the 12:00 end
	code, env = testutil.DoJSON(t, app, "POST", "/api/a/labs/", token,
		labPayload(labRoom, subject, "A2", "12:00", "14:00"))
	assert.Equal(t, 201, code, "%v", env)
}

func TestLabEntryRequiresLabRoom(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db)
	token := testutil.TokenFor(t, uuid.New(), constants.RoleEditor)
	_, classRoom, subject := seedLabDeps(t, app, token)

	code, env := testutil.DoJSON(t, app, "POST", "/api/a/labs/", token,
		labPayload(classRoom, subject, "A1", "10:00", "12:00"))
	assert.Equal(t, 400, code, "%v", env)
}

func TestLabEntryRejectsBadWindow(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db)
	token := testutil.TokenFor(t, uuid.New(), constants.RoleEditor)
	labRoom, _, subject := seedLabDeps(t, app, token)

	// end before start
	code, env := testutil.DoJSON(t, app, "POST", "/api/a/labs/", token,
		labPayload(labRoom, subject, "A1", "12:00", "10:00"))
	assert.Equal(t, 400, code, "%v", env)

	// unknown batch label
	code, env = testutil.DoJSON(t, app, "POST", "/api/a/labs/", token,
		labPayload(labRoom, subject, "D9", "10:00", "12:00"))
	assert.Equal(t, 400, code, "%v", env)
}
