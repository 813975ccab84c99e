// file: internals/features/academics/rooms/controller/room_controller_test.go
package controller_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kampusku_backend/internals/constants"
	"kampusku_backend/internals/testutil"
)

func TestRoomCreateAndDuplicate(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db)
	token := testutil.TokenFor(t, uuid.New(), constants.RoleEditor)

	payload := map[string]interface{}{
		"room_number":     "LT-101",
		"room_type":       "Classroom",
		"room_capacity":   60,
		"room_facilities": []string{"projector", "ac"},
	}
	code, env := testutil.DoJSON(t, app, "POST", "/api/a/rooms/", token, payload)
	require.Equal(t, 201, code, "%v", env)
	data := testutil.Data(t, env)
	assert.Equal(t, "LT-101", data["room_number"])

	code, env = testutil.DoJSON(t, app, "POST", "/api/a/rooms/", token, payload)
	assert.Equal(t, 409, code, "%v", env)
}

func TestRoomListFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db)
	token := testutil.TokenFor(t, uuid.New(), constants.RoleEditor)

	for _, r := range []map[string]interface{}{
		{"room_number": "LT-101", "room_type": "Classroom"},
		{"room_number": "LT-102", "room_type": "Classroom"},
		{"room_number": "CSL-1", "room_type": "Lab"},
	} {
		code, env := testutil.DoJSON(t, app, "POST", "/api/a/rooms/", token, r)
		require.Equal(t, 201, code, "%v", env)
	}

	code, env := testutil.DoJSON(t, app, "GET", "/api/a/rooms/?room_type=Lab", token, nil)
	require.Equal(t, 200, code)
	assert.Len(t, testutil.DataList(t, env), 1)

	code, env = testutil.DoJSON(t, app, "GET", "/api/a/rooms/?search=lt-10", token, nil)
	require.Equal(t, 200, code)
	assert.Len(t, testutil.DataList(t, env), 2)
}

func TestRoomRoleGate(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db)

	// teacher may not touch the scheduling surface
	token := testutil.TokenFor(t, uuid.New(), constants.RoleTeacher)
	code, _ := testutil.DoJSON(t, app, "POST", "/api/a/rooms/", token, map[string]interface{}{
		"room_number": "LT-103", "room_type": "Classroom",
	})
	assert.Equal(t, 403, code)

	// no token at all
	code, _ = testutil.DoJSON(t, app, "GET", "/api/a/rooms/", "", nil)
	assert.Equal(t, 401, code)
}

func TestRoomDeleteThenGone(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db)
	token := testutil.TokenFor(t, uuid.New(), constants.RoleEditor)

	code, env := testutil.DoJSON(t, app, "POST", "/api/a/rooms/", token, map[string]interface{}{
		"room_number": "LT-104", "room_type": "Classroom",
	})
	require.Equal(t, 201, code, "%v", env)
	id := testutil.Data(t, env)["room_id"].(string)

	code, _ = testutil.DoJSON(t, app, "DELETE", "/api/a/rooms/"+id, token, nil)
	require.Equal(t, 200, code)

	code, _ = testutil.DoJSON(t, app, "GET", "/api/a/rooms/"+id, token, nil)
	assert.Equal(t, 404, code)
}
