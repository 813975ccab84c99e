// file: internals/testutil/testutil.go
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"kampusku_backend/internals/configs"
	database "kampusku_backend/internals/databases"
	helper "kampusku_backend/internals/helpers"
	routes "kampusku_backend/internals/route"
)

func init() {
	configs.JWTSecret = "test-secret"
}

// NewTestDB opens a fresh in-memory sqlite database with the full schema.
// Single connection, so every query sees the same memory store.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.MigrateWith(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// NewApp mounts the full route tree on a bare Fiber app.
func NewApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	app := fiber.New()
	routes.SetupRoutes(app, db)
	return app
}

// TokenFor signs an access token for the given identity.
func TokenFor(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	token, err := helper.CreateToken(userID, role, role+"@test.local")
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// DoJSON fires one request and decodes the envelope into a generic map.
func DoJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 10000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out
}

// DoRaw fires one request and returns the raw response.
func DoRaw(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, 10000)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	return resp
}

// Data pulls data out of a response envelope as a map.
func Data(t *testing.T, env map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := env["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("envelope has no object data: %#v", env)
	}
	return d
}

// DataList pulls data out of a response envelope as a slice.
func DataList(t *testing.T, env map[string]interface{}) []interface{} {
	t.Helper()
	d, ok := env["data"].([]interface{})
	if !ok {
		t.Fatalf("envelope has no list data: %#v", env)
	}
	return d
}
