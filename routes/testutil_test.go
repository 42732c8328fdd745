package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"hydrolink/config"
	"hydrolink/db"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

// setupTestApp wires the full route table against a fresh in-memory database
// and a temporary upload dir.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:routestest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	g, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.Migrate(g); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	db.DB = g

	app := fiber.New()
	SetupRoutes(app, &config.Config{UploadDir: t.TempDir()})
	return app
}

// doJSON sends a JSON request (token optional) and decodes the JSON response
// body into a generic map.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
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

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	resp.Body.Close()

	var decoded map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode response %q: %v", raw, err)
		}
	}
	return resp, decoded
}

// doMultipart posts a single file under the "image" form field.
func doMultipart(t *testing.T, app *fiber.App, path, token, filename string, content []byte) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	resp.Body.Close()

	var decoded map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode response %q: %v", raw, err)
		}
	}
	return resp, decoded
}

// registerUser registers an account through the API and returns its token.
func registerUser(t *testing.T, app *fiber.App, email, role string) string {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":                  "Test User",
		"email":                 email,
		"password":              "secret123",
		"password_confirmation": "secret123",
		"role":                  role,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %v", email, resp.StatusCode, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("register %s: no token in response %v", email, body)
	}
	return token
}

// createTestCategory inserts a category through the admin API and returns
// its id.
func createTestCategory(t *testing.T, app *fiber.App, adminToken, name string) uint {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/categories/", adminToken, fiber.Map{
		"name": name,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create category %s: status %d, body %v", name, resp.StatusCode, body)
	}
	return idOf(t, body["data"])
}

// createTestProduct inserts a product with the given price and stock.
func createTestProduct(t *testing.T, app *fiber.App, adminToken string, categoryID uint, name string, price float64, stock int, extra fiber.Map) uint {
	t.Helper()

	payload := fiber.Map{
		"name":        name,
		"price":       price,
		"stock":       stock,
		"category_id": categoryID,
	}
	for k, v := range extra {
		payload[k] = v
	}
	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/products/", adminToken, payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create product %s: status %d, body %v", name, resp.StatusCode, body)
	}
	return idOf(t, body["data"])
}

func idOf(t *testing.T, data interface{}) uint {
	t.Helper()
	record, ok := data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected object with id, got %v", data)
	}
	id, ok := record["id"].(float64)
	if !ok {
		t.Fatalf("expected numeric id, got %v", record["id"])
	}
	return uint(id)
}

func dataList(t *testing.T, body map[string]interface{}) []interface{} {
	t.Helper()
	list, ok := body["data"].([]interface{})
	if !ok {
		t.Fatalf("expected data array, got %v", body["data"])
	}
	return list
}

func errorFields(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	fields, ok := body["errors"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected errors map, got %v", body["errors"])
	}
	return fields
}
