package routes

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestCategoryCRUD(t *testing.T) {
	app := setupTestApp(t)
	adminToken := registerUser(t, app, "cat-admin@example.com", "admin")

	t.Run("create requires a name", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/admin/categories/", adminToken, fiber.Map{
			"description": "no name given",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status: got %d, want 400", resp.StatusCode)
		}
		if _, ok := errorFields(t, body)["name"]; !ok {
			t.Errorf("expected name error, got %v", body["errors"])
		}
	})

	id := createTestCategory(t, app, adminToken, "Tuyaux")

	t.Run("show loads the record", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/admin/categories/%d", id), adminToken, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status: got %d, want 200", resp.StatusCode)
		}
		data := body["data"].(map[string]interface{})
		if data["name"] != "Tuyaux" {
			t.Errorf("name: got %v, want Tuyaux", data["name"])
		}
	})

	t.Run("update replaces fields", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/admin/categories/%d", id), adminToken, fiber.Map{
			"name":        "Tuyaux PVC",
			"description": "Gamme hydraulique",
			"is_active":   false,
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status: got %d, want 200 (%v)", resp.StatusCode, body)
		}
		data := body["data"].(map[string]interface{})
		if data["name"] != "Tuyaux PVC" {
			t.Errorf("name: got %v", data["name"])
		}
		if data["is_active"] != false {
			t.Errorf("is_active: got %v, want false", data["is_active"])
		}
	})

	t.Run("delete removes the record", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/admin/categories/%d", id), adminToken, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("delete status: got %d, want 200", resp.StatusCode)
		}

		resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/admin/categories/%d", id), adminToken, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("show after delete: got %d, want 404", resp.StatusCode)
		}

		// Second delete finds nothing.
		resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/admin/categories/%d", id), adminToken, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("second delete: got %d, want 404", resp.StatusCode)
		}
	})
}

func TestPublicCategoriesActiveOnly(t *testing.T) {
	app := setupTestApp(t)
	adminToken := registerUser(t, app, "cat-filter-admin@example.com", "admin")

	createTestCategory(t, app, adminToken, "Visible")
	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/categories/", adminToken, fiber.Map{
		"name":      "Hidden",
		"is_active": false,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create inactive: status %d (%v)", resp.StatusCode, body)
	}

	resp, body = doJSON(t, app, http.MethodGet, "/api/categories", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
	list := dataList(t, body)
	if len(list) != 1 {
		t.Fatalf("expected 1 active category, got %d", len(list))
	}
	if list[0].(map[string]interface{})["name"] != "Visible" {
		t.Errorf("unexpected category: %v", list[0])
	}

	// Admin listing still returns both.
	resp, body = doJSON(t, app, http.MethodGet, "/api/admin/categories/", adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin list status: got %d", resp.StatusCode)
	}
	if got := len(dataList(t, body)); got != 2 {
		t.Errorf("admin list: got %d categories, want 2", got)
	}
}

func TestCategoryPaginationMeta(t *testing.T) {
	app := setupTestApp(t)
	adminToken := registerUser(t, app, "cat-page-admin@example.com", "admin")

	for i := 1; i <= 25; i++ {
		createTestCategory(t, app, adminToken, fmt.Sprintf("Category %02d", i))
	}

	t.Run("middle page", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/api/categories?page=2&per_page=10", "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status: got %d", resp.StatusCode)
		}
		if got := len(dataList(t, body)); got != 10 {
			t.Errorf("page size: got %d, want 10", got)
		}
		meta := body["meta"].(map[string]interface{})
		want := map[string]float64{
			"current_page": 2, "last_page": 3, "per_page": 10,
			"total": 25, "from": 11, "to": 20,
		}
		for field, value := range want {
			if meta[field] != value {
				t.Errorf("meta.%s: got %v, want %v", field, meta[field], value)
			}
		}
	})

	t.Run("last partial page", func(t *testing.T) {
		_, body := doJSON(t, app, http.MethodGet, "/api/categories?page=3&per_page=10", "", nil)
		if got := len(dataList(t, body)); got != 5 {
			t.Errorf("page size: got %d, want 5", got)
		}
		meta := body["meta"].(map[string]interface{})
		if meta["from"] != float64(21) || meta["to"] != float64(25) {
			t.Errorf("meta range: from %v to %v, want 21..25", meta["from"], meta["to"])
		}
	})

	t.Run("page past the end", func(t *testing.T) {
		_, body := doJSON(t, app, http.MethodGet, "/api/categories?page=9&per_page=10", "", nil)
		if got := len(dataList(t, body)); got != 0 {
			t.Errorf("page size: got %d, want 0", got)
		}
		meta := body["meta"].(map[string]interface{})
		if meta["from"] != float64(0) || meta["to"] != float64(0) {
			t.Errorf("meta range: from %v to %v, want 0..0", meta["from"], meta["to"])
		}
	})
}

func TestCategoryDeleteRemovesImage(t *testing.T) {
	app := setupTestApp(t)
	adminToken := registerUser(t, app, "cat-image-admin@example.com", "admin")

	// Place a stored image on disk the way the upload endpoint would.
	stored := "images/category-test.jpg"
	full := filepath.Join(uploadDir, stored)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte("fake image bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/categories/", adminToken, fiber.Map{
		"name":  "Avec image",
		"image": stored,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d (%v)", resp.StatusCode, body)
	}
	id := idOf(t, body["data"])

	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/admin/categories/%d", id), adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: status %d", resp.StatusCode)
	}

	if _, err := os.Stat(full); !os.IsNotExist(err) {
		t.Error("stored image should have been removed with the category")
	}
}
