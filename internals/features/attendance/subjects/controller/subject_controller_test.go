package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"absensiwajah_backend/internals/features/attendance/storage"
	sService "absensiwajah_backend/internals/features/attendance/subjects/service"
)

func newTestApp(t *testing.T) (*fiber.App, *sService.Registry) {
	t.Helper()
	reg := sService.NewRegistry(storage.NewLayout(t.TempDir()), storage.NewLocks())
	h := NewSubjectController(reg, nil)

	app := fiber.New(fiber.Config{UnescapePath: true})
	app.Get("/subjects", h.List)
	app.Get("/subjects/:name", h.Detail)
	app.Get("/subjects/:name/sessions", h.Sessions)
	app.Post("/subjects", h.Register)
	app.Delete("/subjects/:name", h.Remove)
	return app, reg
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestRegisterListRemove(t *testing.T) {
	app, _ := newTestApp(t)

	for i := 0; i < 2; i++ {
		if status, body := do(t, app, http.MethodPost, "/subjects", `{"name":"Bahasa Inggris"}`); status != fiber.StatusCreated {
			t.Fatalf("register #%d: %d %v", i+1, status, body)
		}
	}
	_, body := do(t, app, http.MethodGet, "/subjects", "")
	if list := body["data"].([]any); len(list) != 1 {
		t.Errorf("idempotent register: list = %v", list)
	}

	if status, _ := do(t, app, http.MethodGet, "/subjects/Bahasa%20Inggris", ""); status != fiber.StatusOK {
		t.Errorf("detail with escaped name: %d", status)
	}
	if status, _ := do(t, app, http.MethodDelete, "/subjects/Bahasa%20Inggris", ""); status != fiber.StatusOK {
		t.Errorf("remove: %d", status)
	}
	if status, _ := do(t, app, http.MethodGet, "/subjects/Bahasa%20Inggris", ""); status != fiber.StatusNotFound {
		t.Errorf("detail after remove: %d", status)
	}
}

func TestRemove_HasRecords(t *testing.T) {
	app, reg := newTestApp(t)
	if _, err := reg.Register("Math"); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(reg.Layout.SubjectDir("Math"), "Math_2024-01-01_08-00-00.csv")
	if err := os.WriteFile(path, []byte("Enrollment,Name\n0001-0001,A\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	status, body := do(t, app, http.MethodDelete, "/subjects/Math", "")
	if status != fiber.StatusConflict || body["error_code"] != "HAS_RECORDS" {
		t.Errorf("remove with history: %d %v", status, body)
	}

	_, body = do(t, app, http.MethodGet, "/subjects/Math/sessions", "")
	if list := body["data"].([]any); len(list) != 1 {
		t.Errorf("sessions = %v", list)
	}
}

func TestRegister_Validation(t *testing.T) {
	app, _ := newTestApp(t)
	if status, body := do(t, app, http.MethodPost, "/subjects", `{"name":""}`); status != fiber.StatusUnprocessableEntity {
		t.Errorf("empty name: %d %v", status, body)
	}
	if status, body := do(t, app, http.MethodPost, "/subjects", `{"name":"a/b"}`); status != fiber.StatusBadRequest {
		t.Errorf("slash name: %d %v", status, body)
	}
}
