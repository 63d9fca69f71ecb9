package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	ssService "absensiwajah_backend/internals/features/attendance/sessions/service"
	"absensiwajah_backend/internals/features/attendance/storage"
	sService "absensiwajah_backend/internals/features/attendance/subjects/service"
	sumService "absensiwajah_backend/internals/features/attendance/summary/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	layout := storage.NewLayout(t.TempDir())
	locks := storage.NewLocks()
	subjects := sService.NewRegistry(layout, locks)
	if _, err := subjects.Register("Math"); err != nil {
		t.Fatal(err)
	}
	w := ssService.NewWriter(layout, locks, sumService.NewAggregator(layout, locks, subjects))
	w.Subjects = subjects

	app := fiber.New(fiber.Config{UnescapePath: true})
	h := NewSessionController(w, nil)
	app.Post("/sessions/:subject", h.Save)
	return app
}

func post(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
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

func TestSave_CreatesSessionAndSummary(t *testing.T) {
	app := newTestApp(t)
	status, body := post(t, app, "/sessions/Math", `{"presences":[
		{"enrollment_id":"0001-0001","name":"Ana"},
		{"enrollment_id":"0001-0001","name":"Ana"},
		{"enrollment_id":"0002-0002","name":"Budi"}]}`)
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, body = %v", status, body)
	}
	data := body["data"].(map[string]any)
	if data["rows"].(float64) != 2 {
		t.Errorf("rows = %v", data["rows"])
	}
	summary := data["summary"].([]any)
	if len(summary) != 2 || summary[0].(map[string]any)["attendance"] != "100%" {
		t.Errorf("summary = %v", summary)
	}
}

func TestSave_Errors(t *testing.T) {
	app := newTestApp(t)

	status, body := post(t, app, "/sessions/Math", `{"presences":[{"enrollment_id":"12345","name":"X"}]}`)
	if status != fiber.StatusUnprocessableEntity || body["error_code"] != "VALIDATION_ERROR" {
		t.Errorf("bad id: status=%d body=%v", status, body)
	}

	status, _ = post(t, app, "/sessions/Math", `{"presences":[]}`)
	if status != fiber.StatusUnprocessableEntity {
		t.Errorf("empty presences: status=%d", status)
	}

	status, body = post(t, app, "/sessions/Chemistry", `{"presences":[{"enrollment_id":"0001-0001","name":"A"}]}`)
	if status != fiber.StatusNotFound || body["error_code"] != "NOT_FOUND" {
		t.Errorf("unknown subject: status=%d body=%v", status, body)
	}

	status, _ = post(t, app, "/sessions/Math", `{not json`)
	if status != fiber.StatusBadRequest {
		t.Errorf("bad json: status=%d", status)
	}
}
