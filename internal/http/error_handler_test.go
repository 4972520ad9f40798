package handlers_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"prodx/internal/http/handlers"
)

func TestErrorHandlerFriendlyMessage(t *testing.T) {
	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine, ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())
	app.Get("/err", func(c *fiber.Ctx) error {
		return errors.New("database is locked: secret trace")
	})

	var resp *http.Response
	logs := captureLogs(t, func() {
		var err error
		resp, err = app.Test(httptest.NewRequest("GET", "/err", nil))
		if err != nil {
			t.Fatalf("test request failed: %v", err)
		}
	})
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	if !strings.Contains(s, "Something went wrong") {
		t.Fatalf("friendly message missing; body=%s", s)
	}
	if strings.Contains(s, "database is locked") || strings.Contains(s, "secret") {
		t.Fatalf("internal details leaked to user; body=%s", s)
	}
	e, ok := findAction(logs, "server.error")
	if !ok {
		t.Fatal("server.error log not found")
	}
	if e.ReqID == "" {
		t.Fatal("server.error missing req_id")
	}
}

func TestStoreFailureRendersFriendlyPage(t *testing.T) {
	ta := newTestApp(t, 100)
	sid := ta.signIn(t)
	if _, err := ta.db.Exec(`DROP TABLE company`); err != nil {
		t.Fatal(err)
	}

	resp := ta.get(t, "/admin", sid)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Could not load companies") || strings.Contains(string(body), "no such table") {
		t.Fatalf("unexpected error page; body=%s", body)
	}
}

func TestUnknownPathIs404Page(t *testing.T) {
	ta := newTestApp(t, 100)
	resp := ta.get(t, "/nope", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Page not found") {
		t.Fatalf("404 page missing; body=%s", body)
	}
}
