package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"prodx/internal/config"
	"prodx/internal/domain"
	"prodx/internal/http/handlers"
	applog "prodx/internal/log"
	"prodx/internal/mailer"
	"prodx/internal/repos"
)

const (
	adminEmail    = "admin@hiraya.test"
	adminPassword = "Passw0rd!"
)

// recordingMailer keeps every message instead of sending it.
type recordingMailer struct {
	mu   sync.Mutex
	msgs []mailer.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, msg)
	return m.err
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.msgs)
}

type testApp struct {
	app  *fiber.App
	db   *sqlx.DB
	mail *recordingMailer
	csrf string
}

// newTestApp builds the production route table against an in-memory
// store with one seeded staff account.
func newTestApp(t *testing.T, loginMax int) *testApp {
	t.Helper()
	return newTestAppWith(t, config.Config{}, handlers.RouteOptions{LoginMax: loginMax})
}

func newTestAppWith(t *testing.T, cfg config.Config, opts handlers.RouteOptions) *testApp {
	t.Helper()
	cfg.DBDSN = ":memory:"
	cfg.TemplatesDir = "../../web/templates"
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := repos.SeedAdmin(db, adminEmail, "Admin", adminPassword); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	mail := &recordingMailer{}
	engine := html.New(cfg.TemplatesDir, ".html")
	app := fiber.New(fiber.Config{Views: engine, ErrorHandler: handlers.ErrorHandler})
	if opts.StaticDir == "" {
		opts.StaticDir = "../../web/static"
	}
	handlers.Register(app, handlers.NewDeps(db, cfg, mail), opts)

	ta := &testApp{app: app, db: db, mail: mail}
	resp, err := app.Test(httptest.NewRequest("GET", "/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	ta.csrf = extractCookie(resp, "csrf_")
	if ta.csrf == "" {
		t.Fatal("csrf token missing")
	}
	return ta
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// signIn binds a staff session directly and returns its sid.
func (ta *testApp) signIn(t *testing.T) string {
	t.Helper()
	admins := repos.NewAdminRepo(ta.db)
	a, err := admins.ByEmail(context.Background(), adminEmail)
	if err != nil {
		t.Fatalf("lookup admin: %v", err)
	}
	sid := "sid-" + a.ID
	if err := admins.BindSession(context.Background(), sid, a.ID); err != nil {
		t.Fatalf("bind session: %v", err)
	}
	return sid
}

func (ta *testApp) get(t *testing.T, path, sid string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := ta.app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func (ta *testApp) post(t *testing.T, path, sid string, form url.Values) *http.Response {
	t.Helper()
	form.Set("csrf", ta.csrf)
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: ta.csrf})
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := ta.app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

type logEntry struct {
	Level  string                 `json:"level"`
	Kind   string                 `json:"kind"`
	Action string                 `json:"action"`
	Fields map[string]interface{} `json:"fields"`
	UserID string                 `json:"user_id"`
	ReqID  string                 `json:"req_id"`
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

// captureLogs swaps the structured log sink for the duration of fn.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	old := applog.Writer()
	applog.SetOutput(&lockedWriter{w: &buf, mu: &mu})
	defer applog.SetOutput(old)

	fn()

	mu.Lock()
	defer mu.Unlock()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findAction(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}

func addPending(t *testing.T, db *sqlx.DB, email, codeName, name, createdAt string) int64 {
	t.Helper()
	ctx := context.Background()
	owner, err := repos.NewUserRepo(db).Create(ctx, email, codeName)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	id, err := repos.NewProductRepo(db).Create(ctx, domain.Product{
		Name:      name,
		Category:  domain.CategoryAgriculture,
		Status:    domain.StatusPending,
		OwnerID:   owner,
		CreatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return id
}
