package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jbrokmeier/tagungsplan/internal/store"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()

	db, err := store.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	staticDir := filepath.Join(dir, "static")
	if err := os.MkdirAll(staticDir, 0o755); err != nil {
		t.Fatalf("create static dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(staticDir, "programm.json"), []byte(`{"days":[]}`), 0o644); err != nil {
		t.Fatalf("write static file: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := store.NewUserStore(db)
	sessions := store.NewAuthSessionStore(db, time.Hour)
	return NewRouter(db, users, sessions, staticDir, time.Hour, logger)
}

func doJSON(t *testing.T, h http.Handler, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestRegisterValidation(t *testing.T) {
	h := setupRouter(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"missing fields", `{}`, http.StatusBadRequest, "Benutzername und Passwort erforderlich."},
		{"username too short", `{"username":"ab","password":"geheim123"}`, http.StatusBadRequest, "Benutzername muss zwischen 3 und 30 Zeichen lang sein."},
		{"password too short", `{"username":"erika","password":"kurz"}`, http.StatusBadRequest, "Passwort muss mindestens 8 Zeichen lang sein."},
		{"malformed json", `{`, http.StatusBadRequest, "Ungültige Daten."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/register", tt.body, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := decodeBody(t, rec)["error"]; got != tt.wantError {
				t.Errorf("error = %q, want %q", got, tt.wantError)
			}
		})
	}
}

func TestRegisterAndDuplicate(t *testing.T) {
	h := setupRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/register", `{"username":"erika","password":"geheim123"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/api/register", `{"username":"erika","password":"anderes123"}`, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register status = %d, want 409", rec.Code)
	}
	if got := decodeBody(t, rec)["error"]; got != "Benutzername bereits vergeben." {
		t.Errorf("error = %q", got)
	}
}

func TestLoginFlow(t *testing.T) {
	h := setupRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/register", `{"username":"erika","password":"geheim123"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/login", `{"username":"erika","password":"falsch123"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/login", `{"username":"niemand","password":"geheim123"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/login", `{"username":"erika","password":"geheim123"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}

	var sessionCookieSet *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			sessionCookieSet = c
		}
	}
	if sessionCookieSet == nil || sessionCookieSet.Value == "" {
		t.Fatal("login did not set a session cookie")
	}
	if !sessionCookieSet.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}

	rec = doJSON(t, h, http.MethodGet, "/api/me", "", []*http.Cookie{sessionCookieSet})
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["username"] != "erika" {
		t.Errorf("me username = %v", body["username"])
	}
}

func TestMeRequiresSession(t *testing.T) {
	h := setupRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/api/me", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := decodeBody(t, rec)["error"]; got != "Nicht eingeloggt." {
		t.Errorf("error = %q", got)
	}

	stale := &http.Cookie{Name: sessionCookie, Value: "kein-echtes-token"}
	rec = doJSON(t, h, http.MethodGet, "/api/me", "", []*http.Cookie{stale})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("stale token status = %d, want 401", rec.Code)
	}
}

func TestSaveProgramRoundTrip(t *testing.T) {
	h := setupRouter(t)

	doJSON(t, h, http.MethodPost, "/api/register", `{"username":"erika","password":"geheim123"}`, nil)
	rec := doJSON(t, h, http.MethodPost, "/api/login", `{"username":"erika","password":"geheim123"}`, nil)
	cookies := rec.Result().Cookies()

	rec = doJSON(t, h, http.MethodPost, "/api/save_program",
		`{"sessions":["Mittwoch 1:3","Workshop 1"],"posters":["poster-7"]}`, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("save status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/api/me", "", cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	sessions, _ := body["saved_sessions"].([]any)
	if len(sessions) != 2 || sessions[0] != "Mittwoch 1:3" {
		t.Errorf("saved_sessions = %v", body["saved_sessions"])
	}
	posters, _ := body["saved_posters"].([]any)
	if len(posters) != 1 || posters[0] != "poster-7" {
		t.Errorf("saved_posters = %v", body["saved_posters"])
	}
	talks, ok := body["saved_talks"].([]any)
	if !ok || len(talks) != 0 {
		t.Errorf("saved_talks = %v, want empty list", body["saved_talks"])
	}
}

func TestSaveProgramRequiresSessionsField(t *testing.T) {
	h := setupRouter(t)

	doJSON(t, h, http.MethodPost, "/api/register", `{"username":"erika","password":"geheim123"}`, nil)
	rec := doJSON(t, h, http.MethodPost, "/api/login", `{"username":"erika","password":"geheim123"}`, nil)
	cookies := rec.Result().Cookies()

	rec = doJSON(t, h, http.MethodPost, "/api/save_program", `{"posters":[]}`, cookies)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	h := setupRouter(t)

	doJSON(t, h, http.MethodPost, "/api/register", `{"username":"erika","password":"geheim123"}`, nil)
	rec := doJSON(t, h, http.MethodPost, "/api/login", `{"username":"erika","password":"geheim123"}`, nil)
	cookies := rec.Result().Cookies()

	rec = doJSON(t, h, http.MethodPost, "/api/logout", "", cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/me", "", cookies)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout status = %d, want 401", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	h := setupRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/api/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "ok" {
		t.Errorf("status = %v", body["status"])
	}
}

func TestStaticFileServing(t *testing.T) {
	h := setupRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/programm.json", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("static status = %d", rec.Code)
	}
	if rec.Body.String() != `{"days":[]}` {
		t.Errorf("static body = %q", rec.Body.String())
	}
}
