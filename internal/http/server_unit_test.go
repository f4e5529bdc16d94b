package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"coursedesk/internal/config"
	"coursedesk/internal/crypto"
	"coursedesk/internal/logger"
)

func testServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	appLog, err := logger.New("", logger.Error)
	if err != nil {
		t.Fatalf("logger error: %v", err)
	}
	return NewServer(cfg, nil, appLog)
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"Bearer abc":       "abc",
		"bearer abc":       "abc",
		"Basic abc":        "",
		"Bearer":           "",
		"Bearer  spaced  ": "spaced",
	}
	for header, expect := range cases {
		if got := bearerToken(header); got != expect {
			t.Fatalf("bearerToken(%q) = %q, expected %q", header, got, expect)
		}
	}
}

func TestEnvelopeShape(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusNotFound, "Week not found")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON content type, got %s", ct)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["success"] != false {
		t.Fatalf("expected success=false, got %v", body["success"])
	}
	if body["error"] != "Week not found" {
		t.Fatalf("expected error message, got %v", body["error"])
	}
	if _, ok := body["data"]; ok {
		t.Fatalf("error envelope must not carry data")
	}
}

func TestCORSPreflight(t *testing.T) {
	server := testServer(t, &config.Config{})
	req := httptest.NewRequest(http.MethodOptions, "/students", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty preflight body")
	}
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Fatalf("expected wildcard origin, got %s", origin)
	}
	if methods := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(methods, "DELETE") {
		t.Fatalf("expected DELETE in allowed methods, got %s", methods)
	}
}

func TestMethodNotAllowedEnvelope(t *testing.T) {
	server := testServer(t, &config.Config{})
	req := httptest.NewRequest(http.MethodPatch, "/students", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["success"] != false {
		t.Fatalf("expected envelope on 405, got %v", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	server := testServer(t, &config.Config{})
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Fatalf("expected runtime metrics in body")
	}
}

func TestRequireAdminGate(t *testing.T) {
	adminHash, err := crypto.HashPassword("password")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTIssuer:         "test-issuer",
		TokenTTL:          time.Minute,
		AdminPasswordHash: adminHash,
	}
	server := testServer(t, cfg)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	gate := server.requireAdmin(next)

	// No token.
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/weeks", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	// Garbage token.
	req := httptest.NewRequest(http.MethodPost, "/weeks", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	gate.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}

	// Wrong admin password.
	router := server.Router()
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"password": "wrong"}`))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong admin password, got %d", rec.Code)
	}

	// Login with the right password yields a token the gate accepts.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"password": "password"}`))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin login, got %d", rec.Code)
	}
	var login envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("invalid login body: %v", err)
	}
	token, _ := login.Data.(map[string]interface{})["token"].(string)
	if token == "" {
		t.Fatalf("expected token in login data, got %v", login.Data)
	}
	req = httptest.NewRequest(http.MethodPost, "/weeks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	gate.ServeHTTP(rec, req)
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected pass-through with valid token, got %d", rec.Code)
	}

	// Gate open when no admin hash is configured.
	open := testServer(t, &config.Config{}).requireAdmin(next)
	rec = httptest.NewRecorder()
	open.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/weeks", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected open gate without admin hash, got %d", rec.Code)
	}
}

func TestQueryID(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/assignments?id=42", nil)
	id, ok := queryID(req)
	if !ok || id != 42 {
		t.Fatalf("expected id 42 from query, got %d ok=%v", id, ok)
	}

	req = httptest.NewRequest(http.MethodDelete, "/assignments", strings.NewReader(`{"id": 7}`))
	id, ok = queryID(req)
	if !ok || id != 7 {
		t.Fatalf("expected id 7 from body, got %d ok=%v", id, ok)
	}

	req = httptest.NewRequest(http.MethodDelete, "/assignments?id=abc", nil)
	if _, ok := queryID(req); ok {
		t.Fatalf("expected non-numeric id to be rejected")
	}

	req = httptest.NewRequest(http.MethodDelete, "/assignments", nil)
	if _, ok := queryID(req); ok {
		t.Fatalf("expected missing id to be rejected")
	}
}
