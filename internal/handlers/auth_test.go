package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inventory_tracker/internal/service"
)

func TestAuthHandlers_SignIn(t *testing.T) {
	auth := &mockAuth{signInToken: "tok123", signInSession: validSession()}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	// sign-in success
	body := bytes.NewBufferString(`{"username":"admin","password":"admin123"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("sign-in status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["token"] != "tok123" {
		t.Fatalf("expected token tok123, got %v", m["token"])
	}
	if m["username"] != "admin" {
		t.Fatalf("expected username admin, got %v", m["username"])
	}
	if auth.lastSignInUsername != "admin" || auth.lastSignInPassword != "admin123" {
		t.Fatalf("credentials not forwarded: %q/%q", auth.lastSignInUsername, auth.lastSignInPassword)
	}

	// sign-in invalid body → 400
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth/sign-in", bytes.NewBufferString(`{"username":1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}
}

func TestAuthHandlers_SignIn_BadCredentials(t *testing.T) {
	auth := &mockAuth{signInErr: service.ErrInvalidCredentials}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	wantMsg := "invalid username or password"
	for _, body := range []string{
		`{"username":"admin","password":"wrongpass"}`,
		`{"username":"nosuchuser","password":"x"}`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d (body %s)", w.Code, body)
		}
		var m map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &m)
		// Identical message for unknown user and wrong password.
		if m["error"] != wantMsg {
			t.Fatalf("expected %q, got %v", wantMsg, m["error"])
		}
	}
}

func TestAuthHandlers_SignOut(t *testing.T) {
	auth := &mockAuth{authSession: validSession()}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/sign-out", nil)
	req.Header = authHeader("tok123")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("sign-out status=%d, body=%s", w.Code, w.Body.String())
	}
	if auth.lastSignOutToken != "tok123" {
		t.Fatalf("expected sign-out to receive the session token, got %q", auth.lastSignOutToken)
	}
}

func TestAuthHandlers_SignOut_RequiresSession(t *testing.T) {
	auth := &mockAuth{authErr: service.ErrInvalidCredentials}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/sign-out", nil)
	req.Header = authHeader("expired")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
