package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"inventory_tracker/internal/models"
	"inventory_tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 5 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=90s", 5 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=90000", 5 * time.Second},
		{"interval_invalid_string", "/ws?interval=bogus", 5 * time.Second},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", 5 * time.Second},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

// --- websocket integration tests ---

func wsURL(t *testing.T, base, rawQuery string) string {
	t.Helper()
	u, err := url.Parse(base)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = rawQuery
	return u.String()
}

func TestWebSocket_DashboardStream_InitialAndPeriodic(t *testing.T) {
	inv := &mockInventory{
		listResp:  []models.Product{*sampleProduct()},
		statsResp: models.Stats{TotalProducts: 1, TotalStock: 5, LowStockCount: 1},
	}
	auth := &mockAuth{authSession: validSession()}
	s := &service.Service{Authorization: auth, Inventory: inv}

	r := newTestRouter(s)
	srv := httptest.NewServer(r)
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(wsURL(t, srv.URL, "token=tok123&interval_ms=20"), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	type envelope struct {
		Type  string          `json:"type"`
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}
	type snapshot struct {
		Products  []models.Product `json:"products"`
		Stats     models.Stats     `json:"stats"`
		Threshold int              `json:"threshold"`
	}

	// Read initial snapshot
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != "dashboard" || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var snap snapshot
	if err := json.Unmarshal(env.Data, &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if len(snap.Products) != 1 || snap.Stats.LowStockCount != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Threshold != service.DefaultLowStockThreshold {
		t.Fatalf("unexpected threshold: %d", snap.Threshold)
	}

	// Read a subsequent tick
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	env = envelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read second: %v", err)
	}
	if env.Type != "dashboard" {
		t.Fatalf("expected type=dashboard, got %+v", env)
	}
}

func TestWebSocket_RejectsMissingToken(t *testing.T) {
	auth := &mockAuth{authErr: service.ErrInvalidCredentials}
	s := &service.Service{Authorization: auth, Inventory: &mockInventory{}}

	r := newTestRouter(s)
	srv := httptest.NewServer(r)
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	_, resp, err := dialer.Dial(wsURL(t, srv.URL, ""), nil)
	if err == nil {
		t.Fatalf("expected handshake to fail without a token")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 handshake response, got %+v", resp)
	}
}

func TestWebSocket_InitialListError_Closes(t *testing.T) {
	inv := &mockInventory{listErr: errors.New("boom")}
	auth := &mockAuth{authSession: validSession()}
	s := &service.Service{Authorization: auth, Inventory: inv}

	r := newTestRouter(s)
	srv := httptest.NewServer(r)
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(wsURL(t, srv.URL, "token=tok123"), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	// The server should close immediately after the failed initial snapshot.
	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err == nil {
		t.Fatalf("expected read error (closed), got message: %s", string(raw))
	}
}
