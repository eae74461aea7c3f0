package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/frudas24/monitorshape/internal/report"
	"github.com/gorilla/websocket"
)

// dialValidate starts a server for app and opens a websocket to /ws/validate.
func dialValidate(t *testing.T, app *App, query string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	mux := http.NewServeMux()
	app.RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/validate" + query
	return websocket.DefaultDialer.Dial(url, nil)
}

// readResult reads one result with a deadline.
func readResult(t *testing.T, conn *websocket.Conn) report.Result {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	var result report.Result
	if err := conn.ReadJSON(&result); err != nil {
		t.Fatalf("read result: %v", err)
	}
	return result
}

// TestWebsocket_ResultPerMessage verifies each message gets its own result.
func TestWebsocket_ResultPerMessage(t *testing.T) {
	app := newTestApp(t, "")
	conn, _, err := dialValidate(t, app, "")
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	bad := strings.Replace(monitorJSON, `"focused":true`, `"focused":"true"`, 1)
	for _, msg := range []string{monitorJSON, bad, `nope`} {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	first := readResult(t, conn)
	if !first.Valid || len(first.Monitors) != 1 {
		t.Fatalf("expected valid first result, got %+v", first)
	}
	second := readResult(t, conn)
	if second.Valid || second.Errors["focused"] != "expected boolean, got text" {
		t.Fatalf("expected focused mismatch, got %+v", second)
	}
	third := readResult(t, conn)
	if third.Valid || third.Error == "" {
		t.Fatalf("expected decode error, got %+v", third)
	}
}

// TestWebsocket_SkipsBinaryFrames verifies binary frames get no result.
func TestWebsocket_SkipsBinaryFrames(t *testing.T) {
	app := newTestApp(t, "")
	conn, _, err := dialValidate(t, app, "")
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.BinaryMessage, []byte(`nope`)); err != nil {
		t.Fatalf("write binary failed: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(monitorJSON)); err != nil {
		t.Fatalf("write text failed: %v", err)
	}
	if first := readResult(t, conn); !first.Valid || len(first.Monitors) != 1 {
		t.Fatalf("expected the text message result first, got %+v", first)
	}
}

// TestWebsocket_RateLimited verifies messages beyond the burst are refused.
func TestWebsocket_RateLimited(t *testing.T) {
	app := newTestApp(t, "")
	app.cfg.WSRatePerSec = 1
	app.cfg.WSBurst = 1
	conn, _, err := dialValidate(t, app, "")
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	for i := 0; i < 2; i++ {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(monitorJSON)); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	if first := readResult(t, conn); !first.Valid {
		t.Fatalf("expected first message to validate, got %+v", first)
	}
	if second := readResult(t, conn); second.Valid || second.Error != "rate limited" {
		t.Fatalf("expected rate limited result, got %+v", second)
	}
}

// TestWebsocket_Unauthorized verifies the handshake is refused without a token.
func TestWebsocket_Unauthorized(t *testing.T) {
	app := newTestApp(t, "pw")
	_, resp, err := dialValidate(t, app, "")
	if err == nil {
		t.Fatalf("expected dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 response, got %+v", resp)
	}

	conn, _, err := dialValidate(t, app, "?token=pw")
	if err != nil {
		t.Fatalf("dial with token failed: %v", err)
	}
	_ = conn.Close()
}

// TestClose_DropsConnections verifies Close disconnects open websockets.
func TestClose_DropsConnections(t *testing.T) {
	app := newTestApp(t, "")
	conn, _, err := dialValidate(t, app, "")
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	for app.ActiveConnections() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("expected one active connection")
		}
		time.Sleep(10 * time.Millisecond)
	}

	app.Close()
	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("expected read to fail after Close")
	}
}
