package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/frudas24/monitorshape/internal/monitor"
	"github.com/frudas24/monitorshape/internal/report"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const wsWriteTimeout = 5 * time.Second

// errRateLimited is reported to clients that send faster than allowed.
var errRateLimited = errors.New("rate limited")

// handleWebsocket upgrades the connection and validates every message it receives.
// Each text message is one JSON document and gets one result back. Binary
// frames are skipped.
func (a *App) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w, r) {
		return
	}
	strict := a.strict(r)

	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	id := uuid.NewString()
	a.acceptConn(conn, id)
	defer a.cleanupConn(conn)

	logger := a.logger.With(zap.String("conn", id), zap.String("remote", r.RemoteAddr))
	logger.Info("websocket connected")

	conn.SetReadLimit(a.cfg.MaxBodyBytes)
	limiter := rate.NewLimiter(rate.Limit(a.cfg.WSRatePerSec), a.cfg.WSBurst)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("websocket read failed", zap.Error(err))
			}
			logger.Info("websocket disconnected")
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var result report.Result
		if limiter.Allow() {
			result = a.Validate(data, monitor.FormatJSON, strict)
			a.metrics.observe(transportWS, resultLabel(result))
		} else {
			result = report.FromValidation("", nil, errRateLimited)
			a.metrics.observe(transportWS, resultLimited)
		}

		if err := a.writeResult(conn, result); err != nil {
			logger.Warn("websocket write failed", zap.Error(err))
			return
		}
	}
}

// writeResult sends one result with a write deadline.
func (a *App) writeResult(conn *websocket.Conn, result report.Result) error {
	if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(result)
}

// acceptConn registers an open connection.
func (a *App) acceptConn(conn *websocket.Conn, id string) {
	a.mu.Lock()
	a.conns[conn] = id
	a.mu.Unlock()
	a.metrics.wsConns.Inc()
}

// cleanupConn forgets the connection and closes it.
func (a *App) cleanupConn(conn *websocket.Conn) {
	a.mu.Lock()
	delete(a.conns, conn)
	a.mu.Unlock()
	a.metrics.wsConns.Dec()
	_ = conn.Close()
}
