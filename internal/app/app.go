// Package app wires the HTTP API, the websocket endpoint, and validation together.
package app

import (
	"errors"
	"net/http"
	"sync"

	"github.com/frudas24/monitorshape/internal/config"
	"github.com/frudas24/monitorshape/internal/monitor"
	"github.com/frudas24/monitorshape/internal/report"
	"github.com/frudas24/monitorshape/internal/session"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// App serves monitor record validation over HTTP and websocket.
type App struct {
	mu       sync.Mutex
	cfg      config.Config
	session  *session.Session
	logger   *zap.Logger
	metrics  *Metrics
	registry *prometheus.Registry
	upgrader websocket.Upgrader
	conns    map[*websocket.Conn]string
}

// New creates an application with its dependencies wired.
func New(cfg config.Config, sess *session.Session, logger *zap.Logger) (*App, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := prometheus.NewRegistry()
	metrics, err := NewMetrics(registry)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:      cfg,
		session:  sess,
		logger:   logger,
		metrics:  metrics,
		registry: registry,
		conns:    make(map[*websocket.Conn]string),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}, nil
}

// Validate decodes data and validates it as one monitor record or a list.
// With strict set, semantic constraints are applied after the shape check.
func (a *App) Validate(data []byte, format string, strict bool) report.Result {
	input, err := monitor.Decode(data, format)
	if err != nil {
		return report.FromValidation("", nil, err)
	}
	monitors, err := monitor.ValidateAny(input)
	if err == nil && strict {
		err = monitor.CheckAny(input, monitors)
		if err != nil {
			monitors = nil
		}
	}
	return report.FromValidation("", monitors, err)
}

// Close drops every open websocket connection.
func (a *App) Close() {
	a.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(a.conns))
	for conn := range a.conns {
		conns = append(conns, conn)
	}
	a.conns = make(map[*websocket.Conn]string)
	a.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close()
	}
}

// ActiveConnections returns the number of open websocket connections.
func (a *App) ActiveConnections() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.conns)
}
