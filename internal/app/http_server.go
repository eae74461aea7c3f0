package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/frudas24/monitorshape/internal/monitor"
	"github.com/frudas24/monitorshape/internal/report"
	"go.uber.org/zap"
)

// RegisterRoutes wires API and websocket handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/validate", a.handleValidate)
	mux.HandleFunc("/ws/validate", a.handleWebsocket)
	mux.HandleFunc("/healthz", handleHealth)
	mux.Handle("/metrics", a.metricsHandler())
}

// handleValidate validates the request body as a monitor record or list.
func (a *App) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !a.requireAuth(w, r) {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, a.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	result := a.Validate(body, formatFromContentType(r.Header.Get("Content-Type")), a.strict(r))
	status := statusFor(result)
	a.metrics.observe(transportHTTP, resultLabel(result))
	a.logger.Debug("validated request",
		zap.String("remote", r.RemoteAddr),
		zap.Bool("valid", result.Valid),
		zap.Int("problems", len(result.Errors)))

	writeJSON(w, status, result)
}

// handleHealth reports liveness.
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

// requireAuth returns false and writes an error if the request is not authorized.
func (a *App) requireAuth(w http.ResponseWriter, r *http.Request) bool {
	if !a.session.Authorize(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

// strict reports whether constraint checks are requested for r.
func (a *App) strict(r *http.Request) bool {
	raw := r.URL.Query().Get("strict")
	if raw == "" {
		return a.cfg.Strict
	}
	on, err := strconv.ParseBool(raw)
	if err != nil {
		return a.cfg.Strict
	}
	return on
}

// formatFromContentType picks the body decoder from the media type.
func formatFromContentType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return monitor.FormatAuto
	}
	switch mediaType {
	case "application/json":
		return monitor.FormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml":
		return monitor.FormatYAML
	default:
		return monitor.FormatAuto
	}
}

// statusFor maps a result onto an HTTP status.
func statusFor(result report.Result) int {
	switch {
	case result.Valid:
		return http.StatusOK
	case result.Error != "":
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

// resultLabel maps a result onto its metric label.
func resultLabel(result report.Result) string {
	switch {
	case result.Valid:
		return resultValid
	case result.Error != "":
		return resultError
	default:
		return resultInvalid
	}
}

// writeJSON encodes v with the given status. The body is encoded before the
// header is written so an unencodable value becomes a 500 instead of an empty reply.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, "encode response: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
