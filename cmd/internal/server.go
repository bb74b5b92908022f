package internal

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/spacelift-io/metricscalr/internal"
)

// NewHandler exposes the daemon's autoscaler over HTTP.
func NewHandler(d *Daemon, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		if d.AutoScaler.IsDestroyed() {
			status = http.StatusServiceUnavailable
		}

		writeJSON(w, logger, status, map[string]string{"state": d.AutoScaler.State().String()})
	})

	mux.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, http.StatusOK, d.AutoScaler.Status())
	})

	mux.HandleFunc("POST /suspend", func(w http.ResponseWriter, r *http.Request) {
		if err := d.AutoScaler.Suspend(); err != nil {
			writeError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, d.AutoScaler.Status())
	})

	mux.HandleFunc("POST /resume", func(w http.ResponseWriter, r *http.Request) {
		if err := d.AutoScaler.Resume(r.Context()); err != nil {
			writeError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, d.AutoScaler.Status())
	})

	mux.HandleFunc("POST /ceiling/clear", func(w http.ResponseWriter, r *http.Request) {
		d.AutoScaler.ClearCeilingMark()
		writeJSON(w, logger, http.StatusOK, d.AutoScaler.Status())
	})

	mux.HandleFunc("PUT /config", func(w http.ResponseWriter, r *http.Request) {
		// Fields missing from the body keep their current values.
		cfg := d.AutoScaler.Snapshot()

		decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
		decoder.DisallowUnknownFields()

		if err := decoder.Decode(&cfg); err != nil {
			writeJSON(w, logger, http.StatusBadRequest, map[string]string{"error": "invalid configuration: " + err.Error()})
			return
		}

		if err := d.Reconfigure(r.Context(), cfg); err != nil {
			writeError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, d.AutoScaler.Status())
	})

	return otelhttp.NewHandler(mux, "autoscaler", otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
		return r.Method + " " + r.URL.Path
	}))
}

func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, internal.ErrDestroyed):
		status = http.StatusGone
	case errors.Is(err, internal.ErrNotAttached):
		status = http.StatusConflict
	case errors.Is(err, internal.ErrInvalidConfig):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	}

	writeJSON(w, logger, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to encode response", "error", err)
	}
}
