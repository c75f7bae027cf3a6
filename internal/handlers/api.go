package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"uiventures-tps/internal/errors"
)

const version = "1.0.0"

type APIHandlers struct {
	logger  *slog.Logger
	started time.Time
}

func NewAPIHandlers(logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		logger:  logger,
		started: time.Now(),
	}
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   version,
		"uptime":    time.Since(h.started).Round(time.Second).String(),
	}

	errors.WriteSuccess(w, healthData)
}
