package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"uiventures-tps/internal/observability"
	"uiventures-tps/internal/services"
	"uiventures-tps/internal/session"
	"uiventures-tps/internal/ui/templates"
)

const renderTimeout = 10 * time.Second

type PageHandlers struct {
	dashboard *services.Dashboard
	logger    *slog.Logger
}

func NewPageHandlers(dashboard *services.Dashboard, logger *slog.Logger) *PageHandlers {
	return &PageHandlers{
		dashboard: dashboard,
		logger:    logger,
	}
}

func (h *PageHandlers) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, templates.Home())
}

func (h *PageHandlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, templates.Login())
}

func (h *PageHandlers) HandleSignup(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, templates.Signup())
}

// HandleDashboard renders the view for the session user. A visitor without
// a session gets the bare page shell; nothing redirects.
func (h *PageHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())

	view, err := h.dashboard.Load(r.Context(), s)
	if err != nil {
		h.logger.Warn("dashboard load failed",
			"error", err,
			"user_id", s.User.ID,
			"request_id", observability.GetRequestID(r.Context()),
		)
	}

	w.Header().Set("Cache-Control", "no-store")
	h.render(w, r, templates.Dashboard(view, s.SignedIn()))
}

func (h *PageHandlers) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(ctx, w); err != nil {
		h.logger.Error("render page",
			"error", err,
			"path", r.URL.Path,
			"request_id", observability.GetRequestID(r.Context()),
		)
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}
