package handlers

import (
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"uiventures-tps/internal/errors"
	"uiventures-tps/internal/models"
	"uiventures-tps/internal/observability"
	"uiventures-tps/internal/services"
	"uiventures-tps/internal/session"
)

const msgSessionFailed = "Could not start your session. Please try again."

type AuthHandlers struct {
	auth   *services.Auth
	store  session.Store
	logger *slog.Logger
}

func NewAuthHandlers(auth *services.Auth, store session.Store, logger *slog.Logger) *AuthHandlers {
	return &AuthHandlers{
		auth:   auth,
		store:  store,
		logger: logger,
	}
}

// HandleSignIn exchanges the login form for the user record, stores it as
// the session and sends the browser to the dashboard.
func (h *AuthHandlers) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var form services.SignInForm
	if err := datastar.ReadSignals(r, &form); err != nil {
		h.logger.Debug("unreadable sign-in signals", "error", err)
		form = services.SignInForm{}
	}

	user, err := h.auth.SignIn(r.Context(), form)
	h.finish(w, r, user, err)
}

func (h *AuthHandlers) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	var form services.SignUpForm
	if err := datastar.ReadSignals(r, &form); err != nil {
		h.logger.Debug("unreadable sign-up signals", "error", err)
		form = services.SignUpForm{}
	}

	user, err := h.auth.SignUp(r.Context(), form)
	h.finish(w, r, user, err)
}

// HandleSignOut clears the stored user and returns to the home page.
func (h *AuthHandlers) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(w, r); err != nil {
		h.logger.Warn("failed to clear session",
			"error", err,
			"request_id", observability.GetRequestID(r.Context()),
		)
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.Redirect("/"); err != nil {
		h.logger.Warn("redirect failed", "error", err)
	}
}

// finish saves the session before the event stream starts, since the
// stream commits the response headers.
func (h *AuthHandlers) finish(w http.ResponseWriter, r *http.Request, user models.User, err error) {
	ctx := r.Context()
	if err != nil {
		sse := datastar.NewSSE(w, r)
		toastError(ctx, sse, h.logger, err, msgSessionFailed)
		return
	}

	if err := h.store.Save(w, r, user); err != nil {
		sse := datastar.NewSSE(w, r)
		toastError(ctx, sse, h.logger, errors.Wrap(err, errors.CodeInternal, msgSessionFailed), msgSessionFailed)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.Redirect("/dashboard"); err != nil {
		h.logger.Warn("redirect failed", "error", err, "request_id", observability.GetRequestID(ctx))
	}
}
