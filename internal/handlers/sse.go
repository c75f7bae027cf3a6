package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"uiventures-tps/internal/errors"
	"uiventures-tps/internal/models"
	"uiventures-tps/internal/observability"
	"uiventures-tps/internal/services"
	"uiventures-tps/internal/session"
	"uiventures-tps/internal/ui/templates"
)

const (
	msgSignInRequired = "Please sign in to continue"
	msgAdminOnly      = "Only admins can manage products"
	msgCashierOnly    = "Only cashiers can create orders"
)

// SSEHandlers answers datastar actions on the dashboard. Every response is
// a stream of element patches: the affected list, a toast, or both.
type SSEHandlers struct {
	catalog *services.Catalog
	orders  *services.Orders
	logger  *slog.Logger
}

func NewSSEHandlers(catalog *services.Catalog, orders *services.Orders, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		catalog: catalog,
		orders:  orders,
		logger:  logger,
	}
}

// HandleProducts re-renders the department product list. A failed fetch
// renders the empty list.
func (h *SSEHandlers) HandleProducts(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerFrom(r)
	sse := datastar.NewSSE(w, r)
	if err != nil {
		toastError(r.Context(), sse, h.logger, err, msgSignInRequired)
		return
	}

	department := viewer.Profile().Department
	products, err := h.catalog.List(r.Context(), department)
	if err != nil {
		h.logger.Warn("product list fetch failed",
			"department", department,
			"error", err,
			"request_id", observability.GetRequestID(r.Context()),
		)
	}
	patch(r.Context(), sse, h.logger, templates.ProductList(products))
}

// HandleOrders re-renders the department order history, newest first.
func (h *SSEHandlers) HandleOrders(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerFrom(r)
	sse := datastar.NewSSE(w, r)
	if err != nil {
		toastError(r.Context(), sse, h.logger, err, msgSignInRequired)
		return
	}

	department := viewer.Profile().Department
	orders, err := h.orders.History(r.Context(), department)
	if err != nil {
		h.logger.Warn("order list fetch failed",
			"department", department,
			"error", err,
			"request_id", observability.GetRequestID(r.Context()),
		)
	}
	patch(r.Context(), sse, h.logger, templates.OrderList(orders, services.Summarize(orders)))
}

// viewerFrom resolves the dashboard role of the session user.
func viewerFrom(r *http.Request) (models.Viewer, error) {
	s := session.FromContext(r.Context())
	if !s.SignedIn() {
		return nil, errors.BadRequest(msgSignInRequired)
	}
	viewer, ok := s.User.Viewer()
	if !ok {
		return nil, errors.BadRequest(msgSignInRequired)
	}
	return viewer, nil
}

func patch(ctx context.Context, sse *datastar.ServerSentEventGenerator, logger *slog.Logger, c templ.Component) {
	html, err := templates.String(ctx, c)
	if err != nil {
		logger.Error("render fragment", "error", err, "request_id", observability.GetRequestID(ctx))
		return
	}
	if err := sse.PatchElements(html); err != nil {
		logger.Warn("patch elements", "error", err, "request_id", observability.GetRequestID(ctx))
	}
}

func toastSuccess(ctx context.Context, sse *datastar.ServerSentEventGenerator, logger *slog.Logger, message string) {
	patch(ctx, sse, logger, templates.SuccessToast(message))
}

// toastError shows the user-facing message of err, or fallback, as a single
// error toast. Causes are logged, never shown.
func toastError(ctx context.Context, sse *datastar.ServerSentEventGenerator, logger *slog.Logger, err error, fallback string) {
	level := slog.LevelWarn
	if errors.IsValidation(err) {
		level = slog.LevelDebug
	}
	logger.Log(ctx, level, "action failed",
		"error_code", errors.CodeOf(err),
		"error", err,
		"request_id", observability.GetRequestID(ctx),
	)
	patch(ctx, sse, logger, templates.ErrorToast(errors.MessageOf(err, fallback)))
}
