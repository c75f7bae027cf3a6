package handlers

import (
	"cmp"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"uiventures-tps/internal/errors"
	"uiventures-tps/internal/models"
	"uiventures-tps/internal/services"
	"uiventures-tps/internal/ui/templates"
)

const (
	msgOrderCreated      = "Order created!"
	msgOrderDeleted      = "Order deleted!"
	msgInvalidOrder      = "Enter valid order data"
	msgCreateOrderFailed = "Failed to create order. Please enter valid order details and try again."
	msgDeleteOrderFailed = "Failed to delete order"
)

type orderSignals struct {
	Order map[string]templates.ComposerLine `json:"order"`
}

// HandleCreateOrder composes an order from the cashier's entered quantities
// and submits it. Names and prices come from the department catalog; the
// browser only supplies amounts. On success only a toast is shown.
func (h *SSEHandlers) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var signals orderSignals
	readErr := datastar.ReadSignals(r, &signals)

	sse := datastar.NewSSE(w, r)
	ctx := r.Context()

	viewer, err := viewerFrom(r)
	if err != nil {
		toastError(ctx, sse, h.logger, err, msgSignInRequired)
		return
	}
	cashier, ok := viewer.(models.Cashier)
	if !ok {
		toastError(ctx, sse, h.logger, errors.BadRequest(msgCashierOnly), msgCashierOnly)
		return
	}
	if readErr != nil {
		toastError(ctx, sse, h.logger, errors.ValidationWrap(readErr, msgInvalidOrder), msgInvalidOrder)
		return
	}

	if !anyOrdered(signals.Order) {
		toastError(ctx, sse, h.logger, errors.Validation(msgInvalidOrder), msgInvalidOrder)
		return
	}

	catalog, err := h.catalog.List(ctx, cashier.Department)
	if err != nil {
		toastError(ctx, sse, h.logger, errors.UpstreamWrap(err, msgCreateOrderFailed), msgCreateOrderFailed)
		return
	}

	composer := services.NewComposer(catalog)
	if unknown := applySignals(composer, signals.Order); len(unknown) > 0 {
		h.logger.WarnContext(ctx, "order lines for unknown products ignored",
			"department", cashier.Department,
			"names", unknown,
		)
	}

	if _, err := h.orders.Submit(ctx, cashier, composer); err != nil {
		toastError(ctx, sse, h.logger, err, msgInvalidOrder)
		return
	}
	toastSuccess(ctx, sse, h.logger, msgOrderCreated)
}

// HandleDeleteOrder deletes an order. A confirmed deletion re-renders the
// history and shows a success toast; an unconfirmed one changes nothing.
func (h *SSEHandlers) HandleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	ctx := r.Context()

	viewer, err := viewerFrom(r)
	if err != nil {
		toastError(ctx, sse, h.logger, err, msgSignInRequired)
		return
	}

	id := models.ID(r.PathValue("id"))
	orders, confirmed, err := h.orders.Delete(ctx, viewer.Profile().Department, id)
	if err != nil {
		toastError(ctx, sse, h.logger, err, msgDeleteOrderFailed)
		return
	}
	if !confirmed {
		return
	}

	patch(ctx, sse, h.logger, templates.OrderList(orders, services.Summarize(orders)))
	toastSuccess(ctx, sse, h.logger, msgOrderDeleted)
}

func anyOrdered(lines map[string]templates.ComposerLine) bool {
	for _, line := range lines {
		if services.ParseQuantity(line.Amount) > 0 {
			return true
		}
	}
	return false
}

// applySignals copies entered amounts onto c in the order the rows were
// rendered: p0, p1, ... Keys that do not follow that shape go last. Names c
// does not hold are skipped and returned.
func applySignals(c *services.Composer, lines map[string]templates.ComposerLine) []string {
	keys := make([]string, 0, len(lines))
	for k := range lines {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		ia, erra := rowIndex(a)
		ib, errb := rowIndex(b)
		switch {
		case erra == nil && errb == nil:
			return cmp.Compare(ia, ib)
		case erra == nil:
			return -1
		case errb == nil:
			return 1
		default:
			return strings.Compare(a, b)
		}
	})

	var unknown []string
	for _, k := range keys {
		line := lines[k]
		if !c.SetAmount(line.Name, line.Amount) {
			unknown = append(unknown, line.Name)
		}
	}
	return unknown
}

func rowIndex(key string) (int, error) {
	return strconv.Atoi(strings.TrimPrefix(key, "p"))
}
