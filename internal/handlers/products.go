package handlers

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"uiventures-tps/internal/errors"
	"uiventures-tps/internal/models"
	"uiventures-tps/internal/services"
	"uiventures-tps/internal/ui/templates"
)

const (
	msgProductCreated      = "Product created!"
	msgProductDeleted      = "Product deleted!"
	msgInvalidProduct      = "Enter valid product data"
	msgDeleteProductFailed = "Failed to delete product"
)

type productSignals struct {
	Product services.ProductForm `json:"product"`
}

func adminFrom(r *http.Request) (models.Admin, error) {
	viewer, err := viewerFrom(r)
	if err != nil {
		return models.Admin{}, err
	}
	admin, ok := viewer.(models.Admin)
	if !ok {
		return models.Admin{}, errors.BadRequest(msgAdminOnly)
	}
	return admin, nil
}

// HandleCreateProduct validates the create-product form and posts it.
// Invalid input is answered with a toast before any API call.
func (h *SSEHandlers) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var signals productSignals
	readErr := datastar.ReadSignals(r, &signals)

	sse := datastar.NewSSE(w, r)
	ctx := r.Context()

	admin, err := adminFrom(r)
	if err != nil {
		toastError(ctx, sse, h.logger, err, msgAdminOnly)
		return
	}
	if readErr != nil {
		toastError(ctx, sse, h.logger, errors.ValidationWrap(readErr, msgInvalidProduct), msgInvalidProduct)
		return
	}

	if _, err := h.catalog.Create(ctx, admin, signals.Product); err != nil {
		toastError(ctx, sse, h.logger, err, msgInvalidProduct)
		return
	}
	toastSuccess(ctx, sse, h.logger, msgProductCreated)
}

// HandleDeleteProduct deletes a product. A confirmed deletion refetches the
// catalog once and shows a success toast; an error shows one failure toast
// and leaves the list alone.
func (h *SSEHandlers) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	ctx := r.Context()

	admin, err := adminFrom(r)
	if err != nil {
		toastError(ctx, sse, h.logger, err, msgAdminOnly)
		return
	}

	id := models.ID(r.PathValue("id"))
	products, confirmed, err := h.catalog.Delete(ctx, admin.Department, id)
	if err != nil {
		toastError(ctx, sse, h.logger, err, msgDeleteProductFailed)
		return
	}
	if !confirmed {
		return
	}

	patch(ctx, sse, h.logger, templates.ProductList(products))
	toastSuccess(ctx, sse, h.logger, msgProductDeleted)
}
