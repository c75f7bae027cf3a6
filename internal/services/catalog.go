package services

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"uiventures-tps/internal/errors"
	"uiventures-tps/internal/models"
)

const (
	msgCreateProductFailed = "Failed to create product. Please enter a valid product details and try again."
	msgDeleteProductFailed = "Failed to delete product"
)

type CatalogAPI interface {
	ListProducts(ctx context.Context, department string) ([]models.Product, error)
	CreateProduct(ctx context.Context, p models.NewProduct) (models.Product, error)
	DeleteProduct(ctx context.Context, id models.ID) (bool, error)
}

// Catalog is the department product list as the remote API reports it.
// Nothing is cached; concurrent reads of the same department share one call.
type Catalog struct {
	api    CatalogAPI
	group  singleflight.Group
	logger *slog.Logger
}

func NewCatalog(api CatalogAPI, logger *slog.Logger) *Catalog {
	return &Catalog{api: api, logger: logger}
}

// List returns the department's products. The shared call is not tied to any
// one caller, so a caller that gives up does not fail the others waiting on
// it; each caller stops waiting when its own ctx is done.
func (c *Catalog) List(ctx context.Context, department string) ([]models.Product, error) {
	ch := c.group.DoChan(department, func() (any, error) {
		return c.api.ListProducts(context.WithoutCancel(ctx), department)
	})

	select {
	case <-ctx.Done():
		return nil, errors.UpstreamWrap(ctx.Err(), "Failed to load products")
	case res := <-ch:
		if res.Err != nil {
			return nil, errors.UpstreamWrap(res.Err, "Failed to load products")
		}
		return res.Val.([]models.Product), nil
	}
}

// Create validates the form and posts it. Invalid input never reaches the API.
func (c *Catalog) Create(ctx context.Context, admin models.Admin, form ProductForm) (models.Product, error) {
	body, err := form.Validate(admin.Department)
	if err != nil {
		return models.Product{}, err
	}

	created, err := c.api.CreateProduct(ctx, body)
	if err != nil {
		return models.Product{}, errors.UpstreamWrap(err, msgCreateProductFailed)
	}

	c.logger.Info("product created",
		"name", body.Name,
		"category", body.Category,
		"admin", admin.Name,
	)
	return created, nil
}

// Delete removes a product. When the API confirms the deletion the
// department list is fetched again and returned; a failed refetch yields
// an empty list but still counts as deleted.
func (c *Catalog) Delete(ctx context.Context, department string, id models.ID) ([]models.Product, bool, error) {
	confirmed, err := c.api.DeleteProduct(ctx, id)
	if err != nil {
		return nil, false, errors.UpstreamWrap(err, msgDeleteProductFailed)
	}
	if !confirmed {
		return nil, false, nil
	}

	// A read already in flight may predate the delete.
	c.group.Forget(department)
	products, err := c.List(ctx, department)
	if err != nil {
		c.logger.Warn("refetch after product delete failed", "department", department, "error", err)
		return nil, true, nil
	}
	return products, true, nil
}
