package services

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"uiventures-tps/internal/errors"
	"uiventures-tps/internal/models"
)

const (
	msgCreateOrderFailed = "Failed to create order. Please enter valid order details and try again."
	msgDeleteOrderFailed = "Failed to delete order"
)

type OrderAPI interface {
	ListOrders(ctx context.Context, department string) ([]models.Order, error)
	CreateOrder(ctx context.Context, o models.NewOrder) (models.Order, error)
	DeleteOrder(ctx context.Context, id models.ID) (bool, error)
}

type Orders struct {
	api    OrderAPI
	logger *slog.Logger
}

func NewOrders(api OrderAPI, logger *slog.Logger) *Orders {
	return &Orders{api: api, logger: logger}
}

// Submit composes and posts an order. An order that fails validation is
// rejected before any request is made. The composer is left as is.
func (o *Orders) Submit(ctx context.Context, cashier models.Cashier, c *Composer) (models.Order, error) {
	body, err := c.Compose(cashier)
	if err != nil {
		return models.Order{}, err
	}

	created, err := o.api.CreateOrder(ctx, body)
	if err != nil {
		return models.Order{}, errors.UpstreamWrap(err, msgCreateOrderFailed)
	}

	o.logger.Info("order created",
		"products", body.NameOfProductsOrdered,
		"amount_sold", body.AmountSold,
		"total", body.TotalPriceOfProductsSold,
		"cashier", body.NameOfCashier,
	)
	return created, nil
}

// History lists a department's orders, newest first.
func (o *Orders) History(ctx context.Context, department string) ([]models.Order, error) {
	orders, err := o.api.ListOrders(ctx, department)
	if err != nil {
		return nil, errors.UpstreamWrap(err, "Failed to load orders")
	}
	SortNewestFirst(orders)
	return orders, nil
}

// Delete removes an order and, when the API confirms it, returns the
// refreshed history.
func (o *Orders) Delete(ctx context.Context, department string, id models.ID) ([]models.Order, bool, error) {
	confirmed, err := o.api.DeleteOrder(ctx, id)
	if err != nil {
		return nil, false, errors.UpstreamWrap(err, msgDeleteOrderFailed)
	}
	if !confirmed {
		return nil, false, nil
	}

	orders, err := o.History(ctx, department)
	if err != nil {
		o.logger.Warn("refetch after order delete failed", "department", department, "error", err)
		return nil, true, nil
	}
	return orders, true, nil
}

func SortNewestFirst(orders []models.Order) {
	slices.SortStableFunc(orders, func(a, b models.Order) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
}

func Summarize(orders []models.Order) models.OrderSummary {
	s := models.OrderSummary{Orders: len(orders)}
	for _, o := range orders {
		s.ItemsSold += o.AmountSold
		s.Revenue += o.TotalPriceOfProductsSold
	}
	return s
}
