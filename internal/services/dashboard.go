package services

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"uiventures-tps/internal/errors"
	"uiventures-tps/internal/models"
	"uiventures-tps/internal/session"
)

type UserAPI interface {
	GetUser(ctx context.Context, id models.ID) (models.User, error)
}

// DashboardView is everything the dashboard page renders. A nil Viewer
// renders neither the cashier nor the admin view.
type DashboardView struct {
	Viewer   models.Viewer
	Products []models.Product
	Orders   []models.Order
	Summary  models.OrderSummary
}

type Dashboard struct {
	users   UserAPI
	catalog *Catalog
	orders  *Orders
	logger  *slog.Logger
}

func NewDashboard(users UserAPI, catalog *Catalog, orders *Orders, logger *slog.Logger) *Dashboard {
	return &Dashboard{users: users, catalog: catalog, orders: orders, logger: logger}
}

// Load resolves the signed-in user's view. Without a session, or when the
// user record cannot be fetched, the view is empty. List failures leave the
// affected list empty and do not fail the load.
func (d *Dashboard) Load(ctx context.Context, s *session.Session) (DashboardView, error) {
	var view DashboardView
	if !s.SignedIn() {
		return view, nil
	}

	user, err := d.users.GetUser(ctx, s.User.ID)
	if err != nil {
		return view, errors.UpstreamWrap(err, "Failed to load user")
	}

	viewer, ok := user.Viewer()
	if !ok {
		d.logger.Warn("user has no dashboard role", "user_id", user.ID, "role", user.Role)
		return view, nil
	}
	view.Viewer = viewer
	department := viewer.Profile().Department

	// Each read fails soft, so neither may cancel the other.
	var g errgroup.Group
	g.Go(func() error {
		products, err := d.catalog.List(ctx, department)
		if err != nil {
			d.logger.Warn("failed to load products", "department", department, "error", err)
			return nil
		}
		view.Products = products
		return nil
	})
	g.Go(func() error {
		orders, err := d.orders.History(ctx, department)
		if err != nil {
			d.logger.Warn("failed to load orders", "department", department, "error", err)
			return nil
		}
		view.Orders = orders
		view.Summary = Summarize(orders)
		return nil
	})
	_ = g.Wait()

	return view, nil
}
