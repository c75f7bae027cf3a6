package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"uiventures-tps/internal/apiclient"
	"uiventures-tps/internal/models"
)

var errBackend = errors.New("backend unavailable")

// fakeAPI stands in for the remote API and records every call.
type fakeAPI struct {
	mu sync.Mutex

	user     models.User
	userErr  error
	products []models.Product
	listErr  error
	orders   []models.Order

	// listHook runs inside ListProducts before it answers.
	listHook func(ctx context.Context) error

	deleteResult bool
	deleteErr    error
	createErr    error

	calls        map[string]int
	createdOrder models.NewOrder
	createdProd  models.NewProduct
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: make(map[string]int), deleteResult: true}
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) SignIn(ctx context.Context, c apiclient.Credentials) (models.User, error) {
	f.record("SignIn")
	return f.user, f.userErr
}

func (f *fakeAPI) SignUp(ctx context.Context, r apiclient.Registration) (models.User, error) {
	f.record("SignUp")
	return f.user, f.userErr
}

func (f *fakeAPI) GetUser(ctx context.Context, id models.ID) (models.User, error) {
	f.record("GetUser")
	return f.user, f.userErr
}

func (f *fakeAPI) ListProducts(ctx context.Context, department string) ([]models.Product, error) {
	f.record("ListProducts")
	if f.listHook != nil {
		if err := f.listHook(ctx); err != nil {
			return nil, err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products, f.listErr
}

func (f *fakeAPI) setProducts(products []models.Product) {
	f.mu.Lock()
	f.products = products
	f.mu.Unlock()
}

func (f *fakeAPI) CreateProduct(ctx context.Context, p models.NewProduct) (models.Product, error) {
	f.record("CreateProduct")
	f.createdProd = p
	return models.Product{ID: "p-new", Name: p.Name}, f.createErr
}

func (f *fakeAPI) DeleteProduct(ctx context.Context, id models.ID) (bool, error) {
	f.record("DeleteProduct")
	return f.deleteResult, f.deleteErr
}

func (f *fakeAPI) ListOrders(ctx context.Context, department string) ([]models.Order, error) {
	f.record("ListOrders")
	return f.orders, f.listErr
}

func (f *fakeAPI) CreateOrder(ctx context.Context, o models.NewOrder) (models.Order, error) {
	f.record("CreateOrder")
	f.createdOrder = o
	return models.Order{ID: "o-new"}, f.createErr
}

func (f *fakeAPI) DeleteOrder(ctx context.Context, id models.ID) (bool, error) {
	f.record("DeleteOrder")
	return f.deleteResult, f.deleteErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
