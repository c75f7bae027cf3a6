// Package apiclient talks to the remote UI Ventures TPS REST API.
//
// Every endpoint goes through one request wrapper: a call either yields the
// decoded payload or an error. There are no retries, no auth headers and no
// client-side timeout; the caller's context is the only bound on a call.
package apiclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/guonaihong/gout"
	jsoniter "github.com/json-iterator/go"

	"uiventures-tps/internal/models"
	"uiventures-tps/internal/observability"
)

// DefaultBaseURL is the production API root. It is not configurable.
const DefaultBaseURL = "https://ui-venture-api-production.up.railway.app/v1/api"

var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrEmptyBody        = errors.New("empty response body")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New returns a client rooted at baseURL, or at DefaultBaseURL when empty.
func New(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Password   string      `json:"password"`
	Role       models.Role `json:"role"`
	Department string      `json:"department"`
}

func (c *Client) SignIn(ctx context.Context, creds Credentials) (models.User, error) {
	return call[models.User](ctx, c, http.MethodPost, "/auth/sign-in", creds)
}

func (c *Client) SignUp(ctx context.Context, reg Registration) (models.User, error) {
	return call[models.User](ctx, c, http.MethodPost, "/auth/sign-up", reg)
}

func (c *Client) GetUser(ctx context.Context, id models.ID) (models.User, error) {
	return call[models.User](ctx, c, http.MethodGet, "/users/"+url.PathEscape(id.String()), nil)
}

func (c *Client) ListProducts(ctx context.Context, department string) ([]models.Product, error) {
	return call[[]models.Product](ctx, c, http.MethodGet, "/products/"+url.PathEscape(department), nil)
}

func (c *Client) CreateProduct(ctx context.Context, p models.NewProduct) (models.Product, error) {
	return call[models.Product](ctx, c, http.MethodPost, "/products", p)
}

// DeleteProduct reports whether the API answered with a truthy body.
func (c *Client) DeleteProduct(ctx context.Context, id models.ID) (bool, error) {
	return c.delete(ctx, "/products/"+url.PathEscape(id.String()))
}

func (c *Client) ListOrders(ctx context.Context, department string) ([]models.Order, error) {
	return call[[]models.Order](ctx, c, http.MethodGet, "/orders/"+url.PathEscape(department), nil)
}

func (c *Client) CreateOrder(ctx context.Context, o models.NewOrder) (models.Order, error) {
	return call[models.Order](ctx, c, http.MethodPost, "/orders", o)
}

// DeleteOrder reports whether the API answered with a truthy body.
func (c *Client) DeleteOrder(ctx context.Context, id models.ID) (bool, error) {
	return c.delete(ctx, "/orders/"+url.PathEscape(id.String()))
}

func (c *Client) delete(ctx context.Context, path string) (bool, error) {
	v, err := call[any](ctx, c, http.MethodDelete, path, nil)
	if err != nil {
		return false, err
	}
	return truthy(v), nil
}

// call is the single request wrapper used by every endpoint.
func call[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T

	raw, err := c.send(ctx, method, path, body)
	if err != nil {
		return out, err
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return out, fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	if method != http.MethodDelete && !truthy(decoded) {
		return out, fmt.Errorf("%s %s: %w", method, path, ErrEmptyBody)
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return out, nil
}

func (c *Client) send(ctx context.Context, method, path string, body any) ([]byte, error) {
	ctx, span := observability.StartClientSpan(ctx, method+" "+path)
	defer span.FinishAndLog(ctx, c.logger)
	span.SetTag("http.method", method)
	span.SetTag("http.path", path)

	target := c.baseURL + path
	g := gout.New(c.httpClient)

	var (
		raw  []byte
		code int
		err  error
	)
	switch method {
	case http.MethodGet:
		err = g.GET(target).WithContext(ctx).BindBody(&raw).Code(&code).Do()
	case http.MethodPost:
		err = g.POST(target).WithContext(ctx).SetJSON(body).BindBody(&raw).Code(&code).Do()
	case http.MethodDelete:
		err = g.DELETE(target).WithContext(ctx).BindBody(&raw).Code(&code).Do()
	default:
		err = fmt.Errorf("unsupported method %s", method)
	}

	if err != nil {
		span.SetError(err)
		c.logger.Warn("api request failed",
			"method", method,
			"path", path,
			"error", err,
			"request_id", observability.GetRequestID(ctx),
		)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	span.SetTag("http.status_code", strconv.Itoa(code))
	empty := len(strings.TrimSpace(string(raw))) == 0
	rejected := code < 200 || code > 299

	// A delete is judged by its body alone; only an empty one fails.
	if rejected && method == http.MethodDelete && !empty {
		c.logger.Warn("api delete answered with error status",
			"method", method,
			"path", path,
			"status", code,
			"request_id", observability.GetRequestID(ctx),
		)
		return raw, nil
	}

	if rejected {
		err := fmt.Errorf("%s %s: %w: %d", method, path, ErrUnexpectedStatus, code)
		span.SetError(err)
		c.logger.Warn("api request rejected",
			"method", method,
			"path", path,
			"status", code,
			"request_id", observability.GetRequestID(ctx),
		)
		return nil, err
	}

	if empty {
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrEmptyBody)
	}

	c.logger.Debug("api request completed",
		"method", method,
		"path", path,
		"status", code,
		"request_id", observability.GetRequestID(ctx),
	)
	return raw, nil
}

// truthy applies JavaScript truthiness to a decoded JSON value.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
