// Package templates renders the TPS pages and the fragments patched into
// them over server-sent events.
package templates

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"uiventures-tps/internal/models"
	"uiventures-tps/internal/services"
)

//go:embed *.html
var files embed.FS

var printer = message.NewPrinter(language.English)

var funcs = template.FuncMap{
	"naira": Naira,
	"utc":   UTCString,
}

var base = template.Must(template.New("tps").Funcs(funcs).ParseFS(files, "*.html"))

// fragment renders one named html/template block as a component.
func fragment(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return base.ExecuteTemplate(w, name, data)
	})
}

func Login() templ.Component {
	return Page("UI Venture - TPS | Login", fragment("login-content", nil))
}

func Signup() templ.Component {
	return Page("UI Venture - TPS | Sign up", fragment("signup-content", nil))
}

type orderList struct {
	Orders  []models.Order
	Summary models.OrderSummary
}

type dashboardData struct {
	SignedIn        bool
	Cashier         *models.Staff
	Admin           *models.Staff
	Products        []models.Product
	History         orderList
	ComposerSignals string
}

// Dashboard renders the cashier or admin view for view.Viewer, or neither
// when it is nil.
func Dashboard(view services.DashboardView, signedIn bool) templ.Component {
	data := dashboardData{
		SignedIn: signedIn,
		Products: view.Products,
		History:  orderList{Orders: view.Orders, Summary: view.Summary},
	}

	switch v := view.Viewer.(type) {
	case models.Cashier:
		staff := v.Profile()
		data.Cashier = &staff
	case models.Admin:
		staff := v.Profile()
		data.Admin = &staff
	}

	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if data.Cashier != nil {
			signals, err := ComposerSignals(data.Products)
			if err != nil {
				return err
			}
			data.ComposerSignals = signals
		}
		return base.ExecuteTemplate(w, "dashboard-content", data)
	})
	return Page("UI Venture - TPS", content)
}

func ProductList(products []models.Product) templ.Component {
	return fragment("product-list", products)
}

func OrderList(orders []models.Order, summary models.OrderSummary) templ.Component {
	return fragment("order-list", orderList{Orders: orders, Summary: summary})
}

type toastData struct {
	Kind    string
	Message string
}

func SuccessToast(message string) templ.Component {
	return fragment("toast", toastData{Kind: "success", Message: message})
}

func ErrorToast(message string) templ.Component {
	return fragment("toast", toastData{Kind: "error", Message: message})
}

// ComposerLine is the signal shape of one composer row. Rows are keyed
// p0, p1, ... in catalog order.
type ComposerLine struct {
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Amount any     `json:"amount"`
}

func ComposerSignals(products []models.Product) (string, error) {
	order := make(map[string]ComposerLine, len(products))
	for i, p := range products {
		order[ComposerKey(i)] = ComposerLine{Name: p.Name, Price: p.Price, Amount: ""}
	}
	b, err := json.Marshal(map[string]any{"order": order})
	if err != nil {
		return "", fmt.Errorf("marshal composer signals: %w", err)
	}
	return string(b), nil
}

func ComposerKey(i int) string {
	return fmt.Sprintf("p%d", i)
}

// Naira formats an amount with thousands separators, keeping up to two
// decimals only when the amount is fractional.
func Naira(amount float64) string {
	if amount == math.Trunc(amount) {
		return printer.Sprintf("%d", int64(amount))
	}
	return strings.TrimRight(printer.Sprintf("%.2f", amount), "0")
}

// UTCString formats t like an HTTP date, e.g. "Mon, 01 May 2023 09:00:00 GMT".
func UTCString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(http.TimeFormat)
}

// String renders c to a string for use in an element patch.
func String(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
