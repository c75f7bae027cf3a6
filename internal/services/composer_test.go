package services

import (
	"testing"

	"uiventures-tps/internal/errors"
	"uiventures-tps/internal/models"
)

var cashier = models.Cashier{Staff: models.Staff{ID: "u1", Name: "Ada", Department: "bookshop"}}

func TestComposer_PenAndBook(t *testing.T) {
	c := NewComposer([]models.Product{
		{Name: "Pen", Price: 100},
		{Name: "Book", Price: 500},
	})
	c.Set("Pen", 2, 100)
	c.Set("Book", 0, 500)

	order, err := c.Compose(cashier)
	if err != nil {
		t.Fatalf("Compose() failed: %v", err)
	}

	if order.NameOfProductsOrdered != "Pen" {
		t.Errorf("name_of_products_ordered = %q, want Pen", order.NameOfProductsOrdered)
	}
	if order.AmountSold != 2 {
		t.Errorf("amount_sold = %d, want 2", order.AmountSold)
	}
	if order.TotalPriceOfProductsSold != 200 {
		t.Errorf("total_price_of_products_sold = %v, want 200", order.TotalPriceOfProductsSold)
	}
	if order.NameOfCashier != "Ada" || order.Category != "bookshop" {
		t.Errorf("cashier/category = %q/%q, want Ada/bookshop", order.NameOfCashier, order.Category)
	}
}

func TestComposer_OnlyPositiveAmountsCount(t *testing.T) {
	tests := []struct {
		name       string
		amounts    map[string]any
		wantNames  string
		wantAmount int
		wantTotal  float64
	}{
		{
			name:       "negative and zero ignored",
			amounts:    map[string]any{"Pen": -3, "Book": 0, "Ruler": 4},
			wantNames:  "Ruler",
			wantAmount: 4,
			wantTotal:  200,
		},
		{
			name:       "string input",
			amounts:    map[string]any{"Pen": "3", "Book": "1"},
			wantNames:  "Pen, Book",
			wantAmount: 4,
			wantTotal:  800,
		},
		{
			name:       "garbage and blanks",
			amounts:    map[string]any{"Pen": "abc", "Book": "", "Ruler": nil},
			wantNames:  "",
			wantAmount: 0,
			wantTotal:  0,
		},
		{
			name:       "fractions truncate",
			amounts:    map[string]any{"Pen": 2.9, "Book": "0.5"},
			wantNames:  "Pen",
			wantAmount: 2,
			wantTotal:  200,
		},
	}

	catalog := []models.Product{
		{Name: "Pen", Price: 100},
		{Name: "Book", Price: 500},
		{Name: "Ruler", Price: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComposer(catalog)
			for _, p := range catalog {
				if amount, ok := tt.amounts[p.Name]; ok {
					c.Set(p.Name, amount, p.Price)
				}
			}

			names, amount, total := c.Totals()
			if names != tt.wantNames {
				t.Errorf("names = %q, want %q", names, tt.wantNames)
			}
			if amount != tt.wantAmount {
				t.Errorf("amount = %d, want %d", amount, tt.wantAmount)
			}
			if total != tt.wantTotal {
				t.Errorf("total = %v, want %v", total, tt.wantTotal)
			}
		})
	}
}

func TestComposer_RejectsEmptyOrder(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *Composer)
	}{
		{"nothing entered", func(c *Composer) {}},
		{"all zero", func(c *Composer) {
			c.Set("Pen", 0, 100)
			c.Set("Book", "0", 500)
		}},
		{"free product only", func(c *Composer) {
			c.Set("Sticker", 3, 0)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComposer(nil)
			tt.setup(c)

			_, err := c.Compose(cashier)
			if !errors.IsValidation(err) {
				t.Errorf("Compose() error = %v, want validation error", err)
			}
		})
	}
}

func TestComposer_InsertionOrder(t *testing.T) {
	c := NewComposer(nil)
	c.Set("Zip", 1, 10)
	c.Set("Apple", 1, 10)
	c.Set("Zip", 2, 10)

	names, amount, _ := c.Totals()
	if names != "Zip, Apple" {
		t.Errorf("names = %q, want %q", names, "Zip, Apple")
	}
	if amount != 3 {
		t.Errorf("amount = %d, want 3 (later Set replaces earlier)", amount)
	}

	if l, ok := c.Line("Zip"); !ok || l.Amount != 2 {
		t.Errorf("Line(Zip) = %+v, %v", l, ok)
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{"2", 2},
		{" 7 ", 7},
		{"010", 10},
		{"1e3", 1},
		{"2.5", 2},
		{"3abc", 3},
		{"+4", 4},
		{"-4", 0},
		{"0.99", 0},
		{"abc3", 0},
		{"", 0},
		{"x", 0},
		{nil, 0},
		{3.0, 3},
		{2.5, 2},
		{5, 5},
	}

	for _, tt := range tests {
		if got := ParseQuantity(tt.in); got != tt.want {
			t.Errorf("ParseQuantity(%#v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestComposer_SetAmount(t *testing.T) {
	c := NewComposer([]models.Product{{Name: "Pen", Price: 100}})

	if !c.SetAmount("Pen", "2") {
		t.Error("SetAmount(Pen) = false, want true")
	}
	if c.SetAmount("Ghost", 5) {
		t.Error("SetAmount(Ghost) = true, want false")
	}

	if l, _ := c.Line("Pen"); l.Amount != 2 || l.Price != 100 {
		t.Errorf("Pen line = %+v, want amount 2 at 100", l)
	}
	if _, ok := c.Line("Ghost"); ok {
		t.Error("unknown name was added to the composer")
	}
}
