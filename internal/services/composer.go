package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"uiventures-tps/internal/errors"
	"uiventures-tps/internal/models"
)

const msgInvalidOrder = "Enter valid order data"

var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

// Line is one entry of the composer: how many units of a product at what
// unit price.
type Line struct {
	Amount int
	Price  float64
}

// Composer maps product name to the quantity a cashier entered. Names keep
// the order in which they were first seen, so a composer seeded from a
// catalog lists products in catalog order.
type Composer struct {
	lines map[string]Line
	names []string
}

func NewComposer(catalog []models.Product) *Composer {
	c := &Composer{lines: make(map[string]Line, len(catalog))}
	for _, p := range catalog {
		c.Set(p.Name, 0, p.Price)
	}
	return c
}

// Set records the entered amount for name. amount is parsed the way a
// number input is read: anything that is not a number, or is below one,
// means "not ordered".
func (c *Composer) Set(name string, amount any, price float64) {
	if _, seen := c.lines[name]; !seen {
		c.names = append(c.names, name)
	}
	c.lines[name] = Line{Amount: ParseQuantity(amount), Price: price}
}

// SetAmount records the entered amount for a name the composer already
// holds, keeping its price. It reports false and changes nothing for names
// it does not know.
func (c *Composer) SetAmount(name string, amount any) bool {
	l, ok := c.lines[name]
	if !ok {
		return false
	}
	l.Amount = ParseQuantity(amount)
	c.lines[name] = l
	return true
}

func (c *Composer) Line(name string) (Line, bool) {
	l, ok := c.lines[name]
	return l, ok
}

// Totals derives the order fields from lines with a positive amount.
func (c *Composer) Totals() (names string, amountSold int, totalPrice float64) {
	ordered := make([]string, 0, len(c.names))
	for _, name := range c.names {
		l := c.lines[name]
		if l.Amount <= 0 {
			continue
		}
		ordered = append(ordered, name)
		amountSold += l.Amount
		totalPrice += float64(l.Amount) * l.Price
	}
	return strings.Join(ordered, ", "), amountSold, totalPrice
}

// Compose builds the order a cashier would submit. It fails with a
// validation error when any derived field is empty or zero.
func (c *Composer) Compose(cashier models.Cashier) (models.NewOrder, error) {
	names, amountSold, totalPrice := c.Totals()
	if names == "" || amountSold == 0 || totalPrice == 0 {
		return models.NewOrder{}, errors.Validation(msgInvalidOrder)
	}

	return models.NewOrder{
		Category:                 cashier.Department,
		NameOfProductsOrdered:    names,
		AmountSold:               amountSold,
		TotalPriceOfProductsSold: totalPrice,
		NameOfCashier:            cashier.Name,
	}, nil
}

// ParseQuantity reads a user-entered quantity. Text is read up to its first
// non-digit, so "2.5" is 2 and "1e3" is 1. Numbers truncate. Anything that
// does not start with an integer, or is below one, yields zero.
func ParseQuantity(v any) int {
	if s, ok := v.(string); ok {
		digits := leadingInt.FindString(strings.TrimSpace(s))
		n, err := strconv.Atoi(digits)
		if err != nil || n < 1 {
			return 0
		}
		return n
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 1 {
		return 0
	}
	return int(math.Trunc(f))
}
