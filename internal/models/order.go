package models

import "time"

type Order struct {
	ID                       ID        `json:"id"`
	Category                 string    `json:"category"`
	NameOfProductsOrdered    string    `json:"name_of_products_ordered"`
	AmountSold               int       `json:"amount_sold"`
	TotalPriceOfProductsSold float64   `json:"total_price_of_products_sold"`
	NameOfCashier            string    `json:"name_of_cashier"`
	CreatedAt                time.Time `json:"created_at"`
}

// NewOrder is the body of POST /orders.
type NewOrder struct {
	Category                 string  `json:"category"`
	NameOfProductsOrdered    string  `json:"name_of_products_ordered"`
	AmountSold               int     `json:"amount_sold"`
	TotalPriceOfProductsSold float64 `json:"total_price_of_products_sold"`
	NameOfCashier            string  `json:"name_of_cashier"`
}

type OrderSummary struct {
	Orders    int     `json:"orders"`
	ItemsSold int     `json:"items_sold"`
	Revenue   float64 `json:"revenue"`
}
