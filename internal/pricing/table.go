package pricing

import (
	"fmt"
	"sort"
)

// Table maps ticket categories to their unit prices. The set of categories is
// fixed at construction time; anything outside it is not a sellable ticket.
type Table struct {
	prices map[string]float64
	order  []string
}

// PriceInfo represents a single price list entry in responses
type PriceInfo struct {
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// NewTable creates a pricing table from a category -> unit price mapping
func NewTable(prices map[string]float64) *Table {
	order := make([]string, 0, len(prices))
	for category := range prices {
		order = append(order, category)
	}
	sort.Strings(order)

	copied := make(map[string]float64, len(prices))
	for category, price := range prices {
		copied[category] = price
	}

	return &Table{
		prices: copied,
		order:  order,
	}
}

// Default returns the standard museum price list
func Default() *Table {
	return NewTable(map[string]float64{
		"adult":  15,
		"child":  8,
		"senior": 10,
	})
}

// Price returns the unit price for a category and whether the category exists
func (t *Table) Price(category string) (float64, bool) {
	price, ok := t.prices[category]
	return price, ok
}

// Has reports whether the category is part of the price list
func (t *Table) Has(category string) bool {
	_, ok := t.prices[category]
	return ok
}

// Categories returns all categories in stable order
func (t *Table) Categories() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Total computes the cost of a category -> quantity order. Unknown categories
// are an error; missing ones count as zero.
func (t *Table) Total(counts map[string]int) (float64, error) {
	var total float64
	for category, quantity := range counts {
		price, ok := t.prices[category]
		if !ok {
			return 0, fmt.Errorf("unknown ticket category %q", category)
		}
		total += price * float64(quantity)
	}
	return total, nil
}

// List returns the full price list in stable order for API responses
func (t *Table) List() []PriceInfo {
	out := make([]PriceInfo, 0, len(t.order))
	for _, category := range t.order {
		out = append(out, PriceInfo{Category: category, Price: t.prices[category]})
	}
	return out
}
