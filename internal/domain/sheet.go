package domain

import "fmt"

// ProductRow is one product block of the comparison form.
// Field values are kept as typed so the form can be re-rendered as-is.
type ProductRow struct {
	Number   int    `json:"number"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
	Unit     Unit   `json:"unit"`
	Options  []Unit `json:"options"`
}

// Heading returns the row title, e.g. "Product 2"
func (r ProductRow) Heading() string {
	return fmt.Sprintf("Product %d", r.Number)
}

// PriceField returns the id and name of the price input
func (r ProductRow) PriceField() string {
	return fmt.Sprintf("price%d", r.Number)
}

// QuantityField returns the id and name of the quantity input
func (r ProductRow) QuantityField() string {
	return fmt.Sprintf("quantity%d", r.Number)
}

// UnitField returns the id and name of the unit select
func (r ProductRow) UnitField() string {
	return fmt.Sprintf("unit%d", r.Number)
}

// Sheet is the ordered set of product rows being edited
type Sheet struct {
	Rows []ProductRow `json:"rows"`
}

// BaseUnit returns the unit selected for Product 1
func (s *Sheet) BaseUnit() Unit {
	if s == nil || len(s.Rows) == 0 {
		return ""
	}
	return s.Rows[0].Unit
}
