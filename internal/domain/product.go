package domain

import "time"

// ProductEntry is one price/quantity/unit triple entered by the user.
// Missing numeric input is carried as NaN.
type ProductEntry struct {
	Name     string  `json:"name,omitempty"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Unit     Unit    `json:"unit"`
	Size     string  `json:"size,omitempty"` // e.g. "128 fl oz", used when quantity/unit are absent
}

// CompareRequest represents a price comparison request
type CompareRequest struct {
	BaseUnit Unit           `json:"baseUnit,omitempty"`
	Products []ProductEntry `json:"products"`
}

// PriceResult is the normalized price of a single product entry
type PriceResult struct {
	Label              string  `json:"label" yaml:"label"` // "Product N"
	Name               string  `json:"name,omitempty" yaml:"name,omitempty"`
	Price              float64 `json:"price" yaml:"price"`
	Quantity           float64 `json:"quantity" yaml:"quantity"`
	Unit               Unit    `json:"unit" yaml:"unit"`
	NormalizedQuantity float64 `json:"normalizedQuantity,omitempty" yaml:"normalizedQuantity,omitempty"`
	PricePerUnit       float64 `json:"pricePerUnit,omitempty" yaml:"pricePerUnit,omitempty"`
	Display            string  `json:"display,omitempty" yaml:"display,omitempty"`
	Error              string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Valid reports whether the entry produced a price per unit
func (r PriceResult) Valid() bool {
	return r.Error == ""
}

// Comparison is the outcome of one calculation pass
type Comparison struct {
	ID           string        `json:"id" yaml:"id"`
	BaseUnit     Unit          `json:"baseUnit" yaml:"baseUnit"`
	Results      []PriceResult `json:"results" yaml:"results"`
	BestValue    string        `json:"bestValue,omitempty" yaml:"bestValue,omitempty"`
	Source       string        `json:"source" yaml:"source"` // "Computed" or "Cache"
	CalculatedAt time.Time     `json:"calculatedAt" yaml:"calculatedAt"`
}
