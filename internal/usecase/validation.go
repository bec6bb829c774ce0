package usecase

import (
	"math"

	"github.com/unitprice/backend/internal/domain"
)

// ValidateEntry checks that price and quantity are positive numbers and a
// unit is selected. The first failing check is returned.
func ValidateEntry(price, quantity float64, unit domain.Unit) error {
	if !isNumber(price) || !isNumber(quantity) || unit == "" {
		return domain.ErrMissingFields
	}
	if price <= 0 {
		return domain.ErrNonPositivePrice
	}
	if quantity <= 0 {
		return domain.ErrNonPositiveQuantity
	}
	return nil
}

func isNumber(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
