package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/unitprice/backend/internal/domain"
)

// Matches quantity/unit pairs like "128 fl oz", "1.5 liters", "2 lb", "500g".
// Longer aliases come first so "fl oz" wins over "oz" and "lbs" over "l".
var sizePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?|\.\d+)\s*(fl\.?\s*oz|fluid\s+ounces?|millilit(?:er|re)s?|ml|lit(?:er|re)s?|l|kilograms?|kg|grams?|g|ounces?|oz|pounds?|lbs?)\b`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// unitAliases maps lowercased spellings to table units
var unitAliases = map[string]domain.Unit{
	"ml":          domain.Milliliter,
	"milliliter":  domain.Milliliter,
	"milliliters": domain.Milliliter,
	"millilitre":  domain.Milliliter,
	"millilitres": domain.Milliliter,

	"l":      domain.Liter,
	"liter":  domain.Liter,
	"liters": domain.Liter,
	"litre":  domain.Liter,
	"litres": domain.Liter,

	"fl oz":        domain.FluidOunce,
	"floz":         domain.FluidOunce,
	"fluid ounce":  domain.FluidOunce,
	"fluid ounces": domain.FluidOunce,

	"g":     domain.Gram,
	"gram":  domain.Gram,
	"grams": domain.Gram,

	"kg":        domain.Kilogram,
	"kilogram":  domain.Kilogram,
	"kilograms": domain.Kilogram,

	"oz":     domain.Ounce,
	"ounce":  domain.Ounce,
	"ounces": domain.Ounce,

	"lb":     domain.Pound,
	"lbs":    domain.Pound,
	"pound":  domain.Pound,
	"pounds": domain.Pound,
}

// ParseSize extracts the first quantity and unit from a size text or a
// product title such as "Whole Milk, Gallon, 128 fl oz".
func ParseSize(text string) (float64, domain.Unit, error) {
	m := sizePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, "", fmt.Errorf("%w: %q", domain.ErrInvalidSize, text)
	}

	quantity, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %q", domain.ErrInvalidSize, text)
	}

	unit, ok := NormalizeUnit(m[2])
	if !ok {
		return 0, "", fmt.Errorf("%w: %q", domain.ErrInvalidSize, text)
	}

	return quantity, unit, nil
}

// NormalizeUnit maps a user spelling ("Liters", "fl. oz", "LBS") to a table unit
func NormalizeUnit(s string) (domain.Unit, bool) {
	key := strings.ToLower(strings.ReplaceAll(s, ".", ""))
	key = strings.TrimSpace(whitespacePattern.ReplaceAllString(key, " "))
	unit, ok := unitAliases[key]
	return unit, ok
}
