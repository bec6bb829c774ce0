package usecase

import (
	"fmt"

	"github.com/unitprice/backend/internal/domain"
)

// conversionFactors maps from-unit -> to-unit -> factor, so that
// quantity(from) * factor = quantity(to).
var conversionFactors = map[domain.Unit]map[domain.Unit]float64{
	domain.Milliliter: {domain.Milliliter: 1, domain.Liter: 0.001, domain.FluidOunce: 0.033814},
	domain.Liter:      {domain.Milliliter: 1000, domain.Liter: 1, domain.FluidOunce: 33.814},
	domain.FluidOunce: {domain.Milliliter: 29.5735, domain.Liter: 0.0295735, domain.FluidOunce: 1},
	domain.Gram:       {domain.Gram: 1, domain.Kilogram: 0.001, domain.Ounce: 0.035274, domain.Pound: 0.00220462},
	domain.Kilogram:   {domain.Gram: 1000, domain.Kilogram: 1, domain.Ounce: 35.274, domain.Pound: 2.20462},
	domain.Ounce:      {domain.Gram: 28.3495, domain.Kilogram: 0.0283495, domain.Ounce: 1, domain.Pound: 0.0625},
	domain.Pound:      {domain.Gram: 453.592, domain.Kilogram: 0.453592, domain.Ounce: 16, domain.Pound: 1},
}

// unitFamilies lists the families and their units in dropdown order
var unitFamilies = []domain.UnitFamily{
	{Family: domain.FamilyVolume, Units: []domain.Unit{domain.Milliliter, domain.Liter, domain.FluidOunce}},
	{Family: domain.FamilyMass, Units: []domain.Unit{domain.Gram, domain.Kilogram, domain.Ounce, domain.Pound}},
}

// UnitConverter converts quantities between units of the same family
type UnitConverter struct {
	factors  map[domain.Unit]map[domain.Unit]float64
	families []domain.UnitFamily
}

// NewUnitConverter creates a converter over the built-in volume and mass table
func NewUnitConverter() *UnitConverter {
	return &UnitConverter{
		factors:  conversionFactors,
		families: unitFamilies,
	}
}

// Convert maps quantity from one unit to another.
// Same-unit conversion is the identity; a missing factor fails with ErrIncompatibleUnits.
func (uc *UnitConverter) Convert(quantity float64, from, to domain.Unit) (float64, error) {
	if from == to {
		return quantity, nil
	}

	factor, ok := uc.factors[from][to]
	if !ok {
		return 0, fmt.Errorf("%w: cannot convert from %s to %s", domain.ErrIncompatibleUnits, from, to)
	}

	return quantity * factor, nil
}

// Families returns the unit families in display order
func (uc *UnitConverter) Families() []domain.UnitFamily {
	out := make([]domain.UnitFamily, len(uc.families))
	for i, f := range uc.families {
		out[i] = domain.UnitFamily{Family: f.Family, Units: append([]domain.Unit(nil), f.Units...)}
	}
	return out
}

// Units returns every known unit, family by family
func (uc *UnitConverter) Units() []domain.Unit {
	var units []domain.Unit
	for _, f := range uc.families {
		units = append(units, f.Units...)
	}
	return units
}

// IsKnown reports whether unit appears in the conversion table
func (uc *UnitConverter) IsKnown(unit domain.Unit) bool {
	_, ok := uc.factors[unit]
	return ok
}

// FamilyOf returns the family a unit belongs to
func (uc *UnitConverter) FamilyOf(unit domain.Unit) (domain.Family, error) {
	for _, f := range uc.families {
		for _, u := range f.Units {
			if u == unit {
				return f.Family, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownUnit, unit)
}

// CompatibleUnits returns the units a product can be entered in when
// base is the normalization target. Unknown bases yield no units.
func (uc *UnitConverter) CompatibleUnits(base domain.Unit) []domain.Unit {
	family, err := uc.FamilyOf(base)
	if err != nil {
		return nil
	}
	for _, f := range uc.families {
		if f.Family == family {
			return append([]domain.Unit(nil), f.Units...)
		}
	}
	return nil
}
