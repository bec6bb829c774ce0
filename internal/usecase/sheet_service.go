package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/unitprice/backend/internal/domain"
)

// SheetService edits the product rows of the comparison form and runs the
// calculation pass over them
type SheetService struct {
	pricing *PricingService
}

// NewSheetService creates a new sheet service
func NewSheetService(pricing *PricingService) *SheetService {
	return &SheetService{pricing: pricing}
}

// NewSheet returns a sheet holding a single empty Product 1 row
func (s *SheetService) NewSheet() *domain.Sheet {
	return &domain.Sheet{
		Rows: []domain.ProductRow{{
			Number:  1,
			Options: s.pricing.Converter().Units(),
		}},
	}
}

// AddProduct appends a row with the base unit preselected.
// Product 1 must have a unit first.
func (s *SheetService) AddProduct(sheet *domain.Sheet) error {
	baseUnit := sheet.BaseUnit()
	if baseUnit == "" {
		return fmt.Errorf("%w before adding another product", domain.ErrBaseUnitRequired)
	}

	sheet.Rows = append(sheet.Rows, domain.ProductRow{
		Number:  len(sheet.Rows) + 1,
		Unit:    baseUnit,
		Options: s.pricing.Converter().CompatibleUnits(baseUnit),
	})
	return nil
}

// RemoveProduct deletes row number n (1-based) and renumbers the rest
func (s *SheetService) RemoveProduct(sheet *domain.Sheet, n int) error {
	if n < 1 || n > len(sheet.Rows) {
		return fmt.Errorf("%w: %d", domain.ErrRowNotFound, n)
	}

	sheet.Rows = append(sheet.Rows[:n-1], sheet.Rows[n:]...)
	if n == 1 && len(sheet.Rows) > 0 {
		// the new Product 1 drives the base unit and offers every unit
		sheet.Rows[0].Options = s.pricing.Converter().Units()
	}
	Renumber(sheet)
	return nil
}

// Renumber assigns consecutive row numbers starting at 1
func Renumber(sheet *domain.Sheet) {
	for i := range sheet.Rows {
		sheet.Rows[i].Number = i + 1
	}
}

// SetBaseUnit selects the unit of Product 1 and repopulates every other
// row's options with the units compatible with it
func (s *SheetService) SetBaseUnit(sheet *domain.Sheet, unit domain.Unit) error {
	if len(sheet.Rows) == 0 {
		return fmt.Errorf("%w: 1", domain.ErrRowNotFound)
	}
	if !s.pricing.Converter().IsKnown(unit) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownUnit, unit)
	}

	sheet.Rows[0].Unit = unit
	options := s.pricing.Converter().CompatibleUnits(unit)
	for i := 1; i < len(sheet.Rows); i++ {
		sheet.Rows[i].Options = append([]domain.Unit(nil), options...)
		sheet.Rows[i].Unit = unit
	}
	return nil
}

// Calculate reads every row and prices it against the unit of Product 1
func (s *SheetService) Calculate(ctx context.Context, sheet *domain.Sheet) (*domain.Comparison, error) {
	if sheet.BaseUnit() == "" {
		return nil, domain.ErrBaseUnitRequired
	}

	request := &domain.CompareRequest{
		BaseUnit: sheet.BaseUnit(),
		Products: make([]domain.ProductEntry, len(sheet.Rows)),
	}
	for i, row := range sheet.Rows {
		request.Products[i] = domain.ProductEntry{
			Price:    ParseNumber(row.Price),
			Quantity: ParseNumber(row.Quantity),
			Unit:     row.Unit,
		}
	}

	return s.pricing.Compare(ctx, request)
}

// ParseNumber reads a form value; empty or malformed input yields NaN
func ParseNumber(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
