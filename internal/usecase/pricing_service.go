package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/unitprice/backend/internal/domain"
)

const (
	sourceComputed = "Computed"
	sourceCache    = "Cache"
)

// PricingServiceConfig holds configuration for the pricing service
type PricingServiceConfig struct {
	CacheTTL       time.Duration
	CurrencySymbol string
	Decimals       int
}

// PricingService normalizes product entries to a base unit and computes
// comparable per-unit prices
type PricingService struct {
	converter *UnitConverter
	cache     domain.CacheRepository
	metrics   domain.MetricsRecorder
	cacheTTL  time.Duration
	currency  string
	decimals  int
}

// NewPricingService creates a new pricing service. cache and metrics may be nil.
func NewPricingService(
	converter *UnitConverter,
	cache domain.CacheRepository,
	metrics domain.MetricsRecorder,
	config PricingServiceConfig,
) *PricingService {
	if converter == nil {
		converter = NewUnitConverter()
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	currency := config.CurrencySymbol
	if currency == "" {
		currency = "$"
	}

	decimals := config.Decimals
	if decimals <= 0 {
		decimals = 5
	}

	return &PricingService{
		converter: converter,
		cache:     cache,
		metrics:   metrics,
		cacheTTL:  cacheTTL,
		currency:  currency,
		decimals:  decimals,
	}
}

// Converter returns the unit converter used by the service
func (s *PricingService) Converter() *UnitConverter {
	return s.converter
}

// Compare runs one calculation pass over the product entries.
// Flow: resolve sizes -> pick base unit -> check cache -> price each entry -> cache -> return.
// Entry-level failures are reported on that entry only.
func (s *PricingService) Compare(ctx context.Context, request *domain.CompareRequest) (*domain.Comparison, error) {
	if request == nil || len(request.Products) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	entries := make([]domain.ProductEntry, len(request.Products))
	sizeErrs := make([]error, len(request.Products))
	for i, p := range request.Products {
		entries[i], sizeErrs[i] = resolveSize(p)
	}

	baseUnit := request.BaseUnit
	if baseUnit == "" {
		baseUnit = entries[0].Unit
	}
	if baseUnit == "" {
		return nil, domain.ErrBaseUnitRequired
	}
	if !s.converter.IsKnown(baseUnit) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownUnit, baseUnit)
	}

	cacheKey := s.generateCacheKey(baseUnit, entries)
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		cached.Source = sourceCache
		s.observeComparison(sourceCache)
		return cached, nil
	}

	comparison := &domain.Comparison{
		ID:           uuid.NewString(),
		BaseUnit:     baseUnit,
		Results:      make([]domain.PriceResult, 0, len(entries)),
		Source:       sourceComputed,
		CalculatedAt: time.Now().UTC(),
	}

	best := -1
	for i, entry := range entries {
		result := s.priceEntry(i, entry, baseUnit, sizeErrs[i])
		comparison.Results = append(comparison.Results, result)
		if !result.Valid() {
			continue
		}
		if best < 0 || result.PricePerUnit < comparison.Results[best].PricePerUnit {
			best = i
		}
	}
	if best >= 0 {
		comparison.BestValue = comparison.Results[best].Label
	}

	if err := s.setInCache(ctx, cacheKey, comparison); err != nil {
		log.Printf("[pricing] failed to cache comparison %s: %v", comparison.ID, err)
	}

	s.observeComparison(sourceComputed)
	return comparison, nil
}

// priceEntry validates and normalizes a single entry
func (s *PricingService) priceEntry(index int, entry domain.ProductEntry, baseUnit domain.Unit, sizeErr error) domain.PriceResult {
	result := domain.PriceResult{
		Label:    fmt.Sprintf("Product %d", index+1),
		Name:     entry.Name,
		Price:    finiteOrZero(entry.Price),
		Quantity: finiteOrZero(entry.Quantity),
		Unit:     entry.Unit,
	}

	if sizeErr != nil {
		return s.reject(result, sizeErr)
	}

	if err := ValidateEntry(entry.Price, entry.Quantity, entry.Unit); err != nil {
		return s.reject(result, err)
	}

	normalized, err := s.converter.Convert(entry.Quantity, entry.Unit, baseUnit)
	s.observeConversion(err == nil)
	if err != nil {
		return s.reject(result, err)
	}

	pricePerUnit := entry.Price / normalized
	if normalized == 0 || !isNumber(normalized) || !isNumber(pricePerUnit) {
		return s.reject(result, fmt.Errorf("%w: %g %s in %s", domain.ErrOutOfRange, entry.Quantity, entry.Unit, baseUnit))
	}

	result.NormalizedQuantity = normalized
	result.PricePerUnit = pricePerUnit
	result.Display = s.FormatPrice(result.Label, result.PricePerUnit, baseUnit)
	return result
}

// FormatPrice renders a result line, e.g. "Product 1: $0.99750 per L"
func (s *PricingService) FormatPrice(label string, pricePerUnit float64, baseUnit domain.Unit) string {
	return fmt.Sprintf("%s: %s%.*f per %s", label, s.currency, s.decimals, pricePerUnit, baseUnit)
}

func (s *PricingService) reject(result domain.PriceResult, err error) domain.PriceResult {
	result.Error = err.Error()
	if s.metrics != nil {
		s.metrics.ObserveEntryRejected(RejectionReason(err))
	}
	return result
}

// RejectionReason maps an entry error to a short label
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return "missing_fields"
	case errors.Is(err, domain.ErrNonPositivePrice):
		return "non_positive_price"
	case errors.Is(err, domain.ErrNonPositiveQuantity):
		return "non_positive_quantity"
	case errors.Is(err, domain.ErrIncompatibleUnits):
		return "incompatible_units"
	case errors.Is(err, domain.ErrInvalidSize):
		return "invalid_size"
	case errors.Is(err, domain.ErrOutOfRange):
		return "out_of_range"
	default:
		return "other"
	}
}

// resolveSize fills quantity and unit from the size text when both are absent
func resolveSize(entry domain.ProductEntry) (domain.ProductEntry, error) {
	if entry.Size == "" || entry.Unit != "" {
		return entry, nil
	}
	if isNumber(entry.Quantity) && entry.Quantity != 0 {
		return entry, nil
	}

	quantity, unit, err := ParseSize(entry.Size)
	if err != nil {
		return entry, err
	}
	entry.Quantity = quantity
	entry.Unit = unit
	return entry, nil
}

// generateCacheKey creates a cache key from the base unit and the entries.
// Format: "comparison:{sha256 of normalized entries}"
func (s *PricingService) generateCacheKey(baseUnit domain.Unit, entries []domain.ProductEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%d", baseUnit, s.currency, s.decimals)
	for _, e := range entries {
		fmt.Fprintf(&b, "|%q;%g;%g;%q;%q", e.Name, e.Price, e.Quantity, e.Unit, e.Size)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return "comparison:" + hex.EncodeToString(sum[:])
}

func (s *PricingService) getFromCache(ctx context.Context, key string) (*domain.Comparison, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}
	var comparison domain.Comparison
	if err := s.cache.Get(ctx, key, &comparison); err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			log.Printf("[pricing] dropping unreadable cache entry %s: %v", key, err)
			if delErr := s.cache.Delete(ctx, key); delErr != nil {
				log.Printf("[pricing] failed to delete cache entry %s: %v", key, delErr)
			}
		}
		return nil, err
	}
	return &comparison, nil
}

func (s *PricingService) setInCache(ctx context.Context, key string, comparison *domain.Comparison) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Set(ctx, key, comparison, s.cacheTTL)
}

func (s *PricingService) observeComparison(source string) {
	if s.metrics != nil {
		s.metrics.ObserveComparison(source)
	}
}

func (s *PricingService) observeConversion(ok bool) {
	if s.metrics != nil {
		s.metrics.ObserveConversion(ok)
	}
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
