package http

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unitprice/backend/internal/domain"
	"github.com/unitprice/backend/internal/usecase"
)

// Version is reported by the health check
const Version = "1.0.0"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	pricing *usecase.PricingService
	sheets  *usecase.SheetService
}

// NewHandler creates a new HTTP handler
func NewHandler(pricing *usecase.PricingService) *Handler {
	if pricing == nil {
		pricing = usecase.NewPricingService(nil, nil, nil, usecase.PricingServiceConfig{})
	}
	return &Handler{
		pricing: pricing,
		sheets:  usecase.NewSheetService(pricing),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "unitprice-backend",
		"version": Version,
	})
}

// ListUnits returns the unit families in display order
func (h *Handler) ListUnits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"families": h.pricing.Converter().Families(),
	})
}

// CompatibleUnits returns the units offered next to a base unit
func (h *Handler) CompatibleUnits(c *gin.Context) {
	base := domain.Unit(c.Query("base"))
	if base == "" {
		respondError(c, domain.ErrBaseUnitRequired)
		return
	}
	units := h.pricing.Converter().CompatibleUnits(base)
	if len(units) == 0 {
		respondError(c, domain.ErrUnknownUnit)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"base":  base,
		"units": units,
	})
}

// ConvertUnits converts a quantity between two units of the same family
func (h *Handler) ConvertUnits(c *gin.Context) {
	var req domain.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.ErrInvalidRequest)
		return
	}

	result, err := h.pricing.Converter().Convert(req.Quantity, req.From, req.To)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.ConvertResult{
		Quantity: req.Quantity,
		From:     req.From,
		To:       req.To,
		Result:   result,
	})
}

// compareProduct is the wire form of a product entry; absent numbers become NaN
type compareProduct struct {
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Quantity *float64 `json:"quantity"`
	Unit     string   `json:"unit"`
	Size     string   `json:"size"`
}

type compareRequest struct {
	BaseUnit string           `json:"baseUnit"`
	Products []compareProduct `json:"products" binding:"required"`
}

// ComparePrices normalizes every product to the base unit and returns per-unit prices
func (h *Handler) ComparePrices(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.ErrInvalidRequest)
		return
	}

	request := &domain.CompareRequest{
		BaseUnit: domain.Unit(req.BaseUnit),
		Products: make([]domain.ProductEntry, len(req.Products)),
	}
	for i, p := range req.Products {
		request.Products[i] = domain.ProductEntry{
			Name:     p.Name,
			Price:    numberOrNaN(p.Price),
			Quantity: numberOrNaN(p.Quantity),
			Unit:     domain.Unit(p.Unit),
			Size:     p.Size,
		}
	}

	comparison, err := h.pricing.Compare(c.Request.Context(), request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comparison)
}

func numberOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// respondError writes {"error": message} with the status matching err
func respondError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrIncompatibleUnits):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrBaseUnitRequired),
		errors.Is(err, domain.ErrUnknownUnit),
		errors.Is(err, domain.ErrInvalidSize),
		errors.Is(err, domain.ErrRowNotFound):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
