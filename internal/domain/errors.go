package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrMissingFields is returned when price, quantity or unit is absent or not a number
	ErrMissingFields = errors.New("all fields (price, quantity, and unit) must be filled out correctly")

	// ErrNonPositivePrice is returned when the price is zero or negative
	ErrNonPositivePrice = errors.New("price must be a positive number")

	// ErrNonPositiveQuantity is returned when the quantity is zero or negative
	ErrNonPositiveQuantity = errors.New("quantity must be a positive number greater than zero")

	// ErrIncompatibleUnits is returned when no conversion factor links two units
	ErrIncompatibleUnits = errors.New("incompatible units")

	// ErrOutOfRange is returned when a price per unit cannot be represented
	ErrOutOfRange = errors.New("price per unit is out of range")

	// ErrUnknownUnit is returned when a unit is not in the conversion table
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrBaseUnitRequired is returned when Product 1 has no unit selected
	ErrBaseUnitRequired = errors.New("please select a unit for Product 1")

	// ErrInvalidSize is returned when no quantity and unit can be read from a size text
	ErrInvalidSize = errors.New("no quantity and unit found in size")

	// ErrRowNotFound is returned when a sheet row number is out of range
	ErrRowNotFound = errors.New("product row not found")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
