package domain

import "errors"

var (
	// ErrNoData is returned when no source table loaded and the registry is empty
	ErrNoData = errors.New("no source data available")

	// ErrNoMatch is returned when a query matches no canonical instrument
	ErrNoMatch = errors.New("no matching instruments found")

	// ErrNoOffers is returned when a valid selection has no offer rows in any source
	ErrNoOffers = errors.New("no offers available for this instrument")

	// ErrSourceLoadFailure is returned when a single source table fails to load
	ErrSourceLoadFailure = errors.New("source table load failed")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUnknownCategory is returned when a category is not one of the four known categories
	ErrUnknownCategory = errors.New("unknown instrument category")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
