package domain

import "errors"

var (
	// ErrRecipeNotFound is returned when the recipe's shopping list does not exist
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrNoProductsFound is the sentinel for a resolution that ran but found
	// zero authentic products for every ingredient. It maps to an HTTP 200
	// with a status body, not an error code.
	ErrNoProductsFound = errors.New("no products found")

	// ErrRetailerAuth is returned when the retailer rejects our credentials
	ErrRetailerAuth = errors.New("retailer rejected credentials")

	// ErrRetailerTransient is returned on retailer timeouts and 5xx responses
	ErrRetailerTransient = errors.New("transient retailer failure")

	// ErrRetailerUnavailable is returned when a resolution aborts because the
	// retailer cannot be reached with valid credentials
	ErrRetailerUnavailable = errors.New("retailer unavailable")

	// ErrStorageUnavailable is returned when a document store read/write fails
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInvalidSelection is returned when a cart selection fails validation
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrPriceOverflow is returned when a cart total exceeds the configured ceiling
	ErrPriceOverflow = errors.New("cart total exceeds ceiling")
)
