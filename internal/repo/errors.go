package repo

import "errors"

var (
	// ErrProductNotFound is returned when a product is not found in the repository.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidQuantityChange is returned when an adjustment would drive a
	// product's quantity below zero.
	ErrInvalidQuantityChange = errors.New("quantity cannot become negative")

	// ErrDuplicatedValueUnique is returned on a unique-constraint violation.
	ErrDuplicatedValueUnique = errors.New("duplicated value for unique column")

	// ErrSaleNotFound is returned when a sale record does not exist.
	ErrSaleNotFound = errors.New("sale not found")

	// ErrDuplicateSale is returned when a sale with the same idempotency key
	// was already recorded.
	ErrDuplicateSale = errors.New("sale already recorded for idempotency key")

	// ErrNotificationNotFound is returned when a notification does not exist.
	ErrNotificationNotFound = errors.New("notification not found")

	ErrUserNotFound = errors.New("user not found")
)
