package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors returned by the services. Handlers map these onto HTTP
// statuses; anything not in this taxonomy is reported as ErrSaleFailed (or
// the generic 500 path) so internal details never leak to clients.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountDisabled     = errors.New("account is disabled")
	ErrEmailTaken          = errors.New("email already registered")
	ErrWrongPassword       = errors.New("current password is incorrect")
	ErrProductNotFound     = errors.New("product not found")
	ErrSKUTaken            = errors.New("sku already in use")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSaleNotFound        = errors.New("sale not found")
	ErrInsufficientPayment = errors.New("amount tendered is less than the total")
	ErrInvalidSaleState    = errors.New("only completed sales can be voided")
	ErrInvalidMovement     = errors.New("movement would drive stock negative")
	ErrSaleFailed          = errors.New("failed to process sale")
)

// InsufficientStockError reports which product could not cover the requested
// quantity. Carried as a typed error so the handler can surface the numbers.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: have %d, need %d",
		e.ProductName, e.Available, e.Requested)
}
