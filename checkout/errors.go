package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart             = errors.New("cart is empty")
	ErrTooManyLines          = errors.New("cart has too many lines")
	ErrBadQuantity           = errors.New("quantity must be between 1 and 99")
	ErrDuplicateLine         = errors.New("duplicate part in cart")
	ErrUnknownDeliveryMethod = errors.New("unknown delivery method")
)

// PartNotFoundError reports a cart line whose part no longer exists in
// the catalog.
type PartNotFoundError struct {
	PartID int
}

func (e *PartNotFoundError) Error() string {
	return fmt.Sprintf("part %d not found", e.PartID)
}

// InsufficientStockError reports a cart line asking for more units than
// the catalog currently holds.
type InsufficientStockError struct {
	PartID    int
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.Name, e.Requested, e.Available)
}
