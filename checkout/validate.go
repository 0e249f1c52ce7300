// Package checkout holds the order-placement core: cart validation
// against authoritative catalog data and the totals calculator. Both are
// side-effect free; persistence happens in the orders package.
package checkout

import (
	"fmt"

	"github.com/trottiparts/trottiparts-api/models"
)

const (
	MaxCartLines = 100
	MaxQuantity  = 99
)

// CartLine is the client-declared cart entry. It is untrusted input:
// only the part id and quantity are read, any price the client echoes
// is ignored.
type CartLine struct {
	PartID   int `json:"id" binding:"required"`
	Quantity int `json:"quantity" binding:"required"`
}

// ValidatedLine carries the authoritative price, name and image frozen
// from the catalog at validation time. Unlimited marks parts whose
// stock is not tracked (NULL in the catalog): they never get a stock
// decrement at order time.
type ValidatedLine struct {
	PartID    int
	Name      string
	ImageUrl  string
	UnitPrice float64
	Quantity  int
	Unlimited bool
}

// PartReader is the read-only slice of the catalog the validator needs.
type PartReader interface {
	PartsByIDs(ids []int) ([]models.Part, error)
}

// ValidateCart checks every line against live catalog data and returns
// lines priced from the catalog, never from the client. Read-only: stock
// is checked here but only decremented inside the order transaction.
func ValidateCart(reader PartReader, lines []CartLine) ([]ValidatedLine, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if len(lines) > MaxCartLines {
		return nil, ErrTooManyLines
	}

	ids := make([]int, 0, len(lines))
	seen := make(map[int]bool, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 || line.Quantity > MaxQuantity {
			return nil, fmt.Errorf("part %d: %w", line.PartID, ErrBadQuantity)
		}
		if seen[line.PartID] {
			return nil, fmt.Errorf("part %d: %w", line.PartID, ErrDuplicateLine)
		}
		seen[line.PartID] = true
		ids = append(ids, line.PartID)
	}

	parts, err := reader.PartsByIDs(ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]models.Part, len(parts))
	for _, part := range parts {
		byID[int(part.ID)] = part
	}

	validated := make([]ValidatedLine, 0, len(lines))
	for _, line := range lines {
		part, ok := byID[line.PartID]
		if !ok {
			return nil, &PartNotFoundError{PartID: line.PartID}
		}
		if part.Stock != nil && *part.Stock < line.Quantity {
			return nil, &InsufficientStockError{
				PartID:    line.PartID,
				Name:      part.Name,
				Requested: line.Quantity,
				Available: *part.Stock,
			}
		}
		validated = append(validated, ValidatedLine{
			PartID:    line.PartID,
			Name:      part.Name,
			ImageUrl:  part.MainImageUrl(),
			UnitPrice: part.Price,
			Quantity:  line.Quantity,
			Unlimited: part.Stock == nil,
		})
	}

	return validated, nil
}
