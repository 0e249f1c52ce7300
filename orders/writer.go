// Package orders persists orders and reconciles payment-provider
// webhooks into order state.
package orders

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/trottiparts/trottiparts-api/checkout"
	"github.com/trottiparts/trottiparts-api/models"
	"gorm.io/gorm"
)

// CustomerInfo is the contact and shipping block captured on an order.
type CustomerInfo struct {
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	Address    string `json:"address" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	City       string `json:"city" binding:"required"`
}

type CreateParams struct {
	UserID         *int
	Customer       CustomerInfo
	DeliveryMethod string
	Notes          string
	Lines          []checkout.ValidatedLine
	Totals         checkout.Totals
	Status         string
}

type Writer struct {
	db *gorm.DB
}

func NewWriter(db *gorm.DB) *Writer {
	return &Writer{db: db}
}

// Create persists the order header and its items in one transaction,
// decrementing stock with a conditional update per line. A line whose
// stock dropped below the requested quantity since validation makes the
// whole transaction roll back: no partial order, no oversell. Unlimited
// lines (NULL stock in the catalog) skip the decrement entirely; a NULL
// update reports zero changed rows on MySQL and would be mistaken for
// an out-of-stock part.
func (w *Writer) Create(params CreateParams) (*models.Order, error) {
	orderNumber, err := NewOrderNumber()
	if err != nil {
		return nil, err
	}

	order := models.Order{
		OrderNumber:    orderNumber,
		CorrelationID:  uuid.NewString(),
		UserID:         params.UserID,
		FirstName:      params.Customer.FirstName,
		LastName:       params.Customer.LastName,
		Email:          params.Customer.Email,
		Phone:          params.Customer.Phone,
		Address:        params.Customer.Address,
		PostalCode:     params.Customer.PostalCode,
		City:           params.Customer.City,
		DeliveryMethod: params.DeliveryMethod,
		Notes:          params.Notes,
		Subtotal:       params.Totals.Subtotal,
		TaxAmount:      params.Totals.Tax,
		DeliveryFee:    params.Totals.DeliveryFee,
		Total:          params.Totals.Total,
		LoyaltyPoints:  params.Totals.LoyaltyPoints,
		Status:         params.Status,
	}

	err = w.db.Transaction(func(tx *gorm.DB) error {
		for _, line := range params.Lines {
			if line.Unlimited {
				continue
			}
			res := tx.Model(&models.Part{}).
				Where("id = ? AND stock >= ?", line.PartID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return fmt.Errorf("stock decrement failed for part %d: %w", line.PartID, res.Error)
			}
			if res.RowsAffected == 0 {
				return &checkout.InsufficientStockError{
					PartID:    line.PartID,
					Name:      line.Name,
					Requested: line.Quantity,
				}
			}
		}

		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, line := range params.Lines {
			item := models.OrderItem{
				OrderID:   int(order.ID),
				PartID:    line.PartID,
				Name:      line.Name,
				ImageUrl:  line.ImageUrl,
				UnitPrice: line.UnitPrice,
				Quantity:  line.Quantity,
				LineTotal: checkout.LineTotal(line.UnitPrice, line.Quantity),
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			order.OrderItems = append(order.OrderItems, item)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// SetPaymentSession records the provider session id on a freshly created
// order, so support and reconciliation can find it later.
func (w *Writer) SetPaymentSession(orderID uint, sessionID string) error {
	return w.db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("payment_session_id", sessionID).Error
}
