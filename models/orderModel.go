package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	OrderStatusAwaitingPayment = "awaiting_payment"
	OrderStatusPending         = "pending"
	OrderStatusPaid            = "paid"
	OrderStatusShipped         = "shipped"
	OrderStatusCompleted       = "completed"
	OrderStatusCancelled       = "cancelled"
)

// Order is the unit of commercial transaction. Totals are computed
// server-side once at creation: Total == Subtotal + TaxAmount + DeliveryFee
// at two decimals, never recomputed from client input afterward.
// CorrelationID is the opaque token echoed back by the payment provider.
type Order struct {
	gorm.Model
	OrderNumber      string      `json:"orderNumber" gorm:"uniqueIndex"`
	CorrelationID    string      `json:"-" gorm:"uniqueIndex;size:36"`
	UserID           *int        `json:"userId"`
	FirstName        string      `json:"firstName"`
	LastName         string      `json:"lastName"`
	Email            string      `json:"email"`
	Phone            string      `json:"phone"`
	Address          string      `json:"address"`
	PostalCode       string      `json:"postalCode"`
	City             string      `json:"city"`
	DeliveryMethod   string      `json:"deliveryMethod"`
	Notes            string      `json:"notes"`
	Subtotal         float64     `json:"subtotal"`
	TaxAmount        float64     `json:"taxAmount"`
	DeliveryFee      float64     `json:"deliveryFee"`
	Total            float64     `json:"total"`
	LoyaltyPoints    int         `json:"loyaltyPoints"`
	Status           string      `json:"status"`
	PaymentSessionID string      `json:"-"`
	PaymentIntentID  string      `json:"-"`
	PaidAt           *time.Time  `json:"paidAt"`
	OrderItems       []OrderItem `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is a frozen line item: name, image and unit price are copied
// from the validated Part at order time so later catalog edits never
// alter historical orders.
type OrderItem struct {
	gorm.Model
	OrderID   int     `json:"orderId"`
	PartID    int     `json:"partId"`
	Name      string  `json:"name"`
	ImageUrl  string  `json:"imageUrl"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"lineTotal"`
}
