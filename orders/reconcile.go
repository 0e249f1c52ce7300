package orders

import (
	"log"
	"time"

	"github.com/trottiparts/trottiparts-api/models"
)

// OrderStore is the slice of persistence the reconciler needs. *Store
// satisfies it; tests use fakes.
type OrderStore interface {
	FindByCorrelationID(correlationID string) (*models.Order, error)
	MarkPaid(orderID uint, paymentIntentID string, paidAt time.Time) (bool, error)
	ItemsByOrderID(orderID uint) ([]models.OrderItem, error)
	CreditLoyaltyPoints(userID int, points int) error
}

// Mailer sends the order confirmation. Failures are logged, never
// propagated: payment confirmation is authoritative regardless of
// notification delivery.
type Mailer interface {
	SendOrderConfirmation(order *models.Order, items []models.OrderItem) error
}

// Reconciler applies webhook events to order state. The only transition
// it performs is awaiting_payment -> paid, at most once per order under
// at-least-once webhook delivery.
type Reconciler struct {
	store  OrderStore
	mailer Mailer
}

func NewReconciler(store OrderStore, mailer Mailer) *Reconciler {
	return &Reconciler{store: store, mailer: mailer}
}

// HandleCompleted processes a checkout-completed event. It returns
// processed=false for every already-handled or unresolvable case, with
// a nil error: those must be acknowledged to the provider, not retried.
func (r *Reconciler) HandleCompleted(correlationID, paymentIntentID string) (bool, error) {
	order, err := r.store.FindByCorrelationID(correlationID)
	if err != nil {
		return false, err
	}
	if order == nil {
		log.Printf("Webhook references unknown correlation id %s, acknowledging anyway", correlationID)
		return false, nil
	}

	if order.Status != models.OrderStatusAwaitingPayment {
		log.Printf("Order %s already in status %s, skipping duplicate completion", order.OrderNumber, order.Status)
		return false, nil
	}

	won, err := r.store.MarkPaid(order.ID, paymentIntentID, time.Now())
	if err != nil {
		return false, err
	}
	if !won {
		log.Printf("Order %s was paid by a concurrent delivery, skipping", order.OrderNumber)
		return false, nil
	}

	if order.UserID != nil {
		if err := r.store.CreditLoyaltyPoints(*order.UserID, order.LoyaltyPoints); err != nil {
			log.Printf("Failed to credit loyalty points for order %s: %v", order.OrderNumber, err)
		}
	}

	items, err := r.store.ItemsByOrderID(order.ID)
	if err != nil {
		log.Printf("Failed to load items for confirmation email of order %s: %v", order.OrderNumber, err)
		return true, nil
	}
	if err := r.mailer.SendOrderConfirmation(order, items); err != nil {
		log.Printf("Failed to send confirmation email for order %s: %v", order.OrderNumber, err)
	}

	return true, nil
}

// HandleFailed logs a failed payment attempt. The order stays in
// awaiting_payment so the customer can retry or abandon it.
func (r *Reconciler) HandleFailed(correlationID string) {
	order, err := r.store.FindByCorrelationID(correlationID)
	if err != nil || order == nil {
		log.Printf("Payment failed event for unknown correlation id %s", correlationID)
		return
	}
	log.Printf("Payment failed for order %s, leaving status %s", order.OrderNumber, order.Status)
}
