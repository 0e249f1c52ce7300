package orders

import (
	"errors"
	"time"

	"github.com/trottiparts/trottiparts-api/models"
	"gorm.io/gorm"
)

// Store is the gorm-backed data access used by the checkout validator
// and the webhook reconciler.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// PartsByIDs batch-fetches parts with their images for cart validation.
func (s *Store) PartsByIDs(ids []int) ([]models.Part, error) {
	var parts []models.Part
	if err := s.db.Preload("Images").Where("id IN ?", ids).Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

// FindByCorrelationID returns nil without error when no order matches;
// the webhook handler must acknowledge unknown correlation ids rather
// than make the provider retry forever.
func (s *Store) FindByCorrelationID(correlationID string) (*models.Order, error) {
	var order models.Order
	err := s.db.Where("correlation_id = ?", correlationID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// MarkPaid applies the awaiting_payment -> paid transition as a
// compare-and-swap: the WHERE clause on the current status makes the
// update a no-op when a duplicate delivery already won. Returns whether
// this call performed the transition.
func (s *Store) MarkPaid(orderID uint, paymentIntentID string, paidAt time.Time) (bool, error) {
	res := s.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, models.OrderStatusAwaitingPayment).
		Updates(map[string]any{
			"status":            models.OrderStatusPaid,
			"payment_intent_id": paymentIntentID,
			"paid_at":           paidAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) ItemsByOrderID(orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := s.db.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CreditLoyaltyPoints(userID int, points int) error {
	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("loyalty_points", gorm.Expr("loyalty_points + ?", points)).Error
}
