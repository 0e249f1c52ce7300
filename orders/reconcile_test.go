package orders

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trottiparts/trottiparts-api/models"
	"gorm.io/gorm"
)

type fakeOrderStore struct {
	order *models.Order
	items []models.OrderItem

	findErr     error
	markPaidErr error
	raceToPaid  bool

	markPaidCalls  int
	creditedUserID int
	creditedPoints int
}

func (f *fakeOrderStore) FindByCorrelationID(correlationID string) (*models.Order, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.order == nil || f.order.CorrelationID != correlationID {
		return nil, nil
	}
	copied := *f.order
	if f.raceToPaid {
		// A concurrent delivery settles between the read and the CAS.
		f.order.Status = models.OrderStatusPaid
	}
	return &copied, nil
}

func (f *fakeOrderStore) MarkPaid(orderID uint, paymentIntentID string, paidAt time.Time) (bool, error) {
	f.markPaidCalls++
	if f.markPaidErr != nil {
		return false, f.markPaidErr
	}
	if f.order == nil || f.order.ID != orderID || f.order.Status != models.OrderStatusAwaitingPayment {
		return false, nil
	}
	f.order.Status = models.OrderStatusPaid
	f.order.PaymentIntentID = paymentIntentID
	f.order.PaidAt = &paidAt
	return true, nil
}

func (f *fakeOrderStore) ItemsByOrderID(orderID uint) ([]models.OrderItem, error) {
	return f.items, nil
}

func (f *fakeOrderStore) CreditLoyaltyPoints(userID int, points int) error {
	f.creditedUserID = userID
	f.creditedPoints = points
	return nil
}

type fakeMailer struct {
	sent int
	err  error
}

func (f *fakeMailer) SendOrderConfirmation(order *models.Order, items []models.OrderItem) error {
	f.sent++
	return f.err
}

func awaitingOrder() *models.Order {
	userID := 12
	return &models.Order{
		Model:         gorm.Model{ID: 7},
		OrderNumber:   "TRT-ABCDEF123456",
		CorrelationID: "corr-123",
		UserID:        &userID,
		Email:         "client@example.fr",
		Status:        models.OrderStatusAwaitingPayment,
		LoyaltyPoints: 64,
		Total:         64.90,
	}
}

func TestHandleCompletedTransitionsToPaid(t *testing.T) {
	store := &fakeOrderStore{
		order: awaitingOrder(),
		items: []models.OrderItem{{Name: "Pneu 10 pouces", Quantity: 2, UnitPrice: 25.00}},
	}
	mailer := &fakeMailer{}
	reconciler := NewReconciler(store, mailer)

	processed, err := reconciler.HandleCompleted("corr-123", "pi_789")
	require.NoError(t, err)
	assert.True(t, processed)

	assert.Equal(t, models.OrderStatusPaid, store.order.Status)
	assert.Equal(t, "pi_789", store.order.PaymentIntentID)
	require.NotNil(t, store.order.PaidAt)
	assert.Equal(t, 1, mailer.sent)
	assert.Equal(t, 12, store.creditedUserID)
	assert.Equal(t, 64, store.creditedPoints)
}

func TestHandleCompletedIsIdempotent(t *testing.T) {
	store := &fakeOrderStore{order: awaitingOrder()}
	mailer := &fakeMailer{}
	reconciler := NewReconciler(store, mailer)

	first, err := reconciler.HandleCompleted("corr-123", "pi_789")
	require.NoError(t, err)
	assert.True(t, first)

	// Duplicate delivery: acknowledged, no second transition, no second
	// email.
	second, err := reconciler.HandleCompleted("corr-123", "pi_789")
	require.NoError(t, err)
	assert.False(t, second)

	assert.Equal(t, 1, store.markPaidCalls)
	assert.Equal(t, 1, mailer.sent)
}

func TestHandleCompletedUnknownCorrelationID(t *testing.T) {
	store := &fakeOrderStore{}
	mailer := &fakeMailer{}
	reconciler := NewReconciler(store, mailer)

	processed, err := reconciler.HandleCompleted("corr-ghost", "pi_789")
	require.NoError(t, err, "unknown order must be acknowledged, not retried")
	assert.False(t, processed)
	assert.Zero(t, mailer.sent)
}

func TestHandleCompletedLosesConcurrentRace(t *testing.T) {
	// The status read said awaiting_payment but the CAS finds the order
	// already paid: a concurrent duplicate won.
	store := &fakeOrderStore{order: awaitingOrder(), raceToPaid: true}
	mailer := &fakeMailer{}
	reconciler := NewReconciler(store, mailer)

	processed, err := reconciler.HandleCompleted("corr-123", "pi_789")
	require.NoError(t, err)
	assert.False(t, processed)
	assert.Zero(t, mailer.sent)
}

func TestHandleCompletedMailFailureDoesNotRevert(t *testing.T) {
	store := &fakeOrderStore{order: awaitingOrder()}
	mailer := &fakeMailer{err: errors.New("smtp unreachable")}
	reconciler := NewReconciler(store, mailer)

	processed, err := reconciler.HandleCompleted("corr-123", "pi_789")
	require.NoError(t, err, "notification failure must not fail reconciliation")
	assert.True(t, processed)
	assert.Equal(t, models.OrderStatusPaid, store.order.Status)
}

func TestHandleCompletedStoreErrorPropagates(t *testing.T) {
	store := &fakeOrderStore{findErr: errors.New("connection reset")}
	reconciler := NewReconciler(store, &fakeMailer{})

	_, err := reconciler.HandleCompleted("corr-123", "pi_789")
	assert.Error(t, err, "transient store failures must surface so the provider retries")
}

func TestHandleCompletedGuestOrderSkipsLoyalty(t *testing.T) {
	order := awaitingOrder()
	order.UserID = nil
	store := &fakeOrderStore{order: order}
	reconciler := NewReconciler(store, &fakeMailer{})

	processed, err := reconciler.HandleCompleted("corr-123", "pi_789")
	require.NoError(t, err)
	assert.True(t, processed)
	assert.Zero(t, store.creditedUserID)
}

func TestHandleFailedLeavesStatusUntouched(t *testing.T) {
	store := &fakeOrderStore{order: awaitingOrder()}
	reconciler := NewReconciler(store, &fakeMailer{})

	reconciler.HandleFailed("corr-123")
	assert.Equal(t, models.OrderStatusAwaitingPayment, store.order.Status)
	assert.Zero(t, store.markPaidCalls)
}
