package orders

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trottiparts/trottiparts-api/models"
)

func staleOrderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "order_number", "status"}).
		AddRow(5, "TRT-K3J2M7Q8R4T6V1W9", models.OrderStatusAwaitingPayment)
}

func TestReapOnceCancelsStaleOrderAndRestoresStock(t *testing.T) {
	db, mock := newMockDB(t)
	reaper := NewReaper(db, 24*time.Hour, time.Hour)

	mock.ExpectQuery("SELECT .+ FROM `orders`").
		WithArgs(models.OrderStatusAwaitingPayment, sqlmock.AnyArg()).
		WillReturnRows(staleOrderRows())
	mock.ExpectQuery("SELECT .+ FROM `order_items`").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "part_id", "quantity"}).
			AddRow(21, 5, 2, 3))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `orders` SET `status`=").
		WithArgs(models.OrderStatusCancelled, sqlmock.AnyArg(), 5, models.OrderStatusAwaitingPayment).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `parts` SET `stock`=stock \\+ ").
		WithArgs(3, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	count, err := reaper.ReapOnce()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReapOnceLeavesJustPaidOrderAlone(t *testing.T) {
	// The cancellation shares the webhook's status guard: when the order
	// was paid between the scan and the update, no row matches and the
	// reserved stock stays decremented.
	db, mock := newMockDB(t)
	reaper := NewReaper(db, 24*time.Hour, time.Hour)

	mock.ExpectQuery("SELECT .+ FROM `orders`").
		WithArgs(models.OrderStatusAwaitingPayment, sqlmock.AnyArg()).
		WillReturnRows(staleOrderRows())
	mock.ExpectQuery("SELECT .+ FROM `order_items`").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "part_id", "quantity"}).
			AddRow(21, 5, 2, 3))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `orders` SET `status`=").
		WithArgs(models.OrderStatusCancelled, sqlmock.AnyArg(), 5, models.OrderStatusAwaitingPayment).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	count, err := reaper.ReapOnce()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReapOnceNothingStale(t *testing.T) {
	db, mock := newMockDB(t)
	reaper := NewReaper(db, 24*time.Hour, time.Hour)

	mock.ExpectQuery("SELECT .+ FROM `orders`").
		WithArgs(models.OrderStatusAwaitingPayment, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	count, err := reaper.ReapOnce()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
