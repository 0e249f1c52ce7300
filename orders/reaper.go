package orders

import (
	"fmt"
	"log"
	"time"

	"github.com/trottiparts/trottiparts-api/models"
	"gorm.io/gorm"
)

// Reaper cancels orders stuck in awaiting_payment (abandoned hosted
// checkouts) and puts their reserved stock back.
type Reaper struct {
	db       *gorm.DB
	maxAge   time.Duration
	interval time.Duration
}

func NewReaper(db *gorm.DB, maxAge, interval time.Duration) *Reaper {
	return &Reaper{db: db, maxAge: maxAge, interval: interval}
}

// Run blocks, reaping on every tick. Start it with go reaper.Run().
func (r *Reaper) Run() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for range ticker.C {
		count, err := r.ReapOnce()
		if err != nil {
			log.Println("Order reaper failed:", err)
			continue
		}
		if count > 0 {
			log.Printf("Order reaper cancelled %d abandoned order(s)", count)
		}
	}
}

// ReapOnce cancels every awaiting_payment order older than maxAge. Each
// order is handled in its own transaction: the cancellation is guarded
// by the same status CAS the webhook uses, so a payment arriving at the
// last moment wins and the stock stays decremented.
func (r *Reaper) ReapOnce() (int, error) {
	cutoff := time.Now().Add(-r.maxAge)

	var stale []models.Order
	err := r.db.Preload("OrderItems").
		Where("status = ? AND created_at < ?", models.OrderStatusAwaitingPayment, cutoff).
		Find(&stale).Error
	if err != nil {
		return 0, err
	}

	reaped := 0
	for _, order := range stale {
		err := r.db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.Order{}).
				Where("id = ? AND status = ?", order.ID, models.OrderStatusAwaitingPayment).
				Update("status", models.OrderStatusCancelled)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Paid in the meantime, leave it alone.
				return nil
			}

			for _, item := range order.OrderItems {
				if err := tx.Model(&models.Part{}).
					Where("id = ? AND stock IS NOT NULL", item.PartID).
					UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
					return fmt.Errorf("stock restore failed for part %d: %w", item.PartID, err)
				}
			}

			reaped++
			return nil
		})
		if err != nil {
			log.Printf("Failed to reap order %s: %v", order.OrderNumber, err)
		}
	}

	return reaped, nil
}
