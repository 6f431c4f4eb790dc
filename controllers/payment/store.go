package paymentControllers

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/lzloop13-dot/LZ-Loop/models"
)

var (
	ErrSessionNotFound = errors.New("payment session not found")

	// ErrAlreadyResolved means another resolver marked the session paid first;
	// the paid side effects already ran and must not run again.
	ErrAlreadyResolved = errors.New("payment session already resolved")
)

// SessionStore is the persistence surface the reconciler needs. Split out as
// an interface so the reconciliation logic is testable without a database.
type SessionStore interface {
	FindSession(ctx context.Context, sessionID string) (*models.PaymentSession, error)
	// MarkPaid applies the one-and-only paid transition: session and order
	// move to paid, the shopper's cart is cleared, the promo usage counter is
	// bumped. All in a single transaction. Returns ErrAlreadyResolved when a
	// concurrent resolver (or another instance) won the transition.
	MarkPaid(ctx context.Context, session *models.PaymentSession) (*models.Order, error)
}

type gormSessionStore struct {
	db *gorm.DB
}

// NewSessionStore returns the gorm-backed store.
func NewSessionStore(db *gorm.DB) SessionStore {
	return &gormSessionStore{db: db}
}

func (s *gormSessionStore) FindSession(ctx context.Context, sessionID string) (*models.PaymentSession, error) {
	var session models.PaymentSession
	err := s.db.WithContext(ctx).First(&session, "id = ?", sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (s *gormSessionStore) MarkPaid(ctx context.Context, session *models.PaymentSession) (*models.Order, error) {
	var order models.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", session.OrderID).Error; err != nil {
			return err
		}

		now := time.Now()
		res := tx.Model(&models.PaymentSession{}).
			Where("id = ? AND status = ?", session.ID, models.PaymentStatusUnpaid).
			Updates(map[string]interface{}{
				"status":      models.PaymentStatusPaid,
				"resolved_at": &now,
			})
		if res.Error != nil {
			return res.Error
		}
		// Someone else flipped the session between our FindSession read and
		// this update. Abort before any side effect runs a second time.
		if res.RowsAffected == 0 {
			return ErrAlreadyResolved
		}

		if err := tx.Model(&order).Update("status", models.OrderStatusPaid).Error; err != nil {
			return err
		}

		// The order consumed the cart: clear it now, exactly once
		if err := tx.Where("session_id = ?", order.CartSession).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		if order.PromoCode != "" {
			if err := tx.Model(&models.PromoCode{}).
				Where("code = ?", order.PromoCode).
				UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = models.OrderStatusPaid
	return &order, nil
}
