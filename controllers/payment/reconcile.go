package paymentControllers

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/lzloop13-dot/LZ-Loop/models"
	"github.com/lzloop13-dot/LZ-Loop/payments"
)

const providerStatusPaid = "paid"

// PaidHook runs after a session first resolves to paid (websocket broadcast,
// event publishing). It must not fail the reconciliation.
type PaidHook func(ctx context.Context, order *models.Order)

// Reconciler resolves a payment session to paid/unpaid. A session is queried
// at the provider at most once per resolution: an already-paid session
// answers from the store, and concurrent resolutions of the same id share a
// single in-flight provider call.
type Reconciler struct {
	store    SessionStore
	provider payments.Client
	logger   *zap.Logger
	onPaid   PaidHook

	group singleflight.Group
}

func NewReconciler(store SessionStore, provider payments.Client, logger *zap.Logger, onPaid PaidHook) *Reconciler {
	return &Reconciler{store: store, provider: provider, logger: logger, onPaid: onPaid}
}

// Resolve maps a session id to its payment status. The paid side effects
// (order paid, cart cleared, promo usage) run exactly once per session.
func (r *Reconciler) Resolve(ctx context.Context, sessionID string) (models.PaymentStatus, error) {
	session, err := r.store.FindSession(ctx, sessionID)
	if err != nil {
		return "", err
	}

	// Already resolved: never ask the provider again, never repeat side effects
	if session.Status == models.PaymentStatusPaid {
		return models.PaymentStatusPaid, nil
	}

	result, err, _ := r.group.Do(sessionID, func() (interface{}, error) {
		status, err := r.provider.SessionStatus(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if status != providerStatusPaid {
			return models.PaymentStatusUnpaid, nil
		}

		order, err := r.store.MarkPaid(ctx, session)
		if err != nil {
			// A concurrent resolver already applied the paid side effects;
			// report paid without repeating them or firing the hook again.
			if errors.Is(err, ErrAlreadyResolved) {
				return models.PaymentStatusPaid, nil
			}
			return nil, err
		}
		r.logger.Info("payment confirmed",
			zap.String("session_id", sessionID),
			zap.String("order_id", order.ID))

		if r.onPaid != nil {
			r.onPaid(ctx, order)
		}
		return models.PaymentStatusPaid, nil
	})
	if err != nil {
		return "", err
	}
	return result.(models.PaymentStatus), nil
}
