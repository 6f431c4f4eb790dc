package paymentControllers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lzloop13-dot/LZ-Loop/models"
	"github.com/lzloop13-dot/LZ-Loop/payments"
)

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) FindSession(ctx context.Context, sessionID string) (*models.PaymentSession, error) {
	args := m.Called(ctx, sessionID)
	if s := args.Get(0); s != nil {
		return s.(*models.PaymentSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSessionStore) MarkPaid(ctx context.Context, session *models.PaymentSession) (*models.Order, error) {
	args := m.Called(ctx, session)
	if o := args.Get(0); o != nil {
		return o.(*models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

// statusOnlyProvider mocks the status half of the provider client; the
// reconciler never creates sessions.
type statusOnlyProvider struct {
	mock.Mock
}

func (m *statusOnlyProvider) CreateSession(ctx context.Context, req payments.CreateSessionRequest) (*payments.Session, error) {
	args := m.Called(ctx, req)
	if s := args.Get(0); s != nil {
		return s.(*payments.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *statusOnlyProvider) SessionStatus(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func TestReconcilerResolve(t *testing.T) {
	unpaidSession := func() *models.PaymentSession {
		return &models.PaymentSession{
			ID:      "cs_123",
			OrderID: "ord_1",
			Status:  models.PaymentStatusUnpaid,
		}
	}

	t.Run("unknown session", func(t *testing.T) {
		store := new(MockSessionStore)
		provider := new(statusOnlyProvider)
		store.On("FindSession", mock.Anything, "cs_missing").Return(nil, ErrSessionNotFound)

		rec := NewReconciler(store, provider, zap.NewNop(), nil)
		_, err := rec.Resolve(context.Background(), "cs_missing")
		assert.ErrorIs(t, err, ErrSessionNotFound)
		store.AssertExpectations(t)
	})

	t.Run("paid session clears the cart exactly once", func(t *testing.T) {
		store := new(MockSessionStore)
		provider := new(statusOnlyProvider)
		store.On("FindSession", mock.Anything, "cs_123").Return(unpaidSession(), nil)
		provider.On("SessionStatus", mock.Anything, "cs_123").Return("paid", nil).Once()
		store.On("MarkPaid", mock.Anything, mock.AnythingOfType("*models.PaymentSession")).
			Return(&models.Order{ID: "ord_1", Status: models.OrderStatusPaid}, nil).Once()

		hookCalls := 0
		rec := NewReconciler(store, provider, zap.NewNop(), func(ctx context.Context, order *models.Order) {
			hookCalls++
		})

		status, err := rec.Resolve(context.Background(), "cs_123")
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPaid, status)
		assert.Equal(t, 1, hookCalls)
		store.AssertExpectations(t)
		provider.AssertExpectations(t)
	})

	t.Run("already-paid session answers from the store", func(t *testing.T) {
		store := new(MockSessionStore)
		provider := new(statusOnlyProvider)
		paid := unpaidSession()
		paid.Status = models.PaymentStatusPaid
		store.On("FindSession", mock.Anything, "cs_123").Return(paid, nil)

		rec := NewReconciler(store, provider, zap.NewNop(), nil)

		// Resolving twice: no provider call, no MarkPaid, same answer both times
		for i := 0; i < 2; i++ {
			status, err := rec.Resolve(context.Background(), "cs_123")
			require.NoError(t, err)
			assert.Equal(t, models.PaymentStatusPaid, status)
		}
		provider.AssertNotCalled(t, "SessionStatus", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
	})

	t.Run("losing the paid transition reports paid without repeating side effects", func(t *testing.T) {
		// Another resolver committed between our FindSession read and the
		// session update, so the store refuses to re-run the transition.
		store := new(MockSessionStore)
		provider := new(statusOnlyProvider)
		store.On("FindSession", mock.Anything, "cs_123").Return(unpaidSession(), nil)
		provider.On("SessionStatus", mock.Anything, "cs_123").Return("paid", nil)
		store.On("MarkPaid", mock.Anything, mock.AnythingOfType("*models.PaymentSession")).
			Return(nil, ErrAlreadyResolved).Once()

		hookCalls := 0
		rec := NewReconciler(store, provider, zap.NewNop(), func(ctx context.Context, order *models.Order) {
			hookCalls++
		})

		status, err := rec.Resolve(context.Background(), "cs_123")
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPaid, status)
		assert.Equal(t, 0, hookCalls)
		store.AssertExpectations(t)
	})

	t.Run("unpaid session has no side effects", func(t *testing.T) {
		store := new(MockSessionStore)
		provider := new(statusOnlyProvider)
		store.On("FindSession", mock.Anything, "cs_123").Return(unpaidSession(), nil)
		provider.On("SessionStatus", mock.Anything, "cs_123").Return("unpaid", nil)

		rec := NewReconciler(store, provider, zap.NewNop(), nil)
		status, err := rec.Resolve(context.Background(), "cs_123")
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusUnpaid, status)
		store.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
	})

	t.Run("provider failure surfaces without side effects", func(t *testing.T) {
		store := new(MockSessionStore)
		provider := new(statusOnlyProvider)
		store.On("FindSession", mock.Anything, "cs_123").Return(unpaidSession(), nil)
		provider.On("SessionStatus", mock.Anything, "cs_123").Return("", errors.New("provider down"))

		rec := NewReconciler(store, provider, zap.NewNop(), nil)
		_, err := rec.Resolve(context.Background(), "cs_123")
		require.Error(t, err)
		store.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
	})
}
