package payments

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Payment is the settlement record owned by the gateway, 1:1 with a booking.
// Amount is fixed at creation; only Status moves, and only forward.
type Payment struct {
	ID        string    `json:"payment_id"`
	Amount    float64   `json:"amount"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Gateway abstracts the payment provider. CreatePayment and ProcessPayment
// return errors so a real integration can surface declines or provider
// outages; the mock implementation never fails those paths.
type Gateway interface {
	// CreatePayment allocates a fresh payment in pending state. Identifiers
	// are unique across all calls within a run.
	CreatePayment(ctx context.Context, amount float64) (*Payment, error)

	// ProcessPayment moves a pending payment to completed and returns the
	// resulting state. Processing an already-completed payment is idempotent:
	// it returns completed again with no further effect.
	ProcessPayment(ctx context.Context, paymentID string) (Status, error)

	// PaymentStatus returns the current state without transitioning it.
	// Used by the reconciliation sweep.
	PaymentStatus(ctx context.Context, paymentID string) (Status, error)
}

// mockGateway simulates a payment provider in memory. Every created payment
// starts pending and every process call succeeds.
type mockGateway struct {
	mu       sync.RWMutex
	payments map[string]*Payment
}

// NewMockGateway creates the default always-succeeds gateway
func NewMockGateway() Gateway {
	return &mockGateway{
		payments: make(map[string]*Payment),
	}
}

func (g *mockGateway) CreatePayment(_ context.Context, amount float64) (*Payment, error) {
	payment := &Payment{
		ID:        uuid.New().String(),
		Amount:    amount,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	g.mu.Lock()
	g.payments[payment.ID] = payment
	g.mu.Unlock()

	copied := *payment
	return &copied, nil
}

func (g *mockGateway) ProcessPayment(_ context.Context, paymentID string) (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	payment, ok := g.payments[paymentID]
	if !ok {
		return "", ErrUnknownPayment
	}

	// completed is terminal; repeated processing must not double-effect
	if payment.Status.IsTerminal() {
		return payment.Status, nil
	}

	payment.Status = StatusCompleted
	return payment.Status, nil
}

func (g *mockGateway) PaymentStatus(_ context.Context, paymentID string) (Status, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	payment, ok := g.payments[paymentID]
	if !ok {
		return "", ErrUnknownPayment
	}
	return payment.Status, nil
}
