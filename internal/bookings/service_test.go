package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"musetix/internal/availability"
	"musetix/internal/notifications"
	"musetix/internal/payments"
	"musetix/internal/pricing"
	"musetix/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository is an in-memory Repository with injectable failures
type fakeRepository struct {
	insertErr  error
	updateErrs []error // consumed one per UpdatePaymentStatus call

	bookings      map[string]*Booking // keyed by payment id
	updateCalls   int
	updatedStatus map[string]payments.Status
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		bookings:      make(map[string]*Booking),
		updatedStatus: make(map[string]payments.Status),
	}
}

func (f *fakeRepository) Insert(_ context.Context, booking *Booking) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, existing := range f.bookings {
		if existing.ID == booking.ID {
			return ErrDuplicateID
		}
	}
	copied := *booking
	f.bookings[booking.PaymentID] = &copied
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	for _, booking := range f.bookings {
		if booking.ID == id {
			return booking, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepository) GetByPaymentID(_ context.Context, paymentID string) (*Booking, error) {
	booking, ok := f.bookings[paymentID]
	if !ok {
		return nil, ErrNotFound
	}
	return booking, nil
}

func (f *fakeRepository) UpdatePaymentStatus(_ context.Context, paymentID string, status payments.Status) error {
	f.updateCalls++
	if len(f.updateErrs) > 0 {
		err := f.updateErrs[0]
		f.updateErrs = f.updateErrs[1:]
		if err != nil {
			return err
		}
	}
	booking, ok := f.bookings[paymentID]
	if !ok {
		return ErrNotFound
	}
	booking.PaymentStatus = status
	f.updatedStatus[paymentID] = status
	return nil
}

func (f *fakeRepository) ListPendingPaymentIDs(_ context.Context) ([]string, error) {
	var ids []string
	for paymentID, booking := range f.bookings {
		if booking.PaymentStatus == payments.StatusPending {
			ids = append(ids, paymentID)
		}
	}
	return ids, nil
}

func (f *fakeRepository) ListBookings(_ context.Context, _ BookingListQuery) ([]Booking, int64, error) {
	var out []Booking
	for _, booking := range f.bookings {
		out = append(out, *booking)
	}
	return out, int64(len(out)), nil
}

func testClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	}
}

func newTestService(repo Repository, gateway payments.Gateway) *service {
	return &service{
		repo:          repo,
		gateway:       gateway,
		calendar:      availability.NewCalendar(7).WithClock(testClock()),
		prices:        pricing.Default(),
		producer:      notifications.NewNoopProducer(),
		log:           logger.GetDefault(),
		settleRetries: 3,
		settleBackoff: time.Millisecond,
	}
}

func TestCreateBookingComputesTotalServerSide(t *testing.T) {
	repo := newFakeRepository()
	gateway := payments.NewMockGateway()
	svc := newTestService(repo, gateway)

	resp, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		Date: "2026-03-12",
		Tickets: map[string]int{
			"adult": 2,
			"child": 1,
		},
	})
	require.NoError(t, err)

	// 2*15 + 1*8
	assert.Equal(t, float64(38), resp.TotalCost)
	assert.Equal(t, "2026-03-12", resp.Date)
	assert.Equal(t, payments.StatusPending.String(), resp.PaymentStatus)
	assert.NotEmpty(t, resp.ID)
	assert.NotEmpty(t, resp.PaymentID)

	// the payment was created at the gateway for the computed amount
	state, err := gateway.PaymentStatus(context.Background(), resp.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, payments.StatusPending, state)
}

func TestCreateBookingSnapshotsEveryCategory(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, payments.NewMockGateway())

	resp, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		Date:    "2026-03-12",
		Tickets: map[string]int{"adult": 1},
	})
	require.NoError(t, err)

	stored, err := repo.GetByPaymentID(context.Background(), resp.PaymentID)
	require.NoError(t, err)
	require.Len(t, stored.TicketLines, 3)

	counts := stored.TicketCounts()
	assert.Equal(t, 1, counts["adult"])
	assert.Equal(t, 0, counts["child"])
	assert.Equal(t, 0, counts["senior"])
}

func TestCreateBookingValidation(t *testing.T) {
	svc := newTestService(newFakeRepository(), payments.NewMockGateway())

	tests := []struct {
		name    string
		req     CreateBookingRequest
		wantErr error
	}{
		{
			name:    "malformed date",
			req:     CreateBookingRequest{Date: "12/03/2026", Tickets: map[string]int{"adult": 1}},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "date outside window",
			req:     CreateBookingRequest{Date: "2026-04-01", Tickets: map[string]int{"adult": 1}},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "today is not bookable",
			req:     CreateBookingRequest{Date: "2026-03-10", Tickets: map[string]int{"adult": 1}},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "unknown category",
			req:     CreateBookingRequest{Date: "2026-03-12", Tickets: map[string]int{"student": 1}},
			wantErr: ErrInvalidCategory,
		},
		{
			name:    "negative quantity",
			req:     CreateBookingRequest{Date: "2026-03-12", Tickets: map[string]int{"adult": -1}},
			wantErr: ErrNegativeQuantity,
		},
		{
			name:    "no tickets at all",
			req:     CreateBookingRequest{Date: "2026-03-12", Tickets: map[string]int{}},
			wantErr: ErrEmptyBooking,
		},
		{
			name:    "all quantities zero",
			req:     CreateBookingRequest{Date: "2026-03-12", Tickets: map[string]int{"adult": 0, "child": 0}},
			wantErr: ErrEmptyBooking,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBooking(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateBookingOrphanedPayment(t *testing.T) {
	repo := newFakeRepository()
	repo.insertErr = errors.New("connection reset")
	gateway := payments.NewMockGateway()
	svc := newTestService(repo, gateway)

	_, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		Date:    "2026-03-12",
		Tickets: map[string]int{"adult": 1},
	})
	require.Error(t, err)

	// the payment exists at the gateway with no owning booking
	pending, err := repo.ListPendingPaymentIDs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSettlePayment(t *testing.T) {
	repo := newFakeRepository()
	gateway := payments.NewMockGateway()
	svc := newTestService(repo, gateway)

	resp, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		Date:    "2026-03-12",
		Tickets: map[string]int{"senior": 2},
	})
	require.NoError(t, err)

	require.NoError(t, svc.SettlePayment(context.Background(), resp.PaymentID))

	stored, err := repo.GetByPaymentID(context.Background(), resp.PaymentID)
	require.NoError(t, err)
	assert.True(t, stored.IsSettled())

	state, err := gateway.PaymentStatus(context.Background(), resp.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, payments.StatusCompleted, state)
}

func TestSettlePaymentIdempotent(t *testing.T) {
	repo := newFakeRepository()
	gateway := payments.NewMockGateway()
	svc := newTestService(repo, gateway)

	resp, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		Date:    "2026-03-12",
		Tickets: map[string]int{"adult": 1},
	})
	require.NoError(t, err)

	require.NoError(t, svc.SettlePayment(context.Background(), resp.PaymentID))
	require.NoError(t, svc.SettlePayment(context.Background(), resp.PaymentID))

	stored, err := repo.GetByPaymentID(context.Background(), resp.PaymentID)
	require.NoError(t, err)
	assert.True(t, stored.IsSettled())
}

func TestSettlePaymentUnknownID(t *testing.T) {
	svc := newTestService(newFakeRepository(), payments.NewMockGateway())

	err := svc.SettlePayment(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, payments.ErrUnknownPayment)
}

func TestSettlePaymentRetriesTransientStoreFailure(t *testing.T) {
	repo := newFakeRepository()
	gateway := payments.NewMockGateway()
	svc := newTestService(repo, gateway)

	resp, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		Date:    "2026-03-12",
		Tickets: map[string]int{"adult": 1},
	})
	require.NoError(t, err)

	repo.updateErrs = []error{errors.New("deadlock detected"), nil}
	repo.updateCalls = 0

	require.NoError(t, svc.SettlePayment(context.Background(), resp.PaymentID))
	assert.Equal(t, 2, repo.updateCalls)
}

func TestSettlePaymentDoesNotRetryNotFound(t *testing.T) {
	repo := newFakeRepository()
	gateway := payments.NewMockGateway()
	svc := newTestService(repo, gateway)

	// payment exists at the gateway but no booking references it
	payment, err := gateway.CreatePayment(context.Background(), 15)
	require.NoError(t, err)

	err = svc.SettlePayment(context.Background(), payment.ID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, repo.updateCalls)
}

func TestSettlePaymentStuckAfterRetries(t *testing.T) {
	repo := newFakeRepository()
	gateway := payments.NewMockGateway()
	svc := newTestService(repo, gateway)

	resp, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		Date:    "2026-03-12",
		Tickets: map[string]int{"adult": 1},
	})
	require.NoError(t, err)

	storeDown := errors.New("store unavailable")
	repo.updateErrs = []error{storeDown, storeDown, storeDown}
	repo.updateCalls = 0

	err = svc.SettlePayment(context.Background(), resp.PaymentID)
	require.ErrorIs(t, err, storeDown)
	assert.Equal(t, 3, repo.updateCalls)

	// the payment itself completed; only the store is behind
	state, err := gateway.PaymentStatus(context.Background(), resp.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, payments.StatusCompleted, state)
}

func TestReconcileRepairsSettledPayments(t *testing.T) {
	repo := newFakeRepository()
	gateway := payments.NewMockGateway()
	svc := newTestService(repo, gateway)

	ctx := context.Background()

	// booking A: payment completed at the gateway, store still pending
	respA, err := svc.CreateBooking(ctx, CreateBookingRequest{
		Date:    "2026-03-12",
		Tickets: map[string]int{"adult": 1},
	})
	require.NoError(t, err)
	_, err = gateway.ProcessPayment(ctx, respA.PaymentID)
	require.NoError(t, err)

	// booking B: still genuinely pending
	respB, err := svc.CreateBooking(ctx, CreateBookingRequest{
		Date:    "2026-03-13",
		Tickets: map[string]int{"child": 2},
	})
	require.NoError(t, err)

	report, err := svc.Reconcile(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Checked)
	assert.Equal(t, 1, report.Repaired)
	assert.Equal(t, 0, report.Failed)

	storedA, err := repo.GetByPaymentID(ctx, respA.PaymentID)
	require.NoError(t, err)
	assert.True(t, storedA.IsSettled())

	storedB, err := repo.GetByPaymentID(ctx, respB.PaymentID)
	require.NoError(t, err)
	assert.False(t, storedB.IsSettled())
}

func TestReconcileCountsGatewayFailures(t *testing.T) {
	repo := newFakeRepository()
	gateway := payments.NewMockGateway()
	svc := newTestService(repo, gateway)

	// a pending booking whose payment the gateway has never heard of
	booking := &Booking{
		ID:            uuid.New(),
		VisitDate:     time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		TotalCost:     15,
		PaymentID:     uuid.New().String(),
		PaymentStatus: payments.StatusPending,
	}
	require.NoError(t, repo.Insert(context.Background(), booking))

	report, err := svc.Reconcile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Checked)
	assert.Equal(t, 0, report.Repaired)
	assert.Equal(t, 1, report.Failed)
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(10, 0))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
}
