package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"musetix/internal/availability"
	"musetix/internal/bookings"
	"musetix/internal/pricing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySessionStore keeps sessions in a map, standing in for Redis
type memorySessionStore struct {
	sessions map[string]*Session
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]*Session)}
}

func (m *memorySessionStore) Get(_ context.Context, sessionID string) (*Session, error) {
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (m *memorySessionStore) Save(_ context.Context, session *Session) error {
	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}

func (m *memorySessionStore) Delete(_ context.Context, sessionID string) error {
	delete(m.sessions, sessionID)
	return nil
}

// fakeBookingService records calls without touching a real store or gateway
type fakeBookingService struct {
	createReq *bookings.CreateBookingRequest
	createErr error
	settled   []string
	settleErr error
}

func (f *fakeBookingService) CreateBooking(_ context.Context, req bookings.CreateBookingRequest) (*bookings.BookingResponse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createReq = &req

	var total float64
	prices := pricing.Default()
	for category, qty := range req.Tickets {
		price, _ := prices.Price(category)
		total += price * float64(qty)
	}

	return &bookings.BookingResponse{
		ID:            "booking-1",
		Date:          req.Date,
		Tickets:       req.Tickets,
		TotalCost:     total,
		PaymentID:     "payment-1",
		PaymentStatus: "pending",
	}, nil
}

func (f *fakeBookingService) SettlePayment(_ context.Context, paymentID string) error {
	if f.settleErr != nil {
		return f.settleErr
	}
	f.settled = append(f.settled, paymentID)
	return nil
}

func (f *fakeBookingService) Reconcile(context.Context) (*bookings.ReconciliationReport, error) {
	return &bookings.ReconciliationReport{}, nil
}

func (f *fakeBookingService) GetBooking(context.Context, uuid.UUID) (*bookings.Booking, error) {
	return nil, bookings.ErrNotFound
}

func (f *fakeBookingService) ListBookings(context.Context, bookings.BookingListQuery) (*bookings.PaginatedBookings, error) {
	return &bookings.PaginatedBookings{}, nil
}

func newTestChat(t *testing.T) (Service, *fakeBookingService, *memorySessionStore) {
	t.Helper()

	clock := func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	store := newMemorySessionStore()
	fake := &fakeBookingService{}
	svc := NewService(store, NewKeywordParser(), fake, availability.NewCalendar(7).WithClock(clock), pricing.Default())
	return svc, fake, store
}

func say(t *testing.T, svc Service, sessionID, message string) *Reply {
	t.Helper()
	reply, err := svc.HandleMessage(context.Background(), sessionID, message)
	require.NoError(t, err)
	return reply
}

func TestFullBookingConversation(t *testing.T) {
	svc, fake, _ := newTestChat(t)

	reply := say(t, svc, "", "I want to book tickets")
	require.NotEmpty(t, reply.SessionID)
	assert.Equal(t, StateAwaitingDate, reply.State)
	assert.Contains(t, reply.Message, "2026-03-11")

	sessionID := reply.SessionID

	reply = say(t, svc, sessionID, "2026-03-12")
	assert.Equal(t, StateAwaitingCount, reply.State)
	assert.Contains(t, reply.Message, "adult")

	reply = say(t, svc, sessionID, "2")
	assert.Equal(t, StateAwaitingCount, reply.State)
	assert.Contains(t, reply.Message, "child")

	reply = say(t, svc, sessionID, "1")
	assert.Equal(t, StateAwaitingCount, reply.State)
	assert.Contains(t, reply.Message, "senior")

	reply = say(t, svc, sessionID, "0")
	assert.Equal(t, StateAwaitingConfirm, reply.State)
	assert.Contains(t, reply.Message, "Total: $38.00")

	reply = say(t, svc, sessionID, "yes")
	assert.Equal(t, StateAwaitingPayment, reply.State)
	assert.Contains(t, reply.Message, "booking-1")

	require.NotNil(t, fake.createReq)
	assert.Equal(t, "2026-03-12", fake.createReq.Date)
	assert.Equal(t, map[string]int{"adult": 2, "child": 1, "senior": 0}, fake.createReq.Tickets)

	reply = say(t, svc, sessionID, "pay")
	assert.Equal(t, StateIdle, reply.State)
	assert.Contains(t, reply.Message, "Payment successful")
	assert.Equal(t, []string{"payment-1"}, fake.settled)
}

func TestPriceAndDateQuestions(t *testing.T) {
	svc, _, _ := newTestChat(t)

	reply := say(t, svc, "", "what are the prices?")
	assert.Equal(t, StateIdle, reply.State)
	assert.Contains(t, reply.Message, "adult: $15.00")
	assert.Contains(t, reply.Message, "child: $8.00")
	assert.Contains(t, reply.Message, "senior: $10.00")

	reply = say(t, svc, reply.SessionID, "which dates are available?")
	assert.Equal(t, StateIdle, reply.State)
	assert.Contains(t, reply.Message, "2026-03-11")
	assert.Contains(t, reply.Message, "2026-03-17")
}

func TestUnavailableDateReprompts(t *testing.T) {
	svc, _, _ := newTestChat(t)

	reply := say(t, svc, "", "book")
	sessionID := reply.SessionID

	reply = say(t, svc, sessionID, "2020-01-01")
	assert.Equal(t, StateAwaitingDate, reply.State)
	assert.Contains(t, reply.Message, "not available")

	reply = say(t, svc, sessionID, "next friday")
	assert.Equal(t, StateAwaitingDate, reply.State)
	assert.Contains(t, reply.Message, "YYYY-MM-DD")
}

func TestNonNumericCountReprompts(t *testing.T) {
	svc, _, _ := newTestChat(t)

	reply := say(t, svc, "", "book")
	sessionID := reply.SessionID
	say(t, svc, sessionID, "2026-03-12")

	reply = say(t, svc, sessionID, "a few")
	assert.Equal(t, StateAwaitingCount, reply.State)
	assert.Contains(t, reply.Message, "number")
}

func TestZeroTicketOrderResets(t *testing.T) {
	svc, fake, _ := newTestChat(t)

	reply := say(t, svc, "", "book")
	sessionID := reply.SessionID
	say(t, svc, sessionID, "2026-03-12")
	say(t, svc, sessionID, "0")
	say(t, svc, sessionID, "0")

	reply = say(t, svc, sessionID, "0")
	assert.Equal(t, StateIdle, reply.State)
	assert.Nil(t, fake.createReq)
}

func TestCancelMidFlow(t *testing.T) {
	svc, fake, _ := newTestChat(t)

	reply := say(t, svc, "", "book")
	sessionID := reply.SessionID
	say(t, svc, sessionID, "2026-03-12")

	reply = say(t, svc, sessionID, "cancel")
	assert.Equal(t, StateIdle, reply.State)
	assert.Nil(t, fake.createReq)
}

func TestDeclineAtConfirmation(t *testing.T) {
	svc, fake, _ := newTestChat(t)

	reply := say(t, svc, "", "book")
	sessionID := reply.SessionID
	say(t, svc, sessionID, "2026-03-12")
	say(t, svc, sessionID, "1")
	say(t, svc, sessionID, "0")
	say(t, svc, sessionID, "0")

	reply = say(t, svc, sessionID, "no")
	assert.Equal(t, StateIdle, reply.State)
	assert.Nil(t, fake.createReq)
}

func TestBookingFailureResetsConversation(t *testing.T) {
	svc, fake, _ := newTestChat(t)
	fake.createErr = errors.New("store down")

	reply := say(t, svc, "", "book")
	sessionID := reply.SessionID
	say(t, svc, sessionID, "2026-03-12")
	say(t, svc, sessionID, "1")
	say(t, svc, sessionID, "0")
	say(t, svc, sessionID, "0")

	reply = say(t, svc, sessionID, "yes")
	assert.Equal(t, StateIdle, reply.State)
	assert.Contains(t, reply.Message, "could not complete")
}

func TestPaymentFailureKeepsSessionPayable(t *testing.T) {
	svc, fake, _ := newTestChat(t)

	reply := say(t, svc, "", "book")
	sessionID := reply.SessionID
	say(t, svc, sessionID, "2026-03-12")
	say(t, svc, sessionID, "1")
	say(t, svc, sessionID, "0")
	say(t, svc, sessionID, "0")
	say(t, svc, sessionID, "yes")

	fake.settleErr = errors.New("gateway timeout")
	reply = say(t, svc, sessionID, "pay")
	assert.Equal(t, StateAwaitingPayment, reply.State)
	assert.Contains(t, reply.Message, "did not go through")

	fake.settleErr = nil
	reply = say(t, svc, sessionID, "pay")
	assert.Equal(t, StateIdle, reply.State)
	assert.Equal(t, []string{"payment-1"}, fake.settled)
}

func TestSessionPersistsAcrossMessages(t *testing.T) {
	svc, _, store := newTestChat(t)

	reply := say(t, svc, "", "book")
	sessionID := reply.SessionID

	saved, err := store.Get(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingDate, saved.State)

	// unknown session ids start a fresh conversation under the same id
	reply = say(t, svc, "expired-session", "hello")
	assert.Equal(t, "expired-session", reply.SessionID)
	assert.Equal(t, StateIdle, reply.State)
}
