package bookings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"musetix/internal/availability"
	"musetix/internal/notifications"
	"musetix/internal/payments"
	"musetix/internal/pricing"
	"musetix/pkg/logger"

	"github.com/google/uuid"
)

// Service interface defines the contract for booking business logic
type Service interface {
	// CreateBooking validates the request, computes the total cost, creates
	// a payment and persists the booking as a single sequence.
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingResponse, error)

	// SettlePayment moves the payment to completed and records the outcome
	// in the store. Safe to call repeatedly for the same payment.
	SettlePayment(ctx context.Context, paymentID string) error

	// Reconcile repairs bookings whose payment completed at the gateway but
	// whose stored status is still pending.
	Reconcile(ctx context.Context) (*ReconciliationReport, error)

	GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	ListBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error)
}

// service implements the Service interface
type service struct {
	repo     Repository
	gateway  payments.Gateway
	calendar *availability.Calendar
	prices   *pricing.Table
	producer notifications.Producer
	log      *logger.Logger

	settleRetries int
	settleBackoff time.Duration
}

// NewService creates a new booking service instance
func NewService(repo Repository, gateway payments.Gateway, calendar *availability.Calendar, prices *pricing.Table, producer notifications.Producer) Service {
	return &service{
		repo:          repo,
		gateway:       gateway,
		calendar:      calendar,
		prices:        prices,
		producer:      producer,
		log:           logger.GetDefault(),
		settleRetries: 3,
		settleBackoff: 100 * time.Millisecond,
	}
}

// CreateBooking processes a booking request end to end
func (s *service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingResponse, error) {
	// Step 1: Build the draft booking (pure validation + cost computation)
	draft, err := s.buildDraft(req)
	if err != nil {
		return nil, err
	}

	// Step 2: Create the payment for the computed total
	payment, err := s.gateway.CreatePayment(ctx, draft.TotalCost)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	draft.PaymentID = payment.ID
	draft.PaymentStatus = payments.StatusPending

	// Step 3: Persist the booking. If this fails the payment stays pending
	// with no owning booking; no automatic compensation, but the orphan must
	// be observable.
	if err := s.repo.Insert(ctx, draft); err != nil {
		s.log.LogOrphanedPayment(ctx, payment.ID, payment.Amount, err)
		s.publish(ctx, &notifications.BookingEvent{
			Type:      notifications.EventOrphanedPayment,
			PaymentID: payment.ID,
			Amount:    payment.Amount,
			Detail:    err.Error(),
		})
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	s.log.LogBookingCreated(ctx, draft.ID.String(), draft.PaymentID, draft.TotalCost)
	s.publish(ctx, &notifications.BookingEvent{
		Type:      notifications.EventBookingCreated,
		BookingID: draft.ID.String(),
		PaymentID: draft.PaymentID,
		Amount:    draft.TotalCost,
		VisitDate: draft.FormattedDate(),
	})

	return ToBookingResponse(draft), nil
}

// buildDraft validates the request and assembles an unpersisted booking with
// its server-side computed total. No side effects.
func (s *service) buildDraft(req CreateBookingRequest) (*Booking, error) {
	date, err := availability.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}
	if !s.calendar.Contains(date) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, req.Date)
	}

	for category, quantity := range req.Tickets {
		if !s.prices.Has(category) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
		}
		if quantity < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNegativeQuantity, category)
		}
	}

	var totalCost float64
	var totalTickets int
	categories := s.prices.Categories()
	lines := make([]TicketLine, 0, len(categories))

	// Every category gets a line, zero-count ones included, so the stored
	// record is a complete snapshot of the request.
	for _, category := range categories {
		quantity := req.Tickets[category]
		unitPrice, _ := s.prices.Price(category)

		totalCost += float64(quantity) * unitPrice
		totalTickets += quantity
		lines = append(lines, TicketLine{
			Category:  category,
			Quantity:  quantity,
			UnitPrice: unitPrice,
		})
	}

	if totalTickets == 0 {
		return nil, ErrEmptyBooking
	}

	return &Booking{
		ID:          uuid.New(),
		VisitDate:   date,
		TotalCost:   totalCost,
		TicketLines: lines,
	}, nil
}

// SettlePayment processes the payment and patches the stored booking
func (s *service) SettlePayment(ctx context.Context, paymentID string) error {
	state, err := s.gateway.ProcessPayment(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("payment processing failed: %w", err)
	}

	if state != payments.StatusCompleted {
		// A real gateway can decline here; the stored status must not
		// advance on anything but a completed payment.
		return fmt.Errorf("payment %s did not complete: state %s", paymentID, state)
	}

	if err := s.updateStatusWithRetry(ctx, paymentID, payments.StatusCompleted); err != nil {
		// The payment is completed but the store does not reflect it. The
		// reconciliation sweep can repair this later; it must never be
		// silently dropped.
		s.log.LogSettlementStuck(ctx, paymentID, err)
		s.publish(ctx, &notifications.BookingEvent{
			Type:      notifications.EventSettlementStuck,
			PaymentID: paymentID,
			Detail:    err.Error(),
		})
		return fmt.Errorf("failed to record settlement for payment %s: %w", paymentID, err)
	}

	s.log.LogPaymentSettled(ctx, paymentID)
	s.publish(ctx, &notifications.BookingEvent{
		Type:      notifications.EventPaymentSettled,
		PaymentID: paymentID,
	})

	return nil
}

// updateStatusWithRetry retries transient store failures with exponential
// backoff. Integrity errors are returned immediately.
func (s *service) updateStatusWithRetry(ctx context.Context, paymentID string, status payments.Status) error {
	backoff := s.settleBackoff
	var lastErr error

	for attempt := 0; attempt < s.settleRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		err := s.repo.UpdatePaymentStatus(ctx, paymentID, status)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrNotFound) {
			// retrying cannot repair a missing booking row
			return err
		}
		lastErr = err
	}

	return lastErr
}

// Reconcile sweeps pending bookings and repairs the ones whose payment has
// already completed at the gateway
func (s *service) Reconcile(ctx context.Context) (*ReconciliationReport, error) {
	paymentIDs, err := s.repo.ListPendingPaymentIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending bookings: %w", err)
	}

	report := &ReconciliationReport{}
	for _, paymentID := range paymentIDs {
		report.Checked++

		state, err := s.gateway.PaymentStatus(ctx, paymentID)
		if err != nil {
			report.Failed++
			s.log.ErrorContext(ctx, "reconciliation: gateway lookup failed",
				slog.String("payment_id", paymentID),
				slog.String("error", err.Error()),
			)
			continue
		}

		if state != payments.StatusCompleted {
			continue
		}

		if err := s.repo.UpdatePaymentStatus(ctx, paymentID, payments.StatusCompleted); err != nil {
			report.Failed++
			s.log.ErrorContext(ctx, "reconciliation: store update failed",
				slog.String("payment_id", paymentID),
				slog.String("error", err.Error()),
			)
			continue
		}

		report.Repaired++
		s.log.LogPaymentSettled(ctx, paymentID)
	}

	return report, nil
}

// GetBooking retrieves a booking by ID
func (s *service) GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	return s.repo.GetByID(ctx, bookingID)
}

// ListBookings retrieves bookings for the admin surface
func (s *service) ListBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	bookings, totalCount, err := s.repo.ListBookings(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return &PaginatedBookings{
		Bookings:   bookings,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(totalCount, query.Limit),
	}, nil
}

// publish sends a lifecycle event; publish failures are logged but never fail
// the request that triggered them
func (s *service) publish(ctx context.Context, event *notifications.BookingEvent) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, event); err != nil {
		s.log.WarnContext(ctx, "failed to publish booking event",
			slog.String("event_type", string(event.Type)),
			slog.String("payment_id", event.PaymentID),
			slog.String("error", err.Error()),
		)
	}
}
