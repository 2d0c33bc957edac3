package notifications

import (
	"time"
)

// EventType identifies a booking lifecycle event
type EventType string

const (
	// EventBookingCreated fires after a booking row is durably inserted
	EventBookingCreated EventType = "booking_created"

	// EventPaymentSettled fires after a payment completed and the store
	// reflects it
	EventPaymentSettled EventType = "payment_settled"

	// EventSettlementStuck fires when a payment completed at the gateway but
	// the store update kept failing; the booking row stays inconsistent until
	// the reconciliation sweep repairs it
	EventSettlementStuck EventType = "settlement_stuck"

	// EventOrphanedPayment fires when a payment was created but the booking
	// insert failed, leaving the payment pending with no owning booking
	EventOrphanedPayment EventType = "orphaned_payment"
)

// BookingEvent is the message published for every booking lifecycle event
type BookingEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	BookingID  string    `json:"booking_id,omitempty"`
	PaymentID  string    `json:"payment_id"`
	Amount     float64   `json:"amount,omitempty"`
	VisitDate  string    `json:"visit_date,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
