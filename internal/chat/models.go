package chat

import "time"

// State identifies where a conversation is in the booking flow
type State string

const (
	// StateIdle means no booking is in progress
	StateIdle State = "idle"

	// StateAwaitingDate means the visitor was asked to pick a visit date
	StateAwaitingDate State = "awaiting_date"

	// StateAwaitingCount means the visitor is being asked for ticket counts,
	// one category at a time
	StateAwaitingCount State = "awaiting_count"

	// StateAwaitingConfirm means the order summary was shown and the visitor
	// must confirm or cancel
	StateAwaitingConfirm State = "awaiting_confirm"

	// StateAwaitingPayment means the booking exists and its payment is pending
	StateAwaitingPayment State = "awaiting_payment"
)

// Session holds the conversation state for one visitor. Stored in Redis and
// round-tripped through JSON.
type Session struct {
	ID            string         `json:"id"`
	State         State          `json:"state"`
	Date          string         `json:"date,omitempty"`
	Categories    []string       `json:"categories,omitempty"`
	CategoryIndex int            `json:"category_index"`
	Tickets       map[string]int `json:"tickets,omitempty"`
	BookingID     string         `json:"booking_id,omitempty"`
	PaymentID     string         `json:"payment_id,omitempty"`
	TotalCost     float64        `json:"total_cost"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Reset clears booking progress but keeps the session alive
func (s *Session) Reset() {
	s.State = StateIdle
	s.Date = ""
	s.Categories = nil
	s.CategoryIndex = 0
	s.Tickets = nil
	s.BookingID = ""
	s.PaymentID = ""
	s.TotalCost = 0
}

// CurrentCategory returns the category whose count is being collected
func (s *Session) CurrentCategory() (string, bool) {
	if s.CategoryIndex < 0 || s.CategoryIndex >= len(s.Categories) {
		return "", false
	}
	return s.Categories[s.CategoryIndex], true
}

// Reply is what the assistant sends back for one message
type Reply struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	State     State  `json:"state"`
}
