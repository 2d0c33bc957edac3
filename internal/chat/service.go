package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"musetix/internal/availability"
	"musetix/internal/bookings"
	"musetix/internal/pricing"
	"musetix/pkg/logger"

	"github.com/google/uuid"
)

// Service drives the guided booking conversation
type Service interface {
	// HandleMessage advances the session identified by sessionID with one
	// visitor message and returns the assistant reply. An empty sessionID
	// starts a fresh conversation.
	HandleMessage(ctx context.Context, sessionID string, message string) (*Reply, error)
}

type service struct {
	store    SessionStore
	parser   Parser
	bookings bookings.Service
	calendar *availability.Calendar
	prices   *pricing.Table
	log      *logger.Logger
}

// NewService creates a new chat service
func NewService(store SessionStore, parser Parser, bookingService bookings.Service, calendar *availability.Calendar, prices *pricing.Table) Service {
	return &service{
		store:    store,
		parser:   parser,
		bookings: bookingService,
		calendar: calendar,
		prices:   prices,
		log:      logger.GetDefault(),
	}
}

func (s *service) HandleMessage(ctx context.Context, sessionID string, message string) (*Reply, error) {
	session, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	intent := s.parser.Parse(message)

	var reply string
	switch session.State {
	case StateAwaitingDate:
		reply = s.handleDate(session, intent)
	case StateAwaitingCount:
		reply = s.handleCount(session, intent)
	case StateAwaitingConfirm:
		reply = s.handleConfirm(ctx, session, intent)
	case StateAwaitingPayment:
		reply = s.handlePayment(ctx, session, intent)
	default:
		reply = s.handleIdle(session, intent)
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	return &Reply{
		SessionID: session.ID,
		Message:   reply,
		State:     session.State,
	}, nil
}

func (s *service) loadOrCreate(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID != "" {
		session, err := s.store.Get(ctx, sessionID)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
	}
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	return &Session{ID: sessionID, State: StateIdle}, nil
}

func (s *service) handleIdle(session *Session, intent Intent) string {
	switch intent.Type {
	case IntentBook:
		session.State = StateAwaitingDate
		return fmt.Sprintf("Great, let's book your museum visit. Which date works for you?\n%s", s.dateList())
	case IntentPrices:
		return s.priceList()
	case IntentDates:
		return s.dateList()
	default:
		return "Hi! I can help you book museum tickets. Say \"book\" to start, \"prices\" for the price list or \"dates\" for available visit dates."
	}
}

func (s *service) handleDate(session *Session, intent Intent) string {
	if intent.Type == IntentCancel {
		session.Reset()
		return "No problem, booking cancelled. Say \"book\" whenever you want to start again."
	}

	if intent.Date == "" {
		return fmt.Sprintf("Please pick a date in YYYY-MM-DD format.\n%s", s.dateList())
	}

	date, err := availability.ParseDate(intent.Date)
	if err != nil || !s.calendar.Contains(date) {
		return fmt.Sprintf("Sorry, %s is not available.\n%s", intent.Date, s.dateList())
	}

	session.Date = intent.Date
	session.Categories = s.prices.Categories()
	session.CategoryIndex = 0
	session.Tickets = make(map[string]int)
	session.State = StateAwaitingCount

	category, _ := session.CurrentCategory()
	return s.askCount(category)
}

func (s *service) handleCount(session *Session, intent Intent) string {
	if intent.Type == IntentCancel {
		session.Reset()
		return "Booking cancelled. Say \"book\" to start over."
	}

	category, ok := session.CurrentCategory()
	if !ok {
		// Session state got out of sync with the price list
		session.Reset()
		return "Something went wrong with your order, let's start over. Say \"book\" to begin."
	}

	if !intent.HasQuantity {
		return fmt.Sprintf("Please answer with a number. %s", s.askCount(category))
	}

	session.Tickets[category] = intent.Quantity
	session.CategoryIndex++

	if next, ok := session.CurrentCategory(); ok {
		return s.askCount(next)
	}

	total := s.orderTotal(session)
	if total == 0 {
		session.Reset()
		return "You have not selected any tickets. Say \"book\" to start over."
	}

	session.TotalCost = total
	session.State = StateAwaitingConfirm
	return fmt.Sprintf("%s\nShall I confirm this booking? (yes/no)", s.orderSummary(session))
}

func (s *service) handleConfirm(ctx context.Context, session *Session, intent Intent) string {
	switch intent.Type {
	case IntentYes:
		resp, err := s.bookings.CreateBooking(ctx, bookings.CreateBookingRequest{
			Date:    session.Date,
			Tickets: session.Tickets,
		})
		if err != nil {
			s.log.WarnContext(ctx, "chat booking failed",
				slog.String("session_id", session.ID),
				slog.String("error", err.Error()),
			)
			session.Reset()
			return "Sorry, I could not complete that booking. Say \"book\" to try again."
		}

		session.BookingID = resp.ID
		session.PaymentID = resp.PaymentID
		session.TotalCost = resp.TotalCost
		session.State = StateAwaitingPayment
		return fmt.Sprintf("Your booking is reserved! Booking ID: %s. The total is $%.2f. Say \"pay\" to complete the payment.", resp.ID, resp.TotalCost)

	case IntentNo, IntentCancel:
		session.Reset()
		return "Booking cancelled. Say \"book\" to start over."

	default:
		return "Please answer yes or no. Shall I confirm this booking?"
	}
}

func (s *service) handlePayment(ctx context.Context, session *Session, intent Intent) string {
	switch intent.Type {
	case IntentPay, IntentYes:
		if err := s.bookings.SettlePayment(ctx, session.PaymentID); err != nil {
			s.log.WarnContext(ctx, "chat payment failed",
				slog.String("session_id", session.ID),
				slog.String("payment_id", session.PaymentID),
				slog.String("error", err.Error()),
			)
			return "The payment did not go through. Say \"pay\" to try again."
		}
		bookingID := session.BookingID
		session.Reset()
		return fmt.Sprintf("Payment successful! Your booking %s is confirmed. Enjoy your visit!", bookingID)

	case IntentCancel:
		// The booking and its pending payment stay in the store; only the
		// conversation is abandoned.
		session.Reset()
		return "Okay, you can come back and pay later through the payment endpoint. Say \"book\" to start a new booking."

	default:
		return fmt.Sprintf("Your payment of $%.2f is still pending. Say \"pay\" to complete it.", session.TotalCost)
	}
}

func (s *service) askCount(category string) string {
	price, _ := s.prices.Price(category)
	return fmt.Sprintf("How many %s tickets would you like? ($%.2f each, 0 for none)", category, price)
}

func (s *service) dateList() string {
	var b strings.Builder
	b.WriteString("Available visit dates:")
	for _, date := range s.calendar.Dates() {
		b.WriteString("\n- ")
		b.WriteString(date.Format(availability.DateFormat))
	}
	return b.String()
}

func (s *service) priceList() string {
	var b strings.Builder
	b.WriteString("Ticket prices:")
	for _, entry := range s.prices.List() {
		b.WriteString(fmt.Sprintf("\n- %s: $%.2f", entry.Category, entry.Price))
	}
	return b.String()
}

func (s *service) orderSummary(session *Session) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Here is your order for %s:", session.Date))
	for _, category := range session.Categories {
		qty := session.Tickets[category]
		if qty == 0 {
			continue
		}
		price, _ := s.prices.Price(category)
		b.WriteString(fmt.Sprintf("\n- %d x %s ($%.2f each)", qty, category, price))
	}
	b.WriteString(fmt.Sprintf("\nTotal: $%.2f", s.orderTotal(session)))
	return b.String()
}

func (s *service) orderTotal(session *Session) float64 {
	// categories come from the price list itself, so Total cannot fail here
	total, err := s.prices.Total(session.Tickets)
	if err != nil {
		return 0
	}
	return total
}
