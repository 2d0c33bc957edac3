package chat

import (
	"strconv"
	"strings"
	"time"
)

// IntentType classifies what the visitor is asking for
type IntentType string

const (
	IntentBook    IntentType = "book"
	IntentPrices  IntentType = "prices"
	IntentDates   IntentType = "dates"
	IntentPay     IntentType = "pay"
	IntentYes     IntentType = "yes"
	IntentNo      IntentType = "no"
	IntentCancel  IntentType = "cancel"
	IntentUnknown IntentType = "unknown"
)

// Intent is the parsed form of a visitor message
type Intent struct {
	Type IntentType

	// Date is set when the message is a valid YYYY-MM-DD date
	Date string

	// Quantity is set when the message is a bare non-negative integer
	Quantity    int
	HasQuantity bool
}

// Parser turns raw visitor messages into intents. Implementations can range
// from keyword matching to a full NLU model; the flow only depends on this
// interface.
type Parser interface {
	Parse(message string) Intent
}

type keywordParser struct{}

// NewKeywordParser returns a parser that matches on keywords, bare integers
// and YYYY-MM-DD dates
func NewKeywordParser() Parser {
	return &keywordParser{}
}

func (p *keywordParser) Parse(message string) Intent {
	msg := strings.ToLower(strings.TrimSpace(message))

	if msg == "" {
		return Intent{Type: IntentUnknown}
	}

	// Structured values take priority over keywords
	if _, err := time.Parse("2006-01-02", msg); err == nil {
		return Intent{Type: IntentUnknown, Date: msg}
	}
	if qty, err := strconv.Atoi(msg); err == nil && qty >= 0 {
		return Intent{Type: IntentUnknown, Quantity: qty, HasQuantity: true}
	}

	switch {
	// "cancel my booking" must not be read as a booking request, and
	// "how much is a ticket" is a price question, not a booking request
	case containsAny(msg, "cancel", "stop", "quit", "restart"):
		return Intent{Type: IntentCancel}
	case containsAny(msg, "price", "cost", "how much", "fee"):
		return Intent{Type: IntentPrices}
	case containsAny(msg, "date", "when", "open", "available"):
		return Intent{Type: IntentDates}
	case containsAny(msg, "pay", "payment", "checkout"):
		return Intent{Type: IntentPay}
	case containsAny(msg, "book", "ticket", "reserve", "visit"):
		return Intent{Type: IntentBook}
	case msg == "yes" || msg == "y" || msg == "confirm" || msg == "ok" || msg == "sure":
		return Intent{Type: IntentYes}
	case msg == "no" || msg == "n":
		return Intent{Type: IntentNo}
	default:
		return Intent{Type: IntentUnknown}
	}
}

func containsAny(msg string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(msg, keyword) {
			return true
		}
	}
	return false
}
