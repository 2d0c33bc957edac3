package bookings

import (
	"time"

	"musetix/internal/availability"
	"musetix/internal/payments"

	"github.com/google/uuid"
)

// Booking defines the main booking structure. Date, ticket lines and total
// cost are fixed at insert time; only payment_status is ever updated.
type Booking struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VisitDate     time.Time       `gorm:"type:date;index;not null" json:"visit_date"`
	TotalCost     float64         `gorm:"not null;check:total_cost >= 0" json:"total_cost"`
	PaymentID     string          `gorm:"type:uuid;uniqueIndex;not null" json:"payment_id"`
	PaymentStatus payments.Status `gorm:"type:varchar(20);check:payment_status IN ('pending', 'completed', 'failed');default:'pending'" json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relationships
	TicketLines []TicketLine `json:"ticket_lines,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

// TicketLine defines one ticket category within a booking. Every category of
// the price list gets a line, including zero-quantity ones, so the stored
// record is a complete snapshot of the request.
type TicketLine struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	Category  string    `gorm:"type:varchar(50);not null" json:"category"`
	Quantity  int       `gorm:"not null;check:quantity >= 0" json:"quantity"`
	UnitPrice float64   `gorm:"not null" json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for TicketLine
func (TicketLine) TableName() string {
	return "ticket_lines"
}

// TicketCounts returns the category -> quantity mapping of this booking
func (b *Booking) TicketCounts() map[string]int {
	counts := make(map[string]int, len(b.TicketLines))
	for _, line := range b.TicketLines {
		counts[line.Category] = line.Quantity
	}
	return counts
}

// IsSettled reports whether the stored record reflects a completed payment
func (b *Booking) IsSettled() bool {
	return b.PaymentStatus == payments.StatusCompleted
}

// FormattedDate returns the visit date in the API wire format
func (b *Booking) FormattedDate() string {
	return b.VisitDate.Format(availability.DateFormat)
}
