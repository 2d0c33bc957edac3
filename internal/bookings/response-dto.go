package bookings

// BookingResponse is the outward shape of a freshly created booking
type BookingResponse struct {
	ID            string         `json:"id"`
	Date          string         `json:"date"`
	Tickets       map[string]int `json:"tickets"`
	TotalCost     float64        `json:"total_cost"`
	PaymentID     string         `json:"payment_id"`
	PaymentStatus string         `json:"payment_status"`
}

// ToBookingResponse converts a stored booking into its response shape
func ToBookingResponse(b *Booking) *BookingResponse {
	return &BookingResponse{
		ID:            b.ID.String(),
		Date:          b.FormattedDate(),
		Tickets:       b.TicketCounts(),
		TotalCost:     b.TotalCost,
		PaymentID:     b.PaymentID,
		PaymentStatus: b.PaymentStatus.String(),
	}
}

// ReconciliationReport summarises one reconciliation sweep
type ReconciliationReport struct {
	Checked  int `json:"checked"`
	Repaired int `json:"repaired"`
	Failed   int `json:"failed"`
}

// PaginatedBookings is the admin listing response
type PaginatedBookings struct {
	Bookings   []Booking `json:"bookings"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}
