package bookings

type CreateBookingRequest struct {
	Date    string         `json:"date" binding:"required,visitdate"`
	Tickets map[string]int `json:"tickets" binding:"required,dive,min=0"`
}

type ProcessPaymentRequest struct {
	PaymentID string `json:"payment_id" binding:"required,uuid"`
}

type BookingListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=pending completed failed"`
	Date   string `form:"date" binding:"omitempty,visitdate"`
}
