package bookings

import (
	"errors"
	"net/http"

	"musetix/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateBooking handles POST /api/v1/book
//
// The response shapes here are contractual: a flat booking object on success,
// {"error": "..."} on failure, with no partial booking created.
func (c *Controller) CreateBooking(ctx *gin.Context) {
	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	booking, err := c.service.CreateBooking(ctx.Request.Context(), req)
	if err != nil {
		if isValidationError(err) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		return
	}

	ctx.JSON(http.StatusCreated, booking)
}

// ProcessPayment handles POST /api/v1/payment/process
//
// The outward contract is binary: {"status": "success"} only when the payment
// completed and the store reflects it, {"status": "failure"} otherwise.
func (c *Controller) ProcessPayment(ctx *gin.Context) {
	var req ProcessPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "failure"})
		return
	}

	if err := c.service.SettlePayment(ctx.Request.Context(), req.PaymentID); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"status": "failure"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success"})
}

// GetBooking handles GET /api/v1/admin/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get booking", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

// ListBookings handles GET /api/v1/admin/bookings
func (c *Controller) ListBookings(ctx *gin.Context) {
	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	page, err := c.service.ListBookings(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list bookings", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", page, nil)
}

// Reconcile handles POST /api/v1/admin/reconcile
func (c *Controller) Reconcile(ctx *gin.Context) {
	report, err := c.service.Reconcile(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Reconciliation failed", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reconciliation completed", report, nil)
}

// isValidationError reports whether the error is user-correctable
func isValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrNegativeQuantity) ||
		errors.Is(err, ErrEmptyBooking)
}
