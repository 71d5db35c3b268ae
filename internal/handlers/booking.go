package handlers

import (
	"github.com/mahadebmondal004/BrohealBackend/internal/services/settlement"
	"github.com/mahadebmondal004/BrohealBackend/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// BookingHandler serves therapist booking actions.
type BookingHandler struct {
	settlement settlement.Service
	log        *zap.Logger
}

func NewBookingHandler(svc settlement.Service, log *zap.Logger) *BookingHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingHandler{settlement: svc, log: log.Named("booking_handler")}
}

// Complete marks the service done and sends the customer a payment link.
// The status change stands even when the payment cannot be started; the
// response then carries payment_error and the customer can pay later.
func (h *BookingHandler) Complete(c *fiber.Ctx) error {
	claims, ok := extractUserClaims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	bookingID := c.Params("id")
	res, err := h.settlement.RequestPayment(c.UserContext(), bookingID, claims.UserID, c.Get(fiber.HeaderOrigin))
	if err != nil {
		if res == nil || res.Booking == nil {
			return response.Fail(c, err)
		}
		h.log.Warn("booking completed without payment link",
			zap.String("booking_id", bookingID),
			zap.Error(err))
		return response.Success(c, fiber.Map{
			"booking":       res.Booking,
			"payment_error": err.Error(),
		})
	}

	return response.Success(c, fiber.Map{
		"booking":     res.Booking,
		"order_id":    res.Payment.OrderID,
		"payment_url": res.Payment.PaymentURL(),
	})
}
