package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/mahadebmondal004/BrohealBackend/internal/services/gateway"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/settlement"
	"github.com/mahadebmondal004/BrohealBackend/internal/utils/response"
	"github.com/mahadebmondal004/BrohealBackend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	settlement  settlement.Service
	settings    SettingsReader
	frontendURL string
	log         *zap.Logger
}

// NewPaymentHandler creates the payment handler. frontendURL is used for
// callback redirects when the settings store cannot be read.
func NewPaymentHandler(svc settlement.Service, settings SettingsReader, frontendURL string, log *zap.Logger) *PaymentHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PaymentHandler{
		settlement:  svc,
		settings:    settings,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		log:         log.Named("payment_handler"),
	}
}

// Initiate starts a payment for one of the caller's bookings.
func (h *PaymentHandler) Initiate(c *fiber.Ctx) error {
	claims, ok := extractUserClaims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var req validation.InitiatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	v := validation.New()
	v.InitiatePayment(&req)
	if !v.Valid() {
		return response.ValidationError(c, v.Errors)
	}

	res, err := h.settlement.Initiate(c.UserContext(), settlement.InitiateRequest{
		BookingID: req.BookingID,
		PayerID:   claims.UserID,
		Origin:    c.Get(fiber.HeaderOrigin),
	})
	if err != nil {
		h.log.Warn("initiate payment failed",
			zap.String("booking_id", req.BookingID),
			zap.String("user_id", claims.UserID),
			zap.Error(err))
		return response.Fail(c, err)
	}

	body := fiber.Map{
		"order_id":       res.OrderID,
		"transaction_id": res.TransactionID,
		"amount":         res.Amount,
		"mock_mode":      res.MockMode,
	}
	if res.MockMode {
		body["payment_url"] = res.MockPaymentURL
	} else {
		body["gateway_url"] = res.GatewayURL
		body["fields"] = res.SignedFields
	}
	return response.Success(c, body)
}

// Callback receives the gateway's redirect or form post and sends the
// customer to the matching frontend page.
func (h *PaymentHandler) Callback(c *fiber.Ctx) error {
	fields := gateway.ParseCallbackFields(callbackParams(c))
	out := h.settlement.Reconcile(c.UserContext(), fields, c.Query(gateway.FieldOrderIDLow))

	base := h.frontendURL
	if h.settings != nil {
		if u, err := h.settings.FrontendURL(c.UserContext()); err == nil && u != "" {
			base = u
		}
	}

	orderID := out.OrderID
	if orderID == "" {
		orderID = "unknown"
	}
	if out.Success {
		return c.Redirect(fmt.Sprintf("%s/payment/success/%s", base, url.PathEscape(orderID)), fiber.StatusFound)
	}
	q := url.Values{}
	q.Set("reason", out.Reason)
	q.Set("code", out.Code)
	return c.Redirect(fmt.Sprintf("%s/payment/failure/%s?%s", base, url.PathEscape(orderID), q.Encode()), fiber.StatusFound)
}

// Verify reports the recorded state of a payment.
func (h *PaymentHandler) Verify(c *fiber.Ctx) error {
	view, err := h.settlement.VerifyStatus(c.UserContext(), c.Params("orderId"))
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, fiber.Map{"transaction": view})
}

// callbackParams collects the callback fields from the query string on GET
// and from the form or JSON body on POST.
func callbackParams(c *fiber.Ctx) map[string]string {
	params := make(map[string]string)
	if c.Method() == fiber.MethodGet {
		c.Request().URI().QueryArgs().VisitAll(func(k, v []byte) {
			params[string(k)] = string(v)
		})
		return params
	}

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		var body map[string]interface{}
		dec := json.NewDecoder(bytes.NewReader(c.Body()))
		dec.UseNumber()
		if err := dec.Decode(&body); err == nil {
			for k, v := range body {
				if v != nil {
					params[k] = fmt.Sprint(v)
				}
			}
		}
		return params
	}

	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		params[string(k)] = string(v)
	})
	return params
}
