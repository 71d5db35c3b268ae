package handlers

import (
	"errors"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	appErrors "github.com/mahadebmondal004/BrohealBackend/internal/errors"
	"github.com/mahadebmondal004/BrohealBackend/internal/models"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/gateway"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/settlement"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPaymentApp(svc *MockSettlement, settings *MockSettings) *fiber.App {
	h := NewPaymentHandler(svc, settings, "http://fallback.test/", nil)
	app := fiber.New()
	app.Post("/initiate", withClaims("u-1", models.RoleUser), h.Initiate)
	app.Post("/initiate-anon", h.Initiate)
	app.Get("/callback", h.Callback)
	app.Post("/callback", h.Callback)
	app.Get("/verify/:orderId", h.Verify)
	return app
}

func TestPaymentHandler_Initiate(t *testing.T) {
	svc := new(MockSettlement)
	svc.On("Initiate", mock.Anything, settlement.InitiateRequest{BookingID: "b-1", PayerID: "u-1", Origin: "https://app.broheal.test"}).
		Return(&settlement.InitiateResult{
			OrderID:       "BRO1",
			TransactionID: "txn-1",
			Amount:        decimal.NewFromInt(1000),
			GatewayURL:    "https://securegw-stage.paytm.in/order/process",
			SignedFields:  map[string]string{"ORDER_ID": "BRO1", "CHECKSUMHASH": "abc"},
		}, nil)
	app := newPaymentApp(svc, new(MockSettings))

	req := httptest.NewRequest("POST", "/initiate", strings.NewReader(`{"booking_id":"b-1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://app.broheal.test")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "BRO1", body["order_id"])
	assert.Equal(t, "https://securegw-stage.paytm.in/order/process", body["gateway_url"])
	assert.Equal(t, false, body["mock_mode"])
	assert.NotContains(t, body, "payment_url")
	svc.AssertExpectations(t)
}

func TestPaymentHandler_InitiateErrors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		svcErr     error
		wantStatus int
	}{
		{"not eligible", "/initiate", `{"booking_id":"b-1"}`, appErrors.ErrNotEligible, fiber.StatusNotFound},
		{"gateway disabled", "/initiate", `{"booking_id":"b-1"}`, appErrors.ErrGatewayUnavailable, fiber.StatusServiceUnavailable},
		{"store failure", "/initiate", `{"booking_id":"b-1"}`, errors.New("db down"), fiber.StatusInternalServerError},
		{"missing booking id", "/initiate", `{}`, nil, fiber.StatusBadRequest},
		{"malformed body", "/initiate", `{`, nil, fiber.StatusBadRequest},
		{"no claims", "/initiate-anon", `{"booking_id":"b-1"}`, nil, fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockSettlement)
			if tt.svcErr != nil {
				svc.On("Initiate", mock.Anything, mock.Anything).Return(nil, tt.svcErr)
			}
			app := newPaymentApp(svc, new(MockSettings))

			req := httptest.NewRequest("POST", tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, false, decodeBody(t, resp)["success"])
			svc.AssertExpectations(t)
		})
	}
}

func TestPaymentHandler_CallbackSuccessRedirect(t *testing.T) {
	svc := new(MockSettlement)
	settings := new(MockSettings)
	settings.On("FrontendURL", mock.Anything).Return("https://broheal.test", nil)
	svc.On("Reconcile", mock.Anything, mock.MatchedBy(func(f gateway.CallbackFields) bool {
		return f.OrderID == "BRO1" && f.Status == gateway.StatusTxnSuccess && f.Checksum == "abc"
	}), "").Return(settlement.Outcome{Success: true, OrderID: "BRO1"})
	app := newPaymentApp(svc, settings)

	resp, err := app.Test(httptest.NewRequest("GET", "/callback?ORDERID=BRO1&STATUS=TXN_SUCCESS&CHECKSUMHASH=abc", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://broheal.test/payment/success/BRO1", resp.Header.Get("Location"))
	svc.AssertExpectations(t)
}

func TestPaymentHandler_CallbackFailureRedirect(t *testing.T) {
	svc := new(MockSettlement)
	settings := new(MockSettings)
	settings.On("FrontendURL", mock.Anything).Return("", errors.New("db down"))
	svc.On("Reconcile", mock.Anything, mock.MatchedBy(func(f gateway.CallbackFields) bool {
		return f.OrderID == "BRO2" && f.ResponseCode == "227"
	}), "BRO2").Return(settlement.Outcome{OrderID: "BRO2", Reason: "Bank declined", Code: "227"})
	app := newPaymentApp(svc, settings)

	form := url.Values{"ORDERID": {"BRO2"}, "STATUS": {"TXN_FAILURE"}, "RESPCODE": {"227"}, "RESPMSG": {"Bank declined"}}
	req := httptest.NewRequest("POST", "/callback?orderId=BRO2", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "fallback.test", loc.Host)
	assert.Equal(t, "/payment/failure/BRO2", loc.Path)
	assert.Equal(t, "Bank declined", loc.Query().Get("reason"))
	assert.Equal(t, "227", loc.Query().Get("code"))
}

func TestPaymentHandler_CallbackJSONBody(t *testing.T) {
	svc := new(MockSettlement)
	settings := new(MockSettings)
	settings.On("FrontendURL", mock.Anything).Return("https://broheal.test", nil)
	svc.On("Reconcile", mock.Anything, mock.MatchedBy(func(f gateway.CallbackFields) bool {
		return f.OrderID == "BRO3" && f.Amount == "1000.00"
	}), "").Return(settlement.Outcome{Success: true, OrderID: "BRO3"})
	app := newPaymentApp(svc, settings)

	req := httptest.NewRequest("POST", "/callback", strings.NewReader(`{"ORDERID":"BRO3","STATUS":"TXN_SUCCESS","TXNAMOUNT":"1000.00"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "https://broheal.test/payment/success/BRO3", resp.Header.Get("Location"))
}

func TestPaymentHandler_CallbackUnknownOrder(t *testing.T) {
	svc := new(MockSettlement)
	settings := new(MockSettings)
	settings.On("FrontendURL", mock.Anything).Return("https://broheal.test", nil)
	svc.On("Reconcile", mock.Anything, mock.Anything, "").
		Return(settlement.Outcome{Reason: settlement.ReasonMissingOrderID})
	app := newPaymentApp(svc, settings)

	resp, err := app.Test(httptest.NewRequest("GET", "/callback", nil))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), "https://broheal.test/payment/failure/unknown?"))
}

func TestPaymentHandler_Verify(t *testing.T) {
	svc := new(MockSettlement)
	svc.On("VerifyStatus", mock.Anything, "BRO1").Return(&settlement.StatusView{
		OrderID: "BRO1", GatewayTransactionID: "GW1", Status: models.TransactionStatusSuccess,
		Amount: decimal.NewFromInt(1000), BookingID: "b-1",
	}, nil)
	svc.On("VerifyStatus", mock.Anything, "BRO404").Return(nil, appErrors.ErrNotFound)
	app := newPaymentApp(svc, new(MockSettings))

	resp, err := app.Test(httptest.NewRequest("GET", "/verify/BRO1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	txn := decodeBody(t, resp)["transaction"].(map[string]interface{})
	assert.Equal(t, "GW1", txn["transaction_id"])
	assert.Equal(t, "b-1", txn["booking_id"])

	resp, err = app.Test(httptest.NewRequest("GET", "/verify/BRO404", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "transaction not found", decodeBody(t, resp)["message"])
}
