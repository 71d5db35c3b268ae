package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/mahadebmondal004/BrohealBackend/internal/config"
	"github.com/mahadebmondal004/BrohealBackend/internal/metrics"
	"github.com/mahadebmondal004/BrohealBackend/internal/models"
	"github.com/mahadebmondal004/BrohealBackend/internal/repositories/memory"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/commission"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/gateway"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/notification"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/settings"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/settlement"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/wallet"
	"github.com/mahadebmondal004/BrohealBackend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const jwtSecret = "routes-test"

type testServer struct {
	app   *fiber.App
	store *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	store.PutSetting(settings.KeyGatewayMode, gateway.ModeTest, true)
	store.PutSetting(settings.KeyMerchantKey, "secret", true)
	store.PutBooking(models.Booking{
		ID: "b-1", UserID: "u-1", TherapistID: "t-1", Amount: decimal.NewFromInt(1000),
		Status: models.BookingStatusInProgress, PaymentStatus: models.PaymentStatusPending,
	})

	log := zap.NewNop()
	reg := prometheus.NewRegistry()
	collector := metrics.New(reg)
	settingsSvc := settings.NewService(store.Settings(), config.SettingDefaults{
		CommissionPercentage: "10",
		Mode:                 gateway.ModeStaging,
		FrontendURL:          "https://broheal.test",
	}, log)
	walletSvc := wallet.NewService(store, commission.NewPolicy(settingsSvc), nil, collector, log)
	settlementSvc := settlement.NewService(store, settingsSvc, gateway.NewAdapter(log), walletSvc,
		notification.NewLogNotifier(log), collector, log)

	app := fiber.New()
	SetupRoutes(app, Dependencies{
		Settlement:  settlementSvc,
		Wallet:      walletSvc,
		Settings:    settingsSvc,
		FrontendURL: "https://broheal.test",
		JWTSecret:   jwtSecret,
		Gatherer:    reg,
		Log:         log,
	})
	return &testServer{app: app, store: store}
}

func (s *testServer) do(t *testing.T, method, path, role, userID, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		tok, err := utils.GenerateToken(models.UserClaims{UserID: userID, Role: role}, jwtSecret, time.Minute)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	return resp
}

func body(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestPaymentLifecycle(t *testing.T) {
	s := newTestServer(t)

	// Therapist finishes the service; the booking now awaits payment.
	resp := s.do(t, "PATCH", "/api/therapist/bookings/b-1/complete", models.RoleTherapist, "t-1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	completed := body(t, resp)
	firstOrder := completed["order_id"].(string)
	assert.Contains(t, completed["payment_url"], "/payment/mock?")

	// Customer starts a fresh payment for the same booking.
	resp = s.do(t, "POST", "/api/payments/initiate", models.RoleUser, "u-1", `{"booking_id":"b-1"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	initiated := body(t, resp)
	orderID := initiated["order_id"].(string)
	assert.NotEqual(t, firstOrder, orderID)
	assert.Equal(t, true, initiated["mock_mode"])

	// The mock payment page reports success.
	resp = s.do(t, "GET", "/api/payments/callback?orderId="+url.QueryEscape(orderID)+"&STATUS=TXN_SUCCESS", "", "", "")
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://broheal.test/payment/success/"+orderID, resp.Header.Get("Location"))

	resp = s.do(t, "GET", "/api/payments/verify/"+orderID, models.RoleUser, "u-1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	txn := body(t, resp)["transaction"].(map[string]interface{})
	assert.Equal(t, models.TransactionStatusSuccess, txn["status"])

	resp = s.do(t, "GET", "/api/therapist/wallet", models.RoleTherapist, "t-1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	w, ok := s.store.Wallet("t-1")
	require.True(t, ok)
	assert.True(t, w.Balance.Equal(decimal.NewFromInt(900)))

	resp = s.do(t, "POST", "/api/therapist/wallet/withdraw", models.RoleTherapist, "t-1",
		`{"amount":"1000","bank_details":{"ifsc":"HDFC0001"}}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_BALANCE", body(t, resp)["code"])

	resp = s.do(t, "POST", "/api/therapist/wallet/withdraw", models.RoleTherapist, "t-1",
		`{"amount":"400","bank_details":{"ifsc":"HDFC0001"}}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = s.do(t, "GET", "/api/therapist/wallet/transactions", models.RoleTherapist, "t-1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body(t, resp)["count"])

	b, _ := s.store.Booking("b-1")
	assert.Equal(t, models.BookingStatusCompleted, b.Status)
	assert.True(t, b.Commission.Equal(decimal.NewFromInt(100)))
}

func TestAccessControl(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		role       string
		wantStatus int
	}{
		{"wallet without token", "GET", "/api/therapist/wallet", "", fiber.StatusUnauthorized},
		{"wallet as customer", "GET", "/api/therapist/wallet", models.RoleUser, fiber.StatusForbidden},
		{"initiate as therapist", "POST", "/api/payments/initiate", models.RoleTherapist, fiber.StatusForbidden},
		{"verify without token", "GET", "/api/payments/verify/BRO1", "", fiber.StatusUnauthorized},
		{"public settings", "GET", "/api/public/settings", "", fiber.StatusOK},
		{"health", "GET", "/health", "", fiber.StatusOK},
		{"metrics", "GET", "/metrics", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.do(t, tt.method, tt.path, tt.role, "someone", "")
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestPublicSettingsHideMerchantKey(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, "GET", "/api/public/settings", "", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	got := body(t, resp)["settings"].(map[string]interface{})
	assert.Equal(t, gateway.ModeTest, got[settings.KeyGatewayMode])
	assert.NotContains(t, got, settings.KeyMerchantKey)
}
