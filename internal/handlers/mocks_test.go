package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/mahadebmondal004/BrohealBackend/internal/models"
	"github.com/mahadebmondal004/BrohealBackend/internal/repositories"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/gateway"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/settlement"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/wallet"
	"github.com/mahadebmondal004/BrohealBackend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSettlement struct {
	mock.Mock
}

func (m *MockSettlement) Initiate(ctx context.Context, req settlement.InitiateRequest) (*settlement.InitiateResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*settlement.InitiateResult)
	return res, args.Error(1)
}

func (m *MockSettlement) Reconcile(ctx context.Context, fields gateway.CallbackFields, fallbackOrderID string) settlement.Outcome {
	args := m.Called(ctx, fields, fallbackOrderID)
	return args.Get(0).(settlement.Outcome)
}

func (m *MockSettlement) VerifyStatus(ctx context.Context, orderID string) (*settlement.StatusView, error) {
	args := m.Called(ctx, orderID)
	res, _ := args.Get(0).(*settlement.StatusView)
	return res, args.Error(1)
}

func (m *MockSettlement) RequestPayment(ctx context.Context, bookingID, therapistID, origin string) (*settlement.RequestPaymentResult, error) {
	args := m.Called(ctx, bookingID, therapistID, origin)
	res, _ := args.Get(0).(*settlement.RequestPaymentResult)
	return res, args.Error(1)
}

type MockWallet struct {
	mock.Mock
}

func (m *MockWallet) CreditWallet(ctx context.Context, payeeID, bookingID string, gross decimal.Decimal) (*wallet.CreditResult, error) {
	args := m.Called(ctx, payeeID, bookingID, gross)
	res, _ := args.Get(0).(*wallet.CreditResult)
	return res, args.Error(1)
}

func (m *MockWallet) CreditWithin(ctx context.Context, tx repositories.Store, payeeID, bookingID string, gross decimal.Decimal) (*wallet.CreditResult, error) {
	args := m.Called(ctx, tx, payeeID, bookingID, gross)
	res, _ := args.Get(0).(*wallet.CreditResult)
	return res, args.Error(1)
}

func (m *MockWallet) ProcessWithdrawal(ctx context.Context, payeeID string, amount decimal.Decimal, bank wallet.BankDetails) (*wallet.WithdrawalResult, error) {
	args := m.Called(ctx, payeeID, amount, bank)
	res, _ := args.Get(0).(*wallet.WithdrawalResult)
	return res, args.Error(1)
}

func (m *MockWallet) GetBalance(ctx context.Context, payeeID string) (*models.Wallet, error) {
	args := m.Called(ctx, payeeID)
	res, _ := args.Get(0).(*models.Wallet)
	return res, args.Error(1)
}

func (m *MockWallet) ListTransactions(ctx context.Context, payeeID string, limit int) ([]models.Transaction, error) {
	args := m.Called(ctx, payeeID, limit)
	res, _ := args.Get(0).([]models.Transaction)
	return res, args.Error(1)
}

func (m *MockWallet) InvalidateCache(ctx context.Context, payeeID string) {
	m.Called(ctx, payeeID)
}

type MockSettings struct {
	mock.Mock
}

func (m *MockSettings) FrontendURL(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSettings) PublicSettings(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(map[string]string)
	return res, args.Error(1)
}

// withClaims stands in for the auth middleware.
func withClaims(userID, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(utils.ClaimsKey, &models.UserClaims{UserID: userID, Role: role})
		return c.Next()
	}
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return body
}
