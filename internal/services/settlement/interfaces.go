package settlement

import (
	"context"

	"github.com/mahadebmondal004/BrohealBackend/internal/repositories"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/gateway"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/wallet"

	"github.com/shopspring/decimal"
)

// Service is the settlement orchestrator.
type Service interface {
	Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error)
	// Reconcile never fails; every problem is reported in the Outcome.
	Reconcile(ctx context.Context, fields gateway.CallbackFields, fallbackOrderID string) Outcome
	VerifyStatus(ctx context.Context, orderID string) (*StatusView, error)
	// RequestPayment is called when the therapist completes the service.
	RequestPayment(ctx context.Context, bookingID, therapistID, origin string) (*RequestPaymentResult, error)
}

// GatewaySettings resolves the gateway configuration for one operation.
type GatewaySettings interface {
	GatewayConfig(ctx context.Context) (gateway.Config, error)
}

// Ledger credits payees inside a settlement transaction.
type Ledger interface {
	CreditWithin(ctx context.Context, tx repositories.Store, payeeID, bookingID string, gross decimal.Decimal) (*wallet.CreditResult, error)
	InvalidateCache(ctx context.Context, payeeID string)
}

// MetricsCollector records reconciliation outcomes.
type MetricsCollector interface {
	RecordSettlement(outcome string)
}

type noopMetrics struct{}

func (noopMetrics) RecordSettlement(string) {}
