package gateway

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	appErrors "github.com/mahadebmondal004/BrohealBackend/internal/errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Adapter builds gateway requests and verifies callbacks.
type Adapter interface {
	BuildPaymentRequest(cfg Config, params PaymentParams) (*PaymentRequest, error)
	VerifyCallback(cfg Config, fields CallbackFields) Verification
}

type adapter struct {
	log *zap.Logger
	now func() time.Time
}

func NewAdapter(log *zap.Logger) Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &adapter{log: log.Named("gateway"), now: time.Now}
}

func (a *adapter) BuildPaymentRequest(cfg Config, params PaymentParams) (*PaymentRequest, error) {
	if params.OrderID == "" {
		return nil, fmt.Errorf("order id is required")
	}
	if !params.Amount.IsPositive() {
		return nil, appErrors.ErrInvalidAmount
	}
	amount := params.Amount.StringFixed(2)

	if cfg.IsTestMode() {
		base := firstNonEmpty(params.Origin, cfg.FrontendURL, DefaultFrontendURL)
		q := url.Values{}
		q.Set("orderId", params.OrderID)
		q.Set("amount", amount)
		return &PaymentRequest{
			OrderID:        params.OrderID,
			MockMode:       true,
			MockPaymentURL: strings.TrimRight(base, "/") + "/payment/mock?" + q.Encode(),
		}, nil
	}

	if cfg.MerchantID == "" || cfg.MerchantKey == "" {
		return nil, appErrors.New(appErrors.ErrGatewayUnavailable, "payment gateway credentials missing")
	}
	callbackBase := firstNonEmpty(params.CallbackURL, cfg.CallbackURL)
	if callbackBase == "" {
		return nil, appErrors.New(appErrors.ErrGatewayUnavailable, "payment callback url missing")
	}

	fields := map[string]string{
		FieldMID:          cfg.MerchantID,
		FieldWebsite:      cfg.WebsiteName(),
		FieldIndustryType: firstNonEmpty(cfg.IndustryType, DefaultIndustryType),
		FieldChannelID:    firstNonEmpty(cfg.ChannelID, DefaultChannelID),
		FieldOrderID:      params.OrderID,
		FieldCustomerID:   params.CustomerID,
		FieldTxnAmount:    amount,
		FieldCallbackURL:  callbackURL(callbackBase, params.OrderID),
	}
	fields[FieldChecksum] = Sign(fields, cfg.MerchantKey)

	return &PaymentRequest{
		OrderID:      params.OrderID,
		GatewayURL:   cfg.Endpoint(),
		SignedFields: fields,
	}, nil
}

func (a *adapter) VerifyCallback(cfg Config, f CallbackFields) Verification {
	v := Verification{OrderID: f.OrderID, Code: f.ResponseCode}
	if f.Amount != "" {
		if amt, err := decimal.NewFromString(f.Amount); err == nil {
			v.Amount, v.HasAmount = amt, true
		}
	}

	// The mock payment page posts unsigned results.
	if cfg.IsTestMode() && f.Checksum == "" {
		if f.Status != StatusTxnSuccess {
			v.FailureReason = firstNonEmpty(f.ResponseMessage, ReasonPaymentFailed)
			return v
		}
		v.Valid = true
		v.GatewayTransactionID = firstNonEmpty(f.GatewayTransactionID, fmt.Sprintf("TXN%d", a.now().UnixMilli()))
		return v
	}

	if f.Checksum == "" {
		v.FailureReason = ReasonMissingChecksum
		return v
	}
	if !VerifySignature(f.SignedPayload(), cfg.MerchantKey, f.Checksum) {
		a.log.Warn("callback checksum mismatch", zap.String("order_id", f.OrderID))
		v.FailureReason = ReasonInvalidChecksum
		return v
	}
	if f.Status != StatusTxnSuccess {
		v.FailureReason = firstNonEmpty(f.ResponseMessage, ReasonPaymentFailed)
		return v
	}

	v.Valid = true
	v.GatewayTransactionID = f.GatewayTransactionID
	return v
}

func callbackURL(base, orderID string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "orderId=" + url.QueryEscape(orderID)
}
