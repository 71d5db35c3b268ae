package gateway

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Config is the gateway configuration resolved for one operation.
type Config struct {
	Enabled      bool
	Mode         string
	MerchantID   string
	MerchantKey  string
	Website      string
	ChannelID    string
	IndustryType string
	CallbackURL  string
	FrontendURL  string
}

func (c Config) IsTestMode() bool {
	return c.Mode == ModeTest
}

// Endpoint is the form-post target for the configured mode.
func (c Config) Endpoint() string {
	if c.Mode == ModeProduction {
		return ProductionHost + ProcessPath
	}
	return StagingHost + ProcessPath
}

// WebsiteName returns the WEBSITE field value. Staging always uses
// WEBSTAGING.
func (c Config) WebsiteName() string {
	if c.Mode == ModeStaging {
		return StagingWebsite
	}
	if c.Website != "" {
		return c.Website
	}
	return DefaultWebsite
}

// PaymentParams describes one order to be paid.
type PaymentParams struct {
	OrderID     string
	CustomerID  string
	Amount      decimal.Decimal
	CallbackURL string
	Origin      string
}

// PaymentRequest is either a mock payment link or a signed form-post.
type PaymentRequest struct {
	OrderID        string
	MockMode       bool
	MockPaymentURL string
	GatewayURL     string
	SignedFields   map[string]string
}

// CallbackFields is the normalized gateway callback.
type CallbackFields struct {
	OrderID              string
	Status               string
	GatewayTransactionID string
	Amount               string
	ResponseMessage      string
	ResponseCode         string
	Checksum             string

	// Raw holds every received field, CHECKSUMHASH included.
	Raw map[string]string
}

// ParseCallbackFields normalizes a raw callback. Any of ORDERID, ORDER_ID
// or orderId is accepted as the order id, in that order of preference.
func ParseCallbackFields(values map[string]string) CallbackFields {
	raw := make(map[string]string, len(values))
	for k, v := range values {
		raw[k] = v
	}
	return CallbackFields{
		OrderID:              firstNonEmpty(raw[FieldOrderIDAlt], raw[FieldOrderID], raw[FieldOrderIDLow]),
		Status:               raw[FieldStatus],
		GatewayTransactionID: raw[FieldTxnID],
		Amount:               strings.TrimSpace(raw[FieldAmount]),
		ResponseMessage:      raw[FieldRespMsg],
		ResponseCode:         raw[FieldRespCode],
		Checksum:             raw[FieldChecksum],
		Raw:                  raw,
	}
}

// SignedPayload returns the fields covered by the checksum.
func (f CallbackFields) SignedPayload() map[string]string {
	out := make(map[string]string, len(f.Raw))
	for k, v := range f.Raw {
		if k == FieldChecksum {
			continue
		}
		out[k] = v
	}
	return out
}

// Verification is the result of authenticating a callback.
type Verification struct {
	Valid                bool
	OrderID              string
	GatewayTransactionID string
	// Amount is only meaningful when HasAmount is set.
	Amount        decimal.Decimal
	HasAmount     bool
	FailureReason string
	Code          string
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
