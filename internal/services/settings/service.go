// Package settings resolves the admin editable configuration. Values are
// read from the settings table on every call and fall back to the process
// defaults, so an admin change applies to the next operation.
package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mahadebmondal004/BrohealBackend/internal/config"
	"github.com/mahadebmondal004/BrohealBackend/internal/repositories"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/gateway"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Setting keys
const (
	KeyCommissionPercentage = "commission_percentage"
	KeyMerchantID           = "paytm_merchant_id"
	KeyMerchantKey          = "paytm_merchant_key"
	KeyGatewayEnabled       = "paytm_enabled"
	KeyGatewayMode          = "paytm_mode"
	KeyGatewayWebsite       = "paytm_website"
	KeyCallbackURL          = "paytm_callback_url"
	KeyFrontendURL          = "frontend_url"
)

var gatewayKeys = []string{
	KeyMerchantID,
	KeyMerchantKey,
	KeyGatewayEnabled,
	KeyGatewayMode,
	KeyGatewayWebsite,
	KeyCallbackURL,
	KeyFrontendURL,
}

// secretKeys never leave the service, whatever their is_public flag says.
var secretKeys = map[string]bool{
	KeyMerchantKey: true,
}

var hundred = decimal.NewFromInt(100)

// DefaultCommissionRate applies when neither the table nor the
// environment holds a usable rate.
var DefaultCommissionRate = decimal.NewFromInt(10)

type Service interface {
	// CommissionRate returns the platform commission as a percentage in
	// [0, 100].
	CommissionRate(ctx context.Context) (decimal.Decimal, error)
	GatewayConfig(ctx context.Context) (gateway.Config, error)
	FrontendURL(ctx context.Context) (string, error)
	PublicSettings(ctx context.Context) (map[string]string, error)
}

type service struct {
	repo     repositories.SettingRepository
	defaults config.SettingDefaults
	log      *zap.Logger
}

func NewService(repo repositories.SettingRepository, defaults config.SettingDefaults, log *zap.Logger) Service {
	if repo == nil {
		panic("settings repository is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &service{repo: repo, defaults: defaults, log: log.Named("settings")}
}

func (s *service) CommissionRate(ctx context.Context) (decimal.Decimal, error) {
	fallback := s.defaultRate()

	values, err := s.repo.GetMany(ctx, KeyCommissionPercentage)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read commission rate: %w", err)
	}
	raw, ok := values[KeyCommissionPercentage]
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}

	rate, err := parseRate(raw)
	if err != nil {
		s.log.Warn("ignoring stored commission rate",
			zap.String("value", raw),
			zap.Error(err),
			zap.String("default", fallback.String()))
		return fallback, nil
	}
	return rate, nil
}

func (s *service) defaultRate() decimal.Decimal {
	rate, err := parseRate(s.defaults.CommissionPercentage)
	if err != nil {
		return DefaultCommissionRate
	}
	return rate
}

func parseRate(raw string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number: %w", err)
	}
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return decimal.Zero, fmt.Errorf("rate %s outside [0, 100]", rate)
	}
	return rate, nil
}

func (s *service) GatewayConfig(ctx context.Context) (gateway.Config, error) {
	values, err := s.repo.GetMany(ctx, gatewayKeys...)
	if err != nil {
		return gateway.Config{}, fmt.Errorf("failed to read gateway settings: %w", err)
	}

	pick := func(key, fallback string) string {
		if v := strings.TrimSpace(values[key]); v != "" {
			return v
		}
		return fallback
	}

	mode := pick(KeyGatewayMode, s.defaults.Mode)
	switch mode {
	case gateway.ModeTest, gateway.ModeStaging, gateway.ModeProduction:
	default:
		s.log.Warn("unknown gateway mode, using staging", zap.String("mode", mode))
		mode = gateway.ModeStaging
	}

	return gateway.Config{
		Enabled:      parseEnabled(values[KeyGatewayEnabled]),
		Mode:         mode,
		MerchantID:   pick(KeyMerchantID, s.defaults.MerchantID),
		MerchantKey:  pick(KeyMerchantKey, s.defaults.MerchantKey),
		Website:      pick(KeyGatewayWebsite, s.defaults.Website),
		ChannelID:    s.defaults.ChannelID,
		IndustryType: s.defaults.IndustryType,
		CallbackURL:  pick(KeyCallbackURL, s.defaults.CallbackURL),
		FrontendURL:  pick(KeyFrontendURL, s.defaults.FrontendURL),
	}, nil
}

// parseEnabled treats anything but an explicit false as enabled.
func parseEnabled(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return true
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return enabled
}

func (s *service) FrontendURL(ctx context.Context) (string, error) {
	values, err := s.repo.GetMany(ctx, KeyFrontendURL)
	if err != nil {
		return "", fmt.Errorf("failed to read frontend url: %w", err)
	}
	if v := strings.TrimSpace(values[KeyFrontendURL]); v != "" {
		return strings.TrimRight(v, "/"), nil
	}
	return strings.TrimRight(s.defaults.FrontendURL, "/"), nil
}

func (s *service) PublicSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.repo.ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		if secretKeys[row.Key] {
			continue
		}
		out[row.Key] = row.Value
	}
	return out, nil
}
