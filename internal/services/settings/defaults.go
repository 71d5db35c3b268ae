package settings

import (
	"github.com/mahadebmondal004/BrohealBackend/internal/config"
	"github.com/mahadebmondal004/BrohealBackend/internal/models"
)

// DefaultSettings returns the settings rows an empty table is seeded with,
// taken from the environment defaults. Keys without a default value are
// left out so the environment keeps applying to them.
func DefaultSettings(d config.SettingDefaults) []models.Setting {
	candidates := []models.Setting{
		{Key: KeyCommissionPercentage, Value: d.CommissionPercentage, Type: models.SettingTypeNumber, IsPublic: true},
		{Key: KeyGatewayEnabled, Value: "true", Type: models.SettingTypeBoolean, IsPublic: true},
		{Key: KeyGatewayMode, Value: d.Mode, Type: models.SettingTypeString, IsPublic: true},
		{Key: KeyGatewayWebsite, Value: d.Website, Type: models.SettingTypeString},
		{Key: KeyMerchantID, Value: d.MerchantID, Type: models.SettingTypeString},
		{Key: KeyMerchantKey, Value: d.MerchantKey, Type: models.SettingTypeString},
		{Key: KeyCallbackURL, Value: d.CallbackURL, Type: models.SettingTypeString},
		{Key: KeyFrontendURL, Value: d.FrontendURL, Type: models.SettingTypeString, IsPublic: true},
	}

	out := make([]models.Setting, 0, len(candidates))
	for _, s := range candidates {
		if s.Value == "" {
			continue
		}
		if secretKeys[s.Key] {
			s.IsPublic = false
		}
		out = append(out, s)
	}
	return out
}
