package repositories

import (
	"context"
	"fmt"

	"github.com/mahadebmondal004/BrohealBackend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository reads the admin settings table.
type SettingRepository interface {
	// GetMany returns the stored values for keys. Missing keys are absent
	// from the map.
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)
	ListPublic(ctx context.Context) ([]models.Setting, error)
	// Seed inserts rows whose key is not stored yet and reports how many
	// were created. Existing values are never overwritten.
	Seed(ctx context.Context, rows []models.Setting) (int64, error)
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) GetMany(ctx context.Context, keys ...string) (map[string]string, error) {
	var rows []models.Setting
	if err := r.db.WithContext(ctx).Where("key IN ?", keys).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

func (r *settingRepository) ListPublic(ctx context.Context) ([]models.Setting, error) {
	var rows []models.Setting
	if err := r.db.WithContext(ctx).Where("is_public = ?", true).Order("key").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list public settings: %w", err)
	}
	return rows, nil
}

func (r *settingRepository) Seed(ctx context.Context, rows []models.Setting) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "key"}}, DoNothing: true}).
		Create(&rows)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to seed settings: %w", result.Error)
	}
	return result.RowsAffected, nil
}
