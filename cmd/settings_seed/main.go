// Command settings_seed writes the environment defaults into an empty
// settings table so admins can edit them at runtime. Rows that already
// exist are left untouched.
package main

import (
	"context"
	"time"

	"github.com/mahadebmondal004/BrohealBackend/internal/config"
	"github.com/mahadebmondal004/BrohealBackend/internal/logger"
	"github.com/mahadebmondal004/BrohealBackend/internal/repositories"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/settings"

	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	db, err := repositories.InitDB(cfg.DB, log)
	if err != nil {
		log.Fatal("database unavailable", zap.Error(err))
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			log.Warn("failed to close database connection", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows := settings.DefaultSettings(cfg.Defaults)
	created, err := repositories.NewSettingRepository(db).Seed(ctx, rows)
	if err != nil {
		log.Fatal("failed to seed settings", zap.Error(err))
	}

	log.Info("settings seeded",
		zap.Int("candidates", len(rows)),
		zap.Int64("created", created))
}
