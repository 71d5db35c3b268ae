package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	appErrors "github.com/mahadebmondal004/BrohealBackend/internal/errors"
	"github.com/mahadebmondal004/BrohealBackend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{
		db: db,
	}
}

func (r *walletRepository) GetByPayeeID(ctx context.Context, payeeID string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.WithContext(ctx).Where("payee_id = ?", payeeID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) GetOrCreate(ctx context.Context, payeeID string) (*models.Wallet, error) {
	wallet := &models.Wallet{PayeeID: payeeID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "payee_id"}}, DoNothing: true}).
		Create(wallet).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	return r.GetByPayeeID(ctx, payeeID)
}

func (r *walletRepository) LockByPayeeID(ctx context.Context, payeeID string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("payee_id = ?", payeeID).
		First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) Credit(ctx context.Context, walletID string, amount decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ?", walletID).
		Updates(map[string]interface{}{
			"balance":      gorm.Expr("balance + ?", amount),
			"total_earned": gorm.Expr("total_earned + ?", amount),
			"last_updated": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to credit wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrWalletNotFound
	}
	return nil
}

func (r *walletRepository) Debit(ctx context.Context, walletID string, amount decimal.Decimal) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ? AND balance >= ?", walletID, amount).
		Updates(map[string]interface{}{
			"balance":         gorm.Expr("balance - ?", amount),
			"total_withdrawn": gorm.Expr("total_withdrawn + ?", amount),
			"last_updated":    time.Now(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to debit wallet: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}
