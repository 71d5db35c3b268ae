package repositories

import (
	"context"
	"errors"
	"fmt"

	appErrors "github.com/mahadebmondal004/BrohealBackend/internal/errors"
	"github.com/mahadebmondal004/BrohealBackend/internal/models"

	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	if err := r.db.WithContext(ctx).Create(txn).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) GetByOrderID(ctx context.Context, orderID string) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.WithContext(ctx).
		Where("gateway_order_id = ? AND kind = ?", orderID, models.TransactionKindPayment).
		First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &txn, nil
}

func (r *transactionRepository) Transition(ctx context.Context, id string, status string, update TransitionUpdate) (bool, error) {
	fields := map[string]interface{}{"status": status}
	if update.GatewayTransactionID != "" {
		fields["gateway_transaction_id"] = update.GatewayTransactionID
	}
	if update.GatewayResponse != nil {
		fields["gateway_response"] = update.GatewayResponse
	}

	result := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, models.TransactionStatusPending).
		Updates(fields)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update transaction status: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *transactionRepository) ListByPayee(ctx context.Context, payeeID string, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.WithContext(ctx).
		Where("payee_id = ?", payeeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}
