package repositories

import (
	"context"

	"github.com/mahadebmondal004/BrohealBackend/internal/models"
)

// TransactionRepository defines ledger record persistence.
type TransactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	GetByOrderID(ctx context.Context, orderID string) (*models.Transaction, error)
	// Transition moves a pending transaction to status. It reports false,
	// without error, when the transaction was no longer pending.
	Transition(ctx context.Context, id string, status string, update TransitionUpdate) (bool, error)
	ListByPayee(ctx context.Context, payeeID string, limit int) ([]models.Transaction, error)
}

// TransitionUpdate carries the fields written together with a status change.
type TransitionUpdate struct {
	GatewayTransactionID string
	GatewayResponse      models.JSON
}
