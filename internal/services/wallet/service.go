package wallet

import (
	"context"
	"fmt"
	"time"

	appErrors "github.com/mahadebmondal004/BrohealBackend/internal/errors"
	"github.com/mahadebmondal004/BrohealBackend/internal/models"
	"github.com/mahadebmondal004/BrohealBackend/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type service struct {
	store   repositories.Store
	policy  Splitter
	cache   CacheOperator
	metrics MetricsCollector
	log     *zap.Logger
}

// NewService creates a new wallet service
func NewService(
	store repositories.Store,
	policy Splitter,
	cache CacheOperator,
	metrics MetricsCollector,
	log *zap.Logger,
) Service {
	if store == nil {
		panic("store is required")
	}
	if policy == nil {
		panic("commission policy is required")
	}

	// Cache and metrics are optional
	if cache == nil {
		cache = noopCache{}
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &service{
		store:   store,
		policy:  policy,
		cache:   cache,
		metrics: metrics,
		log:     log.Named("wallet"),
	}
}

func (s *service) CreditWallet(ctx context.Context, payeeID, bookingID string, gross decimal.Decimal) (*CreditResult, error) {
	var result *CreditResult
	err := s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		var err error
		result, err = s.CreditWithin(ctx, tx, payeeID, bookingID, gross)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.InvalidateCache(ctx, payeeID)
	return result, nil
}

func (s *service) CreditWithin(ctx context.Context, tx repositories.Store, payeeID, bookingID string, gross decimal.Decimal) (*CreditResult, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(opCredit, time.Since(start)) }()

	if payeeID == "" {
		return nil, fmt.Errorf("payee id is required")
	}

	split, err := s.policy.Split(ctx, gross)
	if err != nil {
		s.metrics.RecordError(opCredit, appErrors.CodeOf(err))
		return nil, err
	}

	wallets := tx.Wallets()
	if _, err := wallets.GetOrCreate(ctx, payeeID); err != nil {
		return nil, err
	}
	wallet, err := wallets.LockByPayeeID(ctx, payeeID)
	if err != nil {
		return nil, err
	}
	if err := wallets.Credit(ctx, wallet.ID, split.PayeeAmount); err != nil {
		return nil, err
	}

	for _, entry := range []struct {
		kind   string
		amount decimal.Decimal
	}{
		{models.TransactionKindWalletCredit, split.PayeeAmount},
		{models.TransactionKindCommission, split.Commission},
	} {
		txn := &models.Transaction{
			BookingID: models.StringPtr(bookingID),
			PayeeID:   models.StringPtr(payeeID),
			Kind:      entry.kind,
			Amount:    entry.amount,
			Status:    models.TransactionStatusSuccess,
		}
		if err := tx.Transactions().Create(ctx, txn); err != nil {
			return nil, err
		}
	}

	updated, err := wallets.GetByPayeeID(ctx, payeeID)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordOperationResult(opCredit, "success")
	s.metrics.RecordVolume(models.TransactionKindWalletCredit, split.PayeeAmount)
	s.metrics.RecordVolume(models.TransactionKindCommission, split.Commission)
	s.log.Info("wallet credited",
		zap.String("payee_id", payeeID),
		zap.String("booking_id", bookingID),
		zap.String("credited", split.PayeeAmount.String()),
		zap.String("commission", split.Commission.String()))

	return &CreditResult{
		Wallet:     updated,
		Credited:   split.PayeeAmount,
		Commission: split.Commission,
		Rate:       split.Rate,
	}, nil
}

func (s *service) ProcessWithdrawal(ctx context.Context, payeeID string, amount decimal.Decimal, bank BankDetails) (*WithdrawalResult, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(opWithdraw, time.Since(start)) }()

	if !amount.IsPositive() {
		s.metrics.RecordError(opWithdraw, appErrors.ErrInvalidAmount.Code)
		return nil, appErrors.ErrInvalidAmount
	}

	result := &WithdrawalResult{}
	err := s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		wallet, err := tx.Wallets().LockByPayeeID(ctx, payeeID)
		if err != nil {
			return err
		}

		applied, err := tx.Wallets().Debit(ctx, wallet.ID, amount)
		if err != nil {
			return err
		}
		if !applied {
			return appErrors.ErrInsufficientBalance
		}

		txn := &models.Transaction{
			PayeeID:         models.StringPtr(payeeID),
			Kind:            models.TransactionKindWithdrawal,
			Amount:          amount,
			Status:          models.TransactionStatusSuccess,
			GatewayResponse: models.JSON{"bank_details": map[string]string(bank)},
		}
		if err := tx.Transactions().Create(ctx, txn); err != nil {
			return err
		}
		result.Transaction = txn

		result.Wallet, err = tx.Wallets().GetByPayeeID(ctx, payeeID)
		return err
	})
	if err != nil {
		s.metrics.RecordError(opWithdraw, appErrors.CodeOf(err))
		s.log.Info("withdrawal rejected",
			zap.String("payee_id", payeeID),
			zap.String("amount", amount.String()),
			zap.Error(err))
		return nil, err
	}

	s.InvalidateCache(ctx, payeeID)
	s.metrics.RecordOperationResult(opWithdraw, "success")
	s.metrics.RecordVolume(models.TransactionKindWithdrawal, amount)
	return result, nil
}

func (s *service) GetBalance(ctx context.Context, payeeID string) (*models.Wallet, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(opBalance, time.Since(start)) }()

	if wallet := s.cachedWallet(ctx, payeeID); wallet != nil {
		return wallet, nil
	}

	wallet, err := s.store.Wallets().GetOrCreate(ctx, payeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if !s.storeWallet(ctx, wallet) {
		return wallet, nil
	}

	// A mutation may have committed and invalidated between the read and the
	// cache write. Re-read so a stale snapshot does not outlive the TTL.
	current, err := s.store.Wallets().GetByPayeeID(ctx, payeeID)
	if err != nil {
		s.InvalidateCache(ctx, payeeID)
		return wallet, nil
	}
	if !sameTotals(wallet, current) {
		s.InvalidateCache(ctx, payeeID)
		return current, nil
	}
	return wallet, nil
}

func (s *service) ListTransactions(ctx context.Context, payeeID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return s.store.Transactions().ListByPayee(ctx, payeeID, limit)
}
