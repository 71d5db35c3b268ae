package wallet

import (
	"context"

	"github.com/mahadebmondal004/BrohealBackend/internal/models"

	"go.uber.org/zap"
)

type noopCache struct{}

func (noopCache) GetWallet(context.Context, string) (*models.Wallet, error) { return nil, nil }
func (noopCache) CacheWallet(context.Context, *models.Wallet) error         { return nil }
func (noopCache) InvalidateWallet(context.Context, string) error            { return nil }

// cachedWallet returns the cached wallet or nil. Cache errors count as a
// miss.
func (s *service) cachedWallet(ctx context.Context, payeeID string) *models.Wallet {
	wallet, err := s.cache.GetWallet(ctx, payeeID)
	if err != nil {
		s.log.Warn("wallet cache read failed", zap.String("payee_id", payeeID), zap.Error(err))
		wallet = nil
	}
	if wallet == nil {
		s.metrics.RecordCacheMiss()
		return nil
	}
	s.metrics.RecordCacheHit()
	return wallet
}

// storeWallet reports whether the snapshot reached the cache.
func (s *service) storeWallet(ctx context.Context, wallet *models.Wallet) bool {
	if err := s.cache.CacheWallet(ctx, wallet); err != nil {
		s.log.Warn("wallet cache write failed", zap.String("payee_id", wallet.PayeeID), zap.Error(err))
		return false
	}
	return true
}

// sameTotals compares the ledger columns. Every credit or withdrawal moves
// total_earned or total_withdrawn, so equal totals mean no mutation landed.
func sameTotals(a, b *models.Wallet) bool {
	return a.Balance.Equal(b.Balance) &&
		a.TotalEarned.Equal(b.TotalEarned) &&
		a.TotalWithdrawn.Equal(b.TotalWithdrawn)
}

func (s *service) InvalidateCache(ctx context.Context, payeeID string) {
	if err := s.cache.InvalidateWallet(ctx, payeeID); err != nil {
		s.log.Warn("wallet cache invalidation failed", zap.String("payee_id", payeeID), zap.Error(err))
	}
}
