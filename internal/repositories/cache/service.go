package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mahadebmondal004/BrohealBackend/internal/models"

	"github.com/redis/go-redis/v9"
)

// CacheService stores JSON snapshots of ledger rows in redis. A miss is
// reported as a nil value with a nil error so callers fall back to the store.
type CacheService struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewCacheService(client redis.UniversalClient, defaultTTL time.Duration) *CacheService {
	return &CacheService{client: client, ttl: defaultTTL}
}

// GenerateKey builds keys of the form entity:field:value.
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

func (s *CacheService) putJSON(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.client.Set(ctx, key, payload, s.ttl).Err()
}

func (s *CacheService) loadJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := s.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *CacheService) walletKey(payeeID string) string {
	return s.GenerateKey("wallet", "payee", payeeID)
}

func (s *CacheService) CacheWallet(ctx context.Context, wallet *models.Wallet) error {
	if wallet == nil {
		return errors.New("cannot cache nil wallet")
	}
	return s.putJSON(ctx, s.walletKey(wallet.PayeeID), wallet)
}

// GetWallet returns the cached wallet, or nil without error on a miss.
func (s *CacheService) GetWallet(ctx context.Context, payeeID string) (*models.Wallet, error) {
	var wallet models.Wallet
	hit, err := s.loadJSON(ctx, s.walletKey(payeeID), &wallet)
	if err != nil || !hit {
		return nil, err
	}
	return &wallet, nil
}

func (s *CacheService) InvalidateWallet(ctx context.Context, payeeID string) error {
	return s.client.Del(ctx, s.walletKey(payeeID)).Err()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}
