package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mahadebmondal004/BrohealBackend/internal/models"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheService_GenerateKey(t *testing.T) {
	s := NewCacheService(nil, time.Minute)
	assert.Equal(t, "wallet:payee:t-1", s.GenerateKey("wallet", "payee", "t-1"))
}

func TestCacheService_WalletRoundTrip(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	s := NewCacheService(client, time.Hour)

	wallet := &models.Wallet{ID: "w-1", PayeeID: "t-1", Balance: decimal.NewFromInt(900)}
	data, err := json.Marshal(wallet)
	require.NoError(t, err)

	mock.ExpectSet("wallet:payee:t-1", data, time.Hour).SetVal("OK")
	require.NoError(t, s.CacheWallet(ctx, wallet))

	mock.ExpectGet("wallet:payee:t-1").SetVal(string(data))
	got, err := s.GetWallet(ctx, "t-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(900)))

	mock.ExpectDel("wallet:payee:t-1").SetVal(1)
	require.NoError(t, s.InvalidateWallet(ctx, "t-1"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheService_GetWalletMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewCacheService(client, time.Hour)

	mock.ExpectGet("wallet:payee:t-2").RedisNil()
	got, err := s.GetWallet(context.Background(), "t-2")

	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheService_GetWalletError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewCacheService(client, time.Hour)

	mock.ExpectGet("wallet:payee:t-3").SetErr(errors.New("connection refused"))
	got, err := s.GetWallet(context.Background(), "t-3")

	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestCacheService_CacheNilWallet(t *testing.T) {
	s := NewCacheService(nil, time.Hour)
	assert.Error(t, s.CacheWallet(context.Background(), nil))
}
