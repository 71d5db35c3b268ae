package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that take part in a settlement. Inside
// ExecuteInTransaction every repository of the Store passed to fn shares the
// same database transaction.
type Store interface {
	Wallets() WalletRepository
	Transactions() TransactionRepository
	Bookings() BookingRepository
	Settings() SettingRepository

	ExecuteInTransaction(ctx context.Context, fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Wallets() WalletRepository           { return NewWalletRepository(s.db) }
func (s *gormStore) Transactions() TransactionRepository { return NewTransactionRepository(s.db) }
func (s *gormStore) Bookings() BookingRepository         { return NewBookingRepository(s.db) }
func (s *gormStore) Settings() SettingRepository         { return NewSettingRepository(s.db) }

func (s *gormStore) ExecuteInTransaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
