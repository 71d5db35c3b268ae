// Package memory is an in-process repositories.Store for tests and local
// runs without postgres. ExecuteInTransaction is serializable: it holds the
// store lock for the whole callback and commits a copy of the state only
// when the callback succeeds.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	appErrors "github.com/mahadebmondal004/BrohealBackend/internal/errors"
	"github.com/mahadebmondal004/BrohealBackend/internal/models"
	"github.com/mahadebmondal004/BrohealBackend/internal/repositories"

	"github.com/shopspring/decimal"
)

type state struct {
	wallets      map[string]models.Wallet // by payee
	transactions []models.Transaction
	bookings     map[string]models.Booking
	settings     map[string]models.Setting
}

func newState() *state {
	return &state{
		wallets:  map[string]models.Wallet{},
		bookings: map[string]models.Booking{},
		settings: map[string]models.Setting{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.wallets {
		c.wallets[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.settings {
		c.settings[k] = v
	}
	c.transactions = append([]models.Transaction(nil), s.transactions...)
	return c
}

type root struct {
	mu     sync.Mutex
	st     *state
	faults map[string]error
}

// Store implements repositories.Store in memory.
type Store struct {
	root *root
	tx   *state
}

var _ repositories.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{root: &root{st: newState(), faults: map[string]error{}}}
}

// FailOnce makes the next call of op return err. op is named
// "<Repository>.<Method>", for example "Bookings.MarkPaid".
func (s *Store) FailOnce(op string, err error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	s.root.faults[op] = err
}

func (s *Store) Wallets() repositories.WalletRepository           { return walletRepo{s} }
func (s *Store) Transactions() repositories.TransactionRepository { return transactionRepo{s} }
func (s *Store) Bookings() repositories.BookingRepository         { return bookingRepo{s} }
func (s *Store) Settings() repositories.SettingRepository         { return settingRepo{s} }

func (s *Store) ExecuteInTransaction(ctx context.Context, fn func(repositories.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	work := s.root.st.clone()
	if err := fn(&Store{root: s.root, tx: work}); err != nil {
		return err
	}
	s.root.st = work
	return nil
}

// do runs fn against the visible state. Outside a transaction the store
// lock is held for the duration of fn.
func (s *Store) do(op string, fn func(*state) error) error {
	if s.tx != nil {
		if err := s.fault(op); err != nil {
			return err
		}
		return fn(s.tx)
	}
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	if err := s.fault(op); err != nil {
		return err
	}
	return fn(s.root.st)
}

// fault must be called with the root lock held.
func (s *Store) fault(op string) error {
	if err, ok := s.root.faults[op]; ok {
		delete(s.root.faults, op)
		return err
	}
	return nil
}

// Seeding and inspection helpers

func (s *Store) PutBooking(b models.Booking) {
	_ = s.do("seed", func(st *state) error {
		if b.ID == "" {
			_ = b.BeforeCreate(nil)
		}
		st.bookings[b.ID] = b
		return nil
	})
}

func (s *Store) PutSetting(key, value string, public bool) {
	_ = s.do("seed", func(st *state) error {
		st.settings[key] = models.Setting{Key: key, Value: value, IsPublic: public, UpdatedAt: time.Now()}
		return nil
	})
}

func (s *Store) Booking(id string) (models.Booking, bool) {
	var b models.Booking
	var ok bool
	_ = s.do("inspect", func(st *state) error {
		b, ok = st.bookings[id]
		return nil
	})
	return b, ok
}

func (s *Store) Wallet(payeeID string) (models.Wallet, bool) {
	var w models.Wallet
	var ok bool
	_ = s.do("inspect", func(st *state) error {
		w, ok = st.wallets[payeeID]
		return nil
	})
	return w, ok
}

// AllTransactions returns every ledger record in insertion order.
func (s *Store) AllTransactions() []models.Transaction {
	var out []models.Transaction
	_ = s.do("inspect", func(st *state) error {
		out = append(out, st.transactions...)
		return nil
	})
	return out
}

type walletRepo struct{ s *Store }

func (r walletRepo) GetByPayeeID(_ context.Context, payeeID string) (*models.Wallet, error) {
	var out *models.Wallet
	err := r.s.do("Wallets.GetByPayeeID", func(st *state) error {
		w, ok := st.wallets[payeeID]
		if !ok {
			return appErrors.ErrWalletNotFound
		}
		out = &w
		return nil
	})
	return out, err
}

func (r walletRepo) GetOrCreate(_ context.Context, payeeID string) (*models.Wallet, error) {
	var out *models.Wallet
	err := r.s.do("Wallets.GetOrCreate", func(st *state) error {
		w, ok := st.wallets[payeeID]
		if !ok {
			w = models.Wallet{PayeeID: payeeID}
			_ = w.BeforeCreate(nil)
			w.CreatedAt, w.UpdatedAt = time.Now(), time.Now()
			st.wallets[payeeID] = w
		}
		out = &w
		return nil
	})
	return out, err
}

func (r walletRepo) LockByPayeeID(ctx context.Context, payeeID string) (*models.Wallet, error) {
	return r.GetByPayeeID(ctx, payeeID)
}

func (r walletRepo) Credit(_ context.Context, walletID string, amount decimal.Decimal) error {
	return r.s.do("Wallets.Credit", func(st *state) error {
		for k, w := range st.wallets {
			if w.ID == walletID {
				w.Balance = w.Balance.Add(amount)
				w.TotalEarned = w.TotalEarned.Add(amount)
				w.LastUpdated = time.Now()
				st.wallets[k] = w
				return nil
			}
		}
		return appErrors.ErrWalletNotFound
	})
}

func (r walletRepo) Debit(_ context.Context, walletID string, amount decimal.Decimal) (bool, error) {
	applied := false
	err := r.s.do("Wallets.Debit", func(st *state) error {
		for k, w := range st.wallets {
			if w.ID == walletID {
				if w.Balance.LessThan(amount) {
					return nil
				}
				w.Balance = w.Balance.Sub(amount)
				w.TotalWithdrawn = w.TotalWithdrawn.Add(amount)
				w.LastUpdated = time.Now()
				st.wallets[k] = w
				applied = true
				return nil
			}
		}
		return nil
	})
	return applied, err
}

type transactionRepo struct{ s *Store }

func (r transactionRepo) Create(_ context.Context, txn *models.Transaction) error {
	return r.s.do("Transactions.Create", func(st *state) error {
		_ = txn.BeforeCreate(nil)
		if txn.GatewayOrderID != nil {
			for _, existing := range st.transactions {
				if existing.GatewayOrderID != nil && *existing.GatewayOrderID == *txn.GatewayOrderID {
					return errDuplicateOrder
				}
			}
		}
		now := time.Now()
		txn.CreatedAt, txn.UpdatedAt = now, now
		st.transactions = append(st.transactions, *txn)
		return nil
	})
}

func (r transactionRepo) GetByOrderID(_ context.Context, orderID string) (*models.Transaction, error) {
	var out *models.Transaction
	err := r.s.do("Transactions.GetByOrderID", func(st *state) error {
		for _, t := range st.transactions {
			if t.Kind == models.TransactionKindPayment && models.StringValue(t.GatewayOrderID) == orderID {
				t := t
				out = &t
				return nil
			}
		}
		return appErrors.ErrNotFound
	})
	return out, err
}

func (r transactionRepo) Transition(_ context.Context, id, status string, update repositories.TransitionUpdate) (bool, error) {
	applied := false
	err := r.s.do("Transactions.Transition", func(st *state) error {
		for i, t := range st.transactions {
			if t.ID != id {
				continue
			}
			if t.Status != models.TransactionStatusPending {
				return nil
			}
			t.Status = status
			if update.GatewayTransactionID != "" {
				t.GatewayTransactionID = models.StringPtr(update.GatewayTransactionID)
			}
			if update.GatewayResponse != nil {
				t.GatewayResponse = update.GatewayResponse
			}
			t.UpdatedAt = time.Now()
			st.transactions[i] = t
			applied = true
			return nil
		}
		return nil
	})
	return applied, err
}

func (r transactionRepo) ListByPayee(_ context.Context, payeeID string, limit int) ([]models.Transaction, error) {
	var out []models.Transaction
	err := r.s.do("Transactions.ListByPayee", func(st *state) error {
		for i := len(st.transactions) - 1; i >= 0 && len(out) < limit; i-- {
			if models.StringValue(st.transactions[i].PayeeID) == payeeID {
				out = append(out, st.transactions[i])
			}
		}
		return nil
	})
	return out, err
}

type bookingRepo struct{ s *Store }

func (r bookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	var out *models.Booking
	err := r.s.do("Bookings.GetByID", func(st *state) error {
		b, ok := st.bookings[id]
		if !ok {
			return appErrors.New(appErrors.ErrNotFound, "booking not found")
		}
		out = &b
		return nil
	})
	return out, err
}

func (r bookingRepo) FindPayable(_ context.Context, id, payerID string) (*models.Booking, error) {
	var out *models.Booking
	err := r.s.do("Bookings.FindPayable", func(st *state) error {
		b, ok := st.bookings[id]
		if !ok || !b.IsPayableBy(payerID) {
			return appErrors.ErrNotEligible
		}
		out = &b
		return nil
	})
	return out, err
}

func (r bookingRepo) update(op, id string, fn func(*models.Booking)) error {
	return r.s.do(op, func(st *state) error {
		b, ok := st.bookings[id]
		if !ok {
			return appErrors.New(appErrors.ErrNotFound, "booking not found")
		}
		fn(&b)
		b.UpdatedAt = time.Now()
		st.bookings[id] = b
		return nil
	})
}

func (r bookingRepo) AttachOrder(_ context.Context, id, orderID string) error {
	return r.update("Bookings.AttachOrder", id, func(b *models.Booking) {
		b.PaymentOrderID = models.StringPtr(orderID)
		b.PaymentStatus = models.PaymentStatusPending
		b.PaymentMode = models.PaymentModePaytm
	})
}

func (r bookingRepo) updateForOrder(op, id, orderID string, fn func(*models.Booking)) (bool, error) {
	applied := false
	err := r.s.do(op, func(st *state) error {
		b, ok := st.bookings[id]
		if !ok || models.StringValue(b.PaymentOrderID) != orderID || b.PaymentStatus == models.PaymentStatusSuccess {
			return nil
		}
		fn(&b)
		b.UpdatedAt = time.Now()
		st.bookings[id] = b
		applied = true
		return nil
	})
	return applied, err
}

func (r bookingRepo) MarkPaid(_ context.Context, id, orderID, gatewayTxnID string, commission decimal.Decimal) error {
	applied, err := r.updateForOrder("Bookings.MarkPaid", id, orderID, func(b *models.Booking) {
		b.PaymentStatus = models.PaymentStatusSuccess
		b.Status = models.BookingStatusCompleted
		b.PaymentTransactionID = models.StringPtr(gatewayTxnID)
		b.Commission = commission
	})
	if err == nil && !applied {
		err = appErrors.ErrOrderSuperseded
	}
	return err
}

func (r bookingRepo) RevertPayment(_ context.Context, id, orderID string) (bool, error) {
	return r.updateForOrder("Bookings.RevertPayment", id, orderID, func(b *models.Booking) {
		b.PaymentStatus = models.PaymentStatusFailed
		b.Status = models.BookingStatusAwaitingPayment
	})
}

func (r bookingRepo) MarkAwaitingPayment(_ context.Context, id, therapistID string) (*models.Booking, error) {
	var out *models.Booking
	err := r.s.do("Bookings.MarkAwaitingPayment", func(st *state) error {
		b, ok := st.bookings[id]
		if !ok || b.TherapistID != therapistID || !isCompletable(b.Status) {
			return appErrors.New(appErrors.ErrNotFound, "booking not found")
		}
		b.Status = models.BookingStatusAwaitingPayment
		b.PaymentStatus = models.PaymentStatusPending
		b.UpdatedAt = time.Now()
		st.bookings[id] = b
		out = &b
		return nil
	})
	return out, err
}

func isCompletable(status string) bool {
	for _, s := range models.CompletableStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type settingRepo struct{ s *Store }

func (r settingRepo) GetMany(_ context.Context, keys ...string) (map[string]string, error) {
	out := map[string]string{}
	err := r.s.do("Settings.GetMany", func(st *state) error {
		for _, k := range keys {
			if v, ok := st.settings[k]; ok {
				out[k] = v.Value
			}
		}
		return nil
	})
	return out, err
}

func (r settingRepo) ListPublic(_ context.Context) ([]models.Setting, error) {
	var out []models.Setting
	err := r.s.do("Settings.ListPublic", func(st *state) error {
		for _, v := range st.settings {
			if v.IsPublic {
				out = append(out, v)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
		return nil
	})
	return out, err
}

func (r settingRepo) Seed(_ context.Context, rows []models.Setting) (int64, error) {
	var created int64
	err := r.s.do("Settings.Seed", func(st *state) error {
		for _, row := range rows {
			if _, exists := st.settings[row.Key]; exists {
				continue
			}
			row.UpdatedAt = time.Now()
			st.settings[row.Key] = row
			created++
		}
		return nil
	})
	return created, err
}
