/*
Package wallet is the payee side of the ledger.

The wallet service handles:
  - Crediting a payee after a settled payment, split through the
    commission policy
  - Withdrawals, guarded by a conditional balance decrement
  - Balance reads through the redis wallet cache
  - Transaction history

Usage:

	svc := wallet.NewService(store, policy, cacheService, metrics, log)

	// Credit a therapist for a paid booking
	res, err := svc.CreditWallet(ctx, therapistID, bookingID, gross)

	// Same step inside a settlement transaction
	err = store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
	    _, err := svc.CreditWithin(ctx, tx, therapistID, bookingID, gross)
	    return err
	})
	svc.InvalidateCache(ctx, therapistID)

Every balance change runs in a database transaction with the wallet row
locked, and is applied as an SQL increment or a conditional decrement, so
concurrent credits and withdrawals never lose updates and the balance never
goes negative.

Error Handling:

  - ErrInvalidAmount: amount is zero or negative
  - ErrWalletNotFound: withdrawal from a payee without a wallet
  - ErrInsufficientBalance: withdrawal larger than the balance
*/
package wallet
