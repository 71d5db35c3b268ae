/*
Package settlement drives a booking payment from initiation to the
reconciled gateway callback.

A payment transaction is created pending when the customer starts paying.
The gateway callback moves it to success or failed exactly once; the move is
a conditional update, so duplicate or racing callbacks become no-ops that
report the recorded outcome.

On success the transaction, the booking, the therapist's wallet credit and
the commission are written in one database transaction. On failure the
booking is put back to awaiting payment, but only by the call that failed
the transaction. Notifications go out after commit and never affect the
outcome.
*/
package settlement
