/*
Package gateway talks to the hosted payment page of the card gateway.

It has two jobs. BuildPaymentRequest turns an order into either a signed
form-post for the gateway or, in test mode, a link to the local mock payment
page. VerifyCallback authenticates the gateway's asynchronous callback and
reduces it to a Verification.

Signing:

Fields are sorted by key, rendered as key=value and joined with "|". The
result is signed with HMAC-SHA256 keyed by the merchant key and sent
hex encoded in CHECKSUMHASH. Every received field other than CHECKSUMHASH
takes part in verification.

Modes:

	test        mock payment page, unsigned success callbacks accepted
	staging     gateway staging host, WEBSTAGING website
	production  gateway production host

The package holds no state; callers pass the Config resolved for the
current operation.
*/
package gateway
