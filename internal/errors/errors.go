// Package errors holds the domain error taxonomy shared by the settlement,
// ledger and gateway layers. Handlers translate these into HTTP responses.
package errors

import (
	stderrors "errors"
	"fmt"
)

// DomainError is a coded, human readable failure. Two DomainErrors match under
// errors.Is when their codes are equal, so wrapped instances still match the
// package sentinels.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap returns a copy of sentinel carrying cause. The message may be
// overridden with msg; an empty msg keeps the sentinel's message.
func Wrap(sentinel *DomainError, msg string, cause error) *DomainError {
	if msg == "" {
		msg = sentinel.Message
	}
	return &DomainError{Code: sentinel.Code, Message: msg, Err: cause}
}

// New returns a copy of sentinel with a more specific message.
func New(sentinel *DomainError, msg string) *DomainError {
	return Wrap(sentinel, msg, nil)
}

// CodeOf returns the code of the first DomainError in err's chain, or the
// Unexpected code when there is none.
func CodeOf(err error) string {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Code
	}
	return ErrUnexpected.Code
}

// MessageOf returns the outward message for err.
func MessageOf(err error) string {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
