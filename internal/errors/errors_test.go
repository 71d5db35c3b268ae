package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("withdraw: %w", Wrap(ErrInsufficientBalance, "", stderrors.New("balance 10 < 20")))

	assert.True(t, stderrors.Is(wrapped, ErrInsufficientBalance))
	assert.False(t, stderrors.Is(wrapped, ErrWalletNotFound))
	assert.Equal(t, "INSUFFICIENT_BALANCE", CodeOf(wrapped))
	assert.Equal(t, "insufficient balance", MessageOf(wrapped))
}

func TestCodeOf_PlainError(t *testing.T) {
	err := stderrors.New("boom")

	assert.Equal(t, ErrUnexpected.Code, CodeOf(err))
	assert.Equal(t, "boom", MessageOf(err))
	assert.Equal(t, "", MessageOf(nil))
}

func TestNew_KeepsCode(t *testing.T) {
	err := New(ErrNotFound, "wallet transaction not found")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "wallet transaction not found", err.Error())
}
