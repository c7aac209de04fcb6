package vmerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	wrapped := fmt.Errorf("pc 12 (DIV): %w", ErrDivisionByZero)

	assert.Equal(t, "A2", GetErrorCode(wrapped))
	assert.Equal(t, "DivisionByZero", GetErrorName(wrapped))
	assert.Equal(t, "A2_DivisionByZero", GetErrorCodeWithName(wrapped))
	assert.Equal(t, ErrDivisionByZero, Sentinel(wrapped))

	assert.Equal(t, "", GetErrorCode(nil))
	assert.Equal(t, "No Error", GetErrorName(nil))
	assert.Equal(t, "", GetErrorCode(errors.New("plain")))
	assert.Nil(t, Sentinel(errors.New("plain")))
}

func TestMalformedChain(t *testing.T) {
	err := fmt.Errorf("%w: offset 9: %w", ErrMalformedBytecode, ErrTruncatedOperand)
	assert.True(t, errors.Is(err, ErrMalformedBytecode))
	assert.True(t, errors.Is(err, ErrTruncatedOperand))
	assert.Equal(t, "M1", GetErrorCode(err))
}
