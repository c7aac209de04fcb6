package outcome

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jam-duna/fraudproof/common"
	"github.com/jam-duna/fraudproof/interpreter"
	"github.com/jam-duna/fraudproof/vmerrors"
)

func TestExtract(t *testing.T) {
	halted := func(stack ...common.Word) *interpreter.Result {
		return &interpreter.Result{State: interpreter.HALT, Stack: stack}
	}
	panicked := &interpreter.Result{State: interpreter.PANIC, Reason: vmerrors.ErrDivisionByZero, Stack: []common.Word{1}}

	cases := []struct {
		name    string
		r       *interpreter.Result
		lowByte uint8
		verdict uint8
	}{
		{"true", halted(1), 1, 1},
		{"false", halted(0), 0, 0},
		{"wide", halted(5, 0x1234), 0x34, 1},
		{"low byte zero", halted(0x100), 0, 1},
		{"empty stack", halted(), 13, 13},
		{"panic", panicked, 13, 13},
		{"nil", nil, 13, 13},
	}
	low := LowByte{FailureCode: DefaultFailureCode}
	verdict := Verdict{FailureCode: DefaultFailureCode}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.lowByte, low.Extract(tc.r))
			assert.Equal(t, tc.verdict, verdict.Extract(tc.r))
		})
	}
}

func TestFromConfig(t *testing.T) {
	p, err := FromConfig("", 13)
	require.NoError(t, err)
	require.Equal(t, LowByte{FailureCode: 13}, p)

	p, err = FromConfig("Verdict", 200)
	require.NoError(t, err)
	require.Equal(t, VerdictName, p.Name())
	require.Equal(t, uint8(200), p.Extract(&interpreter.Result{State: interpreter.PANIC}))

	_, err = FromConfig("median", 13)
	require.ErrorIs(t, err, vmerrors.ErrInvalidConfig)
}
