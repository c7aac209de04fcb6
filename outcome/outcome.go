// Package outcome reduces a terminal machine state to the one byte committed
// by a proof.
package outcome

import (
	"fmt"
	"strings"

	"github.com/jam-duna/fraudproof/interpreter"
	"github.com/jam-duna/fraudproof/vmerrors"
)

const (
	DefaultFailureCode uint8 = 13

	LowByteName = "lowbyte"
	VerdictName = "verdict"
)

type Policy interface {
	Name() string
	Extract(r *interpreter.Result) uint8
}

// LowByte commits the low byte of the top word of a halted run. A panic or
// an empty stack commits FailureCode.
type LowByte struct {
	FailureCode uint8
}

func (LowByte) Name() string { return LowByteName }

func (p LowByte) Extract(r *interpreter.Result) uint8 {
	if !r.Halted() {
		return p.FailureCode
	}
	top, ok := r.Top()
	if !ok {
		return p.FailureCode
	}
	return uint8(top)
}

// Verdict commits 1 when a halted run leaves a true word on top, else 0.
type Verdict struct {
	FailureCode uint8
}

func (Verdict) Name() string { return VerdictName }

func (p Verdict) Extract(r *interpreter.Result) uint8 {
	if !r.Halted() {
		return p.FailureCode
	}
	top, ok := r.Top()
	if !ok {
		return p.FailureCode
	}
	if top != 0 {
		return 1
	}
	return 0
}

// FromConfig selects a policy by name. An empty name is LowByte.
func FromConfig(name string, failureCode uint8) (Policy, error) {
	switch strings.ToLower(name) {
	case "", LowByteName:
		return LowByte{FailureCode: failureCode}, nil
	case VerdictName:
		return Verdict{FailureCode: failureCode}, nil
	default:
		return nil, fmt.Errorf("outcome policy %q: %w", name, vmerrors.ErrInvalidConfig)
	}
}
