// Package access resolves the read-only view a constraint program has of the
// solution under evaluation and of persisted state.
package access

import (
	"fmt"

	"github.com/jam-duna/fraudproof/common"
	"github.com/jam-duna/fraudproof/vmerrors"
)

// SolutionAccess is the view of a solution from one pathway.
type SolutionAccess struct {
	Data          []SolutionData
	Index         int
	MutableKeys   *KeySet
	TransientData map[int]*KeyMap
}

// NewSolutionAccess builds the view for pathway index. The mutable keys are
// the keys the pathway proposes to mutate.
func NewSolutionAccess(data []SolutionData, index int) SolutionAccess {
	return SolutionAccess{
		Data:          data,
		Index:         index,
		MutableKeys:   MutableKeys(data, index),
		TransientData: TransientData(data),
	}
}

// MutableKeys collects the keys of the state mutations at pathway index.
func MutableKeys(data []SolutionData, index int) *KeySet {
	s := NewKeySet()
	if index < 0 || index >= len(data) {
		return s
	}
	for _, m := range data[index].StateMutations {
		s.Add(m.Key)
	}
	return s
}

// TransientData indexes every pathway's transient data by key.
func TransientData(data []SolutionData) map[int]*KeyMap {
	out := make(map[int]*KeyMap, len(data))
	for i, d := range data {
		out[i] = NewKeyMap(d.TransientData...)
	}
	return out
}

// StateSlots is the state snapshot a predicate is checked against. Keys[i]
// is the state key backing Pre[i]; Keys may be shorter than Pre.
type StateSlots struct {
	Pre  []Value
	Post []Value
	Keys []Key
}

// EmptyStateSlots has no slots at all.
var EmptyStateSlots = StateSlots{}

// StateReader serves consecutive keys of a contract's persisted state.
type StateReader interface {
	KeyRange(contract common.ContentAddress, key Key, n int) ([]Value, error)
}

// Access is everything a constraint program may read.
type Access struct {
	Solution   SolutionAccess
	StateSlots StateSlots
	State      StateReader
}

const (
	DeltaPre  common.Word = 0
	DeltaPost common.Word = 1
)

const (
	SlotsDecisionVars common.Word = 0
	SlotsPre          common.Word = 1
	SlotsPost         common.Word = 2
)

// ValueRange returns words [ix, ix+n) of v.
func ValueRange(v []common.Word, ix, n common.Word) ([]common.Word, error) {
	size := common.Word(len(v))
	if ix > size || n > size-ix {
		return nil, fmt.Errorf("range [%d, %d+%d) of %d words: %w", ix, ix, n, size, vmerrors.ErrValueRangeOutOfBounds)
	}
	return v[ix : ix+n], nil
}

func (a *Access) pathway(ix common.Word) (*SolutionData, error) {
	if ix >= common.Word(len(a.Solution.Data)) {
		return nil, fmt.Errorf("pathway %d of %d: %w", ix, len(a.Solution.Data), vmerrors.ErrPathwayOutOfBounds)
	}
	return &a.Solution.Data[ix], nil
}

// This returns the solution data of the pathway under evaluation.
func (a *Access) This() (*SolutionData, error) {
	if a.Solution.Index < 0 {
		return nil, fmt.Errorf("pathway %d: %w", a.Solution.Index, vmerrors.ErrPathwayOutOfBounds)
	}
	return a.pathway(common.Word(a.Solution.Index))
}

// ThisPathway is the index of the pathway under evaluation.
func (a *Access) ThisPathway() common.Word {
	return common.Word(a.Solution.Index)
}

// PredicateAt returns the predicate address solved by a pathway.
func (a *Access) PredicateAt(pathway common.Word) (common.PredicateAddress, error) {
	d, err := a.pathway(pathway)
	if err != nil {
		return common.PredicateAddress{}, err
	}
	return d.PredicateToSolve, nil
}

func (a *Access) decisionVar(slot common.Word) (Value, error) {
	d, err := a.This()
	if err != nil {
		return nil, err
	}
	if slot >= common.Word(len(d.DecisionVariables)) {
		return nil, fmt.Errorf("decision variable %d of %d: %w", slot, len(d.DecisionVariables), vmerrors.ErrDecisionVarOutOfBounds)
	}
	return d.DecisionVariables[slot], nil
}

// DecisionVar reads n words from ix within decision variable slot.
func (a *Access) DecisionVar(slot, ix, n common.Word) ([]common.Word, error) {
	v, err := a.decisionVar(slot)
	if err != nil {
		return nil, err
	}
	return ValueRange(v, ix, n)
}

func (a *Access) DecisionVarLen(slot common.Word) (common.Word, error) {
	v, err := a.decisionVar(slot)
	if err != nil {
		return 0, err
	}
	return common.Word(len(v)), nil
}

func (a *Access) stateSlot(slot, delta common.Word) (Value, error) {
	var slots []Value
	switch delta {
	case DeltaPre:
		slots = a.StateSlots.Pre
	case DeltaPost:
		slots = a.StateSlots.Post
	default:
		return nil, fmt.Errorf("delta %d: %w", delta, vmerrors.ErrInvalidStateDelta)
	}
	if slot >= common.Word(len(slots)) {
		return nil, fmt.Errorf("state slot %d of %d: %w", slot, len(slots), vmerrors.ErrStateSlotOutOfBounds)
	}
	return slots[slot], nil
}

// StateRange reads n words from ix within a pre (delta 0) or post (delta 1) state slot.
func (a *Access) StateRange(slot, ix, n, delta common.Word) ([]common.Word, error) {
	v, err := a.stateSlot(slot, delta)
	if err != nil {
		return nil, err
	}
	return ValueRange(v, ix, n)
}

func (a *Access) StateLen(slot, delta common.Word) (common.Word, error) {
	v, err := a.stateSlot(slot, delta)
	if err != nil {
		return 0, err
	}
	return common.Word(len(v)), nil
}

func (a *Access) transient(pathway common.Word) (*KeyMap, error) {
	if _, err := a.pathway(pathway); err != nil {
		return nil, err
	}
	return a.Solution.TransientData[int(pathway)], nil
}

// PubVar reads n words from ix of the transient value at key on a pathway.
// A missing key reads as the empty value.
func (a *Access) PubVar(pathway common.Word, key Key, ix, n common.Word) ([]common.Word, error) {
	m, err := a.transient(pathway)
	if err != nil {
		return nil, err
	}
	v, _ := m.Get(key)
	return ValueRange(v, ix, n)
}

func (a *Access) PubVarLen(pathway common.Word, key Key) (common.Word, error) {
	m, err := a.transient(pathway)
	if err != nil {
		return 0, err
	}
	v, _ := m.Get(key)
	return common.Word(len(v)), nil
}

// PubVarKeys lists a pathway's transient keys in canonical order.
func (a *Access) PubVarKeys(pathway common.Word) ([]Key, error) {
	m, err := a.transient(pathway)
	if err != nil {
		return nil, err
	}
	return m.Keys(), nil
}

// MutKeys lists the mutable keys in canonical order.
func (a *Access) MutKeys() []Key {
	return a.Solution.MutableKeys.Sorted()
}

// IsMutable reports whether the solution may propose a mutation of key.
func (a *Access) IsMutable(key Key) bool {
	return a.Solution.MutableKeys.Contains(key)
}

// NumSlots counts decision variables (0), pre state slots (1) or post state slots (2).
func (a *Access) NumSlots(which common.Word) (common.Word, error) {
	switch which {
	case SlotsDecisionVars:
		d, err := a.This()
		if err != nil {
			return 0, err
		}
		return common.Word(len(d.DecisionVariables)), nil
	case SlotsPre:
		return common.Word(len(a.StateSlots.Pre)), nil
	case SlotsPost:
		return common.Word(len(a.StateSlots.Post)), nil
	default:
		return 0, fmt.Errorf("slot kind %d: %w", which, vmerrors.ErrInvalidSlotKind)
	}
}

// KeyRange reads n consecutive keys of a contract. Without a state reader
// every key reads as empty.
func (a *Access) KeyRange(contract common.ContentAddress, key Key, n int) ([]Value, error) {
	if a.State == nil {
		if n > 1 {
			if _, err := StepKey(key, n-1); err != nil {
				return nil, err
			}
		}
		return make([]Value, n), nil
	}
	values, err := a.State.KeyRange(contract, key, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", vmerrors.ErrStateRead, err)
	}
	if len(values) != n {
		return nil, fmt.Errorf("%w: got %d values for %d keys", vmerrors.ErrStateRead, len(values), n)
	}
	return values, nil
}
