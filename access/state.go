package access

import (
	"fmt"
	"slices"

	"github.com/jam-duna/fraudproof/common"
	"github.com/jam-duna/fraudproof/vmerrors"
)

// State is an in-memory snapshot of persisted state, per contract.
type State struct {
	contracts map[common.ContentAddress]*KeyMap
}

func NewState() *State {
	return &State{contracts: make(map[common.ContentAddress]*KeyMap)}
}

func (s *State) Set(contract common.ContentAddress, key Key, value Value) {
	m, ok := s.contracts[contract]
	if !ok {
		m = NewKeyMap()
		s.contracts[contract] = m
	}
	m.Set(key, value)
}

func (s *State) Get(contract common.ContentAddress, key Key) (Value, bool) {
	return s.contracts[contract].Get(key)
}

// Contracts lists the contracts with state, in byte order.
func (s *State) Contracts() []common.ContentAddress {
	out := make([]common.ContentAddress, 0, len(s.contracts))
	for c := range s.contracts {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b common.ContentAddress) int {
		return slices.Compare(a[:], b[:])
	})
	return out
}

// Entries lists a contract's state in canonical key order.
func (s *State) Entries(contract common.ContentAddress) []Mutation {
	return s.contracts[contract].Entries()
}

// KeyRange implements StateReader.
func (s *State) KeyRange(contract common.ContentAddress, key Key, n int) ([]Value, error) {
	m := s.contracts[contract]
	out := make([]Value, 0, n)
	k := slices.Clone(key)
	for i := 0; i < n; i++ {
		if i > 0 {
			next, err := NextKey(k)
			if err != nil {
				return nil, err
			}
			k = next
		}
		v, _ := m.Get(k)
		out = append(out, slices.Clone(v))
	}
	return out, nil
}

// NextKey treats key as a big-endian multi-word integer and adds one.
func NextKey(key Key) (Key, error) {
	next := slices.Clone(key)
	for i := len(next) - 1; i >= 0; i-- {
		next[i]++
		if next[i] != 0 {
			return next, nil
		}
	}
	return nil, fmt.Errorf("key %v: %w", key, vmerrors.ErrKeyRangeOverflow)
}

// StepKey returns key advanced n times.
func StepKey(key Key, n int) (Key, error) {
	k := slices.Clone(key)
	for i := 0; i < n; i++ {
		next, err := NextKey(k)
		if err != nil {
			return nil, err
		}
		k = next
	}
	return k, nil
}
