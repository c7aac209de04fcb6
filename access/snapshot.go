package access

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jam-duna/fraudproof/common"
)

// StateEntry is one persisted key/value of a contract.
type StateEntry struct {
	Contract common.ContentAddress `json:"contract"`
	Key      Key                   `json:"key"`
	Value    Value                 `json:"value"`
}

// Snapshot is the serialized form of everything a run reads: the solution,
// the pathway under evaluation, the state slots and persisted state.
type Snapshot struct {
	Solution    []SolutionData `json:"solution"`
	Index       int            `json:"index"`
	MutableKeys []Key          `json:"mutable_keys,omitempty"`
	Pre         []Value        `json:"pre,omitempty"`
	Post        []Value        `json:"post,omitempty"`
	SlotKeys    []Key          `json:"slot_keys,omitempty"`
	State       []StateEntry   `json:"state,omitempty"`
}

// LoadSnapshot reads a JSON snapshot file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return &s, nil
}

// Access builds the read view. Explicit mutable keys replace the ones
// derived from the pathway's state mutations.
func (s *Snapshot) Access() *Access {
	sol := NewSolutionAccess(s.Solution, s.Index)
	if len(s.MutableKeys) > 0 {
		sol.MutableKeys = NewKeySet(s.MutableKeys...)
	}
	state := NewState()
	for _, e := range s.State {
		state.Set(e.Contract, e.Key, e.Value)
	}
	return &Access{
		Solution: sol,
		StateSlots: StateSlots{
			Pre:  s.Pre,
			Post: s.Post,
			Keys: s.SlotKeys,
		},
		State: state,
	}
}

// Empty is a single pathway solving the zero predicate with no data, no
// mutable keys and no state.
func Empty() *Access {
	data := []SolutionData{{}}
	return &Access{
		Solution:   NewSolutionAccess(data, 0),
		StateSlots: EmptyStateSlots,
		State:      NewState(),
	}
}
