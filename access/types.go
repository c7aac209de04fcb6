package access

import (
	"slices"

	"github.com/jam-duna/fraudproof/common"
)

// Key addresses one item of persisted state.
type Key []common.Word

// Value is the content of one item of state, or of one decision variable.
type Value []common.Word

// CompareKeys orders keys word by word; a strict prefix sorts first.
func CompareKeys(a, b Key) int {
	return slices.Compare(a, b)
}

func (k Key) id() string {
	return string(common.WordsToBytes(k))
}

// Mutation is a proposed new value for a key.
type Mutation struct {
	Key   Key   `json:"key"`
	Value Value `json:"value"`
}

// SolutionData is the part of a solution addressed to one predicate.
type SolutionData struct {
	PredicateToSolve  common.PredicateAddress `json:"predicate_to_solve"`
	DecisionVariables []Value                 `json:"decision_variables"`
	StateMutations    []Mutation              `json:"state_mutations"`
	TransientData     []Mutation              `json:"transient_data"`
}

// KeySet is a set of keys that iterates in canonical order.
type KeySet struct {
	keys map[string]Key
}

func NewKeySet(keys ...Key) *KeySet {
	s := &KeySet{keys: make(map[string]Key, len(keys))}
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

func (s *KeySet) Add(k Key) {
	s.keys[k.id()] = slices.Clone(k)
}

func (s *KeySet) Contains(k Key) bool {
	if s == nil {
		return false
	}
	_, ok := s.keys[k.id()]
	return ok
}

func (s *KeySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Sorted returns the keys in canonical order.
func (s *KeySet) Sorted() []Key {
	if s == nil {
		return nil
	}
	out := make([]Key, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, k)
	}
	slices.SortFunc(out, CompareKeys)
	return out
}

// KeyMap maps keys to values and iterates in canonical key order.
type KeyMap struct {
	entries map[string]Mutation
}

func NewKeyMap(entries ...Mutation) *KeyMap {
	m := &KeyMap{entries: make(map[string]Mutation, len(entries))}
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

func (m *KeyMap) Set(k Key, v Value) {
	m.entries[k.id()] = Mutation{Key: slices.Clone(k), Value: slices.Clone(v)}
}

func (m *KeyMap) Delete(k Key) {
	delete(m.entries, k.id())
}

// Get returns the value at k. A missing key reads as the empty value.
func (m *KeyMap) Get(k Key) (Value, bool) {
	if m == nil {
		return nil, false
	}
	e, ok := m.entries[k.id()]
	return e.Value, ok
}

func (m *KeyMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Keys returns the keys in canonical order.
func (m *KeyMap) Keys() []Key {
	if m == nil {
		return nil
	}
	out := make([]Key, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Key)
	}
	slices.SortFunc(out, CompareKeys)
	return out
}

// Entries returns key/value pairs in canonical key order.
func (m *KeyMap) Entries() []Mutation {
	keys := m.Keys()
	out := make([]Mutation, len(keys))
	for i, k := range keys {
		v, _ := m.Get(k)
		out[i] = Mutation{Key: k, Value: v}
	}
	return out
}

// FlattenKeys encodes keys the way the key-listing opcodes push them: each
// key's words followed by its length, then the total number of words.
func FlattenKeys(keys []Key) []common.Word {
	var out []common.Word
	for _, k := range keys {
		out = append(out, k...)
		out = append(out, common.Word(len(k)))
	}
	return append(out, common.Word(len(out)))
}
