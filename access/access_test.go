package access

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jam-duna/fraudproof/common"
	"github.com/jam-duna/fraudproof/vmerrors"
)

var (
	contractA = common.HexToHash("0xaa")
	predA     = common.HexToHash("0xa1")
	contractB = common.HexToHash("0xbb")
	predB     = common.HexToHash("0xb1")
)

func testAccess() *Access {
	data := []SolutionData{
		{
			PredicateToSolve:  common.PredicateAddress{Contract: contractA, Predicate: predA},
			DecisionVariables: []Value{{1, 2, 3}, {}},
			StateMutations: []Mutation{
				{Key: Key{9, 1}, Value: Value{5}},
				{Key: Key{2}, Value: Value{6}},
			},
			TransientData: []Mutation{{Key: Key{7}, Value: Value{70, 71}}},
		},
		{
			PredicateToSolve: common.PredicateAddress{Contract: contractB, Predicate: predB},
			TransientData: []Mutation{
				{Key: Key{3, 3}, Value: Value{1}},
				{Key: Key{3}, Value: Value{2}},
			},
		},
	}
	return &Access{
		Solution: NewSolutionAccess(data, 0),
		StateSlots: StateSlots{
			Pre:  []Value{{10, 11}, {}},
			Post: []Value{{20}},
		},
	}
}

func TestDecisionVarBounds(t *testing.T) {
	a := testAccess()

	words, err := a.DecisionVar(0, 1, 2)
	require.NoError(t, err)
	require.Equal(t, []common.Word{2, 3}, words)

	words, err = a.DecisionVar(0, 3, 0)
	require.NoError(t, err)
	require.Empty(t, words)

	_, err = a.DecisionVar(0, 2, 2)
	require.True(t, errors.Is(err, vmerrors.ErrValueRangeOutOfBounds))

	_, err = a.DecisionVar(0, ^common.Word(0), 2)
	require.True(t, errors.Is(err, vmerrors.ErrValueRangeOutOfBounds))

	_, err = a.DecisionVarLen(2)
	require.True(t, errors.Is(err, vmerrors.ErrDecisionVarOutOfBounds))

	n, err := a.DecisionVarLen(1)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestStateSlotsPreAndPost(t *testing.T) {
	a := testAccess()

	words, err := a.StateRange(0, 0, 2, DeltaPre)
	require.NoError(t, err)
	require.Equal(t, []common.Word{10, 11}, words)

	n, err := a.StateLen(0, DeltaPost)
	require.NoError(t, err)
	require.Equal(t, common.Word(1), n)

	_, err = a.StateLen(1, DeltaPost)
	require.True(t, errors.Is(err, vmerrors.ErrStateSlotOutOfBounds))

	_, err = a.StateRange(0, 0, 1, 2)
	require.True(t, errors.Is(err, vmerrors.ErrInvalidStateDelta))

	for which, want := range []common.Word{2, 2, 1} {
		got, err := a.NumSlots(common.Word(which))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err = a.NumSlots(3)
	require.True(t, errors.Is(err, vmerrors.ErrInvalidSlotKind))
}

func TestKeysAreCanonical(t *testing.T) {
	a := testAccess()

	require.Equal(t, []Key{{2}, {9, 1}}, a.MutKeys())
	require.True(t, a.IsMutable(Key{9, 1}))
	require.False(t, a.IsMutable(Key{9}))

	keys, err := a.PubVarKeys(1)
	require.NoError(t, err)
	require.Equal(t, []Key{{3}, {3, 3}}, keys)
	require.Equal(t, []common.Word{3, 1, 3, 3, 2, 5}, FlattenKeys(keys))
	require.Equal(t, []common.Word{0}, FlattenKeys(nil))

	_, err = a.PubVarKeys(2)
	require.True(t, errors.Is(err, vmerrors.ErrPathwayOutOfBounds))
}

func TestPubVar(t *testing.T) {
	a := testAccess()

	words, err := a.PubVar(0, Key{7}, 1, 1)
	require.NoError(t, err)
	require.Equal(t, []common.Word{71}, words)

	n, err := a.PubVarLen(0, Key{8})
	require.NoError(t, err)
	require.Zero(t, n)

	_, err = a.PubVar(0, Key{8}, 0, 1)
	require.True(t, errors.Is(err, vmerrors.ErrValueRangeOutOfBounds))
}

func TestPredicateAt(t *testing.T) {
	a := testAccess()
	addr, err := a.PredicateAt(1)
	require.NoError(t, err)
	require.Equal(t, contractB, addr.Contract)
	require.Equal(t, predB, addr.Predicate)

	_, err = a.PredicateAt(5)
	require.True(t, errors.Is(err, vmerrors.ErrPathwayOutOfBounds))
}

func TestStateKeyRange(t *testing.T) {
	s := NewState()
	s.Set(contractA, Key{1, ^common.Word(0)}, Value{1})
	s.Set(contractA, Key{2, 0}, Value{2})
	s.Set(contractA, Key{2, 2}, Value{3})

	values, err := s.KeyRange(contractA, Key{1, ^common.Word(0)}, 4)
	require.NoError(t, err)
	require.Equal(t, []Value{{1}, {2}, nil, {3}}, values)

	_, err = s.KeyRange(contractA, Key{^common.Word(0)}, 2)
	require.True(t, errors.Is(err, vmerrors.ErrKeyRangeOverflow))

	a := &Access{}
	values, err = a.KeyRange(contractA, Key{1}, 2)
	require.NoError(t, err)
	require.Len(t, values, 2)
}

func TestLoadSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"solution": [{
			"predicate_to_solve": {"contract": "0xaa", "predicate": "0xa1"},
			"decision_variables": [[1, 18446744073709551615]],
			"state_mutations": [{"key": [4], "value": [40]}]
		}],
		"index": 0,
		"pre": [[40]],
		"slot_keys": [[4]],
		"state": [{"contract": "0xaa", "key": [4], "value": [41]}]
	}`), 0o644))

	snap, err := LoadSnapshot(path)
	require.NoError(t, err)
	a := snap.Access()

	words, err := a.DecisionVar(0, 0, 2)
	require.NoError(t, err)
	require.Equal(t, []common.Word{1, ^common.Word(0)}, words)
	require.True(t, a.IsMutable(Key{4}))
	require.Equal(t, []Key{{4}}, a.StateSlots.Keys)

	values, err := a.KeyRange(contractA, Key{4}, 1)
	require.NoError(t, err)
	require.Equal(t, []Value{{41}}, values)
}
