package interpreter

import (
	"fmt"
	"slices"

	"github.com/jam-duna/fraudproof/access"
	"github.com/jam-duna/fraudproof/common"
	"github.com/jam-duna/fraudproof/vmerrors"
)

type slot struct {
	value access.Value
	key   access.Key // nil for local scratch
	dirty bool
}

// Slots is the state slot store. Slots backed by a state key may only be
// written when the key is mutable.
type Slots struct {
	slots   []slot
	limit   int
	mutable func(access.Key) bool
}

// NewSlots pre-populates the store from the pre-state snapshot.
func NewSlots(ss access.StateSlots, limit int, mutable func(access.Key) bool) *Slots {
	s := &Slots{
		slots:   make([]slot, len(ss.Pre)),
		limit:   effectiveLimit(limit, UnboundedSlots),
		mutable: mutable,
	}
	for i, v := range ss.Pre {
		s.slots[i].value = slices.Clone(v)
		if i < len(ss.Keys) {
			s.slots[i].key = slices.Clone(ss.Keys[i])
		}
	}
	return s
}

func (s *Slots) Len() int {
	return len(s.slots)
}

func (s *Slots) Alloc(n common.Word) error {
	size := common.Word(len(s.slots))
	if size > common.Word(s.limit) || n > common.Word(s.limit)-size {
		return fmt.Errorf("alloc %d slots from %d beyond %d: %w", n, size, s.limit, vmerrors.ErrSlotsOverflow)
	}
	s.slots = append(s.slots, make([]slot, n)...)
	return nil
}

func (s *Slots) get(ix common.Word) (*slot, error) {
	if ix >= common.Word(len(s.slots)) {
		return nil, fmt.Errorf("slot %d of %d: %w", ix, len(s.slots), vmerrors.ErrSlotOutOfBounds)
	}
	return &s.slots[ix], nil
}

func (s *Slots) writable(ix common.Word) (*slot, error) {
	sl, err := s.get(ix)
	if err != nil {
		return nil, err
	}
	if sl.key != nil && (s.mutable == nil || !s.mutable(sl.key)) {
		return nil, fmt.Errorf("slot %d key %v: %w", ix, sl.key, vmerrors.ErrKeyNotMutable)
	}
	return sl, nil
}

func (s *Slots) Load(ix common.Word) (access.Value, error) {
	sl, err := s.get(ix)
	if err != nil {
		return nil, err
	}
	return slices.Clone(sl.value), nil
}

func (s *Slots) ValueLen(ix common.Word) (common.Word, error) {
	sl, err := s.get(ix)
	if err != nil {
		return 0, err
	}
	return common.Word(len(sl.value)), nil
}

func (s *Slots) LoadWord(ix, i common.Word) (common.Word, error) {
	sl, err := s.get(ix)
	if err != nil {
		return 0, err
	}
	if i >= common.Word(len(sl.value)) {
		return 0, fmt.Errorf("word %d of slot %d (%d words): %w", i, ix, len(sl.value), vmerrors.ErrValueRangeOutOfBounds)
	}
	return sl.value[i], nil
}

func (s *Slots) Store(ix common.Word, value access.Value) error {
	sl, err := s.writable(ix)
	if err != nil {
		return err
	}
	sl.value = slices.Clone(value)
	sl.dirty = true
	return nil
}

func (s *Slots) StoreWord(ix, i, w common.Word) error {
	sl, err := s.writable(ix)
	if err != nil {
		return err
	}
	if i >= common.Word(len(sl.value)) {
		return fmt.Errorf("word %d of slot %d (%d words): %w", i, ix, len(sl.value), vmerrors.ErrValueRangeOutOfBounds)
	}
	sl.value[i] = w
	sl.dirty = true
	return nil
}

func (s *Slots) Clear(ix common.Word) error {
	return s.ClearRange(ix, 1)
}

// ClearRange empties slots [ix, ix+n). Nothing is cleared unless every slot
// in the range is writable.
func (s *Slots) ClearRange(ix, n common.Word) error {
	size := common.Word(len(s.slots))
	if ix > size || n > size-ix {
		return fmt.Errorf("slots [%d, %d+%d) of %d: %w", ix, ix, n, size, vmerrors.ErrSlotOutOfBounds)
	}
	for i := ix; i < ix+n; i++ {
		if _, err := s.writable(i); err != nil {
			return err
		}
	}
	for i := ix; i < ix+n; i++ {
		s.slots[i].value = nil
		s.slots[i].dirty = true
	}
	return nil
}

// Fill loads persisted values into slots [ix, ix+len(values)) and binds each
// slot to its key. Loaded slots are not dirty.
func (s *Slots) Fill(ix common.Word, keys []access.Key, values []access.Value) error {
	size := common.Word(len(s.slots))
	n := common.Word(len(values))
	if ix > size || n > size-ix {
		return fmt.Errorf("slots [%d, %d+%d) of %d: %w", ix, ix, n, size, vmerrors.ErrSlotOutOfBounds)
	}
	for j, v := range values {
		sl := &s.slots[ix+common.Word(j)]
		sl.value = slices.Clone(v)
		sl.key = slices.Clone(keys[j])
		sl.dirty = false
	}
	return nil
}

// Mutations lists the written keyed slots in slot order.
func (s *Slots) Mutations() []access.Mutation {
	var out []access.Mutation
	for _, sl := range s.slots {
		if sl.dirty && sl.key != nil {
			out = append(out, access.Mutation{Key: slices.Clone(sl.key), Value: slices.Clone(sl.value)})
		}
	}
	return out
}
