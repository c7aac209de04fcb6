package interpreter

import (
	"fmt"

	"github.com/jam-duna/fraudproof/common"
	"github.com/jam-duna/fraudproof/vmerrors"
)

// Memory is zero-initialised scratch memory addressed by word index.
type Memory struct {
	words []common.Word
	limit int
}

func NewMemory(limit int) *Memory {
	return &Memory{limit: effectiveLimit(limit, UnboundedMemoryWords)}
}

func (m *Memory) Len() int {
	return len(m.words)
}

// Grow appends n zero words.
func (m *Memory) Grow(n common.Word) error {
	size := common.Word(len(m.words))
	if n > common.Word(m.limit)-size {
		return fmt.Errorf("grow %d words from %d beyond %d: %w", n, size, m.limit, vmerrors.ErrMemoryOverflow)
	}
	m.words = append(m.words, make([]common.Word, n)...)
	return nil
}

func (m *Memory) Load(ix common.Word) (common.Word, error) {
	if ix >= common.Word(len(m.words)) {
		return 0, fmt.Errorf("load at %d of %d words: %w", ix, len(m.words), vmerrors.ErrMemoryOutOfBounds)
	}
	return m.words[ix], nil
}

func (m *Memory) Store(ix, w common.Word) error {
	if ix >= common.Word(len(m.words)) {
		return fmt.Errorf("store at %d of %d words: %w", ix, len(m.words), vmerrors.ErrMemoryOutOfBounds)
	}
	m.words[ix] = w
	return nil
}
