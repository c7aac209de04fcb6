package interpreter

import (
	"fmt"
	"slices"

	"github.com/jam-duna/fraudproof/common"
	"github.com/jam-duna/fraudproof/vmerrors"
)

// Stack is the evaluation stack. The last word is the top.
type Stack struct {
	words []common.Word
	limit int
}

func NewStack(limit int) *Stack {
	return &Stack{limit: limit}
}

func (s *Stack) Len() int {
	return len(s.words)
}

// Words returns a copy of the stack, deepest word first.
func (s *Stack) Words() []common.Word {
	return slices.Clone(s.words)
}

func (s *Stack) Push(w common.Word) error {
	if s.limit > 0 && len(s.words) >= s.limit {
		return fmt.Errorf("push beyond %d words: %w", s.limit, vmerrors.ErrStackOverflow)
	}
	s.words = append(s.words, w)
	return nil
}

// Extend pushes words in order, so the last one ends on top.
func (s *Stack) Extend(words ...common.Word) error {
	if s.limit > 0 && len(s.words)+len(words) > s.limit {
		return fmt.Errorf("push of %d words beyond %d: %w", len(words), s.limit, vmerrors.ErrStackOverflow)
	}
	s.words = append(s.words, words...)
	return nil
}

func (s *Stack) Pop() (common.Word, error) {
	n := len(s.words)
	if n == 0 {
		return 0, fmt.Errorf("pop from empty stack: %w", vmerrors.ErrStackUnderflow)
	}
	w := s.words[n-1]
	s.words = s.words[:n-1]
	return w, nil
}

// Pop2 pops the top two words. a was the deeper one.
func (s *Stack) Pop2() (a, b common.Word, err error) {
	words, err := s.PopN(2)
	if err != nil {
		return 0, 0, err
	}
	return words[0], words[1], nil
}

// Pop3 pops the top three words, deepest first.
func (s *Stack) Pop3() (a, b, c common.Word, err error) {
	words, err := s.PopN(3)
	if err != nil {
		return 0, 0, 0, err
	}
	return words[0], words[1], words[2], nil
}

// PopN pops n words and returns them deepest first.
func (s *Stack) PopN(n common.Word) ([]common.Word, error) {
	if n > common.Word(len(s.words)) {
		return nil, fmt.Errorf("pop %d of %d words: %w", n, len(s.words), vmerrors.ErrStackUnderflow)
	}
	at := len(s.words) - int(n)
	out := slices.Clone(s.words[at:])
	s.words = s.words[:at]
	return out, nil
}

// PopLenWords pops a length word and then that many words.
func (s *Stack) PopLenWords() ([]common.Word, error) {
	n, err := s.Pop()
	if err != nil {
		return nil, err
	}
	return s.PopN(n)
}

// Peek returns the word at depth ix, where 0 is the top.
func (s *Stack) Peek(ix common.Word) (common.Word, error) {
	if ix >= common.Word(len(s.words)) {
		return 0, fmt.Errorf("depth %d of %d words: %w", ix, len(s.words), vmerrors.ErrIndexOutOfRange)
	}
	return s.words[len(s.words)-1-int(ix)], nil
}

// Swap exchanges the top word with the word at depth ix.
func (s *Stack) Swap(ix common.Word) error {
	if ix >= common.Word(len(s.words)) {
		return fmt.Errorf("depth %d of %d words: %w", ix, len(s.words), vmerrors.ErrIndexOutOfRange)
	}
	top := len(s.words) - 1
	other := top - int(ix)
	s.words[top], s.words[other] = s.words[other], s.words[top]
	return nil
}
