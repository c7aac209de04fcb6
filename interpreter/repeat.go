package interpreter

import (
	"fmt"

	"github.com/jam-duna/fraudproof/common"
	"github.com/jam-duna/fraudproof/vmerrors"
)

// RepeatFrame is one active loop. Start is the index of the first body
// instruction.
type RepeatFrame struct {
	Start     int
	Iteration common.Word
	Bound     common.Word
	CountUp   bool
}

// Counter is the value REPEAT_COUNTER reports for the frame.
func (f *RepeatFrame) Counter() common.Word {
	if f.CountUp {
		return f.Iteration
	}
	return f.Bound - 1 - f.Iteration
}

type RepeatStack struct {
	frames []RepeatFrame
}

func (r *RepeatStack) Len() int {
	return len(r.frames)
}

func (r *RepeatStack) Push(f RepeatFrame) {
	r.frames = append(r.frames, f)
}

func (r *RepeatStack) Top() (*RepeatFrame, error) {
	if len(r.frames) == 0 {
		return nil, fmt.Errorf("repeat stack empty: %w", vmerrors.ErrNoRepeatFrame)
	}
	return &r.frames[len(r.frames)-1], nil
}

func (r *RepeatStack) Pop() {
	if len(r.frames) > 0 {
		r.frames = r.frames[:len(r.frames)-1]
	}
}

func (r *RepeatStack) Counter() (common.Word, error) {
	f, err := r.Top()
	if err != nil {
		return 0, err
	}
	return f.Counter(), nil
}
