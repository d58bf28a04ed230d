// Package schedule defines the time axis a model's storage is indexed by: a
// fixed (first, step, last) schedule or an explicit ordered list of time
// points, plus the Clock that advances over either one.
package schedule

import (
	"fmt"
)

// Schedule is an ordered sequence of integer time points. Positions are
// 0-based. TimeAt tolerates one (or more) positions past the end and returns
// a sentinel of last declared time + 1, which lets callers detect "one past
// the end" without a separate flag.
type Schedule interface {
	// Len returns the number of declared time points.
	Len() int
	// TimeAt returns the time value at pos, or the past-the-end sentinel for
	// pos >= Len().
	TimeAt(pos int) int
	// IndexOf returns the position of an exact time value.
	IndexOf(t int) (int, bool)
	// Times returns a copy of all declared time values in order.
	Times() []int
}

// Fixed is a regularly stepped schedule: first, first+step, ..., last.
type Fixed struct {
	first, step, last int
}

// NewFixed constructs a fixed schedule. The step must be positive and must
// land exactly on last.
func NewFixed(first, step, last int) (*Fixed, error) {
	if step <= 0 {
		return nil, fmt.Errorf("fixed schedule: step must be positive, got %d", step)
	}
	if last < first {
		return nil, fmt.Errorf("fixed schedule: last %d precedes first %d", last, first)
	}
	if (last-first)%step != 0 {
		return nil, fmt.Errorf("fixed schedule: step %d does not divide %d..%d", step, first, last)
	}
	return &Fixed{first: first, step: step, last: last}, nil
}

func (s *Fixed) Len() int { return (s.last-s.first)/s.step + 1 }

func (s *Fixed) TimeAt(pos int) int {
	if pos >= s.Len() {
		return s.last + 1
	}
	return s.first + pos*s.step
}

func (s *Fixed) IndexOf(t int) (int, bool) {
	if t < s.first || t > s.last || (t-s.first)%s.step != 0 {
		return 0, false
	}
	return (t - s.first) / s.step, true
}

func (s *Fixed) Times() []int {
	times := make([]int, s.Len())
	for i := range times {
		times[i] = s.first + i*s.step
	}
	return times
}

// Step returns the schedule's step size.
func (s *Fixed) Step() int { return s.step }

// Variable is an explicitly listed schedule; positions are looked up by index.
type Variable struct {
	times []int
}

// NewVariable constructs a variable schedule from a strictly increasing,
// non-empty list of time points.
func NewVariable(times []int) (*Variable, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("variable schedule: no time points")
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, fmt.Errorf("variable schedule: time points must be strictly increasing, got %d after %d", times[i], times[i-1])
		}
	}
	owned := make([]int, len(times))
	copy(owned, times)
	return &Variable{times: owned}, nil
}

func (s *Variable) Len() int { return len(s.times) }

func (s *Variable) TimeAt(pos int) int {
	if pos >= len(s.times) {
		return s.times[len(s.times)-1] + 1
	}
	return s.times[pos]
}

func (s *Variable) IndexOf(t int) (int, bool) {
	for i, v := range s.times {
		if v == t {
			return i, true
		}
	}
	return 0, false
}

func (s *Variable) Times() []int {
	out := make([]int, len(s.times))
	copy(out, s.times)
	return out
}
