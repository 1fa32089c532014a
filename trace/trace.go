// SPDX-License-Identifier: MIT

package trace

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/ltlsample/alphabet"
)

// Sentinel errors for trace shaping.
var (
	// ErrEmptyTrace is returned when padding a trace with no steps.
	ErrEmptyTrace = errors.New("trace: empty trace")

	// ErrTooLong is returned when a trace already exceeds the target length.
	ErrTooLong = errors.New("trace: trace longer than target length")

	// ErrBadLength is returned for a non-positive target length.
	ErrBadLength = errors.New("trace: target length must be >= 1")
)

// Step is one timestep: a truth value per literal, in alphabet order.
type Step []bool

// Trace is an ordered sequence of steps.
type Trace []Step

// FromPath expands a valuation path into a trace over n literals.
func FromPath(p alphabet.Path, n int) Trace {
	t := make(Trace, len(p))
	for i, v := range p {
		t[i] = v.Bools(n)
	}
	return t
}

// Path packs the trace back into valuations.
func (t Trace) Path() alphabet.Path {
	p := make(alphabet.Path, len(t))
	for i, s := range t {
		p[i] = alphabet.FromBools(s)
	}
	return p
}

// Len returns the number of steps.
func (t Trace) Len() int { return len(t) }

// Key is the canonical structural key: steps as 0/1 runs separated by '|'.
func (t Trace) Key() string {
	var b strings.Builder
	for i, s := range t {
		if i > 0 {
			b.WriteByte('|')
		}
		for _, x := range s {
			if x {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
	}
	return b.String()
}

// Clone deep-copies t.
func (t Trace) Clone() Trace {
	out := make(Trace, len(t))
	for i, s := range t {
		out[i] = append(Step(nil), s...)
	}
	return out
}

// Pad returns a copy of t extended to length steps by repeating its final step.
func Pad(t Trace, length int) (Trace, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadLength, length)
	}
	if len(t) == 0 {
		return nil, ErrEmptyTrace
	}
	if len(t) > length {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooLong, len(t), length)
	}
	out := make(Trace, 0, length)
	out = append(out, t.Clone()...)
	last := t[len(t)-1]
	for len(out) < length {
		out = append(out, append(Step(nil), last...))
	}
	return out, nil
}

// Set is a structural set of traces.
type Set struct {
	items map[string]Trace
}

// NewSet returns an empty Set.
func NewSet() *Set { return &Set{items: make(map[string]Trace)} }

// Add inserts t and reports whether it was new.
func (s *Set) Add(t Trace) bool {
	k := t.Key()
	if _, ok := s.items[k]; ok {
		return false
	}
	s.items[k] = t.Clone()
	return true
}

// Has reports membership.
func (s *Set) Has(t Trace) bool {
	_, ok := s.items[t.Key()]
	return ok
}

// Len returns the number of distinct traces.
func (s *Set) Len() int { return len(s.items) }

// Sorted returns the traces ordered by length, then by Key.
func (s *Set) Sorted() []Trace {
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		li, lj := len(s.items[keys[i]]), len(s.items[keys[j]])
		if li != lj {
			return li < lj
		}
		return keys[i] < keys[j]
	})
	out := make([]Trace, len(keys))
	for i, k := range keys {
		out[i] = s.items[k]
	}
	return out
}
