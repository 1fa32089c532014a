// SPDX-License-Identifier: MIT

package trace

import "fmt"

// Strategy names the generator that produced a Sample.
type Strategy string

const (
	// StrategyCharacteristic is the automaton-based characteristic sample.
	StrategyCharacteristic Strategy = "characteristic"

	// StrategyRejection is uniform rejection sampling with local perturbation.
	StrategyRejection Strategy = "rejection"
)

// Sample is a labelled trace set: positives satisfy the formula, negatives do
// not. It is immutable once returned by a generator.
type Sample struct {
	Literals    []string
	TraceLength int
	Strategy    Strategy
	Positive    []Trace
	Negative    []Trace
}

// Size returns the total number of traces.
func (s *Sample) Size() int { return len(s.Positive) + len(s.Negative) }

// Validate checks the shape invariants: every trace has TraceLength steps of
// len(Literals) values, and no trace is both positive and negative.
func (s *Sample) Validate() error {
	check := func(kind string, ts []Trace) error {
		for i, t := range ts {
			if len(t) != s.TraceLength {
				return fmt.Errorf("trace: %s[%d] has %d steps, want %d", kind, i, len(t), s.TraceLength)
			}
			for j, st := range t {
				if len(st) != len(s.Literals) {
					return fmt.Errorf("trace: %s[%d] step %d has %d values, want %d", kind, i, j, len(st), len(s.Literals))
				}
			}
		}
		return nil
	}
	if err := check("positive", s.Positive); err != nil {
		return err
	}
	if err := check("negative", s.Negative); err != nil {
		return err
	}
	pos := NewSet()
	for _, t := range s.Positive {
		pos.Add(t)
	}
	for i, t := range s.Negative {
		if pos.Has(t) {
			return fmt.Errorf("trace: negative[%d] also labelled positive", i)
		}
	}
	return nil
}
