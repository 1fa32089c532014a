// SPDX-License-Identifier: MIT

// Package bfs provides tunable options and error definitions
// for breadth-first search over a compiled automaton.
package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/ltlsample/alphabet"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartOutOfRange is returned when the start index is not a state.
	ErrStartOutOfRange = errors.New("bfs: start state out of range")

	// ErrGraphNil is returned if a nil graph is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrUnreached is returned by PathTo for a state the search never discovered.
	ErrUnreached = errors.New("bfs: state not reached")
)

// Graph is the deterministic, edge-labelled transition structure BFS walks.
// *automaton.Arena satisfies it.
type Graph interface {
	Len() int
	NumEdges() int
	Successor(state, edge int) int
	Edge(e int) alphabet.Valuation
}

// Option configures BFS behavior via functional arguments.
// If an Option is invalid (e.g. negative depth), it will be recorded
// internally and surfaced as ErrOptionViolation when BFS is invoked.
type Option func(*BFSOptions)

// BFSOptions holds parameters and callbacks to customize BFS execution.
type BFSOptions struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnEnqueue is called when a state is enqueued, before visiting.
	OnEnqueue func(state, depth int)

	// OnDequeue is called immediately before visiting a state.
	OnDequeue func(state, depth int)

	// OnVisit is called when visiting a state. If it returns an error,
	// BFS aborts and propagates that error.
	OnVisit func(state, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	// A value of 0 explicitly disables any depth limit.
	MaxDepth int

	// FilterEdge can skip transitions by returning false.
	FilterEdge func(state, edge int) bool

	// StopAt, if set, ends the search at the first discovered state for which
	// it returns true. Discovery follows edge order, so the hit is the nearest
	// such state with the canonical tie-break.
	StopAt func(state int) bool

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns a BFSOptions with sane defaults:
//   - Context.Background()
//   - no depth limit (MaxDepth == 0)
//   - no filtering, no stop predicate
//   - no-op hooks (OnEnqueue, OnDequeue, OnVisit)
func DefaultOptions() BFSOptions {
	return BFSOptions{
		Ctx:        context.Background(),
		OnEnqueue:  func(int, int) {},
		OnDequeue:  func(int, int) {},
		OnVisit:    func(int, int) error { return nil },
		MaxDepth:   0,
		FilterEdge: func(_, _ int) bool { return true },
		StopAt:     nil,
		err:        nil,
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *BFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnEnqueue registers a callback to run on enqueue.
func WithOnEnqueue(fn func(state, depth int)) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnDequeue registers a callback to run on dequeue.
func WithOnDequeue(fn func(state, depth int)) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.OnDequeue = fn
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the BFS.
func WithOnVisit(fn func(state, depth int) error) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the search at the given depth (exclusive).
//
//	d > 0: limit to depth d
//	d == 0: explicit no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *BFSOptions) {
		switch {
		case d < 0:
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
		case d == 0:
			// explicit "no limit"
			o.MaxDepth = 0
		default:
			o.MaxDepth = d
		}
	}
}

// WithFilterEdge skips transitions when fn returns false.
func WithFilterEdge(fn func(state, edge int) bool) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.FilterEdge = fn
		}
	}
}

// WithStopAt ends the search at the first discovered state satisfying fn.
func WithStopAt(fn func(state int) bool) Option {
	return func(o *BFSOptions) {
		o.StopAt = fn
	}
}

// Link is one parent-table entry: the predecessor state and the edge index
// that first discovered a state. The root and unreached states hold From == -1.
type Link struct {
	From int
	Edge int
}

// BFSResult holds the outcome of a BFS traversal:
//   - Order: states visited, in visit sequence.
//   - Depth: distance (in edges) from the start, -1 if unreached.
//   - Parent: arena-indexed parent table.
//   - Found: the state that satisfied StopAt, or -1.
type BFSResult struct {
	Start  int
	Order  []int
	Depth  []int
	Parent []Link
	Found  int

	graph Graph
}

// Reached reports whether state was discovered.
func (r *BFSResult) Reached(state int) bool {
	return state >= 0 && state < len(r.Depth) && r.Depth[state] >= 0
}

// EdgesTo reconstructs the edge indices leading from Start to dest.
// Returns ErrUnreached if dest was not discovered.
func (r *BFSResult) EdgesTo(dest int) ([]int, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("%w: %d", ErrUnreached, dest)
	}
	// build reversed edge list
	edges := make([]int, 0, r.Depth[dest])
	for cur := dest; cur != r.Start; {
		link := r.Parent[cur]
		edges = append(edges, link.Edge)
		cur = link.From
	}
	// reverse to get start → dest
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}

	return edges, nil
}

// PathTo reconstructs the valuation path from Start to dest.
func (r *BFSResult) PathTo(dest int) (alphabet.Path, error) {
	edges, err := r.EdgesTo(dest)
	if err != nil {
		return nil, err
	}
	p := make(alphabet.Path, len(edges))
	for i, e := range edges {
		p[i] = r.graph.Edge(e)
	}
	return p, nil
}
