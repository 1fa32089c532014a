// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"fmt"
)

// queueItem pairs a state with its BFS depth.
type queueItem struct {
	state int
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph   Graph
	opts    BFSOptions
	ctx     context.Context
	queue   []queueItem
	visited []bool
	res     *BFSResult
	done    bool
}

// BFS runs breadth-first search on g starting from start,
// applying any number of functional Options.
// Returns ErrGraphNil or ErrStartOutOfRange for invalid input,
// ErrOptionViolation for bad options, or any user-supplied hook error.
func BFS(g Graph, start int, opts ...Option) (*BFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	// Build options and catch any invalid ones immediately
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	n := g.Len()
	if start < 0 || start >= n {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrStartOutOfRange, start, n)
	}

	// Prepare walker
	w := &walker{
		graph:   g,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		visited: make([]bool, n),
		res: &BFSResult{
			Start:  start,
			Order:  make([]int, 0, n),
			Depth:  make([]int, n),
			Parent: make([]Link, n),
			Found:  -1,
			graph:  g,
		},
	}
	for i := range w.res.Depth {
		w.res.Depth[i] = -1
		w.res.Parent[i] = Link{From: -1, Edge: -1}
	}

	// Seed queue with start state (no parent)
	w.enqueue(start, 0, Link{From: -1, Edge: -1})
	// Main loop
	return w.res, w.loop()
}

// enqueue marks state visited at depth d, records its parent link,
// calls OnEnqueue, checks StopAt and adds it to the queue.
func (w *walker) enqueue(state, d int, link Link) {
	w.visited[state] = true
	w.res.Depth[state] = d
	w.res.Parent[state] = link
	w.opts.OnEnqueue(state, d)
	w.queue = append(w.queue, queueItem{state: state, depth: d})
	if w.opts.StopAt != nil && w.opts.StopAt(state) {
		w.res.Found = state
		w.done = true
	}
}

// loop processes the queue until empty, stop hit, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 && !w.done {
		// cancellation check (once per loop)
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.dequeue()
		if err := w.visit(item); err != nil {
			return err
		}
		w.enqueueSuccessors(item)
	}
	return nil
}

// dequeue pops the first item, invokes OnDequeue, and returns it.
func (w *walker) dequeue() queueItem {
	item := w.queue[0]
	w.queue = w.queue[1:]
	w.opts.OnDequeue(item.state, item.depth)
	return item
}

// visit records the state in Order and calls OnVisit.
func (w *walker) visit(item queueItem) error {
	w.res.Order = append(w.res.Order, item.state)
	if err := w.opts.OnVisit(item.state, item.depth); err != nil {
		return fmt.Errorf("bfs: OnVisit error at %d: %w", item.state, err)
	}
	return nil
}

// enqueueSuccessors walks the edges of item in edge order, applies filtering
// and MaxDepth, and enqueues each unseen successor.
func (w *walker) enqueueSuccessors(item queueItem) {
	nextDepth := item.depth + 1
	if w.opts.MaxDepth > 0 && nextDepth > w.opts.MaxDepth {
		return
	}
	for e := 0; e < w.graph.NumEdges(); e++ {
		if !w.opts.FilterEdge(item.state, e) {
			continue
		}
		nxt := w.graph.Successor(item.state, e)

		// first time seen?
		if !w.visited[nxt] {
			w.enqueue(nxt, nextDepth, Link{From: item.state, Edge: e})
			if w.done {
				return
			}
		}
	}
}
