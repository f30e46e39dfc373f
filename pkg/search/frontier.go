package search

import "fmt"

// FIFO of states waiting for expansion, owned by a single engine call
type frontier[B any] struct {
	items []B
	head  int
}

func (f *frontier[B]) Len() int {
	return len(f.items) - f.head
}

func (f *frontier[B]) Empty() bool {
	return f.head == len(f.items)
}

func (f *frontier[B]) Push(states ...B) int {
	// Reclaim the consumed prefix before growing
	if f.head > 0 && f.head == len(f.items) {
		f.items = f.items[:0]
		f.head = 0
	}
	f.items = append(f.items, states...)
	return len(states)
}

func (f *frontier[B]) Pop() B {
	if f.Empty() {
		panic("[search] frontier: pop from an empty frontier")
	}
	var zero B
	state := f.items[f.head]
	f.items[f.head] = zero
	f.head++
	return state
}

func allEmpty[B any](frontiers *[NumDirections]frontier[B]) bool {
	for i := range frontiers {
		if !frontiers[i].Empty() {
			return false
		}
	}
	return true
}

func frontierLens[B any](frontiers *[NumDirections]frontier[B]) (lens [NumDirections]int) {
	for i := range frontiers {
		lens[i] = frontiers[i].Len()
	}
	return lens
}

// Shared depth bookkeeping of the four frontiers: number of states left
// at the current depth, and the number already queued for the next one
type depthCounter struct {
	remaining int
	queued    int
}

// Account for one processed state, returns true when the current depth is exhausted
func (c *depthCounter) pop() bool {
	c.remaining--
	if c.remaining < 0 {
		panic(fmt.Sprintf("[search] depthCounter: negative remaining count %d", c.remaining))
	}
	return c.remaining == 0
}

func (c *depthCounter) queue(n int) {
	if n < 0 {
		panic(fmt.Sprintf("[search] depthCounter: cannot queue %d states", n))
	}
	c.queued += n
}

// Move the queued states into the current depth
func (c *depthCounter) advance() {
	c.remaining = c.queued
	c.queued = 0
}
