// quadplot.dev/go/quadplot - adaptive quadtree sampling engine
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package quadtree

// ValueFunc evaluates the user's function at a point. V is the
// (comparable) value space.
type ValueFunc[V comparable] func(x, y float64) V

// Queue is a LIFO stack of leaves awaiting refinement. The Traverser
// drains it depth-first: most-recently-enqueued first.
type Queue[V comparable] struct {
	items []*Node[V]
}

// Push enqueues n.
func (q *Queue[V]) Push(n *Node[V]) {
	q.items = append(q.items, n)
}

// Pop removes and returns the most recently pushed node, or (nil, false)
// if the queue is empty.
func (q *Queue[V]) Pop() (*Node[V], bool) {
	n := len(q.items)
	if n == 0 {
		return nil, false
	}
	item := q.items[n-1]
	q.items = q.items[:n-1]
	return item, true
}

// Len reports the number of queued items.
func (q *Queue[V]) Len() int {
	return len(q.items)
}

// Sampler fills the coarse sample_spacing grid of a new State, reusing
// nodes from a previous State wherever their key coincides.
type Sampler[V comparable] struct {
	f ValueFunc[V]
}

// NewSampler returns a Sampler driven by f.
func NewSampler[V comparable](f ValueFunc[V]) *Sampler[V] {
	return &Sampler[V]{f: f}
}

// Fill ensures a size-SampleSpacing node exists at every coarse grid
// center of state.Domain, reusing nodes from prev (which may be nil) at
// coincident keys, and returns every freshly created leaf via queue so
// the caller can drive refinement. It reports how many new evaluations
// of f were performed.
func (s *Sampler[V]) Fill(state *State[V], prev *State[V], queue *Queue[V]) (newCalls int) {
	spacing := state.SampleSpacing
	half := spacing / 2

	for y := state.Domain.Y + half; y < state.Domain.Top(); y += spacing {
		for x := state.Domain.X + half; x < state.Domain.Right(); x += spacing {
			key := state.Key(x, y)
			if _, ok := state.Store.Get(key); ok {
				continue // already transplanted by incremental reuse
			}

			if prev != nil {
				if n, ok := prev.Store.Get(prev.Key(x, y)); ok && n.Size == spacing {
					state.Store.Put(key, n)
					continue
				}
			}

			n := &Node[V]{CenterX: x, CenterY: y, Size: spacing, Value: s.f(x, y), Leaf: true}
			state.Store.Put(key, n)
			queue.Push(n)
			newCalls++
		}
	}

	return newCalls
}
