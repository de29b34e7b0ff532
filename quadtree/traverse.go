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

// axisDirs enumerates the four axis-aligned neighbor directions E, W, S, N
// (y grows downward).
var axisDirs = [4]struct{ dx, dy int }{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// Neighbor looks up the axis neighbor of the square (x, y, s) in
// direction (dx, dy), trying the same-size slot first and falling back
// to the parent-size slot (an absent same-size slot means the neighbor
// is larger — the balanced-tree lookup).
func Neighbor[V comparable](state *State[V], x, y, s float64, dx, dy int) (*Node[V], bool) {
	nx := x + float64(dx)*s
	ny := y + float64(dy)*s
	if n, ok := state.Store.Get(state.Key(nx, ny)); ok {
		return n, true
	}

	px, py := ParentCenter(x, y, s)
	parentSize := 2 * s
	pnx := px + float64(dx)*parentSize
	pny := py + float64(dy)*parentSize
	if n, ok := state.Store.Get(state.Key(pnx, pny)); ok {
		return n, true
	}
	return nil, false
}

// Traverser drains a LIFO queue of leaves, subdividing near value
// discontinuities and repairing balance as it goes (spec §4.2, §4.6).
type Traverser[V comparable] struct {
	f ValueFunc[V]

	// newCalls and newArea accumulate during DrainCounting and are reset
	// at the start of each call.
	newCalls int
	newArea  float64
}

// NewTraverser returns a Traverser that evaluates f for newly created
// children.
func NewTraverser[V comparable](f ValueFunc[V]) *Traverser[V] {
	return &Traverser[V]{f: f}
}

// Drain processes queue until empty, mutating state in place.
func (t *Traverser[V]) Drain(state *State[V], queue *Queue[V]) {
	_, _ = t.DrainCounting(state, queue)
}

// DrainCounting is Drain plus bookkeeping: it returns the number of new
// evaluations of f performed and the total area newly evaluated, for
// compute_stats.
func (t *Traverser[V]) DrainCounting(state *State[V], queue *Queue[V]) (newCalls int, newArea float64) {
	t.newCalls, t.newArea = 0, 0
	for {
		n, ok := queue.Pop()
		if !ok {
			break
		}
		if !n.Leaf {
			continue // subdivided while queued
		}
		t.visit(state, n, queue)
	}
	return t.newCalls, t.newArea
}

// visit implements one pop of the traversal loop for node n.
func (t *Traverser[V]) visit(state *State[V], n *Node[V], queue *Queue[V]) {
	x, y, s, v := n.CenterX, n.CenterY, n.Size, n.Value

	if s == state.PixelSize {
		// At the finest resolution only a larger neighbor can still be
		// subdivided; n itself cannot go any finer. Only the two coarse
		// neighbors this child actually borders matter: the one across
		// its outer x-edge and the one across its outer y-edge, each
		// one parent-size step out from the parent's own center. The
		// other two axis directions from the parent's center land on
		// the parent's neighbors across its far edges, which this child
		// does not border.
		px, py := ParentCenter(x, y, s)
		parentSize := 2 * s
		outerDirX, outerDirY := 1, 1
		if x < px {
			outerDirX = -1
		}
		if y < py {
			outerDirY = -1
		}
		for _, d := range [2]struct{ dx, dy int }{{outerDirX, 0}, {0, outerDirY}} {
			qx := px + float64(d.dx)*parentSize
			qy := py + float64(d.dy)*parentSize
			nb, ok := state.Store.Get(state.Key(qx, qy))
			if ok && nb.Leaf && nb.Value != v {
				t.subdivide(state, nb, queue)
			}
		}
		return
	}

	disagree := false
	for _, d := range axisDirs {
		nb, ok := Neighbor(state, x, y, s, d.dx, d.dy)
		if !ok || nb.Value == v {
			continue
		}
		disagree = true
		if nb.Leaf {
			t.subdivide(state, nb, queue)
		}
	}
	if disagree {
		t.subdivide(state, n, queue)
	}
}

// subdivide splits the leaf n into four quadrant children of half its
// size, first recursively subdividing any larger leaf neighbor across
// n's outer x or y edge (the edges n shares with its parent's boundary)
// that would otherwise end up with a >2x size mismatch across the new
// children's edges (spec §4.6).
func (t *Traverser[V]) subdivide(state *State[V], n *Node[V], queue *Queue[V]) {
	s := n.Size
	if !n.Leaf || s <= state.PixelSize {
		return
	}
	x, y := n.CenterX, n.CenterY

	px, py := ParentCenter(x, y, s)
	dirX, dirY := 1, 1
	if x < px {
		dirX = -1
	}
	if y < py {
		dirY = -1
	}

	if sib, ok := Neighbor(state, x, y, s, dirX, 0); ok && sib.Leaf && sib.Size > s {
		t.subdivide(state, sib, queue)
	}
	if sib, ok := Neighbor(state, x, y, s, 0, dirY); ok && sib.Leaf && sib.Size > s {
		t.subdivide(state, sib, queue)
	}

	n.Leaf = false
	child := s / 2
	quadrants := [4]struct{ dx, dy float64 }{
		{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
	}
	for _, q := range quadrants {
		cx := x + q.dx*child/2
		cy := y + q.dy*child/2
		c := &Node[V]{CenterX: cx, CenterY: cy, Size: child, Value: t.f(cx, cy), Leaf: true}
		state.Store.Put(state.Key(cx, cy), c)
		queue.Push(c)
		t.newCalls++
		t.newArea += child * child
	}
}
