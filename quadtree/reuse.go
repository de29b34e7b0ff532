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

import "quadplot.dev/go/quadplot/quadgeom"

// CanReuse reports whether next may carry nodes forward from prev: the
// sampling parameters must match and the domains must overlap.
func CanReuse[V comparable](prev, next *State[V]) bool {
	if prev == nil {
		return false
	}
	if prev.SampleSpacing != next.SampleSpacing || prev.PixelSize != next.PixelSize {
		return false
	}
	_, ok := prev.Domain.Overlap(next.Domain)
	return ok
}

// containsCenter reports whether (x, y) lies within domain.
func containsCenter(domain quadgeom.Rect, x, y float64) bool {
	return x >= domain.X && x < domain.Right() && y >= domain.Y && y < domain.Top()
}

// nearShrunkBoundary reports whether the square (x, y, size) lies within
// one sample_spacing of an edge of next that moved inward relative to
// prev — the zone where previously-settled refinement needs to be
// reconsidered rather than blindly carried forward (spec §4.7).
func nearShrunkBoundary(x, y, size float64, prev, next quadgeom.Rect, spacing float64) bool {
	half := size / 2
	if next.X > prev.X && x-half < next.X+spacing {
		return true
	}
	if next.Right() < prev.Right() && x+half > next.Right()-spacing {
		return true
	}
	if next.Y > prev.Y && y-half < next.Y+spacing {
		return true
	}
	if next.Top() < prev.Top() && y+half > next.Top()-spacing {
		return true
	}
	return false
}

// withinSquare reports whether the square (x, y, size) lies entirely
// inside the square centered at (cx, cy) with edge length csize — the
// quadtree containment test used to recognize descendants of a node
// whose subtree is being discarded.
func withinSquare(x, y, size, cx, cy, csize float64) bool {
	if size >= csize {
		return false
	}
	half := csize / 2
	return x-size/2 >= cx-half && x+size/2 <= cx+half && y-size/2 >= cy-half && y+size/2 <= cy+half
}

// Carry transplants nodes from prev into next wherever they remain
// admissible, per spec §4.7. It assumes CanReuse(prev, next) holds.
// Leaves and interior nodes comfortably inside next.Domain (more than
// one sample_spacing from any boundary that shrank) are carried through
// unchanged. Nodes within one sample_spacing of a shrunk boundary are
// enqueued for reconsideration; if such a node is interior, its
// descendants are discarded and it is coerced to a leaf so that
// coverage stays exact while the traverser re-examines the boundary.
func Carry[V comparable](prev, next *State[V], queue *Queue[V]) {
	spacing := next.SampleSpacing

	var coerced []*Node[V]
	for _, n := range prev.Store.All() {
		if !containsCenter(next.Domain, n.CenterX, n.CenterY) {
			continue
		}
		if !n.Leaf && nearShrunkBoundary(n.CenterX, n.CenterY, n.Size, prev.Domain, next.Domain, spacing) {
			coerced = append(coerced, n)
		}
	}

	isDescendantOfCoerced := func(n *Node[V]) bool {
		for _, c := range coerced {
			if withinSquare(n.CenterX, n.CenterY, n.Size, c.CenterX, c.CenterY, c.Size) {
				return true
			}
		}
		return false
	}

	for _, n := range prev.Store.All() {
		if !containsCenter(next.Domain, n.CenterX, n.CenterY) {
			continue
		}
		if isDescendantOfCoerced(n) {
			continue
		}

		newKey := next.Key(n.CenterX, n.CenterY)

		if containsNode(coerced, n) {
			leaf := &Node[V]{CenterX: n.CenterX, CenterY: n.CenterY, Size: n.Size, Value: n.Value, Leaf: true}
			next.Store.Put(newKey, leaf)
			queue.Push(leaf)
			continue
		}

		next.Store.Put(newKey, n)
		if n.Leaf && nearShrunkBoundary(n.CenterX, n.CenterY, n.Size, prev.Domain, next.Domain, spacing) {
			queue.Push(n)
		}
	}
}

func containsNode[V comparable](set []*Node[V], n *Node[V]) bool {
	for _, c := range set {
		if c == n {
			return true
		}
	}
	return false
}
