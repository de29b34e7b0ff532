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

package extract

import "quadplot.dev/go/quadplot/quadtree"

// Run is one value-constant horizontal segment, one pixel row tall.
// Y is the row center; [X0, X1) are its left and right edges.
type Run[V comparable] struct {
	X0, X1, Y float64
	Value     V
}

// Runs returns the row-wise run decomposition of state, sorted first by
// Y (top-to-bottom) then by X0 (spec §4.5).
func Runs[V comparable](state *quadtree.State[V]) []Run[V] {
	var out []Run[V]
	pixel := state.PixelSize
	domain := state.Domain

	for k := 0; ; k++ {
		y := domain.Y + (float64(k)+0.5)*pixel
		if y >= domain.Top() {
			break
		}
		out = append(out, rowRuns(state, y)...)
	}
	return out
}

// rowRuns walks one pixel row left to right, merging adjacent leaves of
// equal value into runs.
func rowRuns[V comparable](state *quadtree.State[V], y float64) []Run[V] {
	var out []Run[V]
	domain := state.Domain

	leaf := findLeaf(state, domain.X+state.PixelSize/2, y)
	if leaf == nil {
		return out
	}

	x0 := domain.X
	x1 := x0 + leaf.Size
	value := leaf.Value
	cur := leaf

	for x1 < domain.Right() {
		next, ok := eastLeaf(state, cur, y)
		if !ok {
			break
		}
		if next.Value == value {
			x1 += next.Size
			cur = next
			continue
		}
		out = append(out, Run[V]{X0: x0, X1: x1, Y: y, Value: value})
		x0 = x1
		x1 = x0 + next.Size
		value = next.Value
		cur = next
	}
	out = append(out, Run[V]{X0: x0, X1: x1, Y: y, Value: value})
	return out
}

// findLeaf locates the leaf covering (qx, qy), walking upward by
// doubling the candidate size and snapping to the containing cell's
// center until a node is found (spec §4.5 step 1).
func findLeaf[V comparable](state *quadtree.State[V], qx, qy float64) *quadtree.Node[V] {
	for size := state.PixelSize; size <= state.SampleSpacing; size *= 2 {
		cx := quadtree.SnapCenter(qx, size)
		cy := quadtree.SnapCenter(qy, size)
		if n, ok := state.Store.Get(state.Key(cx, cy)); ok {
			return n
		}
	}
	return nil
}

// eastLeaf finds the leaf immediately east of cur along row y. If the
// same-size east slot is empty, the neighbor is larger (parent-size
// fallback); if the neighbor found is an interior node, it descends
// into whichever west-side child is adjacent to row y.
func eastLeaf[V comparable](state *quadtree.State[V], cur *quadtree.Node[V], y float64) (*quadtree.Node[V], bool) {
	nb, ok := quadtree.Neighbor(state, cur.CenterX, cur.CenterY, cur.Size, 1, 0)
	if !ok {
		return nil, false
	}

	for !nb.Leaf {
		child := nb.Size / 2
		dy := child / 2
		if y < nb.CenterY {
			dy = -dy
		}
		cx := nb.CenterX - child/2
		cy := nb.CenterY + dy
		c, ok := state.Store.Get(state.Key(cx, cy))
		if !ok {
			return nil, false
		}
		nb = c
	}
	return nb, true
}
