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

// Package extract walks a built quadtree.State to produce the two output
// shapes callers need: the compressed/uncompressed square listing and
// the row-wise run listing.
package extract

import "quadplot.dev/go/quadplot/quadtree"

// Square is one axis-aligned output tile: a square of edge Size centered
// at (X, Y) with the (possibly compressed) value of its subtree.
type Square[V comparable] struct {
	X, Y, Size float64
	Value      V
}

// quadrantOffsets enumerates the four child-quadrant directions, in the
// order NW, NE, SW, SE.
var quadrantOffsets = [4]struct{ dx, dy float64 }{
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// Squares returns the square tessellation of state. With all true it
// returns every leaf, in unspecified order. With all false (the
// default) it returns the compressed tessellation: uniform-valued
// subtrees are merged into a single tile, and the merge is cached into
// the tree (mutating composite node values) so repeated extraction is
// cheap.
func Squares[V comparable](state *quadtree.State[V], all bool) []Square[V] {
	if all {
		return allLeaves(state)
	}
	return compressed(state)
}

func allLeaves[V comparable](state *quadtree.State[V]) []Square[V] {
	var out []Square[V]
	for _, n := range state.Store.All() {
		if n.Leaf {
			out = append(out, Square[V]{X: n.CenterX, Y: n.CenterY, Size: n.Size, Value: n.Value})
		}
	}
	return out
}

// collectResult is the Uniform(V) | NonUniform sum type returned by
// collect: Uniform carries the subtree's unanimous value, NonUniform
// carries nothing.
type collectResult[V comparable] struct {
	uniform bool
	value   V
}

func uniform[V comparable](v V) collectResult[V] { return collectResult[V]{uniform: true, value: v} }
func nonUniform[V comparable]() collectResult[V] { return collectResult[V]{} }

// collect implements the bottom-up compression walk (spec §4.4). It
// appends any child subtree that turned out uniform while n's own
// subtree did not, and caches n.Value when n's subtree is uniform.
func collect[V comparable](state *quadtree.State[V], n *quadtree.Node[V], out *[]Square[V]) collectResult[V] {
	if n.Leaf {
		return uniform(n.Value)
	}

	var results [4]collectResult[V]
	var children [4]*quadtree.Node[V]
	mixed := false

	for i, q := range quadrantOffsets {
		child := n.Size / 2
		cx := n.CenterX + q.dx*child/2
		cy := n.CenterY + q.dy*child/2
		c, ok := state.Store.Get(state.Key(cx, cy))
		if !ok {
			mixed = true
			continue
		}
		children[i] = c
		results[i] = collect(state, c, out)
		if !results[i].uniform {
			mixed = true
		}
	}

	if !mixed {
		v := results[0].value
		for i := 1; i < 4; i++ {
			if results[i].value != v {
				mixed = true
				break
			}
		}
	}

	if mixed {
		for i, r := range results {
			if r.uniform && children[i] != nil {
				c := children[i]
				*out = append(*out, Square[V]{X: c.CenterX, Y: c.CenterY, Size: c.Size, Value: r.value})
			}
		}
		return nonUniform[V]()
	}

	n.Value = results[0].value // cache: this subtree is now represented by n
	return uniform(n.Value)
}

func compressed[V comparable](state *quadtree.State[V]) []Square[V] {
	var out []Square[V]
	spacing := state.SampleSpacing
	half := spacing / 2

	for y := state.Domain.Y + half; y < state.Domain.Top(); y += spacing {
		for x := state.Domain.X + half; x < state.Domain.Right(); x += spacing {
			n, ok := state.Store.Get(state.Key(x, y))
			if !ok {
				continue
			}
			if r := collect(state, n, &out); r.uniform {
				out = append(out, Square[V]{X: n.CenterX, Y: n.CenterY, Size: n.Size, Value: r.value})
			}
		}
	}
	return out
}
