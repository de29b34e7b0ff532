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

// Package quadtree implements the keyed balanced quadtree that backs the
// sampling engine: a map from integer key to Node, coarse-grid sampling,
// depth-first balanced refinement, and incremental reuse across domains.
package quadtree

import (
	"iter"
)

// Node is the atomic tree element: a square of edge Size centered at
// (CenterX, CenterY). Value is the result of evaluating the user
// function at the center for a leaf, or (once a uniform subtree has been
// compressed by extract.Squares) the unanimous value of the subtree.
// Leaf false means the four quadrant children exist in the owning Store
// under their own keys and must be consulted instead of Value.
type Node[V comparable] struct {
	CenterX, CenterY float64
	Size             float64
	Value            V
	Leaf             bool
}

// Key identifies a node by its admissible (center, size) under a given
// State's keying coefficients. See State.Key.
type Key = int64

// initialNodeCapacity is a starting size hint for the node map, chosen to
// avoid rehashing for small domains while staying cheap for large ones.
const initialNodeCapacity = 256

// Store is a map from Key to *Node, the sole way nodes are looked up:
// the tree has no child pointers, only key arithmetic performed by the
// owning State.
type Store[V comparable] struct {
	nodes map[Key]*Node[V]
}

// NewStore returns an empty Store.
func NewStore[V comparable]() *Store[V] {
	return &Store[V]{nodes: make(map[Key]*Node[V], initialNodeCapacity)}
}

// Get returns the node at key, if present.
func (s *Store[V]) Get(key Key) (*Node[V], bool) {
	n, ok := s.nodes[key]
	return n, ok
}

// Put inserts or overwrites the node at key.
func (s *Store[V]) Put(key Key, n *Node[V]) {
	s.nodes[key] = n
}

// Delete removes the node at key, if present.
func (s *Store[V]) Delete(key Key) {
	delete(s.nodes, key)
}

// Len returns the number of nodes currently stored.
func (s *Store[V]) Len() int {
	return len(s.nodes)
}

// All iterates over every (key, node) pair. Order is unspecified.
func (s *Store[V]) All() iter.Seq2[Key, *Node[V]] {
	return func(yield func(Key, *Node[V]) bool) {
		for k, n := range s.nodes {
			if !yield(k, n) {
				return
			}
		}
	}
}
