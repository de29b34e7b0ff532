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

// Package quadplot evaluates a user function over a rectangular domain
// and produces a compact, grid-aligned tessellation treating the
// function as locally constant. It is the engine behind a contour/region
// plotter: it decides where the function must be sampled, refines
// adaptively near value boundaries, caches samples across successive
// calls (pan/zoom), and emits either axis-aligned squares or horizontal
// runs.
package quadplot

import (
	"time"

	"quadplot.dev/go/quadplot/extract"
	"quadplot.dev/go/quadplot/quadgeom"
	"quadplot.dev/go/quadplot/quadtree"
)

// ErrInvalidArgument is returned for malformed sample spacing, pixel
// size, or domain dimensions.
var ErrInvalidArgument = quadtree.ErrInvalidArgument

// ErrRangeOverflow is returned when the keying coefficients would
// exceed the safe integer range of a float64 (extreme zoom/translation).
var ErrRangeOverflow = quadtree.ErrRangeOverflow

// ValueFunc evaluates the user's function at a point. V is the
// (comparable) value space the function maps into.
type ValueFunc[V comparable] = quadtree.ValueFunc[V]

// Rect is an axis-aligned domain rectangle.
type Rect = quadgeom.Rect

// Square is one output tile: a square of edge Size centered at (X, Y).
type Square[V comparable] = extract.Square[V]

// Run is one value-constant horizontal pixel-row segment.
type Run[V comparable] = extract.Run[V]

// Stats summarizes one Compute call.
type Stats struct {
	Size       int           // total nodes in the current store
	NewCalls   int           // evaluations of f performed by this call
	NewArea    float64       // area, in domain units, newly evaluated by this call
	Elapsed    time.Duration // wall time spent in this call
	Generation int           // number of Compute calls made so far
}

// Plot holds the user function and the state of the most recent
// Compute call. The zero value is not usable; create one with NewPlot.
type Plot[V comparable] struct {
	f       ValueFunc[V]
	state   *quadtree.State[V]
	stats   Stats
	sampler *quadtree.Sampler[V]
	trav    *quadtree.Traverser[V]
}

// NewPlot returns a Plot that evaluates f on demand.
func NewPlot[V comparable](f ValueFunc[V]) *Plot[V] {
	return &Plot[V]{
		f:       f,
		sampler: quadtree.NewSampler(f),
		trav:    quadtree.NewTraverser(f),
	}
}

// Compute (re)builds the tessellation over domain at the given
// sample_spacing and pixel_size, reusing the previous state's nodes
// where possible, and returns p for chaining.
//
// sample_spacing and pixel_size must be positive powers of two; domain
// dimensions must be non-negative. Errors from these checks are
// ErrInvalidArgument or ErrRangeOverflow and leave p's existing state
// unchanged. Panics or errors raised by f propagate untouched.
func (p *Plot[V]) Compute(domain Rect, sampleSpacing, pixelSize float64) (*Plot[V], error) {
	start := time.Now()

	next, err := quadtree.NewState[V](domain, sampleSpacing, pixelSize)
	if err != nil {
		return nil, err
	}

	prev := p.state
	queue := &quadtree.Queue[V]{}

	var newCalls int
	if quadtree.CanReuse(prev, next) {
		quadtree.Carry(prev, next, queue)
		newCalls = p.sampler.Fill(next, prev, queue)
	} else {
		newCalls = p.sampler.Fill(next, nil, queue)
	}

	newArea := float64(newCalls) * sampleSpacing * sampleSpacing

	if next.PixelSize < next.SampleSpacing {
		refineCalls, refineArea := p.trav.DrainCounting(next, queue)
		newCalls += refineCalls
		newArea += refineArea
	}

	p.state = next
	p.stats = Stats{
		Size:       next.Store.Len(),
		NewCalls:   newCalls,
		NewArea:    newArea,
		Elapsed:    time.Since(start),
		Generation: p.stats.Generation + 1,
	}
	return p, nil
}

// Domain returns the aligned rectangle actually covered by the most
// recent Compute call.
func (p *Plot[V]) Domain() Rect {
	if p.state == nil {
		return Rect{}
	}
	return p.state.Domain
}

// PixelSize returns the finest admissible leaf size from the most
// recent Compute call.
func (p *Plot[V]) PixelSize() float64 {
	if p.state == nil {
		return 0
	}
	return p.state.PixelSize
}

// Stats returns statistics for the most recent Compute call.
func (p *Plot[V]) Stats() Stats {
	return p.stats
}

// SquaresOption configures Squares.
type SquaresOption func(*squaresConfig)

type squaresConfig struct {
	all bool
}

// All selects the uncompressed leaf listing instead of the default
// compressed tessellation.
func All() SquaresOption {
	return func(c *squaresConfig) { c.all = true }
}

// Squares returns the square tessellation of the most recent Compute
// call. By default it returns the compressed tessellation (uniform
// subtrees merged into one tile); pass All() for the uncompressed leaf
// listing.
func (p *Plot[V]) Squares(opts ...SquaresOption) []Square[V] {
	if p.state == nil {
		return nil
	}
	var cfg squaresConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return extract.Squares(p.state, cfg.all)
}

// Runs returns the row-wise run decomposition of the most recent
// Compute call, sorted by Y then X0.
func (p *Plot[V]) Runs() []Run[V] {
	if p.state == nil {
		return nil
	}
	return extract.Runs(p.state)
}

// Leaves returns every leaf of the current tree, equivalent to
// Squares(All()). Exposed separately for callers (and tests) that only
// care about raw leaves without the functional-option call site.
func (p *Plot[V]) Leaves() []Square[V] {
	return p.Squares(All())
}
