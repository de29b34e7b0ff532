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

import (
	"errors"
	"fmt"
	"math"

	"quadplot.dev/go/quadplot/quadgeom"
)

// ErrInvalidArgument is returned for malformed sample spacing, pixel
// size, or domain dimensions.
var ErrInvalidArgument = errors.New("quadtree: invalid argument")

// ErrRangeOverflow is returned when the keying coefficients would exceed
// the safe integer range of a float64, which happens at extreme zoom or
// translation. See State.Key.
var ErrRangeOverflow = errors.New("quadtree: range overflow")

// safeIntegerBound mirrors the largest integer a float64 can represent
// exactly (2^53); keys are built by float64 arithmetic before truncation,
// so the additive offset C0 must stay well inside this range.
const safeIntegerBound = 1 << 53

// State holds the immutable parameters of one Compute call plus the
// mutable node store being built for it.
type State[V comparable] struct {
	Store         *Store[V]
	Domain        quadgeom.Rect // aligned to SampleSpacing
	SampleSpacing float64
	PixelSize     float64

	// Cx, Cy, C0 are the keying coefficients: Key(x,y) = floor(C0 + Cx*x + Cy*y).
	Cx, Cy, C0 float64
}

// NewState validates sampleSpacing, pixelSize, and domain, aligns domain
// outward to sampleSpacing, derives keying coefficients, and returns a
// State with a fresh empty Store.
func NewState[V comparable](domain quadgeom.Rect, sampleSpacing, pixelSize float64) (*State[V], error) {
	if domain.Width < 0 || domain.Height < 0 {
		return nil, fmt.Errorf("%w: negative domain dimension (%g x %g)", ErrInvalidArgument, domain.Width, domain.Height)
	}
	if !quadgeom.IsPowerOfTwo(sampleSpacing) {
		return nil, fmt.Errorf("%w: sample_spacing %g is not a positive power of two", ErrInvalidArgument, sampleSpacing)
	}
	if !quadgeom.IsPowerOfTwo(pixelSize) {
		return nil, fmt.Errorf("%w: pixel_size %g is not a positive power of two", ErrInvalidArgument, pixelSize)
	}
	if pixelSize > sampleSpacing {
		pixelSize = sampleSpacing
	}

	aligned := domain.AlignOutward(sampleSpacing)

	cx := 2 / pixelSize
	cy := cx * (aligned.Width / pixelSize)
	c0 := -cx*aligned.X - cy*aligned.Y

	if math.Abs(c0) > safeIntegerBound/2 {
		return nil, fmt.Errorf("%w: keying offset %g exceeds safe integer range", ErrRangeOverflow, c0)
	}

	return &State[V]{
		Store:         NewStore[V](),
		Domain:        aligned,
		SampleSpacing: sampleSpacing,
		PixelSize:     pixelSize,
		Cx:            cx,
		Cy:            cy,
		C0:            c0,
	}, nil
}

// Key returns the integer key for a node centered at (x, y). It does not
// depend on size: invariant 5 (center alignment) together with the
// choice of Cx/Cy makes the key an injection on admissible centers.
func (s *State[V]) Key(x, y float64) Key {
	return Key(math.Floor(s.C0 + s.Cx*x + s.Cy*y))
}

// SnapCenter returns the center, along one axis, of the size-`size`
// grid cell containing coordinate q. Valid because every admissible
// domain boundary is itself a multiple of every power-of-two size
// between pixel_size and sample_spacing, so a grid anchored at the
// origin agrees with one anchored at the domain boundary.
func SnapCenter(q, size float64) float64 {
	return (math.Floor(q/size) + 0.5) * size
}

// ParentCenter returns the center of the size-2s square that contains
// the square of size s centered at (x, y).
func ParentCenter(x, y, s float64) (px, py float64) {
	parentSize := 2 * s
	return SnapCenter(x, parentSize), SnapCenter(y, parentSize)
}
