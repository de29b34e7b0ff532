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

// Package quadgeom provides the axis-aligned rectangle primitives shared
// by the sampling engine: domain alignment to a sampling grid and
// overlap-area queries used by incremental reuse.
package quadgeom

import "math"

// Rect is an axis-aligned rectangle in plane coordinates.
// Width and Height must be non-negative.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Right returns X + Width.
func (r Rect) Right() float64 { return r.X + r.Width }

// Top returns Y + Height.
func (r Rect) Top() float64 { return r.Y + r.Height }

// Contains reports whether other lies entirely within r.
func (r Rect) Contains(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Top() <= r.Top()
}

// Overlap returns the intersection of r and other, and whether the
// intersection has positive area.
func (r Rect) Overlap(other Rect) (Rect, bool) {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.Right(), other.Right())
	y1 := min(r.Top(), other.Top())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}, false
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}

// AlignOutward returns the smallest rectangle that contains r and whose
// edges fall on multiples of spacing, extending outward in each direction.
func (r Rect) AlignOutward(spacing float64) Rect {
	x0 := math.Floor(r.X/spacing) * spacing
	y0 := math.Floor(r.Y/spacing) * spacing
	x1 := math.Ceil(r.Right()/spacing) * spacing
	y1 := math.Ceil(r.Top()/spacing) * spacing
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// IsPowerOfTwo reports whether v is a positive power of two.
func IsPowerOfTwo(v float64) bool {
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return false
	}
	lg := math.Log2(v)
	return math.Abs(lg-math.Round(lg)) < 1e-9
}
