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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quadplot.dev/go/quadplot/quadgeom"
)

// TestRunsCoverEachRowExactly checks that, for a fixed row y, the runs
// returned partition [domain.X, domain.Right()) with no gaps and no
// overlaps, regardless of the feature's shape.
func TestRunsCoverEachRowExactly(t *testing.T) {
	f := func(x, y float64) bool { return x == y && x < 2 }
	domain := quadgeom.Rect{Width: 4, Height: 4}
	state := buildState(t, domain, 2, 1, f)

	runs := Runs(state)
	rows := map[float64][]Run[bool]{}
	for _, r := range runs {
		rows[r.Y] = append(rows[r.Y], r)
	}

	pixelRows := int(domain.Height / state.PixelSize)
	assert.Len(t, rows, pixelRows)

	for y, rs := range rows {
		x := domain.X
		for _, r := range rs {
			assert.Equal(t, x, r.X0, "row %g has a gap or overlap before X0=%g", y, r.X0)
			assert.Greater(t, r.X1, r.X0)
			x = r.X1
		}
		assert.Equal(t, domain.Right(), x, "row %g does not reach the domain's right edge", y)
	}
}

// TestRunsMergeAdjacentEqualLeaves mirrors the uniform case (spec
// scenario S1): a constant function produces exactly one run per row,
// spanning the full domain width.
func TestRunsMergeAdjacentEqualLeaves(t *testing.T) {
	domain := quadgeom.Rect{Width: 8, Height: 4}
	state := buildState(t, domain, 4, 1, func(x, y float64) bool { return true })

	runs := Runs(state)
	require.Len(t, runs, int(domain.Height/state.PixelSize))
	for _, r := range runs {
		assert.Equal(t, domain.X, r.X0)
		assert.Equal(t, domain.Right(), r.X1)
		assert.True(t, r.Value)
	}
}

// TestRunsSplitAtValueBoundary checks that a vertical value boundary
// produces two runs per row, split exactly at the boundary.
func TestRunsSplitAtValueBoundary(t *testing.T) {
	domain := quadgeom.Rect{Width: 8, Height: 4}
	state := buildState(t, domain, 4, 1, func(x, y float64) bool { return x < 4 })

	runs := Runs(state)
	byRow := map[float64][]Run[bool]{}
	for _, r := range runs {
		byRow[r.Y] = append(byRow[r.Y], r)
	}
	for _, rs := range byRow {
		require.Len(t, rs, 2)
		assert.Equal(t, 4.0, rs[0].X1)
		assert.Equal(t, 4.0, rs[1].X0)
		assert.True(t, rs[0].Value)
		assert.False(t, rs[1].Value)
	}
}

func TestFindLeafLocatesCoveringCell(t *testing.T) {
	state := buildState(t, quadgeom.Rect{Width: 4, Height: 4}, 2, 1, func(x, y float64) bool { return false })
	leaf := findLeaf(state, 0.1, 0.1)
	require.NotNil(t, leaf)
	assert.Equal(t, 1.0, leaf.CenterX)
	assert.Equal(t, 1.0, leaf.CenterY)
	assert.Equal(t, 2.0, leaf.Size)
}
