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
	"quadplot.dev/go/quadplot/quadtree"
)

func buildState(t *testing.T, domain quadgeom.Rect, sampleSpacing, pixelSize float64, f quadtree.ValueFunc[bool]) *quadtree.State[bool] {
	t.Helper()
	state, err := quadtree.NewState[bool](domain, sampleSpacing, pixelSize)
	require.NoError(t, err)

	queue := &quadtree.Queue[bool]{}
	quadtree.NewSampler(f).Fill(state, nil, queue)
	quadtree.NewTraverser(f).Drain(state, queue)
	return state
}

// TestSquaresAllMatchesLeafCount mirrors spec scenario S3: the
// diagonal-feature tree has exactly 13 leaves before compression.
func TestSquaresAllMatchesLeafCount(t *testing.T) {
	f := func(x, y float64) bool { return x == y && x < 2 }
	state := buildState(t, quadgeom.Rect{Width: 4, Height: 4}, 2, 1, f)

	all := Squares(state, true)
	assert.Len(t, all, 13)
}

// TestSquaresCompressedMergesUniformSubtrees mirrors spec scenario S3:
// compression merges the two all-false subdivided quadrants plus the
// never-subdivided quadrant back into single size-2 tiles, leaving the
// mixed quadrant's four size-1 children unmerged — 7 tiles total.
func TestSquaresCompressedMergesUniformSubtrees(t *testing.T) {
	f := func(x, y float64) bool { return x == y && x < 2 }
	state := buildState(t, quadgeom.Rect{Width: 4, Height: 4}, 2, 1, f)

	squares := Squares(state, false)
	assert.Len(t, squares, 7)

	bigFalseTiles := 0
	for _, sq := range squares {
		if sq.Size == 2 {
			assert.False(t, sq.Value)
			bigFalseTiles++
		}
	}
	assert.Equal(t, 3, bigFalseTiles)
}

// TestSquaresCompressedTotalAreaMatchesDomain checks the compression
// pass never drops or double-counts area: the sum of tile areas equals
// the uncompressed leaf area, which equals the domain area.
func TestSquaresCompressedTotalAreaMatchesDomain(t *testing.T) {
	f := func(x, y float64) bool { return (x > 2) != (y > 1) }
	domain := quadgeom.Rect{Width: 8, Height: 4}
	state := buildState(t, domain, 4, 1, f)

	var area float64
	for _, sq := range Squares(state, false) {
		area += sq.Size * sq.Size
	}
	assert.InDelta(t, domain.Width*domain.Height, area, 1e-9)
}

// TestSquaresUniformDomainCompressesToOneTile covers spec scenario S1:
// a constant function never refines and compresses to a single tile
// covering the whole domain.
func TestSquaresUniformDomainCompressesToOneTile(t *testing.T) {
	domain := quadgeom.Rect{Width: 8, Height: 8}
	state := buildState(t, domain, 8, 1, func(x, y float64) bool { return true })

	squares := Squares(state, false)
	require.Len(t, squares, 1)
	assert.Equal(t, domain.Width, squares[0].Size)
	assert.True(t, squares[0].Value)
}

// TestSquaresCompressedIsIdempotent checks that calling Squares twice
// on the same state (exercising the value-caching side effect) yields
// the same result both times.
func TestSquaresCompressedIsIdempotent(t *testing.T) {
	f := func(x, y float64) bool { return x == y && x < 2 }
	state := buildState(t, quadgeom.Rect{Width: 4, Height: 4}, 2, 1, f)

	first := Squares(state, false)
	second := Squares(state, false)
	assert.ElementsMatch(t, first, second)
}
