// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"math"
	"sort"
)

// CellCount is the number of cells searched around a point: the cell itself and its 8 neighbors.
const CellCount = 9

// Cellular is worley noise. Each integer cell owns one feature point,
// placed by hashing the cell so it never moves between calls.
type Cellular struct {
	seed uint32
}

func NewCellular(seed int64) Cellular {
	return Cellular{seed: seed32(seed)}
}

// featurePoint is the offset of the cell's feature point within the cell, in [0, 1).
func (c Cellular) featurePoint(cellX, cellY int) (float64, float64) {
	h := hash2(c.seed, int32(cellX), int32(cellY))
	return float64(h&0xffff) / 0x10000, float64(h>>16) / 0x10000
}

// Distances returns the squared distances from (x, y) to the feature points of
// the 9 cells around it, nearest first. The point is scaled by cols on x and rows
// on y, so a point in [0, 1]² covers a cols x rows grid of cells.
//
// A point near a cell edge can be slightly closer to a feature point 2 cells away,
// which is not searched.
func (c Cellular) Distances(x, y float64, rows, cols int) (dists [CellCount]float64) {
	x *= float64(cols)
	y *= float64(rows)

	// Integer part is the cell, fractional part is the position in it.
	ix, iy := math.Floor(x), math.Floor(y)
	fx, fy := x-ix, y-iy
	cellX, cellY := int(ix), int(iy)

	i := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			px, py := c.featurePoint(cellX+dx, cellY+dy)
			diffX := float64(dx) + px - fx
			diffY := float64(dy) + py - fy
			dists[i] = diffX*diffX + diffY*diffY
			i++
		}
	}

	sort.Float64s(dists[:])
	return
}

// EdgeCoefficients make Combine compute F2 - F1.
var EdgeCoefficients = []float64{-1, 1}

// Edges is F2 - F1, 0 along cell borders and growing towards feature points, clamped to [0, 1].
func (c Cellular) Edges(x, y float64, rows, cols int) float64 {
	return c.Value(x, y, rows, cols, EdgeCoefficients)
}

// Value is Combine of the Distances at (x, y), clamped to [0, 1].
func (c Cellular) Value(x, y float64, rows, cols int, coefficients []float64) float64 {
	return clamp(Combine(c.Distances(x, y, rows, cols), coefficients), 0, 1)
}

// Combine weighs the nearest distances with coefficients. For example {1} gives
// bubbles and {-1, 1} gives straight borders between cells.
func Combine(dists [CellCount]float64, coefficients []float64) (v float64) {
	for i, coefficient := range coefficients {
		if i >= len(dists) {
			break
		}
		v += dists[i] * coefficient
	}
	return
}
