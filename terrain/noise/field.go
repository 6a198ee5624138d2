// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"github.com/aquilax/go-perlin"
	"math"
)

// sampleScale maps single octave perlin output (about ±√2/2) to ±0.5.
const sampleScale = math.Sqrt2 / 2

// Field is a continuous gradient noise field.
type Field struct {
	perlin *perlin.Perlin
}

// NewField creates a field whose permutation is derived from seed.
func NewField(seed int64) *Field {
	return &Field{
		// Single octave, octaves are summed by FBM.
		perlin: perlin.NewPerlin(2, 2, 1, seed),
	}
}

// Sample returns noise in [-0.5, 0.5].
func (f *Field) Sample(x, y float64) float64 {
	return clamp(f.perlin.Noise2D(x, y)*sampleScale, -0.5, 0.5)
}

// Noise01 returns noise in [0, 1].
func (f *Field) Noise01(x, y float64) float64 {
	return f.Sample(x, y) + 0.5
}

// FBM sums 3 octaves of Noise01, normalized back to [0, 1].
func (f *Field) FBM(x, y float64) float64 {
	return (f.Noise01(x, y) + 0.5*f.Noise01(2*x, 2*y) + 0.25*f.Noise01(4*x, 4*y)) / 1.75
}

func clamp(f, minimum, maximum float64) float64 {
	if f < minimum {
		return minimum
	}
	if f > maximum {
		return maximum
	}
	return f
}
