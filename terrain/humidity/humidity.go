// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package humidity derives humidity from the grid distance to the nearest water.
package humidity

import (
	"github.com/SoftbearStudios/tileworld/terrain"
	"github.com/ojrac/opensimplex-go"
)

// Unreached is the distance of a cell with no path to water.
const Unreached = -1

var neighbors = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Distances floods outwards from every cell lower than waterLevel through
// 4-connected neighbors, one ring at a time, so each cell gets its shortest
// path (not euclidean) distance to water. Every cell is visited at most once.
func Distances(h *terrain.Heightmap, waterLevel float64) []int {
	dists := make([]int, len(h.Data))
	ring := make([]int, 0, len(h.Data)/4+1)

	for i, height := range h.Data {
		if height < waterLevel {
			dists[i] = 0
			ring = append(ring, i)
		} else {
			dists[i] = Unreached
		}
	}

	next := make([]int, 0, cap(ring))
	for distance := 1; len(ring) > 0; distance++ {
		next = next[:0]
		for _, i := range ring {
			x, y := i%h.Width, i/h.Width
			for _, offset := range neighbors {
				nx, ny := x+offset[0], y+offset[1]
				if !h.InBounds(nx, ny) {
					continue
				}
				j := h.Index(nx, ny)
				if dists[j] != Unreached {
					continue
				}
				dists[j] = distance
				next = append(next, j)
			}
		}
		ring, next = next, ring
	}

	return dists
}

// Normalize maps a distance to humidity: 1 at water, 0 at or past cap.
func Normalize(distance int, cap float64) float64 {
	d := float64(distance)
	if distance == Unreached || d > cap {
		d = cap
	}
	return 1 - d/cap
}

// Field computes humidity for heightmaps.
type Field struct {
	WaterLevel float64
	Cap        float64

	// Jitter of noise blended in to break up the rings of equal distance.
	Jitter      float64
	JitterScale float64
	noise       opensimplex.Noise
}

// New creates the humidity field of a world.
func New(config *terrain.Config) *Field {
	return &Field{
		WaterLevel:  terrain.WaterLevel,
		Cap:         config.HumidityDistanceCap(),
		Jitter:      config.HumidityJitter,
		JitterScale: config.HumidityJitterScale,
		// Independent of the height noise
		noise: opensimplex.NewNormalized(config.Seed + 2),
	}
}

// Humidity returns the humidity in [0, 1] of every cell of h. Only water within
// h is seen: run over the whole world for a global flood, or over a chunk
// (plus a margin) for a cheaper local approximation.
func (f *Field) Humidity(h *terrain.Heightmap) []float64 {
	dists := Distances(h, f.WaterLevel)
	humidity := make([]float64, len(dists))

	for i, d := range dists {
		v := Normalize(d, f.Cap)
		if f.Jitter > 0 && f.noise != nil {
			// Sampled in world tiles so neighboring chunks agree.
			x := float64(h.OriginX + i%h.Width)
			y := float64(h.OriginY + i/h.Width)
			v += f.Jitter * (f.noise.Eval2(x*f.JitterScale, y*f.JitterScale) - 0.5) * 2
		}
		humidity[i] = clamp01(v)
	}

	return humidity
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
