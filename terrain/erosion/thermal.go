// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package erosion smooths heightmaps by sliding material down steep slopes.
package erosion

import "github.com/SoftbearStudios/tileworld/terrain"

// DefaultRate is the fraction of the excess drop moved per iteration.
const DefaultRate = 0.05

// Config holds parameters for thermal erosion.
type Config struct {
	Iterations int
	Threshold  float64 // Drops at or below this don't move material
	Rate       float64
	Policy     terrain.ErosionPolicy
}

// Threshold scales the slope threshold to the grid resolution.
func Threshold(worldWidth int) float64 {
	return 4.0 / float64(worldWidth)
}

// ConfigOf derives the erosion config of a world.
func ConfigOf(config *terrain.Config) Config {
	return Config{
		Iterations: config.ErosionIterations,
		Threshold:  Threshold(config.WorldWidth),
		Rate:       DefaultRate,
		Policy:     config.ErosionPolicy,
	}
}

// neighbors are 4-connected, in the same order for every pass.
var neighbors = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Thermal erodes h in place and returns the number of iterations run,
// which is less than cfg.Iterations if an iteration moved nothing.
//
// For every cell, each 4-connected neighbor lower by more than the threshold
// receives rate*(maxDelta-threshold)*(delta/totalDelta) of the cell's height.
// Material is only ever moved, so the sum of h is conserved.
func Thermal(h *terrain.Heightmap, cfg Config) int {
	if cfg.Iterations <= 0 || len(h.Data) == 0 {
		return 0
	}

	var (
		snapshot []float64
		deltas   []float64
	)
	if cfg.Policy != terrain.ErosionInPlace {
		snapshot = make([]float64, len(h.Data))
		deltas = make([]float64, len(h.Data))
	}

	for iter := 0; iter < cfg.Iterations; iter++ {
		var moved bool
		if snapshot != nil {
			copy(snapshot, h.Data)
			for i := range deltas {
				deltas[i] = 0
			}
			moved = erodePass(h, snapshot, deltas, cfg)
			for i, d := range deltas {
				h.Data[i] += d
			}
		} else {
			// Reads and writes the same grid so later cells see earlier moves.
			moved = erodePass(h, h.Data, h.Data, cfg)
		}

		if !moved {
			return iter
		}
	}

	return cfg.Iterations
}

// erodePass reads heights from src and accumulates moves into dst.
func erodePass(h *terrain.Heightmap, src, dst []float64, cfg Config) (moved bool) {
	var qualifying [4]int
	var drops [4]float64

	for y := 0; y < h.Height; y++ {
		for x := 0; x < h.Width; x++ {
			i := h.Index(x, y)
			height := src[i]

			n := 0
			var maxDelta, totalDelta float64
			for _, offset := range neighbors {
				nx, ny := x+offset[0], y+offset[1]
				if !h.InBounds(nx, ny) {
					continue
				}
				j := h.Index(nx, ny)
				delta := height - src[j]
				if delta <= cfg.Threshold {
					continue
				}
				qualifying[n] = j
				drops[n] = delta
				n++
				totalDelta += delta
				if delta > maxDelta {
					maxDelta = delta
				}
			}

			if n == 0 {
				continue
			}
			moved = true

			excess := cfg.Rate * (maxDelta - cfg.Threshold)
			for k := 0; k < n; k++ {
				amount := excess * drops[k] / totalDelta
				dst[i] -= amount
				dst[qualifying[k]] += amount
			}
		}
	}

	return
}
