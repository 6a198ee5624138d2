// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package erosion

import (
	"github.com/SoftbearStudios/tileworld/terrain"
	"math"
	"math/rand"
	"testing"
)

const tolerance = 1e-9

func spike() *terrain.Heightmap {
	return terrain.HeightmapFrom([][]float64{
		{0.1, 0.1, 0.1},
		{0.1, 0.9, 0.1},
		{0.1, 0.1, 0.1},
	})
}

func TestThermal_Conserves(t *testing.T) {
	for _, policy := range []terrain.ErosionPolicy{terrain.ErosionSnapshot, terrain.ErosionInPlace} {
		h := spike()
		before := h.Sum()

		Thermal(h, Config{Iterations: 1, Threshold: 0.1, Rate: DefaultRate, Policy: policy})

		if after := h.Sum(); math.Abs(after-before) > tolerance {
			t.Errorf("%s: sum changed from %g to %g", policy, before, after)
		}
		if h.At(1, 1) >= 0.9 {
			t.Errorf("%s: spike was not eroded: %g", policy, h.At(1, 1))
		}
		if h.At(0, 0) != 0.1 {
			t.Errorf("%s: diagonal neighbor changed, erosion should be 4-connected", policy)
		}
	}
}

func TestThermal_SpikeAmount(t *testing.T) {
	h := spike()
	Thermal(h, Config{Iterations: 1, Threshold: 0.1, Rate: DefaultRate, Policy: terrain.ErosionSnapshot})

	// 4 equal drops of 0.8, the spike loses 0.05*(0.8-0.1) split evenly.
	const moved = DefaultRate * (0.8 - 0.1)
	if got := h.At(1, 1); math.Abs(got-(0.9-moved)) > tolerance {
		t.Errorf("expected spike %g, got %g", 0.9-moved, got)
	}
	if got := h.At(1, 0); math.Abs(got-(0.1+moved/4)) > tolerance {
		t.Errorf("expected neighbor %g, got %g", 0.1+moved/4, got)
	}
}

func TestThermal_EarlyStop(t *testing.T) {
	h := terrain.HeightmapFrom([][]float64{
		{0.5, 0.5},
		{0.5, 0.5},
	})

	if n := Thermal(h, Config{Iterations: 10, Threshold: 0.1, Rate: DefaultRate}); n != 0 {
		t.Errorf("expected flat map to stop after 0 iterations, ran %d", n)
	}

	once, many := spike(), spike()
	Thermal(once, Config{Iterations: 1, Threshold: 0.1, Rate: DefaultRate})
	if n := Thermal(many, Config{Iterations: 100, Threshold: 0.1, Rate: DefaultRate}); n != 100 {
		t.Errorf("expected steep spike to keep eroding, stopped after %d", n)
	}
	if many.At(1, 1) >= once.At(1, 1) {
		t.Errorf("expected more iterations to flatten more: %g vs %g", many.At(1, 1), once.At(1, 1))
	}
}

func TestThermal_RandomConserves(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	h := terrain.NewHeightmap(0, 0, 32, 24)
	for i := range h.Data {
		h.Data[i] = r.Float64()
	}

	for _, policy := range []terrain.ErosionPolicy{terrain.ErosionSnapshot, terrain.ErosionInPlace} {
		c := h.Clone()
		before := c.Sum()
		Thermal(c, Config{Iterations: 20, Threshold: Threshold(32), Rate: DefaultRate, Policy: policy})
		if after := c.Sum(); math.Abs(after-before) > 1e-6 {
			t.Errorf("%s: sum changed from %g to %g", policy, before, after)
		}
	}
}

func TestConfigOf(t *testing.T) {
	config := terrain.DefaultConfig()
	config.WorldWidth = 200
	cfg := ConfigOf(&config)
	if cfg.Threshold != 0.02 || cfg.Iterations != config.ErosionIterations || cfg.Policy != config.ErosionPolicy {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func BenchmarkThermal(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	h := terrain.NewHeightmap(0, 0, 128, 128)
	for i := range h.Data {
		h.Data[i] = r.Float64()
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		Thermal(h.Clone(), Config{Iterations: 5, Threshold: Threshold(128), Rate: DefaultRate})
	}
}
