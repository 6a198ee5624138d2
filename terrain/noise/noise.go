// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"github.com/SoftbearStudios/tileworld/terrain"
	"github.com/SoftbearStudios/tileworld/world"
	"math"
	"math/rand"
)

// Generator generates a heightmap using domain warped fractal perlin noise.
type Generator struct {
	land *Field // Base heightmap noise
	warp *Field // Domain warp noise

	// Starting position in noise space, effectively the seed
	seedX, seedY float64

	width, height    float64
	centerX, centerY float64
	falloffRadius    float64

	terrainScale  float64
	perturbScale  float64
	perturbRadius float32
	warpDamping   float64
	falloff       bool
}

// New creates a Generator for the world described by config.
func New(config *terrain.Config) *Generator {
	// Drawn once per world and reused for every tile, so chunks generated at
	// different times line up.
	r := rand.New(rand.NewSource(config.Seed))
	seedX, seedY := r.Float64(), r.Float64()

	w, h := float64(config.WorldWidth), float64(config.WorldHeight)

	return &Generator{
		land:          NewField(config.Seed),
		warp:          NewField(config.Seed + 1),
		seedX:         seedX,
		seedY:         seedY,
		width:         w,
		height:        h,
		centerX:       w / 2,
		centerY:       h / 2,
		falloffRadius: math.Min(w/2, h/2),
		terrainScale:  config.TerrainScale,
		perturbScale:  config.PerturbScale,
		perturbRadius: float32(config.PerturbRadius),
		warpDamping:   config.WarpDamping,
		falloff:       config.Falloff,
	}
}

// HeightAt implements terrain.Source.HeightAt.
func (g *Generator) HeightAt(x, y int) float64 {
	u := float64(x) / g.width
	v := float64(y) / g.height

	// Perturbing adjusts which coordinate we look at in the land noise
	warp := g.warp.FBM(u*g.perturbScale+g.seedX, v*g.perturbScale+g.seedY) / g.warpDamping
	perturb := world.TurnAngle(float32(warp)).Vec2f().Mul(g.perturbRadius)

	h := g.land.FBM(
		u*g.terrainScale+g.seedX+float64(perturb.X),
		v*g.terrainScale+g.seedY+float64(perturb.Y),
	)

	if g.falloff {
		// 1 on the midpoints of the edges, > 1 towards the corners
		radial := math.Hypot(float64(x)-g.centerX, float64(y)-g.centerY) / g.falloffRadius

		// Don't remove much near the middle, only on the edges
		h -= EaseInExpo(radial)
	}

	return h
}

// Generate implements terrain.Source.Generate.
func (g *Generator) Generate(x, y, width, height int) *terrain.Heightmap {
	heightmap := terrain.NewHeightmap(x, y, width, height)

	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			heightmap.Data[i+j*width] = g.HeightAt(x+i, y+j)
		}
	}

	return heightmap
}

// EaseInExpo is 0 at 0, 2^-10 just above 0 and 1 at (or past) 1.
func EaseInExpo(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Pow(2, 10*math.Min(x, 1)-10)
}
