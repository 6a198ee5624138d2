// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid terrain config")

// Mode selects between generating the whole world up front and streaming chunks on demand.
type Mode string

const (
	// Batch generates every tile of the world, erodes and floods humidity globally.
	Batch Mode = "batch"
	// Streaming generates chunks as the camera reaches them, humidity is approximated per chunk.
	Streaming Mode = "streaming"
)

// ErosionPolicy decides when erosion moves are applied within an iteration.
type ErosionPolicy string

const (
	// ErosionSnapshot computes every move of an iteration from the grid as it was
	// before the iteration and applies them afterwards.
	ErosionSnapshot ErosionPolicy = "snapshot"
	// ErosionInPlace applies each move during the scan, so later cells see earlier moves.
	ErosionInPlace ErosionPolicy = "inplace"
)

// MinResidentChunks is the smallest MaxChunks accepted in streaming mode:
// the current chunk and its 4 neighbors.
const MinResidentChunks = 5

// Config is the configuration of a world, fixed at creation.
type Config struct {
	Seed int64
	Mode Mode

	// World size in tiles. In streaming mode it still centers the radial falloff.
	WorldWidth  int
	WorldHeight int
	// TileSize is the edge of a tile in pixels at a camera scale of 1.
	TileSize    int
	ChunkWidth  int
	ChunkHeight int

	TerrainScale  float64 // Higher = more fine detail for the base terrain
	PerturbScale  float64 // How detailed the perturbation is
	PerturbRadius float64 // Length of the domain warp offset
	WarpDamping   float64 // Divides the warp noise before it becomes an angle
	Falloff       bool    // Push world edges down to water

	ErosionIterations int
	ErosionPolicy     ErosionPolicy

	HumidityCap         float64 // Distance to water where humidity reaches 0, 0 means WorldWidth/10
	HumidityMargin      int     // Extra tiles flooded around a streamed chunk
	HumidityJitter      float64 // Amplitude of noise blended into humidity
	HumidityJitterScale float64 // Frequency of that noise per tile

	TextureScale        float64   // Cellular texture cells per tile edge, 0 disables texture
	TextureCoefficients []float64 // Weights of the nearest cellular distances, empty means F2 - F1

	MinScale     float64
	MaxScale     float64
	ZoomStep     float64 // Fraction of scale changed per wheel notch
	PanSpeed     float64 // World pixels per frame at scale 1
	EdgeFraction float64 // Fraction of the screen at each edge that pans

	DrawOutlines bool

	MaxChunks           int // Generated chunks kept before evicting, 0 = unbounded
	MaxGeneratePerFrame int // Frontier chunks generated per frame, 0 = unbounded

	ScreenWidth  int
	ScreenHeight int
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		Seed:                56,
		Mode:                Streaming,
		WorldWidth:          256,
		WorldHeight:         256,
		TileSize:            8,
		ChunkWidth:          16,
		ChunkHeight:         16,
		TerrainScale:        8,
		PerturbScale:        16,
		PerturbRadius:       1,
		WarpDamping:         16,
		Falloff:             true,
		ErosionIterations:   50,
		ErosionPolicy:       ErosionSnapshot,
		HumidityJitter:      0.05,
		HumidityJitterScale: 0.1,
		TextureScale:        2,
		MinScale:            0.1,
		MaxScale:            10,
		ZoomStep:            0.05,
		PanSpeed:            1,
		EdgeFraction:        0.1,
		ScreenWidth:         1280,
		ScreenHeight:        720,
	}
}

// Bind registers flags for every option so they can override the defaults already in c.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.Int64Var(&c.Seed, "seed", c.Seed, "world seed")
	fs.StringVar((*string)(&c.Mode), "mode", string(c.Mode), "generation mode: batch or streaming")
	fs.IntVar(&c.WorldWidth, "world-width", c.WorldWidth, "world width in tiles")
	fs.IntVar(&c.WorldHeight, "world-height", c.WorldHeight, "world height in tiles")
	fs.IntVar(&c.TileSize, "tile-size", c.TileSize, "tile edge in pixels")
	fs.IntVar(&c.ChunkWidth, "chunk-width", c.ChunkWidth, "chunk width in tiles")
	fs.IntVar(&c.ChunkHeight, "chunk-height", c.ChunkHeight, "chunk height in tiles")
	fs.Float64Var(&c.TerrainScale, "terrain-scale", c.TerrainScale, "base terrain frequency")
	fs.Float64Var(&c.PerturbScale, "perturb-scale", c.PerturbScale, "domain warp frequency")
	fs.BoolVar(&c.Falloff, "falloff", c.Falloff, "sink the edges of the world into water")
	fs.IntVar(&c.ErosionIterations, "erosion-iterations", c.ErosionIterations, "thermal erosion iterations (batch mode)")
	fs.StringVar((*string)(&c.ErosionPolicy), "erosion-policy", string(c.ErosionPolicy), "erosion update policy: snapshot or inplace")
	fs.Float64Var(&c.HumidityCap, "humidity-cap", c.HumidityCap, "distance to water where humidity reaches 0 (0 = world-width/10)")
	fs.IntVar(&c.HumidityMargin, "humidity-margin", c.HumidityMargin, "extra tiles flooded around each streamed chunk")
	fs.Float64Var(&c.HumidityJitter, "humidity-jitter", c.HumidityJitter, "noise blended into humidity")
	fs.Float64Var(&c.TextureScale, "texture-scale", c.TextureScale, "cellular texture cells per tile edge (0 = untextured)")
	fs.Func("texture-coefficients", "comma separated weights of the nearest cellular distances, e.g. 1 for bubbles (default -1,1 for edges)", func(value string) error {
		coefficients, err := parseFloats(value)
		if err != nil {
			return err
		}
		c.TextureCoefficients = coefficients
		return nil
	})
	fs.Float64Var(&c.ZoomStep, "zoom-step", c.ZoomStep, "fraction of scale changed per wheel notch")
	fs.BoolVar(&c.DrawOutlines, "outlines", c.DrawOutlines, "draw chunk outlines")
	fs.IntVar(&c.MaxChunks, "max-chunks", c.MaxChunks, "generated chunks kept in memory (0 = unbounded)")
	fs.IntVar(&c.MaxGeneratePerFrame, "max-generate", c.MaxGeneratePerFrame, "frontier chunks generated per frame (0 = unbounded)")
	fs.IntVar(&c.ScreenWidth, "screen-width", c.ScreenWidth, "viewport width in pixels")
	fs.IntVar(&c.ScreenHeight, "screen-height", c.ScreenHeight, "viewport height in pixels")
}

// Validate rejects configurations that would index out of range or never terminate.
func (c *Config) Validate() error {
	switch {
	case c.WorldWidth <= 0 || c.WorldHeight <= 0:
		return invalid("world size %dx%d must be positive", c.WorldWidth, c.WorldHeight)
	case c.TileSize <= 0:
		return invalid("tile size %d must be positive", c.TileSize)
	case c.ChunkWidth <= 0 || c.ChunkHeight <= 0:
		return invalid("chunk size %dx%d must be positive", c.ChunkWidth, c.ChunkHeight)
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return invalid("screen size %dx%d must be positive", c.ScreenWidth, c.ScreenHeight)
	case c.TerrainScale <= 0 || c.PerturbScale <= 0:
		return invalid("terrain scale %g and perturb scale %g must be positive", c.TerrainScale, c.PerturbScale)
	case c.WarpDamping <= 0:
		return invalid("warp damping %g must be positive", c.WarpDamping)
	case c.PerturbRadius < 0:
		return invalid("perturb radius %g must not be negative", c.PerturbRadius)
	case c.ErosionIterations < 0:
		return invalid("erosion iterations %d must not be negative", c.ErosionIterations)
	case c.ErosionPolicy != ErosionSnapshot && c.ErosionPolicy != ErosionInPlace:
		return invalid("unknown erosion policy %q", c.ErosionPolicy)
	case c.HumidityCap < 0:
		return invalid("humidity cap %g must not be negative", c.HumidityCap)
	case c.HumidityMargin < 0:
		return invalid("humidity margin %d must not be negative", c.HumidityMargin)
	case c.HumidityJitter < 0 || c.HumidityJitter > 1:
		return invalid("humidity jitter %g must be in [0, 1]", c.HumidityJitter)
	case c.TextureScale < 0:
		return invalid("texture scale %g must not be negative", c.TextureScale)
	case c.MinScale <= 0 || c.MaxScale < c.MinScale:
		return invalid("scale bounds [%g, %g] must be positive and ordered", c.MinScale, c.MaxScale)
	case c.ZoomStep <= 0 || c.ZoomStep >= 1:
		return invalid("zoom step %g must be in (0, 1)", c.ZoomStep)
	case c.EdgeFraction < 0 || c.EdgeFraction >= 0.5:
		return invalid("edge fraction %g must be in [0, 0.5)", c.EdgeFraction)
	case c.MaxChunks < 0 || c.MaxGeneratePerFrame < 0:
		return invalid("chunk limits (%d, %d) must not be negative", c.MaxChunks, c.MaxGeneratePerFrame)
	}

	switch c.Mode {
	case Batch:
		if c.WorldWidth%c.ChunkWidth != 0 || c.WorldHeight%c.ChunkHeight != 0 {
			return invalid("chunk size %dx%d does not divide world size %dx%d",
				c.ChunkWidth, c.ChunkHeight, c.WorldWidth, c.WorldHeight)
		}
		if c.MaxChunks != 0 && c.MaxChunks < c.ChunkCount() {
			return invalid("max chunks %d cannot hold the %d chunks of a batch world", c.MaxChunks, c.ChunkCount())
		}
	case Streaming:
		if c.MaxChunks != 0 && c.MaxChunks < MinResidentChunks {
			return invalid("max chunks %d is below the minimum of %d", c.MaxChunks, MinResidentChunks)
		}
	default:
		return invalid("unknown mode %q", c.Mode)
	}

	return nil
}

// ChunkCount is the number of chunks covering the world in batch mode.
func (c *Config) ChunkCount() int {
	return (c.WorldWidth / c.ChunkWidth) * (c.WorldHeight / c.ChunkHeight)
}

// HumidityDistanceCap resolves the HumidityCap default.
func (c *Config) HumidityDistanceCap() float64 {
	if c.HumidityCap > 0 {
		return c.HumidityCap
	}
	if d := float64(c.WorldWidth) / 10; d >= 1 {
		return d
	}
	return 1
}

func parseFloats(value string) ([]float64, error) {
	var floats []float64
	for _, field := range strings.Split(value, ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, err
		}
		floats = append(floats, f)
	}
	return floats, nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
