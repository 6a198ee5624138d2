// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chunk splits the infinite tile grid into fixed size chunks, generates
// them on demand as the camera moves and caches their rendered pixels.
package chunk

import (
	"fmt"
	"github.com/SoftbearStudios/tileworld/terrain"
	"image"
)

// State is the lifecycle of a chunk coordinate.
type State uint8

const (
	// Unknown coordinates are neither generated nor queued.
	Unknown State = iota
	// Frontier coordinates neighbor a generated chunk and are generated once visible.
	Frontier
	// Generated chunks have tiles but no render cache yet.
	Generated
	// Rendered chunks have an up to date render cache.
	Rendered
)

func (s State) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Frontier:
		return "frontier"
	case Generated:
		return "generated"
	case Rendered:
		return "rendered"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Chunk is a fixed size block of tiles. Tiles never change after creation,
// regenerating a chunk replaces it.
type Chunk struct {
	Coord  Coord
	width  int
	height int
	tiles  []terrain.Tile

	// Render cache, painted at a camera scale of 1
	cache *image.RGBA
	// cache resized for scaledFor
	scaled    *image.RGBA
	scaledFor float32
	dirty     bool
}

// New wraps row-major tiles, which must be exactly width*height long.
func New(coord Coord, width, height int, tiles []terrain.Tile) *Chunk {
	if len(tiles) != width*height {
		panic(fmt.Sprintf("chunk %s: %d tiles for %dx%d", coord, len(tiles), width, height))
	}
	return &Chunk{
		Coord:  coord,
		width:  width,
		height: height,
		tiles:  tiles,
		dirty:  true,
	}
}

func (c *Chunk) Width() int {
	return c.width
}

func (c *Chunk) Height() int {
	return c.height
}

// At local tile (x, y).
func (c *Chunk) At(x, y int) terrain.Tile {
	return c.tiles[x+y*c.width]
}

// Tiles returns a copy of the row-major tiles.
func (c *Chunk) Tiles() []terrain.Tile {
	tiles := make([]terrain.Tile, len(c.tiles))
	copy(tiles, c.tiles)
	return tiles
}

// Kinds returns the row-major tile kinds.
func (c *Chunk) Kinds() []terrain.Kind {
	kinds := make([]terrain.Kind, len(c.tiles))
	for i, tile := range c.tiles {
		kinds[i] = tile.Kind
	}
	return kinds
}

// Dirty is true until the render cache is painted.
func (c *Chunk) Dirty() bool {
	return c.dirty
}

// State is Generated or Rendered.
func (c *Chunk) State() State {
	if c.dirty || c.cache == nil {
		return Generated
	}
	return Rendered
}

// Cache is the render cache at a camera scale of 1, nil until painted.
func (c *Chunk) Cache() *image.RGBA {
	return c.cache
}
