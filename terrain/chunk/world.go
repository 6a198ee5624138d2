// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package chunk

import (
	"fmt"
	"github.com/SoftbearStudios/tileworld/terrain"
	"github.com/SoftbearStudios/tileworld/terrain/erosion"
	"github.com/SoftbearStudios/tileworld/terrain/humidity"
	"github.com/SoftbearStudios/tileworld/world"
)

// World is a finite world generated all at once, then split into chunks.
type World struct {
	config   terrain.Config
	source   terrain.Source
	humidity *humidity.Field

	heights *terrain.Heightmap
	tiles   []terrain.Tile
	chunks  []*Chunk

	// Iterations erosion actually ran during the last Generate
	ErosionIterations int
}

// NewWorld generates a batch world and its chunks.
func NewWorld(config terrain.Config, source terrain.Source, field *humidity.Field) (*World, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Mode != terrain.Batch {
		return nil, fmt.Errorf("%w: world requires %s mode, got %s", terrain.ErrInvalidConfig, terrain.Batch, config.Mode)
	}

	w := &World{
		config:   config,
		source:   source,
		humidity: field,
	}
	w.Generate()
	w.RenderChunks()
	return w, nil
}

// Generate computes heights, erodes them, floods humidity from every water
// tile of the world and classifies every tile.
func (w *World) Generate() {
	w.heights = w.source.Generate(0, 0, w.config.WorldWidth, w.config.WorldHeight)
	w.ErosionIterations = erosion.Thermal(w.heights, erosion.ConfigOf(&w.config))

	wetness := w.humidity.Humidity(w.heights)
	w.tiles = make([]terrain.Tile, len(w.heights.Data))
	for i, height := range w.heights.Data {
		w.tiles[i] = terrain.Classify(height, wetness[i])
	}
}

// Reseed takes the seed of config, swaps the height source and humidity field,
// then regenerates everything.
func (w *World) Reseed(config terrain.Config, source terrain.Source, field *humidity.Field) {
	w.config.Seed = config.Seed
	w.source = source
	w.humidity = field
	w.Generate()
	w.RenderChunks()
}

// RenderChunks splits the tiles into (WorldWidth/ChunkWidth)*(WorldHeight/ChunkHeight)
// chunks, each dirty.
func (w *World) RenderChunks() []*Chunk {
	cw, ch := w.config.ChunkWidth, w.config.ChunkHeight
	columns, rows := w.config.WorldWidth/cw, w.config.WorldHeight/ch

	w.chunks = make([]*Chunk, 0, columns*rows)
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < columns; cx++ {
			tiles := make([]terrain.Tile, 0, cw*ch)
			for y := 0; y < ch; y++ {
				start := cx*cw + (cy*ch+y)*w.config.WorldWidth
				tiles = append(tiles, w.tiles[start:start+cw]...)
			}
			w.chunks = append(w.chunks, New(Coord{X: cx, Y: cy}, cw, ch, tiles))
		}
	}
	return w.chunks
}

// Chunks are the chunks built by the last RenderChunks, row by row.
func (w *World) Chunks() []*Chunk {
	return w.chunks
}

func (w *World) Config() terrain.Config {
	return w.config
}

// Heights are the eroded heights of the last Generate.
func (w *World) Heights() *terrain.Heightmap {
	return w.heights
}

// Tiles are row-major with a stride of WorldWidth.
func (w *World) Tiles() []terrain.Tile {
	return w.tiles
}

// TileAt returns the tile at (x, y), and false outside the world.
func (w *World) TileAt(tile world.Vec2i) (terrain.Tile, bool) {
	if tile.X < 0 || tile.Y < 0 || tile.X >= w.config.WorldWidth || tile.Y >= w.config.WorldHeight {
		return terrain.Tile{}, false
	}
	return w.tiles[tile.X+tile.Y*w.config.WorldWidth], true
}
