// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package chunk

import (
	"github.com/SoftbearStudios/tileworld/terrain"
	"github.com/SoftbearStudios/tileworld/terrain/humidity"
)

// Generate creates a streamed chunk. Humidity only sees water within
// config.HumidityMargin tiles of the chunk, and there is no erosion, so a
// streamed chunk differs slightly from the same tiles of a batch world.
func Generate(coord Coord, config *terrain.Config, source terrain.Source, field *humidity.Field) *Chunk {
	cw, ch := config.ChunkWidth, config.ChunkHeight
	margin := config.HumidityMargin
	origin := coord.Origin(cw, ch)

	heights := source.Generate(origin.X-margin, origin.Y-margin, cw+2*margin, ch+2*margin)
	wetness := field.Humidity(heights)

	tiles := make([]terrain.Tile, cw*ch)
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			i := heights.Index(x+margin, y+margin)
			tiles[x+y*cw] = terrain.Classify(heights.Data[i], wetness[i])
		}
	}

	return New(coord, cw, ch, tiles)
}
