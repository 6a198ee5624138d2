// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package chunk

import (
	"fmt"
	"github.com/SoftbearStudios/tileworld/world"
)

// Coord is the position of a chunk on the chunk grid. Chunk (0, 0) starts at tile (0, 0).
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CoordOf returns the chunk containing a tile.
func CoordOf(tile world.Vec2i, chunkWidth, chunkHeight int) Coord {
	return Coord{
		X: world.FloorDiv(tile.X, chunkWidth),
		Y: world.FloorDiv(tile.Y, chunkHeight),
	}
}

// Origin is the top left tile of the chunk.
func (c Coord) Origin(chunkWidth, chunkHeight int) world.Vec2i {
	return world.Vec2i{X: c.X * chunkWidth, Y: c.Y * chunkHeight}
}

// Neighbors are the 4-connected neighbors.
func (c Coord) Neighbors() (neighbors [4]Coord) {
	for i, n := range (world.Vec2i{X: c.X, Y: c.Y}).Neighbors4() {
		neighbors[i] = Coord{X: n.X, Y: n.Y}
	}
	return
}

func (c Coord) distanceSquared(other Coord) int {
	dx, dy := c.X-other.X, c.Y-other.Y
	return dx*dx + dy*dy
}

func (c Coord) String() string {
	return fmt.Sprintf("chunk(%d, %d)", c.X, c.Y)
}
