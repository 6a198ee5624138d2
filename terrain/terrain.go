// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terrain holds the tile model shared by the generation pipeline:
// tile kinds and their classification, heightmaps, and world configuration.
package terrain

// Source generates heightmap data in tile coordinates.
// Implementations must be deterministic: the same tile always yields the
// same height no matter which region it is generated as part of.
type Source interface {
	// HeightAt returns the height of a single tile.
	HeightAt(x, y int) float64
	// Generate returns the heights of a width x height region with its corner at (x, y).
	Generate(x, y, width, height int) *Heightmap
}
