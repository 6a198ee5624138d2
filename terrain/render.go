// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"fmt"
	"image"
	"image/color"
)

type ColorVec [3]float32

// shadeDarkening is how much a Shade of 0 darkens a tile relative to a Shade of 1.
const shadeDarkening = 0.25

// Color of the kind without shading.
func (kind Kind) Color() ColorVec {
	if !kind.Valid() {
		return Gray(0)
	}
	return kinds[kind].color
}

// Color of the tile, darker towards the bottom of its band.
func (tile Tile) Color() ColorVec {
	return tile.Kind.Color().Mul(1 - shadeDarkening + shadeDarkening*tile.Shade)
}

// RenderTiles draws one pixel per tile. tiles is row-major with the given stride.
func RenderTiles(tiles []Tile, stride int) *image.RGBA {
	height := 0
	if stride > 0 {
		height = len(tiles) / stride
	}
	img := image.NewRGBA(image.Rect(0, 0, stride, height))

	for j := 0; j < height; j++ {
		for i := 0; i < stride; i++ {
			img.SetRGBA(i, j, tiles[i+j*stride].Color().Color())
		}
	}

	return img
}

func Gray(v byte) ColorVec {
	return RGB(v, v, v)
}

func RGB(r, g, b byte) ColorVec {
	const factor = 1.0 / 255
	return ColorVec{float32(r) * factor, float32(g) * factor, float32(b) * factor}
}

func (vec ColorVec) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", floatToByte(vec[0]), floatToByte(vec[1]), floatToByte(vec[2]))
}

func (vec ColorVec) Mul(v float32) ColorVec {
	vec[0] *= v
	vec[1] *= v
	vec[2] *= v
	return vec
}

func (vec ColorVec) Color() color.RGBA {
	return color.RGBA{R: floatToByte(vec[0]), G: floatToByte(vec[1]), B: floatToByte(vec[2]), A: 255}
}

func floatToByte(f float32) byte {
	if f < 0 {
		return 0
	}
	if f > 1.0 {
		return 255
	}
	return byte(f * 255)
}
