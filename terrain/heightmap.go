// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

// Heightmap is a dense row-major grid of samples whose top left cell
// is at tile (OriginX, OriginY).
type Heightmap struct {
	OriginX int
	OriginY int
	Width   int
	Height  int
	Data    []float64
}

func NewHeightmap(originX, originY, width, height int) *Heightmap {
	return &Heightmap{
		OriginX: originX,
		OriginY: originY,
		Width:   width,
		Height:  height,
		Data:    make([]float64, width*height),
	}
}

// HeightmapFrom wraps rows (indexed [y][x]) at the origin, mostly for tests.
func HeightmapFrom(rows [][]float64) *Heightmap {
	h := NewHeightmap(0, 0, 0, len(rows))
	if len(rows) > 0 {
		h.Width = len(rows[0])
	}
	h.Data = make([]float64, h.Width*h.Height)
	for y, row := range rows {
		copy(h.Data[y*h.Width:(y+1)*h.Width], row)
	}
	return h
}

// Index of local (x, y).
func (h *Heightmap) Index(x, y int) int {
	return y*h.Width + x
}

func (h *Heightmap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < h.Width && y < h.Height
}

// At local (x, y).
func (h *Heightmap) At(x, y int) float64 {
	return h.Data[h.Index(x, y)]
}

func (h *Heightmap) Set(x, y int, value float64) {
	h.Data[h.Index(x, y)] = value
}

// Sum of all samples.
func (h *Heightmap) Sum() (sum float64) {
	for _, v := range h.Data {
		sum += v
	}
	return
}

func (h *Heightmap) Clone() *Heightmap {
	c := *h
	c.Data = make([]float64, len(h.Data))
	copy(c.Data, h.Data)
	return &c
}
