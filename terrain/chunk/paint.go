// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package chunk

import (
	"github.com/SoftbearStudios/tileworld/terrain"
	"github.com/SoftbearStudios/tileworld/terrain/noise"
	"github.com/SoftbearStudios/tileworld/world"
	"image"
)

// textureDepth is how much the darkest texel darkens a textured tile.
const textureDepth = 0.2

// Texture gives a brightness in [0, 1] at a continuous world tile position.
type Texture interface {
	At(x, y float64) float64
}

type cellularTexture struct {
	cellular     noise.Cellular
	scale        float64
	coefficients []float64
}

// CellularTexture textures tiles with cellular noise, cellsPerTile cells along each
// tile edge. The nearest distances are weighed by coefficients, see noise.Combine.
// No coefficients means noise.EdgeCoefficients.
func CellularTexture(cellular noise.Cellular, cellsPerTile float64, coefficients ...float64) Texture {
	if len(coefficients) == 0 {
		coefficients = noise.EdgeCoefficients
	}
	return cellularTexture{cellular: cellular, scale: cellsPerTile, coefficients: coefficients}
}

func (t cellularTexture) At(x, y float64) float64 {
	// Cells are one unit, so rows and cols of 1 make the cell grid follow the scale.
	return t.cellular.Value(x*t.scale, y*t.scale, 1, 1, t.coefficients)
}

// TextureOf returns the texture of a world, or nil if it is disabled.
func TextureOf(config *terrain.Config) Texture {
	if config.TextureScale <= 0 {
		return nil
	}
	// Independent of height and humidity noise
	return CellularTexture(noise.NewCellular(config.Seed+3), config.TextureScale, config.TextureCoefficients...)
}

// Paint draws the chunk at tileSize pixels per tile. Textured kinds are
// modulated by texture, if not nil.
func Paint(c *Chunk, tileSize int, texture Texture) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width*tileSize, c.height*tileSize))
	origin := c.Coord.Origin(c.width, c.height)
	inv := 1 / float64(tileSize)

	for ty := 0; ty < c.height; ty++ {
		for tx := 0; tx < c.width; tx++ {
			tile := c.At(tx, ty)
			base := tile.Color()
			textured := texture != nil && tile.Kind.Textured()

			for py := 0; py < tileSize; py++ {
				for px := 0; px < tileSize; px++ {
					col := base
					if textured {
						// Pixel centers in world tiles, continuous across chunks
						wx := float64(origin.X+tx) + (float64(px)+0.5)*inv
						wy := float64(origin.Y+ty) + (float64(py)+0.5)*inv
						col = col.Mul(1 - textureDepth + textureDepth*float32(texture.At(wx, wy)))
					}
					rgba := col.Color()
					i := img.PixOffset(tx*tileSize+px, ty*tileSize+py)
					img.Pix[i] = rgba.R
					img.Pix[i+1] = rgba.G
					img.Pix[i+2] = rgba.B
					img.Pix[i+3] = rgba.A
				}
			}
		}
	}

	return img
}

// Viewport reports whether a screen rectangle can be seen.
type Viewport interface {
	RectIntersectsViewport(rect world.AABB) bool
}

// Renderer draws chunk caches to the screen.
type Renderer interface {
	Viewport
	// DrawPixelBlock draws pixels with their top left corner at screenPos.
	DrawPixelBlock(pixels *image.RGBA, screenPos world.Vec2f, screenSize world.Vec2f)
	// ScaleCache resizes pixels to width by height.
	ScaleCache(pixels *image.RGBA, width, height int) *image.RGBA
	DrawOutline(rect world.AABB)
}

// Projector maps world pixels (tiles times tile size) to screen pixels.
type Projector interface {
	WorldToScreen(pos world.Vec2f) world.Vec2f
	Scale() float32
}
