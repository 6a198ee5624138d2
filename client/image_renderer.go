// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package client

import (
	"github.com/SoftbearStudios/tileworld/world"
	"github.com/chewxy/math32"
	"golang.org/x/image/draw"
	"image"
	"image/color"
	"image/png"
	"io"
)

var (
	background   = color.RGBA{A: 255}
	outlineColor = color.RGBA{R: 255, A: 255}
)

// ImageRenderer draws frames into an in-memory image, for headless use.
type ImageRenderer struct {
	frame *image.RGBA
}

func NewImageRenderer(width, height int) *ImageRenderer {
	r := &ImageRenderer{frame: image.NewRGBA(image.Rect(0, 0, width, height))}
	r.Clear()
	return r
}

// Frame is the image drawn so far.
func (r *ImageRenderer) Frame() *image.RGBA {
	return r.frame
}

// Clear fills the frame with the background.
func (r *ImageRenderer) Clear() {
	draw.Draw(r.frame, r.frame.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
}

func (r *ImageRenderer) RectIntersectsViewport(rect world.AABB) bool {
	b := r.frame.Bounds()
	return rect.Overlaps(world.AABBFrom(0, 0, float32(b.Dx()), float32(b.Dy())))
}

func (r *ImageRenderer) DrawPixelBlock(pixels *image.RGBA, screenPos world.Vec2f, screenSize world.Vec2f) {
	corner := image.Pt(int(math32.Floor(screenPos.X)), int(math32.Floor(screenPos.Y)))
	dst := image.Rectangle{Min: corner, Max: corner.Add(pixels.Bounds().Size())}
	draw.Draw(r.frame, dst, pixels, pixels.Bounds().Min, draw.Src)
}

func (r *ImageRenderer) ScaleCache(pixels *image.RGBA, width, height int) *image.RGBA {
	return ScaleNearest(pixels, width, height)
}

func (r *ImageRenderer) DrawOutline(rect world.AABB) {
	x0, y0 := int(math32.Floor(rect.X)), int(math32.Floor(rect.Y))
	x1, y1 := int(math32.Floor(rect.X+rect.Width))-1, int(math32.Floor(rect.Y+rect.Height))-1

	for x := x0; x <= x1; x++ {
		r.frame.SetRGBA(x, y0, outlineColor)
		r.frame.SetRGBA(x, y1, outlineColor)
	}
	for y := y0; y <= y1; y++ {
		r.frame.SetRGBA(x0, y, outlineColor)
		r.frame.SetRGBA(x1, y, outlineColor)
	}
}

// EncodePNG writes the frame as a PNG.
func (r *ImageRenderer) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.frame)
}

// ScaleNearest resizes pixels to width by height without smoothing, so tiles stay sharp.
func ScaleNearest(pixels *image.RGBA, width, height int) *image.RGBA {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), pixels, pixels.Bounds(), draw.Src, nil)
	return scaled
}
