// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package client

import (
	"github.com/SoftbearStudios/tileworld/terrain"
	"github.com/SoftbearStudios/tileworld/world"
)

// Camera maps world pixels (tiles times tile size) to screen pixels.
// Position is the world point at the top left of the screen.
type Camera struct {
	Position world.Vec2f

	scale        float32
	minScale     float32
	maxScale     float32
	zoomStep     float32
	panSpeed     float32
	edgeFraction float32
	screen       world.Vec2f
}

func NewCamera(config *terrain.Config) *Camera {
	return &Camera{
		scale:        1,
		minScale:     float32(config.MinScale),
		maxScale:     float32(config.MaxScale),
		zoomStep:     float32(config.ZoomStep),
		panSpeed:     float32(config.PanSpeed),
		edgeFraction: float32(config.EdgeFraction),
		screen:       world.Vec2f{X: float32(config.ScreenWidth), Y: float32(config.ScreenHeight)},
	}
}

// Scale is screen pixels per world pixel.
func (c *Camera) Scale() float32 {
	return c.scale
}

// SetScale sets the scale, clamped to the configured bounds.
func (c *Camera) SetScale(scale float32) {
	c.scale = world.Clamp(scale, c.minScale, c.maxScale)
}

// Screen is the size of the screen in pixels.
func (c *Camera) Screen() world.Vec2f {
	return c.screen
}

// Resize changes the screen size, for example when the window is resized.
func (c *Camera) Resize(width, height float32) {
	c.screen = world.Vec2f{X: width, Y: height}
}

func (c *Camera) WorldToScreen(pos world.Vec2f) world.Vec2f {
	return pos.Sub(c.Position).Mul(c.scale)
}

func (c *Camera) ScreenToWorld(pos world.Vec2f) world.Vec2f {
	return pos.Div(c.scale).Add(c.Position)
}

// ZoomAt zooms in (direction > 0) or out (direction < 0) by one step,
// keeping the world point under cursor where it is on screen.
func (c *Camera) ZoomAt(cursor world.Vec2f, direction float32) {
	before := c.ScreenToWorld(cursor)
	c.SetScale(c.scale * (1 + c.zoomStep*direction))
	after := c.ScreenToWorld(cursor)
	c.Position = c.Position.Add(before.Sub(after))
}

// EdgePan moves the camera when the cursor is near an edge of the screen.
// The speed is constant in screen pixels regardless of zoom.
func (c *Camera) EdgePan(cursor world.Vec2f) {
	step := c.panSpeed / c.scale
	marginX := c.screen.X * c.edgeFraction
	marginY := c.screen.Y * c.edgeFraction

	if cursor.X < marginX {
		c.Position.X -= step
	} else if cursor.X > c.screen.X-marginX {
		c.Position.X += step
	}
	if cursor.Y < marginY {
		c.Position.Y -= step
	} else if cursor.Y > c.screen.Y-marginY {
		c.Position.Y += step
	}
}

// RectIntersectsViewport returns true if a screen rectangle is at least partially on screen.
func (c *Camera) RectIntersectsViewport(rect world.AABB) bool {
	return rect.Overlaps(world.AABB{Width: c.screen.X, Height: c.screen.Y})
}

// Viewport is the visible world rectangle.
func (c *Camera) Viewport() world.AABB {
	size := c.screen.Div(c.scale)
	return world.AABB{Vec2f: c.Position, Width: size.X, Height: size.Y}
}
