// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

// AABB is an axis aligned rectangle with its corner at Vec2f.
type AABB struct {
	Vec2f
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

func AABBFrom(x, y, width, height float32) AABB {
	return AABB{
		Vec2f:  Vec2f{X: x, Y: y},
		Width:  width,
		Height: height,
	}
}

// Overlaps a and b share some area (touching edges don't count)
func (a AABB) Overlaps(b AABB) bool {
	return a.X+a.Width > b.X && a.X < b.X+b.Width && a.Y+a.Height > b.Y && a.Y < b.Height+b.Y
}
