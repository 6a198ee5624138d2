// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import "fmt"

// Vec2i is a position on an integer grid (tiles or chunks).
type Vec2i struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (vec Vec2i) Add(otherVec Vec2i) Vec2i {
	vec.X += otherVec.X
	vec.Y += otherVec.Y
	return vec
}

// Neighbors4 returns the 4-connected neighbors in a fixed order: +X, -X, +Y, -Y.
func (vec Vec2i) Neighbors4() [4]Vec2i {
	return [4]Vec2i{
		{X: vec.X + 1, Y: vec.Y},
		{X: vec.X - 1, Y: vec.Y},
		{X: vec.X, Y: vec.Y + 1},
		{X: vec.X, Y: vec.Y - 1},
	}
}

func (vec Vec2i) Vec2f() Vec2f {
	return Vec2f{X: float32(vec.X), Y: float32(vec.Y)}
}

func (vec Vec2i) String() string {
	return fmt.Sprintf("(%d, %d)", vec.X, vec.Y)
}
