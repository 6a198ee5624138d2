// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"fmt"
	"math"
)

// Vec2f is a continuous position in world units (pixels at a camera scale of 1).
type Vec2f struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

func (vec Vec2f) Add(otherVec Vec2f) Vec2f {
	vec.X += otherVec.X
	vec.Y += otherVec.Y
	return vec
}

func (vec Vec2f) Sub(otherVec Vec2f) Vec2f {
	vec.X -= otherVec.X
	vec.Y -= otherVec.Y
	return vec
}

func (vec Vec2f) Mul(factor float32) Vec2f {
	vec.X *= factor
	vec.Y *= factor
	return vec
}

func (vec Vec2f) Div(divisor float32) Vec2f {
	return vec.Mul(1.0 / divisor)
}

// Floor rounds both components towards negative infinity.
func (vec Vec2f) Floor() Vec2f {
	// math.Floor uses assembly
	vec.X = float32(math.Floor(float64(vec.X)))
	vec.Y = float32(math.Floor(float64(vec.Y)))
	return vec
}

// Vec2i truncates a floored copy of vec to integers.
func (vec Vec2f) Vec2i() Vec2i {
	f := vec.Floor()
	return Vec2i{X: int(f.X), Y: int(f.Y)}
}

func (vec Vec2f) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", vec.X, vec.Y)
}
