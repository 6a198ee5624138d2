// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"fmt"
	"github.com/chewxy/math32"
)

// Pi as float32.
const Pi = math32.Pi

// Angle in radians.
type Angle float32

// TurnAngle converts a fraction of a full turn (0..1) into an Angle.
func TurnAngle(turns float32) Angle {
	return Angle(turns * 2 * Pi)
}

// Vec2f is the unit vector pointing in the direction of angle.
func (angle Angle) Vec2f() Vec2f {
	sin, cos := math32.Sincos(float32(angle))
	return Vec2f{
		X: cos,
		Y: sin,
	}
}

func (angle Angle) String() string {
	return fmt.Sprintf("%.01f degrees", float32(angle)*180/Pi)
}
