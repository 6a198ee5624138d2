// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"fmt"
	"math"
)

// Kind is the type of tile. It fits in a nibble.
type Kind uint8

const (
	Water Kind = iota
	Sand
	Dirt
	Grass
	Stone
	Snow
	KindCount
)

type kindData struct {
	name  string
	color ColorVec
	// textured kinds get cellular noise applied when painted.
	textured bool
}

var kinds = [KindCount]kindData{
	Water: {name: "water", color: RGB(0, 75, 200), textured: true},
	Sand:  {name: "sand", color: RGB(194, 178, 128), textured: true},
	Dirt:  {name: "dirt", color: RGB(115, 118, 83), textured: true},
	Grass: {name: "grass", color: RGB(47, 137, 57), textured: true},
	Stone: {name: "stone", color: RGB(111, 122, 132), textured: false},
	Snow:  {name: "snow", color: Gray(255), textured: true},
}

func (kind Kind) Valid() bool {
	return kind < KindCount
}

// Textured reports whether the kind is painted with noise texture.
func (kind Kind) Textured() bool {
	return kind.Valid() && kinds[kind].textured
}

func (kind Kind) String() string {
	if !kind.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(kind))
	}
	return kinds[kind].name
}

// Tile is immutable once classified.
type Tile struct {
	Kind  Kind    `json:"kind"`
	Shade float32 `json:"shade"` // Shade in [0, 1], cosmetic only
}

// Classify maps a height and humidity to a tile. It is total: NaN inputs are treated as 0.
func Classify(height, humidity float64) Tile {
	if math.IsNaN(height) {
		height = 0
	}
	if math.IsNaN(humidity) {
		humidity = 0
	}

	var kind Kind
	var lo, hi float64

	switch {
	case height < WaterLevel:
		kind, lo, hi = Water, 0, WaterLevel
	case height < SandLevel:
		kind, lo, hi = Sand, WaterLevel, SandLevel
	case height < RockLevel:
		lo, hi = SandLevel, RockLevel
		switch {
		case humidity < DryHumidity:
			kind = Stone
		case humidity < WetHumidity:
			kind = Dirt
		default:
			kind = Grass
		}
	default:
		lo, hi = RockLevel, SnowLevel
		if humidity < SnowHumidity {
			kind = Stone
		} else {
			kind = Snow
		}
	}

	return Tile{Kind: kind, Shade: float32(clamp01((height - lo) / (hi - lo)))}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
