// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

// Height bands. Heights are nominally in [0, 1] but are not clamped,
// values below 0 (past the falloff edge) are still water.
const (
	WaterLevel = 0.30
	SandLevel  = 0.35
	RockLevel  = 0.80
	SnowLevel  = 1.0
)

// Humidity thresholds within the land band (SandLevel..RockLevel) and above RockLevel.
const (
	DryHumidity  = 0.3
	WetHumidity  = 0.6
	SnowHumidity = 0.5
)
