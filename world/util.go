// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

// Clamp val to [minimum, maximum]
func Clamp(val, minimum, maximum float32) float32 {
	if val < minimum {
		return minimum
	}
	if val > maximum {
		return maximum
	}
	return val
}

// FloorDiv divides rounding towards negative infinity, so tile -1 is in chunk -1.
// b must be positive.
func FloorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// FloorMod is the non-negative remainder paired with FloorDiv.
func FloorMod(a, b int) int {
	return a - FloorDiv(a, b)*b
}
