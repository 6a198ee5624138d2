// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

// hash32 mixes 32 bits (murmur finalizer style avalanching).
func hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// hash2 is a stable hash of a 2D cell and a seed.
func hash2(seed uint32, x, y int32) uint32 {
	// Large odd constants decorrelate axes
	h := seed
	h ^= uint32(x) * 0x9e3779b1
	h = hash32(h)
	h ^= uint32(y) * 0x85ebca6b
	return hash32(h)
}

// seed32 folds a 64 bit seed into 32 bits.
func seed32(seed int64) uint32 {
	return hash32(uint32(seed) ^ hash32(uint32(uint64(seed)>>32)))
}
