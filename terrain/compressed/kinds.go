// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import (
	"fmt"
	"github.com/SoftbearStudios/tileworld/terrain"
	"io"
)

// EncodeKinds run length encodes tile kinds (each fits in a nibble).
func EncodeKinds(kinds []terrain.Kind) []byte {
	var buffer Buffer
	buffer.Grow(len(kinds))
	for _, kind := range kinds {
		buffer.writeNibble(byte(kind))
	}
	return buffer.Buffer()
}

// DecodeKinds decodes exactly n kinds.
func DecodeKinds(data []byte, n int) ([]terrain.Kind, error) {
	var buffer Buffer
	buffer.Reset(data)

	raw := make([]byte, n)
	read, err := buffer.Read(raw)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if read != n || len(buffer.Buffer()) > 0 {
		return nil, fmt.Errorf("expected %d kinds, data holds %d or more", n, read)
	}

	kinds := make([]terrain.Kind, n)
	for i, b := range raw {
		kind := terrain.Kind(b)
		if !kind.Valid() {
			return nil, fmt.Errorf("invalid kind %d at %d", b, i)
		}
		kinds[i] = kind
	}
	return kinds, nil
}
