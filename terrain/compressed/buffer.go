// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package compressed run length encodes grids of small values such as tile kinds.
package compressed

import "io"

// maxRun is the longest run a single tuple can hold.
const maxRun = 16

// Buffer stores 4 bit values with run length encoding.
// Each byte is 4 bits of value followed by 4 bits of count - 1.
type Buffer struct {
	buf []byte
	off int // Read position
	run int // Values already read from buf[off]
}

func (buffer *Buffer) Reset(buf []byte) {
	buffer.buf = buf
	buffer.off = 0
	buffer.run = 0
}

// writeNibble appends the low 4 bits of b.
func (buffer *Buffer) writeNibble(b byte) {
	buf := buffer.buf
	next := b & 0b1111

	if end := len(buf) - 1; end >= 0 {
		tuple := buf[end]
		if tuple>>4 == next && int(tuple&0b1111) < maxRun-1 {
			// Add 1 to count
			buf[end] = tuple + 1
			return
		}
	}

	// Start new tuple
	buffer.buf = append(buf, next<<4)
}

// Write encodes the low 4 bits of each byte.
func (buffer *Buffer) Write(buf []byte) (int, error) {
	for _, b := range buf {
		buffer.writeNibble(b)
	}
	return len(buf), nil
}

func (buffer *Buffer) readNibble() byte {
	tuple := buffer.buf[buffer.off]
	buffer.run++
	if buffer.run > int(tuple&0b1111) {
		buffer.off++
		buffer.run = 0
	}
	return tuple >> 4
}

// Read decodes values into buf without modifying the encoded data.
func (buffer *Buffer) Read(buf []byte) (int, error) {
	i := 0
	for ; i < len(buf) && buffer.off < len(buffer.buf); i++ {
		buf[i] = buffer.readNibble()
	}

	if i == 0 && len(buf) > 0 {
		return 0, io.EOF
	}

	return i, nil
}

// Grow makes space for about n values
func (buffer *Buffer) Grow(n int) {
	compressed := n / 4
	if len(buffer.buf)+compressed > cap(buffer.buf) {
		buf := make([]byte, len(buffer.buf), len(buffer.buf)+compressed)
		copy(buf, buffer.buf)
		buffer.buf = buf
	}
}

// Buffer returns the encoded bytes not yet read.
func (buffer *Buffer) Buffer() []byte {
	return buffer.buf[buffer.off:]
}
