/*
Package rle implements the run-length compression used by every indexed
bitmap in the Wings data files.

The stream is a sequence of units. A byte with both of its top two bits set
is a run marker; its low six bits are a count and the following byte is
repeated that many times. Any other byte is copied to the output as is.
There is no terminator, decoding stops when the input is exhausted.
*/
package rle

import (
	"fmt"

	"github.com/bodgit/wings/wire"
)

const (
	runMask   = 0xc0
	countMask = 0x3f
)

func isRun(b byte) bool {
	return b&runMask == runMask
}

// DecodedLen returns the number of bytes Decode would produce for b. A
// trailing run marker is ignored.
func DecodedLen(b []byte) int {
	n := 0
	for i := 0; i < len(b); i++ {
		if isRun(b[i]) {
			if i+1 < len(b) {
				n += int(b[i] & countMask)
			}
			i++
			continue
		}
		n++
	}
	return n
}

// Decode expands the run-length encoded stream b. A run marker in the
// final position, with no value byte following it, is an error.
func Decode(b []byte) ([]byte, error) {
	out := make([]byte, 0, DecodedLen(b))
	for i := 0; i < len(b); i++ {
		c := b[i]
		if !isRun(c) {
			out = append(out, c)
			continue
		}
		if i+1 >= len(b) {
			return nil, fmt.Errorf("%w: run marker %#02x at offset %d has no value", wire.ErrTruncated, c, i)
		}
		i++
		for n := c & countMask; n > 0; n-- {
			out = append(out, b[i])
		}
	}
	return out, nil
}
