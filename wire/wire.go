/*
Package wire implements the primitives shared by the Wings asset decoders.

Every Wings resource is a little-endian sequence of fixed-width integers,
fixed-length tags and length-prefixed blocks. Each helper here consumes
exactly the bytes it needs from an io.Reader or fails, so decoders are
written as a straight line of calls that stops at the first error.
*/
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrTruncated is returned when fewer bytes remain than a field or a
	// declared length requires.
	ErrTruncated = errors.New("wings: truncated input")
	// ErrVerify is returned when the input parses but is inconsistent,
	// such as a wrong magic tag, mismatched dimensions or trailing data.
	ErrVerify = errors.New("wings: structural verify failure")
)

func truncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrTruncated
	}
	return err
}

// ReadFull reads exactly len(b) bytes from r.
func ReadFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	return truncated(err)
}

// Uint8 reads a single byte.
func Uint8(r io.Reader) (uint8, error) {
	var tmp [1]byte
	if err := ReadFull(r, tmp[:]); err != nil {
		return 0, err
	}
	return tmp[0], nil
}

// Uint16 reads a little-endian uint16.
func Uint16(r io.Reader) (uint16, error) {
	var tmp [2]byte
	if err := ReadFull(r, tmp[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(tmp[:]), nil
}

// Uint32 reads a little-endian uint32.
func Uint32(r io.Reader) (uint32, error) {
	var tmp [4]byte
	if err := ReadFull(r, tmp[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(tmp[:]), nil
}

// Bytes reads exactly n bytes. The buffer only grows as data actually
// arrives so a bogus length in a corrupt file can't force a huge
// allocation up front.
func Bytes(r io.Reader, n int64) ([]byte, error) {
	b := new(bytes.Buffer)
	m, err := io.CopyN(b, r, n)
	if m != n {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, truncated(err)
	}
	return b.Bytes(), nil
}

// Skip discards exactly n bytes.
func Skip(r io.Reader, n int64) error {
	m, err := io.CopyN(io.Discard, r, n)
	if m != n {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return truncated(err)
	}
	return nil
}

// Expect reads len(magic) bytes and checks they match magic.
func Expect(r io.Reader, magic []byte) error {
	b := make([]byte, len(magic))
	if err := ReadFull(r, b); err != nil {
		return err
	}
	if !bytes.Equal(b, magic) {
		return fmt.Errorf("%w: bad magic %q, want %q", ErrVerify, b, magic)
	}
	return nil
}

// ExpectEOF checks that r has been consumed completely.
func ExpectEOF(r io.Reader) error {
	var tmp [1]byte
	if n, err := r.Read(tmp[:]); n != 0 || (err != io.EOF && err != io.ErrUnexpectedEOF) {
		if err != nil && n == 0 {
			return err
		}
		return fmt.Errorf("%w: trailing data", ErrVerify)
	}
	return nil
}
