// Package cursor implements an endian-aware, bounds-checked random-access
// reader/writer over an in-memory byte slice. Every chunk decoder in this
// module reads through a Cursor rather than an io.Reader, because section
// offsets are resolved randomly (list-chunk item tables, script handler
// records) rather than sequentially.
package cursor

import (
	"encoding/binary"
	"fmt"

	"github.com/systemshift/reeler/internal/direrr"
)

// ErrUnexpectedEOF is returned whenever a read would run past the end of
// the underlying buffer. It is the same value as direrr.ErrUnexpectedEOF.
var ErrUnexpectedEOF = direrr.ErrUnexpectedEOF

// Endianness selects how multi-byte fields are interpreted. It is a field
// on the cursor, not a package global, because some sub-chunks (bytecode
// script chunks) always read big-endian regardless of the enclosing
// container's nominal order.
type Endianness int

const (
	BigEndian Endianness = iota
	LittleEndian
)

func (e Endianness) order() binary.ByteOrder {
	if e == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// Cursor is a seekable view over a byte slice.
type Cursor struct {
	buf        []byte
	pos        int
	Endianness Endianness
}

// New wraps buf for reading/writing, defaulting to big-endian.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf, Endianness: BigEndian}
}

// NewWithEndianness wraps buf with an explicit starting byte order.
func NewWithEndianness(buf []byte, e Endianness) *Cursor {
	return &Cursor{buf: buf, Endianness: e}
}

func (c *Cursor) Len() int { return len(c.buf) }
func (c *Cursor) Pos() int { return c.pos }
func (c *Cursor) Eof() bool { return c.pos >= len(c.buf) }

// Bytes returns the whole underlying buffer (shared, not copied).
func (c *Cursor) Bytes() []byte { return c.buf }

// Seek repositions the cursor. Seeking past the end is allowed (it is
// how writers extend a buffer); seeking before the start is not.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 {
		return fmt.Errorf("cursor: seek to negative offset %d", pos)
	}
	c.pos = pos
	return nil
}

func (c *Cursor) require(n int) error {
	if c.pos < 0 || c.pos+n > len(c.buf) {
		return ErrUnexpectedEOF
	}
	return nil
}

// ReadBytes returns a shared (non-copied) slice of the next n bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.require(n); err != nil {
		return nil, err
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// CopyBytes returns an owned copy of the next n bytes.
func (c *Cursor) CopyBytes(n int) ([]byte, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadString reads n raw bytes and returns them as a string, with no
// length prefix and no terminator handling.
func (c *Cursor) ReadString(n int) (string, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadPascalString reads a one-byte length prefix followed by that many
// bytes.
func (c *Cursor) ReadPascalString() (string, error) {
	n, err := c.ReadU8()
	if err != nil {
		return "", err
	}
	return c.ReadString(int(n))
}

func (c *Cursor) ReadU8() (uint8, error) {
	if err := c.require(1); err != nil {
		return 0, err
	}
	v := c.buf[c.pos]
	c.pos++
	return v, nil
}

func (c *Cursor) ReadI8() (int8, error) {
	v, err := c.ReadU8()
	return int8(v), err
}

func (c *Cursor) ReadU16() (uint16, error) {
	if err := c.require(2); err != nil {
		return 0, err
	}
	v := c.Endianness.order().Uint16(c.buf[c.pos : c.pos+2])
	c.pos += 2
	return v, nil
}

func (c *Cursor) ReadI16() (int16, error) {
	v, err := c.ReadU16()
	return int16(v), err
}

func (c *Cursor) ReadU32() (uint32, error) {
	if err := c.require(4); err != nil {
		return 0, err
	}
	v := c.Endianness.order().Uint32(c.buf[c.pos : c.pos+4])
	c.pos += 4
	return v, nil
}

func (c *Cursor) ReadI32() (int32, error) {
	v, err := c.ReadU32()
	return int32(v), err
}

// --- writers ---

// grow extends the backing buffer so that bytes [pos, pos+n) are
// addressable, zero-filling any gap.
func (c *Cursor) grow(n int) {
	need := c.pos + n
	if need <= len(c.buf) {
		return
	}
	grown := make([]byte, need)
	copy(grown, c.buf)
	c.buf = grown
}

func (c *Cursor) WriteBytes(b []byte) {
	c.grow(len(b))
	copy(c.buf[c.pos:c.pos+len(b)], b)
	c.pos += len(b)
}

func (c *Cursor) WriteString(s string) {
	c.WriteBytes([]byte(s))
}

func (c *Cursor) WritePascalString(s string) {
	if len(s) > 0xFF {
		s = s[:0xFF]
	}
	c.WriteU8(uint8(len(s)))
	c.WriteString(s)
}

func (c *Cursor) WriteU8(v uint8) {
	c.grow(1)
	c.buf[c.pos] = v
	c.pos++
}

func (c *Cursor) WriteI8(v int8) { c.WriteU8(uint8(v)) }

func (c *Cursor) WriteU16(v uint16) {
	c.grow(2)
	c.Endianness.order().PutUint16(c.buf[c.pos:c.pos+2], v)
	c.pos += 2
}

func (c *Cursor) WriteI16(v int16) { c.WriteU16(uint16(v)) }

func (c *Cursor) WriteU32(v uint32) {
	c.grow(4)
	c.Endianness.order().PutUint32(c.buf[c.pos:c.pos+4], v)
	c.pos += 4
}

func (c *Cursor) WriteI32(v int32) { c.WriteU32(uint32(v)) }
