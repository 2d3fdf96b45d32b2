package script

import (
	"github.com/systemshift/reeler/internal/cursor"
)

// LiteralType discriminates a literal's payload shape. The exact type
// codes are owned by the external bytecode format; only the shapes this
// core must read to locate each literal's data are modeled here.
type LiteralType int32

const (
	LiteralString LiteralType = 1
	LiteralInt    LiteralType = 4
	LiteralFloat  LiteralType = 9
)

// Literal is one entry of a script's literal pool: a record (type +
// offset into the literal data region) plus, after the second
// read pass, its resolved value.
type Literal struct {
	Type   LiteralType
	Offset uint32

	Value any
}

// ReadLiteralRecord reads a literal's record: an i32 type followed by a
// u32 offset into the literal data region. The same layout is read for
// every director version; the version parameter is accepted but not
// consulted.
func ReadLiteralRecord(c *cursor.Cursor, version uint16) (*Literal, error) {
	l := &Literal{}
	typeVal, err := c.ReadI32()
	if err != nil {
		return nil, err
	}
	l.Type = LiteralType(typeVal)
	if l.Offset, err = c.ReadU32(); err != nil {
		return nil, err
	}
	return l, nil
}

// ReadData resolves this literal's value from the literal data region,
// which starts at dataOffset and is addressed relative to it by
// l.Offset.
func (l *Literal) ReadData(buf []byte, dataOffset uint32) error {
	c := cursor.NewWithEndianness(buf, cursor.BigEndian)
	if err := c.Seek(int(dataOffset + l.Offset)); err != nil {
		return err
	}
	switch l.Type {
	case LiteralString:
		length, err := c.ReadU32()
		if err != nil {
			return err
		}
		s, err := c.ReadString(int(length))
		if err != nil {
			return err
		}
		l.Value = s
	case LiteralInt:
		v, err := c.ReadI32()
		if err != nil {
			return err
		}
		l.Value = v
	case LiteralFloat:
		bits, err := c.ReadU32()
		if err != nil {
			return err
		}
		l.Value = bits
	default:
		l.Value = nil
	}
	return nil
}
