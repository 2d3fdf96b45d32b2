// Package script implements the script context / script / names triad:
// the bytecode-bearing cast-member payload, its enclosing context
// chunk, and the interned name table both dereference.
package script

import (
	"fmt"
	"strings"

	"github.com/systemshift/reeler/internal/cursor"
)

// EOL is the fixed line terminator used by the text renderers.
const EOL = "\r"

// Chunk is a script's bytecode container: handlers, literals, and the
// property/global name-id tables, resolved to strings once bound to a
// context.
type Chunk struct {
	TotalLength   uint32
	TotalLength2  uint32
	HeaderLength  uint16
	ScriptNumber  uint16
	ScriptBehavior uint32

	HandlerVectorsCount  uint16
	HandlerVectorsOffset uint32
	HandlerVectorsSize   uint32
	PropertiesCount      uint16
	PropertiesOffset     uint32
	GlobalsCount         uint16
	GlobalsOffset        uint32
	HandlersCount        uint16
	HandlersOffset       uint32
	LiteralsCount        uint16
	LiteralsOffset       uint32
	LiteralsDataCount    uint32
	LiteralsDataOffset   uint32

	PropertyNameIDs []int16
	GlobalNameIDs   []int16
	PropertyNames   []string
	GlobalNames     []string

	Handlers []*Handler
	Literals []*Literal

	context *ContextChunk
}

// Read parses a script chunk. Script chunks are always big-endian
// regardless of the enclosing container's nominal order.
func Read(buf []byte) (*Chunk, error) {
	c := cursor.NewWithEndianness(buf, cursor.BigEndian)
	s := &Chunk{}

	if err := c.Seek(8); err != nil {
		return nil, err
	}
	var err error
	readU32 := func(dst *uint32) { if err == nil { *dst, err = c.ReadU32() } }
	readU16 := func(dst *uint16) { if err == nil { *dst, err = c.ReadU16() } }

	readU32(&s.TotalLength)
	readU32(&s.TotalLength2)
	readU16(&s.HeaderLength)
	readU16(&s.ScriptNumber)
	if err != nil {
		return nil, err
	}

	if err := c.Seek(38); err != nil {
		return nil, err
	}
	s.ScriptBehavior, err = c.ReadU32()
	if err != nil {
		return nil, err
	}

	if err := c.Seek(50); err != nil {
		return nil, err
	}
	readU16(&s.HandlerVectorsCount)
	readU32(&s.HandlerVectorsOffset)
	readU32(&s.HandlerVectorsSize)
	readU16(&s.PropertiesCount)
	readU32(&s.PropertiesOffset)
	readU16(&s.GlobalsCount)
	readU32(&s.GlobalsOffset)
	readU16(&s.HandlersCount)
	readU32(&s.HandlersOffset)
	readU16(&s.LiteralsCount)
	readU32(&s.LiteralsOffset)
	readU32(&s.LiteralsDataCount)
	readU32(&s.LiteralsDataOffset)
	if err != nil {
		return nil, err
	}

	if err := c.Seek(int(s.PropertiesOffset)); err != nil {
		return nil, err
	}
	s.PropertyNameIDs = make([]int16, s.PropertiesCount)
	for i := range s.PropertyNameIDs {
		if s.PropertyNameIDs[i], err = c.ReadI16(); err != nil {
			return nil, err
		}
	}

	if err := c.Seek(int(s.GlobalsOffset)); err != nil {
		return nil, err
	}
	s.GlobalNameIDs = make([]int16, s.GlobalsCount)
	for i := range s.GlobalNameIDs {
		if s.GlobalNameIDs[i], err = c.ReadI16(); err != nil {
			return nil, err
		}
	}

	if err := c.Seek(int(s.HandlersOffset)); err != nil {
		return nil, err
	}
	s.Handlers = make([]*Handler, s.HandlersCount)
	for i := range s.Handlers {
		h, err := ReadHandlerRecord(c)
		if err != nil {
			return nil, err
		}
		s.Handlers[i] = h
	}
	for _, h := range s.Handlers {
		if err := h.ReadData(buf); err != nil {
			return nil, err
		}
	}

	if err := c.Seek(int(s.LiteralsOffset)); err != nil {
		return nil, err
	}
	s.Literals = make([]*Literal, s.LiteralsCount)
	for i := range s.Literals {
		lit, err := ReadLiteralRecord(c, 0)
		if err != nil {
			return nil, err
		}
		s.Literals[i] = lit
	}
	for _, lit := range s.Literals {
		if err := lit.ReadData(buf, s.LiteralsDataOffset); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// SetContext binds ctx, resolves the property/global name-id tables
// through it, and has every handler resolve its own name references.
func (s *Chunk) SetContext(ctx *ContextChunk) {
	s.context = ctx
	s.PropertyNames = resolveViaContext(ctx, s.PropertyNameIDs)
	s.GlobalNames = resolveViaContext(ctx, s.GlobalNameIDs)
	for _, h := range s.Handlers {
		h.ReadNames(ctx.names)
	}
}

func resolveViaContext(ctx *ContextChunk, ids []int16) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = ctx.GetName(int(id))
	}
	return out
}

// Translate runs the bound context's translator over every handler.
func (s *Chunk) Translate() {
	t := Translator(DefaultTranslator{})
	if s.context != nil && s.context.translator != nil {
		t = s.context.translator
	}
	for _, h := range s.Handlers {
		h.Translate(t)
	}
}

// VarDeclarations renders "property a, b, c" then "global x, y", each
// omitted when empty.
func (s *Chunk) VarDeclarations() string {
	var b strings.Builder
	if len(s.PropertyNames) > 0 {
		fmt.Fprintf(&b, "property %s%s", strings.Join(s.PropertyNames, ", "), EOL)
	}
	if len(s.GlobalNames) > 0 {
		fmt.Fprintf(&b, "global %s%s", strings.Join(s.GlobalNames, ", "), EOL)
	}
	return b.String()
}

// ScriptText is the translated-source rendering: declarations, then
// each handler's AST pretty-print.
func (s *Chunk) ScriptText(dotSyntax bool) string {
	var b strings.Builder
	b.WriteString(s.VarDeclarations())
	for _, h := range s.Handlers {
		b.WriteString(h.ASTString(dotSyntax, false))
	}
	return b.String()
}

// BytecodeText is the disassembly rendering: declarations, then each
// handler's raw bytecode dump.
func (s *Chunk) BytecodeText() string {
	var b strings.Builder
	b.WriteString(s.VarDeclarations())
	for _, h := range s.Handlers {
		b.WriteString(h.BytecodeText())
	}
	return b.String()
}
