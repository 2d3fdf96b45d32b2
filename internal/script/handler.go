package script

import (
	"fmt"
	"strings"

	"github.com/systemshift/reeler/internal/cursor"
)

// HandlerRecord is the fixed-size header for one handler, read in the
// first pass over handlers_offset. The compiled bytecode and the
// argument/local/line tables are resolved from these offsets in the
// second pass (ReadData), because handler record offsets point into a
// payload region that is only fully known once every record has been
// read.
type HandlerRecord struct {
	NameID          int16
	VectorPos       int16
	CompiledLen     uint32
	CompiledOffset  uint32
	ArgumentCount   uint16
	ArgumentOffset  uint32
	LocalsCount     uint16
	LocalsOffset    uint32
	GlobalsCount    uint16
	GlobalsOffset   uint32
	UnknownFlags    uint32
	LineCount       uint16
	LineOffset      uint32
	StackHeight     uint32
}

// Handler is a named bytecode-defined function in a script. The actual
// bytecode-to-source translation is an external collaborator per the
// spec; Handler itself only owns reading its own record/data and
// resolving its name-id tables to strings.
type Handler struct {
	HandlerRecord

	Name          string
	ArgumentIDs   []int16
	LocalIDs      []int16
	GlobalIDs     []int16
	ArgumentNames []string
	LocalNames    []string
	GlobalNames   []string
	LineOffsets   []uint32
	Bytecode      []byte

	ast string
}

func ReadHandlerRecord(c *cursor.Cursor) (*Handler, error) {
	h := &Handler{}
	var err error
	read16 := func(dst *int16) { if err == nil { *dst, err = c.ReadI16() } }
	readU16 := func(dst *uint16) { if err == nil { *dst, err = c.ReadU16() } }
	readU32 := func(dst *uint32) { if err == nil { *dst, err = c.ReadU32() } }

	read16(&h.NameID)
	read16(&h.VectorPos)
	readU32(&h.CompiledLen)
	readU32(&h.CompiledOffset)
	readU16(&h.ArgumentCount)
	readU32(&h.ArgumentOffset)
	readU16(&h.LocalsCount)
	readU32(&h.LocalsOffset)
	readU16(&h.GlobalsCount)
	readU32(&h.GlobalsOffset)
	readU32(&h.UnknownFlags)
	readU16(&h.LineCount)
	readU32(&h.LineOffset)
	readU32(&h.StackHeight)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// ReadData reads this handler's bytecode and its argument/local/global
// name-id and line-offset tables, each an array of i16 (or u32, for line
// offsets) at its own offset in the payload region, with its length
// taken from the matching count in the handler record.
func (h *Handler) ReadData(buf []byte) error {
	if h.CompiledLen > 0 {
		c := cursor.NewWithEndianness(buf, cursor.BigEndian)
		if err := c.Seek(int(h.CompiledOffset)); err != nil {
			return err
		}
		bc, err := c.CopyBytes(int(h.CompiledLen))
		if err != nil {
			return err
		}
		h.Bytecode = bc
	}

	readIDs := func(offset uint32, count uint16) ([]int16, error) {
		if count == 0 {
			return nil, nil
		}
		c := cursor.NewWithEndianness(buf, cursor.BigEndian)
		if err := c.Seek(int(offset)); err != nil {
			return nil, err
		}
		ids := make([]int16, count)
		for i := range ids {
			v, err := c.ReadI16()
			if err != nil {
				return nil, err
			}
			ids[i] = v
		}
		return ids, nil
	}

	var err error
	if h.ArgumentIDs, err = readIDs(h.ArgumentOffset, h.ArgumentCount); err != nil {
		return err
	}
	if h.LocalIDs, err = readIDs(h.LocalsOffset, h.LocalsCount); err != nil {
		return err
	}
	if h.GlobalIDs, err = readIDs(h.GlobalsOffset, h.GlobalsCount); err != nil {
		return err
	}

	if h.LineCount > 0 {
		c := cursor.NewWithEndianness(buf, cursor.BigEndian)
		if err := c.Seek(int(h.LineOffset)); err != nil {
			return err
		}
		h.LineOffsets = make([]uint32, h.LineCount)
		for i := range h.LineOffsets {
			v, err := c.ReadU32()
			if err != nil {
				return err
			}
			h.LineOffsets[i] = v
		}
	}
	return nil
}

// ReadNames resolves this handler's name-id tables to strings via names.
func (h *Handler) ReadNames(names *NamesChunk) {
	h.Name = names.GetName(int(h.NameID))
	h.ArgumentNames = resolveIDs(names, h.ArgumentIDs)
	h.LocalNames = resolveIDs(names, h.LocalIDs)
	h.GlobalNames = resolveIDs(names, h.GlobalIDs)
}

func resolveIDs(names *NamesChunk, ids []int16) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = names.GetName(int(id))
	}
	return out
}

// Translate builds this handler's AST via the current Translator. A real
// bytecode decompiler is an out-of-scope external collaborator; the
// built-in Translator renders a placeholder (signature, local names and
// bytecode size) instead.
func (h *Handler) Translate(t Translator) {
	h.ast = t.Translate(h)
}

// ASTString returns the text the Translator produced for this handler.
// Both bool parameters (dot-syntax and allow-assignment) are accepted
// for interface parity with callers but are not used: the text is
// returned as translated, whatever dotSyntax is.
func (h *Handler) ASTString(dotSyntax bool, _ bool) string {
	if h.ast == "" {
		return fmt.Sprintf("-- %s: not translated\n", h.Name)
	}
	return h.ast
}

// BytecodeText renders a raw disassembly view: one line per 8 bytes of
// bytecode, prefixed with its byte offset, independent of any Translator
// and of the line-offset table.
func (h *Handler) BytecodeText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "on %s\n", h.Name)
	for i := 0; i < len(h.Bytecode); i += 8 {
		end := i + 8
		if end > len(h.Bytecode) {
			end = len(h.Bytecode)
		}
		fmt.Fprintf(&b, "  %04x: % x\n", i, h.Bytecode[i:end])
	}
	b.WriteString("end\n")
	return b.String()
}
