package script

import (
	"strings"
	"testing"

	"github.com/systemshift/reeler/internal/cursor"
)

// buildScript assembles a minimal script chunk buffer matching the field
// offsets Read expects: the fixed header through offset 50, the 13-field
// count/offset block, then each named region's payload in sequence.
func buildScript(t *testing.T, propertyIDs, globalIDs []int16) []byte {
	t.Helper()
	c := cursor.NewWithEndianness(nil, cursor.BigEndian)
	c.WriteBytes(make([]byte, 8)) // 0..8 unused prefix
	c.WriteU32(0)                 // TotalLength (unused by test)
	c.WriteU32(0)                 // TotalLength2
	c.WriteU16(0)                 // HeaderLength
	c.WriteU16(0)                 // ScriptNumber
	c.WriteBytes(make([]byte, 38-c.Pos()))
	c.WriteU32(0) // ScriptBehavior
	c.WriteBytes(make([]byte, 50-c.Pos()))

	c.WriteU16(0) // HandlerVectorsCount
	c.WriteU32(0) // HandlerVectorsOffset
	c.WriteU32(0) // HandlerVectorsSize
	propertiesOffsetPos := c.Pos()
	c.WriteU16(uint16(len(propertyIDs)))
	c.WriteU32(0) // PropertiesOffset placeholder
	globalsOffsetPos := c.Pos()
	c.WriteU16(uint16(len(globalIDs)))
	c.WriteU32(0) // GlobalsOffset placeholder
	c.WriteU16(0) // HandlersCount
	handlersOffsetPos := c.Pos()
	c.WriteU32(0) // HandlersOffset placeholder
	c.WriteU16(0) // LiteralsCount
	literalsOffsetPos := c.Pos()
	c.WriteU32(0) // LiteralsOffset placeholder
	c.WriteU32(0) // LiteralsDataCount
	c.WriteU32(0) // LiteralsDataOffset

	propertiesOffset := c.Pos()
	for _, id := range propertyIDs {
		c.WriteI16(id)
	}
	globalsOffset := c.Pos()
	for _, id := range globalIDs {
		c.WriteI16(id)
	}
	handlersOffset := c.Pos()
	literalsOffset := c.Pos()

	buf := c.Bytes()
	patch := func(pos int, off uint32) {
		w := cursor.NewWithEndianness(buf, cursor.BigEndian)
		if err := w.Seek(pos); err != nil {
			t.Fatalf("seek: %v", err)
		}
		w.WriteU32(off)
	}
	patch(propertiesOffsetPos+2, uint32(propertiesOffset))
	patch(globalsOffsetPos+2, uint32(globalsOffset))
	patch(handlersOffsetPos, uint32(handlersOffset))
	patch(literalsOffsetPos, uint32(literalsOffset))
	return buf
}

func TestReadScriptNameTables(t *testing.T) {
	buf := buildScript(t, []int16{0, 1}, []int16{2})
	s, err := Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(s.PropertyNameIDs) != 2 || len(s.GlobalNameIDs) != 1 {
		t.Fatalf("name id tables = %v / %v", s.PropertyNameIDs, s.GlobalNameIDs)
	}
}

func TestVarDeclarationsOmitEmpty(t *testing.T) {
	s := &Chunk{}
	if got := s.VarDeclarations(); got != "" {
		t.Fatalf("VarDeclarations on empty chunk = %q, want empty", got)
	}

	s.PropertyNames = []string{"a", "b"}
	want := "property a, b" + EOL
	if got := s.VarDeclarations(); got != want {
		t.Fatalf("VarDeclarations = %q, want %q", got, want)
	}

	s.GlobalNames = []string{"x"}
	if got := s.VarDeclarations(); !strings.Contains(got, "global x"+EOL) {
		t.Fatalf("VarDeclarations = %q, missing global decl", got)
	}
}

func TestBytecodeTextIncludesHandlerName(t *testing.T) {
	s := &Chunk{
		Handlers: []*Handler{
			{HandlerRecord: HandlerRecord{}, Name: "doIt", Bytecode: []byte{0x01, 0x02, 0x03}},
		},
	}
	got := s.BytecodeText()
	if !strings.Contains(got, "on doIt") || !strings.Contains(got, "end") {
		t.Fatalf("BytecodeText = %q", got)
	}
}
