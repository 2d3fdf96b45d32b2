package script

import (
	"testing"

	"github.com/systemshift/reeler/internal/cursor"
)

func buildNames(names []string) []byte {
	c := cursor.NewWithEndianness(nil, cursor.BigEndian)
	c.WriteI32(0)
	c.WriteI32(0)
	c.WriteU32(0)
	c.WriteU32(0)
	headerEnd := c.Pos() + 4
	c.WriteU16(uint16(headerEnd))
	c.WriteU16(uint16(len(names)))
	for _, n := range names {
		c.WritePascalString(n)
	}
	return c.Bytes()
}

func TestReadNames(t *testing.T) {
	buf := buildNames([]string{"foo", "bar", "baz"})
	n, err := ReadNames(buf)
	if err != nil {
		t.Fatalf("ReadNames: %v", err)
	}
	if len(n.Names) != 3 || n.Names[1] != "bar" {
		t.Fatalf("Names = %v", n.Names)
	}
}

func TestGetNameIsTotal(t *testing.T) {
	n, err := ReadNames(buildNames([]string{"only"}))
	if err != nil {
		t.Fatalf("ReadNames: %v", err)
	}
	if got := n.GetName(0); got != "only" {
		t.Fatalf("GetName(0) = %q", got)
	}
	if got := n.GetName(99); got != "UNKNOWN_NAME_99" {
		t.Fatalf("GetName(99) = %q, want sentinel", got)
	}
	if got := n.GetName(-1); got != "UNKNOWN_NAME_-1" {
		t.Fatalf("GetName(-1) = %q, want sentinel", got)
	}

	var nilChunk *NamesChunk
	if got := nilChunk.GetName(3); got != "UNKNOWN_NAME_3" {
		t.Fatalf("nil receiver GetName(3) = %q, want sentinel", got)
	}
}
