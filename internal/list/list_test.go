package list

import (
	"testing"

	"github.com/systemshift/reeler/internal/cursor"
)

func writeList(t *testing.T, items [][]byte) []byte {
	t.Helper()
	c := cursor.New(nil)
	var b Body
	b.SetItems(items)
	sizer := func(i int) int { return len(items[i]) }
	writer := func(c *cursor.Cursor, i int) { c.WriteBytes(items[i]) }
	b.WriteOffsetsAndItems(c, len(items), sizer, writer)
	return c.Bytes()
}

func TestOffsetTableRoundTrip(t *testing.T) {
	items := [][]byte{[]byte("alpha"), []byte(""), []byte("gamma")}
	buf := writeList(t, items)

	c := cursor.New(buf)
	var b Body
	b.DataOffset = 0
	if err := b.ReadOffsetTable(c); err != nil {
		t.Fatalf("ReadOffsetTable: %v", err)
	}
	if err := b.ReadItems(c); err != nil {
		t.Fatalf("ReadItems: %v", err)
	}

	if b.Len() != len(items) {
		t.Fatalf("Len = %d, want %d", b.Len(), len(items))
	}
	for i, want := range items {
		if got := b.Bytes(i); string(got) != string(want) {
			t.Fatalf("item %d = %q, want %q", i, got, want)
		}
	}
}

func TestAccessorsSafeOutOfRange(t *testing.T) {
	var b Body
	if got := b.Bytes(5); len(got) != 0 {
		t.Fatalf("Bytes out of range should be empty, got %v", got)
	}
	if got := b.String(5); got != "" {
		t.Fatalf("String out of range should be empty, got %q", got)
	}
	if got := b.PascalString(5); got != "" {
		t.Fatalf("PascalString out of range should be empty, got %q", got)
	}
	if got := b.U16(5); got != 0 {
		t.Fatalf("U16 out of range should be zero, got %d", got)
	}
	if got := b.U32(5); got != 0 {
		t.Fatalf("U32 out of range should be zero, got %d", got)
	}
}

func TestPascalStringItem(t *testing.T) {
	c := cursor.New(nil)
	c.WritePascalString("bob")
	buf := writeList(t, [][]byte{c.Bytes()})

	rc := cursor.New(buf)
	var b Body
	if err := b.ReadOffsetTable(rc); err != nil {
		t.Fatalf("ReadOffsetTable: %v", err)
	}
	if err := b.ReadItems(rc); err != nil {
		t.Fatalf("ReadItems: %v", err)
	}
	if got := b.PascalString(0); got != "bob" {
		t.Fatalf("PascalString = %q, want %q", got, "bob")
	}
}

func TestEmptyPascalStringItemIsEmptyString(t *testing.T) {
	buf := writeList(t, [][]byte{{}})
	rc := cursor.New(buf)
	var b Body
	if err := b.ReadOffsetTable(rc); err != nil {
		t.Fatalf("ReadOffsetTable: %v", err)
	}
	if err := b.ReadItems(rc); err != nil {
		t.Fatalf("ReadItems: %v", err)
	}
	if got := b.PascalString(0); got != "" {
		t.Fatalf("PascalString of empty item = %q, want empty", got)
	}
}

func TestOffsetTableViolationDetected(t *testing.T) {
	c := cursor.New(nil)
	c.WriteU16(2)
	c.WriteU32(10)
	c.WriteU32(5) // decreasing -> violation
	c.WriteU32(0)

	rc := cursor.New(c.Bytes())
	var b Body
	b.DataOffset = 0
	if err := b.ReadOffsetTable(rc); err == nil {
		t.Fatalf("expected offset table violation error")
	}
}
