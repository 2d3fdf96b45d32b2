package riff

import (
	"testing"

	"github.com/systemshift/reeler/internal/chunk"
)

func TestBuilderParseRoundTrip(t *testing.T) {
	b := NewBuilder()
	id0 := b.Add(chunk.FourccConfig, []byte("config-bytes"))
	id1 := b.Add(chunk.FourccKeyTable, []byte("key-table-bytes"))

	ct, err := Parse(b.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, err := ct.ChunkBytes(chunk.FourccConfig, id0)
	if err != nil || string(got) != "config-bytes" {
		t.Fatalf("ChunkBytes(config) = %q, %v", got, err)
	}
	got, err = ct.ChunkBytes(chunk.FourccKeyTable, id1)
	if err != nil || string(got) != "key-table-bytes" {
		t.Fatalf("ChunkBytes(keytable) = %q, %v", got, err)
	}
}

func TestChunkExistsFalseForMismatchedTag(t *testing.T) {
	b := NewBuilder()
	id := b.Add(chunk.FourccConfig, []byte("x"))
	ct, err := Parse(b.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ct.ChunkExists(chunk.FourccKeyTable, id) {
		t.Fatalf("ChunkExists should be false for mismatched tag at same section")
	}
}

func TestFindSection(t *testing.T) {
	b := NewBuilder()
	b.Add(chunk.FourccConfig, []byte("a"))
	wantID := b.Add(chunk.FourccCastList, []byte("b"))

	ct, err := Parse(b.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	gotID, ok := ct.FindSection(chunk.FourccCastList)
	if !ok || gotID != wantID {
		t.Fatalf("FindSection = %d, %v, want %d, true", gotID, ok, wantID)
	}
}

func TestAddCompressedRoundTrip(t *testing.T) {
	b := NewBuilder()
	payload := []byte("some opaque cast payload, repeated repeated repeated")
	id, err := b.AddCompressed(chunk.FourccCastMember, payload)
	if err != nil {
		t.Fatalf("AddCompressed: %v", err)
	}

	ct, err := Parse(b.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, err := ct.ChunkBytes(chunk.FourccCastMember, id)
	if err != nil {
		t.Fatalf("ChunkBytes: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("decompressed payload = %q, want %q", got, payload)
	}
}
