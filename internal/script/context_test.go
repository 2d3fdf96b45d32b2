package script

import (
	"fmt"
	"testing"

	"github.com/systemshift/reeler/internal/chunk"
	"github.com/systemshift/reeler/internal/cursor"
)

type stubResolver struct {
	names   *NamesChunk
	scripts map[int32]*Chunk
}

func (s *stubResolver) ChunkExists(fourcc chunk.Fourcc, sectionID int32) bool {
	_, ok := s.scripts[sectionID]
	return ok
}

func (s *stubResolver) GetNames(sectionID int32) (*NamesChunk, error) {
	return s.names, nil
}

func (s *stubResolver) GetScript(sectionID int32) (*Chunk, error) {
	sc, ok := s.scripts[sectionID]
	if !ok {
		return nil, fmt.Errorf("no script at section %d", sectionID)
	}
	return sc, nil
}

func buildContext(entries []SectionMapEntry) []byte {
	c := cursor.NewWithEndianness(nil, cursor.BigEndian)
	c.WriteI32(0)                    // Unknown1
	c.WriteU32(0)                    // Len1
	c.WriteU32(uint32(len(entries))) // EntryCount
	c.WriteU32(uint32(len(entries))) // EntryCount2
	entriesOffsetPos := c.Pos()
	c.WriteU16(0) // EntriesOffset placeholder
	c.WriteI16(0) // Unknown2
	c.WriteI32(0) // Unknown3
	c.WriteI32(0) // Unknown4
	c.WriteI32(0) // Unknown5
	c.WriteI32(0) // LnamSectionID
	c.WriteU16(0) // ValidCount
	c.WriteU16(0) // Flags
	c.WriteI16(0) // FreePointer

	entriesOffset := c.Pos()
	for _, e := range entries {
		c.WriteI32(e.SectionID)
		c.WriteI16(e.Unknown0)
		c.WriteI16(e.Unknown1)
	}

	buf := c.Bytes()
	patch := cursor.NewWithEndianness(buf, cursor.BigEndian)
	patch.Seek(entriesOffsetPos)
	patch.WriteU16(uint16(entriesOffset))
	return buf
}

func TestContextPopulateLinksScripts(t *testing.T) {
	buf := buildContext([]SectionMapEntry{{SectionID: 10}, {SectionID: -1}, {SectionID: 11}})
	ctx, err := ReadContext(buf)
	if err != nil {
		t.Fatalf("ReadContext: %v", err)
	}
	if len(ctx.SectionMap) != 3 {
		t.Fatalf("SectionMap len = %d, want 3", len(ctx.SectionMap))
	}

	names, err := ReadNames(buildNames([]string{"go"}))
	if err != nil {
		t.Fatalf("ReadNames: %v", err)
	}
	resolver := &stubResolver{
		names: names,
		scripts: map[int32]*Chunk{
			10: {},
			11: {},
		},
	}

	if err := ctx.Populate(resolver); err != nil {
		t.Fatalf("Populate: %v", err)
	}
	if len(ctx.Scripts) != 2 {
		t.Fatalf("Scripts len = %d, want 2 (slot with SectionID -1 skipped)", len(ctx.Scripts))
	}
	if _, ok := ctx.Scripts[1]; !ok {
		t.Fatalf("expected ordinal 1 bound to section 10")
	}
	if _, ok := ctx.Scripts[3]; !ok {
		t.Fatalf("expected ordinal 3 bound to section 11")
	}
}
