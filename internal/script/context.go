package script

import (
	"github.com/systemshift/reeler/internal/chunk"
	"github.com/systemshift/reeler/internal/cursor"
)

// Resolver is what ContextChunk needs from the directory: fault-in
// access to the names chunk and to each member script, by section id.
type Resolver interface {
	ChunkExists(fourcc chunk.Fourcc, sectionID int32) bool
	GetNames(sectionID int32) (*NamesChunk, error)
	GetScript(sectionID int32) (*Chunk, error)
}

// SectionMapEntry is one row of the context's section map; only
// SectionID has documented semantics (a negative value means "no script
// in this slot"), the rest is opaque and preserved verbatim.
type SectionMapEntry struct {
	SectionID int32
	Unknown0  int16
	Unknown1  int16
}

// ContextChunk enumerates a cast library's script resources, binds
// names to them, and triggers the translation pass.
type ContextChunk struct {
	Unknown1      int32
	Len1          uint32
	EntryCount    uint32
	EntryCount2   uint32 // duplicates EntryCount; semantics unknown, preserved verbatim
	EntriesOffset uint16
	Unknown2      int16
	Unknown3      int32
	Unknown4      int32
	Unknown5      int32
	LnamSectionID int32
	ValidCount    uint16
	Flags         uint16
	FreePointer   int16

	SectionMap []SectionMapEntry
	Scripts    map[int]*Chunk

	names      *NamesChunk
	translator Translator
}

// ReadContext parses the fixed header and section map. Script-related
// chunks are always big-endian regardless of the enclosing container's
// nominal order.
func ReadContext(buf []byte) (*ContextChunk, error) {
	c := cursor.NewWithEndianness(buf, cursor.BigEndian)
	ctx := &ContextChunk{}
	var err error
	read32 := func(dst *int32) { if err == nil { *dst, err = c.ReadI32() } }
	readU32 := func(dst *uint32) { if err == nil { *dst, err = c.ReadU32() } }
	read16 := func(dst *int16) { if err == nil { *dst, err = c.ReadI16() } }
	readU16 := func(dst *uint16) { if err == nil { *dst, err = c.ReadU16() } }

	read32(&ctx.Unknown1)
	readU32(&ctx.Len1)
	readU32(&ctx.EntryCount)
	readU32(&ctx.EntryCount2)
	readU16(&ctx.EntriesOffset)
	read16(&ctx.Unknown2)
	read32(&ctx.Unknown3)
	read32(&ctx.Unknown4)
	read32(&ctx.Unknown5)
	read32(&ctx.LnamSectionID)
	readU16(&ctx.ValidCount)
	readU16(&ctx.Flags)
	read16(&ctx.FreePointer)
	if err != nil {
		return nil, err
	}

	if err := c.Seek(int(ctx.EntriesOffset)); err != nil {
		return nil, err
	}
	ctx.SectionMap = make([]SectionMapEntry, ctx.EntryCount)
	for i := range ctx.SectionMap {
		var e SectionMapEntry
		if e.SectionID, err = c.ReadI32(); err != nil {
			return nil, err
		}
		if e.Unknown0, err = c.ReadI16(); err != nil {
			return nil, err
		}
		if e.Unknown1, err = c.ReadI16(); err != nil {
			return nil, err
		}
		ctx.SectionMap[i] = e
	}
	return ctx, nil
}

// SetTranslator installs the Translator used by Populate's translation
// pass, overriding DefaultTranslator.
func (ctx *ContextChunk) SetTranslator(t Translator) {
	ctx.translator = t
}

// Populate resolves the names chunk, then each entry_count script in
// order (1-based ordinal keys), binds itself into each, then translates
// every resolved script.
func (ctx *ContextChunk) Populate(r Resolver) error {
	names, err := r.GetNames(ctx.LnamSectionID)
	if err != nil {
		return err
	}
	ctx.names = names

	ctx.Scripts = make(map[int]*Chunk)
	for i, entry := range ctx.SectionMap {
		if entry.SectionID <= -1 {
			continue
		}
		ordinal := i + 1
		s, err := r.GetScript(entry.SectionID)
		if err != nil {
			return err
		}
		s.SetContext(ctx)
		ctx.Scripts[ordinal] = s
	}

	for _, s := range ctx.Scripts {
		s.Translate()
	}
	return nil
}

// GetName dereferences id through the bound names chunk.
func (ctx *ContextChunk) GetName(id int) string {
	return ctx.names.GetName(id)
}
