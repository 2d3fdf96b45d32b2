// Package cast implements the cast list / cast / cast member / cast info
// chunks: the per-library entry table, the member id array, and the
// version-branched member record with its list-chunk info payload.
package cast

import (
	"github.com/systemshift/reeler/internal/cursor"
	"github.com/systemshift/reeler/internal/list"
)

// ListEntry is one cast library's row in the CastListChunk, populated
// only for the items-per-cast values actually present (1..=4).
type ListEntry struct {
	Name            string
	FilePath        string
	PreloadSettings uint16
	MinMember       uint16
	MaxMember       uint16
	ID              int32
}

// ListChunk enumerates the cast libraries referenced by the movie,
// built on the list substrate.
type ListChunk struct {
	list.Body

	DataOffset    uint32
	Unk0          uint16
	CastCount     uint16
	ItemsPerCast  uint16
	Unk1          uint16

	Entries []ListEntry
}

// ReadCastList parses a CastListChunk: the substrate's header, offset
// table and items, then synthesizes CastCount ListEntry records from the
// items the header says are present.
func ReadCastList(buf []byte) (*ListChunk, error) {
	c := cursor.New(buf)
	lc := &ListChunk{}
	var err error
	if lc.DataOffset, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if lc.Unk0, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if lc.CastCount, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if lc.ItemsPerCast, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if lc.Unk1, err = c.ReadU16(); err != nil {
		return nil, err
	}
	lc.Body.DataOffset = lc.DataOffset
	if err := lc.Body.ReadOffsetTable(c); err != nil {
		return nil, err
	}
	if err := lc.Body.ReadItems(c); err != nil {
		return nil, err
	}

	lc.Entries = make([]ListEntry, lc.CastCount)
	for i := 0; i < int(lc.CastCount); i++ {
		base := i * int(lc.ItemsPerCast)
		var e ListEntry
		if lc.ItemsPerCast >= 1 {
			e.Name = lc.Body.PascalString(base + 1)
		}
		if lc.ItemsPerCast >= 2 {
			e.FilePath = lc.Body.PascalString(base + 2)
		}
		if lc.ItemsPerCast >= 3 {
			e.PreloadSettings = lc.Body.U16(base + 3)
		}
		if lc.ItemsPerCast >= 4 {
			blob := lc.Body.Bytes(base + 4)
			if len(blob) >= 8 {
				bc := cursor.New(blob)
				e.MinMember, _ = bc.ReadU16()
				e.MaxMember, _ = bc.ReadU16()
				id32, _ := bc.ReadI32()
				e.ID = id32
			}
		}
		lc.Entries[i] = e
	}
	return lc, nil
}

// Write serializes the header, then delegates to the substrate for the
// offset table and item payload.
func (lc *ListChunk) Write() []byte {
	c := cursor.New(nil)
	c.WriteU32(lc.DataOffset)
	c.WriteU16(lc.Unk0)
	c.WriteU16(lc.CastCount)
	c.WriteU16(lc.ItemsPerCast)
	c.WriteU16(lc.Unk1)
	n := lc.Body.Len()
	lc.Body.WriteOffsetsAndItems(c, n, lc.Body.DefaultSizer, lc.Body.DefaultWriter)
	return c.Bytes()
}
