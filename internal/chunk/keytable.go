package chunk

import "github.com/systemshift/reeler/internal/cursor"

// KeyTableEntry is a join row: cast CastID references a chunk of type
// Fourcc at SectionID.
type KeyTableEntry struct {
	SectionID int32
	CastID    int32
	Fourcc    Fourcc
}

// KeyTable is the header + entry array. EntrySize and EntrySize2
// duplicate each other in every known file; both are kept verbatim
// rather than collapsed into one field.
type KeyTable struct {
	EntrySize  uint16
	EntrySize2 uint16
	EntryCount uint32
	UsedCount  uint32
	Entries    []KeyTableEntry
}

func ReadKeyTable(buf []byte) (*KeyTable, error) {
	c := cursor.New(buf)
	kt := &KeyTable{}
	var err error
	if kt.EntrySize, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if kt.EntrySize2, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if kt.EntryCount, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if kt.UsedCount, err = c.ReadU32(); err != nil {
		return nil, err
	}
	kt.Entries = make([]KeyTableEntry, kt.EntryCount)
	for i := range kt.Entries {
		var e KeyTableEntry
		if e.SectionID, err = c.ReadI32(); err != nil {
			return nil, err
		}
		if e.CastID, err = c.ReadI32(); err != nil {
			return nil, err
		}
		raw, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		e.Fourcc[0] = byte(raw >> 24)
		e.Fourcc[1] = byte(raw >> 16)
		e.Fourcc[2] = byte(raw >> 8)
		e.Fourcc[3] = byte(raw)
		kt.Entries[i] = e
	}
	return kt, nil
}

func (kt *KeyTable) Write() []byte {
	c := cursor.New(nil)
	c.WriteU16(kt.EntrySize)
	c.WriteU16(kt.EntrySize2)
	c.WriteU32(uint32(len(kt.Entries)))
	c.WriteU32(kt.UsedCount)
	for _, e := range kt.Entries {
		c.WriteI32(e.SectionID)
		c.WriteI32(e.CastID)
		var raw uint32
		raw |= uint32(e.Fourcc[0]) << 24
		raw |= uint32(e.Fourcc[1]) << 16
		raw |= uint32(e.Fourcc[2]) << 8
		raw |= uint32(e.Fourcc[3])
		c.WriteU32(raw)
	}
	return c.Bytes()
}

// EntriesForCast returns every key-table row belonging to castID, in
// file order.
func (kt *KeyTable) EntriesForCast(castID int32) []KeyTableEntry {
	var out []KeyTableEntry
	for _, e := range kt.Entries {
		if e.CastID == castID {
			out = append(out, e)
		}
	}
	return out
}
