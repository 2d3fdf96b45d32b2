package chunk

import "github.com/systemshift/reeler/internal/cursor"

// InitialMap is the fixed 24-byte header that locates the memory map
// within the container.
type InitialMap struct {
	One        uint32
	MmapOffset uint32
	Version    uint32
	Unused1    uint32
	Unused2    uint32
	Unused3    uint32
}

func ReadInitialMap(buf []byte) (InitialMap, error) {
	var im InitialMap
	c := cursor.New(buf)
	var err error
	if im.One, err = c.ReadU32(); err != nil {
		return im, err
	}
	if im.MmapOffset, err = c.ReadU32(); err != nil {
		return im, err
	}
	if im.Version, err = c.ReadU32(); err != nil {
		return im, err
	}
	if im.Unused1, err = c.ReadU32(); err != nil {
		return im, err
	}
	if im.Unused2, err = c.ReadU32(); err != nil {
		return im, err
	}
	if im.Unused3, err = c.ReadU32(); err != nil {
		return im, err
	}
	return im, nil
}

func (im InitialMap) Write() []byte {
	c := cursor.New(nil)
	c.WriteU32(im.One)
	c.WriteU32(im.MmapOffset)
	c.WriteU32(im.Version)
	c.WriteU32(im.Unused1)
	c.WriteU32(im.Unused2)
	c.WriteU32(im.Unused3)
	return c.Bytes()
}

// MemoryMapEntry is one slot of the memory map, addressed by section id.
type MemoryMapEntry struct {
	Fourcc Fourcc
	Len    uint32
	Offset uint32
	Flags  uint32
	Next   int32
}

// MemoryMap is the header + entry array. Its on-disk size uses
// ChunkCountMax, not ChunkCountUsed, so that a written copy preserves
// whatever slack the original reserved for future growth.
type MemoryMap struct {
	HeaderLength   uint16
	EntryLength    uint16
	ChunkCountMax  int32
	ChunkCountUsed int32
	JunkHead       int32
	JunkHead2      int32
	FreeHead       int32
	Entries        []MemoryMapEntry
}

func ReadMemoryMap(buf []byte) (*MemoryMap, error) {
	c := cursor.New(buf)
	mm := &MemoryMap{}
	var err error
	if mm.HeaderLength, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if mm.EntryLength, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if mm.ChunkCountMax, err = c.ReadI32(); err != nil {
		return nil, err
	}
	if mm.ChunkCountUsed, err = c.ReadI32(); err != nil {
		return nil, err
	}
	if mm.JunkHead, err = c.ReadI32(); err != nil {
		return nil, err
	}
	if mm.JunkHead2, err = c.ReadI32(); err != nil {
		return nil, err
	}
	if mm.FreeHead, err = c.ReadI32(); err != nil {
		return nil, err
	}
	if err := c.Seek(int(mm.HeaderLength)); err != nil {
		return nil, err
	}
	mm.Entries = make([]MemoryMapEntry, mm.ChunkCountUsed)
	for i := range mm.Entries {
		fourccRaw, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		var f Fourcc
		f[0] = byte(fourccRaw >> 24)
		f[1] = byte(fourccRaw >> 16)
		f[2] = byte(fourccRaw >> 8)
		f[3] = byte(fourccRaw)
		e := MemoryMapEntry{Fourcc: f}
		if e.Len, err = c.ReadU32(); err != nil {
			return nil, err
		}
		if e.Offset, err = c.ReadU32(); err != nil {
			return nil, err
		}
		if e.Flags, err = c.ReadU32(); err != nil {
			return nil, err
		}
		if e.Next, err = c.ReadI32(); err != nil {
			return nil, err
		}
		mm.Entries[i] = e
	}
	return mm, nil
}

// Size is header_length + chunk_count_max * entry_length.
func (mm *MemoryMap) Size() int {
	return int(mm.HeaderLength) + int(mm.ChunkCountMax)*int(mm.EntryLength)
}

func (mm *MemoryMap) Write() []byte {
	c := cursor.New(nil)
	c.WriteU16(mm.HeaderLength)
	c.WriteU16(mm.EntryLength)
	c.WriteI32(mm.ChunkCountMax)
	c.WriteI32(mm.ChunkCountUsed)
	c.WriteI32(mm.JunkHead)
	c.WriteI32(mm.JunkHead2)
	c.WriteI32(mm.FreeHead)
	if err := c.Seek(int(mm.HeaderLength)); err != nil {
		panic(err)
	}
	for _, e := range mm.Entries {
		var raw uint32
		raw |= uint32(e.Fourcc[0]) << 24
		raw |= uint32(e.Fourcc[1]) << 16
		raw |= uint32(e.Fourcc[2]) << 8
		raw |= uint32(e.Fourcc[3])
		c.WriteU32(raw)
		c.WriteU32(e.Len)
		c.WriteU32(e.Offset)
		c.WriteU32(e.Flags)
		c.WriteI32(e.Next)
	}
	out := c.Bytes()
	full := mm.Size()
	if len(out) < full {
		grown := make([]byte, full)
		copy(grown, out)
		return grown
	}
	return out
}
