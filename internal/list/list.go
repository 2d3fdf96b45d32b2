// Package list implements the list-chunk substrate: the shared on-disk
// pattern of header + offset table + item payload reused by
// CastListChunk and CastInfoChunk. Subclassing in the original becomes
// composition here: callers embed a Body, read their own header first,
// then delegate offset-table and item parsing to it.
package list

import (
	"github.com/systemshift/reeler/internal/cursor"
	"github.com/systemshift/reeler/internal/direrr"
)

// Body is the generic list-chunk payload: an offset table plus the raw
// item bytes it addresses.
type Body struct {
	DataOffset     uint32
	OffsetTable    []uint32
	ItemsLen       uint32
	items          [][]byte
	itemEndianness cursor.Endianness
}

// ReadOffsetTable seeks to DataOffset, reads the u16 count, then that
// many u32 offsets. DataOffset must already be populated by the caller's
// header reader.
func (b *Body) ReadOffsetTable(c *cursor.Cursor) error {
	if err := c.Seek(int(b.DataOffset)); err != nil {
		return err
	}
	n, err := c.ReadU16()
	if err != nil {
		return err
	}
	b.OffsetTable = make([]uint32, n)
	var prev uint32
	for i := range b.OffsetTable {
		off, err := c.ReadU32()
		if err != nil {
			return err
		}
		if i > 0 && off < prev {
			return direrr.ErrOffsetTableViolation
		}
		b.OffsetTable[i] = off
		prev = off
	}
	return nil
}

// ReadItems reads items_len, then copies out each item's bytes using the
// offset table. It must run immediately after ReadOffsetTable.
func (b *Body) ReadItems(c *cursor.Cursor) error {
	itemsLen, err := c.ReadU32()
	if err != nil {
		return err
	}
	b.ItemsLen = itemsLen
	b.itemEndianness = c.Endianness
	listOffset := c.Pos()

	n := len(b.OffsetTable)
	b.items = make([][]byte, n)
	for i := 0; i < n; i++ {
		start := b.OffsetTable[i]
		var end uint32
		if i+1 < n {
			end = b.OffsetTable[i+1]
		} else {
			end = b.ItemsLen
		}
		if end < start || int(end) > int(b.ItemsLen) {
			return direrr.ErrOffsetTableViolation
		}
		if err := c.Seek(listOffset + int(start)); err != nil {
			return err
		}
		item, err := c.CopyBytes(int(end - start))
		if err != nil {
			return err
		}
		b.items[i] = item
	}
	return nil
}

// Len returns the number of items.
func (b *Body) Len() int { return len(b.items) }

// SetItems installs items directly, e.g. when constructing a list chunk
// programmatically rather than parsing it.
func (b *Body) SetItems(items [][]byte) { b.items = items }

// Item returns the raw bytes of item i, or nil if out of range.
func (b *Body) Item(i int) []byte {
	if i < 0 || i >= len(b.items) {
		return nil
	}
	return b.items[i]
}

// SetItem replaces item i's bytes, growing the slice if needed.
func (b *Body) SetItem(i int, data []byte) {
	for len(b.items) <= i {
		b.items = append(b.items, nil)
	}
	b.items[i] = data
}

// Bytes returns item i's raw bytes, or an empty slice out of range.
func (b *Body) Bytes(i int) []byte {
	v := b.Item(i)
	if v == nil {
		return []byte{}
	}
	return v
}

// String returns item i's bytes decoded as a raw (unprefixed) string.
func (b *Body) String(i int) string {
	return string(b.Bytes(i))
}

// PascalString returns item i decoded as a one-byte-length-prefixed
// string; an empty item is an empty string.
func (b *Body) PascalString(i int) string {
	data := b.Item(i)
	if len(data) == 0 {
		return ""
	}
	c := cursor.NewWithEndianness(data, b.itemEndianness)
	s, err := c.ReadPascalString()
	if err != nil {
		return ""
	}
	return s
}

// U16 returns item i's bytes decoded as a big/little-endian u16 per the
// endianness active when the list was read; zero if out of range or too
// short.
func (b *Body) U16(i int) uint16 {
	data := b.Item(i)
	if len(data) < 2 {
		return 0
	}
	c := cursor.NewWithEndianness(data, b.itemEndianness)
	v, _ := c.ReadU16()
	return v
}

// U32 returns item i's bytes decoded as a u32; zero if out of range or
// too short.
func (b *Body) U32(i int) uint32 {
	data := b.Item(i)
	if len(data) < 4 {
		return 0
	}
	c := cursor.NewWithEndianness(data, b.itemEndianness)
	v, _ := c.ReadU32()
	return v
}

// ItemSizer returns the encoded byte length of item i for write().
type ItemSizer func(i int) int

// ItemWriter writes item i's bytes to c.
type ItemWriter func(c *cursor.Cursor, i int)

// DefaultSizer returns the cached item length — "copy the cached bytes"
// behavior, overridden by CastInfoChunk for items 0 and 1.
func (b *Body) DefaultSizer(i int) int { return len(b.Bytes(i)) }

// DefaultWriter copies the cached item bytes verbatim.
func (b *Body) DefaultWriter(c *cursor.Cursor, i int) { c.WriteBytes(b.Bytes(i)) }

// UpdateOffsets walks i in [0, n) summing item_size(i) into the offset
// table (starting at 0) and sets ItemsLen to the total.
func (b *Body) UpdateOffsets(n int, sizer ItemSizer) {
	b.OffsetTable = make([]uint32, n)
	var total uint32
	for i := 0; i < n; i++ {
		b.OffsetTable[i] = total
		total += uint32(sizer(i))
	}
	b.ItemsLen = total
}

// WriteOffsetsAndItems recomputes offsets and writes offset_table_len,
// the offset table, items_len, and the item payloads, in that order.
// The caller must already have written the header up through DataOffset.
func (b *Body) WriteOffsetsAndItems(c *cursor.Cursor, n int, sizer ItemSizer, writer ItemWriter) {
	b.UpdateOffsets(n, sizer)
	c.WriteU16(uint16(n))
	for _, off := range b.OffsetTable {
		c.WriteU32(off)
	}
	c.WriteU32(b.ItemsLen)
	for i := 0; i < n; i++ {
		writer(c, i)
	}
}
