package cast

import (
	"github.com/systemshift/reeler/internal/cursor"
	"github.com/systemshift/reeler/internal/list"
)

// InfoChunk is a list-chunk specialization: item 0 is the raw script
// source text, item 1 is the pascal-string member name, items 2..21 are
// opaque passthrough slots (comment, timestamps, GUIDs, image
// compression) that are never reinterpreted.
type InfoChunk struct {
	list.Body

	DataOffset uint32
	Unk1       uint32
	Unk2       uint32
	Flags      uint32
	ScriptID   uint32

	ScriptSrcText string
	Name          string
}

func ReadCastInfo(buf []byte) (*InfoChunk, error) {
	c := cursor.New(buf)
	ic := &InfoChunk{}
	var err error
	if ic.DataOffset, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if ic.Unk1, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if ic.Unk2, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if ic.Flags, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if ic.ScriptID, err = c.ReadU32(); err != nil {
		return nil, err
	}
	ic.Body.DataOffset = ic.DataOffset
	if err := ic.Body.ReadOffsetTable(c); err != nil {
		return nil, err
	}
	if err := ic.Body.ReadItems(c); err != nil {
		return nil, err
	}

	ic.ScriptSrcText = ic.Body.String(0)
	ic.Name = ic.Body.PascalString(1)
	return ic, nil
}

// itemSize overrides the substrate default for items 0 and 1; writeItem
// below overrides symmetrically.
func (ic *InfoChunk) itemSize(i int) int {
	switch i {
	case 0:
		return len(ic.ScriptSrcText)
	case 1:
		if ic.Name == "" {
			return 0
		}
		return 1 + len(ic.Name)
	default:
		return ic.Body.DefaultSizer(i)
	}
}

func (ic *InfoChunk) writeItem(c *cursor.Cursor, i int) {
	switch i {
	case 0:
		c.WriteString(ic.ScriptSrcText)
	case 1:
		if ic.Name != "" {
			c.WritePascalString(ic.Name)
		}
	default:
		ic.Body.DefaultWriter(c, i)
	}
}

func (ic *InfoChunk) Write() []byte {
	c := cursor.New(nil)
	c.WriteU32(ic.DataOffset)
	c.WriteU32(ic.Unk1)
	c.WriteU32(ic.Unk2)
	c.WriteU32(ic.Flags)
	c.WriteU32(ic.ScriptID)
	n := ic.Body.Len()
	if n < 2 {
		n = 2
	}
	ic.Body.WriteOffsetsAndItems(c, n, ic.itemSize, ic.writeItem)
	return c.Bytes()
}
