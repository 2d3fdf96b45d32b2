package script

import (
	"fmt"

	"github.com/systemshift/reeler/internal/cursor"
)

// NamesChunk interns the strings scripts reference by index: property
// names, global names, handler/argument names, literal names.
type NamesChunk struct {
	Unknown0    int32
	Unknown1    int32
	Len1        uint32
	Len2        uint32
	NamesOffset uint16
	NamesCount  uint16
	Names       []string
}

// ReadNames parses a script names chunk. Script-related chunks are
// always big-endian regardless of the enclosing container's nominal
// order, so the cursor is forced here rather than inherited.
func ReadNames(buf []byte) (*NamesChunk, error) {
	c := cursor.NewWithEndianness(buf, cursor.BigEndian)
	n := &NamesChunk{}
	var err error
	if n.Unknown0, err = c.ReadI32(); err != nil {
		return nil, err
	}
	if n.Unknown1, err = c.ReadI32(); err != nil {
		return nil, err
	}
	if n.Len1, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if n.Len2, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if n.NamesOffset, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if n.NamesCount, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if err := c.Seek(int(n.NamesOffset)); err != nil {
		return nil, err
	}
	n.Names = make([]string, n.NamesCount)
	for i := range n.Names {
		s, err := c.ReadPascalString()
		if err != nil {
			return nil, err
		}
		n.Names[i] = s
	}
	return n, nil
}

// GetName is total: it is defined for every integer id, returning a
// sentinel for anything out of range rather than erroring, since
// downstream consumers legitimately probe ids speculatively.
func (n *NamesChunk) GetName(id int) string {
	if n == nil || id < 0 || id >= len(n.Names) {
		return fmt.Sprintf("UNKNOWN_NAME_%d", id)
	}
	return n.Names[id]
}
