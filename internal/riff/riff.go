// Package riff is a minimal stand-in for the outer container reader the
// spec keeps out of scope: it maps a whole-file byte slice into
// (fourcc, section id) -> bytes, which is the only contract the
// directory actually consumes. Section ids are assigned by append order,
// matching how a real packaged-movie's memory map assigns them.
//
// The wire shape here is deliberately simple — tag + flags + length +
// payload, repeated — rather than a faithful reimplementation of the
// real RIFX-derived container, since decoding that container is
// explicitly an external collaborator's job per the spec.
package riff

import (
	"fmt"

	"github.com/DataDog/zstd"

	"github.com/systemshift/reeler/internal/chunk"
	"github.com/systemshift/reeler/internal/cursor"
)

const flagZstd = 1 << 0

type entry struct {
	fourcc chunk.Fourcc
	data   []byte
}

// Container implements chunk.Source over a flat, append-ordered record
// stream.
type Container struct {
	entries []entry
}

// Parse reads every record in buf into the container's section table.
func Parse(buf []byte) (*Container, error) {
	c := cursor.New(buf)
	ct := &Container{}
	for !c.Eof() {
		if c.Len()-c.Pos() < 9 {
			break
		}
		tagBytes, err := c.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		var f chunk.Fourcc
		copy(f[:], tagBytes)

		flags, err := c.ReadU8()
		if err != nil {
			return nil, err
		}
		length, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		payload, err := c.CopyBytes(int(length))
		if err != nil {
			return nil, err
		}
		if flags&flagZstd != 0 {
			decompressed, err := zstd.Decompress(nil, payload)
			if err != nil {
				return nil, fmt.Errorf("riff: decompressing %s: %w", f, err)
			}
			payload = decompressed
		}
		ct.entries = append(ct.entries, entry{fourcc: f, data: payload})
	}
	return ct, nil
}

func (ct *Container) ChunkExists(fourcc chunk.Fourcc, sectionID int32) bool {
	if sectionID < 0 || int(sectionID) >= len(ct.entries) {
		return false
	}
	return ct.entries[sectionID].fourcc == fourcc
}

func (ct *Container) ChunkBytes(fourcc chunk.Fourcc, sectionID int32) ([]byte, error) {
	if !ct.ChunkExists(fourcc, sectionID) {
		return nil, fmt.Errorf("riff: no %s at section %d", fourcc, sectionID)
	}
	return ct.entries[sectionID].data, nil
}

// FindSection returns the section id of the first entry tagged fourcc.
// The directory does not call it; it locates singleton chunks by
// scanning the memory map instead.
func (ct *Container) FindSection(fourcc chunk.Fourcc) (int32, bool) {
	for i, e := range ct.entries {
		if e.fourcc == fourcc {
			return int32(i), true
		}
	}
	return 0, false
}

// Builder assembles a Container's wire bytes for writers and tests.
type Builder struct {
	c *cursor.Cursor
}

func NewBuilder() *Builder {
	return &Builder{c: cursor.New(nil)}
}

// Add appends a record and returns its assigned section id.
func (b *Builder) Add(fourcc chunk.Fourcc, data []byte) int32 {
	return b.add(fourcc, data, 0)
}

// AddCompressed zstd-compresses data before storing it, matching how
// packaged-movie tooling optionally stores opaque cast payloads. The
// core's contract is unaffected: Parse transparently decompresses it
// back into the same bytes ChunkBytes would have returned uncompressed.
func (b *Builder) AddCompressed(fourcc chunk.Fourcc, data []byte) (int32, error) {
	compressed, err := zstd.CompressLevel(nil, data, zstd.BestSpeed)
	if err != nil {
		return 0, fmt.Errorf("riff: compressing %s: %w", fourcc, err)
	}
	return b.add(fourcc, compressed, flagZstd), nil
}

func (b *Builder) add(fourcc chunk.Fourcc, data []byte, flags uint8) int32 {
	id := b.sectionCount()
	b.c.WriteBytes(fourcc[:])
	b.c.WriteU8(flags)
	b.c.WriteU32(uint32(len(data)))
	b.c.WriteBytes(data)
	return id
}

func (b *Builder) sectionCount() int32 {
	// Re-parse count cheaply by scanning; builders are only used in
	// small tests and the demo CLI, never on a hot path.
	ct, err := Parse(b.c.Bytes())
	if err != nil {
		return 0
	}
	return int32(len(ct.entries))
}

func (b *Builder) Bytes() []byte { return b.c.Bytes() }
