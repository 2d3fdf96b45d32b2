// Package chunk holds the low-level, container-wide pieces of the movie
// format: the four-character chunk tag, the memory map / initial map /
// key table chunks that locate and cross-reference everything else, and
// the Source contract the core expects from an outer container reader.
package chunk

import "fmt"

// Fourcc is a four-character chunk tag, e.g. "CASt", "Lctx", "Lnam".
type Fourcc [4]byte

func NewFourcc(s string) Fourcc {
	var f Fourcc
	copy(f[:], s)
	return f
}

func (f Fourcc) String() string { return string(f[:]) }

// Known chunk tags referenced by the core.
var (
	// FourccCast is the per-library member-id array (chunkType Cast).
	FourccCast = NewFourcc("CAS*")
	// FourccCastList is the movie-wide cast library list (chunkType CastList).
	FourccCastList       = NewFourcc("MCsL")
	FourccCastMember     = NewFourcc("CASt")
	FourccConfig         = NewFourcc("VWCF")
	FourccConfigAlt      = NewFourcc("DRCF")
	FourccInitialMap     = NewFourcc("imap")
	FourccMemoryMap      = NewFourcc("mmap")
	FourccKeyTable       = NewFourcc("KEY*")
	FourccScript         = NewFourcc("Lscr")
	FourccScriptContext  = NewFourcc("Lctx")
	FourccScriptContext2 = NewFourcc("LctX")
	FourccScriptNames    = NewFourcc("Lnam")
)

// Ref names a chunk by tag and section id, the universal key used by
// Source, the key table, and the directory's chunk registry.
type Ref struct {
	Fourcc    Fourcc
	SectionID int32
}

func (r Ref) String() string {
	return fmt.Sprintf("%s@%d", r.Fourcc, r.SectionID)
}

// Source is the contract the core consumes from the outer container
// reader (deliberately out of scope per the spec): it yields raw chunk
// bytes addressable by (fourcc, section id).
type Source interface {
	ChunkExists(fourcc Fourcc, sectionID int32) bool
	ChunkBytes(fourcc Fourcc, sectionID int32) ([]byte, error)
}
