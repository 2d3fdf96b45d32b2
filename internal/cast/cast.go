package cast

import (
	"github.com/systemshift/reeler/internal/chunk"
	"github.com/systemshift/reeler/internal/cursor"
	"github.com/systemshift/reeler/internal/script"
)

// Resolver is what CastChunk needs from the directory to populate
// itself: key-table lookups and fault-in access to member and script
// context chunks.
type Resolver interface {
	ChunkExists(fourcc chunk.Fourcc, sectionID int32) bool
	KeyTableEntriesForCast(castID int32) []chunk.KeyTableEntry
	GetCastMember(sectionID int32) (*MemberChunk, error)
	GetScriptContext(sectionID int32) (*script.ContextChunk, error)
}

// Chunk is a cast library: a slot array of member section ids,
// populated on demand into concrete members plus an optional bound
// script context.
type Chunk struct {
	MemberIDs []int32

	Name    string
	Id      int32
	Members map[int32]*MemberChunk
	Lctx    *script.ContextChunk

	// ScriptMembers maps a bound script's ordinal (within Lctx) back to
	// the cast member that owns it.
	ScriptMembers map[int]*MemberChunk
}

// Read reads a stream of i32 member section ids until EOF, big-endian,
// one per slot (0 meaning empty).
func Read(buf []byte) (*Chunk, error) {
	c := cursor.New(buf)
	cc := &Chunk{}
	for !c.Eof() {
		if c.Len()-c.Pos() < 4 {
			break
		}
		v, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		cc.MemberIDs = append(cc.MemberIDs, v)
	}
	return cc, nil
}

// Populate resolves the cast's script context (if any) and every
// non-empty member slot, then links each member to its script by
// info.ScriptID when the bound context has one.
func (cc *Chunk) Populate(r Resolver, name string, id int32, minMember int32) error {
	cc.Name = name
	cc.Id = id
	cc.Members = make(map[int32]*MemberChunk)
	cc.ScriptMembers = make(map[int]*MemberChunk)

	for _, e := range r.KeyTableEntriesForCast(id) {
		if e.Fourcc != chunk.FourccScriptContext && e.Fourcc != chunk.FourccScriptContext2 {
			continue
		}
		if !r.ChunkExists(e.Fourcc, e.SectionID) {
			continue
		}
		ctx, err := r.GetScriptContext(e.SectionID)
		if err != nil {
			return err
		}
		cc.Lctx = ctx
		break
	}

	for i, sectionID := range cc.MemberIDs {
		if sectionID <= 0 {
			continue
		}
		member, err := r.GetCastMember(sectionID)
		if err != nil {
			return err
		}
		memberID := int32(i) + minMember
		member.Id = memberID
		cc.Members[memberID] = member

		if cc.Lctx != nil && member.Info != nil {
			if s, ok := cc.Lctx.Scripts[int(member.Info.ScriptID)]; ok {
				member.Script = s
				cc.ScriptMembers[int(member.Info.ScriptID)] = member
			}
		}
	}
	return nil
}
