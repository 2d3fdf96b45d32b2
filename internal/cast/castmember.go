package cast

import (
	"github.com/systemshift/reeler/internal/cursor"
	"github.com/systemshift/reeler/internal/script"
)

// MemberType discriminates a cast member's payload decoder. Only the
// script member type is singled out by the core; every other type is a
// generic opaque passthrough.
type MemberType int32

const (
	MemberTypeNone   MemberType = 0
	MemberTypeBitmap MemberType = 1
	MemberTypeSound  MemberType = 6
	MemberTypeScript MemberType = 11
)

// ScriptMember marks a member whose specific data belongs to a script
// resource; the script itself is resolved separately and linked via
// CastChunk.Populate.
type ScriptMember struct{}

// GenericMember is the opaque passthrough used for every non-script
// member type: graphics, audio, and anything else are kept as raw bytes.
type GenericMember struct {
	Data []byte
}

// MemberChunk is one cast member: its flags, its list-chunk info
// record, and its version-branched specific-data payload.
type MemberChunk struct {
	Type      MemberType
	HasFlags1 bool
	Flags1    uint8
	Info      *InfoChunk

	SpecificData []byte
	Member       interface{} // ScriptMember or GenericMember

	// Id is the member's logical id, assigned by CastChunk.Populate as
	// slot index + min_member; zero until populated.
	Id int32

	// Script is a non-owning link to this member's bound script, set by
	// CastChunk.Populate when the cast's Lctx has a script keyed by
	// Info.ScriptID.
	Script *script.Chunk
}

// ReadMember parses a cast member chunk, branching on the enclosing
// directory's version.
func ReadMember(buf []byte, version uint16) (*MemberChunk, error) {
	c := cursor.New(buf)
	m := &MemberChunk{}

	if version >= 500 {
		typeVal, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		infoLen, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		specLen, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		m.Type = MemberType(typeVal)

		if infoLen > 0 {
			infoBytes, err := c.CopyBytes(int(infoLen))
			if err != nil {
				return nil, err
			}
			info, err := ReadCastInfo(infoBytes)
			if err != nil {
				return nil, err
			}
			m.Info = info
		}

		if m.SpecificData, err = c.CopyBytes(int(specLen)); err != nil {
			return nil, err
		}
	} else {
		specLen, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		infoLen, err := c.ReadU32()
		if err != nil {
			return nil, err
		}

		specBlock, err := c.CopyBytes(int(specLen))
		if err != nil {
			return nil, err
		}
		if len(specBlock) > 0 {
			m.Type = MemberType(specBlock[0])
		}
		if len(specBlock) > 1 {
			m.HasFlags1 = true
			m.Flags1 = specBlock[1]
			m.SpecificData = specBlock[2:]
		} else {
			m.SpecificData = nil
		}

		if infoLen > 0 {
			infoBytes, err := c.CopyBytes(int(infoLen))
			if err != nil {
				return nil, err
			}
			info, err := ReadCastInfo(infoBytes)
			if err != nil {
				return nil, err
			}
			m.Info = info
		}
	}

	if m.Type == MemberTypeScript {
		m.Member = ScriptMember{}
	} else {
		m.Member = GenericMember{Data: m.SpecificData}
	}
	return m, nil
}

// Size recomputes info_len, specific_data_len, and (for the v<500
// branch) the 1-2 bytes stripped into Type/Flags1.
func (m *MemberChunk) Size(version uint16) int {
	var infoLen int
	if m.Info != nil {
		infoLen = len(m.Info.Write())
	}
	if version >= 500 {
		return 4 + 4 + 4 + infoLen + len(m.SpecificData)
	}
	specLen := 1 + len(m.SpecificData)
	if m.HasFlags1 {
		specLen++
	}
	return 2 + 4 + specLen + infoLen
}

// Write mirrors Read exactly for the given version.
func (m *MemberChunk) Write(version uint16) []byte {
	c := cursor.New(nil)
	var infoBytes []byte
	if m.Info != nil {
		infoBytes = m.Info.Write()
	}

	if version >= 500 {
		c.WriteU32(uint32(m.Type))
		c.WriteU32(uint32(len(infoBytes)))
		c.WriteU32(uint32(len(m.SpecificData)))
		c.WriteBytes(infoBytes)
		c.WriteBytes(m.SpecificData)
		return c.Bytes()
	}

	specLen := 1 + len(m.SpecificData)
	if m.HasFlags1 {
		specLen++
	}
	c.WriteU16(uint16(specLen))
	c.WriteU32(uint32(len(infoBytes)))
	c.WriteU8(uint8(m.Type))
	if m.HasFlags1 {
		c.WriteU8(m.Flags1)
	}
	c.WriteBytes(m.SpecificData)
	c.WriteBytes(infoBytes)
	return c.Bytes()
}
