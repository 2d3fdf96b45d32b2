// Package config implements the fixed-layout configuration chunk and
// its order-dependent checksum.
package config

import (
	"fmt"

	"github.com/systemshift/reeler/internal/cursor"
	"github.com/systemshift/reeler/internal/direrr"
	"github.com/systemshift/reeler/internal/logger"
)

// Size is the fixed portion of the config chunk, before Remnants.
const Size = 68

// Chunk is the 68-byte fixed record, plus a verbatim tail and the
// stored checksum. Field widths and order follow the reference decoder
// byte for byte; several fields read as signed even though their value
// never goes negative (StageColor, DirectorVersion) because the
// checksum depends on that exact sign extension.
type Chunk struct {
	Len             uint16
	FileVersion     uint16
	MovieTop        int16
	MovieLeft       int16
	MovieBottom     int16
	MovieRight      int16
	MinMember       uint16
	MaxMember       uint16
	Field9          uint8
	Field10         uint8
	Field11         int16
	CommentFont     int16
	CommentSize     int16
	CommentStyle    uint16
	StageColor      int16
	BitDepth        int16
	Field17         uint8
	Field18         uint8
	Field19         int32
	DirectorVersion int16
	Field21         int16
	Field22         int32
	Field23         int32
	Field24         int32
	Field25         uint8
	Field26         uint8
	FrameRate       int16
	Platform        int16
	Protection      int16
	Field29         int32
	Checksum        uint32
	Remnants        []byte
}

// Read parses a config chunk from buf, which must be the whole chunk
// (Len bytes). A checksum mismatch is logged, not fatal.
func Read(buf []byte, log logger.Logger) (*Chunk, error) {
	if log == nil {
		log = logger.DefaultLogger
	}
	c := cursor.New(buf)
	cfg := &Chunk{}
	var err error
	read32 := func(dst *int32) { if err == nil { *dst, err = c.ReadI32() } }
	readU32 := func(dst *uint32) { if err == nil { *dst, err = c.ReadU32() } }
	read16 := func(dst *int16) { if err == nil { *dst, err = c.ReadI16() } }
	readU16 := func(dst *uint16) { if err == nil { *dst, err = c.ReadU16() } }
	read8 := func(dst *uint8) { if err == nil { *dst, err = c.ReadU8() } }

	readU16(&cfg.Len)
	readU16(&cfg.FileVersion)
	read16(&cfg.MovieTop)
	read16(&cfg.MovieLeft)
	read16(&cfg.MovieBottom)
	read16(&cfg.MovieRight)
	readU16(&cfg.MinMember)
	readU16(&cfg.MaxMember)
	read8(&cfg.Field9)
	read8(&cfg.Field10)
	read16(&cfg.Field11)
	read16(&cfg.CommentFont)
	read16(&cfg.CommentSize)
	readU16(&cfg.CommentStyle)
	read16(&cfg.StageColor)
	read16(&cfg.BitDepth)
	read8(&cfg.Field17)
	read8(&cfg.Field18)
	read32(&cfg.Field19)
	read16(&cfg.DirectorVersion)
	read16(&cfg.Field21)
	read32(&cfg.Field22)
	read32(&cfg.Field23)
	read32(&cfg.Field24)
	read8(&cfg.Field25)
	read8(&cfg.Field26)
	read16(&cfg.FrameRate)
	read16(&cfg.Platform)
	read16(&cfg.Protection)
	read32(&cfg.Field29)
	readU32(&cfg.Checksum)
	if err != nil {
		return nil, err
	}

	tail := int(cfg.Len) - Size
	if tail < 0 {
		return nil, fmt.Errorf("config: len %d shorter than fixed layout %d", cfg.Len, Size)
	}
	if tail > 0 {
		cfg.Remnants, err = c.CopyBytes(tail)
		if err != nil {
			return nil, err
		}
	}

	if computed := cfg.ComputeChecksum(); computed != cfg.Checksum {
		log.Log("config checksum mismatch: stored=%#x computed=%#x: %v", cfg.Checksum, computed, direrr.ErrChecksumMismatch)
	}
	return cfg, nil
}

// Write recomputes the checksum, then serializes the fixed record
// followed by Remnants verbatim. Len is trusted as-is (the caller is
// responsible for keeping it in sync with len(Remnants)+Size).
func (cfg *Chunk) Write() []byte {
	cfg.Checksum = cfg.ComputeChecksum()

	c := cursor.New(nil)
	c.WriteU16(cfg.Len)
	c.WriteU16(cfg.FileVersion)
	c.WriteI16(cfg.MovieTop)
	c.WriteI16(cfg.MovieLeft)
	c.WriteI16(cfg.MovieBottom)
	c.WriteI16(cfg.MovieRight)
	c.WriteU16(cfg.MinMember)
	c.WriteU16(cfg.MaxMember)
	c.WriteU8(cfg.Field9)
	c.WriteU8(cfg.Field10)
	c.WriteI16(cfg.Field11)
	c.WriteI16(cfg.CommentFont)
	c.WriteI16(cfg.CommentSize)
	c.WriteU16(cfg.CommentStyle)
	c.WriteI16(cfg.StageColor)
	c.WriteI16(cfg.BitDepth)
	c.WriteU8(cfg.Field17)
	c.WriteU8(cfg.Field18)
	c.WriteI32(cfg.Field19)
	c.WriteI16(cfg.DirectorVersion)
	c.WriteI16(cfg.Field21)
	c.WriteI32(cfg.Field22)
	c.WriteI32(cfg.Field23)
	c.WriteI32(cfg.Field24)
	c.WriteU8(cfg.Field25)
	c.WriteU8(cfg.Field26)
	c.WriteI16(cfg.FrameRate)
	c.WriteI16(cfg.Platform)
	c.WriteI16(cfg.Protection)
	c.WriteI32(cfg.Field29)
	c.WriteU32(cfg.Checksum)
	c.WriteBytes(cfg.Remnants)
	return c.Bytes()
}

// HumanVersion maps a raw encoded director version to the "human"
// release number (700, 800, 1000, ...) used by the checksum's version
// branches. The exact table is undocumented upstream; this preserves the
// two thresholds (700, 800) the checksum formula depends on.
func HumanVersion(raw int16) int {
	switch {
	case raw >= 1951:
		return 1200
	case raw >= 1731:
		return 1100
	case raw >= 1601:
		return 1000
	case raw >= 1451:
		return 850
	case raw >= 1341:
		return 800
	case raw >= 1231:
		return 700
	case raw >= 1171:
		return 600
	case raw >= 1111:
		return 500
	case raw >= 1051:
		return 400
	default:
		return 200
	}
}

// ComputeChecksum runs the order-sensitive arithmetic recipe over a
// 32-bit signed accumulator with wrapping two's-complement semantics,
// which is exactly what Go's int32 arithmetic already guarantees, so no
// special wrapping helper is needed here.
func (cfg *Chunk) ComputeChecksum() uint32 {
	v := HumanVersion(cfg.DirectorVersion)

	c := int32(cfg.Len) + 1
	c *= int32(cfg.FileVersion) + 2
	c /= int32(cfg.MovieTop) + 3
	c *= int32(cfg.MovieLeft) + 4
	c /= int32(cfg.MovieBottom) + 5
	c *= int32(cfg.MovieRight) + 6
	c -= int32(cfg.MinMember) + 7
	c *= int32(cfg.MaxMember) + 8
	c -= int32(cfg.Field9) + 9
	c -= int32(cfg.Field10) + 10
	c += int32(cfg.Field11) + 11
	c *= int32(cfg.CommentFont) + 12
	c += int32(cfg.CommentSize) + 13

	var styleTerm int32
	if v < 800 {
		styleTerm = int32((cfg.CommentStyle >> 8) & 0xFF)
	} else {
		styleTerm = int32(cfg.CommentStyle)
	}
	c *= styleTerm + 14

	var stageTerm int32
	if v < 700 {
		stageTerm = int32(cfg.StageColor)
	} else {
		stageTerm = int32(cfg.StageColor & 0xFF)
	}
	c += stageTerm + 15

	c += int32(cfg.BitDepth) + 16
	c += int32(cfg.Field17) + 17
	c *= int32(cfg.Field18) + 18
	c += cfg.Field19 + 19
	c *= int32(cfg.DirectorVersion) + 20
	c += int32(cfg.Field21) + 21
	c += cfg.Field22 + 22
	c += cfg.Field23 + 23
	c += cfg.Field24 + 24
	c *= int32(cfg.Field25) + 25
	c += int32(cfg.FrameRate) + 26
	c *= int32(cfg.Platform) + 27
	c *= (int32(cfg.Protection) * 0xE06) - 0x00BB0000 // 0xFF450000 reinterpreted as int32
	c ^= 0x72616C66                                     // 'ralf'

	return uint32(c)
}
