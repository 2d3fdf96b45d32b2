package config

import (
	"testing"

	"github.com/systemshift/reeler/internal/logger"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Log(format string, args ...interface{}) {
	l.lines = append(l.lines, format)
}

func sampleChunk() *Chunk {
	return &Chunk{
		Len:             uint16(Size),
		FileVersion:     7,
		MovieTop:        0,
		MovieLeft:       0,
		MovieBottom:     480,
		MovieRight:      640,
		MinMember:       1,
		MaxMember:       512,
		Field9:          1,
		Field10:         2,
		Field11:         3,
		CommentFont:     0,
		CommentSize:     12,
		CommentStyle:    0,
		StageColor:      0,
		BitDepth:        32,
		Field17:         0,
		Field18:         1,
		Field19:         0,
		DirectorVersion: 1351,
		Field21:         0,
		Field22:         0,
		Field23:         0,
		Field24:         0,
		Field25:         0,
		Field26:         0,
		FrameRate:       30,
		Platform:        1,
		Protection:      0,
		Field29:         0,
	}
}

func TestRoundTrip(t *testing.T) {
	cfg := sampleChunk()
	buf := cfg.Write()

	log := &recordingLogger{}
	got, err := Read(buf, log)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(log.lines) != 0 {
		t.Fatalf("unexpected checksum mismatch log: %v", log.lines)
	}
	if got.FileVersion != cfg.FileVersion || got.DirectorVersion != cfg.DirectorVersion {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
	if got.Checksum != cfg.ComputeChecksum() {
		t.Fatalf("checksum mismatch after round trip")
	}
}

func TestChecksumMismatchIsLoggedNotFatal(t *testing.T) {
	cfg := sampleChunk()
	buf := cfg.Write()
	buf[64] ^= 0xFF // corrupt the stored checksum's first byte

	log := &recordingLogger{}
	got, err := Read(buf, log)
	if err != nil {
		t.Fatalf("Read returned error on checksum mismatch: %v", err)
	}
	if len(log.lines) == 0 {
		t.Fatalf("expected a checksum mismatch to be logged")
	}
	if got == nil {
		t.Fatalf("expected a parsed chunk despite mismatch")
	}
}

func TestRemnantsPreservedVerbatim(t *testing.T) {
	cfg := sampleChunk()
	cfg.Remnants = []byte{0xAA, 0xBB, 0xCC}
	cfg.Len = uint16(Size + len(cfg.Remnants))
	buf := cfg.Write()

	got, err := Read(buf, logger.DefaultLogger)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got.Remnants) != string(cfg.Remnants) {
		t.Fatalf("Remnants = %v, want %v", got.Remnants, cfg.Remnants)
	}
}

func TestHumanVersionThresholds(t *testing.T) {
	cases := []struct {
		raw  int16
		want int
	}{
		{1231, 700},
		{1230, 600},
		{1341, 800},
		{1340, 700},
	}
	for _, c := range cases {
		if got := HumanVersion(c.raw); got != c.want {
			t.Fatalf("HumanVersion(%d) = %d, want %d", c.raw, got, c.want)
		}
	}
}

func TestReadRejectsShortLen(t *testing.T) {
	cfg := sampleChunk()
	cfg.Len = uint16(Size - 1)
	buf := cfg.Write()
	if _, err := Read(buf, logger.DefaultLogger); err == nil {
		t.Fatalf("expected error for Len shorter than fixed layout")
	}
}
