// Package direrr declares the sentinel error kinds the decoder raises.
// Decode errors are fatal and propagate to the directory load, except
// for the checksum mismatch, which is logged and otherwise ignored.
package direrr

import "errors"

var (
	// ErrUnexpectedEOF: a cursor read ran past the end of the buffer.
	ErrUnexpectedEOF = errors.New("unexpected end of buffer")
	// ErrUnresolvedReference: a (fourcc, section id) the core needed is
	// absent from the directory.
	ErrUnresolvedReference = errors.New("unresolved chunk reference")
	// ErrChecksumMismatch: a ConfigChunk's stored checksum does not match
	// the computed one. Non-fatal; callers may ignore it.
	ErrChecksumMismatch = errors.New("config checksum mismatch")
	// ErrOffsetTableViolation: a list chunk's offset table is not
	// monotonically non-decreasing, or an offset exceeds items_len.
	ErrOffsetTableViolation = errors.New("list chunk offset table violation")
)
