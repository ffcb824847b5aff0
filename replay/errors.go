package replay

import "errors"

var (
	// ErrCorruptReplay is returned when the compressed container cannot be
	// inflated. Corruption inside the plaintext is only caught later, by the
	// checksum.
	ErrCorruptReplay = errors.New("corrupt replay")

	// ErrEndOfBuffer is returned when a read would pass the end of the
	// deciphered buffer. Combined with the failing record it distinguishes
	// truncated files from structurally invalid ones.
	ErrEndOfBuffer = errors.New("read past end of buffer")

	// ErrInvalidState is returned for an unrecognized record tag.
	ErrInvalidState = errors.New("unrecognized record tag")

	// ErrInvalidTerminalMarker is returned for the legacy sentinel tags that
	// mark a replay the game itself considers invalid.
	ErrInvalidTerminalMarker = errors.New("invalid terminal marker")

	// ErrInvalidReplayData is returned for semantically impossible fields,
	// e.g. a hero count outside [1,5] or a replay with zero entities.
	ErrInvalidReplayData = errors.New("invalid replay data")

	// ErrVersionMismatch is returned when an embedded version-check field
	// disagrees with the declared format version. Suppressible.
	ErrVersionMismatch = errors.New("version check mismatch")

	// ErrChecksumMismatch is returned when the recomputed checksum disagrees
	// with the embedded value. Suppressible.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrInvalidEncoding is returned for malformed text in a string field.
	ErrInvalidEncoding = errors.New("malformed string encoding")
)
