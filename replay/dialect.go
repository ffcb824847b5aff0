package replay

// Dialect selects which of the two mutually exclusive field layouts governs a
// decode. It is fixed once known and never changes mid-decode.
//
// Legacy streams open with the format version as a plain 32-bit integer and
// use 4-bit record tags. Current streams open directly with a 3-bit record
// tag and carry the version inside the header record, backed by two redundant
// version-check fields later in the stream.
type Dialect int

const (
	DialectAuto Dialect = iota
	DialectLegacy
	DialectCurrent
)

// currentVersionMin is the version threshold between the two dialects.
const currentVersionMin = 200

func (d Dialect) String() string {
	switch d {
	case DialectLegacy:
		return "legacy"
	case DialectCurrent:
		return "current"
	default:
		return "auto"
	}
}

// tagBits is the width of the per-record selector read by the dispatch loop.
func (d Dialect) tagBits() int {
	if d == DialectLegacy {
		return 4
	}
	return 3
}

// detectDialect peeks the leading 32 bits of the plaintext. A legacy stream
// starts with its version integer, always below currentVersionMin. A current
// stream starts with a non-zero 3-bit tag, so its leading 32 bits read as an
// integer far above the threshold.
func detectDialect(plain []byte) Dialect {
	v, err := NewBitReader(plain).Uint32()
	if err == nil && v > 0 && v < currentVersionMin {
		return DialectLegacy
	}
	return DialectCurrent
}
