package replay

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

type recordType uint32

const (
	recordInputs     recordType = 1
	recordTerminal   recordType = 2
	recordHeader     recordType = 3
	recordPlayerData recordType = 4
	recordKnockouts  recordType = 5
	recordResults    recordType = 6
	recordFaces      recordType = 7
)

func (t recordType) String() string {
	switch t {
	case recordInputs:
		return "inputs"
	case recordTerminal:
		return "terminal"
	case recordHeader:
		return "header"
	case recordPlayerData:
		return "playerData"
	case recordKnockouts:
		return "knockouts"
	case recordResults:
		return "results"
	case recordFaces:
		return "faces"
	}
	return fmt.Sprintf("record(%d)", uint32(t))
}

// Reader decodes one replay. It is exclusively owned by a single decode
// operation; separate decodes share nothing but the cipher key and dialect
// tables, so any number may run in parallel.
type Reader struct {
	b               *BitReader
	dialect         Dialect
	ignoreIntegrity bool
	done            bool

	Replay *Replay
}

type Option func(*Reader)

// WithIntegrityChecksDisabled suppresses checksum and version-check
// mismatches for the whole decode. All other errors remain fatal.
func WithIntegrityChecksDisabled() Option {
	return func(r *Reader) { r.ignoreIntegrity = true }
}

// WithDialect forces a dialect instead of detecting it from the stream.
func WithDialect(d Dialect) Option {
	return func(r *Reader) { r.dialect = d }
}

// NewReader runs the decompress+decipher pipeline over the raw file bytes
// and prepares a Reader over the resulting plaintext.
func NewReader(raw []byte, opts ...Option) (*Reader, error) {
	plain, err := decipher(raw)
	if err != nil {
		return nil, err
	}
	return newPlaintextReader(plain, opts...)
}

func newPlaintextReader(plain []byte, opts ...Option) (*Reader, error) {
	r := &Reader{
		b: NewBitReader(plain),
		Replay: &Replay{
			Results: map[int]int{},
			Inputs:  map[int][]Input{},
		},
	}
	for _, o := range opts {
		o(r)
	}
	if r.dialect == DialectAuto {
		r.dialect = detectDialect(plain)
	}
	log.Debug().Stringer("dialect", r.dialect).Int("bytes", len(plain)).Msg("replay opened")
	if r.dialect == DialectLegacy {
		// The legacy stream opens with the version, before any record.
		v, err := r.b.Uint32()
		if err != nil {
			return nil, err
		}
		r.Replay.Version = v
	}
	return r, nil
}

// Read runs the dispatch loop to completion and validates the result. The
// Replay field holds the decoded match afterwards and is not mutated again.
func (r *Reader) Read() error {
	for !r.done && r.b.Remaining() > 0 {
		tag, err := r.b.ReadBits(r.dialect.tagBits())
		if err != nil {
			return err
		}
		t := recordType(tag)
		log.Debug().Stringer("record", t).Int("remaining", r.b.Remaining()).Msg("record")
		switch t {
		case recordInputs:
			err = readInputs(r)
		case recordTerminal:
			r.done = true
		case recordHeader:
			err = readHeader(r)
		case recordPlayerData:
			err = readPlayerData(r)
		case recordKnockouts:
			err = readFaces(r, true)
		case recordResults:
			err = readResults(r)
		case recordFaces:
			err = readFaces(r, false)
		default:
			// Tags above 7 only fit the legacy 4-bit width; the game writes
			// them into replays it considers invalid.
			if tag > 7 {
				return fmt.Errorf("%w: tag %d", ErrInvalidTerminalMarker, tag)
			}
			return fmt.Errorf("%w: tag %d", ErrInvalidState, tag)
		}
		if err != nil {
			return err
		}
	}
	return r.validate()
}

func (r *Reader) validate() error {
	if len(r.Replay.Entities) == 0 {
		return fmt.Errorf("%w: no entities decoded", ErrInvalidReplayData)
	}
	sum := CalculateChecksum(r.Replay)
	if sum != r.Replay.Checksum {
		if !r.ignoreIntegrity {
			return fmt.Errorf("%w: computed %d, embedded %d", ErrChecksumMismatch, sum, r.Replay.Checksum)
		}
		log.Debug().Uint32("computed", sum).Uint32("embedded", r.Replay.Checksum).Msg("checksum mismatch ignored")
	}
	return nil
}

// checkVersion compares an embedded version-check field against the declared
// version. Only the current dialect carries these fields.
func (r *Reader) checkVersion(check uint32) error {
	if check == r.Replay.Version {
		return nil
	}
	if r.ignoreIntegrity {
		log.Debug().Uint32("check", check).Uint32("version", r.Replay.Version).Msg("version check ignored")
		return nil
	}
	return fmt.Errorf("%w: embedded %d, declared %d", ErrVersionMismatch, check, r.Replay.Version)
}

// readList runs the stop-bit convention shared by every repeated structure in
// the format: read one bit, stop on false, otherwise decode an element and
// repeat.
func (r *Reader) readList(decode func() error) error {
	for {
		more, err := r.b.Bool()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		if err := decode(); err != nil {
			return err
		}
	}
}

// Decode decodes a complete replay from its raw file bytes.
func Decode(raw []byte, opts ...Option) (*Replay, error) {
	r, err := NewReader(raw, opts...)
	if err != nil {
		return nil, err
	}
	if err := r.Read(); err != nil {
		return nil, err
	}
	return r.Replay, nil
}

// DecodeFile decodes the replay stored at path.
func DecodeFile(path string, opts ...Option) (*Replay, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(raw, opts...)
}
