package replay

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// BitReader is a strictly forward-only reader of individual bits over an
// immutable byte buffer. Bits are consumed most-significant-bit first within
// each byte. It is not seekable and never buffers beyond the cursor.
type BitReader struct {
	b   []byte
	pos int // absolute bit offset into b
}

func NewBitReader(b []byte) *BitReader {
	return &BitReader{b: b}
}

// ReadBits returns the next n bits (0..32) as an unsigned integer and
// advances the cursor. Reading 0 bits is a no-op returning 0.
func (r *BitReader) ReadBits(n int) (uint32, error) {
	if n == 0 {
		return 0, nil
	}
	if n < 0 || n > 32 {
		return 0, fmt.Errorf("bit count %d out of range", n)
	}
	if r.pos+n > len(r.b)*8 {
		return 0, fmt.Errorf("%w: need %d bits, %d left", ErrEndOfBuffer, n, len(r.b)*8-r.pos)
	}
	var v uint32
	for i := 0; i < n; i++ {
		bit := r.b[r.pos>>3] >> (7 - uint(r.pos&7)) & 1
		v = v<<1 | uint32(bit)
		r.pos++
	}
	return v, nil
}

// Bool reads a single bit.
func (r *BitReader) Bool() (bool, error) {
	v, err := r.ReadBits(1)
	return v != 0, err
}

// Byte reads 8 bits.
func (r *BitReader) Byte() (byte, error) {
	v, err := r.ReadBits(8)
	return byte(v), err
}

// Uint16 reads 16 bits.
func (r *BitReader) Uint16() (uint16, error) {
	v, err := r.ReadBits(16)
	return uint16(v), err
}

// Int16 reads 16 bits reinterpreted as two's-complement signed.
func (r *BitReader) Int16() (int16, error) {
	v, err := r.ReadBits(16)
	return int16(v), err
}

// Uint32 reads 32 bits.
func (r *BitReader) Uint32() (uint32, error) {
	return r.ReadBits(32)
}

// Int32 reads 32 bits reinterpreted as two's-complement signed.
func (r *BitReader) Int32() (int32, error) {
	v, err := r.ReadBits(32)
	return int32(v), err
}

// Float32 reads 32 bits reinterpreted with the IEEE-754 bit layout. No value
// conversion happens, only a bit reinterpretation.
func (r *BitReader) Float32() (float32, error) {
	v, err := r.ReadBits(32)
	return math.Float32frombits(v), err
}

// String reads a 16-bit signed length, reinterprets it as unsigned, then
// reads that many bytes and decodes them as UTF-8.
func (r *BitReader) String() (string, error) {
	n, err := r.Int16()
	if err != nil {
		return "", err
	}
	b := make([]byte, uint16(n))
	for i := range b {
		b[i], err = r.Byte()
		if err != nil {
			return "", err
		}
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: %q", ErrInvalidEncoding, b)
	}
	return string(b), nil
}

// Remaining reports the number of whole bytes left. Trailing sub-byte padding
// does not count, so dispatch loops terminate cleanly on it.
func (r *BitReader) Remaining() int {
	return (len(r.b)*8 - r.pos) / 8
}
