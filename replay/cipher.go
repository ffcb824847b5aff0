package replay

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// xorKey is the fixed 64-byte keystream applied to the inflated buffer. The
// transform is obfuscation, not encryption, and is its own inverse.
var xorKey = [64]byte{
	0x6B, 0x10, 0xDE, 0x3C, 0x44, 0xF7, 0x92, 0x0A,
	0x85, 0x2F, 0xC1, 0x5E, 0x78, 0x09, 0xB3, 0xE6,
	0x1D, 0xA4, 0x37, 0x90, 0xFC, 0x62, 0x0B, 0xD5,
	0x4E, 0x88, 0x13, 0xCA, 0x71, 0x2D, 0xBF, 0x56,
	0x0C, 0xE9, 0x94, 0x3A, 0x67, 0xD0, 0x25, 0x8B,
	0xF1, 0x4C, 0xA8, 0x17, 0xDD, 0x30, 0x9E, 0x62,
	0x05, 0xBB, 0x76, 0xC3, 0x2A, 0x81, 0x58, 0xEF,
	0x49, 0x12, 0xD7, 0x8C, 0x33, 0xA0, 0x65, 0xFE,
}

// decipher inflates the raw replay container and strips the XOR obfuscation,
// producing the plaintext bit stream. There is no integrity check at this
// stage; corruption inside the plaintext is caught by the checksum.
func decipher(raw []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptReplay, err)
	}
	defer zr.Close()
	plain, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptReplay, err)
	}
	applyKeystream(plain)
	return plain, nil
}

// applyKeystream XORs buf in place with the repeating 64-byte key. Applying
// it twice restores the original buffer.
func applyKeystream(buf []byte) {
	for i := range buf {
		buf[i] ^= xorKey[i%len(xorKey)]
	}
}
