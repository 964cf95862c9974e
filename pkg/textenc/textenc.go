// Package textenc provides strict text decoding for PMX model files.
package textenc

import (
	"encoding/binary"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decoding errors.
var (
	ErrOddUTF16Length = errors.New("utf-16 byte count is odd")
	ErrInvalidUTF16   = errors.New("invalid utf-16 sequence")
	ErrInvalidUTF8    = errors.New("invalid utf-8 sequence")
)

// DecodeUTF16LE decodes UTF-16LE bytes into a string. Unlike the x/text
// decoder on its own, it rejects unpaired surrogates instead of substituting
// replacement characters, so a malformed name surfaces as an error.
func DecodeUTF16LE(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", ErrOddUTF16Length
	}
	if err := validateUTF16LE(data); err != nil {
		return "", err
	}

	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	result, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", ErrInvalidUTF16
	}
	return string(result), nil
}

// DecodeUTF8 decodes UTF-8 bytes into a string, rejecting invalid sequences.
func DecodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrInvalidUTF8
	}
	return string(data), nil
}

// validateUTF16LE checks surrogate pairing. The x/text transform never
// fails on unpaired surrogates, so pairing has to be verified up front.
func validateUTF16LE(data []byte) error {
	for i := 0; i < len(data); i += 2 {
		u := binary.LittleEndian.Uint16(data[i:])
		switch {
		case 0xD800 <= u && u < 0xDC00: // high surrogate, low must follow
			if i+4 > len(data) {
				return ErrInvalidUTF16
			}
			next := binary.LittleEndian.Uint16(data[i+2:])
			if next < 0xDC00 || 0xE000 <= next {
				return ErrInvalidUTF16
			}
			i += 2
		case 0xDC00 <= u && u < 0xE000: // stray low surrogate
			return ErrInvalidUTF16
		}
	}
	return nil
}
