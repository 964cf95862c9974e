package pmx

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/AcrylicShrimp/r3d/pkg/textenc"
)

// Counts beyond this are rejected as implausible without touching the
// payload. Real models top out in the low millions of vertices.
const maxSectionCount = 1 << 28

// reader is a byte cursor over the input buffer. Every read is bounds
// checked against the remaining length and failures carry the byte offset
// at which the read started. All multi-byte values are little-endian.
type reader struct {
	data []byte
	off  int
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) offset() int { return r.off }

func (r *reader) need(n int) error {
	if r.off+n > len(r.data) {
		return &TruncatedError{Offset: r.off}
	}
	return nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) u8() (uint8, error) {
	b, err := r.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) i8() (int8, error) {
	v, err := r.u8()
	return int8(v), err
}

func (r *reader) u16() (uint16, error) {
	b, err := r.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) i16() (int16, error) {
	v, err := r.u16()
	return int16(v), err
}

func (r *reader) u32() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) i32() (int32, error) {
	v, err := r.u32()
	return int32(v), err
}

func (r *reader) f32() (float32, error) {
	v, err := r.u32()
	return math.Float32frombits(v), err
}

func (r *reader) vec2() (mgl32.Vec2, error) {
	b, err := r.bytes(8)
	if err != nil {
		return mgl32.Vec2{}, err
	}
	return mgl32.Vec2{
		math.Float32frombits(binary.LittleEndian.Uint32(b)),
		math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
	}, nil
}

func (r *reader) vec3() (mgl32.Vec3, error) {
	b, err := r.bytes(12)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return mgl32.Vec3{
		math.Float32frombits(binary.LittleEndian.Uint32(b)),
		math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
	}, nil
}

func (r *reader) vec4() (mgl32.Vec4, error) {
	b, err := r.bytes(16)
	if err != nil {
		return mgl32.Vec4{}, err
	}
	return mgl32.Vec4{
		math.Float32frombits(binary.LittleEndian.Uint32(b)),
		math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[12:])),
	}, nil
}

// vertexIndex reads an unsigned vertex index of the width declared in the
// header globals. Vertex indices have no "none" sentinel.
func (r *reader) vertexIndex(w IndexWidth) (uint32, error) {
	switch w {
	case IndexWidth1:
		v, err := r.u8()
		return uint32(v), err
	case IndexWidth2:
		v, err := r.u16()
		return uint32(v), err
	default:
		return r.u32()
	}
}

// elementIndex reads a signed index of the given width. -1 means "none".
func (r *reader) elementIndex(w IndexWidth) (int32, error) {
	switch w {
	case IndexWidth1:
		v, err := r.i8()
		return int32(v), err
	case IndexWidth2:
		v, err := r.i16()
		return int32(v), err
	default:
		return r.i32()
	}
}

// count reads a record count and rejects negative or implausible values.
func (r *reader) count(section Section) (int, error) {
	v, err := r.i32()
	if err != nil {
		return 0, err
	}
	if v < 0 || v > maxSectionCount {
		return 0, &InvalidCountError{Section: section, Value: int64(v)}
	}
	return int(v), nil
}

// text reads a length-prefixed string in the given encoding. The length
// prefix is a byte count for both encodings.
func (r *reader) text(enc TextEncoding) (string, error) {
	n, err := r.i32()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", &InvalidTextError{Offset: r.off - 4, Cause: errNegativeTextLength}
	}
	start := r.off
	b, err := r.bytes(int(n))
	if err != nil {
		return "", err
	}

	var s string
	if enc == TextUTF16LE {
		s, err = textenc.DecodeUTF16LE(b)
	} else {
		s, err = textenc.DecodeUTF8(b)
	}
	if err != nil {
		return "", &InvalidTextError{Offset: start, Cause: err}
	}
	return s, nil
}
