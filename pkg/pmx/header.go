package pmx

import "fmt"

// TextEncoding selects how length-prefixed text is decoded.
type TextEncoding uint8

const (
	TextUTF16LE TextEncoding = 0
	TextUTF8    TextEncoding = 1
)

// String returns a human-readable encoding name.
func (e TextEncoding) String() string {
	switch e {
	case TextUTF16LE:
		return "UTF-16LE"
	case TextUTF8:
		return "UTF-8"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(e))
	}
}

// IndexWidth is the byte width of one index category, declared per file in
// the header globals. Valid widths are 1, 2 and 4.
type IndexWidth uint8

const (
	IndexWidth1 IndexWidth = 1
	IndexWidth2 IndexWidth = 2
	IndexWidth4 IndexWidth = 4
)

// Header holds the globals table and model metadata. It is immutable once
// parsed; every later decode consults its encoding and index widths.
type Header struct {
	Version       float32
	Encoding      TextEncoding
	AdditionalUVs int // 0..4 additional vec4s per vertex

	VertexIndexWidth    IndexWidth
	TextureIndexWidth   IndexWidth
	MaterialIndexWidth  IndexWidth
	BoneIndexWidth      IndexWidth
	MorphIndexWidth     IndexWidth
	RigidBodyIndexWidth IndexWidth

	NameLocal        string
	NameUniversal    string
	CommentLocal     string
	CommentUniversal string
}

// Is21 reports whether the file declares PMX 2.1.
func (h *Header) Is21() bool { return h.Version > 2.05 }

// The globals table is fixed at 8 single-byte entries in PMX 2.0/2.1.
const globalCount = 8

func parseHeader(r *reader) (*Header, error) {
	sig, err := r.bytes(4)
	if err != nil {
		return nil, err
	}
	// Typically "PMX " but some files drop the trailing space.
	if string(sig[:3]) != "PMX" {
		return nil, ErrMalformedHeader
	}

	version, err := r.f32()
	if err != nil {
		return nil, err
	}
	if !versionNear(version, 2.0) && !versionNear(version, 2.1) {
		return nil, &UnsupportedVersionError{Found: version}
	}

	n, err := r.u8()
	if err != nil {
		return nil, err
	}
	if n != globalCount {
		return nil, &InvalidCountError{Section: SectionHeader, Value: int64(n)}
	}

	globalsOff := r.offset()
	globals, err := r.bytes(globalCount)
	if err != nil {
		return nil, err
	}

	h := &Header{Version: version}

	switch globals[0] {
	case 0:
		h.Encoding = TextUTF16LE
	case 1:
		h.Encoding = TextUTF8
	default:
		return nil, &UnknownVariantError{Context: "text encoding", Tag: globals[0], Offset: globalsOff}
	}

	if globals[1] > 4 {
		return nil, &UnknownVariantError{Context: "additional uv count", Tag: globals[1], Offset: globalsOff + 1}
	}
	h.AdditionalUVs = int(globals[1])

	widths := []struct {
		name string
		dst  *IndexWidth
	}{
		{"vertex index width", &h.VertexIndexWidth},
		{"texture index width", &h.TextureIndexWidth},
		{"material index width", &h.MaterialIndexWidth},
		{"bone index width", &h.BoneIndexWidth},
		{"morph index width", &h.MorphIndexWidth},
		{"rigid body index width", &h.RigidBodyIndexWidth},
	}
	for i, w := range widths {
		v := globals[2+i]
		if v != 1 && v != 2 && v != 4 {
			return nil, &UnknownVariantError{Context: w.name, Tag: v, Offset: globalsOff + 2 + i}
		}
		*w.dst = IndexWidth(v)
	}

	if h.NameLocal, err = r.text(h.Encoding); err != nil {
		return nil, err
	}
	if h.NameUniversal, err = r.text(h.Encoding); err != nil {
		return nil, err
	}
	if h.CommentLocal, err = r.text(h.Encoding); err != nil {
		return nil, err
	}
	if h.CommentUniversal, err = r.text(h.Encoding); err != nil {
		return nil, err
	}

	return h, nil
}

// versionNear matches the version float against a [want-0.05, want+0.05]
// band; files in the wild carry values like 2.0000002 or 1.97.
func versionNear(v, want float32) bool {
	d := v - want
	return -0.05 <= d && d <= 0.05
}
