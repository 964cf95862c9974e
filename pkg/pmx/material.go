package pmx

import "github.com/go-gl/mathgl/mgl32"

// MaterialFlag is the material drawing flag byte.
type MaterialFlag uint8

const (
	MaterialDoubleSided   MaterialFlag = 1 << 0
	MaterialGroundShadow  MaterialFlag = 1 << 1
	MaterialCastShadow    MaterialFlag = 1 << 2
	MaterialReceiveShadow MaterialFlag = 1 << 3
	MaterialEdge          MaterialFlag = 1 << 4
	MaterialVertexColor   MaterialFlag = 1 << 5 // PMX 2.1
	MaterialPointDraw     MaterialFlag = 1 << 6 // PMX 2.1
	MaterialLineDraw      MaterialFlag = 1 << 7 // PMX 2.1
)

// Has reports whether flag is set.
func (f MaterialFlag) Has(flag MaterialFlag) bool { return f&flag != 0 }

// EnvironmentBlend selects how the environment (sphere) texture is applied.
type EnvironmentBlend uint8

const (
	EnvBlendDisabled EnvironmentBlend = iota
	EnvBlendMultiply
	EnvBlendAdd
	// EnvBlendAdditionalUV uses the first additional vec4 as the UV source.
	EnvBlendAdditionalUV
)

// ToonRef is the toon shading reference: either an entry in the texture
// section or one of the ten built-in toon textures.
type ToonRef interface {
	toonRef()
}

// ToonTexture refers to textures[Index]; -1 means no toon texture.
type ToonTexture struct {
	Index int32
}

// ToonInternal refers to the built-in toon01.bmp..toon10.bmp, Index 0..9.
type ToonInternal struct {
	Index uint8
}

func (ToonTexture) toonRef()  {}
func (ToonInternal) toonRef() {}

// Material describes shading for a contiguous span of surfaces.
type Material struct {
	NameLocal     string
	NameUniversal string

	Diffuse          mgl32.Vec4
	Specular         mgl32.Vec3
	SpecularStrength float32
	Ambient          mgl32.Vec3

	Flags     MaterialFlag
	EdgeColor mgl32.Vec4
	EdgeScale float32

	TextureIndex     int32 // -1 = no texture
	EnvironmentIndex int32 // -1 = no environment texture
	EnvironmentBlend EnvironmentBlend
	Toon             ToonRef

	Metadata string

	// SurfaceCount is the raw vertex-index count drawn with this material,
	// three per triangle, as stored on the wire. Surfaces are sorted by
	// material, so the spans are contiguous; see
	// Document.MaterialSurfaceSpan for the triangle-unit range.
	SurfaceCount uint32
}

func parseMaterials(r *reader, h *Header) ([]Material, error) {
	count, err := r.count(SectionMaterial)
	if err != nil {
		return nil, err
	}

	materials := make([]Material, count)
	for i := range materials {
		m := &materials[i]
		if m.NameLocal, err = r.text(h.Encoding); err != nil {
			return nil, err
		}
		if m.NameUniversal, err = r.text(h.Encoding); err != nil {
			return nil, err
		}
		if m.Diffuse, err = r.vec4(); err != nil {
			return nil, err
		}
		if m.Specular, err = r.vec3(); err != nil {
			return nil, err
		}
		if m.SpecularStrength, err = r.f32(); err != nil {
			return nil, err
		}
		if m.Ambient, err = r.vec3(); err != nil {
			return nil, err
		}
		flags, err := r.u8()
		if err != nil {
			return nil, err
		}
		m.Flags = MaterialFlag(flags)
		if m.EdgeColor, err = r.vec4(); err != nil {
			return nil, err
		}
		if m.EdgeScale, err = r.f32(); err != nil {
			return nil, err
		}
		if m.TextureIndex, err = r.elementIndex(h.TextureIndexWidth); err != nil {
			return nil, err
		}
		if m.EnvironmentIndex, err = r.elementIndex(h.TextureIndexWidth); err != nil {
			return nil, err
		}

		blendOff := r.offset()
		blend, err := r.u8()
		if err != nil {
			return nil, err
		}
		if blend > uint8(EnvBlendAdditionalUV) {
			return nil, &UnknownVariantError{Context: "environment blend mode", Tag: blend, Offset: blendOff}
		}
		m.EnvironmentBlend = EnvironmentBlend(blend)

		toonOff := r.offset()
		toonTag, err := r.u8()
		if err != nil {
			return nil, err
		}
		switch toonTag {
		case 0:
			index, err := r.elementIndex(h.TextureIndexWidth)
			if err != nil {
				return nil, err
			}
			m.Toon = ToonTexture{Index: index}
		case 1:
			index, err := r.u8()
			if err != nil {
				return nil, err
			}
			m.Toon = ToonInternal{Index: index}
		default:
			return nil, &UnknownVariantError{Context: "toon reference", Tag: toonTag, Offset: toonOff}
		}

		if m.Metadata, err = r.text(h.Encoding); err != nil {
			return nil, err
		}
		if m.SurfaceCount, err = r.u32(); err != nil {
			return nil, err
		}
	}

	return materials, nil
}
