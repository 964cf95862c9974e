package pmx

import "github.com/go-gl/mathgl/mgl32"

// MorphPanel is the MMD UI panel the morph appears in.
type MorphPanel uint8

const (
	PanelHidden MorphPanel = iota
	PanelEyebrows
	PanelEyes
	PanelMouth
	PanelOther
)

// MorphKind is the morph offset discriminant. All offsets of one morph
// share the same kind.
type MorphKind uint8

const (
	MorphGroup MorphKind = iota
	MorphVertex
	MorphBone
	MorphUV
	MorphUV1
	MorphUV2
	MorphUV3
	MorphUV4
	MorphMaterial
	MorphFlip
	MorphImpulse
)

// String returns a human-readable kind name.
func (k MorphKind) String() string {
	switch k {
	case MorphGroup:
		return "group"
	case MorphVertex:
		return "vertex"
	case MorphBone:
		return "bone"
	case MorphUV, MorphUV1, MorphUV2, MorphUV3, MorphUV4:
		return "uv"
	case MorphMaterial:
		return "material"
	case MorphFlip:
		return "flip"
	case MorphImpulse:
		return "impulse"
	default:
		return "unknown"
	}
}

// MorphOffset is one offset record. The concrete type matches the morph's
// kind: GroupOffset, VertexOffset, BoneOffset, UVOffset, MaterialOffset,
// FlipOffset or ImpulseOffset.
type MorphOffset interface {
	morphOffset()
}

// GroupOffset applies another morph scaled by Weight.
type GroupOffset struct {
	Morph  int32
	Weight float32
}

// VertexOffset translates one vertex.
type VertexOffset struct {
	Vertex      uint32
	Translation mgl32.Vec3
}

// BoneOffset moves and rotates one bone. Rotation is a quaternion.
type BoneOffset struct {
	Bone        int32
	Translation mgl32.Vec3
	Rotation    mgl32.Vec4
}

// UVOffset shifts a vertex UV. UVIndex 0 is the primary UV channel,
// 1..4 address the additional vec4s.
type UVOffset struct {
	Vertex  uint32
	UVIndex uint8
	Delta   mgl32.Vec4
}

// MaterialMorphOp is how a material offset combines with the material.
type MaterialMorphOp uint8

const (
	MaterialMorphMultiply MaterialMorphOp = 0
	MaterialMorphAdd      MaterialMorphOp = 1
)

// MaterialOffset shifts material colors and factors. Material -1 targets
// every material.
type MaterialOffset struct {
	Material         int32
	Operation        MaterialMorphOp
	Diffuse          mgl32.Vec4
	Specular         mgl32.Vec3
	SpecularStrength float32
	Ambient          mgl32.Vec3
	EdgeColor        mgl32.Vec4
	EdgeScale        float32
	TextureTint      mgl32.Vec4
	EnvironmentTint  mgl32.Vec4
	ToonTint         mgl32.Vec4
}

// FlipOffset switches to another morph at the given weight (PMX 2.1).
type FlipOffset struct {
	Morph  int32
	Weight float32
}

// ImpulseOffset applies velocity and torque to a rigid body (PMX 2.1).
type ImpulseOffset struct {
	RigidBody int32
	Local     bool
	Velocity  mgl32.Vec3
	Torque    mgl32.Vec3
}

func (GroupOffset) morphOffset()    {}
func (VertexOffset) morphOffset()   {}
func (BoneOffset) morphOffset()     {}
func (UVOffset) morphOffset()       {}
func (MaterialOffset) morphOffset() {}
func (FlipOffset) morphOffset()     {}
func (ImpulseOffset) morphOffset()  {}

// Morph is a named deformation applied with a blend weight.
type Morph struct {
	NameLocal     string
	NameUniversal string
	Panel         MorphPanel
	Kind          MorphKind
	Offsets       []MorphOffset
}

func parseMorphs(r *reader, h *Header) ([]Morph, error) {
	count, err := r.count(SectionMorph)
	if err != nil {
		return nil, err
	}

	morphs := make([]Morph, count)
	for i := range morphs {
		m := &morphs[i]
		if m.NameLocal, err = r.text(h.Encoding); err != nil {
			return nil, err
		}
		if m.NameUniversal, err = r.text(h.Encoding); err != nil {
			return nil, err
		}

		panelOff := r.offset()
		panel, err := r.u8()
		if err != nil {
			return nil, err
		}
		if panel > uint8(PanelOther) {
			return nil, &UnknownVariantError{Context: "morph panel", Tag: panel, Offset: panelOff}
		}
		m.Panel = MorphPanel(panel)

		kindOff := r.offset()
		kind, err := r.u8()
		if err != nil {
			return nil, err
		}
		if kind > uint8(MorphImpulse) {
			return nil, &UnknownVariantError{Context: "morph kind", Tag: kind, Offset: kindOff}
		}
		m.Kind = MorphKind(kind)

		offsetCount, err := r.count(SectionMorph)
		if err != nil {
			return nil, err
		}
		m.Offsets = make([]MorphOffset, offsetCount)
		for j := range m.Offsets {
			if m.Offsets[j], err = parseMorphOffset(r, h, m.Kind); err != nil {
				return nil, err
			}
		}
	}

	return morphs, nil
}

func parseMorphOffset(r *reader, h *Header, kind MorphKind) (MorphOffset, error) {
	switch kind {
	case MorphGroup, MorphFlip:
		index, err := r.elementIndex(h.MorphIndexWidth)
		if err != nil {
			return nil, err
		}
		weight, err := r.f32()
		if err != nil {
			return nil, err
		}
		if kind == MorphGroup {
			return GroupOffset{Morph: index, Weight: weight}, nil
		}
		return FlipOffset{Morph: index, Weight: weight}, nil

	case MorphVertex:
		var o VertexOffset
		var err error
		if o.Vertex, err = r.vertexIndex(h.VertexIndexWidth); err != nil {
			return nil, err
		}
		if o.Translation, err = r.vec3(); err != nil {
			return nil, err
		}
		return o, nil

	case MorphBone:
		var o BoneOffset
		var err error
		if o.Bone, err = r.elementIndex(h.BoneIndexWidth); err != nil {
			return nil, err
		}
		if o.Translation, err = r.vec3(); err != nil {
			return nil, err
		}
		if o.Rotation, err = r.vec4(); err != nil {
			return nil, err
		}
		return o, nil

	case MorphUV, MorphUV1, MorphUV2, MorphUV3, MorphUV4:
		o := UVOffset{UVIndex: uint8(kind - MorphUV)}
		var err error
		if o.Vertex, err = r.vertexIndex(h.VertexIndexWidth); err != nil {
			return nil, err
		}
		if o.Delta, err = r.vec4(); err != nil {
			return nil, err
		}
		return o, nil

	case MorphMaterial:
		var o MaterialOffset
		var err error
		if o.Material, err = r.elementIndex(h.MaterialIndexWidth); err != nil {
			return nil, err
		}
		op, err := r.u8()
		if err != nil {
			return nil, err
		}
		o.Operation = MaterialMorphOp(op)
		if o.Diffuse, err = r.vec4(); err != nil {
			return nil, err
		}
		if o.Specular, err = r.vec3(); err != nil {
			return nil, err
		}
		if o.SpecularStrength, err = r.f32(); err != nil {
			return nil, err
		}
		if o.Ambient, err = r.vec3(); err != nil {
			return nil, err
		}
		if o.EdgeColor, err = r.vec4(); err != nil {
			return nil, err
		}
		if o.EdgeScale, err = r.f32(); err != nil {
			return nil, err
		}
		if o.TextureTint, err = r.vec4(); err != nil {
			return nil, err
		}
		if o.EnvironmentTint, err = r.vec4(); err != nil {
			return nil, err
		}
		if o.ToonTint, err = r.vec4(); err != nil {
			return nil, err
		}
		return o, nil

	default: // MorphImpulse
		var o ImpulseOffset
		var err error
		if o.RigidBody, err = r.elementIndex(h.RigidBodyIndexWidth); err != nil {
			return nil, err
		}
		local, err := r.u8()
		if err != nil {
			return nil, err
		}
		o.Local = local != 0
		if o.Velocity, err = r.vec3(); err != nil {
			return nil, err
		}
		if o.Torque, err = r.vec3(); err != nil {
			return nil, err
		}
		return o, nil
	}
}
