package pmx

import "github.com/go-gl/mathgl/mgl32"

// Skinning is the per-vertex skinning descriptor. The concrete type is one
// of BDEF1, BDEF2, BDEF4 or SDEF, selected by the discriminant byte in the
// vertex record.
type Skinning interface {
	skinning()
}

// BDEF1 binds the vertex to a single bone.
type BDEF1 struct {
	Bone int32
}

// BDEF2 blends two bones; the second weight is 1 - Weight.
type BDEF2 struct {
	Bones  [2]int32
	Weight float32
}

// BDEF4 blends four weighted bones. Weights are normalized at parse time
// when their sum is meaningful.
type BDEF4 struct {
	Bones   [4]int32
	Weights [4]float32
}

// SDEF is a spherical deform blend of two bones with the C/R0/R1 anchors.
type SDEF struct {
	Bones  [2]int32
	Weight float32
	C      mgl32.Vec3
	R0     mgl32.Vec3
	R1     mgl32.Vec3
}

func (BDEF1) skinning() {}
func (BDEF2) skinning() {}
func (BDEF4) skinning() {}
func (SDEF) skinning()  {}

// Vertex is a single mesh vertex with its skinning descriptor.
type Vertex struct {
	Position      mgl32.Vec3
	Normal        mgl32.Vec3
	UV            mgl32.Vec2
	AdditionalUVs [4]mgl32.Vec4 // first Header.AdditionalUVs entries are meaningful
	Skinning      Skinning
	EdgeScale     float32
}

func parseVertices(r *reader, h *Header) ([]Vertex, error) {
	count, err := r.count(SectionVertex)
	if err != nil {
		return nil, err
	}

	vertices := make([]Vertex, count)
	for i := range vertices {
		v := &vertices[i]
		if v.Position, err = r.vec3(); err != nil {
			return nil, err
		}
		if v.Normal, err = r.vec3(); err != nil {
			return nil, err
		}
		if v.UV, err = r.vec2(); err != nil {
			return nil, err
		}
		for j := 0; j < h.AdditionalUVs; j++ {
			if v.AdditionalUVs[j], err = r.vec4(); err != nil {
				return nil, err
			}
		}

		tagOff := r.offset()
		tag, err := r.u8()
		if err != nil {
			return nil, err
		}
		switch tag {
		case 0:
			v.Skinning, err = parseBDEF1(r, h)
		case 1:
			v.Skinning, err = parseBDEF2(r, h)
		case 2:
			v.Skinning, err = parseBDEF4(r, h)
		case 3:
			v.Skinning, err = parseSDEF(r, h)
		default:
			return nil, &UnknownVariantError{Context: "vertex skinning kind", Tag: tag, Offset: tagOff}
		}
		if err != nil {
			return nil, err
		}

		if v.EdgeScale, err = r.f32(); err != nil {
			return nil, err
		}
	}

	return vertices, nil
}

func parseBDEF1(r *reader, h *Header) (Skinning, error) {
	bone, err := r.elementIndex(h.BoneIndexWidth)
	if err != nil {
		return nil, err
	}
	return BDEF1{Bone: bone}, nil
}

func parseBDEF2(r *reader, h *Header) (Skinning, error) {
	var s BDEF2
	var err error
	for i := range s.Bones {
		if s.Bones[i], err = r.elementIndex(h.BoneIndexWidth); err != nil {
			return nil, err
		}
	}
	if s.Weight, err = r.f32(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseBDEF4(r *reader, h *Header) (Skinning, error) {
	var s BDEF4
	var err error
	for i := range s.Bones {
		if s.Bones[i], err = r.elementIndex(h.BoneIndexWidth); err != nil {
			return nil, err
		}
	}
	var sum float32
	for i := range s.Weights {
		if s.Weights[i], err = r.f32(); err != nil {
			return nil, err
		}
		sum += s.Weights[i]
	}

	// Files often carry weights that do not quite sum to one.
	if sum >= 1e-3 || sum <= -1e-3 {
		scale := 1 / sum
		for i := range s.Weights {
			s.Weights[i] *= scale
		}
	}
	return s, nil
}

func parseSDEF(r *reader, h *Header) (Skinning, error) {
	var s SDEF
	var err error
	for i := range s.Bones {
		if s.Bones[i], err = r.elementIndex(h.BoneIndexWidth); err != nil {
			return nil, err
		}
	}
	if s.Weight, err = r.f32(); err != nil {
		return nil, err
	}
	if s.C, err = r.vec3(); err != nil {
		return nil, err
	}
	if s.R0, err = r.vec3(); err != nil {
		return nil, err
	}
	if s.R1, err = r.vec3(); err != nil {
		return nil, err
	}
	return s, nil
}
