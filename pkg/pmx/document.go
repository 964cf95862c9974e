package pmx

import (
	"fmt"
	"strings"
)

// Document is a fully parsed PMX model. It owns every decoded value; no
// field references the input buffer, so the buffer may be released as soon
// as parsing returns.
type Document struct {
	Header Header

	Vertices      []Vertex
	Surfaces      []Surface
	Textures      []Texture
	Materials     []Material
	Bones         []Bone
	Morphs        []Morph
	DisplayFrames []DisplayFrame
	RigidBodies   []RigidBody
	Joints        []Joint
	SoftBodies    []SoftBody // PMX 2.1 only, empty for 2.0 files
}

// BoneByName returns the bone with the given local or universal name, or
// nil if none matches.
func (d *Document) BoneByName(name string) *Bone {
	for i := range d.Bones {
		if d.Bones[i].NameLocal == name || d.Bones[i].NameUniversal == name {
			return &d.Bones[i]
		}
	}
	return nil
}

// MorphByName returns the morph with the given local or universal name, or
// nil if none matches.
func (d *Document) MorphByName(name string) *Morph {
	for i := range d.Morphs {
		if d.Morphs[i].NameLocal == name || d.Morphs[i].NameUniversal == name {
			return &d.Morphs[i]
		}
	}
	return nil
}

// MaterialSurfaceSpan returns the half-open range [start, end) into
// Surfaces drawn with material i. Surfaces are stored sorted by material,
// so each material owns one contiguous span. SurfaceCount is a raw
// vertex-index count, three per triangle, so it is scaled down here.
func (d *Document) MaterialSurfaceSpan(i int) (start, end int) {
	for j := 0; j <= i && j < len(d.Materials); j++ {
		start = end
		end += int(d.Materials[j].SurfaceCount) / 3
	}
	return start, end
}

// HasPhysics reports whether the model carries any physics descriptors.
func (d *Document) HasPhysics() bool {
	return len(d.RigidBodies) > 0 || len(d.Joints) > 0 || len(d.SoftBodies) > 0
}

// String returns a one-model summary for diagnostics.
func (d *Document) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PMX v%g %q", d.Header.Version, d.Header.NameLocal)
	fmt.Fprintf(&b, " vertices=%d surfaces=%d textures=%d materials=%d bones=%d morphs=%d",
		len(d.Vertices), len(d.Surfaces), len(d.Textures), len(d.Materials), len(d.Bones), len(d.Morphs))
	fmt.Fprintf(&b, " displays=%d rigidbodies=%d joints=%d",
		len(d.DisplayFrames), len(d.RigidBodies), len(d.Joints))
	if len(d.SoftBodies) > 0 {
		fmt.Fprintf(&b, " softbodies=%d", len(d.SoftBodies))
	}
	return b.String()
}
