package pmx

import "errors"

// checker accumulates dangling-reference violations. In first-failure mode
// the walk stops at the first violation; in collect mode every violation is
// recorded and joined at the end.
type checker struct {
	mode ValidationMode
	errs []error
}

func (c *checker) report(section Section, record int, target Section, value int64) bool {
	c.errs = append(c.errs, &DanglingReferenceError{
		Section: section,
		Record:  record,
		Target:  target,
		Value:   value,
	})
	return c.mode == ValidateFirst
}

// index validates a signed index: -1 is the "none" sentinel, anything else
// must address an existing element. Returns true when the walk should stop.
func (c *checker) index(section Section, record int, target Section, value int32, length int) bool {
	if value == -1 {
		return false
	}
	if value < 0 || int(value) >= length {
		return c.report(section, record, target, int64(value))
	}
	return false
}

// vertex validates an unsigned vertex index, which has no sentinel.
func (c *checker) vertex(section Section, record int, value uint32, length int) bool {
	if uint64(value) >= uint64(length) {
		return c.report(section, record, SectionVertex, int64(value))
	}
	return false
}

func (c *checker) err() error {
	switch len(c.errs) {
	case 0:
		return nil
	case 1:
		return c.errs[0]
	default:
		return errors.Join(c.errs...)
	}
}

// validateDocument cross-checks every embedded index against the length of
// its target section. PMX only allows backward references, so a single pass
// over the assembled document suffices.
func validateDocument(doc *Document, mode ValidationMode) error {
	c := &checker{mode: mode}

	nVertices := len(doc.Vertices)
	nTextures := len(doc.Textures)
	nMaterials := len(doc.Materials)
	nBones := len(doc.Bones)
	nMorphs := len(doc.Morphs)
	nRigidBodies := len(doc.RigidBodies)

	for i := range doc.Vertices {
		var bones []int32
		switch s := doc.Vertices[i].Skinning.(type) {
		case BDEF1:
			bones = []int32{s.Bone}
		case BDEF2:
			bones = s.Bones[:]
		case BDEF4:
			bones = s.Bones[:]
		case SDEF:
			bones = s.Bones[:]
		}
		for _, b := range bones {
			if c.index(SectionVertex, i, SectionBone, b, nBones) {
				return c.err()
			}
		}
	}

	for i := range doc.Surfaces {
		for _, v := range doc.Surfaces[i].Vertices {
			if c.vertex(SectionSurface, i, v, nVertices) {
				return c.err()
			}
		}
	}

	for i := range doc.Materials {
		m := &doc.Materials[i]
		if c.index(SectionMaterial, i, SectionTexture, m.TextureIndex, nTextures) {
			return c.err()
		}
		if c.index(SectionMaterial, i, SectionTexture, m.EnvironmentIndex, nTextures) {
			return c.err()
		}
		switch toon := m.Toon.(type) {
		case ToonTexture:
			if c.index(SectionMaterial, i, SectionTexture, toon.Index, nTextures) {
				return c.err()
			}
		case ToonInternal:
			// Built-in toon textures are toon01..toon10.
			if toon.Index > 9 {
				if c.report(SectionMaterial, i, SectionTexture, int64(toon.Index)) {
					return c.err()
				}
			}
		}
	}

	for i := range doc.Bones {
		b := &doc.Bones[i]
		if c.index(SectionBone, i, SectionBone, b.Parent, nBones) {
			return c.err()
		}
		if tail, ok := b.Tail.(TailBone); ok {
			if c.index(SectionBone, i, SectionBone, tail.Index, nBones) {
				return c.err()
			}
		}
		if b.Inherit != nil {
			if c.index(SectionBone, i, SectionBone, b.Inherit.Bone, nBones) {
				return c.err()
			}
		}
		if b.IK != nil {
			if c.index(SectionBone, i, SectionBone, b.IK.Target, nBones) {
				return c.err()
			}
			for _, link := range b.IK.Links {
				if c.index(SectionBone, i, SectionBone, link.Bone, nBones) {
					return c.err()
				}
			}
		}
	}

	for i := range doc.Morphs {
		for _, offset := range doc.Morphs[i].Offsets {
			var stop bool
			switch o := offset.(type) {
			case GroupOffset:
				// A group morph must not include itself.
				if int(o.Morph) == i {
					stop = c.report(SectionMorph, i, SectionMorph, int64(o.Morph))
				} else {
					stop = c.index(SectionMorph, i, SectionMorph, o.Morph, nMorphs)
				}
			case FlipOffset:
				if int(o.Morph) == i {
					stop = c.report(SectionMorph, i, SectionMorph, int64(o.Morph))
				} else {
					stop = c.index(SectionMorph, i, SectionMorph, o.Morph, nMorphs)
				}
			case VertexOffset:
				stop = c.vertex(SectionMorph, i, o.Vertex, nVertices)
			case UVOffset:
				stop = c.vertex(SectionMorph, i, o.Vertex, nVertices)
			case BoneOffset:
				stop = c.index(SectionMorph, i, SectionBone, o.Bone, nBones)
			case MaterialOffset:
				stop = c.index(SectionMorph, i, SectionMaterial, o.Material, nMaterials)
			case ImpulseOffset:
				stop = c.index(SectionMorph, i, SectionRigidBody, o.RigidBody, nRigidBodies)
			}
			if stop {
				return c.err()
			}
		}
	}

	for i := range doc.DisplayFrames {
		for _, item := range doc.DisplayFrames[i].Items {
			var stop bool
			switch it := item.(type) {
			case DisplayBone:
				stop = c.index(SectionDisplay, i, SectionBone, it.Index, nBones)
			case DisplayMorph:
				stop = c.index(SectionDisplay, i, SectionMorph, it.Index, nMorphs)
			}
			if stop {
				return c.err()
			}
		}
	}

	for i := range doc.RigidBodies {
		if c.index(SectionRigidBody, i, SectionBone, doc.RigidBodies[i].Bone, nBones) {
			return c.err()
		}
	}

	for i := range doc.Joints {
		for _, rb := range doc.Joints[i].RigidBodies {
			if c.index(SectionJoint, i, SectionRigidBody, rb, nRigidBodies) {
				return c.err()
			}
		}
	}

	for i := range doc.SoftBodies {
		sb := &doc.SoftBodies[i]
		if c.index(SectionSoftBody, i, SectionMaterial, sb.Material, nMaterials) {
			return c.err()
		}
		for _, a := range sb.Anchors {
			if c.index(SectionSoftBody, i, SectionRigidBody, a.RigidBody, nRigidBodies) {
				return c.err()
			}
			if c.vertex(SectionSoftBody, i, a.Vertex, nVertices) {
				return c.err()
			}
		}
		for _, v := range sb.PinVertices {
			if c.vertex(SectionSoftBody, i, v, nVertices) {
				return c.err()
			}
		}
	}

	return c.err()
}
