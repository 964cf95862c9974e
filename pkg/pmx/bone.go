package pmx

import "github.com/go-gl/mathgl/mgl32"

// BoneFlag is the two-byte bone flag field, read little-endian.
type BoneFlag uint16

const (
	BoneIndexedTail        BoneFlag = 0x0001 // tail is a bone index, not a vec3
	BoneRotatable          BoneFlag = 0x0002
	BoneTranslatable       BoneFlag = 0x0004
	BoneVisible            BoneFlag = 0x0008
	BoneEnabled            BoneFlag = 0x0010
	BoneIKFlag             BoneFlag = 0x0020
	BoneInheritRotation    BoneFlag = 0x0100
	BoneInheritTranslation BoneFlag = 0x0200
	BoneFixedAxis          BoneFlag = 0x0400
	BoneLocalCoordinate    BoneFlag = 0x0800
	BonePhysicsAfterDeform BoneFlag = 0x1000
	BoneExternalParent     BoneFlag = 0x2000
)

// Has reports whether flag is set.
func (f BoneFlag) Has(flag BoneFlag) bool { return f&flag != 0 }

// TailPosition is where the bone's tail points: a fixed offset or another
// bone, selected by the BoneIndexedTail flag.
type TailPosition interface {
	tailPosition()
}

// TailOffset is a direct position offset from the bone.
type TailOffset struct {
	Position mgl32.Vec3
}

// TailBone points the tail at another bone; -1 means no tail.
type TailBone struct {
	Index int32
}

func (TailOffset) tailPosition() {}
func (TailBone) tailPosition()   {}

// InheritanceMode tells which transform components are inherited.
type InheritanceMode uint8

const (
	InheritRotation InheritanceMode = iota
	InheritTranslation
	InheritBoth
)

// BoneInheritance makes the bone follow another bone's rotation and/or
// translation, scaled by Coefficient.
type BoneInheritance struct {
	Bone        int32
	Coefficient float32
	Mode        InheritanceMode
}

// LocalCoordinate overrides the bone's local axes.
type LocalCoordinate struct {
	XAxis mgl32.Vec3
	ZAxis mgl32.Vec3
}

// IKAngleLimit bounds an IK link's rotation, in radians.
type IKAngleLimit struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// IKLink is one bone in the IK chain. Limit is nil when unconstrained.
type IKLink struct {
	Bone  int32
	Limit *IKAngleLimit
}

// IK is the inverse kinematics descriptor of an IK bone.
type IK struct {
	Target     int32
	LoopCount  int32
	LimitAngle float32 // per-iteration limit, radians
	Links      []IKLink
}

// Bone is one node of the skeletal hierarchy.
type Bone struct {
	NameLocal     string
	NameUniversal string

	Position mgl32.Vec3
	Parent   int32 // -1 = root
	Layer    uint32
	Flags    BoneFlag

	Tail TailPosition

	// Flag-conditional payloads; nil when the corresponding flag is unset.
	Inherit         *BoneInheritance
	FixedAxis       *mgl32.Vec3
	LocalCoordinate *LocalCoordinate
	ExternalParent  *int32
	IK              *IK
}

func parseBones(r *reader, h *Header) ([]Bone, error) {
	count, err := r.count(SectionBone)
	if err != nil {
		return nil, err
	}

	bones := make([]Bone, count)
	for i := range bones {
		b := &bones[i]
		if b.NameLocal, err = r.text(h.Encoding); err != nil {
			return nil, err
		}
		if b.NameUniversal, err = r.text(h.Encoding); err != nil {
			return nil, err
		}
		if b.Position, err = r.vec3(); err != nil {
			return nil, err
		}
		if b.Parent, err = r.elementIndex(h.BoneIndexWidth); err != nil {
			return nil, err
		}
		if b.Layer, err = r.u32(); err != nil {
			return nil, err
		}
		flags, err := r.u16()
		if err != nil {
			return nil, err
		}
		b.Flags = BoneFlag(flags)

		if b.Flags.Has(BoneIndexedTail) {
			index, err := r.elementIndex(h.BoneIndexWidth)
			if err != nil {
				return nil, err
			}
			b.Tail = TailBone{Index: index}
		} else {
			position, err := r.vec3()
			if err != nil {
				return nil, err
			}
			b.Tail = TailOffset{Position: position}
		}

		if b.Flags.Has(BoneInheritRotation) || b.Flags.Has(BoneInheritTranslation) {
			inherit := &BoneInheritance{}
			switch {
			case b.Flags.Has(BoneInheritRotation) && b.Flags.Has(BoneInheritTranslation):
				inherit.Mode = InheritBoth
			case b.Flags.Has(BoneInheritRotation):
				inherit.Mode = InheritRotation
			default:
				inherit.Mode = InheritTranslation
			}
			if inherit.Bone, err = r.elementIndex(h.BoneIndexWidth); err != nil {
				return nil, err
			}
			if inherit.Coefficient, err = r.f32(); err != nil {
				return nil, err
			}
			b.Inherit = inherit
		}

		if b.Flags.Has(BoneFixedAxis) {
			axis, err := r.vec3()
			if err != nil {
				return nil, err
			}
			b.FixedAxis = &axis
		}

		if b.Flags.Has(BoneLocalCoordinate) {
			local := &LocalCoordinate{}
			if local.XAxis, err = r.vec3(); err != nil {
				return nil, err
			}
			if local.ZAxis, err = r.vec3(); err != nil {
				return nil, err
			}
			b.LocalCoordinate = local
		}

		if b.Flags.Has(BoneExternalParent) {
			// A plain int32 key into the host application, not a bone index.
			key, err := r.i32()
			if err != nil {
				return nil, err
			}
			b.ExternalParent = &key
		}

		if b.Flags.Has(BoneIKFlag) {
			if b.IK, err = parseIK(r, h); err != nil {
				return nil, err
			}
		}
	}

	return bones, nil
}

func parseIK(r *reader, h *Header) (*IK, error) {
	ik := &IK{}
	var err error
	if ik.Target, err = r.elementIndex(h.BoneIndexWidth); err != nil {
		return nil, err
	}
	if ik.LoopCount, err = r.i32(); err != nil {
		return nil, err
	}
	if ik.LimitAngle, err = r.f32(); err != nil {
		return nil, err
	}

	linkCount, err := r.count(SectionBone)
	if err != nil {
		return nil, err
	}
	ik.Links = make([]IKLink, linkCount)
	for i := range ik.Links {
		link := &ik.Links[i]
		if link.Bone, err = r.elementIndex(h.BoneIndexWidth); err != nil {
			return nil, err
		}
		hasLimit, err := r.u8()
		if err != nil {
			return nil, err
		}
		if hasLimit != 0 {
			limit := &IKAngleLimit{}
			if limit.Min, err = r.vec3(); err != nil {
				return nil, err
			}
			if limit.Max, err = r.vec3(); err != nil {
				return nil, err
			}
			link.Limit = limit
		}
	}
	return ik, nil
}
