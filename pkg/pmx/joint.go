package pmx

import "github.com/go-gl/mathgl/mgl32"

// JointKind is the constraint type. PMX 2.0 only defines the sprung 6-DOF
// joint; 2.1 adds the rest, all sharing the same record layout.
type JointKind uint8

const (
	JointSpring6DOF JointKind = iota
	JointSixDOF               // PMX 2.1
	JointP2P                  // PMX 2.1
	JointConeTwist            // PMX 2.1
	JointSlider               // PMX 2.1
	JointHinge                // PMX 2.1
)

// String returns a human-readable kind name.
func (k JointKind) String() string {
	switch k {
	case JointSpring6DOF:
		return "spring 6dof"
	case JointSixDOF:
		return "6dof"
	case JointP2P:
		return "point to point"
	case JointConeTwist:
		return "cone twist"
	case JointSlider:
		return "slider"
	case JointHinge:
		return "hinge"
	default:
		return "unknown"
	}
}

// Joint constrains a pair of rigid bodies.
type Joint struct {
	NameLocal     string
	NameUniversal string

	Kind        JointKind
	RigidBodies [2]int32 // -1 = unconnected

	Position mgl32.Vec3
	Rotation mgl32.Vec3 // radians

	LinearLimitMin  mgl32.Vec3
	LinearLimitMax  mgl32.Vec3
	AngularLimitMin mgl32.Vec3 // radians
	AngularLimitMax mgl32.Vec3 // radians

	LinearSpring  mgl32.Vec3
	AngularSpring mgl32.Vec3
}

func parseJoints(r *reader, h *Header) ([]Joint, error) {
	count, err := r.count(SectionJoint)
	if err != nil {
		return nil, err
	}

	maxKind := uint8(JointSpring6DOF)
	if h.Is21() {
		maxKind = uint8(JointHinge)
	}

	joints := make([]Joint, count)
	for i := range joints {
		j := &joints[i]
		if j.NameLocal, err = r.text(h.Encoding); err != nil {
			return nil, err
		}
		if j.NameUniversal, err = r.text(h.Encoding); err != nil {
			return nil, err
		}

		kindOff := r.offset()
		kind, err := r.u8()
		if err != nil {
			return nil, err
		}
		if kind > maxKind {
			return nil, &UnknownVariantError{Context: "joint kind", Tag: kind, Offset: kindOff}
		}
		j.Kind = JointKind(kind)

		for k := range j.RigidBodies {
			if j.RigidBodies[k], err = r.elementIndex(h.RigidBodyIndexWidth); err != nil {
				return nil, err
			}
		}
		if j.Position, err = r.vec3(); err != nil {
			return nil, err
		}
		if j.Rotation, err = r.vec3(); err != nil {
			return nil, err
		}
		if j.LinearLimitMin, err = r.vec3(); err != nil {
			return nil, err
		}
		if j.LinearLimitMax, err = r.vec3(); err != nil {
			return nil, err
		}
		if j.AngularLimitMin, err = r.vec3(); err != nil {
			return nil, err
		}
		if j.AngularLimitMax, err = r.vec3(); err != nil {
			return nil, err
		}
		if j.LinearSpring, err = r.vec3(); err != nil {
			return nil, err
		}
		if j.AngularSpring, err = r.vec3(); err != nil {
			return nil, err
		}
	}

	return joints, nil
}
