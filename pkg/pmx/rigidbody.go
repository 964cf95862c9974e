package pmx

import "github.com/go-gl/mathgl/mgl32"

// RigidBodyShapeKind is the collision shape discriminant.
type RigidBodyShapeKind uint8

const (
	ShapeSphere RigidBodyShapeKind = iota
	ShapeBox
	ShapeCapsule
)

// String returns a human-readable shape name.
func (k RigidBodyShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	case ShapeCapsule:
		return "capsule"
	default:
		return "unknown"
	}
}

// RigidBodyShape is the collision shape. Size is interpreted per kind:
// sphere uses X as radius, box uses all three extents, capsule uses X as
// radius and Y as height.
type RigidBodyShape struct {
	Kind     RigidBodyShapeKind
	Size     mgl32.Vec3
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // radians
}

// PhysicsMode tells how the rigid body and its bone interact.
type PhysicsMode uint8

const (
	// PhysicsStatic follows the bone; the simulation never moves it.
	PhysicsStatic PhysicsMode = iota
	// PhysicsDynamic is fully simulated and drives the bone.
	PhysicsDynamic
	// PhysicsDynamicBone is simulated but pinned to the bone's position.
	PhysicsDynamicBone
)

// RigidBody is a physics collision body attached to a bone.
type RigidBody struct {
	NameLocal     string
	NameUniversal string

	Bone             int32 // -1 = not attached
	Group            int8
	NonCollisionMask int16
	Shape            RigidBodyShape

	Mass           float32
	LinearDamping  float32
	AngularDamping float32
	Restitution    float32
	Friction       float32

	Mode PhysicsMode
}

func parseRigidBodies(r *reader, h *Header) ([]RigidBody, error) {
	count, err := r.count(SectionRigidBody)
	if err != nil {
		return nil, err
	}

	bodies := make([]RigidBody, count)
	for i := range bodies {
		b := &bodies[i]
		if b.NameLocal, err = r.text(h.Encoding); err != nil {
			return nil, err
		}
		if b.NameUniversal, err = r.text(h.Encoding); err != nil {
			return nil, err
		}
		if b.Bone, err = r.elementIndex(h.BoneIndexWidth); err != nil {
			return nil, err
		}
		if b.Group, err = r.i8(); err != nil {
			return nil, err
		}
		if b.NonCollisionMask, err = r.i16(); err != nil {
			return nil, err
		}

		shapeOff := r.offset()
		shape, err := r.u8()
		if err != nil {
			return nil, err
		}
		if shape > uint8(ShapeCapsule) {
			return nil, &UnknownVariantError{Context: "rigid body shape", Tag: shape, Offset: shapeOff}
		}
		b.Shape.Kind = RigidBodyShapeKind(shape)
		if b.Shape.Size, err = r.vec3(); err != nil {
			return nil, err
		}
		if b.Shape.Position, err = r.vec3(); err != nil {
			return nil, err
		}
		if b.Shape.Rotation, err = r.vec3(); err != nil {
			return nil, err
		}

		if b.Mass, err = r.f32(); err != nil {
			return nil, err
		}
		if b.LinearDamping, err = r.f32(); err != nil {
			return nil, err
		}
		if b.AngularDamping, err = r.f32(); err != nil {
			return nil, err
		}
		if b.Restitution, err = r.f32(); err != nil {
			return nil, err
		}
		if b.Friction, err = r.f32(); err != nil {
			return nil, err
		}

		modeOff := r.offset()
		mode, err := r.u8()
		if err != nil {
			return nil, err
		}
		if mode > uint8(PhysicsDynamicBone) {
			return nil, &UnknownVariantError{Context: "rigid body physics mode", Tag: mode, Offset: modeOff}
		}
		b.Mode = PhysicsMode(mode)
	}

	return bodies, nil
}
