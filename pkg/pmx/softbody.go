package pmx

// SoftBodyShapeKind is the soft body topology discriminant (PMX 2.1).
type SoftBodyShapeKind uint8

const (
	SoftBodyTriMesh SoftBodyShapeKind = iota
	SoftBodyRope
)

// SoftBodyFlag is the soft body feature bit set.
type SoftBodyFlag uint8

const (
	SoftBodyBLink SoftBodyFlag = 1 << iota
	SoftBodyClusterCreation
	SoftBodyLinkCrossing
)

// AeroModel selects the Bullet aerodynamics model, 0..4.
type AeroModel int32

// SoftBodyAnchor pins a soft body vertex to a rigid body.
type SoftBodyAnchor struct {
	RigidBody int32
	Vertex    uint32
	Near      bool
}

// SoftBodyConfig carries the Bullet soft body solver coefficients, named
// after their btSoftBody counterparts.
type SoftBodyConfig struct {
	VCF float32 // velocity correction factor
	DP  float32 // damping
	DG  float32 // drag
	LF  float32 // lift
	PR  float32 // pressure
	VC  float32 // volume conservation
	DF  float32 // dynamic friction
	MT  float32 // pose matching
	CHR float32 // rigid contact hardness
	KHR float32 // kinetic contact hardness
	SHR float32 // soft contact hardness
	AHR float32 // anchor hardness
}

// SoftBodyCluster carries the cluster collision coefficients.
type SoftBodyCluster struct {
	SRHR    float32
	SKHR    float32
	SSHR    float32
	SRSplit float32
	SKSplit float32
	SSSplit float32
}

// SoftBodyIteration carries the solver iteration counts.
type SoftBodyIteration struct {
	Velocity int32
	Position int32
	Drift    int32
	Cluster  int32
}

// SoftBodyMaterial carries the material stiffness coefficients.
type SoftBodyMaterial struct {
	Linear  float32
	Angular float32
	Volume  float32
}

// SoftBody is the PMX 2.1 soft body physics descriptor. Files declaring
// version 2.0 have no soft body section and parse to an empty slice.
type SoftBody struct {
	NameLocal     string
	NameUniversal string

	Shape            SoftBodyShapeKind
	Material         int32 // -1 = none
	Group            uint8
	NonCollisionMask uint16
	Flags            SoftBodyFlag

	BLinkDistance   int32
	ClusterCount    int32
	TotalMass       float32
	CollisionMargin float32
	AeroModel       AeroModel

	Config    SoftBodyConfig
	Cluster   SoftBodyCluster
	Iteration SoftBodyIteration
	Stiffness SoftBodyMaterial

	Anchors     []SoftBodyAnchor
	PinVertices []uint32
}

func parseSoftBodies(r *reader, h *Header) ([]SoftBody, error) {
	count, err := r.count(SectionSoftBody)
	if err != nil {
		return nil, err
	}

	bodies := make([]SoftBody, count)
	for i := range bodies {
		b := &bodies[i]
		if b.NameLocal, err = r.text(h.Encoding); err != nil {
			return nil, err
		}
		if b.NameUniversal, err = r.text(h.Encoding); err != nil {
			return nil, err
		}

		shapeOff := r.offset()
		shape, err := r.u8()
		if err != nil {
			return nil, err
		}
		if shape > uint8(SoftBodyRope) {
			return nil, &UnknownVariantError{Context: "soft body shape", Tag: shape, Offset: shapeOff}
		}
		b.Shape = SoftBodyShapeKind(shape)

		if b.Material, err = r.elementIndex(h.MaterialIndexWidth); err != nil {
			return nil, err
		}
		if b.Group, err = r.u8(); err != nil {
			return nil, err
		}
		if b.NonCollisionMask, err = r.u16(); err != nil {
			return nil, err
		}
		flags, err := r.u8()
		if err != nil {
			return nil, err
		}
		b.Flags = SoftBodyFlag(flags)

		if b.BLinkDistance, err = r.i32(); err != nil {
			return nil, err
		}
		if b.ClusterCount, err = r.i32(); err != nil {
			return nil, err
		}
		if b.TotalMass, err = r.f32(); err != nil {
			return nil, err
		}
		if b.CollisionMargin, err = r.f32(); err != nil {
			return nil, err
		}
		aero, err := r.i32()
		if err != nil {
			return nil, err
		}
		b.AeroModel = AeroModel(aero)

		for _, dst := range []*float32{
			&b.Config.VCF, &b.Config.DP, &b.Config.DG, &b.Config.LF,
			&b.Config.PR, &b.Config.VC, &b.Config.DF, &b.Config.MT,
			&b.Config.CHR, &b.Config.KHR, &b.Config.SHR, &b.Config.AHR,
			&b.Cluster.SRHR, &b.Cluster.SKHR, &b.Cluster.SSHR,
			&b.Cluster.SRSplit, &b.Cluster.SKSplit, &b.Cluster.SSSplit,
		} {
			if *dst, err = r.f32(); err != nil {
				return nil, err
			}
		}
		for _, dst := range []*int32{
			&b.Iteration.Velocity, &b.Iteration.Position,
			&b.Iteration.Drift, &b.Iteration.Cluster,
		} {
			if *dst, err = r.i32(); err != nil {
				return nil, err
			}
		}
		for _, dst := range []*float32{
			&b.Stiffness.Linear, &b.Stiffness.Angular, &b.Stiffness.Volume,
		} {
			if *dst, err = r.f32(); err != nil {
				return nil, err
			}
		}

		anchorCount, err := r.count(SectionSoftBody)
		if err != nil {
			return nil, err
		}
		b.Anchors = make([]SoftBodyAnchor, anchorCount)
		for j := range b.Anchors {
			a := &b.Anchors[j]
			if a.RigidBody, err = r.elementIndex(h.RigidBodyIndexWidth); err != nil {
				return nil, err
			}
			if a.Vertex, err = r.vertexIndex(h.VertexIndexWidth); err != nil {
				return nil, err
			}
			near, err := r.u8()
			if err != nil {
				return nil, err
			}
			a.Near = near != 0
		}

		pinCount, err := r.count(SectionSoftBody)
		if err != nil {
			return nil, err
		}
		b.PinVertices = make([]uint32, pinCount)
		for j := range b.PinVertices {
			if b.PinVertices[j], err = r.vertexIndex(h.VertexIndexWidth); err != nil {
				return nil, err
			}
		}
	}

	return bodies, nil
}
