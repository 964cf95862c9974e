package pmx

import (
	"errors"
	"fmt"
)

// Section identifies a PMX file section in diagnostics.
type Section string

// PMX file sections, in file order.
const (
	SectionHeader    Section = "header"
	SectionVertex    Section = "vertex"
	SectionSurface   Section = "surface"
	SectionTexture   Section = "texture"
	SectionMaterial  Section = "material"
	SectionBone      Section = "bone"
	SectionMorph     Section = "morph"
	SectionDisplay   Section = "display frame"
	SectionRigidBody Section = "rigid body"
	SectionJoint     Section = "joint"
	SectionSoftBody  Section = "soft body"
)

// ErrMalformedHeader is returned when the signature bytes are not "PMX".
var ErrMalformedHeader = errors.New("pmx: malformed header: wrong signature")

var errNegativeTextLength = errors.New("negative length prefix")

// TruncatedError is returned when fewer bytes remain than the current
// field requires. Offset is the byte position at which the read started.
type TruncatedError struct {
	Offset int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("pmx: truncated input at offset %d", e.Offset)
}

// UnsupportedVersionError is returned for any version other than 2.0 or 2.1.
type UnsupportedVersionError struct {
	Found float32
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("pmx: unsupported version %g", e.Found)
}

// InvalidCountError is returned when a record count is negative or
// implausibly large.
type InvalidCountError struct {
	Section Section
	Value   int64
}

func (e *InvalidCountError) Error() string {
	return fmt.Sprintf("pmx: invalid %s count %d", e.Section, e.Value)
}

// UnknownVariantError is returned when a discriminant byte does not match
// any known enumeration case.
type UnknownVariantError struct {
	Context string
	Tag     uint8
	Offset  int
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("pmx: unknown %s tag %d at offset %d", e.Context, e.Tag, e.Offset)
}

// InvalidTextError is returned when text bytes are not valid under the
// encoding declared in the header.
type InvalidTextError struct {
	Offset int
	Cause  error
}

func (e *InvalidTextError) Error() string {
	return fmt.Sprintf("pmx: invalid text at offset %d: %v", e.Offset, e.Cause)
}

func (e *InvalidTextError) Unwrap() error { return e.Cause }

// DanglingReferenceError is returned when an index embedded in one section
// points outside the valid range of its target section.
type DanglingReferenceError struct {
	Section Section
	Record  int
	Target  Section
	Value   int64
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("pmx: %s %d references %s %d, which does not exist",
		e.Section, e.Record, e.Target, e.Value)
}
