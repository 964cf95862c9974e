// Package pmx parses PMX 2.0/2.1 model files into a validated Document.
//
// Parsing is a pure transformation from an in-memory byte buffer to an
// owned Document. It is all-or-nothing: any malformed field fails the
// whole parse with a typed error carrying byte-offset context, and no
// partial Document is ever returned. The package keeps no global state,
// so independent buffers may be parsed concurrently.
package pmx

import (
	"fmt"
	"os"
)

// ValidationMode controls the cross-reference pass that runs after all
// sections are decoded.
type ValidationMode int

const (
	// ValidateFirst fails on the first dangling reference.
	ValidateFirst ValidationMode = iota
	// ValidateAll collects every dangling reference into a joined error.
	ValidateAll
	// ValidateSkip skips reference validation entirely.
	ValidateSkip
)

// Options tunes parsing behavior.
type Options struct {
	Validation ValidationMode
}

// Parse decodes a complete PMX file from data and validates every
// cross-section reference.
func Parse(data []byte) (*Document, error) {
	return ParseWithOptions(data, Options{})
}

// ParseWithOptions is Parse with explicit options.
func ParseWithOptions(data []byte, opts Options) (*Document, error) {
	r := newReader(data)

	header, err := parseHeader(r)
	if err != nil {
		return nil, err
	}

	doc := &Document{Header: *header}
	if doc.Vertices, err = parseVertices(r, header); err != nil {
		return nil, err
	}
	if doc.Surfaces, err = parseSurfaces(r, header); err != nil {
		return nil, err
	}
	if doc.Textures, err = parseTextures(r, header); err != nil {
		return nil, err
	}
	if doc.Materials, err = parseMaterials(r, header); err != nil {
		return nil, err
	}
	if doc.Bones, err = parseBones(r, header); err != nil {
		return nil, err
	}
	if doc.Morphs, err = parseMorphs(r, header); err != nil {
		return nil, err
	}
	if doc.DisplayFrames, err = parseDisplayFrames(r, header); err != nil {
		return nil, err
	}
	if doc.RigidBodies, err = parseRigidBodies(r, header); err != nil {
		return nil, err
	}
	if doc.Joints, err = parseJoints(r, header); err != nil {
		return nil, err
	}
	// Soft bodies only exist in 2.1. Some 2.1 exporters still omit the
	// section; treat absence as empty rather than truncated.
	if header.Is21() && r.offset() < len(data) {
		if doc.SoftBodies, err = parseSoftBodies(r, header); err != nil {
			return nil, err
		}
	}

	if opts.Validation != ValidateSkip {
		if err := validateDocument(doc, opts.Validation); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// ParseFile reads and parses a PMX file from disk.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading PMX file: %w", err)
	}
	return Parse(data)
}
