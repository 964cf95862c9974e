package pmx

import (
	"strings"
	"testing"
)

func TestDocument_BoneByName(t *testing.T) {
	doc := &Document{
		Bones: []Bone{
			{NameLocal: "センター", NameUniversal: "center"},
			{NameLocal: "右腕", NameUniversal: "arm_R"},
		},
	}

	if b := doc.BoneByName("右腕"); b == nil || b.NameUniversal != "arm_R" {
		t.Errorf("lookup by local name = %v", b)
	}
	if b := doc.BoneByName("center"); b == nil || b.NameLocal != "センター" {
		t.Errorf("lookup by universal name = %v", b)
	}
	if b := doc.BoneByName("missing"); b != nil {
		t.Errorf("lookup of missing bone = %v, want nil", b)
	}
}

func TestDocument_MorphByName(t *testing.T) {
	doc := &Document{
		Morphs: []Morph{
			{NameLocal: "まばたき", NameUniversal: "blink"},
		},
	}

	if m := doc.MorphByName("blink"); m == nil || m.NameLocal != "まばたき" {
		t.Errorf("lookup by universal name = %v", m)
	}
	if m := doc.MorphByName("smile"); m != nil {
		t.Errorf("lookup of missing morph = %v, want nil", m)
	}
}

func TestDocument_MaterialSurfaceSpan(t *testing.T) {
	// SurfaceCount is a raw vertex-index count; spans are triangle units.
	doc := &Document{
		Surfaces: make([]Surface, 3),
		Materials: []Material{
			{SurfaceCount: 6},
			{SurfaceCount: 3},
		},
	}

	tests := []struct {
		index      int
		start, end int
	}{
		{0, 0, 2},
		{1, 2, 3},
	}
	for _, tt := range tests {
		start, end := doc.MaterialSurfaceSpan(tt.index)
		if start != tt.start || end != tt.end {
			t.Errorf("span(%d) = [%d, %d), want [%d, %d)", tt.index, start, end, tt.start, tt.end)
		}
		if end > len(doc.Surfaces) {
			t.Errorf("span(%d) end %d exceeds %d surfaces", tt.index, end, len(doc.Surfaces))
		}
	}
}

func TestDocument_HasPhysics(t *testing.T) {
	if (&Document{}).HasPhysics() {
		t.Error("empty document reports physics")
	}
	if !(&Document{RigidBodies: make([]RigidBody, 1)}).HasPhysics() {
		t.Error("document with a rigid body reports no physics")
	}
	if !(&Document{SoftBodies: make([]SoftBody, 1)}).HasPhysics() {
		t.Error("document with a soft body reports no physics")
	}
}

func TestDocument_String(t *testing.T) {
	doc, err := Parse(buildFull())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	s := doc.String()
	for _, want := range []string{"フルモデル", "vertices=3", "bones=2", "joints=1"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
	if strings.Contains(s, "softbodies") {
		t.Errorf("String() = %q, mentions soft bodies on a 2.0 model", s)
	}
}
