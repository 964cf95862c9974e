package pmx

import (
	"errors"
	"testing"
)

// buildDangling is the minimal model with two broken references: the vertex
// is skinned to a missing bone and the triangle names a missing vertex.
func buildDangling() []byte {
	w := newWriter(TextUTF8)
	w.header(2.0, "dangling", 1)

	w.i32(1)
	w.vec3(0, 0, 0)
	w.vec3(0, 1, 0)
	w.vec2(0, 0)
	w.u8(0)
	w.idx(5, 1) // only bone 0 exists
	w.f32(1)

	w.i32(3)
	w.idx(1, 1) // only vertex 0 exists
	w.idx(0, 1)
	w.idx(0, 1)

	w.i32(0)
	w.i32(0)

	w.i32(1)
	w.text("b")
	w.text("b")
	w.vec3(0, 0, 0)
	w.idx(-1, 1)
	w.u32(0)
	w.u16(uint16(BoneRotatable))
	w.vec3(0, 1, 0)

	w.i32(0)
	w.i32(0)
	w.i32(0)
	w.i32(0)

	return w.data()
}

func TestValidate_FirstFailure(t *testing.T) {
	_, err := Parse(buildDangling())
	var dangling *DanglingReferenceError
	if !errors.As(err, &dangling) {
		t.Fatalf("err = %v, want DanglingReferenceError", err)
	}
	// Vertices are checked before surfaces, so the skinning reference wins.
	if dangling.Section != SectionVertex || dangling.Target != SectionBone || dangling.Value != 5 {
		t.Errorf("got %+v, want vertex record referencing bone 5", dangling)
	}
}

func TestValidate_CollectAll(t *testing.T) {
	_, err := ParseWithOptions(buildDangling(), Options{Validation: ValidateAll})
	if err == nil {
		t.Fatal("expected an error")
	}

	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("err = %v (%T), want a joined error", err, err)
	}
	violations := joined.Unwrap()
	if len(violations) != 2 {
		t.Fatalf("collected %d violations, want 2", len(violations))
	}

	var first, second *DanglingReferenceError
	if !errors.As(violations[0], &first) || !errors.As(violations[1], &second) {
		t.Fatalf("violations = %v", violations)
	}
	if first.Section != SectionVertex || second.Section != SectionSurface {
		t.Errorf("sections = %v/%v, want vertex then surface", first.Section, second.Section)
	}
}

func TestValidate_Skip(t *testing.T) {
	doc, err := ParseWithOptions(buildDangling(), Options{Validation: ValidateSkip})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	// The broken references survive untouched.
	if skin := doc.Vertices[0].Skinning.(BDEF1); skin.Bone != 5 {
		t.Errorf("skinning bone = %d, want 5", skin.Bone)
	}
	if doc.Surfaces[0].Vertices[0] != 1 {
		t.Errorf("surface vertex = %d, want 1", doc.Surfaces[0].Vertices[0])
	}
}

func TestValidate_GroupMorphSelfReference(t *testing.T) {
	w := newWriter(TextUTF8)
	w.header(2.0, "self", 1)
	for i := 0; i < 5; i++ {
		w.i32(0) // vertices through bones empty
	}
	w.i32(1)
	w.text("g")
	w.text("g")
	w.u8(uint8(PanelOther))
	w.u8(uint8(MorphGroup))
	w.i32(1)
	w.idx(0, 1) // the morph itself
	w.f32(1)
	w.i32(0)
	w.i32(0)
	w.i32(0)

	_, err := Parse(w.data())
	var dangling *DanglingReferenceError
	if !errors.As(err, &dangling) {
		t.Fatalf("err = %v, want DanglingReferenceError", err)
	}
	if dangling.Section != SectionMorph || dangling.Target != SectionMorph || dangling.Value != 0 {
		t.Errorf("got %+v, want morph 0 referencing itself", dangling)
	}
}

func TestValidate_InternalToonOutOfRange(t *testing.T) {
	w := newWriter(TextUTF8)
	w.header(2.0, "toon", 1)
	w.i32(0) // vertices
	w.i32(0) // surfaces
	w.i32(0) // textures

	w.i32(1)
	w.text("m")
	w.text("m")
	w.vec4(1, 1, 1, 1)
	w.vec3(0, 0, 0)
	w.f32(1)
	w.vec3(0, 0, 0)
	w.u8(0)
	w.vec4(0, 0, 0, 1)
	w.f32(1)
	w.idx(-1, 1)
	w.idx(-1, 1)
	w.u8(uint8(EnvBlendDisabled))
	w.u8(1)
	w.u8(12) // built-in toons stop at 9
	w.text("")
	w.u32(0)

	for i := 0; i < 5; i++ {
		w.i32(0) // bones through joints empty
	}

	_, err := Parse(w.data())
	var dangling *DanglingReferenceError
	if !errors.As(err, &dangling) {
		t.Fatalf("err = %v, want DanglingReferenceError", err)
	}
	if dangling.Section != SectionMaterial || dangling.Value != 12 {
		t.Errorf("got %+v, want material referencing toon 12", dangling)
	}
}

func TestValidate_SentinelsAllowed(t *testing.T) {
	// -1 everywhere a signed index permits it must pass validation.
	doc, err := Parse(buildMinimal(0))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Bones[0].Parent != -1 {
		t.Errorf("parent = %d, want -1 sentinel", doc.Bones[0].Parent)
	}
}
