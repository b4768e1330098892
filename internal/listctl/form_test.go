package listctl

import "testing"

type testDraft struct {
	Title  string
	Status string
}

func validateTestDraft(d testDraft) FieldErrors {
	errs := FieldErrors{}
	if d.Title == "" {
		errs["title"] = "title is required"
	}
	return errs
}

func TestFormStartCreate(t *testing.T) {
	f := NewFormBuffer(validateTestDraft)
	if f.Drafting() {
		t.Fatal("new buffer should be empty")
	}
	f.StartCreate(testDraft{Status: "active"})
	if !f.Drafting() {
		t.Fatal("buffer should be drafting after StartCreate")
	}
	if f.Editing() {
		t.Fatal("create draft should not be editing")
	}
	if got := f.Draft().Status; got != "active" {
		t.Fatalf("defaults not applied: status = %q", got)
	}
}

func TestFormStartEdit(t *testing.T) {
	f := NewFormBuffer(validateTestDraft)
	f.StartEdit(42, testDraft{Title: "Existing"})
	if !f.Editing() {
		t.Fatal("buffer should be editing after StartEdit")
	}
	if got := f.TargetID(); got != 42 {
		t.Fatalf("target id = %d, want 42", got)
	}
	if got := f.Draft().Title; got != "Existing" {
		t.Fatalf("draft not populated: title = %q", got)
	}
}

func TestFormUpdateRequiresDraft(t *testing.T) {
	f := NewFormBuffer(validateTestDraft)
	f.Update(func(d *testDraft) { d.Title = "lost" })
	if f.Drafting() {
		t.Fatal("Update on empty buffer must not open a draft")
	}

	f.StartCreate(testDraft{})
	f.Update(func(d *testDraft) { d.Title = "kept" })
	if got := f.Draft().Title; got != "kept" {
		t.Fatalf("title = %q, want kept", got)
	}
}

func TestFormReset(t *testing.T) {
	f := NewFormBuffer(validateTestDraft)
	f.StartEdit(7, testDraft{Title: "x"})
	f.Reset()
	if f.Drafting() || f.Editing() {
		t.Fatal("buffer should be empty after Reset")
	}
	if got := f.TargetID(); got != 0 {
		t.Fatalf("target id = %d after reset, want 0", got)
	}
	if got := f.Draft(); got != (testDraft{}) {
		t.Fatalf("draft = %+v after reset, want zero", got)
	}
}

func TestFormValidateIdempotent(t *testing.T) {
	f := NewFormBuffer(validateTestDraft)
	f.StartCreate(testDraft{})

	first := f.Validate()
	second := f.Validate()
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("validate results differ across calls: %v vs %v", first, second)
	}
	if first["title"] != second["title"] {
		t.Fatalf("validate is not stable: %q vs %q", first["title"], second["title"])
	}
	// Validation must not have consumed or altered the draft.
	if got := f.Draft(); got != (testDraft{}) {
		t.Fatalf("validate mutated the draft: %+v", got)
	}
}

func TestFormValidateEmptyBuffer(t *testing.T) {
	f := NewFormBuffer(validateTestDraft)
	if errs := f.Validate(); len(errs) != 0 {
		t.Fatalf("empty buffer validate = %v, want no errors", errs)
	}
}

func TestFormValidateNilValidator(t *testing.T) {
	f := NewFormBuffer[testDraft](nil)
	f.StartCreate(testDraft{})
	if errs := f.Validate(); len(errs) != 0 {
		t.Fatalf("nil validator should pass everything, got %v", errs)
	}
}
