package listctl

import "sync"

// FieldErrors maps field names to human-readable validation messages.
type FieldErrors map[string]string

// Validator checks a draft and returns per-field errors. Must be pure:
// calling it twice on the same draft yields the same result.
type Validator[D any] func(D) FieldErrors

// FormBuffer holds the draft record backing a create/edit form,
// independent of the list data.
//
// State machine: Empty --StartCreate/StartEdit--> Drafting,
// Drafting --Reset (submit success or cancel)--> Empty. Nothing else.
type FormBuffer[D any] struct {
	mu       sync.Mutex
	drafting bool
	editing  bool
	targetID int64
	draft    D
	validate Validator[D]
}

// NewFormBuffer creates an empty buffer with the given validator.
func NewFormBuffer[D any](validate Validator[D]) *FormBuffer[D] {
	return &FormBuffer[D]{validate: validate}
}

// StartCreate opens a new draft from entity defaults.
func (f *FormBuffer[D]) StartCreate(defaults D) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drafting = true
	f.editing = false
	f.targetID = 0
	f.draft = defaults
}

// StartEdit opens a draft populated from an existing record.
func (f *FormBuffer[D]) StartEdit(id int64, existing D) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drafting = true
	f.editing = true
	f.targetID = id
	f.draft = existing
}

// Update applies a field mutation to the draft. No-op when no draft is
// open.
func (f *FormBuffer[D]) Update(mutate func(*D)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.drafting {
		return
	}
	mutate(&f.draft)
}

// Reset destroys the draft, returning to Empty.
func (f *FormBuffer[D]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero D
	f.drafting = false
	f.editing = false
	f.targetID = 0
	f.draft = zero
}

// Validate runs the validator over the current draft. Side-effect-free
// and idempotent; empty result means the draft may be submitted.
func (f *FormBuffer[D]) Validate() FieldErrors {
	f.mu.Lock()
	draft := f.draft
	drafting := f.drafting
	f.mu.Unlock()
	if !drafting || f.validate == nil {
		return FieldErrors{}
	}
	errs := f.validate(draft)
	if errs == nil {
		errs = FieldErrors{}
	}
	return errs
}

// Drafting reports whether a draft is open.
func (f *FormBuffer[D]) Drafting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.drafting
}

// Editing reports whether the open draft targets an existing record.
func (f *FormBuffer[D]) Editing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editing
}

// TargetID returns the id being edited, 0 for a create draft.
func (f *FormBuffer[D]) TargetID() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.targetID
}

// Draft returns a copy of the current draft.
func (f *FormBuffer[D]) Draft() D {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}
