package listctl

import "errors"

var (
	// ErrStaleResponse marks a fetch whose result was superseded by a
	// later request before it resolved. Internal consistency guard,
	// never surfaced to the operator.
	ErrStaleResponse = errors.New("stale response discarded")

	// ErrValidationFailed blocks submission when the draft has field
	// errors. The request never reaches the network.
	ErrValidationFailed = errors.New("validation failed")

	// ErrEmptySelection rejects a bulk action with nothing selected
	// before any network call is made.
	ErrEmptySelection = errors.New("no items selected")

	// ErrMutationInFlight rejects a duplicate submission while a
	// mutation is still pending.
	ErrMutationInFlight = errors.New("mutation already in flight")

	// ErrNoDraft is returned by Submit when no form is open.
	ErrNoDraft = errors.New("no draft open")

	// ErrItemNotVisible is returned by OpenEdit/OpenView when the id is
	// not on the currently loaded page.
	ErrItemNotVisible = errors.New("item not in current page")
)
