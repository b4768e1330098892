package listctl

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mehmetresatdemir/cryptonbets-admin/internal/api"
)

// DialogKind tags the single dialog state a page carries, replacing the
// per-modal booleans the old admin screens juggled.
type DialogKind string

const (
	DialogClosed   DialogKind = "closed"
	DialogCreating DialogKind = "creating"
	DialogEditing  DialogKind = "editing"
	DialogViewing  DialogKind = "viewing"
)

// DialogState is the tagged variant {Closed | Creating | Editing(id) |
// Viewing(id)}. TargetID is meaningful for Editing and Viewing only.
type DialogState struct {
	Kind     DialogKind
	TargetID int64
}

// Config parameterizes a Controller for one entity type. T is the
// record shape the API returns, D the draft payload sent on
// create/update.
type Config[T, D any] struct {
	Client   *api.Client
	Entity   string // endpoint path segment, e.g. "banners"
	Label    string // human name for notifications; defaults to Entity
	Cache    Cache[T]
	Notifier Notifier
	PageSize int

	ID        func(T) int64 // identifier extractor
	Defaults  func() D      // draft for a fresh create form
	DraftOf   func(T) D     // draft populated from an existing record
	Normalize func(D) D     // applied before validation on submit, e.g. slug derivation
	Validate  Validator[D]
}

// Controller is the composition root driving one admin list page:
// query/selection/form state, the cached fetcher and the mutation
// executor, plus the dialog state machine. All operations are blocking
// and safe for concurrent use; overlapping fetches resolve by
// last-request-wins.
type Controller[T, D any] struct {
	cfg     Config[T, D]
	query   *QueryState
	sel     *SelectionSet
	form    *FormBuffer[D]
	fetcher *Fetcher[T]
	mutator *Mutator[T]

	mu          sync.Mutex
	dialog      DialogState
	cancelFetch context.CancelFunc
	closed      bool
	onUpdate    func()
}

// Snapshot is a render-ready copy of the controller's state.
type Snapshot[T, D any] struct {
	List     ListState[T]
	Selected []int64
	Dialog   DialogState
	Drafting bool
	Editing  bool
	Draft    D
	Pending  bool
}

// New wires a controller from its configuration.
func New[T, D any](cfg Config[T, D]) (*Controller[T, D], error) {
	if cfg.Client == nil {
		return nil, errors.New("listctl: Client is required")
	}
	if cfg.Entity == "" {
		return nil, errors.New("listctl: Entity is required")
	}
	if cfg.ID == nil {
		return nil, errors.New("listctl: ID extractor is required")
	}
	if cfg.Cache == nil {
		cfg.Cache = NewMemoryCache[T]()
	}
	if cfg.Notifier == nil {
		cfg.Notifier = LogNotifier{}
	}

	fetcher := NewFetcher(cfg.Client, cfg.Entity, cfg.Cache)
	return &Controller[T, D]{
		cfg:     cfg,
		query:   NewQueryState(cfg.PageSize),
		sel:     NewSelectionSet(),
		form:    NewFormBuffer(cfg.Validate),
		fetcher: fetcher,
		mutator: NewMutator(cfg.Client, cfg.Entity, cfg.Label, cfg.Cache, cfg.Notifier),
		dialog:  DialogState{Kind: DialogClosed},
	}, nil
}

// Subscribe registers a callback invoked after each applied state
// change, for hosts that render reactively.
func (c *Controller[T, D]) Subscribe(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUpdate = fn
}

// Close cancels any in-flight fetch and rejects further operations.
func (c *Controller[T, D]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.cancelFetch != nil {
		c.cancelFetch()
		c.cancelFetch = nil
	}
}

// Snapshot returns the state a page renders from.
func (c *Controller[T, D]) Snapshot() Snapshot[T, D] {
	c.mu.Lock()
	dialog := c.dialog
	c.mu.Unlock()
	return Snapshot[T, D]{
		List:     c.fetcher.State(),
		Selected: c.sel.IDs(),
		Dialog:   dialog,
		Drafting: c.form.Drafting(),
		Editing:  c.form.Editing(),
		Draft:    c.form.Draft(),
		Pending:  c.mutator.Pending(),
	}
}

// Query returns the active query.
func (c *Controller[T, D]) Query() Query {
	return c.query.Snapshot()
}

// List fetches the current query.
func (c *Controller[T, D]) List(ctx context.Context) error {
	return c.refresh(ctx, true)
}

// Refresh is the explicit user-triggered re-query (there is no
// automatic retry).
func (c *Controller[T, D]) Refresh(ctx context.Context) error {
	return c.refresh(ctx, true)
}

// SetSearch updates the search term, resets the page and selection, and
// refetches.
func (c *Controller[T, D]) SetSearch(ctx context.Context, term string) error {
	c.query.SetSearch(term)
	return c.queryChanged(ctx)
}

// SetFilter updates one filter dimension, resets page and selection,
// and refetches.
func (c *Controller[T, D]) SetFilter(ctx context.Context, key, value string) error {
	c.query.SetFilter(key, value)
	return c.queryChanged(ctx)
}

// ClearFilter removes one filter dimension and refetches.
func (c *Controller[T, D]) ClearFilter(ctx context.Context, key string) error {
	c.query.ClearFilter(key)
	return c.queryChanged(ctx)
}

// SetSort updates sort field/direction and refetches.
func (c *Controller[T, D]) SetSort(ctx context.Context, field string, dir SortDirection) error {
	c.query.SetSort(field, dir)
	return c.queryChanged(ctx)
}

// SetPage moves to another page and refetches. The page is the one
// query field whose change does not reset pagination.
func (c *Controller[T, D]) SetPage(ctx context.Context, page int) error {
	c.query.SetPage(page)
	return c.queryChanged(ctx)
}

// SetPageSize changes the page size, resets to page 1, and refetches.
func (c *Controller[T, D]) SetPageSize(ctx context.Context, size int) error {
	c.query.SetPageSize(size)
	return c.queryChanged(ctx)
}

// queryChanged applies the reset-selection-on-query-change policy and
// refetches.
func (c *Controller[T, D]) queryChanged(ctx context.Context) error {
	c.sel.Clear()
	return c.refresh(ctx, true)
}

// refresh resolves the current query, cancelling any fetch still in
// flight. A successful response clamps the page to the reported total
// and refetches once when the query pointed past the end.
func (c *Controller[T, D]) refresh(ctx context.Context, clamp bool) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return context.Canceled
	}
	if c.cancelFetch != nil {
		c.cancelFetch()
	}
	fctx, cancel := context.WithCancel(ctx)
	c.cancelFetch = cancel
	c.mu.Unlock()

	q := c.query.Snapshot()
	res, err := c.fetcher.Query(fctx, q)
	if errors.Is(err, ErrStaleResponse) {
		// A newer request owns the state now.
		return nil
	}
	defer c.notifyUpdate()
	if err != nil {
		return err
	}

	if clamp && res.TotalPages > 0 && q.Page > res.TotalPages {
		c.query.SetPage(res.TotalPages)
		return c.refresh(ctx, false)
	}
	return nil
}

// Toggle flips selection of an id on the current page. Ids that are not
// visible are ignored: the selection is always a subset of the page.
func (c *Controller[T, D]) Toggle(id int64) {
	if !c.visible(id) {
		return
	}
	c.sel.Toggle(id)
	c.notifyUpdate()
}

// SelectAll selects every id on the current page.
func (c *Controller[T, D]) SelectAll() {
	c.sel.SelectAll(c.pageIDs())
	c.notifyUpdate()
}

// ClearSelection empties the selection.
func (c *Controller[T, D]) ClearSelection() {
	c.sel.Clear()
	c.notifyUpdate()
}

// SelectedIDs returns the selected ids in ascending order.
func (c *Controller[T, D]) SelectedIDs() []int64 {
	return c.sel.IDs()
}

// BulkAct runs action over the selection. Succeeded ids leave the
// selection; failed ids stay selected so the operator can retry them.
func (c *Controller[T, D]) BulkAct(ctx context.Context, action string) (api.BulkResult, error) {
	result, err := c.mutator.BulkAction(ctx, action, c.sel.IDs())
	if err != nil {
		return result, err
	}
	c.sel.Remove(result.Succeeded)
	if rerr := c.refresh(ctx, true); rerr != nil {
		return result, rerr
	}
	return result, nil
}

// OpenCreate opens the create dialog with entity defaults.
func (c *Controller[T, D]) OpenCreate() {
	var defaults D
	if c.cfg.Defaults != nil {
		defaults = c.cfg.Defaults()
	}
	c.form.StartCreate(defaults)
	c.setDialog(DialogState{Kind: DialogCreating})
}

// OpenEdit opens the edit dialog populated from the visible record.
func (c *Controller[T, D]) OpenEdit(id int64) error {
	item, ok := c.find(id)
	if !ok {
		return ErrItemNotVisible
	}
	if c.cfg.DraftOf == nil {
		return fmt.Errorf("listctl: %s has no DraftOf mapping", c.cfg.Entity)
	}
	c.form.StartEdit(id, c.cfg.DraftOf(item))
	c.setDialog(DialogState{Kind: DialogEditing, TargetID: id})
	return nil
}

// OpenView opens the read-only dialog for a visible record.
func (c *Controller[T, D]) OpenView(id int64) error {
	if !c.visible(id) {
		return ErrItemNotVisible
	}
	c.setDialog(DialogState{Kind: DialogViewing, TargetID: id})
	return nil
}

// CloseDialog cancels the dialog and destroys any draft.
func (c *Controller[T, D]) CloseDialog() {
	c.form.Reset()
	c.setDialog(DialogState{Kind: DialogClosed})
}

// UpdateDraft applies a field change to the open draft.
func (c *Controller[T, D]) UpdateDraft(mutate func(*D)) {
	c.form.Update(mutate)
	c.notifyUpdate()
}

// Validate runs draft validation without submitting.
func (c *Controller[T, D]) Validate() FieldErrors {
	return c.form.Validate()
}

// Submit validates and sends the open draft. Field errors block
// submission before any network call and are returned for per-field
// display. On success the form resets, the dialog closes, and the list
// is refetched through the invalidated cache.
func (c *Controller[T, D]) Submit(ctx context.Context) (FieldErrors, error) {
	if !c.form.Drafting() {
		return nil, ErrNoDraft
	}
	if c.cfg.Normalize != nil {
		normalized := c.cfg.Normalize(c.form.Draft())
		c.form.Update(func(d *D) { *d = normalized })
	}
	if errs := c.form.Validate(); len(errs) > 0 {
		return errs, ErrValidationFailed
	}

	draft := c.form.Draft()
	var err error
	if c.form.Editing() {
		_, err = c.mutator.Update(ctx, c.form.TargetID(), draft)
	} else {
		_, err = c.mutator.Create(ctx, draft)
	}
	if err != nil {
		// Draft preserved: the operator keeps unsaved edits.
		return nil, err
	}

	c.form.Reset()
	c.setDialog(DialogState{Kind: DialogClosed})
	return nil, c.refresh(ctx, true)
}

// Remove deletes one record and refetches.
func (c *Controller[T, D]) Remove(ctx context.Context, id int64) error {
	if err := c.mutator.Delete(ctx, id); err != nil {
		return err
	}
	c.sel.Remove([]int64{id})
	return c.refresh(ctx, true)
}

func (c *Controller[T, D]) setDialog(d DialogState) {
	c.mu.Lock()
	c.dialog = d
	c.mu.Unlock()
	c.notifyUpdate()
}

func (c *Controller[T, D]) pageIDs() []int64 {
	state := c.fetcher.State()
	ids := make([]int64, 0, len(state.Result.Items))
	for _, item := range state.Result.Items {
		ids = append(ids, c.cfg.ID(item))
	}
	return ids
}

func (c *Controller[T, D]) visible(id int64) bool {
	for _, pid := range c.pageIDs() {
		if pid == id {
			return true
		}
	}
	return false
}

func (c *Controller[T, D]) find(id int64) (T, bool) {
	state := c.fetcher.State()
	for _, item := range state.Result.Items {
		if c.cfg.ID(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *Controller[T, D]) notifyUpdate() {
	c.mu.Lock()
	fn := c.onUpdate
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}
