package listctl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

type widgetDraft struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

func validateWidget(d widgetDraft) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(d.Title) == "" {
		errs["title"] = "title is required"
	}
	return errs
}

// fakeBackend is a minimal admin API for one entity, honoring search,
// status filter and pagination the way the real server does.
type fakeBackend struct {
	mu      sync.Mutex
	widgets []widget
	nextID  int64
	creates int32
}

func newFakeBackend(n int) *fakeBackend {
	b := &fakeBackend{nextID: 1}
	for i := 0; i < n; i++ {
		b.widgets = append(b.widgets, widget{
			ID:     b.nextID,
			Title:  fmt.Sprintf("Widget %02d", b.nextID),
			Status: "active",
		})
		b.nextID++
	}
	return b
}

func (b *fakeBackend) remove(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, w := range b.widgets {
		if w.ID == id {
			b.widgets = append(b.widgets[:i], b.widgets[i+1:]...)
			return true
		}
	}
	return false
}

func (b *fakeBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/admin/widgets")
		switch {
		case rest == "" || rest == "/":
			if r.Method == http.MethodPost {
				b.create(w, r)
				return
			}
			b.list(w, r)
		case rest == "/bulk":
			b.bulk(w, r)
		default:
			id, err := strconv.ParseInt(strings.TrimPrefix(rest, "/"), 10, 64)
			if err != nil {
				http.Error(w, `{"error":"invalid id"}`, http.StatusBadRequest)
				return
			}
			switch r.Method {
			case http.MethodPut:
				b.update(w, r, id)
			case http.MethodDelete:
				b.delete(w, id)
			}
		}
	})
}

func (b *fakeBackend) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 20
	}
	search := strings.ToLower(q.Get("search"))
	status := q.Get("status")

	b.mu.Lock()
	var filtered []widget
	for _, item := range b.widgets {
		if search != "" && !strings.Contains(strings.ToLower(item.Title), search) {
			continue
		}
		if status != "" && item.Status != status {
			continue
		}
		filtered = append(filtered, item)
	}
	b.mu.Unlock()

	total := len(filtered)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	writeEnvelopePage(w, filtered[start:end], total, totalPages, page)
}

func (b *fakeBackend) create(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&b.creates, 1)
	var d widgetDraft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, `{"error":"invalid JSON body"}`, http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	item := widget{ID: b.nextID, Title: d.Title, Status: d.Status}
	b.nextID++
	b.widgets = append(b.widgets, item)
	b.mu.Unlock()
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(item)
}

func (b *fakeBackend) update(w http.ResponseWriter, r *http.Request, id int64) {
	var d widgetDraft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, `{"error":"invalid JSON body"}`, http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.widgets {
		if b.widgets[i].ID == id {
			b.widgets[i].Title = d.Title
			b.widgets[i].Status = d.Status
			_ = json.NewEncoder(w).Encode(b.widgets[i])
			return
		}
	}
	http.Error(w, `{"error":"widget not found"}`, http.StatusNotFound)
}

func (b *fakeBackend) delete(w http.ResponseWriter, id int64) {
	if !b.remove(id) {
		http.Error(w, `{"error":"widget not found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"deleted": true, "id": id})
}

func (b *fakeBackend) bulk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action  string  `json:"action"`
		IDs     []int64 `json:"ids"`
		BatchID string  `json:"batch_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON body"}`, http.StatusBadRequest)
		return
	}
	result := struct {
		Action    string           `json:"action"`
		Succeeded []int64          `json:"succeeded"`
		Failed    []map[string]any `json:"failed,omitempty"`
	}{Action: req.Action, Succeeded: []int64{}}

	for _, id := range req.IDs {
		ok := false
		switch req.Action {
		case "delete":
			ok = b.remove(id)
		default:
			status := "active"
			if req.Action == "deactivate" {
				status = "inactive"
			}
			b.mu.Lock()
			for i := range b.widgets {
				if b.widgets[i].ID == id {
					b.widgets[i].Status = status
					ok = true
				}
			}
			b.mu.Unlock()
		}
		if ok {
			result.Succeeded = append(result.Succeeded, id)
		} else {
			result.Failed = append(result.Failed, map[string]any{"id": id, "error": "widget not found"})
		}
	}
	_ = json.NewEncoder(w).Encode(result)
}

func writeEnvelopePage(w http.ResponseWriter, items []widget, totalItems, totalPages, page int) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": items,
		"pagination": map[string]int{
			"currentPage": page,
			"totalPages":  totalPages,
			"totalItems":  totalItems,
		},
	})
}

func newTestController(t *testing.T, b *fakeBackend, pageSize int) *Controller[widget, widgetDraft] {
	t.Helper()
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	ctrl, err := New(Config[widget, widgetDraft]{
		Client:   testClient(srv.URL),
		Entity:   "widgets",
		Label:    "widget",
		Notifier: &recorder{},
		PageSize: pageSize,
		ID:       func(w widget) int64 { return w.ID },
		Defaults: func() widgetDraft { return widgetDraft{Status: "active"} },
		DraftOf:  func(w widget) widgetDraft { return widgetDraft{Title: w.Title, Status: w.Status} },
		Validate: validateWidget,
	})
	if err != nil {
		t.Fatalf("controller setup failed: %v", err)
	}
	t.Cleanup(ctrl.Close)
	return ctrl
}

func TestControllerPaginationWindow(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, newFakeBackend(45), 20)

	if err := ctrl.List(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	snap := ctrl.Snapshot()
	if len(snap.List.Result.Items) != 20 {
		t.Fatalf("page 1 has %d items, want 20", len(snap.List.Result.Items))
	}
	if snap.List.Result.TotalItems != 45 || snap.List.Result.TotalPages != 3 {
		t.Fatalf("totals = %d items / %d pages, want 45 / 3", snap.List.Result.TotalItems, snap.List.Result.TotalPages)
	}

	if err := ctrl.SetPage(ctx, 3); err != nil {
		t.Fatalf("page 3 failed: %v", err)
	}
	snap = ctrl.Snapshot()
	if len(snap.List.Result.Items) != 5 {
		t.Fatalf("page 3 has %d items, want the final 5", len(snap.List.Result.Items))
	}
	if got := snap.List.Result.Items[0].ID; got != 41 {
		t.Fatalf("page 3 starts at id %d, want 41", got)
	}
}

func TestControllerClampsPagePastEnd(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, newFakeBackend(45), 20)

	if err := ctrl.List(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if err := ctrl.SetPage(ctx, 9); err != nil {
		t.Fatalf("page 9 failed: %v", err)
	}
	if got := ctrl.Query().Page; got != 3 {
		t.Fatalf("page = %d after requesting past the end, want clamp to 3", got)
	}
	if got := len(ctrl.Snapshot().List.Result.Items); got != 5 {
		t.Fatalf("clamped page has %d items, want 5", got)
	}
}

func TestControllerQueryChangeResetsSelection(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, newFakeBackend(30), 20)

	if err := ctrl.List(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	ctrl.SelectAll()
	if got := len(ctrl.SelectedIDs()); got != 20 {
		t.Fatalf("selected %d, want 20", got)
	}

	if err := ctrl.SetSearch(ctx, "Widget 0"); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if got := len(ctrl.SelectedIDs()); got != 0 {
		t.Fatalf("selection survived a query change: %d ids", got)
	}
	if got := ctrl.Query().Page; got != 1 {
		t.Fatalf("page = %d after search, want 1", got)
	}
}

func TestControllerToggleIgnoresInvisibleIDs(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, newFakeBackend(5), 20)
	if err := ctrl.List(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	ctrl.Toggle(999)
	if got := len(ctrl.SelectedIDs()); got != 0 {
		t.Fatal("toggling an id outside the page changed the selection")
	}
	ctrl.Toggle(3)
	if !reflect.DeepEqual(ctrl.SelectedIDs(), []int64{3}) {
		t.Fatalf("selection = %v, want [3]", ctrl.SelectedIDs())
	}
}

func TestControllerSubmitValidationBlocksNetwork(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend(0)
	ctrl := newTestController(t, backend, 20)

	ctrl.OpenCreate()
	fieldErrs, err := ctrl.Submit(ctx)
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("err = %v, want validation-failed", err)
	}
	if fieldErrs["title"] == "" {
		t.Fatalf("field errors = %v, want a title error", fieldErrs)
	}
	if atomic.LoadInt32(&backend.creates) != 0 {
		t.Error("invalid draft reached the network")
	}

	snap := ctrl.Snapshot()
	if !snap.Drafting {
		t.Error("draft destroyed by failed validation")
	}
	if snap.Dialog.Kind != DialogCreating {
		t.Errorf("dialog = %s, want still creating", snap.Dialog.Kind)
	}
}

func TestControllerSubmitWithoutDraft(t *testing.T) {
	ctrl := newTestController(t, newFakeBackend(0), 20)
	if _, err := ctrl.Submit(context.Background()); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("err = %v, want no-draft", err)
	}
}

func TestControllerCreateReadAfterWrite(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, newFakeBackend(3), 20)

	if err := ctrl.List(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if got := ctrl.Snapshot().List.Result.TotalItems; got != 3 {
		t.Fatalf("initial total = %d, want 3", got)
	}

	ctrl.OpenCreate()
	ctrl.UpdateDraft(func(d *widgetDraft) { d.Title = "Brand New" })
	fieldErrs, err := ctrl.Submit(ctx)
	if err != nil {
		t.Fatalf("submit failed: %v (fields %v)", err, fieldErrs)
	}

	snap := ctrl.Snapshot()
	if snap.Dialog.Kind != DialogClosed {
		t.Errorf("dialog = %s after success, want closed", snap.Dialog.Kind)
	}
	if snap.Drafting {
		t.Error("draft survived a successful submit")
	}
	// The refetch went through the invalidated cache and sees the write.
	if got := snap.List.Result.TotalItems; got != 4 {
		t.Fatalf("total = %d after create, want 4", got)
	}
}

func TestControllerEditFlow(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, newFakeBackend(3), 20)

	if err := ctrl.List(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if err := ctrl.OpenEdit(2); err != nil {
		t.Fatalf("open edit failed: %v", err)
	}
	snap := ctrl.Snapshot()
	if !snap.Editing || snap.Dialog.TargetID != 2 {
		t.Fatalf("dialog = %+v, want editing id 2", snap.Dialog)
	}
	if snap.Draft.Title != "Widget 02" {
		t.Fatalf("draft title = %q, want populated from the record", snap.Draft.Title)
	}

	ctrl.UpdateDraft(func(d *widgetDraft) { d.Title = "Renamed" })
	if _, err := ctrl.Submit(ctx); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	for _, item := range ctrl.Snapshot().List.Result.Items {
		if item.ID == 2 {
			if item.Title != "Renamed" {
				t.Fatalf("title = %q after edit, want Renamed", item.Title)
			}
			return
		}
	}
	t.Fatal("edited widget missing from refetched page")
}

func TestControllerOpenEditRequiresVisibleItem(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, newFakeBackend(3), 20)
	if err := ctrl.List(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if err := ctrl.OpenEdit(999); !errors.Is(err, ErrItemNotVisible) {
		t.Fatalf("err = %v, want item-not-visible", err)
	}
}

func TestControllerBulkPartialKeepsFailedSelected(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend(5)
	ctrl := newTestController(t, backend, 20)

	if err := ctrl.List(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	ctrl.Toggle(1)
	ctrl.Toggle(2)
	ctrl.Toggle(3)

	// Id 2 vanishes server-side before the bulk call lands.
	backend.remove(2)

	result, err := ctrl.BulkAct(ctx, "delete")
	if err != nil {
		t.Fatalf("bulk action failed: %v", err)
	}
	if !reflect.DeepEqual(result.Succeeded, []int64{1, 3}) {
		t.Fatalf("succeeded = %v, want [1 3]", result.Succeeded)
	}
	if len(result.Failed) != 1 || result.Failed[0].ID != 2 {
		t.Fatalf("failed = %+v, want id 2", result.Failed)
	}
	// Failed ids stay selected for retry; succeeded ones leave.
	if !reflect.DeepEqual(ctrl.SelectedIDs(), []int64{2}) {
		t.Fatalf("selection = %v after partial failure, want [2]", ctrl.SelectedIDs())
	}
}

func TestControllerBulkEmptySelection(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, newFakeBackend(5), 20)
	if err := ctrl.List(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if _, err := ctrl.BulkAct(ctx, "delete"); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("err = %v, want empty-selection", err)
	}
}

func TestControllerRemove(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, newFakeBackend(3), 20)

	if err := ctrl.List(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	ctrl.Toggle(1)
	if err := ctrl.Remove(ctx, 1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	snap := ctrl.Snapshot()
	if got := snap.List.Result.TotalItems; got != 2 {
		t.Fatalf("total = %d after delete, want 2", got)
	}
	if len(snap.Selected) != 0 {
		t.Fatalf("selection = %v after delete, want empty", snap.Selected)
	}
}

func TestControllerCloseDialogDiscardsDraft(t *testing.T) {
	ctrl := newTestController(t, newFakeBackend(0), 20)
	ctrl.OpenCreate()
	ctrl.UpdateDraft(func(d *widgetDraft) { d.Title = "unsaved" })
	ctrl.CloseDialog()

	snap := ctrl.Snapshot()
	if snap.Drafting {
		t.Error("draft survived dialog close")
	}
	if snap.Dialog.Kind != DialogClosed {
		t.Errorf("dialog = %s, want closed", snap.Dialog.Kind)
	}
	if snap.Draft.Title != "" {
		t.Errorf("draft title = %q, want discarded", snap.Draft.Title)
	}
}
