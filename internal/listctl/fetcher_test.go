package listctl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/mehmetresatdemir/cryptonbets-admin/internal/api"
)

type widget struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status,omitempty"`
}

func testClient(baseURL string) *api.Client {
	return api.NewClient(baseURL, 5, api.NewSession("test-token"))
}

func testQuery(search string) Query {
	return Query{
		Search:   search,
		Filters:  map[string]string{},
		SortDir:  SortDesc,
		Page:     1,
		PageSize: 20,
	}
}

func writeEnvelope(w http.ResponseWriter, items []widget, totalItems, totalPages int) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(api.ListEnvelope[widget]{
		Data: items,
		Pagination: api.Pagination{
			CurrentPage: 1,
			TotalPages:  totalPages,
			TotalItems:  totalItems,
		},
	})
}

func TestFetcherQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, []widget{{ID: 1, Title: "one"}, {ID: 2, Title: "two"}}, 2, 1)
	}))
	defer srv.Close()

	f := NewFetcher[widget](testClient(srv.URL), "widgets", nil)
	res, err := f.Query(context.Background(), testQuery(""))
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(res.Items) != 2 || res.TotalItems != 2 || res.TotalPages != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}

	state := f.State()
	if state.Loading {
		t.Error("loading flag still set after completion")
	}
	if state.Err != nil {
		t.Errorf("state err = %v, want nil", state.Err)
	}
	if len(state.Result.Items) != 2 {
		t.Errorf("state holds %d items, want 2", len(state.Result.Items))
	}
}

func TestFetcherCacheHit(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		writeEnvelope(w, []widget{{ID: 1, Title: "one"}}, 1, 1)
	}))
	defer srv.Close()

	f := NewFetcher[widget](testClient(srv.URL), "widgets", nil)
	q := testQuery("bonus")

	if _, err := f.Query(context.Background(), q); err != nil {
		t.Fatalf("first query failed: %v", err)
	}
	res, err := f.Query(context.Background(), q)
	if err != nil {
		t.Fatalf("second query failed: %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("server hit %d times, want 1 (second read from cache)", got)
	}
	if len(res.Items) != 1 {
		t.Fatalf("cached result has %d items, want 1", len(res.Items))
	}
}

func TestFetcherErrorKeepsPreviousResult(t *testing.T) {
	var failing atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
			return
		}
		writeEnvelope(w, []widget{{ID: 1, Title: "one"}}, 1, 1)
	}))
	defer srv.Close()

	f := NewFetcher[widget](testClient(srv.URL), "widgets", nil)
	if _, err := f.Query(context.Background(), testQuery("")); err != nil {
		t.Fatalf("seed query failed: %v", err)
	}

	failing.Store(true)
	_, err := f.Query(context.Background(), testQuery("other"))
	if err == nil {
		t.Fatal("expected error from failing server")
	}

	state := f.State()
	if state.Err == nil {
		t.Error("state err not set")
	}
	if len(state.Result.Items) != 1 {
		t.Errorf("previous result not retained: %d items", len(state.Result.Items))
	}
	if state.AuthRequired {
		t.Error("server error misclassified as auth required")
	}
}

func TestFetcherAuthRequired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
	}))
	defer srv.Close()

	f := NewFetcher[widget](testClient(srv.URL), "widgets", nil)
	_, err := f.Query(context.Background(), testQuery(""))
	if !api.IsAuthRequired(err) {
		t.Fatalf("err = %v, want auth-required", err)
	}
	if !f.State().AuthRequired {
		t.Error("state did not flag auth required")
	}
}

func TestFetcherRejectsNegativeCounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, nil, -1, 1)
	}))
	defer srv.Close()

	f := NewFetcher[widget](testClient(srv.URL), "widgets", nil)
	_, err := f.Query(context.Background(), testQuery(""))
	var ae *api.Error
	if !errors.As(err, &ae) || ae.Kind != api.KindDecode {
		t.Fatalf("err = %v, want malformed-response", err)
	}
}

// TestFetcherLastRequestWins pins the resolution order: the most
// recently initiated request owns the state, and the superseded one is
// discarded even though it completes later. The stale response is still
// cached under its own key.
func TestFetcherLastRequestWins(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search") == "slow" {
			arrived <- struct{}{}
			<-release
			writeEnvelope(w, []widget{{ID: 1, Title: "slow"}}, 1, 1)
			return
		}
		writeEnvelope(w, []widget{{ID: 2, Title: "fast"}}, 1, 1)
	}))
	defer srv.Close()

	f := NewFetcher[widget](testClient(srv.URL), "widgets", nil)
	slowQ := testQuery("slow")
	fastQ := testQuery("fast")

	var slowErr error
	done := make(chan struct{})
	go func() {
		_, slowErr = f.Query(context.Background(), slowQ)
		close(done)
	}()
	<-arrived

	if _, err := f.Query(context.Background(), fastQ); err != nil {
		t.Fatalf("fast query failed: %v", err)
	}
	close(release)
	<-done

	if !errors.Is(slowErr, ErrStaleResponse) {
		t.Fatalf("superseded query returned %v, want stale-response", slowErr)
	}
	state := f.State()
	if len(state.Result.Items) != 1 || state.Result.Items[0].Title != "fast" {
		t.Fatalf("state holds %+v, want the later request's result", state.Result.Items)
	}
	// The slow response is valid data for its own query key.
	if res, ok := f.Cache().Get(context.Background(), slowQ.Key()); !ok || res.Items[0].Title != "slow" {
		t.Errorf("stale response not cached under its own key: ok=%v res=%+v", ok, res)
	}
}
