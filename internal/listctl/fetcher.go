package listctl

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mehmetresatdemir/cryptonbets-admin/internal/api"
)

// ListState is what the host UI renders: the active query, the latest
// applied result, and loading/error flags. While a new fetch is in
// flight the previous result stays visible with Loading set.
type ListState[T any] struct {
	Query        Query
	Result       ListResult[T]
	Loading      bool
	Err          error
	AuthRequired bool
}

// Fetcher resolves list queries against the admin API with a
// read-through cache and a last-request-wins guard: overlapping calls
// are safe from any number of goroutines, and only the most recently
// initiated call's outcome is applied to the state. Responses of
// superseded calls are discarded (returned with ErrStaleResponse),
// though a completed fetch is still written to the cache since it is
// valid data for its own key.
type Fetcher[T any] struct {
	client *api.Client
	entity string
	cache  Cache[T]

	mu    sync.Mutex
	seq   uint64
	state ListState[T]
}

// NewFetcher creates a fetcher for one entity endpoint.
func NewFetcher[T any](client *api.Client, entity string, cache Cache[T]) *Fetcher[T] {
	if cache == nil {
		cache = NewMemoryCache[T]()
	}
	return &Fetcher[T]{client: client, entity: entity, cache: cache}
}

// Cache returns the result cache, for sharing with the mutator.
func (f *Fetcher[T]) Cache() Cache[T] {
	return f.cache
}

// State returns a snapshot of the current list state.
func (f *Fetcher[T]) State() ListState[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Query resolves q, from cache when possible. Blocking; the caller may
// run it in a goroutine and rely on the staleness guard.
func (f *Fetcher[T]) Query(ctx context.Context, q Query) (ListResult[T], error) {
	key := q.Key()
	token := f.begin()

	if res, ok := f.cache.Get(ctx, key); ok {
		return f.apply(token, q, res, nil)
	}

	var env api.ListEnvelope[T]
	err := f.client.GetJSON(ctx, "/api/admin/"+f.entity, q.Values(), &env)
	if err != nil {
		var zero ListResult[T]
		return f.apply(token, q, zero, err)
	}
	if env.Pagination.TotalItems < 0 || env.Pagination.TotalPages < 0 {
		var zero ListResult[T]
		return f.apply(token, q, zero, &api.Error{
			Kind:    api.KindDecode,
			Message: "pagination counts are negative",
		})
	}

	res := ListResult[T]{
		Items:      env.Data,
		TotalItems: env.Pagination.TotalItems,
		TotalPages: env.Pagination.TotalPages,
		Stats:      env.Stats,
	}
	f.cache.Set(ctx, key, res)
	return f.apply(token, q, res, nil)
}

// begin issues a new request token and flags the state as loading.
func (f *Fetcher[T]) begin() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.state.Loading = true
	return f.seq
}

// apply installs the outcome of the request identified by token unless
// a later request has been issued since.
func (f *Fetcher[T]) apply(token uint64, q Query, res ListResult[T], err error) (ListResult[T], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if token != f.seq {
		log.Debug().
			Str("entity", f.entity).
			Str("key", q.Key()).
			Msg("discarding stale list response")
		return res, ErrStaleResponse
	}

	f.state.Query = q
	f.state.Loading = false
	f.state.Err = err
	f.state.AuthRequired = api.IsAuthRequired(err)
	if err == nil {
		// On failure the previous result stays visible for retry.
		f.state.Result = res
	}
	return res, err
}
