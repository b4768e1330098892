package listctl

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Query is the combined search/filter/sort/pagination state describing
// one page of data. Every field participates in the cache key.
type Query struct {
	Search   string
	Filters  map[string]string
	SortBy   string
	SortDir  SortDirection
	Page     int
	PageSize int
}

// Key returns a canonical cache key covering every query field.
// Filter keys are sorted so equal queries always produce equal keys.
func (q Query) Key() string {
	var b strings.Builder
	b.WriteString("q=")
	b.WriteString(q.Search)
	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("&f:")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(q.Filters[k])
	}
	b.WriteString("&sort=")
	b.WriteString(q.SortBy)
	b.WriteString(":")
	b.WriteString(string(q.SortDir))
	b.WriteString("&page=")
	b.WriteString(strconv.Itoa(q.Page))
	b.WriteString("&limit=")
	b.WriteString(strconv.Itoa(q.PageSize))
	return b.String()
}

// Values encodes the query as request parameters for the admin API.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.PageSize))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	for k, fv := range q.Filters {
		if fv != "" {
			v.Set(k, fv)
		}
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
		v.Set("sortOrder", string(q.SortDir))
	}
	return v
}

func (q Query) clone() Query {
	out := q
	out.Filters = make(map[string]string, len(q.Filters))
	for k, v := range q.Filters {
		out.Filters[k] = v
	}
	return out
}

// QueryState is a pure container for the active Query. Changing any
// field resets the page to 1, except when the change is itself a page
// change.
type QueryState struct {
	mu sync.Mutex
	q  Query
}

// NewQueryState creates query state starting at page 1.
func NewQueryState(pageSize int) *QueryState {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &QueryState{q: Query{
		Filters:  map[string]string{},
		SortDir:  SortDesc,
		Page:     1,
		PageSize: pageSize,
	}}
}

// Snapshot returns a copy of the current query.
func (s *QueryState) Snapshot() Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q.clone()
}

// SetSearch replaces the search term. Empty matches all.
func (s *QueryState) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.Search = term
	s.q.Page = 1
}

// SetFilter sets one filter dimension. Unknown values are the UI
// layer's problem, not validated here.
func (s *QueryState) SetFilter(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.Filters[key] = value
	s.q.Page = 1
}

// ClearFilter removes one filter dimension.
func (s *QueryState) ClearFilter(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.q.Filters, key)
	s.q.Page = 1
}

// SetSort sets the sort field and direction.
func (s *QueryState) SetSort(field string, dir SortDirection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.SortBy = field
	s.q.SortDir = dir
	s.q.Page = 1
}

// SetPage moves to another page. The only setter that keeps the page.
func (s *QueryState) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page < 1 {
		page = 1
	}
	s.q.Page = page
}

// SetPageSize changes the page size and resets to page 1.
func (s *QueryState) SetPageSize(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if size <= 0 {
		return
	}
	s.q.PageSize = size
	s.q.Page = 1
}
