// Package memory is the in-process ResourceRepository used by tests,
// the demo and deployments without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mehmetresatdemir/cryptonbets-admin/internal/store/repositories"
)

// searchFields are the document fields substring search runs over.
var searchFields = []string{
	"title", "name", "subject", "username", "email",
	"slug", "summary", "body", "content", "message",
}

// Store is a thread-safe in-memory ResourceRepository.
type Store struct {
	mu     sync.RWMutex
	data   map[string]map[int64]repositories.Document
	nextID map[string]int64
	now    func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		data:   map[string]map[int64]repositories.Document{},
		nextID: map[string]int64{},
		now:    time.Now,
	}
}

func (s *Store) List(_ context.Context, entity string, p repositories.ListParams) (repositories.ListPage, error) {
	p.Normalize()
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Stats cover the search+filter set without the status dimension,
	// so status tabs can show their counts.
	var prefiltered []repositories.Document
	for _, doc := range s.data[entity] {
		if matchSearch(doc, p.Search) && matchFilters(doc, p.Filters, "status") {
			prefiltered = append(prefiltered, doc)
		}
	}
	stats := map[string]int{}
	for _, doc := range prefiltered {
		if st, ok := doc["status"].(string); ok {
			stats[st]++
		}
	}

	var matched []repositories.Document
	if want, ok := p.Filters["status"]; ok && want != "" {
		for _, doc := range prefiltered {
			if fieldString(doc, "status") == want {
				matched = append(matched, doc)
			}
		}
	} else {
		matched = prefiltered
	}

	sortDocs(matched, p.SortBy, p.SortDir)

	total := len(matched)
	totalPages := (total + p.Limit - 1) / p.Limit
	start := (p.Page - 1) * p.Limit
	end := start + p.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]repositories.Document, 0, end-start)
	for _, doc := range matched[start:end] {
		items = append(items, cloneDoc(doc))
	}

	return repositories.ListPage{
		Items:      items,
		TotalItems: total,
		TotalPages: totalPages,
		Stats:      stats,
	}, nil
}

func (s *Store) Get(_ context.Context, entity string, id int64) (repositories.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.data[entity][id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneDoc(doc), nil
}

func (s *Store) Create(_ context.Context, entity string, data repositories.Document) (repositories.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data[entity] == nil {
		s.data[entity] = map[int64]repositories.Document{}
	}
	s.nextID[entity]++
	id := s.nextID[entity]

	doc := cloneDoc(data)
	now := s.now().UTC().Format(time.RFC3339)
	doc["id"] = id
	doc["created_at"] = now
	doc["updated_at"] = now
	s.data[entity][id] = doc
	return cloneDoc(doc), nil
}

func (s *Store) Update(_ context.Context, entity string, id int64, data repositories.Document) (repositories.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.data[entity][id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	for k, v := range data {
		if k == "id" || k == "created_at" || k == "updated_at" {
			continue
		}
		doc[k] = v
	}
	doc["updated_at"] = s.now().UTC().Format(time.RFC3339)
	return cloneDoc(doc), nil
}

func (s *Store) Delete(_ context.Context, entity string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[entity][id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.data[entity], id)
	return nil
}

func matchSearch(doc repositories.Document, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, f := range searchFields {
		if v, ok := doc[f].(string); ok && strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

func matchFilters(doc repositories.Document, filters map[string]string, skip string) bool {
	for k, want := range filters {
		if k == skip || want == "" {
			continue
		}
		if fieldString(doc, k) != want {
			return false
		}
	}
	return true
}

func fieldString(doc repositories.Document, key string) string {
	switch v := doc[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func sortDocs(docs []repositories.Document, sortBy, dir string) {
	asc := dir == "asc"
	sort.SliceStable(docs, func(i, j int) bool {
		less := docLess(docs[i], docs[j], sortBy)
		if asc {
			return less
		}
		return docLess(docs[j], docs[i], sortBy)
	})
}

// docLess compares two documents on one field, numbers before strings,
// falling back to id so ordering is total.
func docLess(a, b repositories.Document, key string) bool {
	an, aNum := numValue(a[key])
	bn, bNum := numValue(b[key])
	switch {
	case aNum && bNum:
		if an != bn {
			return an < bn
		}
	case aNum != bNum:
		return aNum
	default:
		as, bs := fieldString(a, key), fieldString(b, key)
		if as != bs {
			return as < bs
		}
	}
	ai, _ := numValue(a["id"])
	bi, _ := numValue(b["id"])
	return ai < bi
}

func numValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func cloneDoc(doc repositories.Document) repositories.Document {
	out := make(repositories.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
