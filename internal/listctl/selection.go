package listctl

import (
	"sort"
	"sync"
)

// SelectionSet holds the item ids checked for bulk operations. It only
// ever covers ids visible on the current page; the controller resets it
// on every query change.
type SelectionSet struct {
	mu  sync.Mutex
	ids map[int64]struct{}
}

// NewSelectionSet creates an empty selection.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{ids: map[int64]struct{}{}}
}

// Toggle flips the selection state of one id.
func (s *SelectionSet) Toggle(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
}

// SelectAll selects exactly the given ids (the current page's ids).
func (s *SelectionSet) SelectAll(ids []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// Remove drops the given ids from the selection if present.
func (s *SelectionSet) Remove(ids []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.ids, id)
	}
}

// Clear empties the selection.
func (s *SelectionSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = map[int64]struct{}{}
}

// Has reports whether id is selected.
func (s *SelectionSet) Has(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// IDs returns the selected ids in ascending order.
func (s *SelectionSet) IDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Count returns the number of selected ids.
func (s *SelectionSet) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}
