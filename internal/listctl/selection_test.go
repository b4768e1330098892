package listctl

import (
	"reflect"
	"testing"
)

func TestSelectionToggle(t *testing.T) {
	s := NewSelectionSet()
	s.Toggle(7)
	if !s.Has(7) {
		t.Fatal("7 should be selected after toggle")
	}
	s.Toggle(7)
	if s.Has(7) {
		t.Fatal("7 should be deselected after second toggle")
	}
	if s.Count() != 0 {
		t.Fatalf("count = %d, want 0", s.Count())
	}
}

func TestSelectionSelectAllReplaces(t *testing.T) {
	s := NewSelectionSet()
	s.Toggle(99)
	s.SelectAll([]int64{1, 2, 3})
	if s.Has(99) {
		t.Fatal("select-all should replace the prior selection")
	}
	if got := s.IDs(); !reflect.DeepEqual(got, []int64{1, 2, 3}) {
		t.Fatalf("ids = %v, want [1 2 3]", got)
	}
}

func TestSelectionRemove(t *testing.T) {
	s := NewSelectionSet()
	s.SelectAll([]int64{1, 2, 3, 4})
	s.Remove([]int64{2, 4, 100})
	if got := s.IDs(); !reflect.DeepEqual(got, []int64{1, 3}) {
		t.Fatalf("ids = %v, want [1 3]", got)
	}
}

func TestSelectionIDsSorted(t *testing.T) {
	s := NewSelectionSet()
	for _, id := range []int64{42, 7, 19, 3} {
		s.Toggle(id)
	}
	if got := s.IDs(); !reflect.DeepEqual(got, []int64{3, 7, 19, 42}) {
		t.Fatalf("ids = %v, want ascending order", got)
	}
}

func TestSelectionClear(t *testing.T) {
	s := NewSelectionSet()
	s.SelectAll([]int64{1, 2, 3})
	s.Clear()
	if s.Count() != 0 {
		t.Fatalf("count = %d after clear, want 0", s.Count())
	}
	if got := s.IDs(); len(got) != 0 {
		t.Fatalf("ids = %v after clear, want empty", got)
	}
}
