package repositories

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an id does not exist for the entity.
// Deleting or updating a missing id is an error the API reports, never
// a silent no-op.
var ErrNotFound = errors.New("record not found")

// Document is a stored admin record. The reference backend is
// entity-generic: records are JSON documents and the envelope fields
// (id, created_at, updated_at) are injected by the repository.
type Document = map[string]any

// ListParams is the repository-side view of a list query.
type ListParams struct {
	Page    int
	Limit   int
	Search  string
	Filters map[string]string // equality on document fields, e.g. status
	SortBy  string
	SortDir string // "asc" or "desc"
}

// Normalize applies defaults and limits to the parameters.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 200 {
		p.Limit = 200
	}
	if p.SortBy == "" {
		p.SortBy = "id"
	}
	if p.SortDir != "asc" {
		p.SortDir = "desc"
	}
}

// ListPage is one page of documents plus aggregates over the full
// filtered set.
type ListPage struct {
	Items      []Document
	TotalItems int
	TotalPages int
	Stats      map[string]int // counts by status
}

// ResourceRepository defines the contract for admin resource data access.
type ResourceRepository interface {
	List(ctx context.Context, entity string, p ListParams) (ListPage, error)
	Get(ctx context.Context, entity string, id int64) (Document, error)
	Create(ctx context.Context, entity string, data Document) (Document, error)
	Update(ctx context.Context, entity string, id int64, data Document) (Document, error)
	Delete(ctx context.Context, entity string, id int64) error
}
