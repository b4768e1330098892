package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mehmetresatdemir/cryptonbets-admin/internal/store/repositories"
)

// searchFields mirrors the memory store's substring search surface.
var searchFields = []string{
	"title", "name", "subject", "username", "email",
	"slug", "summary", "body", "content", "message",
}

// fieldPattern guards JSON keys interpolated into SQL. Values are
// always bound parameters; only sanitized keys are inlined.
var fieldPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// resourceRepository implements ResourceRepository over one JSONB
// document table: the reference backend is entity-generic by design.
type resourceRepository struct {
	db *pgxpool.Pool
}

// NewResourceRepository creates a Postgres-backed resource repository.
func NewResourceRepository(db *pgxpool.Pool) repositories.ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) List(ctx context.Context, entity string, p repositories.ListParams) (repositories.ListPage, error) {
	p.Normalize()
	var page repositories.ListPage

	where, args := r.buildWhere(entity, p, false)
	orderBy := r.orderClause(p.SortBy, p.SortDir)

	countSQL := "SELECT count(*) FROM admin_resources WHERE " + where
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&page.TotalItems); err != nil {
		return page, fmt.Errorf("count resources: %w", err)
	}
	page.TotalPages = (page.TotalItems + p.Limit - 1) / p.Limit

	listSQL := fmt.Sprintf(`
		SELECT id, data, created_at, updated_at
		FROM admin_resources
		WHERE %s
		%s
		LIMIT %d OFFSET %d`, where, orderBy, p.Limit, (p.Page-1)*p.Limit)
	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return page, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	page.Items = []repositories.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return page, err
		}
		page.Items = append(page.Items, doc)
	}
	if err := rows.Err(); err != nil {
		return page, err
	}

	stats, err := r.statsByStatus(ctx, entity, p)
	if err != nil {
		return page, err
	}
	page.Stats = stats
	return page, nil
}

func (r *resourceRepository) Get(ctx context.Context, entity string, id int64) (repositories.Document, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, data, created_at, updated_at
		FROM admin_resources
		WHERE entity = $1 AND id = $2`, entity, id)
	doc, err := scanDocument(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	return doc, err
}

func (r *resourceRepository) Create(ctx context.Context, entity string, data repositories.Document) (repositories.Document, error) {
	raw, err := json.Marshal(stripEnvelope(data))
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO admin_resources (entity, data)
		VALUES ($1, $2)
		RETURNING id, data, created_at, updated_at`, entity, raw)
	return scanDocument(row)
}

func (r *resourceRepository) Update(ctx context.Context, entity string, id int64, data repositories.Document) (repositories.Document, error) {
	raw, err := json.Marshal(stripEnvelope(data))
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRow(ctx, `
		UPDATE admin_resources
		SET data = data || $3, updated_at = now()
		WHERE entity = $1 AND id = $2
		RETURNING id, data, created_at, updated_at`, entity, id, raw)
	doc, err := scanDocument(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	return doc, err
}

func (r *resourceRepository) Delete(ctx context.Context, entity string, id int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM admin_resources
		WHERE entity = $1 AND id = $2`, entity, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// buildWhere assembles the WHERE clause. With skipStatus the status
// filter is left out, which the stats query uses so every status keeps
// its count.
func (r *resourceRepository) buildWhere(entity string, p repositories.ListParams, skipStatus bool) (string, []any) {
	clauses := []string{"entity = $1"}
	args := []any{entity}

	if p.Search != "" {
		args = append(args, "%"+p.Search+"%")
		n := len(args)
		var ors []string
		for _, f := range searchFields {
			ors = append(ors, fmt.Sprintf("data->>'%s' ILIKE $%d", f, n))
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}

	for k, v := range p.Filters {
		if v == "" || !fieldPattern.MatchString(k) {
			continue
		}
		if skipStatus && k == "status" {
			continue
		}
		args = append(args, v)
		clauses = append(clauses, fmt.Sprintf("data->>'%s' = $%d", k, len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

func (r *resourceRepository) orderClause(sortBy, dir string) string {
	direction := "DESC"
	if dir == "asc" {
		direction = "ASC"
	}
	switch sortBy {
	case "id", "created_at", "updated_at":
		return fmt.Sprintf("ORDER BY %s %s", sortBy, direction)
	default:
		if !fieldPattern.MatchString(sortBy) {
			return "ORDER BY id " + direction
		}
		return fmt.Sprintf("ORDER BY data->>'%s' %s, id %s", sortBy, direction, direction)
	}
}

func (r *resourceRepository) statsByStatus(ctx context.Context, entity string, p repositories.ListParams) (map[string]int, error) {
	where, args := r.buildWhere(entity, p, true)
	rows, err := r.db.Query(ctx, `
		SELECT coalesce(data->>'status', ''), count(*)
		FROM admin_resources
		WHERE `+where+`
		GROUP BY 1`, args...)
	if err != nil {
		return nil, fmt.Errorf("resource stats: %w", err)
	}
	defer rows.Close()

	stats := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		if status != "" {
			stats[status] = count
		}
	}
	return stats, rows.Err()
}

func scanDocument(row pgx.Row) (repositories.Document, error) {
	var id int64
	var raw []byte
	var createdAt, updatedAt time.Time

	if err := row.Scan(&id, &raw, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	doc := repositories.Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	doc["id"] = id
	doc["created_at"] = createdAt.UTC().Format(time.RFC3339)
	doc["updated_at"] = updatedAt.UTC().Format(time.RFC3339)
	return doc, nil
}

// stripEnvelope drops the fields the table owns before storing data.
func stripEnvelope(data repositories.Document) repositories.Document {
	out := make(repositories.Document, len(data))
	for k, v := range data {
		if k == "id" || k == "created_at" || k == "updated_at" {
			continue
		}
		out[k] = v
	}
	return out
}
