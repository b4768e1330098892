package listctl

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mehmetresatdemir/cryptonbets-admin/internal/api"
)

// Mutator performs create/update/delete/bulk operations for one entity.
// Each operation makes exactly one network call, produces exactly one
// notification, and on success invalidates every cached list query for
// the entity so the next read reflects the mutation. On failure local
// state is untouched so the operator can retry.
//
// An in-flight guard rejects duplicate submission while a mutation is
// pending; a rejected duplicate is not a completed operation and
// produces no notification.
type Mutator[T any] struct {
	client  *api.Client
	entity  string
	label   string // human name for notifications, e.g. "banner"
	cache   Cache[T]
	notify  Notifier
	pending atomic.Bool
}

// NewMutator creates a mutator sharing the fetcher's cache.
func NewMutator[T any](client *api.Client, entity, label string, cache Cache[T], notify Notifier) *Mutator[T] {
	if notify == nil {
		notify = LogNotifier{}
	}
	if label == "" {
		label = entity
	}
	return &Mutator[T]{client: client, entity: entity, label: label, cache: cache, notify: notify}
}

// Pending reports whether a mutation is in flight; hosts disable their
// submit controls while true.
func (m *Mutator[T]) Pending() bool {
	return m.pending.Load()
}

// Create posts a new record.
func (m *Mutator[T]) Create(ctx context.Context, payload any) (T, error) {
	var created T
	if !m.pending.CompareAndSwap(false, true) {
		return created, ErrMutationInFlight
	}
	defer m.pending.Store(false)

	err := m.client.PostJSON(ctx, "/api/admin/"+m.entity, payload, &created)
	if err != nil {
		m.notify.Error(fmt.Sprintf("failed to create %s: %s", m.label, errMessage(err)))
		return created, err
	}
	m.cache.Invalidate(ctx)
	m.notify.Success(fmt.Sprintf("%s created", m.label))
	return created, nil
}

// Update replaces an existing record.
func (m *Mutator[T]) Update(ctx context.Context, id int64, payload any) (T, error) {
	var updated T
	if !m.pending.CompareAndSwap(false, true) {
		return updated, ErrMutationInFlight
	}
	defer m.pending.Store(false)

	err := m.client.PutJSON(ctx, "/api/admin/"+m.entity+"/"+strconv.FormatInt(id, 10), payload, &updated)
	if err != nil {
		m.notify.Error(fmt.Sprintf("failed to update %s: %s", m.label, errMessage(err)))
		return updated, err
	}
	m.cache.Invalidate(ctx)
	m.notify.Success(fmt.Sprintf("%s updated", m.label))
	return updated, nil
}

// Delete removes a record. Deleting an id the server no longer has is a
// server-reported error, not a client-side no-op.
func (m *Mutator[T]) Delete(ctx context.Context, id int64) error {
	if !m.pending.CompareAndSwap(false, true) {
		return ErrMutationInFlight
	}
	defer m.pending.Store(false)

	err := m.client.Delete(ctx, "/api/admin/"+m.entity+"/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		m.notify.Error(fmt.Sprintf("failed to delete %s: %s", m.label, errMessage(err)))
		return err
	}
	m.cache.Invalidate(ctx)
	m.notify.Success(fmt.Sprintf("%s deleted", m.label))
	return nil
}

// BulkAction runs one action over the given ids. An empty id list is
// rejected before any network call. The result distinguishes full
// success from partial failure; the cache is invalidated whenever at
// least one id succeeded.
func (m *Mutator[T]) BulkAction(ctx context.Context, action string, ids []int64) (api.BulkResult, error) {
	var result api.BulkResult
	if len(ids) == 0 {
		return result, ErrEmptySelection
	}
	if !m.pending.CompareAndSwap(false, true) {
		return result, ErrMutationInFlight
	}
	defer m.pending.Store(false)

	req := api.BulkRequest{
		Action:  action,
		IDs:     ids,
		BatchID: uuid.NewString(),
	}
	log.Info().
		Str("entity", m.entity).
		Str("action", action).
		Str("batch_id", req.BatchID).
		Int("count", len(ids)).
		Msg("executing bulk action")

	err := m.client.PostJSON(ctx, "/api/admin/"+m.entity+"/bulk", req, &result)
	if err != nil {
		m.notify.Error(fmt.Sprintf("bulk %s failed: %s", action, errMessage(err)))
		return result, err
	}

	if len(result.Succeeded) > 0 {
		m.cache.Invalidate(ctx)
	}
	switch {
	case len(result.Failed) == 0:
		m.notify.Success(fmt.Sprintf("bulk %s completed for %d %ss", action, len(result.Succeeded), m.label))
	case len(result.Succeeded) == 0:
		m.notify.Error(fmt.Sprintf("bulk %s failed for all %d %ss", action, len(result.Failed), m.label))
	default:
		m.notify.Error(fmt.Sprintf("bulk %s partially completed: %d succeeded, %d failed",
			action, len(result.Succeeded), len(result.Failed)))
	}
	return result, nil
}

func errMessage(err error) string {
	var ae *api.Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}
