package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/parishkit/parishkit/internal/repository"
)

// colsFunc maps a service input onto the column assignments persisted for it.
type colsFunc[In any] func(in In) repository.Cols

// crud implements the operation set every resource service shares. Concrete
// services embed it and only supply their input-to-columns mapping; no
// per-entity soft-delete or pagination code exists anywhere above the
// repository.
type crud[T any, In any] struct {
	repo *repository.Repo[T]
	cols colsFunc[In]
}

func newCrud[T any, In any](repo *repository.Repo[T], cols colsFunc[In]) crud[T, In] {
	return crud[T, In]{repo: repo, cols: cols}
}

// List returns one page of visible entities matching the filter.
func (s crud[T, In]) List(ctx context.Context, params repository.PageParams, filter repository.Filter) (repository.Page[T], error) {
	return s.repo.Paginate(ctx, params, filter)
}

// ListDeleted returns one page of soft-deleted entities: the trash view.
// The explicit deleted condition suppresses the default visibility rule.
func (s crud[T, In]) ListDeleted(ctx context.Context, params repository.PageParams, filter repository.Filter) (repository.Page[T], error) {
	return s.repo.Paginate(ctx, params, filter.AndNotNull("deleted"))
}

// Get returns a visible entity by id.
func (s crud[T, In]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	return s.repo.FindByID(ctx, id)
}

// Create persists a new entity and returns it.
func (s crud[T, In]) Create(ctx context.Context, in In) (T, error) {
	return s.repo.Create(ctx, s.cols(in))
}

// Update mutates a visible entity in place and returns it.
func (s crud[T, In]) Update(ctx context.Context, id uuid.UUID, in In) (T, error) {
	// The visibility check runs first so updating a soft-deleted entity
	// reports not-found instead of silently resurrecting it.
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		var zero T
		return zero, err
	}
	return s.repo.Update(ctx, repository.Where("id", id), s.cols(in))
}

// Delete soft-deletes a visible entity and returns its final state.
func (s crud[T, In]) Delete(ctx context.Context, id uuid.UUID) (T, error) {
	// Look up through the scoped view first: deleting an entity that is
	// already in the trash is a not-found, not a re-stamp.
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		var zero T
		return zero, err
	}
	return s.repo.Delete(ctx, repository.Where("id", id))
}

// Restore brings soft-deleted entities back by id. Idempotent: restoring an
// active id leaves it active.
func (s crud[T, In]) Restore(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return s.repo.Restore(ctx, ids)
}

// HardRemove physically and irreversibly deletes entities by id.
func (s crud[T, In]) HardRemove(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return s.repo.HardRemove(ctx, ids)
}
