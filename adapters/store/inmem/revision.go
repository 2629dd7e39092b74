package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/slipway-dev/slipway/domain"
	"github.com/slipway-dev/slipway/domain/model"
)

// RevisionRepository is a thread-safe in-memory implementation.
type RevisionRepository struct {
	mu    sync.RWMutex
	items map[string]*model.Revision
}

func NewRevisionRepository() *RevisionRepository {
	return &RevisionRepository{items: make(map[string]*model.Revision)}
}

func (r *RevisionRepository) Create(_ context.Context, rev *model.Revision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rev.ID == "" {
		rev.ID = "rev-" + uuid.NewString()
	}
	now := time.Now().UTC()
	if rev.CreatedAt.IsZero() {
		rev.CreatedAt = now
	}
	rev.UpdatedAt = now
	cp := *rev
	r.items[rev.ID] = &cp
	return nil
}

func (r *RevisionRepository) Get(_ context.Context, id string) (*model.Revision, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return nil, model.ErrRevisionNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *RevisionRepository) Latest(_ context.Context) (*model.Revision, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latestLocked(func(*model.Revision) bool { return true })
}

func (r *RevisionRepository) LatestApplied(_ context.Context) (*model.Revision, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latestLocked(func(rev *model.Revision) bool { return rev.Applied })
}

// latestLocked returns a copy of the newest revision matching keep.
// Caller must hold at least a read lock.
func (r *RevisionRepository) latestLocked(keep func(*model.Revision) bool) (*model.Revision, error) {
	var best *model.Revision
	for _, v := range r.items {
		if !keep(v) {
			continue
		}
		if best == nil || v.CreatedAt.After(best.CreatedAt) ||
			(v.CreatedAt.Equal(best.CreatedAt) && v.ID > best.ID) {
			best = v
		}
	}
	if best == nil {
		return nil, model.ErrRevisionNotFound
	}
	cp := *best
	return &cp, nil
}

func (r *RevisionRepository) List(_ context.Context) ([]*model.Revision, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Revision, 0, len(r.items))
	for _, v := range r.items {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *RevisionRepository) MarkApplied(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items[id]
	if !ok {
		return model.ErrRevisionNotFound
	}
	v.Applied = true
	v.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *RevisionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return model.ErrRevisionNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.RevisionRepository = (*RevisionRepository)(nil)
