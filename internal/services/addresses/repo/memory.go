package repo

import (
	"context"
	"slices"
	"sync"
	"time"

	"addressbook/internal/core/paging"
	perr "addressbook/internal/platform/errors"
	"addressbook/internal/services/addresses/domain"
)

// Memory is an in-process Repo
// rows live in insertion order; every read hands out copies
type Memory struct {
	mu     sync.RWMutex
	rows   []domain.Address
	byID   map[int64]int
	nextID int64
}

var _ Repo = (*Memory)(nil)

// NewMemory returns an empty in-process repository
func NewMemory() *Memory {
	return &Memory{byID: make(map[int64]int), nextID: 1}
}

// Get implements Repo
func (m *Memory) Get(_ context.Context, id int64) (domain.Address, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.visible(id)
	if !ok {
		return domain.Address{}, perr.NotFoundf("address %d not found", id)
	}
	return clone(m.rows[i]), nil
}

// All implements Repo
func (m *Memory) All(ctx context.Context) ([]domain.Address, error) {
	items, _, err := m.query(ctx, "", paging.SortDefault, paging.Asc)
	return items, err
}

// List implements Repo
func (m *Memory) List(ctx context.Context, req paging.Request) ([]domain.Address, int, error) {
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}
	matched, total, err := m.query(ctx, req.Filter, req.Key(), req.Direction())
	if err != nil {
		return nil, 0, err
	}
	lo, hi := req.Window(total)
	return matched[lo:hi:hi], total, nil
}

// query snapshots, filters and sorts the visible rows
func (m *Memory) query(ctx context.Context, filter string, key paging.SortKey, dir paging.Direction) ([]domain.Address, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	m.mu.RLock()
	out := make([]domain.Address, 0, len(m.rows))
	for _, a := range m.rows {
		if a.IsDeleted || !a.Matches(filter) {
			continue
		}
		out = append(out, clone(a))
	}
	m.mu.RUnlock()

	slices.SortFunc(out, compareFunc(key, dir))
	return out, len(out), nil
}

// Create implements Repo
func (m *Memory) Create(_ context.Context, a domain.Address) (domain.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkEmail(a.Email, 0); err != nil {
		return domain.Address{}, err
	}
	a = clone(a)
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	a.ID = m.nextID
	a.IsDeleted = false
	a.UpdatedAt = nil
	m.nextID++

	m.byID[a.ID] = len(m.rows)
	m.rows = append(m.rows, a)
	return clone(a), nil
}

// Update implements Repo
func (m *Memory) Update(_ context.Context, a domain.Address) (domain.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.visible(a.ID)
	if !ok {
		return domain.Address{}, perr.NotFoundf("address %d not found", a.ID)
	}
	if err := m.checkEmail(a.Email, a.ID); err != nil {
		return domain.Address{}, err
	}

	cur := m.rows[i]
	next := clone(a)
	next.CreatedAt = cur.CreatedAt
	next.IsDeleted = false
	if next.UpdatedAt == nil {
		next.Touch(time.Now().UTC())
	}
	m.rows[i] = next
	return clone(next), nil
}

// Delete implements Repo
func (m *Memory) Delete(_ context.Context, id int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.visible(id)
	if !ok {
		return perr.NotFoundf("address %d not found", id)
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}
	m.rows[i].IsDeleted = true
	m.rows[i].Touch(at)
	return nil
}

// visible returns the slice index of a non deleted row; callers hold mu
func (m *Memory) visible(id int64) (int, bool) {
	i, ok := m.byID[id]
	if !ok || m.rows[i].IsDeleted {
		return 0, false
	}
	return i, true
}

// checkEmail enforces uniqueness of non nil emails among visible rows; callers hold mu
func (m *Memory) checkEmail(email *string, self int64) error {
	if email == nil {
		return nil
	}
	for _, r := range m.rows {
		if r.IsDeleted || r.ID == self || r.Email == nil {
			continue
		}
		if *r.Email == *email {
			return perr.WithField(perr.DuplicateKeyf("email %q already in use", *email), "email")
		}
	}
	return nil
}

// clone copies the pointer fields so callers never share memory with the store
func clone(a domain.Address) domain.Address {
	if a.Email != nil {
		v := *a.Email
		a.Email = &v
	}
	if a.Phone != nil {
		v := *a.Phone
		a.Phone = &v
	}
	if a.UpdatedAt != nil {
		v := *a.UpdatedAt
		a.UpdatedAt = &v
	}
	return a
}
