// Package service contains the address workflows: persist first, then notify
package service

import (
	"context"
	stderrs "errors"
	"time"

	"addressbook/internal/core/eventbus"
	"addressbook/internal/core/paging"
	perr "addressbook/internal/platform/errors"
	"addressbook/internal/platform/net/http/bind"
	"addressbook/internal/services/addresses/domain"
	"addressbook/internal/services/addresses/repo"
)

// Service defines the service contract for addresses
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo repo.Repo
	bus  *domain.Bus
	now  func() time.Time
}

// Option tweaks a Svc at construction
type Option func(*Svc)

// WithClock overrides the time source used for CreatedAt and UpdatedAt
func WithClock(now func() time.Time) Option {
	return func(s *Svc) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a new addresses service
func New(r repo.Repo, bus *domain.Bus, opts ...Option) *Svc {
	if r == nil {
		panic("addresses.Service requires a non nil Repo")
	}
	if bus == nil {
		panic("addresses.Service requires a non nil event bus")
	}
	s := &Svc{Repo: r, bus: bus, now: func() time.Time { return time.Now().UTC() }}
	for _, o := range opts {
		o(s)
	}
	return s
}

var _ Service = (*Svc)(nil)

// Get returns one address by id
func (s *Svc) Get(ctx context.Context, id int64) (domain.AddressDTO, error) {
	a, err := s.Repo.Get(ctx, id)
	if err != nil {
		return domain.AddressDTO{}, err
	}
	return domain.ToDTO(a), nil
}

// All returns every live address in default order
func (s *Svc) All(ctx context.Context) ([]domain.AddressDTO, error) {
	rows, err := s.Repo.All(ctx)
	if err != nil {
		return nil, err
	}
	return domain.ToDTOs(rows), nil
}

// Query runs a paged query
func (s *Svc) Query(ctx context.Context, in domain.QueryInput) (paging.Result[domain.AddressDTO], error) {
	req := in.Request()
	if err := req.Validate(); err != nil {
		return paging.Result[domain.AddressDTO]{}, err
	}
	rows, total, err := s.Repo.List(ctx, req)
	if err != nil {
		return paging.Result[domain.AddressDTO]{}, err
	}
	return paging.Result[domain.AddressDTO]{
		Items:      domain.ToDTOs(rows),
		TotalCount: total,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}, nil
}

// Create stores a new address and publishes EventCreated
// a notify failure still returns the committed address alongside the error
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.AddressDTO, error) {
	if err := bind.Validate(in); err != nil {
		return domain.AddressDTO{}, err
	}
	a := in.Address()
	a.CreatedAt = s.now()

	saved, err := s.Repo.Create(ctx, a)
	if err != nil {
		return domain.AddressDTO{}, err
	}
	dto := domain.ToDTO(saved)
	return dto, s.notify(ctx, domain.EventCreated, saved.ID)
}

// Update overwrites an address and publishes EventUpdated
func (s *Svc) Update(ctx context.Context, id int64, in domain.UpdateInput) (domain.AddressDTO, error) {
	if err := bind.Validate(in); err != nil {
		return domain.AddressDTO{}, err
	}
	cur, err := s.Repo.Get(ctx, id)
	if err != nil {
		return domain.AddressDTO{}, err
	}
	next := in.Apply(cur)
	next.Touch(s.now())

	saved, err := s.Repo.Update(ctx, next)
	if err != nil {
		return domain.AddressDTO{}, err
	}
	dto := domain.ToDTO(saved)
	return dto, s.notify(ctx, domain.EventUpdated, saved.ID)
}

// Delete soft deletes an address and publishes EventDeleted
func (s *Svc) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id, s.now()); err != nil {
		return err
	}
	return s.notify(ctx, domain.EventDeleted, id)
}

func (s *Svc) notify(ctx context.Context, kind domain.EventKind, id int64) error {
	err := s.bus.Publish(ctx, domain.Event{Kind: kind, AddressID: id, OccurredAt: s.now()})
	if err != nil {
		return perr.WithOp(perr.Wrapf(err, perr.ErrorCodeUnknown, "notify %s for address %d", kind, id), OpNotify)
	}
	return nil
}

// OpNotify tags errors raised after a successful commit while notifying subscribers
const OpNotify = "notify"

// IsNotifyError reports whether err only concerns subscribers, the write itself committed
func IsNotifyError(err error) bool {
	var pe *eventbus.PublishError
	if !stderrs.As(err, &pe) {
		return false
	}
	e, ok := perr.As(err)
	return ok && e.Op() == OpNotify
}
