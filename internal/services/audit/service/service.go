// Package service subscribes audit consumers to address lifecycle events
package service

import (
	"context"
	"time"

	perr "addressbook/internal/platform/errors"
	"addressbook/internal/platform/logger"
	addrdomain "addressbook/internal/services/addresses/domain"
	"addressbook/internal/services/audit/domain"

	"github.com/google/uuid"
)

// Kinds lists every lifecycle kind the audit trail follows
var Kinds = []addrdomain.EventKind{
	addrdomain.EventCreated,
	addrdomain.EventUpdated,
	addrdomain.EventDeleted,
}

// Service turns lifecycle events into log lines and optional sink records
type Service struct {
	sink  domain.SinkPort
	query domain.QueryPort
	log   *logger.Logger
	newID func() uuid.UUID
	now   func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithSink stores every event through s
func WithSink(s domain.SinkPort) Option { return func(x *Service) { x.sink = s } }

// WithQuery enables Recent reads through q
func WithQuery(q domain.QueryPort) Option { return func(x *Service) { x.query = q } }

// WithLogger overrides the audit logger
func WithLogger(l *logger.Logger) Option { return func(x *Service) { x.log = l } }

// WithIDs overrides event id generation
func WithIDs(fn func() uuid.UUID) Option { return func(x *Service) { x.newID = fn } }

// WithClock overrides the clock used for events without a timestamp
func WithClock(fn func() time.Time) Option { return func(x *Service) { x.now = fn } }

// New constructs the audit service
func New(opts ...Option) *Service {
	s := &Service{newID: uuid.New, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = logger.Named("audit")
	}
	return s
}

// Attach subscribes the log handler and, when a sink is set, the sink handler to every kind
func (s *Service) Attach(bus *addrdomain.Bus, logEvents bool) {
	for _, k := range Kinds {
		if logEvents {
			bus.Subscribe(k, s.LogEvent)
		}
		if s.sink != nil {
			bus.Subscribe(k, s.Store)
		}
	}
}

// LogEvent writes one structured line per event
func (s *Service) LogEvent(_ context.Context, ev addrdomain.Event) error {
	s.log.Info().
		Str("event", ev.Kind.String()).
		Int64("address_id", ev.AddressID).
		Time("occurred_at", s.at(ev)).
		Msg("address lifecycle")
	return nil
}

// Store converts the event into a record and hands it to the sink
func (s *Service) Store(ctx context.Context, ev addrdomain.Event) error {
	if s.sink == nil {
		return perr.Unavailablef("audit sink disabled")
	}
	return s.sink.Write(ctx, s.Record(ev))
}

// Record builds the audit record for ev with a fresh id
func (s *Service) Record(ev addrdomain.Event) domain.Record {
	return domain.Record{
		EventID:    s.newID(),
		Kind:       ev.Kind.String(),
		AddressID:  ev.AddressID,
		OccurredAt: s.at(ev).UTC(),
	}
}

// Recent returns the newest records for one address
// limit <= 0 means DefaultLimit, anything above MaxLimit is capped
func (s *Service) Recent(ctx context.Context, addressID int64, limit int) ([]domain.Record, error) {
	if s.query == nil {
		return nil, perr.Unavailablef("audit trail storage disabled")
	}
	if addressID <= 0 {
		return nil, perr.WithField(perr.InvalidArgf("address id must be positive"), "id")
	}
	switch {
	case limit <= 0:
		limit = domain.DefaultLimit
	case limit > domain.MaxLimit:
		limit = domain.MaxLimit
	}
	return s.query.Recent(ctx, addressID, limit)
}

func (s *Service) at(ev addrdomain.Event) time.Time {
	if ev.OccurredAt.IsZero() {
		return s.now()
	}
	return ev.OccurredAt
}
