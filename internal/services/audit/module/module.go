// Package module wires the audit trail into the API using modkit
package module

import (
	"context"
	"time"

	"addressbook/internal/modkit"
	"addressbook/internal/modkit/httpkit"
	"addressbook/internal/platform/logger"
	"addressbook/internal/services/audit/domain"
	audithttp "addressbook/internal/services/audit/http"
	auditrepo "addressbook/internal/services/audit/repo"
	"addressbook/internal/services/audit/service"
)

// Ports exposed by the audit module
type Ports struct {
	Query domain.QueryPort
}

// Module serves /audit and subscribes the audit service to the address bus
type Module struct {
	b     modkit.Built
	ports Ports
	svc   *service.Service
	sink  bool
}

// New constructs the audit module; it must be given WithPorts(Upstream{Bus})
func New(deps modkit.Deps, opts Options, mopts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("audit"), modkit.WithPrefix("/audit")}, mopts...)...)

	up, ok := b.Ports.(Upstream)
	if !ok || up.Bus == nil {
		panic("audit module: expected WithPorts(audit/module.Upstream) with a Bus")
	}

	log := logger.Named("audit")
	svcOpts := []service.Option{service.WithLogger(log)}

	sink := false
	if opts.ClickHouse && deps.CH != nil {
		events, err := auditrepo.NewCH(deps.CH)
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout(opts))
			err = events.EnsureSchema(ctx)
			cancel()
		}
		if err != nil {
			log.Warn().Err(err).Msg("clickhouse audit sink disabled")
		} else {
			svcOpts = append(svcOpts, service.WithSink(events), service.WithQuery(events))
			sink = true
		}
	}

	svc := service.New(svcOpts...)
	svc.Attach(up.Bus, opts.LogEvents)

	return &Module{b: b, ports: Ports{Query: svc}, svc: svc, sink: sink}
}

func schemaTimeout(o Options) time.Duration {
	if o.SchemaTimeout <= 0 {
		return 10 * time.Second
	}
	return o.SchemaTimeout
}

// SinkEnabled reports whether events are stored in clickhouse
func (m *Module) SinkEnabled() bool { return m.sink }

// Name implements modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(sub httpkit.Router) { audithttp.Register(sub, m.svc) })
}
