// Package module mounts the meta endpoints
package module

import (
	"context"
	"time"

	"addressbook/internal/core/version"
	"addressbook/internal/modkit"
	"addressbook/internal/modkit/httpkit"

	metahttp "addressbook/internal/services/api/meta/http"
)

// Upstream carries reporting hooks from the modules meta describes
type Upstream struct {
	Storage func() metahttp.StorageResponse
}

// Module serves /meta
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

type pinger interface {
	Ping(context.Context) error
}

// New builds the meta module; readiness pings whichever of deps.PG and deps.CH are set
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)

	d := metahttp.Deps{
		ServiceName: version.Info().Service,
		StartedAt:   time.Now(),
		Backends:    []metahttp.Dependency{backend("pg", deps.PG), backend("ch", deps.CH)},
	}
	if up, ok := b.Ports.(Upstream); ok {
		d.Storage = up.Storage
	}
	return &Module{b: b, deps: d}
}

func backend(name string, h any) metahttp.Dependency {
	d := metahttp.Dependency{Name: name}
	if p, ok := h.(pinger); ok {
		d.Ping = p.Ping
	}
	return d
}

// Name implements modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Ports implements modkit.Module; meta exports nothing
func (m *Module) Ports() any { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(sub httpkit.Router) { metahttp.Register(sub, m.deps) })
}
