// Package module wires addresses into the API using modkit
package module

import (
	"fmt"

	"addressbook/internal/modkit"
	"addressbook/internal/modkit/httpkit"
	"addressbook/internal/platform/net/middleware"
	"addressbook/internal/services/addresses/domain"
	addrhttp "addressbook/internal/services/addresses/http"
	addrrepo "addressbook/internal/services/addresses/repo"
	addrsvc "addressbook/internal/services/addresses/service"
)

// Module serves /addresses and owns the lifecycle bus
type Module struct {
	b       modkit.Built
	ports   Ports
	backend Backend
}

// New builds the addresses module; other modules subscribe through Ports().Bus
func New(deps modkit.Deps, opts Options, mopts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("addresses"),
		modkit.WithPrefix("/addresses"),
		modkit.WithMiddlewares(middleware.JSONOnly()),
	}, mopts...)...)

	backend, r := selectRepo(deps, opts.Backend)
	bus := domain.NewBus()
	return &Module{
		b:       b,
		ports:   Ports{Service: addrsvc.New(r, bus), Bus: bus},
		backend: backend,
	}
}

// selectRepo resolves the backend against the available deps
func selectRepo(deps modkit.Deps, want Backend) (Backend, addrrepo.Repo) {
	switch want {
	case BackendMemory:
		return BackendMemory, addrrepo.NewMemory()
	case BackendPostgres:
		if deps.PG == nil {
			panic("addresses: postgres backend requested without a PG handle")
		}
		return BackendPostgres, addrrepo.NewPG().Bind(deps.PG)
	case BackendAuto, "":
		if deps.PG != nil {
			return BackendPostgres, addrrepo.NewPG().Bind(deps.PG)
		}
		return BackendMemory, addrrepo.NewMemory()
	default:
		panic(fmt.Sprintf("addresses: unknown backend %q", want))
	}
}

// Backend reports the storage engine in use
func (m *Module) Backend() Backend { return m.backend }

// Name implements modkit.Module
func (m *Module) Name() string { return m.b.Name }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(sub httpkit.Router) { addrhttp.Register(sub, m.ports.Service) })
}
