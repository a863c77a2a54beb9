// Package api composes the modules into the versioned HTTP API
package api

import (
	"addressbook/internal/modkit"
	"addressbook/internal/modkit/httpkit"
	"addressbook/internal/modkit/swaggerkit"
	"addressbook/internal/platform/config"
	"addressbook/internal/platform/logger"
	phttp "addressbook/internal/platform/net/http"
	"addressbook/internal/platform/store"

	addrmod "addressbook/internal/services/addresses/module"
	metahttp "addressbook/internal/services/api/meta/http"
	metamod "addressbook/internal/services/api/meta/module"
	auditmod "addressbook/internal/services/audit/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
	CORSOrigins    []string

	// Migrations is the schema version applied at startup, zero when unknown
	Migrations uint
}

// Mount builds every module and mounts them under /api/v1
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	// addresses owns the lifecycle bus, audit subscribes to it
	addresses := addrmod.New(deps, addrmod.FromConfig(deps.Cfg))
	audit := auditmod.New(deps, auditmod.FromConfig(deps.Cfg), modkit.WithPorts(auditmod.Upstream{
		Bus: modkit.MustPortsOf[addrmod.Ports](addresses).Bus,
	}))
	meta := metamod.New(deps, modkit.WithPorts(metamod.Upstream{
		Storage: func() metahttp.StorageResponse {
			return metahttp.StorageResponse{
				Addresses:  string(addresses.Backend()),
				AuditSink:  audit.SinkEnabled(),
				Migrations: opt.Migrations,
			}
		},
	}))

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.CORSOrigins...), func(api httpkit.Router) {
		for _, m := range []modkit.Module{meta, addresses, audit} {
			m.MountRoutes(api)
		}
	})
}
