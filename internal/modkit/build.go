package modkit

import (
	"fmt"
	"net/http"
	"strings"

	"addressbook/internal/modkit/httpkit"
)

// Built is the resolved option set a module keeps
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// Build applies opts in order, later ones win, and panics on a blank name or bad prefix
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		panic("modkit: module name is required")
	}
	if !strings.HasPrefix(b.Prefix, "/") || (len(b.Prefix) > 1 && strings.HasSuffix(b.Prefix, "/")) {
		panic(fmt.Sprintf("modkit: module %s has bad prefix %q", b.Name, b.Prefix))
	}
	return b
}

// Mount scopes register under the prefix behind the module middleware
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	r.Route(b.Prefix, func(sub httpkit.Router) {
		sub.Use(b.Mw...)
		register(sub)
	})
}
