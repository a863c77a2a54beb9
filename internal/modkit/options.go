package modkit

import "net/http"

// Option adjusts how a module is built
type Option func(*Built)

// WithName names the module in logs and panics
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix sets the route prefix, it must start with a slash
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends module scoped middleware
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts hands the module the ports of modules it depends on
func WithPorts(p any) Option { return func(b *Built) { b.Ports = p } }
