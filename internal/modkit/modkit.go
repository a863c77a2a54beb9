package modkit

import (
	"fmt"
	"reflect"

	"addressbook/internal/modkit/httpkit"
)

// Module is what the api mounts
type Module interface {
	Name() string
	MountRoutes(r httpkit.Router)
	// Ports is the module's cross wiring bundle, nil when it exports none
	Ports() any
}

// PortsOf finds a T in m.Ports(), either the bundle itself or one of its exported fields
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := 0; i < rv.NumField(); i++ {
		if f := rv.Field(i); f.CanInterface() {
			if v, ok := f.Interface().(T); ok {
				return v, true
			}
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for bootstrap code, panicking when T is missing
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic(fmt.Sprintf("modkit: module %s exports no %s", m.Name(), reflect.TypeFor[T]()))
	}
	return v
}
