// Package httpkit is the handler and mounting surface modules build routes with
package httpkit

import (
	"net/http"
	"time"

	phttp "addressbook/internal/platform/net/http"
	"addressbook/internal/platform/net/http/bind"
	"addressbook/internal/platform/net/middleware"
)

type (
	// Router is the platform router seam
	Router = phttp.Router
	// Handler is the platform handler shape
	Handler = phttp.Handler
	// Envelope documents the response body in swagger annotations
	Envelope = phttp.Envelope
)

// Created is a 201 with data
func Created(data any) phttp.Response { return phttp.Created(data) }

// NoContent is an empty 204
func NoContent() phttp.Response { return phttp.NoContent() }

// JSON binds and validates the body into T before calling fn
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Call(func(r *http.Request) (any, error) {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return nil, err
		}
		return fn(r, in)
	})
}

// Call wraps fn's result in the envelope; a returned phttp.Response passes through
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// Get mounts a body-less handler
func Get(r Router, path string, fn func(*http.Request) (any, error)) { r.Get(path, Call(fn)) }

// PostJSON mounts a JSON body handler under POST
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Post(path, JSON(fn))
}

// PutJSON mounts a JSON body handler under PUT
func PutJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Put(path, JSON(fn))
}

// MountAPIV1 scopes mount under /api/v1 behind mw
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/v1", func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}

// CommonStack is the api wide middleware chain; no origins allows any
func CommonStack(origins ...string) []func(http.Handler) http.Handler {
	return middleware.Common(middleware.Options{
		Origins: origins,
		Slow:    500 * time.Millisecond,
		Timeout: 30 * time.Second,
	})
}
