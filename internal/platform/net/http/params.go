package http

import (
	stdhttp "net/http"
	"strconv"

	perr "addressbook/internal/platform/errors"

	"github.com/go-chi/chi/v5"
)

// PathInt64 reads a positive integer route parameter
func PathInt64(r *stdhttp.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, perr.WithField(perr.InvalidArgf("missing path parameter %q", name), name)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, perr.WithField(perr.InvalidArgf("%s must be a positive integer, got %q", name, raw), name)
	}
	return v, nil
}

// QueryInt reads an optional integer query parameter, def when absent
func QueryInt(r *stdhttp.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, perr.WithField(perr.InvalidArgf("%s must be an integer, got %q", name, raw), name)
	}
	return v, nil
}
