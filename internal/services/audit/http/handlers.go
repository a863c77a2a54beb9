// Package http exposes the audit trail over http
package http

import (
	"context"
	stdhttp "net/http"

	"addressbook/internal/modkit/httpkit"
	phttp "addressbook/internal/platform/net/http"
	"addressbook/internal/services/audit/domain"
)

// Reader is what the handlers need from the audit service
type Reader interface {
	Recent(ctx context.Context, addressID int64, limit int) ([]domain.Record, error)
}

// Register mounts audit endpoints on the given router
func Register(r httpkit.Router, s Reader) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/addresses/{id}/events", h.events)
}

type handlers struct{ svc Reader }

// @Summary Lifecycle events of one address, newest first
// @Tags Audit
// @Produce json
// @Param id path int true "Address id"
// @Param limit query int false "Max records (default 50, max 500)"
// @Success 200 {array} domain.Record "ok"
// @Failure 503 {object} httpkit.Envelope "audit storage disabled"
// @Router /audit/addresses/{id}/events [get]
func (h *handlers) events(r *stdhttp.Request) (any, error) {
	id, err := phttp.PathInt64(r, "id")
	if err != nil {
		return nil, err
	}
	limit, err := phttp.QueryInt(r, "limit", domain.DefaultLimit)
	if err != nil {
		return nil, err
	}
	return h.svc.Recent(r.Context(), id, limit)
}
