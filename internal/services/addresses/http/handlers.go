// Package http provides http transport for addresses
package http

import (
	stdhttp "net/http"

	"addressbook/internal/modkit/httpkit"
	"addressbook/internal/platform/logger"
	phttp "addressbook/internal/platform/net/http"
	"addressbook/internal/services/addresses/domain"
	svc "addressbook/internal/services/addresses/service"
)

// Register mounts address endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.QueryInput](r, "/query", h.query)
	httpkit.Get(r, "/", h.all)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.PostJSON[domain.CreateInput](r, "/", h.create)
	httpkit.PutJSON[domain.UpdateInput](r, "/{id}", h.update)
	r.Delete("/{id}", httpkit.Call(h.delete))
}

type handlers struct{ svc svc.Service }

// swagger:route POST /addresses/query Addresses addressesQuery
// @Summary Paged, filtered and sorted address query
// @Tags Addresses
// @Accept json
// @Produce json
// @Param payload body domain.QueryInput true "Query"
// @Success 200 {object} paging.Result[domain.AddressDTO] "ok"
// @Failure 422 {object} httpkit.Envelope "invalid paging"
// @Router /addresses/query [post]
func (h *handlers) query(r *stdhttp.Request, in domain.QueryInput) (any, error) {
	return h.svc.Query(r.Context(), in)
}

// @Summary All live addresses in default order
// @Tags Addresses
// @Produce json
// @Success 200 {array} domain.AddressDTO "ok"
// @Router /addresses [get]
func (h *handlers) all(r *stdhttp.Request) (any, error) {
	return h.svc.All(r.Context())
}

// @Summary One address
// @Tags Addresses
// @Produce json
// @Param id path int true "Address id"
// @Success 200 {object} domain.AddressDTO "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /addresses/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := phttp.PathInt64(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id)
}

// @Summary Create an address
// @Tags Addresses
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Address"
// @Success 201 {object} domain.AddressDTO "created"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Failure 409 {object} httpkit.Envelope "duplicate email"
// @Router /addresses [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	dto, err := h.svc.Create(r.Context(), in)
	if err = committed(r, err); err != nil {
		return nil, err
	}
	return httpkit.Created(dto), nil
}

// @Summary Replace an address
// @Tags Addresses
// @Accept json
// @Produce json
// @Param id path int true "Address id"
// @Param payload body domain.UpdateInput true "Address"
// @Success 200 {object} domain.AddressDTO "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /addresses/{id} [put]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	id, err := phttp.PathInt64(r, "id")
	if err != nil {
		return nil, err
	}
	dto, err := h.svc.Update(r.Context(), id, in)
	if err = committed(r, err); err != nil {
		return nil, err
	}
	return dto, nil
}

// @Summary Soft delete an address
// @Tags Addresses
// @Param id path int true "Address id"
// @Success 204 "deleted"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /addresses/{id} [delete]
func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	id, err := phttp.PathInt64(r, "id")
	if err != nil {
		return nil, err
	}
	if err := committed(r, h.svc.Delete(r.Context(), id)); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// committed swallows subscriber failures once the write is durable; they are logged instead
func committed(r *stdhttp.Request, err error) error {
	if err == nil || !svc.IsNotifyError(err) {
		return err
	}
	logger.C(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("address committed but notification failed")
	return nil
}
