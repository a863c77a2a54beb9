// Package repo provides storage for addresses: an in-process engine and a
// postgres binder sharing one query contract
package repo

import (
	"context"
	"time"

	"addressbook/internal/core/paging"
	"addressbook/internal/services/addresses/domain"
)

// Repo defines the repository contract for addresses
// every read hides soft deleted rows; a missing or deleted id is perr.ErrorCodeNotFound
type Repo interface {
	// Get returns one visible address
	Get(ctx context.Context, id int64) (domain.Address, error)

	// All returns every visible address in default order
	All(ctx context.Context) ([]domain.Address, error)

	// List runs the paged query: visibility, filter, count, sort, window
	// total is the number of matches before paging
	List(ctx context.Context, req paging.Request) (items []domain.Address, total int, err error)

	// Create stores a and returns it with its assigned id
	Create(ctx context.Context, a domain.Address) (domain.Address, error)

	// Update overwrites the mutable fields of a visible address and stamps UpdatedAt
	Update(ctx context.Context, a domain.Address) (domain.Address, error)

	// Delete soft deletes a visible address and stamps UpdatedAt with at
	Delete(ctx context.Context, id int64, at time.Time) error
}
