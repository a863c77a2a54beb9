package domain

import (
	"context"

	"addressbook/internal/core/paging"
)

// ServicePort defines the service contract for addresses
type ServicePort interface {
	Get(ctx context.Context, id int64) (AddressDTO, error)
	All(ctx context.Context) ([]AddressDTO, error)
	Query(ctx context.Context, in QueryInput) (paging.Result[AddressDTO], error)
	Create(ctx context.Context, in CreateInput) (AddressDTO, error)
	Update(ctx context.Context, id int64, in UpdateInput) (AddressDTO, error)
	Delete(ctx context.Context, id int64) error
}
