package repo

import (
	"context"
	"time"

	"addressbook/internal/core/paging"
	"addressbook/internal/modkit/repokit"
	perr "addressbook/internal/platform/errors"
	"addressbook/internal/platform/store"
	"addressbook/internal/services/addresses/domain"
)

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const addressCols = `id, first_name, last_name, street, house_number, zip_code, city, country,
email, phone, created_at, updated_at, is_deleted`

// visibleMatch keeps live rows containing $1 in any searchable column
// strpos is byte exact so the filter stays case sensitive with no wildcard handling
const visibleMatch = `
where not is_deleted
and ($1::text = ''
  or strpos(first_name, $1) > 0
  or strpos(last_name, $1) > 0
  or strpos(street, $1) > 0
  or strpos(city, $1) > 0
  or strpos(zip_code, $1) > 0
  or strpos(country, $1) > 0
  or strpos(email, $1) > 0
  or strpos(phone, $1) > 0)
`

func scanAddress(r store.Row) (domain.Address, error) {
	var a domain.Address
	err := r.Scan(
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.Street,
		&a.HouseNumber,
		&a.ZipCode,
		&a.City,
		&a.Country,
		&a.Email,
		&a.Phone,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.IsDeleted,
	)
	return a, err
}

// repeatableRead pins count and page to one snapshot
func repeatableRead(ctx context.Context, q repokit.Queryer) error {
	_, err := q.Exec(ctx, "set transaction isolation level repeatable read read only")
	return err
}

func (r *queries) Get(ctx context.Context, id int64) (domain.Address, error) {
	sql := `select ` + addressCols + ` from addresses where id = $1 and not is_deleted`
	a, err := store.One(ctx, r.q, scanAddress, sql, id)
	if err != nil {
		return domain.Address{}, notFoundOr(err, id, "get address")
	}
	return a, nil
}

func (r *queries) All(ctx context.Context) ([]domain.Address, error) {
	sql := `select ` + addressCols + ` from addresses where not is_deleted ` +
		orderBy(paging.SortDefault, paging.Asc)
	out, err := store.Many(ctx, r.q, scanAddress, sql)
	if err != nil {
		return nil, perr.FromPostgres(err, "list addresses")
	}
	if out == nil {
		out = []domain.Address{}
	}
	return out, nil
}

func (r *queries) List(ctx context.Context, req paging.Request) ([]domain.Address, int, error) {
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}

	var (
		items []domain.Address
		total int64
	)
	run := func(q repokit.Queryer) error {
		var err error
		total, err = store.Scalar[int64](ctx, q, `select count(*) from addresses`+visibleMatch, req.Filter)
		if err != nil {
			return err
		}
		if total == 0 || int64(req.Offset()) >= total {
			items = []domain.Address{}
			return nil
		}
		sql := `select ` + addressCols + ` from addresses` + visibleMatch +
			orderBy(req.Key(), req.Direction()) + ` limit $2 offset $3`
		items, err = store.Many(ctx, q, scanAddress, sql, req.Filter, req.PageSize, int64(req.Offset()))
		return err
	}

	var err error
	if tx, ok := r.q.(repokit.TxRunner); ok {
		err = repokit.WithBeginHooks(tx, repeatableRead).Tx(ctx, run)
	} else {
		// already inside a caller's transaction
		err = run(r.q)
	}
	if err != nil {
		return nil, 0, perr.FromPostgres(err, "query addresses")
	}
	if items == nil {
		items = []domain.Address{}
	}
	return items, int(total), nil
}

func (r *queries) Create(ctx context.Context, a domain.Address) (domain.Address, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	sql := `
insert into addresses (first_name, last_name, street, house_number, zip_code, city, country, email, phone, created_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
returning ` + addressCols
	out, err := store.One(ctx, r.q, scanAddress, sql,
		a.FirstName, a.LastName, a.Street, a.HouseNumber, a.ZipCode, a.City, a.Country,
		a.Email, a.Phone, a.CreatedAt,
	)
	if err != nil {
		return domain.Address{}, perr.FromPostgresWithField(err, "create address")
	}
	return out, nil
}

func (r *queries) Update(ctx context.Context, a domain.Address) (domain.Address, error) {
	sql := `
update addresses set
  first_name = $2, last_name = $3, street = $4, house_number = $5, zip_code = $6,
  city = $7, country = $8, email = $9, phone = $10,
  updated_at = coalesce($11::timestamptz, now())
where id = $1 and not is_deleted
returning ` + addressCols
	out, err := store.One(ctx, r.q, scanAddress, sql,
		a.ID, a.FirstName, a.LastName, a.Street, a.HouseNumber, a.ZipCode, a.City, a.Country,
		a.Email, a.Phone, a.UpdatedAt,
	)
	if err != nil {
		return domain.Address{}, notFoundOr(err, a.ID, "update address")
	}
	return out, nil
}

func (r *queries) Delete(ctx context.Context, id int64, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`update addresses set is_deleted = true, updated_at = $2 where id = $1 and not is_deleted`,
		id, at,
	)
	if err != nil {
		return perr.FromPostgres(err, "delete address")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("address %d not found", id)
	}
	return nil
}

// notFoundOr names the id on a missing row and maps everything else from postgres
func notFoundOr(err error, id int64, op string) error {
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return perr.NotFoundf("address %d not found", id)
	}
	return perr.FromPostgresWithField(err, op)
}
