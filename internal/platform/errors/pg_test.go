package errors

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestFromPostgres(t *testing.T) {
	t.Parallel()

	wrap := func(pe *pgconn.PgError) error { return fmt.Errorf("exec: %w", pe) }

	cases := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"unique", wrap(&pgconn.PgError{Code: "23505"}), ErrorCodeDuplicateKey},
		{"not null", wrap(&pgconn.PgError{Code: "23502"}), ErrorCodeValidation},
		{"too long", wrap(&pgconn.PgError{Code: "22001"}), ErrorCodeInvalidArgument},
		{"starting up", wrap(&pgconn.PgError{Code: "57P03"}), ErrorCodeUnavailable},
		{"other sqlstate", wrap(&pgconn.PgError{Code: "42P01"}), ErrorCodeDB},
		{"not found passes", ErrNotFound, ErrorCodeNotFound},
		{"foreign", stderrs.New("conn closed"), ErrorCodeDB},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := FromPostgres(tc.err, "create address")
			if !IsCode(got, tc.want) {
				t.Fatalf("code = %d, want %d", CodeOf(got), tc.want)
			}
			if !stderrs.Is(got, tc.err) {
				t.Fatalf("cause lost")
			}
		})
	}

	if FromPostgres(nil, "x") != nil {
		t.Fatalf("nil should stay nil")
	}
}

func TestFromPostgresWithField(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		pe   *pgconn.PgError
		want string
	}{
		{"column wins", &pgconn.PgError{Code: "23502", ColumnName: "city", ConstraintName: "ux_addresses_email"}, "city"},
		{"unique index", &pgconn.PgError{Code: "23505", TableName: "addresses", ConstraintName: "ux_addresses_email"}, "email"},
		{"key constraint", &pgconn.PgError{Code: "23505", TableName: "addresses", ConstraintName: "addresses_email_key"}, "email"},
		{"no table", &pgconn.PgError{Code: "23505", ConstraintName: "ux_addresses_email"}, "email"},
		{"nothing to go on", &pgconn.PgError{Code: "23505"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			e, ok := As(FromPostgresWithField(tc.pe, "create address"))
			if !ok || e.Field() != tc.want {
				t.Fatalf("field = %q, want %q", e.Field(), tc.want)
			}
		})
	}
}
