package errors

import (
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgCodes maps the SQLSTATEs repos care about, everything else is ErrorCodeDB
var pgCodes = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
}

// PgError digs the driver error out of a chain
func PgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	ok := stderrs.As(err, &pe)
	return pe, ok
}

// FromPostgres wraps a storage error with msg and the code its SQLSTATE maps to
// coded errors keep their code so ErrNotFound survives the wrap
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code := ErrorCodeDB
	if pe, ok := PgError(err); ok {
		if c, hit := pgCodes[pe.Code]; hit {
			code = c
		}
	} else if e, ok := As(err); ok {
		code = e.code
	}
	return Wrap(err, code, msg)
}

// FromPostgresWithField is FromPostgres plus the column the server blamed
// the column comes from the error itself or from an ux_<table>_<column> index name
func FromPostgresWithField(err error, msg string) error {
	out := FromPostgres(err, msg)
	pe, ok := PgError(err)
	if !ok {
		return out
	}
	if col := strings.TrimSpace(pe.ColumnName); col != "" {
		return WithField(out, col)
	}
	if col := indexColumn(pe.TableName, pe.ConstraintName); col != "" {
		return WithField(out, col)
	}
	return out
}

// indexColumn pulls email out of ux_addresses_email or addresses_email_key
func indexColumn(table, constraint string) string {
	c := strings.TrimSuffix(constraint, "_key")
	c = strings.TrimPrefix(c, "ux_")
	if table != "" {
		c = strings.TrimPrefix(c, table+"_")
	} else if i := strings.LastIndex(c, "_"); i >= 0 {
		c = c[i+1:]
	}
	if c == constraint {
		return ""
	}
	return c
}
