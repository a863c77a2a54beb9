// Package paging holds the page request and result types shared by list endpoints
// along with the closed set of sortable address fields
package paging

import (
	"math"
	"strings"

	perr "addressbook/internal/platform/errors"

	"golang.org/x/text/cases"
)

// SortKey names one sortable field; the zero value means the default order
type SortKey uint8

const (
	// SortDefault orders by last name then first name
	SortDefault SortKey = iota
	SortFirstName
	SortLastName
	SortStreet
	SortCity
	SortZipCode
	SortCountry
	SortEmail
	SortPhone
	SortCreatedAt
)

var sortKeyNames = map[string]SortKey{
	"firstname": SortFirstName,
	"lastname":  SortLastName,
	"street":    SortStreet,
	"city":      SortCity,
	"zipcode":   SortZipCode,
	"country":   SortCountry,
	"email":     SortEmail,
	"phone":     SortPhone,
	"createdat": SortCreatedAt,
}

// foldKey case folds s; a Caser carries state so each call builds its own
func foldKey(s string) string { return cases.Fold().String(strings.TrimSpace(s)) }

// ParseSortKey maps a client supplied field name onto a SortKey
// matching ignores case; unknown or empty names report ok=false and SortDefault
func ParseSortKey(s string) (SortKey, bool) {
	k, ok := sortKeyNames[foldKey(s)]
	if !ok {
		return SortDefault, false
	}
	return k, true
}

// String returns the canonical camelCase field name
func (k SortKey) String() string {
	switch k {
	case SortFirstName:
		return "firstName"
	case SortLastName:
		return "lastName"
	case SortStreet:
		return "street"
	case SortCity:
		return "city"
	case SortZipCode:
		return "zipCode"
	case SortCountry:
		return "country"
	case SortEmail:
		return "email"
	case SortPhone:
		return "phone"
	case SortCreatedAt:
		return "createdAt"
	default:
		return "default"
	}
}

// Direction is the sort direction
type Direction uint8

const (
	// Asc is the default direction
	Asc Direction = iota
	Desc
)

// ParseDirection returns Desc only for "desc" in any case, everything else is Asc
func ParseDirection(s string) Direction {
	if foldKey(s) == "desc" {
		return Desc
	}
	return Asc
}

// String returns "asc" or "desc"
func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// Request is one page query
type Request struct {
	Page          int
	PageSize      int
	SortBy        string
	SortDirection string
	Filter        string
}

// Validate rejects non positive page numbers and page sizes; there is no upper bound
func (r Request) Validate() error {
	if r.Page < 1 {
		return perr.WithField(perr.InvalidArgf("page must be >= 1, got %d", r.Page), "page")
	}
	if r.PageSize < 1 {
		return perr.WithField(perr.InvalidArgf("pageSize must be >= 1, got %d", r.PageSize), "pageSize")
	}
	return nil
}

// Key returns the parsed sort key, SortDefault when unrecognized
func (r Request) Key() SortKey {
	k, _ := ParseSortKey(r.SortBy)
	return k
}

// Direction returns the parsed sort direction
func (r Request) Direction() Direction { return ParseDirection(r.SortDirection) }

// Offset is the number of matching rows skipped before this page
// it saturates at math.MaxInt instead of overflowing for absurd page numbers
func (r Request) Offset() int {
	if r.Page < 1 || r.PageSize < 1 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.PageSize {
		return math.MaxInt
	}
	return (r.Page - 1) * r.PageSize
}

// Window returns the [lo, hi) slice bounds of this page within n items
// both bounds are clamped to n so a page past the end yields an empty window
func (r Request) Window(n int) (lo, hi int) {
	lo = min(r.Offset(), n)
	hi = lo + min(r.PageSize, n-lo)
	return lo, hi
}

// Result is a single page of items plus the total count of matches before paging
type Result[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
}

// TotalPages is ceil(TotalCount / PageSize)
func (r Result[T]) TotalPages() int {
	if r.PageSize <= 0 {
		return 0
	}
	return (r.TotalCount + r.PageSize - 1) / r.PageSize
}

// HasNext reports whether a later page has items
func (r Result[T]) HasNext() bool { return r.Page < r.TotalPages() }
