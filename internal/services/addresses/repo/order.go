package repo

import (
	"cmp"
	"strings"

	"addressbook/internal/core/paging"
	"addressbook/internal/services/addresses/domain"
)

// compareFunc orders addresses for a request
// ties always fall back to ascending id so paging is deterministic
func compareFunc(key paging.SortKey, dir paging.Direction) func(a, b domain.Address) int {
	field := fieldCompare(key)
	return func(a, b domain.Address) int {
		c := field(a, b)
		if key != paging.SortDefault && dir == paging.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	}
}

func fieldCompare(key paging.SortKey) func(a, b domain.Address) int {
	switch key {
	case paging.SortFirstName:
		return func(a, b domain.Address) int { return strings.Compare(a.FirstName, b.FirstName) }
	case paging.SortLastName:
		return func(a, b domain.Address) int { return strings.Compare(a.LastName, b.LastName) }
	case paging.SortStreet:
		return func(a, b domain.Address) int { return strings.Compare(a.Street, b.Street) }
	case paging.SortCity:
		return func(a, b domain.Address) int { return strings.Compare(a.City, b.City) }
	case paging.SortZipCode:
		return func(a, b domain.Address) int { return strings.Compare(a.ZipCode, b.ZipCode) }
	case paging.SortCountry:
		return func(a, b domain.Address) int { return strings.Compare(a.Country, b.Country) }
	case paging.SortEmail:
		return func(a, b domain.Address) int { return compareOptional(a.Email, b.Email) }
	case paging.SortPhone:
		return func(a, b domain.Address) int { return compareOptional(a.Phone, b.Phone) }
	case paging.SortCreatedAt:
		return func(a, b domain.Address) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		return func(a, b domain.Address) int {
			if c := strings.Compare(a.LastName, b.LastName); c != 0 {
				return c
			}
			return strings.Compare(a.FirstName, b.FirstName)
		}
	}
}

// compareOptional puts nil after every value; reversing for desc puts it first
func compareOptional(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return strings.Compare(*a, *b)
	}
}

// orderColumns maps sort keys to SQL order expressions
// byte wise collation keeps postgres ordering identical to the in-process engine
var orderColumns = map[paging.SortKey]string{
	paging.SortFirstName: `first_name COLLATE "C"`,
	paging.SortLastName:  `last_name COLLATE "C"`,
	paging.SortStreet:    `street COLLATE "C"`,
	paging.SortCity:      `city COLLATE "C"`,
	paging.SortZipCode:   `zip_code COLLATE "C"`,
	paging.SortCountry:   `country COLLATE "C"`,
	paging.SortEmail:     `email COLLATE "C"`,
	paging.SortPhone:     `phone COLLATE "C"`,
	paging.SortCreatedAt: `created_at`,
}

// orderBy builds an ORDER BY clause from whitelisted columns only
func orderBy(key paging.SortKey, dir paging.Direction) string {
	col, ok := orderColumns[key]
	if !ok {
		return `ORDER BY last_name COLLATE "C" ASC, first_name COLLATE "C" ASC, id ASC`
	}
	if dir == paging.Desc {
		return "ORDER BY " + col + " DESC NULLS FIRST, id ASC"
	}
	return "ORDER BY " + col + " ASC NULLS LAST, id ASC"
}
