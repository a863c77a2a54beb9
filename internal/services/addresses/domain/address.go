// Package domain holds the address entity, its lifecycle events and the
// DTOs used by the addresses http and service contracts
package domain

import (
	"strings"
	"time"
)

// Address is one address book record
// IsDeleted rows are kept for history but never surface through reads
type Address struct {
	ID          int64
	FirstName   string
	LastName    string
	Street      string
	HouseNumber string
	ZipCode     string
	City        string
	Country     string
	Email       *string
	Phone       *string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	IsDeleted   bool
}

// Touch stamps UpdatedAt
func (a *Address) Touch(at time.Time) { a.UpdatedAt = &at }

// FullName is "First Last"
func (a Address) FullName() string { return a.FirstName + " " + a.LastName }

// FullAddress is "Street No, Zip City, Country"
func (a Address) FullAddress() string {
	return a.Street + " " + a.HouseNumber + ", " + a.ZipCode + " " + a.City + ", " + a.Country
}

// Matches reports whether filter occurs in any searchable field
// matching is case sensitive; house number is not searched and nil optionals never match
func (a Address) Matches(filter string) bool {
	if filter == "" {
		return true
	}
	for _, s := range [...]string{a.FirstName, a.LastName, a.Street, a.City, a.ZipCode, a.Country} {
		if strings.Contains(s, filter) {
			return true
		}
	}
	return (a.Email != nil && strings.Contains(*a.Email, filter)) ||
		(a.Phone != nil && strings.Contains(*a.Phone, filter))
}
