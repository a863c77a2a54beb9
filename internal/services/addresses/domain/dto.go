package domain

import (
	"strings"
	"time"

	"addressbook/internal/core/paging"
)

// CreateInput is the payload for creating an address
type CreateInput struct {
	FirstName   string  `json:"first_name" validate:"required,max=100" example:"John"`
	LastName    string  `json:"last_name" validate:"required,max=100" example:"Doe"`
	Street      string  `json:"street" validate:"required,max=200" example:"Main Street"`
	HouseNumber string  `json:"house_number" validate:"required,max=10" example:"123"`
	ZipCode     string  `json:"zip_code" validate:"required,max=10" example:"12345"`
	City        string  `json:"city" validate:"required,max=100" example:"New York"`
	Country     string  `json:"country" validate:"required,max=100" example:"USA"`
	Email       *string `json:"email,omitempty" validate:"omitempty,max=200,email" example:"john@example.com"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=20" example:"+1 555 0100"`
}

// UpdateInput is the payload for replacing an address; all fields are overwritten
type UpdateInput CreateInput

// QueryInput is the payload for a paged address query
type QueryInput struct {
	Page          int    `json:"page" example:"1"`
	PageSize      int    `json:"page_size" example:"10"`
	SortBy        string `json:"sort_by,omitempty" validate:"omitempty,max=32" example:"lastName"`
	SortDirection string `json:"sort_direction,omitempty" validate:"omitempty,max=8" example:"asc"`
	Filter        string `json:"filter,omitempty" validate:"omitempty,max=200" example:"Boston"`
}

// Request converts the payload to a paging request
func (in QueryInput) Request() paging.Request {
	return paging.Request{
		Page:          in.Page,
		PageSize:      in.PageSize,
		SortBy:        in.SortBy,
		SortDirection: in.SortDirection,
		Filter:        in.Filter,
	}
}

// AddressDTO is the read model returned to clients
type AddressDTO struct {
	ID          int64      `json:"id" example:"1"`
	FirstName   string     `json:"first_name" example:"John"`
	LastName    string     `json:"last_name" example:"Doe"`
	Street      string     `json:"street" example:"Main Street"`
	HouseNumber string     `json:"house_number" example:"123"`
	ZipCode     string     `json:"zip_code" example:"12345"`
	City        string     `json:"city" example:"New York"`
	Country     string     `json:"country" example:"USA"`
	Email       *string    `json:"email,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	FullName    string     `json:"full_name" example:"John Doe"`
	FullAddress string     `json:"full_address" example:"Main Street 123, 12345 New York, USA"`
}

// ToDTO maps an address to its read model
func ToDTO(a Address) AddressDTO {
	return AddressDTO{
		ID:          a.ID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Street:      a.Street,
		HouseNumber: a.HouseNumber,
		ZipCode:     a.ZipCode,
		City:        a.City,
		Country:     a.Country,
		Email:       a.Email,
		Phone:       a.Phone,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		FullName:    a.FullName(),
		FullAddress: a.FullAddress(),
	}
}

// ToDTOs maps a slice, never returning nil
func ToDTOs(in []Address) []AddressDTO {
	out := make([]AddressDTO, 0, len(in))
	for _, a := range in {
		out = append(out, ToDTO(a))
	}
	return out
}

// Address builds an unsaved entity from the payload
// blank optionals are stored as nil
func (in CreateInput) Address() Address {
	return Address{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Street:      in.Street,
		HouseNumber: in.HouseNumber,
		ZipCode:     in.ZipCode,
		City:        in.City,
		Country:     in.Country,
		Email:       blankToNil(in.Email),
		Phone:       blankToNil(in.Phone),
	}
}

// Apply overwrites the mutable fields of a with the payload
func (in UpdateInput) Apply(a Address) Address {
	b := CreateInput(in).Address()
	b.ID = a.ID
	b.CreatedAt = a.CreatedAt
	b.UpdatedAt = a.UpdatedAt
	b.IsDeleted = a.IsDeleted
	return b
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}
