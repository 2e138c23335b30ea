package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
)

// CreatePersonRequest defines the data required to create a person. An
// initial totalOverdue creates an opening balance order for the person.
type CreatePersonRequest struct {
	Name         string           `form:"name" json:"name" binding:"required"`
	PhoneNumber  string           `form:"phoneNumber" json:"phoneNumber" binding:"required"`
	ShopNumber   string           `form:"shopNumber" json:"shopNumber"`
	Email        string           `form:"email" json:"email" binding:"omitempty,email"`
	Type         string           `form:"type" json:"type" binding:"required,oneof=customer supplier"`
	TotalOverdue *decimal.Decimal `form:"totalOverdue" json:"totalOverdue" binding:"omitempty,gte=0"`
}

// UpdatePersonRequest defines the data allowed for updating a person.
// The person's type is immutable once orders reference it.
type UpdatePersonRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
	ShopNumber  *string `json:"shopNumber"`
	Email       *string `json:"email" binding:"omitempty,email"`
}

// ListPersonsParams defines query parameters for listing persons.
type ListPersonsParams struct {
	Type string `form:"type" binding:"omitempty,oneof=customer supplier"`
	Name string `form:"name"`
	PageParams
}

// PersonResponse is the API representation of a person.
type PersonResponse struct {
	PersonID     string          `json:"id"`
	Name         string          `json:"name"`
	PhoneNumber  string          `json:"phoneNumber"`
	ShopNumber   string          `json:"shopNumber,omitempty"`
	Email        string          `json:"email,omitempty"`
	Type         string          `json:"type"`
	ImageID      *string         `json:"imageID,omitempty"`
	TotalOverdue decimal.Decimal `json:"totalOverdue"`
}

// ToPersonResponse converts a domain.Person to its API representation.
func ToPersonResponse(p *domain.Person) PersonResponse {
	return PersonResponse{
		PersonID:     p.PersonID,
		Name:         p.Name,
		PhoneNumber:  p.PhoneNumber,
		ShopNumber:   p.ShopNumber,
		Email:        p.Email,
		Type:         string(p.Type),
		ImageID:      p.ImageID,
		TotalOverdue: p.TotalOverdue,
	}
}

// ListPersonsResponse wraps a page of persons.
type ListPersonsResponse struct {
	Persons []PersonResponse `json:"persons"`
	PageMeta
}
