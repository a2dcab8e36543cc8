package product

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID `json:"id"`
	SellerID    uint      `json:"sellerId"`
	Name        string    `json:"name"`
	Description []string  `json:"description"`
	Category    string    `json:"category"`
	Subcategory *string   `json:"subcategory,omitempty"`
	Price       int64     `json:"price"`
	OfferPrice  *int64    `json:"offerPrice,omitempty"`
	Stock       int       `json:"stock"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UnitPrice is the price charged per unit: the offer price when one is set, otherwise the list price.
func (p *Product) UnitPrice() int64 {
	if p.OfferPrice != nil && *p.OfferPrice > 0 {
		return *p.OfferPrice
	}
	return p.Price
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}

type CreateProductInput struct {
	Name        string   `json:"name" binding:"required"`
	Description []string `json:"description"`
	Category    string   `json:"category" binding:"required"`
	Subcategory *string  `json:"subcategory"`
	Price       int64    `json:"price" binding:"required"`
	OfferPrice  *int64   `json:"offerPrice"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
}

type UpdateProductInput struct {
	ID          uuid.UUID `json:"-"`
	Name        *string   `json:"name"`
	Description []string  `json:"description"`
	Category    *string   `json:"category"`
	Subcategory *string   `json:"subcategory"`
	Price       *int64    `json:"price"`
	OfferPrice  *int64    `json:"offerPrice"`
	Images      []string  `json:"images"`
}

func (in UpdateProductInput) HasChanges() bool {
	return in.Name != nil ||
		in.Description != nil ||
		in.Category != nil ||
		in.Subcategory != nil ||
		in.Price != nil ||
		in.OfferPrice != nil ||
		in.Images != nil
}

type ListFilter struct {
	Category    string
	Subcategory string
	Search      string
	InStock     bool
	Page        int
	Limit       int
}
