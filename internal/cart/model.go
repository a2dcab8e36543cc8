package cart

import (
	"github.com/google/uuid"
)

type Item struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// Line is a stored cart entry joined with the current product row.
type Line struct {
	ProductID  uuid.UUID `json:"productId"`
	Quantity   int       `json:"quantity"`
	Name       string    `json:"name"`
	Price      int64     `json:"price"`
	OfferPrice *int64    `json:"offerPrice,omitempty"`
	Stock      int       `json:"stock"`
	Images     []string  `json:"images"`
}

func (l *Line) UnitPrice() int64 {
	if l.OfferPrice != nil && *l.OfferPrice > 0 {
		return *l.OfferPrice
	}
	return l.Price
}

type Cart struct {
	Items    []*Line `json:"items"`
	Count    int     `json:"count"`
	Subtotal int64   `json:"subtotal"`
}

func newCart(lines []*Line) *Cart {
	c := &Cart{Items: lines}
	if c.Items == nil {
		c.Items = []*Line{}
	}
	for _, l := range c.Items {
		c.Count += l.Quantity
		c.Subtotal += l.UnitPrice() * int64(l.Quantity)
	}
	return c
}
