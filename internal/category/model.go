package category

import "github.com/google/uuid"

type Category struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Subcategories []*Subcategory `json:"subcategories"`
}

type Subcategory struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"categoryId"`
	Name       string    `json:"name"`
}

func (c *Category) HasSubcategory(name string) bool {
	for _, s := range c.Subcategories {
		if s.Name == name {
			return true
		}
	}
	return false
}
