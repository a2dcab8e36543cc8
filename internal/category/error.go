package category

import "errors"

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSubcategoryNotFound = errors.New("subcategory not found")
	ErrNameRequired        = errors.New("category name is required")
	ErrCategoryExists      = errors.New("category already exists")
)
