package categories

import "errors"

var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNameTaken    = errors.New("category name already exists")
	ErrCategoryIsDefault    = errors.New("default categories cannot be deleted")
	ErrInvalidCategoryName  = errors.New("invalid category name")
	ErrInvalidCategoryColor = errors.New("invalid category color")
)
