package categories

import "context"

type Repository interface {
	// ListCategories returns the user's categories ordered by name.
	ListCategories(ctx context.Context, userID string) ([]Category, error)
	GetCategoryByID(ctx context.Context, userID, categoryID string) (*Category, error)
	// CountCategoriesByName matches case-insensitively, skipping excludeID.
	CountCategoriesByName(ctx context.Context, userID, name, excludeID string) (int64, error)
	CreateCategories(ctx context.Context, categories []Category) error
	UpdateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, userID, categoryID string) (bool, error)
}
