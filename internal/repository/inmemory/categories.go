package inmemory

import (
	"time"

	categoriesdomain "budgetbuddy-go/internal/domain/categories"
)

// CategoriesCache keeps each user's category list for the picker screens.
type CategoriesCache struct {
	store *TTLStore[[]categoriesdomain.Category]
}

func NewCategoriesCache() *CategoriesCache {
	return &CategoriesCache{store: NewTTLStore(cloneCategories)}
}

func (c *CategoriesCache) GetByUserID(userID string) ([]categoriesdomain.Category, bool) {
	return c.store.Get(userID)
}

func (c *CategoriesCache) SetByUserID(userID string, categories []categoriesdomain.Category, ttl time.Duration) {
	c.store.Set(userID, categories, ttl)
}

func (c *CategoriesCache) DeleteByUserID(userID string) {
	c.store.Delete(userID)
}

// cloneCategories copies color pointers so callers cannot mutate cached
// entries.
func cloneCategories(categories []categoriesdomain.Category) []categoriesdomain.Category {
	if categories == nil {
		return nil
	}
	cloned := make([]categoriesdomain.Category, len(categories))
	for i, category := range categories {
		cloned[i] = category
		if category.Color != nil {
			color := *category.Color
			cloned[i].Color = &color
		}
	}
	return cloned
}
