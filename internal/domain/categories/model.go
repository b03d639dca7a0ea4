package categories

import "time"

const DefaultIcon = "star-outline"

type Category struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"not null"`
	Icon      string    `gorm:"type:text;not null"`
	Color     *string   `gorm:"type:text"`
	IsDefault bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// OptionalNullableString tells an absent field apart from an explicit null.
type OptionalNullableString struct {
	Set   bool
	Value *string
}

type CreateCategoryInput struct {
	UserID string
	Name   string
	Icon   string
	Color  *string
}

// UpdateCategoryInput changes only the fields that are set. Nil Name and
// Icon keep the stored values.
type UpdateCategoryInput struct {
	UserID     string
	CategoryID string
	Name       *string
	Icon       *string
	Color      OptionalNullableString
}
