package user

import "time"

const DefaultCurrency = "USD"

type Profile struct {
	UserID      string    `gorm:"type:uuid;primaryKey"`
	Email       *string   `gorm:"type:text"`
	DisplayName *string   `gorm:"type:text"`
	AvatarURL   *string   `gorm:"type:text"`
	Currency    string    `gorm:"size:3;not null;default:USD"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type UpdateProfileInput struct {
	UserID      string
	DisplayName *string
	Currency    *string
}
