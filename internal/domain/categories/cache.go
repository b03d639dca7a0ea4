package categories

import "time"

type Cache interface {
	GetByUserID(userID string) ([]Category, bool)
	SetByUserID(userID string, categories []Category, ttl time.Duration)
	DeleteByUserID(userID string)
}

type noopCache struct{}

func (noopCache) GetByUserID(string) ([]Category, bool) {
	return nil, false
}

func (noopCache) SetByUserID(string, []Category, time.Duration) {}

func (noopCache) DeleteByUserID(string) {}
