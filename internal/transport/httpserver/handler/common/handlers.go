package common

import (
	"time"

	"budgetbuddy-go/internal/currency"
	userdomain "budgetbuddy-go/internal/domain/user"
	"budgetbuddy-go/pkg/logger"
)

type Handlers struct {
	Profiles *userdomain.Service
	Rates    *currency.RatesClient
	location *time.Location
	now      func() time.Time
	checks   map[string]HealthCheck
	log      logger.Logger
}

// New builds the handlers for profile, currency and calendar endpoints.
// location is used when a request carries no timezone.
func New(profiles *userdomain.Service, rates *currency.RatesClient, location *time.Location, log logger.Logger) *Handlers {
	if location == nil {
		location = time.UTC
	}
	return &Handlers{
		Profiles: profiles,
		Rates:    rates,
		location: location,
		now:      time.Now,
		log:      log,
	}
}
