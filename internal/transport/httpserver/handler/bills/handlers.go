package bills

import (
	"time"

	billsdomain "budgetbuddy-go/internal/domain/bills"
	"budgetbuddy-go/pkg/logger"
)

type Handlers struct {
	Bills    *billsdomain.Service
	location *time.Location
	now      func() time.Time
	log      logger.Logger
}

func New(bills *billsdomain.Service, location *time.Location, log logger.Logger) *Handlers {
	if location == nil {
		location = time.UTC
	}
	return &Handlers{
		Bills:    bills,
		location: location,
		now:      time.Now,
		log:      log,
	}
}
