package bills

import (
	"time"

	"github.com/shopspring/decimal"
)

type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceMonthly Recurrence = "monthly"
)

func (r Recurrence) Valid() bool {
	return r == RecurrenceNone || r == RecurrenceMonthly
}

type Bill struct {
	ID         string          `gorm:"type:uuid;primaryKey"`
	UserID     string          `gorm:"type:uuid;index;not null"`
	Name       string          `gorm:"not null"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DueDate    time.Time       `gorm:"type:timestamptz;not null"`
	Recurring  Recurrence      `gorm:"type:text;not null"`
	PaidAt     *time.Time      `gorm:"type:timestamptz"`
	LastPaidAt *time.Time      `gorm:"type:timestamptz"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime"`
}

// StatusGroups partitions bills by Status. Every list is non-nil.
type StatusGroups struct {
	Overdue  []Bill
	DueSoon  []Bill
	Upcoming []Bill
	Paid     []Bill
}

type CreateBillInput struct {
	UserID    string
	Name      string
	Amount    decimal.Decimal
	DueDate   time.Time
	Recurring Recurrence
}

type UpdateBillInput struct {
	ID        string
	UserID    string
	Name      string
	Amount    decimal.Decimal
	DueDate   time.Time
	Recurring Recurrence
}
