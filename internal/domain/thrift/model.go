package thrift

import "time"

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// After returns the time n periods after t.
func (f Frequency) After(t time.Time, n int) time.Time {
	switch f {
	case FrequencyDaily:
		return t.AddDate(0, 0, n)
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7*n)
	case FrequencyMonthly:
		return t.AddDate(0, n, 0)
	}
	return t
}

// Package is a savings plan users contribute to on a fixed schedule.
type Package struct {
	ID                 int64     `json:"id" gorm:"primaryKey"`
	Name               string    `json:"name" gorm:"type:varchar(120);not null"`
	Description        string    `json:"description" gorm:"type:text"`
	ContributionAmount int64     `json:"contribution_amount" gorm:"not null"`
	Frequency          Frequency `json:"frequency" gorm:"type:varchar(16);not null"`
	Cycles             int       `json:"cycles" gorm:"not null"`
	IsActive           bool      `json:"is_active" gorm:"not null;default:true;index"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Package) TableName() string {
	return "thrift_packages"
}

// TotalAmount is what a subscriber saves over the full plan.
func (p Package) TotalAmount() int64 {
	return p.ContributionAmount * int64(p.Cycles)
}

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCompleted SubscriptionStatus = "completed"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

type Subscription struct {
	ID                int64              `json:"id" gorm:"primaryKey"`
	UserID            int64              `json:"user_id" gorm:"not null;index;uniqueIndex:idx_active_subscription,where:status = 'active'"`
	PackageID         int64              `json:"package_id" gorm:"not null;index;uniqueIndex:idx_active_subscription,where:status = 'active'"`
	Status            SubscriptionStatus `json:"status" gorm:"type:varchar(16);not null;default:active;index"`
	StartedAt         time.Time          `json:"started_at" gorm:"not null"`
	EndsAt            time.Time          `json:"ends_at" gorm:"not null"`
	ContributionsMade int                `json:"contributions_made" gorm:"not null;default:0"`
	CancelledAt       *time.Time         `json:"cancelled_at,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`

	Package *Package `json:"package,omitempty" gorm:"foreignKey:PackageID;references:ID"`
}

func (Subscription) TableName() string {
	return "thrift_subscriptions"
}
