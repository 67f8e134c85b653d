package notification

import (
	"time"

	"gorm.io/datatypes"
)

// Type represents the notification category shown to users
type Type string

const (
	TypeTransaction Type = "transaction"
	TypePackage     Type = "package"
	TypeSettlement  Type = "settlement"
	TypeSystem      Type = "system"
)

func (t Type) Valid() bool {
	switch t {
	case TypeTransaction, TypePackage, TypeSettlement, TypeSystem:
		return true
	}
	return false
}

type RecipientType string

const (
	RecipientAll                RecipientType = "all"
	RecipientSpecificUsers      RecipientType = "specific_users"
	RecipientPackageSubscribers RecipientType = "package_subscribers"
)

func (r RecipientType) Valid() bool {
	switch r {
	case RecipientAll, RecipientSpecificUsers, RecipientPackageSubscribers:
		return true
	}
	return false
}

// Notification is an admin-composed message. Its audience is frozen in
// notification_recipients when it is created.
type Notification struct {
	ID            int64                      `json:"id" gorm:"primaryKey"`
	Title         string                     `json:"title" gorm:"type:varchar(200);not null"`
	Message       string                     `json:"message" gorm:"type:text;not null"`
	Type          Type                       `json:"type" gorm:"type:varchar(16);not null;index"`
	RecipientType RecipientType              `json:"recipient_type" gorm:"type:varchar(32);not null"`
	PackageID     *int64                     `json:"package_id,omitempty" gorm:"index"`
	UserIDs       datatypes.JSONSlice[int64] `json:"user_ids,omitempty"`
	ScheduledAt   *time.Time                 `json:"scheduled_at,omitempty" gorm:"index"`
	DispatchedAt  *time.Time                 `json:"dispatched_at,omitempty" gorm:"index"`
	CreatedBy     int64                      `json:"created_by" gorm:"not null"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`

	RecipientCount int64 `json:"recipient_count" gorm:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

// Due reports whether the notification may be delivered at now.
func (n *Notification) Due(now time.Time) bool {
	return n.ScheduledAt == nil || !n.ScheduledAt.After(now)
}

// Recipient attaches a notification to one user.
type Recipient struct {
	ID             int64      `json:"id" gorm:"primaryKey"`
	NotificationID int64      `json:"notification_id" gorm:"not null;uniqueIndex:idx_notification_recipient"`
	UserID         int64      `json:"user_id" gorm:"not null;uniqueIndex:idx_notification_recipient;index"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (Recipient) TableName() string {
	return "notification_recipients"
}

// InboxItem is a notification as one recipient sees it.
type InboxItem struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Type        Type       `json:"type"`
	IsRead      bool       `json:"is_read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	DeliveredAt time.Time  `json:"delivered_at"`
}
