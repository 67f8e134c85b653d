package auth

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleStaff UserRole = "staff"
	RoleAdmin UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// IsStaff is true for roles that work the back-office (staff and admins).
func (r UserRole) IsStaff() bool {
	return r == RoleStaff || r == RoleAdmin
}

type OnboardingStatus string

const (
	OnboardingPendingPayment OnboardingStatus = "pending_payment"
	OnboardingCompleted      OnboardingStatus = "completed"
)

type User struct {
	ID               int64            `json:"id" gorm:"primaryKey"`
	Name             string           `json:"name" gorm:"type:varchar(120);not null"`
	Email            string           `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone            string           `json:"phone,omitempty" gorm:"type:varchar(32)"`
	PasswordHash     string           `json:"-" gorm:"not null"`
	Role             UserRole         `json:"role" gorm:"type:varchar(16);not null;default:user;index"`
	OnboardingStatus OnboardingStatus `json:"onboarding_status" gorm:"type:varchar(32);not null;default:pending_payment"`
	OnboardedAt      *time.Time       `json:"onboarded_at,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Actor is the identity an operation runs as. When an admin acts on behalf of
// a user, UserID/Role describe the user and ImpersonatorID the admin.
type Actor struct {
	UserID         int64
	Role           UserRole
	ImpersonatorID int64
}

func (a Actor) IsImpersonated() bool {
	return a.ImpersonatorID != 0
}
