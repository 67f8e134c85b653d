package auth

import (
	"context"
	"time"
)

// UserRepositoryInterface lists only the methods the auth service uses
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	MarkOnboarded(ctx context.Context, id int64, at time.Time) (bool, error)
}

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}
