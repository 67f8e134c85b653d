package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	users UserRepositoryInterface
	jwt   jwtService
	now   func() time.Time
}

func NewService(users UserRepositoryInterface, jwt jwtService) *Service {
	return &Service{
		users: users,
		jwt:   jwt,
		now:   time.Now,
	}
}

// Register creates a regular user awaiting the onboarding payment.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:             strings.TrimSpace(req.Name),
		Email:            req.Email,
		Phone:            strings.TrimSpace(req.Phone),
		PasswordHash:     hash,
		Role:             RoleUser,
		OnboardingStatus: OnboardingPendingPayment,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !checkPassword(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u, AccessToken: token}, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*User, error) {
	return s.users.GetByID(ctx, userID)
}

// CompleteOnboarding flips a user to completed once the payment gateway has
// confirmed the onboarding fee.
func (s *Service) CompleteOnboarding(ctx context.Context, userID int64) (*User, error) {
	updated, err := s.users.MarkOnboarded(ctx, userID, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if !updated {
		u, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if u.OnboardingStatus == OnboardingCompleted {
			return nil, ErrAlreadyOnboarded
		}
	}
	return s.users.GetByID(ctx, userID)
}

// ResolveActor builds the identity a request runs as. Only admins may act as
// another user; acting as yourself is a no-op.
func (s *Service) ResolveActor(ctx context.Context, callerID int64, callerRole UserRole, actAsID int64) (Actor, error) {
	self := Actor{UserID: callerID, Role: callerRole}
	if actAsID == 0 || actAsID == callerID {
		return self, nil
	}
	if callerRole != RoleAdmin {
		return Actor{}, ErrCannotImpersonate
	}

	target, err := s.users.GetByID(ctx, actAsID)
	if err != nil {
		return Actor{}, err
	}
	return Actor{UserID: target.ID, Role: target.Role, ImpersonatorID: callerID}, nil
}

func hashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashPassword is used by the seeder to create staff accounts.
func HashPassword(password string) (string, error) {
	return hashPassword(password)
}
