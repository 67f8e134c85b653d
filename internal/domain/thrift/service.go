package thrift

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wb-go/wbf/zlog"

	"thriftsave/internal/domain/wallet"
)

// WalletService is the part of the wallet the subscription flow needs.
type WalletService interface {
	Debit(ctx context.Context, userID, amount int64, description string) (*wallet.Transaction, error)
	Credit(ctx context.Context, userID, amount int64, description string) (*wallet.Transaction, error)
}

type Service struct {
	repo    *Repository
	wallets WalletService
	now     func() time.Time
}

func NewService(repo *Repository, wallets WalletService) *Service {
	return &Service{repo: repo, wallets: wallets, now: time.Now}
}

func (s *Service) ListActive(ctx context.Context) ([]Package, error) {
	return s.repo.ListActivePackages(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Package, error) {
	return s.repo.GetPackage(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreatePackageRequest) (*Package, error) {
	p := &Package{
		Name:               strings.TrimSpace(req.Name),
		Description:        strings.TrimSpace(req.Description),
		ContributionAmount: req.ContributionAmount,
		Frequency:          req.Frequency,
		Cycles:             req.Cycles,
		IsActive:           true,
	}
	if err := validatePackage(p); err != nil {
		return nil, err
	}
	if err := s.repo.CreatePackage(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdatePackageRequest) (*Package, error) {
	p, err := s.repo.GetPackage(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.ContributionAmount != nil {
		p.ContributionAmount = *req.ContributionAmount
	}
	if req.Frequency != nil {
		p.Frequency = *req.Frequency
	}
	if req.Cycles != nil {
		p.Cycles = *req.Cycles
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := validatePackage(p); err != nil {
		return nil, err
	}
	if err := s.repo.SavePackage(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) PackageExists(ctx context.Context, id int64) (bool, error) {
	return s.repo.PackageExists(ctx, id)
}

func (s *Service) ActiveSubscriberIDs(ctx context.Context, packageID int64) ([]int64, error) {
	return s.repo.ActiveSubscriberIDs(ctx, packageID)
}

// Subscribe takes the first contribution from the user's wallet and opens
// the subscription. The contribution is refunded when the subscription row
// cannot be stored.
func (s *Service) Subscribe(ctx context.Context, userID, packageID int64) (*Subscription, error) {
	p, err := s.repo.GetPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, ErrPackageInactive
	}

	active, err := s.repo.HasActiveSubscription(ctx, userID, packageID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, ErrAlreadySubscribed
	}

	desc := fmt.Sprintf("first contribution: %s", p.Name)
	if _, err := s.wallets.Debit(ctx, userID, p.ContributionAmount, desc); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	sub := &Subscription{
		UserID:            userID,
		PackageID:         p.ID,
		Status:            SubscriptionActive,
		StartedAt:         now,
		EndsAt:            p.Frequency.After(now, p.Cycles),
		ContributionsMade: 1,
	}
	if err := s.repo.CreateSubscription(ctx, sub); err != nil {
		if _, refundErr := s.wallets.Credit(ctx, userID, p.ContributionAmount, "refund: "+desc); refundErr != nil {
			zlog.Logger.Error().Err(refundErr).
				Int64("user_id", userID).
				Int64("package_id", packageID).
				Msg("failed to refund contribution after subscription error")
			return nil, errors.Join(err, refundErr)
		}
		return nil, err
	}

	sub.Package = p
	return sub, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]Subscription, error) {
	return s.repo.ListSubscriptionsForUser(ctx, userID)
}

// Cancel stops an active subscription owned by userID. Contributions already
// made stay in the plan.
func (s *Service) Cancel(ctx context.Context, userID, subscriptionID int64) (*Subscription, error) {
	sub, err := s.repo.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, ErrSubscriptionNotFound
	}
	if sub.Status != SubscriptionActive {
		return nil, ErrNotCancellable
	}

	now := s.now().UTC()
	sub.Status = SubscriptionCancelled
	sub.CancelledAt = &now
	if err := s.repo.UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) CountActiveSubscriptions(ctx context.Context) (int64, error) {
	return s.repo.CountActiveSubscriptions(ctx)
}

func validatePackage(p *Package) error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.ContributionAmount <= 0 {
		return ErrInvalidAmount
	}
	if !p.Frequency.Valid() {
		return ErrInvalidFrequency
	}
	if p.Cycles < 1 {
		return ErrInvalidCycles
	}
	return nil
}
