package thrift

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"thriftsave/internal/database"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListActivePackages(ctx context.Context) ([]Package, error) {
	var pkgs []Package
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("contribution_amount ASC, id ASC").Find(&pkgs).Error
	return pkgs, err
}

func (r *Repository) GetPackage(ctx context.Context, id int64) (*Package, error) {
	var p Package
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) CreatePackage(ctx context.Context, p *Package) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *Repository) SavePackage(ctx context.Context, p *Package) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *Repository) PackageExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Package{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateSubscription(ctx context.Context, s *Subscription) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrAlreadySubscribed
		}
		return err
	}
	return nil
}

func (r *Repository) HasActiveSubscription(ctx context.Context, userID, packageID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Subscription{}).
		Where("user_id = ? AND package_id = ? AND status = ?", userID, packageID, SubscriptionActive).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) GetSubscription(ctx context.Context, id int64) (*Subscription, error) {
	var s Subscription
	if err := r.db.WithContext(ctx).Preload("Package").First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repository) ListSubscriptionsForUser(ctx context.Context, userID int64) ([]Subscription, error) {
	var subs []Subscription
	err := r.db.WithContext(ctx).
		Preload("Package").
		Where("user_id = ?", userID).
		Order("started_at DESC, id DESC").
		Find(&subs).Error
	return subs, err
}

func (r *Repository) UpdateSubscription(ctx context.Context, s *Subscription) error {
	return r.db.WithContext(ctx).Model(&Subscription{}).Where("id = ?", s.ID).Updates(map[string]any{
		"status":       s.Status,
		"cancelled_at": s.CancelledAt,
	}).Error
}

// ActiveSubscriberIDs returns distinct user ids with an active subscription
// to the package, ascending.
func (r *Repository) ActiveSubscriberIDs(ctx context.Context, packageID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&Subscription{}).
		Distinct("user_id").
		Where("package_id = ? AND status = ?", packageID, SubscriptionActive).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *Repository) CountActiveSubscriptions(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Subscription{}).Where("status = ?", SubscriptionActive).Count(&count).Error
	return count, err
}
