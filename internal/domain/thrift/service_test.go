package thrift

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"thriftsave/internal/database"
	"thriftsave/internal/domain/wallet"
	"thriftsave/internal/pkg/apperr"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(fmt.Sprintf("file:thrift_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Package{}, &Subscription{}, &wallet.Wallet{}, &wallet.Transaction{}))
	return db
}

func setupService(t *testing.T) (*Service, *wallet.Service) {
	t.Helper()
	db := setupTestDB(t)
	wallets := wallet.NewService(db)
	return NewService(NewRepository(db), wallets), wallets
}

func createPackage(t *testing.T, svc *Service, amount int64) *Package {
	t.Helper()
	p, err := svc.Create(context.Background(), CreatePackageRequest{
		Name:               "Weekly Saver",
		ContributionAmount: amount,
		Frequency:          FrequencyWeekly,
		Cycles:             4,
	})
	require.NoError(t, err)
	return p
}

func TestCreatePackage_Validation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreatePackageRequest{Name: "X", ContributionAmount: 100, Frequency: "yearly", Cycles: 1})
	assert.ErrorIs(t, err, ErrInvalidFrequency)

	_, err = svc.Create(ctx, CreatePackageRequest{Name: "X", ContributionAmount: 100, Frequency: FrequencyDaily, Cycles: 0})
	assert.ErrorIs(t, err, ErrInvalidCycles)

	_, err = svc.Create(ctx, CreatePackageRequest{Name: "  ", ContributionAmount: 100, Frequency: FrequencyDaily, Cycles: 1})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestUpdatePackage_PartialAndDeactivate(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	p := createPackage(t, svc, 500)

	inactive := false
	cycles := 8
	updated, err := svc.Update(ctx, p.ID, UpdatePackageRequest{Cycles: &cycles, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Cycles)
	assert.Equal(t, "Weekly Saver", updated.Name)
	assert.Equal(t, int64(4000), updated.TotalAmount())

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = svc.Update(ctx, 999, UpdatePackageRequest{})
	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestSubscribe_DebitsWalletAndRejectsDuplicate(t *testing.T) {
	svc, wallets := setupService(t)
	ctx := context.Background()
	p := createPackage(t, svc, 1_000)

	_, _, err := wallets.Deposit(ctx, 10, 5_000, "")
	require.NoError(t, err)

	fixed := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	sub, err := svc.Subscribe(ctx, 10, p.ID)
	require.NoError(t, err)
	assert.Equal(t, SubscriptionActive, sub.Status)
	assert.Equal(t, 1, sub.ContributionsMade)
	assert.Equal(t, fixed.AddDate(0, 0, 28), sub.EndsAt)

	w, err := wallets.GetOrCreateWallet(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4_000), w.Balance)

	_, err = svc.Subscribe(ctx, 10, p.ID)
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	ids, err := svc.ActiveSubscriberIDs(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, ids)
}

func TestSubscribe_InsufficientFunds(t *testing.T) {
	svc, _ := setupService(t)
	p := createPackage(t, svc, 1_000)

	_, err := svc.Subscribe(context.Background(), 11, p.ID)
	assert.ErrorIs(t, err, wallet.ErrInsufficientFunds)

	subs, err := svc.ListForUser(context.Background(), 11)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

type mockWallet struct {
	mock.Mock
}

func (m *mockWallet) Debit(ctx context.Context, userID, amount int64, description string) (*wallet.Transaction, error) {
	args := m.Called(ctx, userID, amount, description)
	return nil, args.Error(1)
}

func (m *mockWallet) Credit(ctx context.Context, userID, amount int64, description string) (*wallet.Transaction, error) {
	args := m.Called(ctx, userID, amount, description)
	return nil, args.Error(1)
}

func TestSubscribe_RefundsWhenSubscriptionCannotBeStored(t *testing.T) {
	db := setupTestDB(t)
	wallets := new(mockWallet)
	svc := NewService(NewRepository(db), wallets)
	p := createPackage(t, svc, 700)

	wallets.On("Debit", mock.Anything, int64(12), int64(700), mock.Anything).Return(nil, nil)
	wallets.On("Credit", mock.Anything, int64(12), int64(700), mock.Anything).Return(nil, nil)

	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_subscriptions", func(tx *gorm.DB) {
		if tx.Statement.Table == "thrift_subscriptions" {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))

	_, err := svc.Subscribe(context.Background(), 12, p.ID)
	require.EqualError(t, err, "disk full")
	wallets.AssertExpectations(t)
}

func TestCancelSubscription(t *testing.T) {
	svc, wallets := setupService(t)
	ctx := context.Background()
	p := createPackage(t, svc, 100)

	_, _, err := wallets.Deposit(ctx, 20, 1_000, "")
	require.NoError(t, err)
	sub, err := svc.Subscribe(ctx, 20, p.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, 21, sub.ID)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)

	cancelled, err := svc.Cancel(ctx, 20, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, SubscriptionCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	_, err = svc.Cancel(ctx, 20, sub.ID)
	assert.True(t, errors.Is(err, ErrNotCancellable))

	ids, err := svc.ActiveSubscriberIDs(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	// a cancelled plan can be joined again
	_, err = svc.Subscribe(ctx, 20, p.ID)
	require.NoError(t, err)
}

func TestPackageExists(t *testing.T) {
	svc, _ := setupService(t)
	p := createPackage(t, svc, 100)

	ok, err := svc.PackageExists(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.PackageExists(context.Background(), p.ID+100)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFrequencyAfter(t *testing.T) {
	start := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, start.AddDate(0, 0, 3), FrequencyDaily.After(start, 3))
	assert.Equal(t, start.AddDate(0, 0, 14), FrequencyWeekly.After(start, 2))
	assert.Equal(t, start.AddDate(0, 1, 0), FrequencyMonthly.After(start, 1))
}
