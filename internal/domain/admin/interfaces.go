package admin

import (
	"context"

	"thriftsave/internal/domain/auth"
	"thriftsave/internal/domain/complaint"
)

type UserStats interface {
	Count(ctx context.Context) (int64, error)
	CountByOnboarding(ctx context.Context, status auth.OnboardingStatus) (int64, error)
}

type ComplaintStats interface {
	Stats(ctx context.Context) (complaint.StatusCounts, error)
}

type SubscriptionStats interface {
	CountActiveSubscriptions(ctx context.Context) (int64, error)
}

type DispatchStats interface {
	CountPendingDispatch(ctx context.Context) (int64, error)
}
