package admin

import (
	"context"
	"fmt"

	"thriftsave/internal/domain/auth"
	"thriftsave/internal/domain/complaint"
)

// Dashboard is the back-office landing summary.
type Dashboard struct {
	Users               int64                  `json:"users"`
	PendingOnboardings  int64                  `json:"pending_onboardings"`
	Complaints          complaint.StatusCounts `json:"complaints"`
	OpenComplaints      int64                  `json:"open_complaints"`
	ActiveSubscriptions int64                  `json:"active_subscriptions"`
	PendingDispatch     int64                  `json:"pending_dispatch"`
}

type Service struct {
	users         UserStats
	complaints    ComplaintStats
	subscriptions SubscriptionStats
	notifications DispatchStats
	registry      *Registry
}

func NewService(
	users UserStats,
	complaints ComplaintStats,
	subscriptions SubscriptionStats,
	notifications DispatchStats,
	registry *Registry,
) *Service {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Service{
		users:         users,
		complaints:    complaints,
		subscriptions: subscriptions,
		notifications: notifications,
		registry:      registry,
	}
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var (
		d   Dashboard
		err error
	)

	if d.Users, err = s.users.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if d.PendingOnboardings, err = s.users.CountByOnboarding(ctx, auth.OnboardingPendingPayment); err != nil {
		return nil, fmt.Errorf("count pending onboardings: %w", err)
	}
	if d.Complaints, err = s.complaints.Stats(ctx); err != nil {
		return nil, fmt.Errorf("complaint stats: %w", err)
	}
	// open means not yet resolved or closed
	d.OpenComplaints = d.Complaints[complaint.StatusOpen] + d.Complaints[complaint.StatusInProgress]
	if d.ActiveSubscriptions, err = s.subscriptions.CountActiveSubscriptions(ctx); err != nil {
		return nil, fmt.Errorf("count subscriptions: %w", err)
	}
	if d.PendingDispatch, err = s.notifications.CountPendingDispatch(ctx); err != nil {
		return nil, fmt.Errorf("count pending dispatch: %w", err)
	}

	return &d, nil
}

func (s *Service) Resources() []ResourceSummary {
	return s.registry.List()
}

func (s *Service) Resource(name string) (ResourceConfig, error) {
	return s.registry.Get(name)
}
