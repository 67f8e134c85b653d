package notification

import (
	"context"
	"strings"
	"time"

	"github.com/wb-go/wbf/zlog"
)

const (
	defaultInboxLimit = 50
	maxInboxLimit     = 200
)

// UserDirectory answers audience questions about users.
type UserDirectory interface {
	AllIDs(ctx context.Context) ([]int64, error)
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

// PackageDirectory answers audience questions about thrift packages.
type PackageDirectory interface {
	PackageExists(ctx context.Context, id int64) (bool, error)
	ActiveSubscriberIDs(ctx context.Context, packageID int64) ([]int64, error)
}

// Deliverer pushes a notification to its frozen recipient set.
type Deliverer interface {
	Deliver(ctx context.Context, n *Notification, userIDs []int64) error
}

type CreateInput struct {
	Title       string
	Message     string
	Type        Type
	Rule        RecipientRule
	ScheduledAt *time.Time
	CreatedBy   int64
}

type Service struct {
	repo      *Repository
	users     UserDirectory
	packages  PackageDirectory
	deliverer Deliverer
	now       func() time.Time
}

func NewService(repo *Repository, users UserDirectory, packages PackageDirectory, deliverer Deliverer) *Service {
	return &Service{
		repo:      repo,
		users:     users,
		packages:  packages,
		deliverer: deliverer,
		now:       time.Now,
	}
}

// CreateAndDispatch validates the input, resolves the audience once and
// stores the notification together with its recipient rows. Nothing is
// written when any step fails. Notifications that are already due are handed
// to the deliverer straight away; scheduled ones wait for the Dispatcher.
func (s *Service) CreateAndDispatch(ctx context.Context, in CreateInput) (*Notification, error) {
	title := strings.TrimSpace(in.Title)
	message := strings.TrimSpace(in.Message)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if message == "" {
		return nil, ErrMessageRequired
	}
	if !in.Type.Valid() {
		return nil, ErrInvalidType
	}
	if err := in.Rule.validate(); err != nil {
		return nil, err
	}

	recipients, err := s.resolve(ctx, in.Rule)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	n := &Notification{
		Title:         title,
		Message:       message,
		Type:          in.Type,
		RecipientType: in.Rule.Kind(),
		CreatedBy:     in.CreatedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	switch in.Rule.Kind() {
	case RecipientSpecificUsers:
		n.UserIDs = in.Rule.uniqueUserIDs()
	case RecipientPackageSubscribers:
		pid := in.Rule.packageID
		n.PackageID = &pid
	case RecipientAll:
	}
	if in.ScheduledAt != nil {
		at := in.ScheduledAt.UTC()
		n.ScheduledAt = &at
	}

	if err := s.repo.CreateWithRecipients(ctx, n, recipients); err != nil {
		return nil, err
	}
	n.RecipientCount = int64(len(recipients))

	zlog.Logger.Info().
		Int64("notification_id", n.ID).
		Str("recipient_type", string(n.RecipientType)).
		Int("recipients", len(recipients)).
		Msg("notification created")

	if n.Due(now) {
		s.deliver(ctx, n, recipients)
	}
	return n, nil
}

func (s *Service) resolve(ctx context.Context, rule RecipientRule) ([]int64, error) {
	switch rule.Kind() {
	case RecipientAll:
		return s.users.AllIDs(ctx)

	case RecipientSpecificUsers:
		ids := rule.uniqueUserIDs()
		found, err := s.users.ExistingIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		if len(found) != len(ids) {
			return nil, ErrUnknownUsers
		}
		return found, nil

	case RecipientPackageSubscribers:
		ok, err := s.packages.PackageExists(ctx, rule.packageID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrPackageNotFound
		}
		return s.packages.ActiveSubscriberIDs(ctx, rule.packageID)
	}
	return nil, ErrInvalidRecipientType
}

// deliver claims n and pushes it to the recipients. A notification already
// claimed elsewhere is skipped. A failed delivery releases the claim so the
// Dispatcher retries it.
func (s *Service) deliver(ctx context.Context, n *Notification, userIDs []int64) bool {
	if s.deliverer == nil {
		return false
	}

	at := s.now().UTC()
	claimed, err := s.repo.ClaimDispatch(ctx, n.ID, at)
	if err != nil {
		zlog.Logger.Error().Err(err).Int64("notification_id", n.ID).Msg("failed to claim notification for dispatch")
		return false
	}
	if !claimed {
		zlog.Logger.Debug().Int64("notification_id", n.ID).Msg("notification already claimed")
		return false
	}

	if err := s.deliverer.Deliver(ctx, n, userIDs); err != nil {
		zlog.Logger.Error().Err(err).Int64("notification_id", n.ID).Msg("notification delivery failed")
		if err := s.repo.ReleaseDispatch(context.WithoutCancel(ctx), n.ID); err != nil {
			zlog.Logger.Error().Err(err).Int64("notification_id", n.ID).Msg("failed to release dispatch claim")
		}
		return false
	}

	n.DispatchedAt = &at
	return true
}

// DispatchDue delivers every pending notification whose schedule has come
// and returns how many were dispatched.
func (s *Service) DispatchDue(ctx context.Context, batch int) (int, error) {
	pending, err := s.repo.Pending(ctx, s.now().UTC(), batch)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range pending {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}
		n := &pending[i]
		ids, err := s.repo.RecipientIDs(ctx, n.ID)
		if err != nil {
			return sent, err
		}
		if s.deliver(ctx, n, ids) {
			sent++
		}
	}
	return sent, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]InboxItem, error) {
	if limit <= 0 || limit > maxInboxLimit {
		limit = defaultInboxLimit
	}
	return s.repo.ListForUser(ctx, userID, s.now().UTC(), unreadOnly, limit)
}

func (s *Service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.repo.UnreadCount(ctx, userID, s.now().UTC())
}

func (s *Service) MarkAsRead(ctx context.Context, userID, notificationID int64) error {
	return s.repo.MarkAsRead(ctx, userID, notificationID, s.now().UTC())
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	return s.repo.MarkAllAsRead(ctx, userID, s.now().UTC())
}

// List is the admin view, newest first, with recipient counts filled in.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Notification, int64, error) {
	if limit <= 0 || limit > maxInboxLimit {
		limit = defaultInboxLimit
	}
	if offset < 0 {
		offset = 0
	}

	list, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(list))
	for _, n := range list {
		ids = append(ids, n.ID)
	}
	counts, err := s.repo.RecipientCounts(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range list {
		list[i].RecipientCount = counts[list[i].ID]
	}
	return list, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.RecipientCounts(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	n.RecipientCount = counts[id]
	return n, nil
}

func (s *Service) CountPendingDispatch(ctx context.Context) (int64, error) {
	return s.repo.CountPendingDispatch(ctx)
}
