package complaint

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"thriftsave/internal/domain/auth"
)

// UserDirectory resolves reply authors.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*auth.User, error)
}

// ReplyNotifier is told about staff replies the complaint owner can see.
type ReplyNotifier interface {
	ComplaintReplied(ctx context.Context, c *Complaint, r *Reply) error
}

type CreateComplaintInput struct {
	Title       string
	Description string
	Category    Category
	Priority    Priority
	OwnerID     int64
}

type Service struct {
	repo     *Repository
	issuer   *TicketIssuer
	users    UserDirectory
	notifier ReplyNotifier
	strategy retry.Strategy
	now      func() time.Time
}

type Option func(*Service)

// WithRetry sets how Submit retries ticket number collisions.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(s *Service) {
		s.strategy = retry.Strategy{Attempts: attempts, Delay: delay, Backoff: 2}
	}
}

func WithReplyNotifier(n ReplyNotifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

func NewService(repo *Repository, issuer *TicketIssuer, users UserDirectory, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		issuer:   issuer,
		users:    users,
		strategy: retry.Strategy{Attempts: 3, Delay: 20 * time.Millisecond, Backoff: 2},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateComplaint issues a ticket number once and persists the complaint.
// A ticket collision is returned as ErrTicketConflict; see Submit.
func (s *Service) CreateComplaint(ctx context.Context, in CreateComplaintInput) (*Complaint, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	if !in.Category.Valid() {
		return nil, ErrInvalidCategory
	}

	priority := in.Priority
	if priority == "" {
		priority = PriorityNormal
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	c := &Complaint{
		TicketNumber: s.issuer.Generate(),
		Title:        title,
		Description:  description,
		Category:     in.Category,
		Priority:     priority,
		Status:       StatusOpen,
		UserID:       in.OwnerID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Submit creates a complaint, retrying with a fresh ticket number while the
// store reports a collision.
func (s *Service) Submit(ctx context.Context, in CreateComplaintInput) (*Complaint, error) {
	var (
		created *Complaint
		final   error
		attempt int
	)
	err := retry.Do(func() error {
		attempt++
		if ctxErr := ctx.Err(); ctxErr != nil {
			final = ctxErr
			return nil
		}
		c, err := s.CreateComplaint(ctx, in)
		if errors.Is(err, ErrTicketConflict) {
			// stop here on the last attempt or a cancelled ctx so retry.Do
			// does not sleep before giving up
			if attempt >= s.strategy.Attempts {
				final = err
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				final = ctxErr
				return nil
			}
			zlog.Logger.Warn().Int64("user_id", in.OwnerID).Msg("ticket number collision, reissuing")
			return err
		}
		created, final = c, err
		return nil
	}, s.strategy)
	if err != nil {
		// only collisions are retried, so exhausting the attempts means the
		// last one collided too
		return nil, ErrTicketConflict
	}
	if final != nil {
		return nil, final
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Complaint, error) {
	return s.repo.GetByID(ctx, id)
}

// GetForUser returns the complaint only when userID owns it.
func (s *Service) GetForUser(ctx context.Context, id, userID int64) (*Complaint, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, ErrComplaintNotFound
	}
	return c, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]Complaint, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) List(ctx context.Context, f ComplaintFilter) ([]Complaint, int64, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	if f.Priority != "" && !f.Priority.Valid() {
		return nil, 0, ErrInvalidPriority
	}
	if f.Category != "" && !f.Category.Valid() {
		return nil, 0, ErrInvalidCategory
	}
	return s.repo.List(ctx, f)
}

func (s *Service) Stats(ctx context.Context) (StatusCounts, error) {
	return s.repo.CountByStatus(ctx)
}

// UpdateStatus moves a complaint to any status. Resolution text and
// resolved_at are stored only when the caller supplies them.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status Status, resolution *string, resolvedAt *time.Time) (*Complaint, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if resolution != nil {
		trimmed := strings.TrimSpace(*resolution)
		resolution = &trimmed
	}
	if err := s.repo.UpdateStatus(ctx, id, status, resolution, resolvedAt); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdatePriority(ctx context.Context, id int64, priority Priority) (*Complaint, error) {
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if err := s.repo.UpdatePriority(ctx, id, priority); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// AddReply appends to the complaint thread. The complaint status is never
// changed here.
func (s *Service) AddReply(ctx context.Context, complaintID, authorID int64, message string, typ ReplyType) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrMessageRequired
	}
	if !typ.Valid() {
		return nil, ErrInvalidReplyType
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, ErrUnknownAuthor
		}
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	role := AuthorUser
	if author.Role.IsStaff() {
		role = AuthorStaff
	}
	if role == AuthorUser && typ != ReplyTypeReply {
		return nil, ErrReplyTypeForbidden
	}

	reply := &Reply{
		ComplaintID: c.ID,
		AuthorID:    author.ID,
		AuthorRole:  role,
		Message:     message,
		Type:        typ,
	}
	if err := s.repo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}

	if role == AuthorStaff && !typ.Internal() && s.notifier != nil {
		if err := s.notifier.ComplaintReplied(ctx, c, reply); err != nil {
			zlog.Logger.Error().Err(err).
				Int64("complaint_id", c.ID).
				Int64("reply_id", reply.ID).
				Msg("failed to notify complaint owner")
		}
	}

	return reply, nil
}

// ListReplies returns the full thread, internal notes included.
func (s *Service) ListReplies(ctx context.Context, complaintID int64) ([]Reply, error) {
	if err := s.ensureExists(ctx, complaintID); err != nil {
		return nil, err
	}
	return s.repo.ListReplies(ctx, complaintID, true)
}

// ListPublicReplies is the owner's view of the thread.
func (s *Service) ListPublicReplies(ctx context.Context, complaintID int64) ([]Reply, error) {
	if err := s.ensureExists(ctx, complaintID); err != nil {
		return nil, err
	}
	return s.repo.ListReplies(ctx, complaintID, false)
}

func (s *Service) ensureExists(ctx context.Context, id int64) error {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrComplaintNotFound
	}
	return nil
}
