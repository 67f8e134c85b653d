package complaint

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"thriftsave/internal/database"
)

const maxListLimit = 200

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, c *Complaint) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrTicketConflict
		}
		return err
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Complaint, error) {
	var c Complaint
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Complaint{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListByUser returns the owner's complaints newest first.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]Complaint, error) {
	var out []Complaint
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *Repository) List(ctx context.Context, f ComplaintFilter) ([]Complaint, int64, error) {
	q := r.db.WithContext(ctx).Model(&Complaint{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > maxListLimit {
		limit = 50
	}

	var out []Complaint
	err := q.Order("created_at DESC, id DESC").Limit(limit).Offset(f.Offset).Find(&out).Error
	return out, total, err
}

func (r *Repository) CountByStatus(ctx context.Context) (StatusCounts, error) {
	var rows []struct {
		Status Status
		Count  int64
	}
	if err := r.db.WithContext(ctx).Model(&Complaint{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(StatusCounts, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *Repository) updateFields(ctx context.Context, id int64, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&Complaint{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrComplaintNotFound
	}
	return nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int64, status Status, resolution *string, resolvedAt *time.Time) error {
	fields := map[string]any{"status": status}
	if resolution != nil {
		fields["resolution"] = *resolution
	}
	if resolvedAt != nil {
		fields["resolved_at"] = resolvedAt.UTC()
	}
	return r.updateFields(ctx, id, fields)
}

func (r *Repository) UpdatePriority(ctx context.Context, id int64, priority Priority) error {
	return r.updateFields(ctx, id, map[string]any{"priority": priority})
}

func (r *Repository) CreateReply(ctx context.Context, reply *Reply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

// ListReplies returns the thread in insertion order, which is the
// storage-assigned id. created_at is informational only.
func (r *Repository) ListReplies(ctx context.Context, complaintID int64, includeInternal bool) ([]Reply, error) {
	q := r.db.WithContext(ctx).Where("complaint_id = ?", complaintID)
	if !includeInternal {
		q = q.Where("type <> ?", ReplyTypeNote)
	}

	var out []Reply
	err := q.Order("id ASC").Find(&out).Error
	return out, err
}
