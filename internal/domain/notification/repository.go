package notification

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

const recipientBatchSize = 500

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithRecipients writes the notification and one recipient row per user
// in a single transaction. Every row shares the notification's created_at.
func (r *Repository) CreateWithRecipients(ctx context.Context, n *Notification, userIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(n).Error; err != nil {
			return err
		}
		if len(userIDs) == 0 {
			return nil
		}

		rows := make([]Recipient, 0, len(userIDs))
		for _, uid := range userIDs {
			rows = append(rows, Recipient{
				NotificationID: n.ID,
				UserID:         uid,
				CreatedAt:      n.CreatedAt,
			})
		}
		return tx.CreateInBatches(rows, recipientBatchSize).Error
	})
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Notification, error) {
	var n Notification
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]Notification, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Notification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Notification
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	return out, total, err
}

func (r *Repository) RecipientIDs(ctx context.Context, notificationID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&Recipient{}).
		Where("notification_id = ?", notificationID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

// RecipientCounts returns recipient counts keyed by notification id.
func (r *Repository) RecipientCounts(ctx context.Context, ids []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		NotificationID int64
		Count          int64
	}
	err := r.db.WithContext(ctx).Model(&Recipient{}).
		Select("notification_id, COUNT(*) AS count").
		Where("notification_id IN ?", ids).
		Group("notification_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.NotificationID] = row.Count
	}
	return counts, nil
}

// inbox limits recipient rows to notifications that are already due.
func (r *Repository) inbox(ctx context.Context, userID int64, now time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("notification_recipients AS nr").
		Joins("JOIN notifications AS n ON n.id = nr.notification_id").
		Where("nr.user_id = ?", userID).
		Where("n.scheduled_at IS NULL OR n.scheduled_at <= ?", now)
}

func (r *Repository) ListForUser(ctx context.Context, userID int64, now time.Time, unreadOnly bool, limit int) ([]InboxItem, error) {
	q := r.inbox(ctx, userID, now).
		Select("n.id, n.title, n.message, n.type, nr.read_at, nr.created_at AS delivered_at")
	if unreadOnly {
		q = q.Where("nr.read_at IS NULL")
	}

	var items []InboxItem
	if err := q.Order("nr.created_at DESC, n.id DESC").Limit(limit).Scan(&items).Error; err != nil {
		return nil, err
	}
	for i := range items {
		items[i].IsRead = items[i].ReadAt != nil
	}
	return items, nil
}

func (r *Repository) UnreadCount(ctx context.Context, userID int64, now time.Time) (int64, error) {
	var count int64
	err := r.inbox(ctx, userID, now).Where("nr.read_at IS NULL").Count(&count).Error
	return count, err
}

// MarkAsRead sets read_at once; reading an already read notification is a
// no-op. A missing recipient row is ErrNotificationNotFound.
func (r *Repository) MarkAsRead(ctx context.Context, userID, notificationID int64, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&Recipient{}).
		Where("user_id = ? AND notification_id = ? AND read_at IS NULL", userID, notificationID).
		Update("read_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&Recipient{}).
		Where("user_id = ? AND notification_id = ?", userID, notificationID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *Repository) MarkAllAsRead(ctx context.Context, userID int64, now time.Time) (int64, error) {
	due := r.db.Model(&Notification{}).Select("id").Where("scheduled_at IS NULL OR scheduled_at <= ?", now)
	res := r.db.WithContext(ctx).Model(&Recipient{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Where("notification_id IN (?)", due).
		Update("read_at", now)
	return res.RowsAffected, res.Error
}

// Pending returns undelivered notifications whose schedule has come, oldest
// first.
func (r *Repository) Pending(ctx context.Context, now time.Time, limit int) ([]Notification, error) {
	var out []Notification
	err := r.db.WithContext(ctx).
		Where("dispatched_at IS NULL").
		Where("scheduled_at IS NULL OR scheduled_at <= ?", now).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ClaimDispatch stamps dispatched_at on an undelivered notification. Only the
// caller that wins the update gets true and may deliver it.
func (r *Repository) ClaimDispatch(ctx context.Context, id int64, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&Notification{}).
		Where("id = ? AND dispatched_at IS NULL", id).
		Update("dispatched_at", at)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ReleaseDispatch puts a claimed notification back into the pending set
// after a failed delivery.
func (r *Repository) ReleaseDispatch(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&Notification{}).
		Where("id = ? AND dispatched_at IS NOT NULL", id).
		Update("dispatched_at", nil).Error
}

func (r *Repository) CountPendingDispatch(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Notification{}).Where("dispatched_at IS NULL").Count(&count).Error
	return count, err
}
