package complaint

import "time"

type Category string

const (
	CategoryAccount     Category = "account"
	CategoryTransaction Category = "transaction"
	CategoryService     Category = "service"
	CategoryOther       Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryAccount, CategoryTransaction, CategoryService, CategoryOther:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

type ReplyType string

const (
	ReplyTypeReply      ReplyType = "reply"
	ReplyTypeNote       ReplyType = "note"
	ReplyTypeResolution ReplyType = "resolution"
)

func (t ReplyType) Valid() bool {
	switch t {
	case ReplyTypeReply, ReplyTypeNote, ReplyTypeResolution:
		return true
	}
	return false
}

// Internal reports whether the reply is hidden from the complaint owner.
func (t ReplyType) Internal() bool {
	return t == ReplyTypeNote
}

type AuthorRole string

const (
	AuthorUser  AuthorRole = "user"
	AuthorStaff AuthorRole = "staff"
)

// Complaint is a support ticket raised by a user. Rows are never deleted.
type Complaint struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	TicketNumber string     `json:"ticket_number" gorm:"type:varchar(32);not null;uniqueIndex;<-:create"`
	Title        string     `json:"title" gorm:"type:varchar(200);not null"`
	Description  string     `json:"description" gorm:"type:text;not null"`
	Category     Category   `json:"category" gorm:"type:varchar(16);not null;index"`
	Priority     Priority   `json:"priority" gorm:"type:varchar(16);not null;default:normal;index"`
	Status       Status     `json:"status" gorm:"type:varchar(16);not null;default:open;index"`
	Resolution   *string    `json:"resolution,omitempty" gorm:"type:text"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	UserID       int64      `json:"user_id" gorm:"not null;index"`
	CreatedAt    time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Complaint) TableName() string {
	return "complaints"
}

// Reply is one entry of a complaint thread. Replies are append-only.
type Reply struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement;index:idx_complaint_replies_thread,priority:2"`
	ComplaintID int64      `json:"complaint_id" gorm:"not null;index:idx_complaint_replies_thread,priority:1"`
	AuthorID    int64      `json:"author_id" gorm:"not null"`
	AuthorRole  AuthorRole `json:"author_role" gorm:"type:varchar(16);not null"`
	Message     string     `json:"message" gorm:"type:text;not null"`
	Type        ReplyType  `json:"type" gorm:"type:varchar(16);not null;default:reply"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (Reply) TableName() string {
	return "complaint_replies"
}

type ComplaintFilter struct {
	Status   Status
	Priority Priority
	Category Category
	UserID   int64
	Limit    int
	Offset   int
}

// StatusCounts maps every status to its complaint count, zeros included.
type StatusCounts map[Status]int64

func (s StatusCounts) Total() int64 {
	var n int64
	for _, v := range s {
		n += v
	}
	return n
}
