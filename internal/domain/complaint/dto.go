package complaint

import "time"

type CreateComplaintRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required"`
	Category    Category `json:"category" validate:"required"`
	Priority    Priority `json:"priority"`
}

type AddReplyRequest struct {
	Message string    `json:"message" validate:"required"`
	Type    ReplyType `json:"type"`
}

type UpdateStatusRequest struct {
	Status     Status     `json:"status" validate:"required"`
	Resolution *string    `json:"resolution,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

type UpdatePriorityRequest struct {
	Priority Priority `json:"priority" validate:"required"`
}

type ComplaintDetail struct {
	Complaint *Complaint `json:"complaint"`
	Replies   []Reply    `json:"replies"`
}
