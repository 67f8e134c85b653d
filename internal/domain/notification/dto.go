package notification

import "time"

type CreateNotificationRequest struct {
	Title         string        `json:"title" validate:"required,max=200"`
	Message       string        `json:"message" validate:"required"`
	Type          Type          `json:"type" validate:"required"`
	RecipientType RecipientType `json:"recipient_type" validate:"required"`
	PackageID     *int64        `json:"package_id,omitempty"`
	UserIDs       []int64       `json:"user_ids,omitempty"`
	ScheduledAt   *time.Time    `json:"scheduled_at,omitempty"`
}

// Rule turns the flat request fields into a RecipientRule. Fields that do not
// belong to the chosen recipient type are carried over so validation can
// reject the mismatch.
func (r CreateNotificationRequest) Rule() RecipientRule {
	rule := RecipientRule{kind: r.RecipientType, userIDs: r.UserIDs}
	if r.PackageID != nil {
		rule.packageID = *r.PackageID
	}
	return rule
}
