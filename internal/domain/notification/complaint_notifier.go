package notification

import (
	"context"
	"fmt"

	"thriftsave/internal/domain/complaint"
)

// ComplaintNotifier tells complaint owners about staff replies through the
// regular fan-out, so the message lands in their inbox too.
type ComplaintNotifier struct {
	service *Service
}

func NewComplaintNotifier(service *Service) *ComplaintNotifier {
	return &ComplaintNotifier{service: service}
}

func (n *ComplaintNotifier) ComplaintReplied(ctx context.Context, c *complaint.Complaint, r *complaint.Reply) error {
	title := fmt.Sprintf("Update on ticket %s", c.TicketNumber)
	if r.Type == complaint.ReplyTypeResolution {
		title = fmt.Sprintf("Ticket %s has a resolution", c.TicketNumber)
	}

	_, err := n.service.CreateAndDispatch(ctx, CreateInput{
		Title:     title,
		Message:   r.Message,
		Type:      TypeSystem,
		Rule:      SpecificUsers(c.UserID),
		CreatedBy: r.AuthorID,
	})
	return err
}
