package complaint

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const ticketSuffixLen = 6

// TicketIssuer stamps complaints with human-facing ticket numbers of the form
// PREFIX-YYYYMMDD-XXXXXX. Uniqueness is enforced by the complaints table; a
// collision surfaces as ErrTicketConflict and is retried by the caller.
type TicketIssuer struct {
	prefix string
	now    func() time.Time
	random func() string
}

func NewTicketIssuer(prefix string) *TicketIssuer {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = "TKT"
	}
	return &TicketIssuer{
		prefix: prefix,
		now:    time.Now,
		random: func() string { return uuid.NewString() },
	}
}

func (i *TicketIssuer) Generate() string {
	entropy := strings.ToUpper(strings.ReplaceAll(i.random(), "-", ""))
	if len(entropy) > ticketSuffixLen {
		entropy = entropy[:ticketSuffixLen]
	}
	return i.prefix + "-" + i.now().UTC().Format("20060102") + "-" + entropy
}
