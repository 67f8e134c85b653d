package complaint

import (
	"regexp"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var ticketPattern = regexp.MustCompile(`^TKT-\d{8}-[0-9A-F]{6}$`)

func TestTicketIssuer_Format(t *testing.T) {
	issuer := NewTicketIssuer("")
	issuer.now = func() time.Time { return time.Date(2026, 4, 9, 23, 30, 0, 0, time.FixedZone("WAT", 3600)) }

	ticket := issuer.Generate()
	assert.Regexp(t, ticketPattern, ticket)
	// UTC date, not the local one
	assert.Contains(t, ticket, "-20260409-")
}

func TestTicketIssuer_CustomPrefix(t *testing.T) {
	issuer := NewTicketIssuer(" cmp ")
	issuer.random = func() string { return "0a1b2c3d-0000-0000-0000-000000000000" }
	issuer.now = func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) }

	assert.Equal(t, "CMP-20260102-0A1B2C", issuer.Generate())
}

func TestTicketIssuer_DistinctAndSortableByDate(t *testing.T) {
	issuer := NewTicketIssuer("TKT")
	seen := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		ticket := issuer.Generate()
		assert.NotEmpty(t, ticket)
		seen[ticket] = struct{}{}
	}
	assert.Greater(t, len(seen), 490)

	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var tickets []string
	for i := 2; i >= 0; i-- {
		d := day.AddDate(0, 0, i)
		issuer.now = func() time.Time { return d }
		tickets = append(tickets, issuer.Generate())
	}
	sorted := append([]string(nil), tickets...)
	sort.Strings(sorted)
	assert.Equal(t, []string{tickets[2], tickets[1], tickets[0]}, sorted)
}
