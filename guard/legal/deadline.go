package legal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DeadlineGuard recomputes contract deadlines from the signing date and a
// textual term such as "30 days", "6 weeks", "3 months" or "1 year".
type DeadlineGuard struct{}

var termPattern = regexp.MustCompile(`(?i)^\s*(\d+)\s*(day|week|month|year)s?\s*$`)

// Verify checks claimedDeadline against signingDate + term. Dates use the
// ISO YYYY-MM-DD layout.
func (g *DeadlineGuard) Verify(signingDate, term, claimedDeadline string) Result {
	signed, err := time.Parse(dateLayout, strings.TrimSpace(signingDate))
	if err != nil {
		return Result{Message: fmt.Sprintf("invalid signing_date %q: expected YYYY-MM-DD", signingDate)}
	}
	claimed, err := time.Parse(dateLayout, strings.TrimSpace(claimedDeadline))
	if err != nil {
		return Result{Message: fmt.Sprintf("invalid claimed_deadline %q: expected YYYY-MM-DD", claimedDeadline)}
	}
	m := termPattern.FindStringSubmatch(term)
	if m == nil {
		return Result{Message: fmt.Sprintf("cannot parse term %q: expected forms like '30 days', '3 months', '1 year'", term)}
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Result{Message: fmt.Sprintf("cannot parse term %q: %v", term, err)}
	}

	var deadline time.Time
	switch strings.ToLower(m[2]) {
	case "day":
		deadline = signed.AddDate(0, 0, n)
	case "week":
		deadline = signed.AddDate(0, 0, 7*n)
	case "month":
		deadline = signed.AddDate(0, n, 0)
	default:
		deadline = signed.AddDate(n, 0, 0)
	}

	if claimed.Equal(deadline) {
		return Result{Verified: true, Message: fmt.Sprintf("Deadline confirmed: %s + %s = %s", signingDate, strings.TrimSpace(term), deadline.Format(dateLayout))}
	}
	return Result{Message: fmt.Sprintf("Deadline mismatch: %s + %s = %s, not %s", signingDate, strings.TrimSpace(term), deadline.Format(dateLayout), claimedDeadline)}
}
