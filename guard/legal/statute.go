package legal

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// StatuteGuard checks statute-of-limitations deadlines against a fixed table
// of limitation periods per jurisdiction and claim type.
type StatuteGuard struct {
	periods map[string]map[string]int // jurisdiction -> claim type -> years
}

func NewStatuteGuard() *StatuteGuard {
	return &StatuteGuard{
		periods: map[string]map[string]int{
			"california": {
				"breach_of_contract": 4,
				"oral_contract":      2,
				"personal_injury":    2,
				"fraud":              3,
				"property_damage":    3,
			},
			"new york": {
				"breach_of_contract": 6,
				"personal_injury":    3,
				"fraud":              6,
				"property_damage":    3,
			},
			"texas": {
				"breach_of_contract": 4,
				"personal_injury":    2,
				"fraud":              4,
			},
			"delaware": {
				"breach_of_contract": 3,
				"personal_injury":    2,
			},
		},
	}
}

// Verify reports whether filingDate falls within the limitation period that
// starts at incidentDate.
func (g *StatuteGuard) Verify(claimType, jurisdiction, incidentDate, filingDate string) Result {
	byClaim, ok := g.periods[strings.ToLower(strings.TrimSpace(jurisdiction))]
	if !ok {
		return Result{Message: fmt.Sprintf("unknown jurisdiction %q (known: %s)", jurisdiction, strings.Join(g.jurisdictions(), ", "))}
	}
	years, ok := byClaim[strings.ToLower(strings.TrimSpace(claimType))]
	if !ok {
		return Result{Message: fmt.Sprintf("unknown claim type %q for %s", claimType, jurisdiction)}
	}
	incident, err := time.Parse(dateLayout, strings.TrimSpace(incidentDate))
	if err != nil {
		return Result{Message: fmt.Sprintf("invalid incident_date %q: expected YYYY-MM-DD", incidentDate)}
	}
	filing, err := time.Parse(dateLayout, strings.TrimSpace(filingDate))
	if err != nil {
		return Result{Message: fmt.Sprintf("invalid filing_date %q: expected YYYY-MM-DD", filingDate)}
	}
	if filing.Before(incident) {
		return Result{Message: fmt.Sprintf("filing date %s predates the incident date %s", filingDate, incidentDate)}
	}

	deadline := incident.AddDate(years, 0, 0)
	if filing.After(deadline) {
		return Result{Message: fmt.Sprintf("Time-barred: %s claims in %s must be filed within %d year(s), by %s; filed %s",
			claimType, jurisdiction, years, deadline.Format(dateLayout), filingDate)}
	}
	return Result{Verified: true, Message: fmt.Sprintf("Within limitations: %s claims in %s allow %d year(s), deadline %s",
		claimType, jurisdiction, years, deadline.Format(dateLayout))}
}

func (g *StatuteGuard) jurisdictions() []string {
	names := make([]string, 0, len(g.periods))
	for name := range g.periods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
