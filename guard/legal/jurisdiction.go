package legal

import (
	"fmt"
	"strings"
)

// JurisdictionResult is the jurisdiction guard verdict shape; incompatible
// combinations are listed as conflicts.
type JurisdictionResult struct {
	Verified  bool     `json:"verified"`
	Message   string   `json:"message"`
	Conflicts []string `json:"conflicts,omitempty"`
}

// JurisdictionGuard checks that a contract's governing law, forum and party
// locations are mutually compatible.
type JurisdictionGuard struct {
	lawCountry   map[string]string
	forumCountry map[string]string
}

func NewJurisdictionGuard() *JurisdictionGuard {
	return &JurisdictionGuard{
		// governing-law jurisdiction -> ISO country of that legal system
		lawCountry: map[string]string{
			"delaware":          "US",
			"new york":          "US",
			"california":        "US",
			"texas":             "US",
			"england":           "UK",
			"england and wales": "UK",
			"english law":       "UK",
			"scotland":          "UK",
			"singapore":         "SG",
			"hong kong":         "HK",
			"germany":           "DE",
			"france":            "FR",
			"switzerland":       "CH",
		},
		// forum seat -> ISO country
		forumCountry: map[string]string{
			"delaware":   "US",
			"new york":   "US",
			"california": "US",
			"texas":      "US",
			"london":     "UK",
			"singapore":  "SG",
			"hong kong":  "HK",
			"paris":      "FR",
			"geneva":     "CH",
			"zurich":     "CH",
			"frankfurt":  "DE",
		},
	}
}

// VerifyChoiceOfLaw cross-checks the governing law against the forum and the
// parties' countries. The forum may be empty, in which case only the
// law/party relationship is checked.
func (g *JurisdictionGuard) VerifyChoiceOfLaw(partiesCountries []string, governingLaw, forum string) JurisdictionResult {
	lawCountry, known := g.lawCountry[strings.ToLower(strings.TrimSpace(governingLaw))]
	if !known {
		return JurisdictionResult{Message: fmt.Sprintf("unknown governing law jurisdiction %q", governingLaw)}
	}

	var conflicts []string
	if forum != "" {
		forumCountry, known := g.forumCountry[strings.ToLower(strings.TrimSpace(forum))]
		if !known {
			conflicts = append(conflicts, fmt.Sprintf("unknown forum %q", forum))
		} else if forumCountry != lawCountry {
			conflicts = append(conflicts, fmt.Sprintf("forum %s sits in %s while the governing law (%s) belongs to %s; expect enforcement friction",
				forum, forumCountry, governingLaw, lawCountry))
		}
	}

	if len(partiesCountries) > 0 {
		connected := false
		for _, country := range partiesCountries {
			if strings.EqualFold(strings.TrimSpace(country), lawCountry) {
				connected = true
				break
			}
		}
		if !connected {
			conflicts = append(conflicts, fmt.Sprintf("no party is located in %s, the governing law's country; a court may question the choice of %s law",
				lawCountry, governingLaw))
		}
	}

	if len(conflicts) > 0 {
		return JurisdictionResult{
			Message:   fmt.Sprintf("Choice of law raises %d conflict(s)", len(conflicts)),
			Conflicts: conflicts,
		}
	}
	return JurisdictionResult{Verified: true, Message: fmt.Sprintf("Governing law %s and forum are compatible with the parties", governingLaw)}
}
