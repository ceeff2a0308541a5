package legal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CitationResult is the citation guard verdict shape; note the Valid field
// name, kept from the backend's original contract.
type CitationResult struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues,omitempty"`
}

// CitationGuard performs structural checks on case citations in the common
// "volume Reporter page (year)" form, e.g. "410 U.S. 113 (1973)".
type CitationGuard struct {
	pattern *regexp.Regexp
}

// knownReporters lists the reporter abbreviations the guard recognizes.
var knownReporters = map[string]bool{
	"U.S.":        true,
	"S. Ct.":      true,
	"F.":          true,
	"F.2d":        true,
	"F.3d":        true,
	"F.4th":       true,
	"F. Supp.":    true,
	"F. Supp. 2d": true,
	"F. Supp. 3d": true,
	"A.2d":        true,
	"A.3d":        true,
	"P.2d":        true,
	"P.3d":        true,
	"N.E.2d":      true,
	"N.E.3d":      true,
	"Cal. App.":   true,
}

func NewCitationGuard() (*CitationGuard, error) {
	// volume, reporter (letters, periods, digits and inner spaces), page,
	// then the decision year in parentheses.
	re, err := regexp.Compile(`^\s*(\d+)\s+([A-Za-z][A-Za-z. 0-9]*?)\s+(\d+)\s*\((\d{4})\)\s*$`)
	if err != nil {
		return nil, fmt.Errorf("compile citation pattern: %w", err)
	}
	return &CitationGuard{pattern: re}, nil
}

// Verify checks a single citation string.
func (g *CitationGuard) Verify(citation string) CitationResult {
	m := g.pattern.FindStringSubmatch(citation)
	if m == nil {
		return CitationResult{Issues: []string{
			fmt.Sprintf("citation %q does not match the 'volume Reporter page (year)' form", strings.TrimSpace(citation)),
		}}
	}

	var issues []string
	volume, _ := strconv.Atoi(m[1])
	if volume == 0 {
		issues = append(issues, "volume must be a positive number")
	}
	reporter := strings.TrimSpace(m[2])
	if !knownReporters[reporter] {
		issues = append(issues, fmt.Sprintf("unknown reporter %q", reporter))
	}
	page, _ := strconv.Atoi(m[3])
	if page == 0 {
		issues = append(issues, "page must be a positive number")
	}
	year, _ := strconv.Atoi(m[4])
	if year < 1754 || year > time.Now().Year() {
		issues = append(issues, fmt.Sprintf("implausible decision year %d", year))
	}

	if len(issues) > 0 {
		return CitationResult{Issues: issues}
	}
	return CitationResult{Valid: true}
}
