// Package legal implements the legal verification backends: contract
// deadline arithmetic, citation format checks, liability cap math, choice of
// law / forum compatibility and statute of limitations checks. The five
// guards ship as one backend group and become available together.
package legal

import "fmt"

// Result is the verdict shape shared by the deadline, liability and statute
// guards.
type Result struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}

// Guards bundles the five legal guards behind a single acquisition point.
type Guards struct {
	Deadline     *DeadlineGuard
	Citation     *CitationGuard
	Liability    *LiabilityGuard
	Jurisdiction *JurisdictionGuard
	Statute      *StatuteGuard
}

// New constructs every legal guard; a failure in any of them makes the whole
// group unavailable.
func New() (*Guards, error) {
	citation, err := NewCitationGuard()
	if err != nil {
		return nil, fmt.Errorf("citation guard: %w", err)
	}
	return &Guards{
		Deadline:     &DeadlineGuard{},
		Citation:     citation,
		Liability:    &LiabilityGuard{},
		Jurisdiction: NewJurisdictionGuard(),
		Statute:      NewStatuteGuard(),
	}, nil
}
