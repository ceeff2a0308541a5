// Package finance implements the finance verification backends: a banking
// compliance verifier for natural-language scenarios and an ISO 20022
// payment message validator.
package finance

import (
	"fmt"
	"strings"
)

// Result is the banking compliance verdict shape.
type Result struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}

// Verifier checks model output for banking scenarios against a fixed set of
// compliance rules. Stateless, safe for concurrent use.
type Verifier struct{}

func NewVerifier() *Verifier { return &Verifier{} }

// logicTraps lists scenario/output keyword pairs known to indicate that the
// model fell into a domain trap. The pair below reproduces the senior-citizen
// premium trap: quoting the 0.5 discount multiplier as a premium rate.
var logicTraps = []struct {
	scenarioKeyword string
	outputKeyword   string
	message         string
}{
	{"Senior Citizen", "0.5", "Logic Trap Detected: Senior Citizen Premium"},
}

// VerifyCompliance checks llmOutput produced for a scenario. Trap detection
// is plain business logic of this backend: deterministic given the same
// arguments, and deliberately not generalized into gateway routing.
func (v *Verifier) VerifyCompliance(scenario, llmOutput string) Result {
	for _, trap := range logicTraps {
		if strings.Contains(scenario, trap.scenarioKeyword) && strings.Contains(llmOutput, trap.outputKeyword) {
			return Result{Message: trap.message}
		}
	}
	return Result{Verified: true, Message: fmt.Sprintf("Verified: %s", llmOutput)}
}
