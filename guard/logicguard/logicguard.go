// Package logicguard implements the propositional logic verification backend.
// Premises and conclusion are parsed into boolean formulas and entailment is
// decided by exhaustive truth-table evaluation, which is exact and
// deterministic for the small formulas this gateway verifies.
package logicguard

import (
	"fmt"
	"sort"
	"strings"
)

// maxAtoms bounds truth-table enumeration; 2^20 rows is still instant.
const maxAtoms = 20

// Result is the logic engine verdict shape.
type Result struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}

// Engine checks whether a conclusion follows from a set of premises. It is
// stateless and safe for concurrent use.
type Engine struct{}

func New() *Engine { return &Engine{} }

// Verify reports whether premises entail the conclusion. A malformed formula
// yields an unverified result with a parse message.
func (e *Engine) Verify(premises []string, conclusion string) Result {
	if len(premises) == 0 {
		return Result{Message: "No premises supplied"}
	}
	formulas := make([]formula, 0, len(premises))
	atoms := map[string]struct{}{}
	for i, premise := range premises {
		f, err := parseFormula(premise)
		if err != nil {
			return Result{Message: fmt.Sprintf("Could not parse premise %d (%q): %v", i+1, premise, err)}
		}
		f.collectAtoms(atoms)
		formulas = append(formulas, f)
	}
	goal, err := parseFormula(conclusion)
	if err != nil {
		return Result{Message: fmt.Sprintf("Could not parse conclusion (%q): %v", conclusion, err)}
	}
	goal.collectAtoms(atoms)

	if len(atoms) > maxAtoms {
		return Result{Message: fmt.Sprintf("Too many propositional atoms (%d, limit %d)", len(atoms), maxAtoms)}
	}

	names := make([]string, 0, len(atoms))
	for name := range atoms {
		names = append(names, name)
	}
	sort.Strings(names)

	// premises entail the conclusion iff no assignment satisfies every
	// premise while falsifying the conclusion.
	assignment := map[string]bool{}
	for mask := 0; mask < 1<<len(names); mask++ {
		for i, name := range names {
			assignment[name] = mask&(1<<i) != 0
		}
		all := true
		for _, f := range formulas {
			if !f.eval(assignment) {
				all = false
				break
			}
		}
		if all && !goal.eval(assignment) {
			return Result{Message: fmt.Sprintf("Conclusion does not follow: counterexample %s", assignmentString(names, assignment))}
		}
	}
	return Result{Verified: true, Message: "Conclusion follows from the premises"}
}

func assignmentString(names []string, assignment map[string]bool) string {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%t", name, assignment[name]))
	}
	return strings.Join(parts, ", ")
}
