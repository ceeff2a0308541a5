// Package codeguard implements the static code-safety backend. It scans
// source snippets for constructs that allow arbitrary code execution or
// shell access and reports each match as a violation.
package codeguard

import (
	"fmt"
	"regexp"
	"strings"
)

// Result is the code guard verdict shape. Violations are only populated when
// the snippet is rejected.
type Result struct {
	Verified   bool     `json:"verified"`
	Message    string   `json:"message"`
	Violations []string `json:"violations,omitempty"`
}

type rule struct {
	pattern *regexp.Regexp
	reason  string
}

// Guard holds the compiled per-language rule sets. Construct once at startup
// via New; the guard is immutable and safe for concurrent use.
type Guard struct {
	rules map[string][]rule
}

// ruleSpecs maps language to dangerous-construct patterns. Languages without
// a dedicated entry fall back to the generic set.
var ruleSpecs = map[string][]struct{ expr, reason string }{
	"python": {
		{`\beval\s*\(`, "eval() executes arbitrary expressions"},
		{`\bexec\s*\(`, "exec() executes arbitrary code"},
		{`\b__import__\s*\(`, "__import__() loads modules dynamically"},
		{`\bcompile\s*\(`, "compile() builds executable code objects"},
		{`\bos\.system\s*\(`, "os.system() spawns a shell"},
		{`\bos\.popen\s*\(`, "os.popen() spawns a shell"},
		{`\bsubprocess\.`, "subprocess gives shell access"},
		{`\bpickle\.loads?\s*\(`, "pickle deserialization executes code"},
		{`\bmarshal\.loads?\s*\(`, "marshal deserialization is unsafe"},
	},
	"javascript": {
		{`\beval\s*\(`, "eval() executes arbitrary expressions"},
		{`\bnew\s+Function\s*\(`, "Function constructor executes code"},
		{`\bchild_process\b`, "child_process gives shell access"},
		{`\bprocess\.binding\s*\(`, "process.binding exposes internals"},
	},
	"generic": {
		{`\beval\s*\(`, "eval() executes arbitrary expressions"},
		{`\bexec\s*\(`, "exec() executes arbitrary code"},
		{`\bsystem\s*\(`, "system() spawns a shell"},
	},
}

// New compiles every rule set; a pattern that fails to compile makes the
// whole backend unavailable rather than silently weakening the policy.
func New() (*Guard, error) {
	g := &Guard{rules: map[string][]rule{}}
	for language, specs := range ruleSpecs {
		compiled := make([]rule, 0, len(specs))
		for _, spec := range specs {
			re, err := regexp.Compile(spec.expr)
			if err != nil {
				return nil, fmt.Errorf("compile rule %q for %s: %w", spec.expr, language, err)
			}
			compiled = append(compiled, rule{pattern: re, reason: spec.reason})
		}
		g.rules[language] = compiled
	}
	return g, nil
}

// VerifySafety scans code with the rule set of the given language.
func (g *Guard) VerifySafety(code, language string) Result {
	rules, ok := g.rules[strings.ToLower(language)]
	if !ok {
		rules = g.rules["generic"]
	}
	var violations []string
	for _, r := range rules {
		if match := r.pattern.FindString(code); match != "" {
			violations = append(violations, fmt.Sprintf("%s: %s", strings.TrimSpace(match), r.reason))
		}
	}
	if len(violations) > 0 {
		return Result{
			Message:    fmt.Sprintf("Code rejected: %d dangerous construct(s) found", len(violations)),
			Violations: violations,
		}
	}
	return Result{Verified: true, Message: "Code verified safe."}
}
