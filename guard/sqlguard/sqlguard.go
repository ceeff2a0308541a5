// Package sqlguard implements the SQL-safety backend. It rejects injection
// patterns (tautologies, comment truncation, stacked statements, UNION
// probes), enforces a read-only statement policy and can restrict queries to
// an allow-list of tables. A normalized form of the query is returned for
// accepted and rejected queries alike so callers can log what was analysed.
package sqlguard

import (
	"fmt"
	"regexp"
	"strings"
)

// Result is the SQL guard verdict shape. Note the field names: this backend
// historically reports Valid/Error rather than Verified/Message.
type Result struct {
	Valid           bool     `json:"valid"`
	Error           string   `json:"error,omitempty"`
	Issues          []string `json:"issues,omitempty"`
	NormalizedQuery string   `json:"normalized_query,omitempty"`
}

// Guard holds the compiled detection patterns. Immutable after New, safe for
// concurrent use.
type Guard struct {
	tautology *regexp.Regexp
	comment   *regexp.Regexp
	stacked   *regexp.Regexp
	union     *regexp.Regexp
	leadingKW *regexp.Regexp
	tableRef  *regexp.Regexp
}

// statements other than plain SELECT are rejected; the gateway verifies
// queries proposed by language models and those must never mutate state.
var allowedStatements = map[string]bool{"SELECT": true, "WITH": true}

func New() (*Guard, error) {
	g := &Guard{}
	for _, spec := range []struct {
		target **regexp.Regexp
		expr   string
	}{
		{&g.tautology, `(?i)\bor\b\s+('[^']*'|"[^"]*"|[0-9]+)\s*=\s*('[^']*'|"[^"]*"|[0-9]+)`},
		{&g.comment, `--|/\*|#`},
		{&g.stacked, `;\s*\S`},
		{&g.union, `(?i)\bunion\b[\s(]*\bselect\b`},
		{&g.leadingKW, `(?i)^\s*([a-z]+)`},
		{&g.tableRef, `(?i)\b(?:from|join|into|update)\s+([a-z_][a-z0-9_.]*)`},
	} {
		re, err := regexp.Compile(spec.expr)
		if err != nil {
			return nil, fmt.Errorf("compile sql pattern %q: %w", spec.expr, err)
		}
		*spec.target = re
	}
	return g, nil
}

// VerifyQuery analyses a single SQL statement. allowedTables may be nil, in
// which case table references are not restricted.
func (g *Guard) VerifyQuery(query string, allowedTables []string) Result {
	normalized := normalize(query)
	var issues []string

	if m := g.leadingKW.FindStringSubmatch(query); m != nil {
		keyword := strings.ToUpper(m[1])
		if !allowedStatements[keyword] {
			issues = append(issues, fmt.Sprintf("statement type %s is not allowed by policy", keyword))
		}
	} else {
		issues = append(issues, "query does not start with a recognizable statement")
	}

	// Go's regexp has no backreferences, so tautology candidates are captured
	// and the two operands compared here.
	for _, m := range g.tautology.FindAllStringSubmatch(query, -1) {
		if literalValue(m[1]) == literalValue(m[2]) {
			issues = append(issues, fmt.Sprintf("tautology %s = %s always matches (possible injection)", m[1], m[2]))
		}
	}
	if g.comment.MatchString(query) {
		issues = append(issues, "comment sequence may truncate the intended query")
	}
	if g.stacked.MatchString(query) {
		issues = append(issues, "stacked statements are not allowed")
	}
	if g.union.MatchString(query) {
		issues = append(issues, "UNION SELECT probing detected")
	}

	if len(allowedTables) > 0 {
		allowed := make(map[string]bool, len(allowedTables))
		for _, table := range allowedTables {
			allowed[strings.ToLower(table)] = true
		}
		for _, m := range g.tableRef.FindAllStringSubmatch(query, -1) {
			if table := strings.ToLower(m[1]); !allowed[table] {
				issues = append(issues, fmt.Sprintf("table %q is not in the allowed list", m[1]))
			}
		}
	}

	if len(issues) > 0 {
		return Result{
			Error:           fmt.Sprintf("Query rejected: %d issue(s) found", len(issues)),
			Issues:          issues,
			NormalizedQuery: normalized,
		}
	}
	return Result{Valid: true, NormalizedQuery: normalized}
}

func literalValue(literal string) string {
	return strings.Trim(literal, `'"`)
}

var keywordSet = map[string]bool{
	"select": true, "from": true, "where": true, "and": true, "or": true,
	"join": true, "inner": true, "left": true, "right": true, "outer": true,
	"on": true, "group": true, "by": true, "order": true, "limit": true,
	"offset": true, "having": true, "as": true, "with": true, "union": true,
	"insert": true, "update": true, "delete": true, "drop": true, "in": true,
	"not": true, "null": true, "is": true, "like": true, "between": true,
}

// normalize collapses whitespace and upper-cases SQL keywords so that log
// lines and diagnostics have one canonical rendering per query.
func normalize(query string) string {
	fields := strings.Fields(query)
	for i, field := range fields {
		if keywordSet[strings.ToLower(field)] {
			fields[i] = strings.ToUpper(field)
		}
	}
	return strings.Join(fields, " ")
}
