package mathguard

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// Operation names accepted by the engine.
const (
	OpDerivative = "derivative"
	OpIntegral   = "integral"
	OpSimplify   = "simplify"
	OpSolve      = "solve"
	OpEvaluate   = "evaluate"
)

// Result is the math engine verdict shape.
type Result struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}

// Engine verifies claimed results of symbolic operations. It is stateless and
// safe for concurrent use.
type Engine struct{}

func New() *Engine { return &Engine{} }

// Verify applies operation to expression and checks the claimed result. An
// empty operation defaults to evaluate. Parse failures and unsupported inputs
// are reported as unverified results, never as errors.
func (e *Engine) Verify(expression, claimed, operation string) Result {
	if operation == "" {
		operation = OpEvaluate
	}
	switch operation {
	case OpDerivative:
		return e.verifyDerivative(expression, claimed)
	case OpIntegral:
		return e.verifyIntegral(expression, claimed)
	case OpSimplify:
		return e.verifySimplify(expression, claimed)
	case OpSolve:
		return e.verifySolve(expression, claimed)
	case OpEvaluate:
		return e.verifyEvaluate(expression, claimed)
	default:
		return Result{Message: fmt.Sprintf("Unsupported operation: %s", operation)}
	}
}

func (e *Engine) verifyDerivative(expression, claimed string) Result {
	expr, _, err := parseExpression(expression)
	if err != nil {
		return parseFailure("expression", err)
	}
	want, _, err := parseExpression(claimed)
	if err != nil {
		return parseFailure("claimed result", err)
	}
	derived := expr.derivative()
	if derived.equal(want) {
		return Result{Verified: true, Message: fmt.Sprintf("Verified: derivative of %s is %s", expression, derived)}
	}
	return Result{Message: fmt.Sprintf("Mismatch: derivative of %s is %s, not %s", expression, derived, want)}
}

// verifyIntegral checks the claim up to the constant of integration: the
// derivative of the claimed antiderivative must reproduce the integrand.
func (e *Engine) verifyIntegral(expression, claimed string) Result {
	expr, _, err := parseExpression(expression)
	if err != nil {
		return parseFailure("expression", err)
	}
	want, _, err := parseExpression(claimed)
	if err != nil {
		return parseFailure("claimed result", err)
	}
	if want.derivative().equal(expr) {
		return Result{Verified: true, Message: fmt.Sprintf("Verified: integral of %s is %s + C", expression, want)}
	}
	return Result{Message: fmt.Sprintf("Mismatch: integral of %s is %s + C, not %s", expression, expr.antiderivative(), want)}
}

func (e *Engine) verifySimplify(expression, claimed string) Result {
	expr, _, err := parseExpression(expression)
	if err != nil {
		return parseFailure("expression", err)
	}
	want, _, err := parseExpression(claimed)
	if err != nil {
		return parseFailure("claimed result", err)
	}
	if expr.equal(want) {
		return Result{Verified: true, Message: fmt.Sprintf("Verified: %s simplifies to %s", expression, expr)}
	}
	return Result{Message: fmt.Sprintf("Mismatch: %s simplifies to %s, not %s", expression, expr, want)}
}

func (e *Engine) verifyEvaluate(expression, claimed string) Result {
	expr, _, err := parseExpression(expression)
	if err != nil {
		return parseFailure("expression", err)
	}
	value, ok := expr.constant()
	if !ok {
		return Result{Message: fmt.Sprintf("Cannot evaluate %s: expression still contains a variable", expression)}
	}
	want, _, err := parseExpression(claimed)
	if err != nil {
		return parseFailure("claimed result", err)
	}
	wantValue, ok := want.constant()
	if !ok {
		return Result{Message: fmt.Sprintf("Claimed result %s is not a numeric value", claimed)}
	}
	if value.Cmp(wantValue) == 0 {
		return Result{Verified: true, Message: fmt.Sprintf("Verified: %s = %s", expression, ratString(value))}
	}
	return Result{Message: fmt.Sprintf("Mismatch: %s = %s, not %s", expression, ratString(value), ratString(wantValue))}
}

// verifySolve handles linear and quadratic equations with rational roots.
// The expression may be written as "lhs = rhs" or as a polynomial implicitly
// equal to zero; the claimed result is a root list such as "x = 2",
// "x = 1 or x = -3" or "1, -3".
func (e *Engine) verifySolve(expression, claimed string) Result {
	equation := expression
	if lhs, rhs, found := strings.Cut(expression, "="); found {
		equation = fmt.Sprintf("(%s) - (%s)", lhs, rhs)
	}
	expr, _, err := parseExpression(equation)
	if err != nil {
		return parseFailure("expression", err)
	}
	roots, err := solveRoots(expr)
	if err != nil {
		return Result{Message: fmt.Sprintf("Cannot solve %s: %v", expression, err)}
	}
	wantRoots, err := parseClaimedRoots(claimed)
	if err != nil {
		return parseFailure("claimed result", err)
	}
	if ratSetEqual(roots, wantRoots) {
		return Result{Verified: true, Message: fmt.Sprintf("Verified: solutions of %s are %s", expression, rootsString(roots))}
	}
	return Result{Message: fmt.Sprintf("Mismatch: solutions of %s are %s, not %s", expression, rootsString(roots), rootsString(wantRoots))}
}

func solveRoots(p poly) ([]*big.Rat, error) {
	switch p.degree() {
	case 0:
		return nil, fmt.Errorf("no variable to solve for")
	case 1:
		// a*x + b = 0  ->  x = -b/a
		a, b := p.coeff(1), p.coeff(0)
		root := new(big.Rat).Neg(b)
		root.Quo(root, a)
		return []*big.Rat{root}, nil
	case 2:
		return solveQuadratic(p.coeff(2), p.coeff(1), p.coeff(0))
	default:
		return nil, fmt.Errorf("degree %d equations are not supported", p.degree())
	}
}

func solveQuadratic(a, b, c *big.Rat) ([]*big.Rat, error) {
	// discriminant = b^2 - 4ac
	disc := new(big.Rat).Mul(b, b)
	fourAC := new(big.Rat).Mul(a, c)
	fourAC.Mul(fourAC, big.NewRat(4, 1))
	disc.Sub(disc, fourAC)

	if disc.Sign() < 0 {
		return nil, nil // no real roots
	}
	sqrtDisc, ok := ratSqrt(disc)
	if !ok {
		return nil, fmt.Errorf("roots are irrational")
	}
	twoA := new(big.Rat).Mul(a, big.NewRat(2, 1))
	negB := new(big.Rat).Neg(b)

	r1 := new(big.Rat).Add(negB, sqrtDisc)
	r1.Quo(r1, twoA)
	r2 := new(big.Rat).Sub(negB, sqrtDisc)
	r2.Quo(r2, twoA)
	if r1.Cmp(r2) == 0 {
		return []*big.Rat{r1}, nil
	}
	return []*big.Rat{r1, r2}, nil
}

// ratSqrt returns the exact rational square root when one exists.
func ratSqrt(r *big.Rat) (*big.Rat, bool) {
	if r.Sign() < 0 {
		return nil, false
	}
	num := new(big.Int).Sqrt(r.Num())
	den := new(big.Int).Sqrt(r.Denom())
	if new(big.Int).Mul(num, num).Cmp(r.Num()) != 0 {
		return nil, false
	}
	if new(big.Int).Mul(den, den).Cmp(r.Denom()) != 0 {
		return nil, false
	}
	return new(big.Rat).SetFrac(num, den), true
}

func parseClaimedRoots(claimed string) ([]*big.Rat, error) {
	normalized := strings.ToLower(claimed)
	normalized = strings.ReplaceAll(normalized, " or ", ",")
	normalized = strings.ReplaceAll(normalized, ";", ",")
	var roots []*big.Rat
	for _, part := range strings.Split(normalized, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		// accept "x = value" as well as a bare value
		if _, rhs, found := strings.Cut(part, "="); found {
			part = strings.TrimSpace(rhs)
		}
		value, _, err := parseExpression(part)
		if err != nil {
			return nil, err
		}
		c, ok := value.constant()
		if !ok {
			return nil, fmt.Errorf("root %q is not a numeric value", part)
		}
		roots = append(roots, c)
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("no roots found in %q", claimed)
	}
	return roots, nil
}

func ratSetEqual(a, b []*big.Rat) bool {
	if len(a) != len(b) {
		return false
	}
	as, bs := sortedRats(a), sortedRats(b)
	for i := range as {
		if as[i].Cmp(bs[i]) != 0 {
			return false
		}
	}
	return true
}

func sortedRats(in []*big.Rat) []*big.Rat {
	out := make([]*big.Rat, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out
}

func rootsString(roots []*big.Rat) string {
	parts := make([]string, 0, len(roots))
	for _, r := range sortedRats(roots) {
		parts = append(parts, ratString(r))
	}
	return strings.Join(parts, ", ")
}

func parseFailure(what string, err error) Result {
	return Result{Message: fmt.Sprintf("Could not parse %s: %v", what, err)}
}
