package logicguard

import (
	"fmt"
	"strings"
	"unicode"
)

// formula is a propositional formula over named atoms.
type formula interface {
	eval(assignment map[string]bool) bool
	collectAtoms(into map[string]struct{})
}

type atom string

func (a atom) eval(m map[string]bool) bool           { return m[string(a)] }
func (a atom) collectAtoms(into map[string]struct{}) { into[string(a)] = struct{}{} }

type notExpr struct{ operand formula }

func (n notExpr) eval(m map[string]bool) bool           { return !n.operand.eval(m) }
func (n notExpr) collectAtoms(into map[string]struct{}) { n.operand.collectAtoms(into) }

type binExpr struct {
	op          string // "and", "or", "implies", "iff"
	left, right formula
}

func (b binExpr) eval(m map[string]bool) bool {
	l, r := b.left.eval(m), b.right.eval(m)
	switch b.op {
	case "and":
		return l && r
	case "or":
		return l || r
	case "implies":
		return !l || r
	default: // iff
		return l == r
	}
}

func (b binExpr) collectAtoms(into map[string]struct{}) {
	b.left.collectAtoms(into)
	b.right.collectAtoms(into)
}

// parseFormula accepts plain-English connectives (not/and/or/implies/iff) as
// well as the symbolic forms !, &, |, ->, <-> used by solver frontends.
//
// Grammar (loosest binding first): iff, implies (right assoc), or, and, not.
func parseFormula(input string) (formula, error) {
	tokens, err := tokenizeFormula(input)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty formula")
	}
	p := &formulaParser{tokens: tokens}
	f, err := p.parseIff()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("unexpected token %q", p.tokens[p.pos])
	}
	return f, nil
}

func tokenizeFormula(input string) ([]string, error) {
	var tokens []string
	runes := []rune(input)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case strings.HasPrefix(string(runes[i:]), "<->"):
			tokens = append(tokens, "iff")
			i += 3
		case strings.HasPrefix(string(runes[i:]), "->"):
			tokens = append(tokens, "implies")
			i += 2
		case r == '!' || r == '~':
			tokens = append(tokens, "not")
			i++
		case r == '&':
			tokens = append(tokens, "and")
			i++
		case r == '|':
			tokens = append(tokens, "or")
			i++
		case r == '(' || r == ')':
			tokens = append(tokens, string(r))
			i++
		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			word := string(runes[i:j])
			switch strings.ToLower(word) {
			case "not", "and", "or", "implies", "iff":
				tokens = append(tokens, strings.ToLower(word))
			default:
				tokens = append(tokens, word)
			}
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q", string(r))
		}
	}
	return tokens, nil
}

type formulaParser struct {
	tokens []string
	pos    int
}

func (p *formulaParser) peek() string {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return ""
}

func (p *formulaParser) next() string {
	tok := p.peek()
	if tok != "" {
		p.pos++
	}
	return tok
}

func (p *formulaParser) parseIff() (formula, error) {
	left, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	for p.peek() == "iff" {
		p.next()
		right, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		left = binExpr{op: "iff", left: left, right: right}
	}
	return left, nil
}

func (p *formulaParser) parseImplies() (formula, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.peek() != "implies" {
		return left, nil
	}
	p.next()
	// implication is right-associative: A implies B implies C == A -> (B -> C)
	right, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	return binExpr{op: "implies", left: left, right: right}, nil
}

func (p *formulaParser) parseOr() (formula, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek() == "or" {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = binExpr{op: "or", left: left, right: right}
	}
	return left, nil
}

func (p *formulaParser) parseAnd() (formula, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peek() == "and" {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = binExpr{op: "and", left: left, right: right}
	}
	return left, nil
}

func (p *formulaParser) parseNot() (formula, error) {
	if p.peek() == "not" {
		p.next()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return notExpr{operand: operand}, nil
	}
	return p.parseAtom()
}

func (p *formulaParser) parseAtom() (formula, error) {
	tok := p.next()
	switch {
	case tok == "":
		return nil, fmt.Errorf("unexpected end of formula")
	case tok == "(":
		inner, err := p.parseIff()
		if err != nil {
			return nil, err
		}
		if p.next() != ")" {
			return nil, fmt.Errorf("missing closing parenthesis")
		}
		return inner, nil
	case tok == ")" || tok == "and" || tok == "or" || tok == "implies" || tok == "iff" || tok == "not":
		return nil, fmt.Errorf("unexpected token %q", tok)
	default:
		return atom(tok), nil
	}
}
