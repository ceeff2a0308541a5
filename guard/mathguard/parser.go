package mathguard

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// parser is a small recursive-descent parser for arithmetic expressions in a
// single symbolic variable: numbers, identifiers, + - * /, ** (or ^) and
// parentheses. It produces a polynomial directly instead of an AST.
type parser struct {
	tokens   []string
	pos      int
	variable string
}

func parseExpression(input string) (poly, string, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, "", err
	}
	if len(tokens) == 0 {
		return nil, "", fmt.Errorf("empty expression")
	}
	p := &parser{tokens: tokens}
	result, err := p.parseSum()
	if err != nil {
		return nil, "", err
	}
	if p.pos != len(p.tokens) {
		return nil, "", fmt.Errorf("unexpected token %q", p.tokens[p.pos])
	}
	return result, p.variable, nil
}

func tokenize(input string) ([]string, error) {
	var tokens []string
	runes := []rune(input)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '*' && i+1 < len(runes) && runes[i+1] == '*':
			tokens = append(tokens, "**")
			i += 2
		case r == '^':
			tokens = append(tokens, "**")
			i++
		case strings.ContainsRune("+-*/()=", r):
			tokens = append(tokens, string(r))
			i++
		case unicode.IsDigit(r) || r == '.':
			j := i
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			tokens = append(tokens, string(runes[i:j]))
			i = j
		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			tokens = append(tokens, string(runes[i:j]))
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q", string(r))
		}
	}
	return tokens, nil
}

func (p *parser) peek() string {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return ""
}

func (p *parser) next() string {
	tok := p.peek()
	if tok != "" {
		p.pos++
	}
	return tok
}

func (p *parser) parseSum() (poly, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek() {
		case "+":
			p.next()
			right, err := p.parseProduct()
			if err != nil {
				return nil, err
			}
			left = left.add(right)
		case "-":
			p.next()
			right, err := p.parseProduct()
			if err != nil {
				return nil, err
			}
			left = left.sub(right)
		default:
			return left, nil
		}
	}
}

func (p *parser) parseProduct() (poly, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek() {
		case "*":
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = left.mul(right)
		case "/":
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			if left, err = left.div(right); err != nil {
				return nil, err
			}
		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (poly, error) {
	switch p.peek() {
	case "-":
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return operand.neg(), nil
	case "+":
		p.next()
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (poly, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.peek() != "**" {
		return base, nil
	}
	p.next()
	// Right-associative; the exponent must reduce to a non-negative integer.
	exponent, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	c, ok := exponent.constant()
	if !ok || !c.IsInt() {
		return nil, fmt.Errorf("exponent must be an integer constant")
	}
	return base.pow(int(c.Num().Int64()))
}

func (p *parser) parseAtom() (poly, error) {
	tok := p.next()
	switch {
	case tok == "":
		return nil, fmt.Errorf("unexpected end of expression")
	case tok == "(":
		inner, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.next() != ")" {
			return nil, fmt.Errorf("missing closing parenthesis")
		}
		return inner, nil
	case unicode.IsDigit(rune(tok[0])) || tok[0] == '.':
		r := new(big.Rat)
		if _, ok := r.SetString(tok); !ok {
			return nil, fmt.Errorf("invalid number %q", tok)
		}
		return constPoly(r), nil
	case unicode.IsLetter(rune(tok[0])) || tok[0] == '_':
		if p.variable == "" {
			p.variable = tok
		} else if p.variable != tok {
			return nil, fmt.Errorf("multiple variables %q and %q; only one symbolic variable is supported", p.variable, tok)
		}
		return varPoly(), nil
	default:
		return nil, fmt.Errorf("unexpected token %q", tok)
	}
}
