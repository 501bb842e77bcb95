package validate

import (
	"strconv"
	"strings"
)

// EvalExpr evaluates a plain arithmetic expression containing only
// numeric literals and the four basic operators. Anything else, and
// division by zero, makes the expression non-evaluable (ok=false)
// rather than an error.
func EvalExpr(expr string) (float64, bool) {
	for _, r := range expr {
		if !strings.ContainsRune("0123456789+-*/ .", r) {
			return 0, false
		}
	}
	p := &exprParser{tokens: tokenize(expr)}
	v, ok := p.parseSum()
	if !ok || p.pos != len(p.tokens) {
		return 0, false
	}
	return v, true
}

type exprParser struct {
	tokens []string
	pos    int
}

func tokenize(expr string) []string {
	var tokens []string
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == ' ':
			i++
		case strings.IndexByte("+-*/", c) >= 0:
			tokens = append(tokens, string(c))
			i++
		default:
			j := i
			for j < len(expr) && (expr[j] >= '0' && expr[j] <= '9' || expr[j] == '.') {
				j++
			}
			if j == i {
				return nil
			}
			tokens = append(tokens, expr[i:j])
			i = j
		}
	}
	return tokens
}

func (p *exprParser) parseSum() (float64, bool) {
	left, ok := p.parseProduct()
	if !ok {
		return 0, false
	}
	for p.pos < len(p.tokens) {
		op := p.tokens[p.pos]
		if op != "+" && op != "-" {
			break
		}
		p.pos++
		right, ok := p.parseProduct()
		if !ok {
			return 0, false
		}
		if op == "+" {
			left += right
		} else {
			left -= right
		}
	}
	return left, true
}

func (p *exprParser) parseProduct() (float64, bool) {
	left, ok := p.parseFactor()
	if !ok {
		return 0, false
	}
	for p.pos < len(p.tokens) {
		op := p.tokens[p.pos]
		if op != "*" && op != "/" {
			break
		}
		p.pos++
		right, ok := p.parseFactor()
		if !ok {
			return 0, false
		}
		if op == "*" {
			left *= right
		} else {
			if right == 0 {
				return 0, false
			}
			left /= right
		}
	}
	return left, true
}

func (p *exprParser) parseFactor() (float64, bool) {
	neg := false
	for p.pos < len(p.tokens) && p.tokens[p.pos] == "-" {
		neg = !neg
		p.pos++
	}
	if p.pos >= len(p.tokens) {
		return 0, false
	}
	v, err := strconv.ParseFloat(p.tokens[p.pos], 64)
	if err != nil {
		return 0, false
	}
	p.pos++
	if neg {
		v = -v
	}
	return v, true
}
