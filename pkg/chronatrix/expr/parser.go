package expr

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/coality/chronatrix/pkg/chronatrix/value"
)

// ErrRejected is the terminal outcome for any condition outside the
// allowed grammar. Parse errors all wrap it; callers that only care
// about accept/reject can test with errors.Is.
var ErrRejected = errors.New("condition rejected")

// allowedCalls maps the callable names to their required arity.
// No other identifier may ever appear in call position.
var allowedCalls = map[string]int{
	"abs": 1,
	"min": 2,
	"max": 2,
}

// Parse turns a condition string into a syntax tree. The returned
// error always wraps ErrRejected; it carries the reason for logging
// but is never a crash path.
func Parse(text string) (Node, error) {
	toks, err := tokenize(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	p := &parser{toks: toks}
	n, err := p.parseOr()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	if p.peek().typ != tokEOF {
		return nil, fmt.Errorf("%w: trailing input at offset %d", ErrRejected, p.peek().pos)
	}
	return n, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.typ != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(typ tokenType, what string) (token, error) {
	t := p.next()
	if t.typ != typ {
		return t, fmt.Errorf("expected %s at offset %d", what, t.pos)
	}
	return t, nil
}

func (p *parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().typ == tokOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Logical{Op: "or", Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peek().typ == tokAnd {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &Logical{Op: "and", Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseNot() (Node, error) {
	if p.peek().typ == tokNot {
		p.next()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Not{Operand: operand}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (Node, error) {
	left, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	switch t := p.peek(); t.typ {
	case tokEQ, tokNE, tokLT, tokLE, tokGT, tokGE:
		p.next()
		right, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		return &Comparison{Op: t.lit, Left: left, Right: right}, nil
	case tokIs:
		p.next()
		negate := false
		if p.peek().typ == tokNot {
			p.next()
			negate = true
		}
		if _, err := p.expect(tokNull, "'null'"); err != nil {
			return nil, err
		}
		return &IsNull{Operand: left, Negate: negate}, nil
	}
	return left, nil
}

func (p *parser) parseSum() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.typ != tokPlus && t.typ != tokMinus {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: t.lit[0], Left: left, Right: right}
	}
}

func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.typ != tokStar && t.typ != tokSlash {
			return left, nil
		}
		p.next()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: t.lit[0], Left: left, Right: right}
	}
}

func (p *parser) parseFactor() (Node, error) {
	if p.peek().typ == tokMinus {
		t := p.next()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: t.lit[0], Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	t := p.next()
	switch t.typ {
	case tokNumber:
		if i, err := strconv.ParseInt(t.lit, 10, 64); err == nil {
			return &Literal{Val: value.Int(i)}, nil
		}
		f, err := strconv.ParseFloat(t.lit, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed number at offset %d", t.pos)
		}
		return &Literal{Val: value.Float(f)}, nil
	case tokString:
		return &Literal{Val: value.String(t.lit)}, nil
	case tokTrue:
		return &Literal{Val: value.Bool(true)}, nil
	case tokFalse:
		return &Literal{Val: value.Bool(false)}, nil
	case tokNull:
		return &Literal{Val: value.Null()}, nil
	case tokLParen:
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case tokIdent:
		if p.peek().typ != tokLParen {
			return &Variable{Name: t.lit}, nil
		}
		arity, ok := allowedCalls[t.lit]
		if !ok {
			return nil, fmt.Errorf("call to disallowed name %q at offset %d", t.lit, t.pos)
		}
		p.next() // consume '('
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		if len(args) != arity {
			return nil, fmt.Errorf("%s takes %d arguments, got %d", t.lit, arity, len(args))
		}
		return &Call{Name: t.lit, Args: args}, nil
	}
	return nil, fmt.Errorf("unexpected token at offset %d", t.pos)
}

func (p *parser) parseArgs() ([]Node, error) {
	if p.peek().typ == tokRParen {
		p.next()
		return nil, nil
	}
	var args []Node
	for {
		arg, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		switch p.next().typ {
		case tokComma:
			continue
		case tokRParen:
			return args, nil
		default:
			return nil, fmt.Errorf("expected ',' or ')' in argument list")
		}
	}
}
