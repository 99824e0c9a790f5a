package parser

import (
	"github.com/flylang/flylang/internal/fly/ast"
	"github.com/flylang/flylang/internal/fly/token"
)

// Precedence tiers, highest-binds-tightest, encoding spec §4.4.4's three
// priority classes as plain integers so the climbing loop below is a
// single numeric comparison rather than an ad-hoc match on operator
// families — the "encode priority as an integer" design note.
const (
	precComparison     = 100
	precArithmeticTight = 20 // Power, Multiply, Divide, EuclidianDivision, Modulo
	precArithmeticLoose = 10 // Add, Substract
	precBinaryBase      = 1  // + BinaryOperator ordinal (And=0, Xor=1, Or=2)
)

// isTightArithmetic reports whether op is in the tighter-binding
// arithmetic tier (everything except Add/Substract).
func isTightArithmetic(op token.Operator) bool {
	switch op {
	case token.Power, token.Multiply, token.Divide, token.EuclidianDivision, token.Modulo:
		return true
	default:
		return false
	}
}

// operatorAt reports the operation family and precedence of the token at
// the current cursor position, if it starts an infix operator.
func (p *Parser) operatorAt() (ast.OperationFamily, int, bool) {
	t := p.cur()
	switch t.Kind {
	case token.ComparisonTok:
		return ast.Comparison, precComparison, true
	case token.OperatorTok:
		if isTightArithmetic(t.Operator) {
			return ast.Arithmetic, precArithmeticTight, true
		}
		return ast.Arithmetic, precArithmeticLoose, true
	case token.BinaryOperatorTok:
		return ast.Binary, precBinaryBase + int(t.BinaryOperator), true
	default:
		return 0, 0, false
	}
}

// isTerminator reports whether the current token ends an expression:
// a closing delimiter, a separator, or end-of-file.
func (p *Parser) isTerminator() bool {
	switch p.cur().Kind {
	case token.BlockClose, token.ObjectClose, token.EndOfInstruction, token.ArgSeparator, token.EOF:
		return true
	default:
		return false
	}
}

// expression parses a full Pratt-precedence expression. Lazy mode (when
// set on behaviors) stops immediately after the first unary/primary
// operand, before any operator is consumed — used for `new <call>` and a
// unary prefix's own operand.
func (p *Parser) expression(behaviors Behaviors) (ast.Expression, error) {
	return p.binaryExpr(behaviors, 0)
}

// binaryExpr is precedence-climbing recursion: minPriority is the lowest
// precedence the caller will accept as a continuation, so operators of
// strictly higher priority recurse into the right operand (binding
// tighter) while operators of equal priority are left for THIS level's
// loop to fold in left-associatively — this directly produces the
// left-leaning tree invariant 5 requires for equal-priority operators,
// and is equivalent to (but simpler than) the spec's own description of
// a lazily-parsed right-hand side that the caller rebalances afterward:
// the minPriority parameter performs that rebalancing implicitly.
func (p *Parser) binaryExpr(behaviors Behaviors, minPriority int) (ast.Expression, error) {
	left, err := p.unary(behaviors)
	if err != nil {
		return nil, err
	}

	for {
		if behaviors.Lazy || p.isTerminator() {
			return left, nil
		}

		// `a !op b` — Not immediately followed by a comparison or binary
		// operator negates the operation as a whole (spec §4.4.4).
		if p.is(token.Not) {
			next := p.peek(1)
			if next.Kind != token.ComparisonTok && next.Kind != token.BinaryOperatorTok {
				return left, nil
			}
			notTok := p.cur()
			p.advance()
			fam, priority, _ := p.operatorAt()
			if priority < minPriority {
				return left, nil
			}
			opTok := p.cur()
			p.advance()
			right, err := p.binaryExpr(behaviors, priority+1)
			if err != nil {
				return nil, err
			}
			op := buildOperation(fam, opTok, left, right)
			left = &ast.Reverse{Slc: union(notTok.Slice, op.Slice()), Kind: ast.ReverseBoolean, Operand: op}
			continue
		}

		fam, priority, ok := p.operatorAt()
		if !ok || priority < minPriority {
			return left, nil
		}
		opTok := p.cur()
		p.advance()
		right, err := p.binaryExpr(behaviors, priority+1)
		if err != nil {
			return nil, err
		}
		left = buildOperation(fam, opTok, left, right)
	}
}

func buildOperation(fam ast.OperationFamily, opTok token.Token, left, right ast.Expression) *ast.Operation {
	op := &ast.Operation{
		Slc:    union(left.Slice(), right.Slice()),
		Family: fam,
		Left:   left,
		Right:  right,
	}
	switch fam {
	case ast.Arithmetic:
		op.Op = opTok.Operator
	case ast.Binary:
		op.BinOp = opTok.BinaryOperator
	case ast.Comparison:
		op.CompOp = opTok.Comparison
		op.Strict = opTok.Strict
	}
	return op
}

// unary handles the two unary prefixes, then falls through to primary.
// Its operand is parsed with behaviors forced Lazy so the prefix binds
// only the next unary/primary operand, never a following binary chain —
// the outer binaryExpr loop supplies that continuation instead.
func (p *Parser) unary(behaviors Behaviors) (ast.Expression, error) {
	switch p.cur().Kind {
	case token.Not:
		bangTok := p.cur()
		p.advance()
		operand, err := p.unary(behaviors.With(true))
		if err != nil {
			return nil, err
		}
		return &ast.Reverse{Slc: union(bangTok.Slice, operand.Slice()), Kind: ast.ReverseBoolean, Operand: operand}, nil

	case token.OperatorTok:
		if p.cur().Operator != token.Substract {
			break
		}
		minusTok := p.cur()
		p.advance()
		operand, err := p.unary(behaviors.With(true))
		if err != nil {
			return nil, err
		}
		// Sign folding (spec invariant 7): absorb into a numeric literal
		// rather than wrapping it in Reverse{Sign}.
		if num, ok := operand.(*ast.NumberLiteral); ok {
			num.Value = -num.Value
			num.Slc = union(minusTok.Slice, num.Slc)
			return num, nil
		}
		return &ast.Reverse{Slc: union(minusTok.Slice, operand.Slice()), Kind: ast.ReverseSign, Operand: operand}, nil
	}

	return p.primary(behaviors)
}

// primary parses a leaf expression (literal, parenthesized group, object
// or array literal, `new` instantiation) and then folds in any trailing
// member-access/call postfix chain.
func (p *Parser) primary(behaviors Behaviors) (ast.Expression, error) {
	t := p.cur()
	var base ast.Expression

	switch t.Kind {
	case token.Word:
		p.advance()
		base = &ast.Identifier{Slc: t.Slice, Name: t.Literal()}

	case token.True, token.False:
		p.advance()
		base = &ast.BooleanLiteral{Slc: t.Slice, Value: t.Kind == token.True}

	case token.Number:
		p.advance()
		base = &ast.NumberLiteral{Slc: t.Slice, Value: t.NumberValue}

	case token.String:
		s, err := p.parseStringLiteral(t)
		if err != nil {
			return nil, err
		}
		p.advance()
		base = s

	case token.BlockOpen:
		if p.peek(1).Kind == token.BlockClose {
			open := t
			p.advance()
			close := p.cur()
			p.advance()
			base = &ast.EmptyLiteral{Slc: union(open.Slice, close.Slice)}
			break
		}
		open := t
		p.advance()
		inner, err := p.expression(behaviors.With(false))
		if err != nil {
			return nil, err
		}
		close, ok := p.expect(token.BlockClose)
		if !ok {
			return nil, &Expected{After: "parenthesized expression", Expected: "`)`", Found: p.cur()}
		}
		base = &ast.Prioritized{Slc: union(open.Slice, close.Slice), Inner: inner}

	case token.ObjectOpen:
		s, err := p.structureOrArray(behaviors)
		if err != nil {
			return nil, err
		}
		base = s

	case token.New:
		newTok := t
		p.advance()
		inner, err := p.expression(behaviors.With(true))
		if err != nil {
			return nil, err
		}
		ret, ok := inner.(*ast.ReturnOf)
		if !ok {
			return nil, &UnableToParse{At: union(newTok.Slice, inner.Slice()), Reason: "`new` requires a call expression"}
		}
		base = &ast.Instanciate{Slc: union(newTok.Slice, ret.Slice()), Class: ret.Call.Callee, Call: ret.Call}

	default:
		return nil, &UnexpectedToken{Token: t}
	}

	return p.postfix(base, behaviors)
}

// postfix folds in a chain of `.key`/`.0`/`.(expr)` member access and
// `(args...)` calls onto base.
func (p *Parser) postfix(base ast.Expression, behaviors Behaviors) (ast.Expression, error) {
	for {
		switch p.cur().Kind {
		case token.Accessor:
			dot := p.cur()
			p.advance()
			switch p.cur().Kind {
			case token.Word, token.True, token.False:
				key := p.cur()
				p.advance()
				base = &ast.Property{Slc: union(base.Slice(), union(dot.Slice, key.Slice)), Base: base, Kind: ast.PropertyKey, Key: key.Literal()}
			case token.Number:
				idx := p.cur()
				p.advance()
				base = &ast.Property{Slc: union(base.Slice(), union(dot.Slice, idx.Slice)), Base: base, Kind: ast.PropertyIndex, Index: int(idx.NumberValue)}
			case token.BlockOpen:
				open := p.cur()
				p.advance()
				inner, err := p.expression(behaviors.With(false))
				if err != nil {
					return nil, err
				}
				close, ok := p.expect(token.BlockClose)
				if !ok {
					return nil, &Expected{After: "computed property access", Expected: "`)`", Found: p.cur()}
				}
				_ = open
				base = &ast.Property{Slc: union(base.Slice(), close.Slice), Base: base, Kind: ast.PropertyExpr, Expr: inner}
			default:
				return nil, &Expected{After: "`.`", Expected: "a name, number, or `(expression)`", Found: p.cur()}
			}

		case token.BlockOpen:
			open := p.cur()
			p.advance()
			branches, _, err := p.branches(behaviors.With(false), branchesOptions{
				splitKind: kindPtr(token.ArgSeparator),
				forceStop: func(p *Parser, t token.Token) bool { return t.Kind == token.BlockClose },
			})
			if err != nil {
				return nil, err
			}
			close, ok := p.expect(token.BlockClose)
			if !ok {
				return nil, &Expected{After: "call arguments", Expected: "`)`", Found: p.cur()}
			}
			var args []ast.Expression
			for _, b := range branches {
				if len(b) == 0 {
					continue
				}
				expr, ok := singleExpression(b)
				if !ok {
					return nil, &UnableToParse{At: b[0].Slice(), Reason: "each call argument must be a single expression"}
				}
				args = append(args, expr)
			}
			call := &ast.Call{Slc: union(open.Slice, close.Slice), Callee: base, Arguments: args}
			call.Slc = union(base.Slice(), call.Slc)
			base = &ast.ReturnOf{Slc: call.Slc, Call: call}

		default:
			return base, nil
		}
	}
}

func kindPtr(k token.Kind) *token.Kind { return &k }
