package parser

import (
	"github.com/flylang/flylang/internal/fly/ast"
	"github.com/flylang/flylang/internal/fly/token"
)

// instruction parses a single instruction, dispatching on the current
// token's kind. The default case parses a bare expression, then checks
// for a trailing VarDef token to turn it into a variable definition.
func (p *Parser) instruction(behaviors Behaviors) (ast.Instruction, []error, error) {
	switch p.cur().Kind {
	case token.Modifier:
		return p.modifiedDefinable(behaviors)
	case token.Fn:
		return p.defineFunction(behaviors)
	case token.Cs:
		return p.defineClass(behaviors)
	case token.While, token.Until, token.Each:
		return p.loop(behaviors)
	case token.If:
		return p.ifConstruct(behaviors)
	case token.Return, token.Pass, token.Stop:
		return p.breaker(behaviors)
	case token.Use:
		return p.use(behaviors)
	default:
		expr, err := p.expression(behaviors)
		if err != nil {
			return nil, nil, err
		}
		if p.is(token.VarDefTok) {
			return p.variableDefinition(behaviors, expr)
		}
		return &ast.ValueOf{Slc: expr.Slice(), Expr: expr}, nil, nil
	}
}
