package parser

import (
	"github.com/flylang/flylang/internal/fly/ast"
	"github.com/flylang/flylang/internal/fly/token"
)

// optionalScopeTarget consumes a trailing `@name`/`@123` if present. Unlike
// scope()'s leading target, a breaker's target may be named or numbered.
func (p *Parser) optionalScopeTarget() *ast.ScopeTarget {
	if !p.is(token.ScopeTargetTok) {
		return nil
	}
	t := p.cur()
	p.advance()
	return &ast.ScopeTarget{
		Slc:      t.Slice,
		IsNamed:  t.ScopeTargetIsNamed,
		Named:    t.ScopeTargetNamed,
		Numbered: t.ScopeTargetNumbered,
	}
}

func singleWordName(branch []ast.Instruction) (string, bool) {
	expr, ok := singleExpression(branch)
	if !ok {
		return "", false
	}
	ident, ok := expr.(*ast.Identifier)
	if !ok {
		return "", false
	}
	return ident.Name, true
}

// ifConstruct parses `if (condition, yes, no)` as a Ternary expression
// statement, or `if [@target] (condition, process) [else ...]` as an If
// control-flow instruction (spec §4.4.6).
func (p *Parser) ifConstruct(behaviors Behaviors) (ast.Instruction, []error, error) {
	ifTok := p.cur()
	p.advance()

	sres, warnings, err := p.scope(behaviors, branchesOptions{})
	if err != nil {
		return nil, warnings, err
	}

	switch len(sres.Branches) {
	case 3:
		if sres.Target != nil {
			return nil, warnings, &UnableToParse{At: sres.Slice, Reason: "a scope target is not allowed on a ternary `if`"}
		}
		cond, ok := singleExpression(sres.Branches[0])
		yes, ok2 := singleExpression(sres.Branches[1])
		no, ok3 := singleExpression(sres.Branches[2])
		if !ok || !ok2 || !ok3 {
			return nil, warnings, &UnableToParse{At: sres.Slice, Reason: "each ternary `if` argument must be a single expression"}
		}
		tern := &ast.Ternary{Slc: union(ifTok.Slice, sres.Slice), Condition: cond, Yes: yes, No: no}
		return &ast.ValueOf{Slc: tern.Slc, Expr: tern}, warnings, nil

	case 2:
		cond, ok := singleExpression(sres.Branches[0])
		if !ok {
			return nil, warnings, &UnableToParse{At: sres.Slice, Reason: "an `if` condition must be a single expression"}
		}
		ifNode := &ast.If{
			Slc:         union(ifTok.Slice, sres.Slice),
			Condition:   cond,
			Process:     sres.Branches[1],
			ScopeTarget: sres.Target,
		}
		if p.is(token.Else) {
			p.advance()
			fallback, warns2, err := p.ifFallback(behaviors)
			warnings = append(warnings, warns2...)
			if err != nil {
				return nil, warnings, err
			}
			ifNode.Fallback = fallback
			ifNode.Slc = union(ifNode.Slc, fallback.Slice())
		}
		return ifNode, warnings, nil

	default:
		return nil, warnings, &UnableToParse{At: sres.Slice, Reason: "`if` requires 2 or 3 arguments"}
	}
}

// ifFallback parses an `else` arm: either another `if` (a chain — must
// itself be a conditional, not a ternary) or a parenthesized block.
func (p *Parser) ifFallback(behaviors Behaviors) (*ast.IfFallBack, []error, error) {
	if p.is(token.If) {
		instr, warnings, err := p.ifConstruct(behaviors)
		if err != nil {
			return nil, warnings, err
		}
		chain, ok := instr.(*ast.If)
		if !ok {
			return nil, warnings, &UnableToParse{At: instr.Slice(), Reason: "`else if` must be a conditional, not a ternary"}
		}
		return &ast.IfFallBack{Slc: chain.Slice(), Chain: chain}, warnings, nil
	}

	open, ok := p.expect(token.BlockOpen)
	if !ok {
		return nil, nil, &Expected{After: "`else`", Expected: "`if` or `(`", Found: p.cur()}
	}
	branches, warnings, err := p.branches(behaviors, branchesOptions{
		splitKind: kindPtr(token.ArgSeparator),
		forceStop: func(p *Parser, t token.Token) bool { return t.Kind == token.BlockClose },
	})
	if err != nil {
		return nil, warnings, err
	}
	close, ok := p.expect(token.BlockClose)
	if !ok {
		return nil, warnings, &Expected{After: "`else` block", Expected: "`)`", Found: p.cur()}
	}
	var instrs []ast.Instruction
	for _, b := range branches {
		instrs = append(instrs, b...)
	}
	return &ast.IfFallBack{Slc: union(open.Slice, close.Slice), Process: instrs}, warnings, nil
}

// loop parses `while`/`until`/`each`, sharing the shape
// `keyword [@target] (condirator, [item,] [index,] body)` (spec §4.4.6).
func (p *Parser) loop(behaviors Behaviors) (ast.Instruction, []error, error) {
	kwTok := p.cur()
	p.advance()

	sres, warnings, err := p.scope(behaviors, branchesOptions{})
	if err != nil {
		return nil, warnings, err
	}
	if len(sres.Branches) < 2 {
		return nil, warnings, &UnableToParse{At: sres.Slice, Reason: "a loop requires at least a condition and a body"}
	}

	condirator := sres.Branches[0]
	body := sres.Branches[len(sres.Branches)-1]
	extras := sres.Branches[1 : len(sres.Branches)-1]

	var param ast.LoopParameter
	if kwTok.Kind == token.Each {
		if len(extras) > 2 {
			return nil, warnings, &UnableToParse{At: sres.Slice, Reason: "`each` accepts at most an item and an index binding"}
		}
		iterable, ok := singleExpression(condirator)
		if !ok {
			return nil, warnings, &UnableToParse{At: sres.Slice, Reason: "`each`'s iterable must be a single expression"}
		}
		param = ast.LoopParameter{Kind: ast.LoopEach, Iterable: iterable}
		if len(extras) >= 1 {
			name, ok := singleWordName(extras[0])
			if !ok {
				return nil, warnings, &UnableToParse{At: sres.Slice, Reason: "`each`'s item binding must be a single name"}
			}
			param.Item = &name
		}
		if len(extras) >= 2 {
			name, ok := singleWordName(extras[1])
			if !ok {
				return nil, warnings, &UnableToParse{At: sres.Slice, Reason: "`each`'s index binding must be a single name"}
			}
			param.Index = &name
		}
	} else {
		if len(extras) > 1 {
			return nil, warnings, &UnableToParse{At: sres.Slice, Reason: "`while`/`until` accepts at most an index binding"}
		}
		cond, ok := singleExpression(condirator)
		if !ok {
			return nil, warnings, &UnableToParse{At: sres.Slice, Reason: "a loop condition must be a single expression"}
		}
		if kwTok.Kind == token.Until {
			cond = &ast.Reverse{Slc: cond.Slice(), Kind: ast.ReverseBoolean, Operand: cond}
		}
		param = ast.LoopParameter{Kind: ast.LoopWhile, Condition: cond}
		if len(extras) == 1 {
			name, ok := singleWordName(extras[0])
			if !ok {
				return nil, warnings, &UnableToParse{At: sres.Slice, Reason: "a loop's index binding must be a single name"}
			}
			param.Index = &name
		}
	}

	loopNode := &ast.Loop{
		Slc:         union(kwTok.Slice, sres.Slice),
		Through:     param,
		Process:     body,
		ScopeTarget: sres.Target,
	}
	return loopNode, warnings, nil
}

// isBreakTerminator reports whether the current token means "no value
// follows" for a `return` breaker.
func (p *Parser) isBreakTerminator() bool {
	switch p.cur().Kind {
	case token.EndOfInstruction, token.BlockClose, token.ArgSeparator, token.EOF, token.ScopeTargetTok:
		return true
	default:
		return false
	}
}

// breaker parses `return [expr] [@target]`, `pass [@target]`, or
// `stop [@target]` (spec §4.4.6).
func (p *Parser) breaker(behaviors Behaviors) (ast.Instruction, []error, error) {
	tok := p.cur()
	p.advance()

	var kind ast.BreakKind
	switch tok.Kind {
	case token.Return:
		kind = ast.BreakReturn
	case token.Pass:
		kind = ast.BreakPass
	default:
		kind = ast.BreakStop
	}

	var value ast.Expression
	if kind == ast.BreakReturn && !p.isBreakTerminator() {
		v, err := p.expression(behaviors)
		if err != nil {
			return nil, nil, err
		}
		value = v
	}

	target := p.optionalScopeTarget()

	slc := tok.Slice
	if value != nil {
		slc = union(slc, value.Slice())
	}
	if target != nil {
		slc = union(slc, target.Slice())
	}
	return &ast.Break{Slc: slc, Kind: kind, Value: value, ScopeTarget: target}, nil, nil
}

// modifiedDefinable parses `#<scope>(modifiers...) definable`, attaching
// the modifier list to the immediately-following variable or function
// definition (spec §4.4.7).
func (p *Parser) modifiedDefinable(behaviors Behaviors) (ast.Instruction, []error, error) {
	hashTok := p.cur()
	p.advance()

	sres, warnings, err := p.scope(behaviors, branchesOptions{})
	if err != nil {
		return nil, warnings, err
	}

	var mods []ast.Expression
	for _, b := range sres.Branches {
		if len(b) == 0 {
			continue
		}
		expr, ok := singleExpression(b)
		if !ok {
			return nil, warnings, &UnableToParse{At: sres.Slice, Reason: "each modifier must be a single name or call"}
		}
		switch expr.(type) {
		case *ast.Identifier, *ast.ReturnOf:
		default:
			return nil, warnings, &UnableToParse{At: expr.Slice(), Reason: "a modifier must be a name or a call"}
		}
		mods = append(mods, expr)
	}

	instr, warns2, err := p.instruction(behaviors)
	warnings = append(warnings, warns2...)
	if err != nil {
		return nil, warnings, err
	}
	switch instr.(type) {
	case *ast.DefineVariable, *ast.DefineFunction:
	default:
		return nil, warnings, &UnableToParse{At: instr.Slice(), Reason: "`#modifiers` must attach to a variable or function definition"}
	}

	md := &ast.ModifiedDefinable{Slc: union(hashTok.Slice, instr.Slice()), Modifiers: mods, Definable: instr}
	return md, warnings, nil
}
