package parser

import (
	"github.com/flylang/flylang/internal/fly/ast"
	"github.com/flylang/flylang/internal/fly/token"
)

// emplacementFrom converts an already-parsed expression into a variable
// definition's left-hand side, per spec §4.4.5: a word, a property-read,
// or — only when AllowAnyVariableEmplacement is set — any expression.
func emplacementFrom(expr ast.Expression, allowAny bool) (ast.Emplacement, error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return ast.Emplacement{Kind: ast.EmplaceWord, Word: e.Name}, nil
	case *ast.Property:
		return ast.Emplacement{Kind: ast.EmplaceProperty, Prop: e}, nil
	default:
		if allowAny {
			return ast.Emplacement{Kind: ast.EmplaceAny, Expr: expr}, nil
		}
		return ast.Emplacement{}, &UnableToParse{At: expr.Slice(), Reason: "invalid variable emplacement"}
	}
}

// variableDefinition finishes parsing `emplacement (: | :: | op:) value`
// once emplacementExpr and the VarDef token have already been
// identified by the caller.
func (p *Parser) variableDefinition(behaviors Behaviors, emplacementExpr ast.Expression) (ast.Instruction, []error, error) {
	varDefTok := p.cur()
	p.advance()

	emplacement, err := emplacementFrom(emplacementExpr, behaviors.AllowAnyVariableEmplacement)
	if err != nil {
		return nil, nil, err
	}

	value, err := p.expression(behaviors.With(false))
	if err != nil {
		return nil, nil, err
	}

	if varDefTok.VarDefKind == token.VarDefWithOperation {
		value = &ast.Operation{
			Slc:    union(emplacementExpr.Slice(), value.Slice()),
			Family: ast.Arithmetic,
			Op:     varDefTok.FoldedOp,
			Left:   emplacementExpr,
			Right:  value,
		}
	}

	def := &ast.DefineVariable{
		Slc:         union(emplacementExpr.Slice(), value.Slice()),
		Emplacement: emplacement,
		Constant:    varDefTok.VarDefKind == token.VarDefConstant,
		Value:       value,
	}
	return def, nil, nil
}

// defineFunction parses `fn [name] [@scope_target] ( args..., body )`.
// The scope's last branch is always the body; every earlier branch must
// reduce to a single Word argument name.
func (p *Parser) defineFunction(behaviors Behaviors) (ast.Instruction, []error, error) {
	fnTok := p.cur()
	p.advance()

	var name *string
	if p.is(token.Word) {
		n := p.cur().Literal()
		name = &n
		p.advance()
	}

	sres, warnings, err := p.scope(behaviors, branchesOptions{})
	if err != nil {
		return nil, warnings, err
	}

	var args []string
	for _, b := range sres.Branches[:len(sres.Branches)-1] {
		expr, ok := singleExpression(b)
		if !ok {
			return nil, warnings, &UnableToParse{At: sres.Slice, Reason: "each function argument must be a single name"}
		}
		ident, ok := expr.(*ast.Identifier)
		if !ok {
			return nil, warnings, &UnableToParse{At: expr.Slice(), Reason: "function arguments must be plain names"}
		}
		args = append(args, ident.Name)
	}

	bodyBranch := sres.Branches[len(sres.Branches)-1]
	body := bodyBranch
	if len(bodyBranch) == 1 {
		if v, ok := bodyBranch[0].(*ast.ValueOf); ok {
			body = []ast.Instruction{&ast.Break{Slc: v.Slice(), Kind: ast.BreakReturn, Value: v.Expr}}
		}
	}

	fn := &ast.DefineFunction{
		Slc:         union(fnTok.Slice, sres.Slice),
		Name:        name,
		Arguments:   args,
		Body:        body,
		ScopeTarget: sres.Target,
	}
	return fn, warnings, nil
}

// defineClass parses `cs <name> ( [parents...]?, [constructor]?, body? )`.
// Every branch before the last is either a bare parent-name word (before
// the constructor appears) or a single standalone `fn` branch (the
// constructor, at most one); the last branch is the class body, each of
// its instructions becoming one ClassItem.
func (p *Parser) defineClass(behaviors Behaviors) (ast.Instruction, []error, error) {
	csTok := p.cur()
	p.advance()

	nameTok, ok := p.expect(token.Word)
	if !ok {
		return nil, nil, &Expected{After: "`cs`", Expected: "a class name", Found: p.cur()}
	}

	sres, warnings, err := p.scope(behaviors, branchesOptions{})
	if err != nil {
		return nil, warnings, err
	}

	var parents []string
	var constructor *ast.DefineFunction

	if len(sres.Branches) > 1 {
		for _, b := range sres.Branches[:len(sres.Branches)-1] {
			instr, ok := singleInstruction(b)
			if !ok {
				return nil, warnings, &UnableToParse{At: sres.Slice, Reason: "expected a parent class name or constructor"}
			}
			switch v := instr.(type) {
			case *ast.ValueOf:
				ident, ok := v.Expr.(*ast.Identifier)
				if !ok || constructor != nil {
					return nil, warnings, &UnableToParse{At: instr.Slice(), Reason: "expected a parent class name"}
				}
				parents = append(parents, ident.Name)
			case *ast.DefineFunction:
				if constructor != nil {
					return nil, warnings, &UnableToParse{At: instr.Slice(), Reason: "a class may have only one constructor"}
				}
				constructor = v
			default:
				return nil, warnings, &UnableToParse{At: instr.Slice(), Reason: "expected a parent class name or constructor"}
			}
		}
	}

	bodyBranch := sres.Branches[len(sres.Branches)-1]
	items := make([]ast.ClassItem, 0, len(bodyBranch))
	for _, instr := range bodyBranch {
		item, err := classItemFromInstruction(instr)
		if err != nil {
			return nil, warnings, err
		}
		items = append(items, item)
	}

	cls := &ast.DefineClass{
		Slc:         union(csTok.Slice, sres.Slice),
		Name:        nameTok.Literal(),
		Parents:     parents,
		Constructor: constructor,
		Items:       items,
	}
	return cls, warnings, nil
}

func classItemFromInstruction(instr ast.Instruction) (ast.ClassItem, error) {
	modifiers := []ast.Expression(nil)
	target := instr
	if md, ok := instr.(*ast.ModifiedDefinable); ok {
		modifiers = md.Modifiers
		target = md.Definable
	}

	switch t := target.(type) {
	case *ast.DefineVariable:
		if t.Emplacement.Kind == ast.EmplaceProperty {
			return ast.ClassItem{}, &UnableToParse{At: t.Slc, Reason: "a class field's emplacement must be a plain name"}
		}
		return ast.ClassItem{Visibility: ast.Public, Modifiers: modifiers, Variable: t}, nil
	case *ast.DefineFunction:
		if t.Name == nil {
			return ast.ClassItem{}, &UnableToParse{At: t.Slc, Reason: "class methods must be named"}
		}
		return ast.ClassItem{Visibility: ast.Public, Modifiers: modifiers, Function: t}, nil
	default:
		return ast.ClassItem{}, &UnableToParse{At: instr.Slice(), Reason: "class body entries must be field or method definitions"}
	}
}
