package parser

import (
	"github.com/flylang/flylang/internal/fly/ast"
	"github.com/flylang/flylang/internal/fly/token"
)

// structureOrArray parses an object/array literal after `{` (spec
// §4.4.4). The first entry decides the variant: a DefineVariable with a
// non-property emplacement makes it a Structure, anything else an Array;
// every later entry must belong to the same family.
func (p *Parser) structureOrArray(behaviors Behaviors) (ast.Expression, error) {
	open, _ := p.expect(token.ObjectOpen)

	// `{:}` is the explicit empty-struct spelling.
	if p.is(token.VarDefTok) && p.cur().VarDefKind == token.VarDefNormal && p.peek(1).Kind == token.ObjectClose {
		p.advance()
		close, _ := p.expect(token.ObjectClose)
		return &ast.Structure{Slc: union(open.Slice, close.Slice)}, nil
	}

	if p.is(token.ObjectClose) {
		close, _ := p.expect(token.ObjectClose)
		return &ast.Array{Slc: union(open.Slice, close.Slice)}, nil
	}

	branches, _, err := p.branches(behaviors.WithAnyEmplacement(false), branchesOptions{
		splitKind: kindPtr(token.ArgSeparator),
		forceStop: func(p *Parser, t token.Token) bool { return t.Kind == token.ObjectClose },
	})
	if err != nil {
		return nil, err
	}
	close, ok := p.expect(token.ObjectClose)
	if !ok {
		return nil, &Expected{After: "object/array literal", Expected: "`}`", Found: p.cur()}
	}

	firstInstr, ok := singleInstruction(branches[0])
	if !ok {
		return nil, &UnableToParse{At: open.Slice, Reason: "each object/array literal entry must be a single instruction"}
	}
	firstDef, isStructure := firstInstr.(*ast.DefineVariable)
	if isStructure && firstDef.Emplacement.Kind == ast.EmplaceProperty {
		isStructure = false
	}

	if isStructure {
		entries := make([]ast.StructureEntry, 0, len(branches))
		for _, b := range branches {
			instr, ok := singleInstruction(b)
			if !ok {
				return nil, &UnableToParse{At: open.Slice, Reason: "each struct entry must be a single instruction"}
			}
			dv, ok := instr.(*ast.DefineVariable)
			if !ok || dv.Emplacement.Kind == ast.EmplaceProperty {
				return nil, &UnableToParse{At: instr.Slice(), Reason: "struct entries must all be `key: value` definitions"}
			}
			if dv.Constant {
				return nil, &UnableToParse{At: instr.Slice(), Reason: "`::` is not valid inside a struct literal"}
			}
			entry := ast.StructureEntry{Value: dv.Value}
			if dv.Emplacement.Kind == ast.EmplaceAny {
				entry.KeyExpr = dv.Emplacement.Expr
			} else {
				entry.Key = dv.Emplacement.Word
			}
			entries = append(entries, entry)
		}
		return &ast.Structure{Slc: union(open.Slice, close.Slice), Entries: entries}, nil
	}

	elements := make([]ast.Expression, 0, len(branches))
	for _, b := range branches {
		expr, ok := singleExpression(b)
		if !ok {
			return nil, &UnableToParse{At: open.Slice, Reason: "array literal entries must all be plain expressions"}
		}
		elements = append(elements, expr)
	}
	return &ast.Array{Slc: union(open.Slice, close.Slice), Elements: elements}, nil
}
