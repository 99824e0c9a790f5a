package parser

import (
	"strings"

	"github.com/flylang/flylang/internal/fly/ast"
	"github.com/flylang/flylang/internal/fly/token"
)

// fileIndicators is the fixed set of characters that mark a `use`
// location as a file path rather than a package name.
var fileIndicators = map[byte]bool{'.': true, '/': true}

// use parses `use [ {names...} from ] "<loc>" [in <var>]` (spec §4.4.7).
// The location must be a plain string literal — interpolation is rejected.
func (p *Parser) use(behaviors Behaviors) (ast.Instruction, []error, error) {
	useTok := p.cur()
	p.advance()

	var selectors []string
	if p.is(token.ObjectOpen) || p.is(token.BlockOpen) {
		closeKind := token.ObjectClose
		if p.is(token.BlockOpen) {
			closeKind = token.BlockClose
		}
		p.advance()
		for !p.is(closeKind) {
			nameTok, ok := p.expect(token.Word)
			if !ok {
				return nil, nil, &Expected{After: "`use` selector list", Expected: "a name", Found: p.cur()}
			}
			selectors = append(selectors, nameTok.Literal())
			if p.is(token.ArgSeparator) {
				p.advance()
				continue
			}
			break
		}
		if _, ok := p.expect(closeKind); !ok {
			return nil, nil, &Expected{After: "`use` selector list", Expected: "a closing delimiter", Found: p.cur()}
		}
		if _, ok := p.expect(token.From); !ok {
			return nil, nil, &Expected{After: "`use` selector list", Expected: "`from`", Found: p.cur()}
		}
	}

	if !p.is(token.String) {
		return nil, nil, &Expected{After: "`use`", Expected: "a string literal location", Found: p.cur()}
	}
	strTok := p.cur()
	lit, err := p.parseStringLiteral(strTok)
	if err != nil {
		return nil, nil, err
	}
	var loc strings.Builder
	for _, part := range lit.Parts {
		if part.Expr != nil {
			return nil, nil, &UnableToParse{At: strTok.Slice, Reason: "a `use` location must be a plain string literal"}
		}
		loc.WriteString(*part.Literal)
	}
	p.advance()
	location := loc.String()

	isFile := len(location) > 0 && fileIndicators[location[0]]

	endSlice := strTok.Slice
	var bindName *string
	if p.is(token.In) {
		p.advance()
		nameTok, ok := p.expect(token.Word)
		if !ok {
			return nil, nil, &Expected{After: "`in`", Expected: "a name", Found: p.cur()}
		}
		n := nameTok.Literal()
		bindName = &n
		endSlice = nameTok.Slice
	}

	if !p.isTerminator() {
		return nil, nil, &UnableToParse{At: p.cur().Slice, Reason: "unexpected token after `use`"}
	}

	u := &ast.Use{
		Slc:       union(useTok.Slice, endSlice),
		Selectors: selectors,
		Location:  location,
		IsFile:    isFile,
		BindName:  bindName,
	}
	return u, nil, nil
}
