package parser

import (
	"github.com/flylang/flylang/internal/fly/analyser"
	"github.com/flylang/flylang/internal/fly/ast"
	"github.com/flylang/flylang/internal/fly/module"
	"github.com/flylang/flylang/internal/fly/token"
)

// parseStringLiteral converts a String token's lexer-level parts into
// ast-level parts, per spec §4.4.8: each Expression part's embedded
// token stream is re-parsed by a fresh Parser and must reduce to exactly
// one instruction, which is extracted as an expression.
func (p *Parser) parseStringLiteral(t token.Token) (*ast.StringLiteral, error) {
	parts := make([]ast.StringPart, 0, len(t.StringParts))
	for _, part := range t.StringParts {
		switch part.Kind {
		case token.PartLiteral:
			text := part.Text
			parts = append(parts, ast.StringPart{Literal: &text})
		case token.PartExpression:
			expr, err := p.parseEmbedded(part.Tokens, t.Slice)
			if err != nil {
				return nil, err
			}
			parts = append(parts, ast.StringPart{Expr: expr})
		}
	}
	return &ast.StringLiteral{Slc: t.Slice, Parts: parts}, nil
}

// parseEmbedded runs a nested Parser over an interpolation's embedded
// tokens, requiring the result to be exactly one ValueOf-wrapped
// expression. enclosing is used only to anchor an error slice if the
// embedded stream is empty, which is what the lexer produces for `&()`.
func (p *Parser) parseEmbedded(tokens []token.Token, enclosing module.Slice) (ast.Expression, error) {
	if len(tokens) == 0 {
		return nil, &UnableToParse{At: enclosing, Reason: "empty string interpolation"}
	}
	end := tokens[len(tokens)-1].Slice.End
	mod := tokens[len(tokens)-1].Slice.Module
	withEOF := make([]token.Token, len(tokens)+1)
	copy(withEOF, tokens)
	withEOF[len(tokens)] = token.Token{Kind: token.EOF, Slice: module.Slice{Module: mod, Start: end, End: end}}

	sub := &Parser{mod: p.mod, toks: analyser.New(withEOF)}
	sub.toks.Next(0, 1)

	branches, _, err := sub.branches(Behaviors{AllowAnyVariableEmplacement: true}, branchesOptions{
		forceStop: func(p *Parser, t token.Token) bool { return t.Kind == token.EOF },
	})
	if err != nil {
		return nil, err
	}
	var instrs []ast.Instruction
	for _, b := range branches {
		instrs = append(instrs, b...)
	}
	if len(instrs) != 1 {
		return nil, &UnableToParse{At: enclosing, Reason: "a string interpolation must contain exactly one expression"}
	}
	v, ok := instrs[0].(*ast.ValueOf)
	if !ok {
		return nil, &UnexpectedNode{At: instrs[0].Slice()}
	}
	return v.Expr, nil
}
