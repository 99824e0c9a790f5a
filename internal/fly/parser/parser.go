// Package parser implements flylang's recursive-descent, Pratt-style
// expression/instruction parser: it drives a token Analyser, builds ast
// nodes through a family of Parsable rules, and carries a small copyable
// Behaviors set rather than mutable parser-wide flags.
package parser

import (
	"io"
	"log"

	"github.com/flylang/flylang/internal/fly/analyser"
	"github.com/flylang/flylang/internal/fly/ast"
	"github.com/flylang/flylang/internal/fly/module"
	"github.com/flylang/flylang/internal/fly/token"
)

// Option configures a Parser at construction, following the same
// functional-options idiom as lexer.Option.
type Option func(*Parser)

// WithTracing attaches a logger writing to w, mirroring lexer.WithTracing.
// No parser rule writes to it, so enabling it produces no output.
func WithTracing(w io.Writer) Option {
	return func(p *Parser) {
		p.trace = log.New(w, "parser: ", 0)
	}
}

// Parser drives a token Analyser over a fixed token stream and produces
// an ast.Program. It never re-reads the source for structure — only the
// slices already attached to each token.
type Parser struct {
	mod   *module.Module
	toks  *analyser.Analyser[token.Token]
	trace *log.Logger
}

// New constructs a Parser over the given token stream, produced by
// internal/fly/lexer.Tokenize. The stream is expected to end with an EOF
// token, as Tokenize always produces.
func New(mod *module.Module, tokens []token.Token, opts ...Option) *Parser {
	p := &Parser{mod: mod, toks: analyser.New(tokens)}
	for _, opt := range opts {
		opt(p)
	}
	p.toks.Next(0, 1)
	return p
}

// Parse runs the top-level branches driver over the whole token stream
// and returns the resulting Program, or the first hard (Stop-category)
// error encountered. Non-fatal Warn-category errors (EmptyScope) are
// collected in the second diagnostics slice.
func (p *Parser) Parse() (*ast.Program, []error, error) {
	startSlice := p.cur().Slice
	branches, warnings, err := p.branches(Behaviors{AllowAnyVariableEmplacement: true}, branchesOptions{
		forceStop: func(p *Parser, t token.Token) bool { return t.Kind == token.EOF },
	})
	if err != nil {
		return nil, warnings, err
	}
	var instrs []ast.Instruction
	for _, b := range branches {
		instrs = append(instrs, b...)
	}
	slc := startSlice
	for _, instr := range instrs {
		slc = union(slc, instr.Slice())
	}
	return &ast.Program{Slc: slc, Instructions: instrs}, warnings, nil
}

func (p *Parser) logf(format string, args ...any) {
	if p.trace != nil {
		p.trace.Printf(format, args...)
	}
}

// cur returns the token the cursor's one-token window currently holds.
// The window always holds exactly one token after New: rules must check
// is(token.EOF) before calling advance, since the lexer's token stream
// always ends with an EOF token and the window never grows past it.
func (p *Parser) cur() token.Token {
	items := p.toks.Get()
	if len(items) == 0 {
		return token.Token{Kind: token.EOF}
	}
	return items[0]
}

// peek returns the token n positions ahead of the current one. peek(0)
// is equivalent to cur().
func (p *Parser) peek(n int) token.Token {
	if n == 0 {
		return p.cur()
	}
	items, ok := p.toks.Lookup(n-1, 1)
	if !ok || len(items) == 0 {
		return token.Token{Kind: token.EOF}
	}
	return items[0]
}

// advance moves the one-token window forward by one, discarding the
// token just consumed. It is a no-op at EOF: the window never grows past
// the stream's final EOF token.
func (p *Parser) advance() {
	if p.is(token.EOF) {
		return
	}
	p.toks.Next(0, 1)
}

// is reports whether the current token has the given kind.
func (p *Parser) is(k token.Kind) bool {
	return p.cur().Kind == k
}

// expect consumes the current token if it has the given kind, reporting
// ok=false (without advancing) otherwise.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.cur().Kind != k {
		return token.Token{}, false
	}
	t := p.cur()
	p.advance()
	return t, true
}

// union returns the smallest slice spanning both a and b.
func union(a, b module.Slice) module.Slice {
	return a.Union(b)
}
