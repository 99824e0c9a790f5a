// Package lexer tokenizes flylang source into a flat, location-tagged
// token stream, tracking nested scopes, string interpolation, numeric
// bases, escapes, and comments.
//
// It drives an analyser.Analyser[rune] over the module's source runes
// (per the spec's "Analyser genericity" design note); the window it keeps
// open at any moment is exactly the slice of the token currently being
// built, grown one rule at a time the way §4.2's algorithm describes.
package lexer

import (
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/flylang/flylang/internal/fly/analyser"
	"github.com/flylang/flylang/internal/fly/module"
	"github.com/flylang/flylang/internal/fly/scope"
	"github.com/flylang/flylang/internal/fly/token"
)

// Option configures a Lexer using the functional-options pattern, rather
// than exposing mutable fields.
type Option func(*Lexer)

// WithTracing makes the lexer write one line per emitted token to w. It is
// diagnostic plumbing only, never a language feature.
func WithTracing(w io.Writer) Option {
	return func(l *Lexer) {
		l.trace = log.New(w, "lex: ", 0)
	}
}

// Lexer drives a character Analyser over a Module, producing Tokens.
type Lexer struct {
	mod    *module.Module
	chars  *analyser.Analyser[rune]
	scopes *scope.Stack

	tokens       []token.Token
	errors       []error
	lastProduced *token.Token

	trace *log.Logger
}

// New constructs a Lexer over m.
func New(m *module.Module, opts ...Option) *Lexer {
	l := &Lexer{
		mod:    m,
		chars:  analyser.New(m.Runes(0, m.Len())),
		scopes: scope.NewStack(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Tokenize runs the lexer to completion, returning every token produced
// (terminated by a synthetic EOF token) and any diagnostics raised along
// the way. A Stop-class error (see errors.go) halts tokenizing immediately,
// per the spec's "the parser never attempts recovery" rule, which applies
// symmetrically to the lexer.
func (l *Lexer) Tokenize() ([]token.Token, []error) {
	for {
		tok, foldPrev, err := l.nextToken()
		if err != nil {
			if err != errEOF && err != errUnterminated {
				l.errors = append(l.errors, err)
			}
			break
		}
		if foldPrev && len(l.tokens) > 0 {
			l.tokens = l.tokens[:len(l.tokens)-1]
		}
		l.tokens = append(l.tokens, tok)
		l.lastProduced = &l.tokens[len(l.tokens)-1]
		if l.trace != nil {
			l.trace.Printf("%-16s %q @%s", tok.Kind, tok.Literal(), tok.Pos())
		}
	}

	l.tokens = append(l.tokens, token.Token{Kind: token.EOF, Slice: module.EOF(l.mod)})

	for _, e := range l.scopes.Unclosed() {
		l.errors = append(l.errors, e)
	}
	return l.tokens, l.errors
}

// curSlice returns the module slice covered by the analyser's current
// window — the token being built.
func (l *Lexer) curSlice() module.Slice {
	s, e := l.chars.Range()
	return module.Slice{Module: l.mod, Start: s, End: e}
}

// peekN looks skip runes past the current window's end, without consuming.
func (l *Lexer) peekN(skip int) (rune, bool) {
	rs, ok := l.chars.Lookup(skip, 1)
	if !ok {
		return 0, false
	}
	return rs[0], true
}

// skipTrivia discards whitespace and comments between tokens: `||…||`
// block comments and `|…\n` line comments, per §4.2.
func (l *Lexer) skipTrivia() {
	l.chars.Next(0, 0) // collapse any leftover window from the previous token
	for {
		c, ok := l.peekN(0)
		if !ok {
			return
		}
		if isWhitespace(c) {
			l.chars.Next(1, 0)
			continue
		}
		if c == '|' {
			l.chars.Next(1, 0)
			c2, ok2 := l.peekN(0)
			if ok2 && c2 == '|' {
				l.chars.Next(1, 0)
				for {
					a, oka := l.peekN(0)
					if !oka {
						break
					}
					if a == '|' {
						if b, okb := l.peekN(1); okb && b == '|' {
							l.chars.Next(2, 0)
							break
						}
					}
					l.chars.Next(1, 0)
				}
			} else {
				for {
					a, oka := l.peekN(0)
					if !oka || a == '\n' {
						break
					}
					l.chars.Next(1, 0)
				}
			}
			continue
		}
		return
	}
}

// nextToken produces exactly one token (or an error), starting a fresh
// window at the current position. foldPrev reports that the caller's most
// recently appended token must be removed and replaced by this one — used
// for the `op:` VarDef fold.
func (l *Lexer) nextToken() (token.Token, bool, error) {
	l.skipTrivia()

	if l.chars.ProcessFinished() {
		return token.Token{}, false, errEOF
	}

	l.chars.Next(0, 1) // open a fresh one-rune window at the token start
	ch0 := l.chars.Get()[0]

	switch {
	case ch0 == '!':
		return l.finish(token.Not)
	case ch0 == ',':
		return l.finish(token.ArgSeparator)
	case ch0 == ';':
		for {
			c, ok := l.peekN(0)
			if ok && c == ';' {
				l.chars.Increase(1)
				continue
			}
			break
		}
		return l.finish(token.EndOfInstruction)
	case ch0 == '#':
		return l.finish(token.Modifier)
	case ch0 == '(':
		l.scopes.Push(scope.Block, l.curSlice())
		return l.finish(token.BlockOpen)
	case ch0 == ')':
		if _, err := l.scopes.Pop(scope.Block, l.curSlice()); err != nil {
			return token.Token{}, false, err
		}
		return l.finish(token.BlockClose)
	case ch0 == '{':
		l.scopes.Push(scope.Object, l.curSlice())
		return l.finish(token.ObjectOpen)
	case ch0 == '}':
		if _, err := l.scopes.Pop(scope.Object, l.curSlice()); err != nil {
			return token.Token{}, false, err
		}
		return l.finish(token.ObjectClose)
	case ch0 == '+':
		return l.finishOperator(token.Add)
	case ch0 == '*':
		if c, ok := l.peekN(0); ok && c == '*' {
			l.chars.Increase(1)
			return l.finishOperator(token.Power)
		}
		return l.finishOperator(token.Multiply)
	case ch0 == '/':
		if c, ok := l.peekN(0); ok && c == '/' {
			l.chars.Increase(1)
			return l.finishOperator(token.EuclidianDivision)
		}
		return l.finishOperator(token.Divide)
	case ch0 == '%':
		return l.finishOperator(token.Modulo)
	case ch0 == '&':
		return l.finishBinary(token.And)
	case ch0 == '?':
		return l.finishBinary(token.Or)
	case ch0 == '~':
		return l.finishBinary(token.Xor)
	case ch0 == '=':
		return l.finishComparison(token.Equal, false)
	case ch0 == '<':
		strict := true
		if c, ok := l.peekN(0); ok && c == '=' {
			l.chars.Increase(1)
			strict = false
		}
		return l.finishComparison(token.Less, strict)
	case ch0 == '>':
		strict := true
		if c, ok := l.peekN(0); ok && c == '=' {
			l.chars.Increase(1)
			strict = false
		}
		return l.finishComparison(token.Greater, strict)
	case ch0 == '-' || ch0 == '.':
		return l.lexNumberOrFallback(ch0)
	case ch0 == ':':
		return l.handleColon()
	case ch0 == '@':
		return l.handleScopeTarget()
	case ch0 == '"' || ch0 == '\'':
		return l.lexString(ch0)
	case isDecimalDigit(ch0):
		return l.lexNumberOrFallback(ch0)
	case isVariableChar(ch0):
		return l.handleIdentifier()
	default:
		return token.Token{}, false, &UnknownCharacter{At: l.curSlice()}
	}
}

func (l *Lexer) finish(kind token.Kind) (token.Token, bool, error) {
	return token.Token{Kind: kind, Slice: l.curSlice()}, false, nil
}

func (l *Lexer) finishOperator(op token.Operator) (token.Token, bool, error) {
	return token.Token{Kind: token.OperatorTok, Slice: l.curSlice(), Operator: op}, false, nil
}

func (l *Lexer) finishBinary(b token.BinaryOperator) (token.Token, bool, error) {
	return token.Token{Kind: token.BinaryOperatorTok, Slice: l.curSlice(), BinaryOperator: b}, false, nil
}

func (l *Lexer) finishComparison(c token.ComparisonOp, strict bool) (token.Token, bool, error) {
	return token.Token{Kind: token.ComparisonTok, Slice: l.curSlice(), Comparison: c, Strict: strict}, false, nil
}

// handleIdentifier consumes the rest of a variable-character run and
// classifies it against the fixed keyword table.
func (l *Lexer) handleIdentifier() (token.Token, bool, error) {
	for {
		c, ok := l.peekN(0)
		if ok && isVariableChar(c) {
			l.chars.Increase(1)
			continue
		}
		break
	}
	lexeme := string(l.chars.Get())
	return token.Token{Kind: token.LookupWord(lexeme), Slice: l.curSlice()}, false, nil
}

// handleColon lexes `:`, `::`, and the `op:` fold. The first `:` is already
// consumed as the window's sole rune when this is called.
func (l *Lexer) handleColon() (token.Token, bool, error) {
	constant := false
	if c, ok := l.peekN(0); ok && c == ':' {
		l.chars.Increase(1)
		constant = true
	}

	if !constant && l.lastProduced != nil && l.lastProduced.Kind == token.OperatorTok {
		op := l.lastProduced.Operator
		slice := l.lastProduced.Slice.Union(l.curSlice())
		return token.Token{
			Kind:       token.VarDefTok,
			Slice:      slice,
			VarDefKind: token.VarDefWithOperation,
			FoldedOp:   op,
		}, true, nil
	}

	kind := token.VarDefNormal
	if constant {
		kind = token.VarDefConstant
	}
	return token.Token{Kind: token.VarDefTok, Slice: l.curSlice(), VarDefKind: kind}, false, nil
}

// handleScopeTarget lexes `@<<<` (numbered-up) and `@name`/`@123`
// (named/numbered targets).
func (l *Lexer) handleScopeTarget() (token.Token, bool, error) {
	upCount := 0
	for {
		c, ok := l.peekN(0)
		if ok && c == '<' {
			l.chars.Increase(1)
			upCount++
			continue
		}
		break
	}
	if upCount > 0 {
		return token.Token{Kind: token.ScopeTargetTok, Slice: l.curSlice(), ScopeTargetNumbered: upCount}, false, nil
	}

	c, ok := l.peekN(0)
	if !ok {
		return token.Token{}, false, &UnexpectedCharacter{At: l.curSlice(), Expected: "scope target name or number"}
	}

	if isDecimalDigit(c) {
		for {
			c2, ok2 := l.peekN(0)
			if ok2 && isDecimalDigit(c2) {
				l.chars.Increase(1)
				continue
			}
			break
		}
		digits := string(l.chars.Get()[1:])
		n, err := strconv.Atoi(digits)
		if err != nil || n <= 0 {
			return token.Token{}, false, &UnexpectedCharacter{At: l.curSlice(), Expected: "a positive integer scope target"}
		}
		return token.Token{Kind: token.ScopeTargetTok, Slice: l.curSlice(), ScopeTargetNumbered: n}, false, nil
	}

	if isVariableChar(c) {
		for {
			c2, ok2 := l.peekN(0)
			if ok2 && isVariableChar(c2) {
				l.chars.Increase(1)
				continue
			}
			break
		}
		name := string(l.chars.Get()[1:])
		return token.Token{Kind: token.ScopeTargetTok, Slice: l.curSlice(), ScopeTargetIsNamed: true, ScopeTargetNamed: name}, false, nil
	}

	return token.Token{}, false, &UnexpectedCharacter{At: l.curSlice(), Expected: "scope target name or number"}
}

var escapeTable = map[rune]rune{
	't':  '\t',
	'n':  '\n',
	'r':  '\r',
	'b':  '\b',
	'f':  '\f',
	's':  ' ',
	'\'': '\'',
	'"':  '"',
	'\\': '\\',
}

func decodeEscape(c rune) rune {
	if r, ok := escapeTable[c]; ok {
		return r
	}
	return c
}

// lexString lexes a string literal starting at its opening quote (already
// the sole rune of the current window). Single quotes are literal; double
// quotes support `&(...)` interpolation, re-entering the lexer recursively
// on the embedded source per §4.2.1.
func (l *Lexer) lexString(quote rune) (token.Token, bool, error) {
	// The window here is just [quotePos, quotePos+1); recursive nextToken
	// calls for interpolated expressions reset the window's start as they
	// go, so the string's own span is tracked via absolute offsets
	// (End is always monotonic) rather than via l.curSlice().
	_, openEnd := l.chars.Range()
	stringStart := openEnd - 1
	l.scopes.Push(scope.String, module.Slice{Module: l.mod, Start: stringStart, End: openEnd})

	var parts []token.StringPart
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, token.StringPart{Kind: token.PartLiteral, Text: lit.String()})
			lit.Reset()
		}
	}

	for {
		c, ok := l.peekN(0)
		if !ok {
			return token.Token{}, false, errUnterminated
		}

		if c == quote {
			l.chars.Increase(1)
			_, closeEnd := l.chars.Range()
			closeSlice := module.Slice{Module: l.mod, Start: closeEnd - 1, End: closeEnd}
			if _, err := l.scopes.Pop(scope.String, closeSlice); err != nil {
				return token.Token{}, false, err
			}
			flush()
			fullSlice := module.Slice{Module: l.mod, Start: stringStart, End: closeEnd}
			return token.Token{Kind: token.String, Slice: fullSlice, StringParts: parts}, false, nil
		}

		if quote == '"' && c == '&' {
			if c2, ok2 := l.peekN(1); ok2 && c2 == '(' {
				l.chars.Increase(2)
				flush()

				targetDepth := l.scopes.Depth()
				_, blockEnd := l.chars.Range()
				l.scopes.Push(scope.Block, module.Slice{Module: l.mod, Start: blockEnd - 1, End: blockEnd})

				var embedded []token.Token
				for l.scopes.Depth() > targetDepth {
					etok, efold, err := l.nextToken()
					if err != nil {
						return token.Token{}, false, err
					}
					if efold && len(embedded) > 0 {
						embedded = embedded[:len(embedded)-1]
					}
					if etok.Kind == token.BlockClose && l.scopes.Depth() == targetDepth {
						break
					}
					embedded = append(embedded, etok)
					l.lastProduced = &embedded[len(embedded)-1]
				}
				parts = append(parts, token.StringPart{Kind: token.PartExpression, Tokens: embedded})
				continue
			}
			l.chars.Increase(1)
			lit.WriteRune('&')
			continue
		}

		if c == '\\' {
			esc, ok2 := l.peekN(1)
			if !ok2 {
				return token.Token{}, false, errUnterminated
			}
			l.chars.Increase(2)
			lit.WriteRune(decodeEscape(esc))
			continue
		}

		l.chars.Increase(1)
		lit.WriteRune(c)
	}
}

// numberAmbiguous reports whether a leading '-' or '.' should be attempted
// as part of a number literal given the token produced just before it, per
// §4.2.2: only directly after an argument separator, a `-` operator, a
// binary/comparison operator, an opening block, a VarDef, or at the very
// start of the stream is the character absorbed into the number; otherwise
// it tokenizes on its own (Accessor or Operator::Substract).
func (l *Lexer) numberAmbiguous() bool {
	prev := l.lastProduced
	if prev == nil {
		return true
	}
	switch prev.Kind {
	case token.ArgSeparator, token.BinaryOperatorTok, token.ComparisonTok, token.BlockOpen, token.VarDefTok:
		return true
	case token.OperatorTok:
		return prev.Operator == token.Substract
	default:
		return false
	}
}

// lexNumberOrFallback attempts to extend first ('-', '.', or a decimal
// digit) into a full number per §4.2.2; on failure it falls back to
// Accessor ('.') or Operator::Substract ('-'), as the spec's top-level
// algorithm bullet for `.`/`-` describes.
func (l *Lexer) lexNumberOrFallback(first rune) (token.Token, bool, error) {
	ambiguous := l.numberAmbiguous()
	if first == '-' {
		c, ok := l.peekN(0)
		if !ambiguous || !ok || !(isDecimalDigit(c) || c == '.') {
			return l.finishOperator(token.Substract)
		}
	}
	if first == '.' {
		c, ok := l.peekN(0)
		if !ambiguous || !ok || !isDecimalDigit(c) {
			return l.finish(token.Accessor)
		}
	}

	base := Decimal
	sawDot := false

	if first == '0' {
		if c, ok := l.peekN(0); ok && (c == 'x' || c == 'b') {
			if c == 'x' {
				base = Hexadecimal
			} else {
				base = Binary
			}
			l.chars.Increase(1)
		}
	} else if first == '-' {
		if c, ok := l.peekN(0); ok && c == '0' {
			if c2, ok2 := l.peekN(1); ok2 && (c2 == 'x' || c2 == 'b') {
				l.chars.Increase(1) // consume '0'
				if c2 == 'x' {
					base = Hexadecimal
				} else {
					base = Binary
				}
				l.chars.Increase(1) // consume x/b
			}
		}
	}

	digitOK := func(c rune) bool {
		switch base {
		case Binary:
			return isBinaryDigit(c)
		case Hexadecimal:
			return isHexDigitClass(c)
		default:
			return isDecimalDigit(c)
		}
	}

	for {
		c, ok := l.peekN(0)
		if !ok {
			break
		}
		if c == '_' {
			l.chars.Increase(1)
			continue
		}
		if c == '.' {
			if base != Decimal {
				l.chars.Increase(1)
				return token.Token{}, false, &InvalidNumber{At: l.curSlice(), Reason: "a decimal point is not allowed in a binary or hexadecimal number"}
			}
			if sawDot {
				break
			}
			if nc, nok := l.peekN(1); !nok || !isDecimalDigit(nc) {
				break
			}
			sawDot = true
			l.chars.Increase(1)
			continue
		}
		if digitOK(c) {
			l.chars.Increase(1)
			continue
		}
		break
	}

	lexeme := l.chars.Get()
	value, err := parseNumberValue(lexeme, base)
	if err != nil {
		if ne, ok := err.(*InvalidNumber); ok {
			ne.At = l.curSlice()
		}
		return token.Token{}, false, err
	}
	return token.Token{Kind: token.Number, Slice: l.curSlice(), NumberBase: base, NumberValue: value}, false, nil
}
