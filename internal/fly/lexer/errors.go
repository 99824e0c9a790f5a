package lexer

import (
	"errors"
	"fmt"

	"github.com/flylang/flylang/internal/fly/module"
)

// errEOF signals natural end-of-input to the internal token loop; it is
// never surfaced as a diagnostic.
var errEOF = errors.New("lexer: eof")

// errUnterminated signals a string (or its escape) that ran off the end of
// the module before its closing quote. The scope stack is left with the
// opening quote's marker still on it, so Tokenize's final Unclosed() sweep
// reports it as an UnclosedScope — this sentinel just stops the loop.
var errUnterminated = errors.New("lexer: unterminated string")

// UnknownCharacter is raised when a character matches none of the lexer's
// dispatch rules and cannot start an identifier.
type UnknownCharacter struct {
	At module.Slice
}

func (e *UnknownCharacter) Error() string {
	return fmt.Sprintf("unknown character %q at %s", e.At.Code(), e.At.Pos())
}

// UnexpectedCharacter is raised when a construct with a fixed grammar
// (e.g. a scope target) finds something other than what it expected.
type UnexpectedCharacter struct {
	At       module.Slice
	Expected string
}

func (e *UnexpectedCharacter) Error() string {
	return fmt.Sprintf("unexpected character at %s, expected %s", e.At.Pos(), e.Expected)
}

// InvalidNumber is raised when a lexed number's digit span contains a
// character that is not a valid digit value for its declared base (see
// ranges.go's isHexDigitClass doc comment) or mixes an illegal radix
// point.
type InvalidNumber struct {
	At     module.Slice
	Reason string
}

func (e *InvalidNumber) Error() string {
	return fmt.Sprintf("invalid number at %s: %s", e.At.Pos(), e.Reason)
}
