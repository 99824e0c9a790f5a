package parser

import (
	"fmt"

	"github.com/flylang/flylang/internal/fly/module"
	"github.com/flylang/flylang/internal/fly/token"
)

// UnexpectedToken reports a token that no rule in the current context
// accepts.
type UnexpectedToken struct {
	Token token.Token
}

func (e *UnexpectedToken) Error() string {
	return fmt.Sprintf("unexpected token %s at %s", e.Token.Kind, e.Token.Pos())
}

// UnexpectedNode reports a previously-built node that the current rule
// cannot continue from (e.g. a leaf rule invoked with a non-nil previous).
type UnexpectedNode struct {
	At module.Slice
}

func (e *UnexpectedNode) Error() string {
	return fmt.Sprintf("unexpected node at %s", e.At.Pos())
}

// Expected reports a required token kind that was not found.
type Expected struct {
	After    string
	Expected string
	Found    token.Token
}

func (e *Expected) Error() string {
	return fmt.Sprintf("expected %s after %s, found %s at %s", e.Expected, e.After, e.Found.Kind, e.Found.Pos())
}

// UnableToParse reports a slice of input no rule could make sense of.
type UnableToParse struct {
	At     module.Slice
	Reason string
}

func (e *UnableToParse) Error() string {
	return fmt.Sprintf("unable to parse at %s: %s", e.At.Pos(), e.Reason)
}

// EmptyScope is a non-fatal Warn-category diagnostic for a `(...)` scope
// that produced no instructions where at least one was expected.
type EmptyScope struct {
	At module.Slice
}

func (e *EmptyScope) Error() string {
	return fmt.Sprintf("empty scope at %s", e.At.Pos())
}
