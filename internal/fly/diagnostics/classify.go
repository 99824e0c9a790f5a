package diagnostics

import (
	"github.com/flylang/flylang/internal/fly/lexer"
	"github.com/flylang/flylang/internal/fly/module"
	"github.com/flylang/flylang/internal/fly/parser"
	"github.com/flylang/flylang/internal/fly/scope"
)

// Classify turns one of the lexer's, scope stack's, parser's, or module
// loader's concrete error types into a Diagnostic, assigning the
// Category/Code pair spec §6/§7 specifies for it. Unrecognized error types
// fall back to a Stop diagnostic over the zero slice, so a future error
// type added to any of those packages degrades gracefully instead of
// panicking.
func Classify(err error) Diagnostic {
	switch e := err.(type) {

	// --- lexer errors ---
	case *lexer.UnknownCharacter:
		return Diagnostic{Category: Stop, Code: CodeUnexpectedToken, Message: e.Error(), Slice: e.At}
	case *lexer.UnexpectedCharacter:
		return Diagnostic{Category: Stop, Code: CodeExpected, Message: e.Error(), Slice: e.At}
	case *lexer.InvalidNumber:
		return Diagnostic{Category: Stop, Code: CodeExpected, Message: e.Error(), Slice: e.At}

	// --- scope stack errors ---
	case *scope.InvalidScopeEnding:
		return Diagnostic{Category: Stop, Code: CodeExpected, Message: e.Error(), Slice: e.At}
	case *scope.UnclosedScope:
		return Diagnostic{Category: Stop, Code: CodeExpected, Message: e.Error(), Slice: e.Open.Open}

	// --- parser errors ---
	case *parser.UnexpectedToken:
		return Diagnostic{Category: Stop, Code: CodeUnexpectedToken, Message: e.Error(), Slice: e.Token.Slice}
	case *parser.UnexpectedNode:
		return Diagnostic{Category: Stop, Code: CodeUnexpectedNode, Message: e.Error(), Slice: e.At}
	case *parser.Expected:
		return Diagnostic{Category: Stop, Code: CodeExpected, Message: e.Error(), Slice: e.Found.Slice}
	case *parser.UnableToParse:
		return Diagnostic{Category: Stop, Code: CodeUnableToParse, Message: e.Error(), Slice: e.At}
	case *parser.EmptyScope:
		return Diagnostic{Category: Warn, Code: CodeExpected, Message: e.Error(), Slice: e.At}

	// --- module loader errors: file-level, no source slice to anchor to ---
	case *module.WeirdExtension:
		return Diagnostic{Category: Warn, Code: CodeExpected, Message: e.Error()}
	case *module.InvalidEntryPoint:
		return Diagnostic{Category: Stop, Code: CodeUnableToParse, Message: e.Error()}

	default:
		return Diagnostic{Category: Stop, Code: CodeUnableToParse, Message: err.Error()}
	}
}

// ClassifyAll classifies a batch of errors/warnings in one pass.
func ClassifyAll(errs []error) []Diagnostic {
	diags := make([]Diagnostic, 0, len(errs))
	for _, err := range errs {
		diags = append(diags, Classify(err))
	}
	return diags
}
