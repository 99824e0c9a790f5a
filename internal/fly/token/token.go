// Package token defines the contract between the flylang lexer and parser:
// the closed set of token kinds, the flat Token struct that carries their
// payloads, and the fixed keyword table.
package token

import "github.com/flylang/flylang/internal/fly/module"

// Kind discriminates a Token. It mirrors the closed sum type of §6 of the
// specification this front-end implements: Literal{Word|True|False|Empty|
// Number|String}, Keyword{...}, Not, Operator, BinaryOperator, Comparison,
// Block{Opening,Closing}, Object{Opening,Closing}, Accessor, Modifier,
// EndOfInstruction, ArgSeparator, VarDef, ScopeTarget.
//
// Go has no tagged unions, so the payload for each Kind lives in its own
// field on the flat Token struct below rather than in an enum-carried
// value.
type Kind int

const (
	EOF Kind = iota

	// Literals
	Word
	True
	False
	Empty
	Number
	String

	// Keywords
	Fn
	Cs
	KindKeyword // the `kind` keyword itself; named to avoid colliding with Kind the type
	New
	If
	Else
	While
	Until
	Each
	Stop
	Return
	Pass
	Use
	In
	From

	Not
	OperatorTok
	BinaryOperatorTok
	ComparisonTok

	BlockOpen
	BlockClose
	ObjectOpen
	ObjectClose

	Accessor
	Modifier
	EndOfInstruction
	ArgSeparator
	VarDefTok
	ScopeTargetTok
)

var kindNames = map[Kind]string{
	EOF:               "EOF",
	Word:              "Word",
	True:              "True",
	False:             "False",
	Empty:             "Empty",
	Number:            "Number",
	String:            "String",
	Fn:                "Fn",
	Cs:                "Cs",
	KindKeyword:       "Kind",
	New:               "New",
	If:                "If",
	Else:              "Else",
	While:             "While",
	Until:             "Until",
	Each:              "Each",
	Stop:              "Stop",
	Return:            "Return",
	Pass:              "Pass",
	Use:               "Use",
	In:                "In",
	From:              "From",
	Not:               "Not",
	OperatorTok:       "Operator",
	BinaryOperatorTok: "BinaryOperator",
	ComparisonTok:     "Comparison",
	BlockOpen:         "BlockOpen",
	BlockClose:        "BlockClose",
	ObjectOpen:        "ObjectOpen",
	ObjectClose:       "ObjectClose",
	Accessor:          "Accessor",
	Modifier:          "Modifier",
	EndOfInstruction:  "EndOfInstruction",
	ArgSeparator:      "ArgSeparator",
	VarDefTok:         "VarDef",
	ScopeTargetTok:    "ScopeTarget",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Operator enumerates the arithmetic operator family.
type Operator int

const (
	Add Operator = iota
	Substract
	Multiply
	Divide
	Power
	Modulo
	EuclidianDivision
)

func (o Operator) String() string {
	switch o {
	case Add:
		return "+"
	case Substract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Power:
		return "**"
	case Modulo:
		return "%"
	case EuclidianDivision:
		return "//"
	}
	return "?"
}

// BinaryOperator enumerates the bitwise/logical binary operator family.
// Its ordinal doubles as its precedence: a larger ordinal binds tighter,
// per the fixed ordering this implementation resolves the spec's open
// question with (see DESIGN.md).
type BinaryOperator int

const (
	And BinaryOperator = iota
	Xor
	Or
)

func (b BinaryOperator) String() string {
	switch b {
	case And:
		return "&"
	case Xor:
		return "~"
	case Or:
		return "?"
	}
	return "?"
}

// ComparisonOp enumerates the comparison family. Less and Greater carry a
// Strict flag on the owning Token (Strict true means < / >, false means
// <= / >=); Equal ignores it.
type ComparisonOp int

const (
	Equal ComparisonOp = iota
	Less
	Greater
)

func (c ComparisonOp) String() string {
	switch c {
	case Equal:
		return "="
	case Less:
		return "<"
	case Greater:
		return ">"
	}
	return "?"
}

// VarDefKind enumerates the `:` family: plain definition, `::` constant
// definition, or a `-:`/`+:`/... operator-folded definition.
type VarDefKind int

const (
	VarDefNormal VarDefKind = iota
	VarDefConstant
	VarDefWithOperation
)

// NumberBase enumerates the base a Number literal was written in.
type NumberBase int

const (
	Decimal NumberBase = iota
	Binary
	Hexadecimal
)

// StringPartKind discriminates a piece of an interpolated string.
type StringPartKind int

const (
	PartLiteral StringPartKind = iota
	PartExpression
)

// StringPart is one piece of a String token's payload: either literal text
// already escape-decoded, or the token stream produced by recursively
// lexing an `&(...)` interpolation.
type StringPart struct {
	Kind   StringPartKind
	Text   string
	Tokens []Token
}

// Token is a lexeme paired with its slice and discriminated kind. Payload
// fields are meaningful only for the Kind that produces them; zero values
// elsewhere.
type Token struct {
	Kind  Kind
	Slice module.Slice

	// Number payload.
	NumberBase  NumberBase
	NumberValue float64

	// String payload.
	StringParts []StringPart

	// Operator / BinaryOperator / Comparison payload.
	Operator       Operator
	BinaryOperator BinaryOperator
	Comparison     ComparisonOp
	Strict         bool

	// VarDef payload.
	VarDefKind VarDefKind
	FoldedOp   Operator

	// ScopeTarget payload.
	ScopeTargetNamed    string
	ScopeTargetNumbered int
	ScopeTargetIsNamed  bool
}

// Literal returns the token's source text.
func (t Token) Literal() string {
	return t.Slice.Code()
}

// Pos returns the token's starting position, for diagnostics.
func (t Token) Pos() module.Position {
	return t.Slice.Pos()
}

// keywords is the fixed lexeme-to-Kind table the lexer classifies
// identifiers against. Anything not in this table, and not `true`/`false`,
// is an ordinary Word.
var keywords = map[string]Kind{
	"fn":     Fn,
	"cs":     Cs,
	"kind":   KindKeyword,
	"new":    New,
	"while":  While,
	"until":  Until,
	"each":   Each,
	"return": Return,
	"stop":   Stop,
	"pass":   Pass,
	"if":     If,
	"else":   Else,
	"true":   True,
	"false":  False,
	"use":    Use,
	"in":     In,
	"from":   From,
}

// LookupWord classifies an identifier lexeme as a keyword, a boolean
// literal, or a plain Word.
func LookupWord(lexeme string) Kind {
	if k, ok := keywords[lexeme]; ok {
		return k
	}
	return Word
}
