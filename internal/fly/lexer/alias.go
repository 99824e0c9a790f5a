package lexer

import "github.com/flylang/flylang/internal/fly/token"

// Re-exported aliases so lexer code can speak in its own vocabulary
// without a token. qualifier on every line.

type NumberBase = token.NumberBase

const (
	Decimal     = token.Decimal
	Binary      = token.Binary
	Hexadecimal = token.Hexadecimal
)

type Kind = token.Kind
type Token = token.Token
type Operator = token.Operator
type BinaryOperator = token.BinaryOperator
type ComparisonOp = token.ComparisonOp
type VarDefKind = token.VarDefKind
type StringPart = token.StringPart

const (
	Add               = token.Add
	Substract         = token.Substract
	Multiply          = token.Multiply
	Divide            = token.Divide
	Power             = token.Power
	Modulo            = token.Modulo
	EuclidianDivision = token.EuclidianDivision
)

const (
	And = token.And
	Xor = token.Xor
	Or  = token.Or
)

const (
	Equal   = token.Equal
	Less    = token.Less
	Greater = token.Greater
)
