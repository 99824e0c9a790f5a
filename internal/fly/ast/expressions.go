package ast

import (
	"strconv"
	"strings"

	"github.com/flylang/flylang/internal/fly/module"
	"github.com/flylang/flylang/internal/fly/token"
)

// StringPart is one piece of a parsed string literal: either decoded
// literal text, or the single expression produced by re-parsing an
// `&(...)` interpolation's embedded token stream (spec §4.4.8 — an
// embedded interpolation always parses to exactly one expression).
type StringPart struct {
	Literal *string
	Expr    Expression
}

// StringLiteral is a (possibly interpolated) string value.
type StringLiteral struct {
	Slc   module.Slice
	Parts []StringPart
}

func (s *StringLiteral) Slice() module.Slice { return s.Slc }
func (s *StringLiteral) String() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, p := range s.Parts {
		if p.Literal != nil {
			b.WriteString(*p.Literal)
		} else {
			b.WriteString("&(")
			b.WriteString(p.Expr.String())
			b.WriteByte(')')
		}
	}
	b.WriteByte('"')
	return b.String()
}
func (*StringLiteral) expressionNode() {}

// ReverseKind discriminates what a Reverse prefix negates.
type ReverseKind int

const (
	// ReverseBoolean is `!expr`: logical negation.
	ReverseBoolean ReverseKind = iota
	// ReverseSign is `-expr`: arithmetic sign flip. The parser only ever
	// produces this when the operand is not itself absorbed into a
	// NumberLiteral (invariant 7): `-x` is Reverse{Sign, x}, but `-5` is
	// simply NumberLiteral{-5}.
	ReverseSign
)

// Reverse is a unary prefix: `!` (ReverseBoolean) or `-` (ReverseSign).
type Reverse struct {
	Slc     module.Slice
	Kind    ReverseKind
	Operand Expression
}

func (r *Reverse) Slice() module.Slice { return r.Slc }
func (r *Reverse) String() string {
	if r.Kind == ReverseBoolean {
		return "!" + r.Operand.String()
	}
	return "-" + r.Operand.String()
}
func (*Reverse) expressionNode() {}

// OperationFamily discriminates which of the three binary-operator
// families an Operation node belongs to; each family has its own
// precedence tier (spec §4.4.4: Comparison > Arithmetic > BinaryOperator).
type OperationFamily int

const (
	Arithmetic OperationFamily = iota
	Binary
	Comparison
)

// Operation is a binary expression. Exactly one of the Op/BinOp/CompOp
// fields is meaningful, selected by Family — mirroring the flat-payload
// idiom already used for token.Token, since Go has no tagged unions.
type Operation struct {
	Slc    module.Slice
	Family OperationFamily
	Op     token.Operator
	BinOp  token.BinaryOperator
	CompOp token.ComparisonOp
	Strict bool
	Left   Expression
	Right  Expression
}

func (o *Operation) Slice() module.Slice { return o.Slc }
func (o *Operation) String() string {
	var op string
	switch o.Family {
	case Arithmetic:
		op = o.Op.String()
	case Binary:
		op = o.BinOp.String()
	case Comparison:
		op = o.CompOp.String()
	}
	return "(" + o.Left.String() + " " + op + " " + o.Right.String() + ")"
}
func (*Operation) expressionNode() {}

// Prioritized is a parenthesized expression, kept as its own node (rather
// than collapsed away) so re-stringification and diagnostics preserve the
// source author's grouping.
type Prioritized struct {
	Slc   module.Slice
	Inner Expression
}

func (p *Prioritized) Slice() module.Slice { return p.Slc }
func (p *Prioritized) String() string      { return "(" + p.Inner.String() + ")" }
func (*Prioritized) expressionNode()       {}

// Ternary is `if(condition, yes, no)` used as an expression (spec's
// scenario S9): a value-producing conditional, distinct from the If
// instruction.
type Ternary struct {
	Slc       module.Slice
	Condition Expression
	Yes       Expression
	No        Expression
}

func (t *Ternary) Slice() module.Slice { return t.Slc }
func (t *Ternary) String() string {
	return "if(" + t.Condition.String() + ", " + t.Yes.String() + ", " + t.No.String() + ")"
}
func (*Ternary) expressionNode() {}

// Call is a function invocation: callee followed by a parenthesized,
// comma-separated argument list.
type Call struct {
	Slc       module.Slice
	Callee    Expression
	Arguments []Expression
}

func (c *Call) Slice() module.Slice { return c.Slc }
func (c *Call) String() string {
	var b strings.Builder
	b.WriteString(c.Callee.String())
	b.WriteByte('(')
	for i, a := range c.Arguments {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

// ReturnOf wraps a Call used as an expression — the value a call
// produces — kept as its own node (rather than making Call itself an
// Expression) so a bare `foo()` instruction and `x +: foo()` both read
// through the same "this call's result" wrapper spec §4.4.4 names.
type ReturnOf struct {
	Slc  module.Slice
	Call *Call
}

func (r *ReturnOf) Slice() module.Slice { return r.Slc }
func (r *ReturnOf) String() string      { return r.Call.String() }
func (*ReturnOf) expressionNode()       {}

// Instanciate is `new <expr>`: a Call repackaged as a class instantiation
// rather than a plain function return.
type Instanciate struct {
	Slc   module.Slice
	Class Expression
	Call  *Call
}

func (i *Instanciate) Slice() module.Slice { return i.Slc }
func (i *Instanciate) String() string      { return "new " + i.Call.String() }
func (*Instanciate) expressionNode()       {}

// PropertyKind discriminates how a Property accesses its base.
type PropertyKind int

const (
	// PropertyKey is `.name` member access.
	PropertyKey PropertyKind = iota
	// PropertyIndex is `.0` positional/tuple-style access.
	PropertyIndex
	// PropertyExpr is `.(expr)` computed access.
	PropertyExpr
)

// Property is member/index/computed access on a base expression.
type Property struct {
	Slc   module.Slice
	Base  Expression
	Kind  PropertyKind
	Key   string
	Index int
	Expr  Expression
}

func (p *Property) Slice() module.Slice { return p.Slc }
func (p *Property) String() string {
	switch p.Kind {
	case PropertyKey:
		return p.Base.String() + "." + p.Key
	case PropertyIndex:
		return p.Base.String() + "." + strconv.Itoa(p.Index)
	default:
		return p.Base.String() + ".(" + p.Expr.String() + ")"
	}
}
func (*Property) expressionNode() {}

// StructureEntry is one `key: value` pair of an object literal. Key is
// either a bare word (KeyExpr nil) or a computed `(expr): value` entry.
type StructureEntry struct {
	Key     string
	KeyExpr Expression
	Value   Expression
}

// Structure is an object literal: `{ a: 1, b: 2 }`.
type Structure struct {
	Slc     module.Slice
	Entries []StructureEntry
}

func (s *Structure) Slice() module.Slice { return s.Slc }
func (s *Structure) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range s.Entries {
		if i > 0 {
			b.WriteString(", ")
		}
		if e.KeyExpr != nil {
			b.WriteString("(" + e.KeyExpr.String() + ")")
		} else {
			b.WriteString(e.Key)
		}
		b.WriteString(": ")
		b.WriteString(e.Value.String())
	}
	b.WriteByte('}')
	return b.String()
}
func (*Structure) expressionNode() {}

// Array is an array literal: `{1, 2, 3}` with no keys.
type Array struct {
	Slc      module.Slice
	Elements []Expression
}

func (a *Array) Slice() module.Slice { return a.Slc }
func (a *Array) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range a.Elements {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte('}')
	return b.String()
}
func (*Array) expressionNode() {}
