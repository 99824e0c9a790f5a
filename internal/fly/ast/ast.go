// Package ast defines flylang's abstract syntax tree: a Node is paired
// with the module.Slice it was parsed from, and Instructions/Expressions
// are the two root sum types of the language's data model.
//
// Go has no sum types, so each variant is its own concrete struct
// implementing a small marker interface, rather than one flat tagged
// struct.
package ast

import "github.com/flylang/flylang/internal/fly/module"

// Node is any AST item: it carries the slice it was parsed from, for
// diagnostics and source-text recovery.
type Node interface {
	Slice() module.Slice
	String() string
}

// Expression is a node that yields a value: literals, operations, member
// access, calls, and so on.
type Expression interface {
	Node
	expressionNode()
}

// Instruction is a top-level or block-level statement: a definition,
// control-flow construct, breaker, `use`, or a bare expression wrapped in
// ValueOf.
type Instruction interface {
	Node
	instructionNode()
}

// Program is the root of a parsed module: the top-level sequence of
// instructions produced by the outermost `branches` call.
type Program struct {
	Slc          module.Slice
	Instructions []Instruction
}

func (p *Program) Slice() module.Slice { return p.Slc }
func (p *Program) String() string {
	var b []byte
	for i, instr := range p.Instructions {
		if i > 0 {
			b = append(b, '\n')
		}
		b = append(b, instr.String()...)
	}
	return string(b)
}

// ValueOf wraps a bare expression used as an instruction — e.g. a
// top-level `true`, `if(c, a, b)` ternary, or any expression statement.
type ValueOf struct {
	Slc  module.Slice
	Expr Expression
}

func (v *ValueOf) Slice() module.Slice { return v.Slc }
func (v *ValueOf) String() string      { return v.Expr.String() }
func (*ValueOf) instructionNode()      {}

// Identifier is a bare word reference (a variable/function/class name
// used as a value, not as a definition).
type Identifier struct {
	Slc  module.Slice
	Name string
}

func (i *Identifier) Slice() module.Slice { return i.Slc }
func (i *Identifier) String() string      { return i.Name }
func (*Identifier) expressionNode()       {}

// BooleanLiteral is the `true`/`false` literal.
type BooleanLiteral struct {
	Slc   module.Slice
	Value bool
}

func (b *BooleanLiteral) Slice() module.Slice { return b.Slc }
func (b *BooleanLiteral) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}
func (*BooleanLiteral) expressionNode() {}

// EmptyLiteral is the `()` empty literal.
type EmptyLiteral struct {
	Slc module.Slice
}

func (e *EmptyLiteral) Slice() module.Slice { return e.Slc }
func (e *EmptyLiteral) String() string      { return "()" }
func (*EmptyLiteral) expressionNode()       {}

// NumberLiteral is a numeric literal, already value-resolved by the lexer.
// A number literal with a negative value never carries a separate Reverse
// wrapper: per invariant 7, the sign is always absorbed into the literal.
type NumberLiteral struct {
	Slc   module.Slice
	Value float64
}

func (n *NumberLiteral) Slice() module.Slice { return n.Slc }
func (n *NumberLiteral) String() string      { return n.Slc.Code() }
func (*NumberLiteral) expressionNode()       {}
