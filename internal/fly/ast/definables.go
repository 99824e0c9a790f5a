package ast

import (
	"strings"

	"github.com/flylang/flylang/internal/fly/module"
)

// EmplacementKind discriminates what a variable definition's left-hand
// side targets.
type EmplacementKind int

const (
	// EmplaceWord is the common case: `name: value`.
	EmplaceWord EmplacementKind = iota
	// EmplaceProperty is `base.key: value`, defining through a property
	// access rather than a bare name.
	EmplaceProperty
	// EmplaceAny is ParserBehaviors.AllowAnyVariableEmplacement's case:
	// any expression used as an emplacement target.
	EmplaceAny
)

// Emplacement is a variable definition's left-hand side.
type Emplacement struct {
	Kind EmplacementKind
	Word string
	Prop *Property
	Expr Expression
}

func (e Emplacement) String() string {
	switch e.Kind {
	case EmplaceWord:
		return e.Word
	case EmplaceProperty:
		return e.Prop.String()
	default:
		return e.Expr.String()
	}
}

// Visibility is a class item's access level. The grammar only ever
// produces Public — Private/Protected exist per the spec's own framing
// of visibility syntax as an open question left undefined, so no token
// sequence here produces anything but the default.
type Visibility int

const (
	Public Visibility = iota
	Private
	Protected
)

// DefineVariable is a `name: value`, `name:: value` (constant), or
// `name +: value` (operator-folded) variable definition.
type DefineVariable struct {
	Slc         module.Slice
	Emplacement Emplacement
	Constant    bool
	Value       Expression
}

func (d *DefineVariable) Slice() module.Slice { return d.Slc }
func (d *DefineVariable) String() string {
	sep := ":"
	if d.Constant {
		sep = "::"
	}
	return d.Emplacement.String() + sep + " " + d.Value.String()
}
func (*DefineVariable) instructionNode() {}

// DefineFunction is `fn name(args) { body }`. Name is nil for an
// anonymous function expression.
type DefineFunction struct {
	Slc         module.Slice
	Name        *string
	Arguments   []string
	Body        []Instruction
	ScopeTarget *ScopeTarget
}

func (d *DefineFunction) Slice() module.Slice { return d.Slc }
func (d *DefineFunction) String() string {
	var b strings.Builder
	b.WriteString("fn ")
	if d.Name != nil {
		b.WriteString(*d.Name)
	}
	b.WriteByte('(')
	b.WriteString(strings.Join(d.Arguments, ", "))
	b.WriteString(") {")
	for _, instr := range d.Body {
		b.WriteByte(' ')
		b.WriteString(instr.String())
	}
	b.WriteString(" }")
	return b.String()
}
func (*DefineFunction) instructionNode() {}

// ClassItem is one member of a `cs` class body: either a field
// (Variable non-nil) or a method (Function non-nil), exactly one.
type ClassItem struct {
	Visibility Visibility
	Static     bool
	Modifiers  []Expression
	Variable   *DefineVariable
	Function   *DefineFunction
}

// DefineClass is `cs Name(Parent1, Parent2) { items }`.
type DefineClass struct {
	Slc         module.Slice
	Name        string
	Parents     []string
	Constructor *DefineFunction
	Items       []ClassItem
}

func (d *DefineClass) Slice() module.Slice { return d.Slc }
func (d *DefineClass) String() string {
	var b strings.Builder
	b.WriteString("cs ")
	b.WriteString(d.Name)
	if len(d.Parents) > 0 {
		b.WriteByte('(')
		b.WriteString(strings.Join(d.Parents, ", "))
		b.WriteByte(')')
	}
	b.WriteString(" { ... }")
	return b.String()
}
func (*DefineClass) instructionNode() {}

// ModifiedDefinable wraps a DefineVariable or DefineFunction definition
// that carries one or more `#modifier` prefixes (spec §4.4.7).
type ModifiedDefinable struct {
	Slc       module.Slice
	Modifiers []Expression
	Definable Instruction
}

func (m *ModifiedDefinable) Slice() module.Slice { return m.Slc }
func (m *ModifiedDefinable) String() string {
	var b strings.Builder
	for _, mod := range m.Modifiers {
		b.WriteByte('#')
		b.WriteString(mod.String())
		b.WriteByte(' ')
	}
	b.WriteString(m.Definable.String())
	return b.String()
}
func (*ModifiedDefinable) instructionNode() {}

// ScopeTarget is the payload of an `@name` / `@123` / `@<<<` suffix
// attached to a loop, function, or if-chain, naming or counting which
// enclosing scope a `stop`/`pass`/`return` breaker targets.
type ScopeTarget struct {
	Slc     module.Slice
	Named   string
	Numbered int
	IsNamed bool
}

func (s *ScopeTarget) Slice() module.Slice { return s.Slc }
func (s *ScopeTarget) String() string {
	if s.IsNamed {
		return "@" + s.Named
	}
	return "@" + strings.Repeat("<", s.Numbered)
}
