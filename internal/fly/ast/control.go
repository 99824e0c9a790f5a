package ast

import (
	"strings"

	"github.com/flylang/flylang/internal/fly/module"
)

// If is `if [@target] (condition, process) [else ...]`.
type If struct {
	Slc         module.Slice
	Condition   Expression
	Process     []Instruction
	Fallback    *IfFallBack
	ScopeTarget *ScopeTarget
}

func (i *If) Slice() module.Slice { return i.Slc }
func (i *If) String() string {
	var b strings.Builder
	b.WriteString("if ")
	b.WriteString(i.Condition.String())
	b.WriteString(" { ... }")
	if i.Fallback != nil {
		b.WriteString(" else ")
		b.WriteString(i.Fallback.String())
	}
	return b.String()
}
func (*If) instructionNode() {}

// IfFallBack is the `else` arm of an If: either another If (an
// `else if` chain, Chain non-nil) or a terminal block (Process non-nil).
// Exactly one of Chain/Process is set.
type IfFallBack struct {
	Slc     module.Slice
	Chain   *If
	Process []Instruction
}

func (f *IfFallBack) Slice() module.Slice { return f.Slc }
func (f *IfFallBack) String() string {
	if f.Chain != nil {
		return f.Chain.String()
	}
	return "{ ... }"
}

// LoopParameterKind discriminates a Loop's iteration shape.
type LoopParameterKind int

const (
	// LoopWhile repeats while Condition holds; `until cond` lowers to
	// LoopWhile with the condition wrapped in Reverse{Boolean} (spec's
	// redesign of `until` as sugar over `while`).
	LoopWhile LoopParameterKind = iota
	// LoopEach iterates Iterable, binding Item (and optionally Index).
	LoopEach
)

// LoopParameter is the `through` clause of a Loop.
type LoopParameter struct {
	Kind      LoopParameterKind
	Condition Expression // LoopWhile
	Iterable  Expression // LoopEach
	Item      *string    // LoopEach binding name
	Index     *string    // both kinds: optional counter binding
}

// Loop is `while(cond, [index,] body)`, `until(cond, [index,] body)`, or
// `each(iterable, [item,] [index,] body)`.
type Loop struct {
	Slc         module.Slice
	Through     LoopParameter
	Process     []Instruction
	ScopeTarget *ScopeTarget
}

func (l *Loop) Slice() module.Slice { return l.Slc }
func (l *Loop) String() string {
	switch l.Through.Kind {
	case LoopWhile:
		return "while " + l.Through.Condition.String() + " { ... }"
	default:
		item := "_"
		if l.Through.Item != nil {
			item = *l.Through.Item
		}
		return "each " + item + " in " + l.Through.Iterable.String() + " { ... }"
	}
}
func (*Loop) instructionNode() {}

// BreakKind discriminates a Break instruction's flavor.
type BreakKind int

const (
	// BreakReturn is `return` or `return expr`.
	BreakReturn BreakKind = iota
	// BreakPass is `pass`: skip to the next loop iteration.
	BreakPass
	// BreakStop is `stop`: exit the enclosing loop.
	BreakStop
)

// Break is a `return`/`pass`/`stop` breaker, optionally targeting a named
// or numbered enclosing scope via `@`.
type Break struct {
	Slc         module.Slice
	Kind        BreakKind
	Value       Expression // BreakReturn only; nil for a bare `return`
	ScopeTarget *ScopeTarget
}

func (b *Break) Slice() module.Slice { return b.Slc }
func (b *Break) String() string {
	switch b.Kind {
	case BreakReturn:
		if b.Value != nil {
			return "return " + b.Value.String()
		}
		return "return"
	case BreakPass:
		return "pass"
	default:
		return "stop"
	}
}
func (*Break) instructionNode() {}

// Use is a `use [{a, b} from] "<location>" [in name]` import; IsFile
// reports whether the location names a file path rather than a package.
type Use struct {
	Slc       module.Slice
	Selectors []string
	Location  string
	IsFile    bool
	BindName  *string
}

func (u *Use) Slice() module.Slice { return u.Slc }
func (u *Use) String() string {
	var b strings.Builder
	b.WriteString("use ")
	b.WriteString(strings.Join(u.Selectors, ", "))
	b.WriteString(" from ")
	if u.IsFile {
		b.WriteByte('"')
		b.WriteString(u.Location)
		b.WriteByte('"')
	} else {
		b.WriteString(u.Location)
	}
	if u.BindName != nil {
		b.WriteString(" in ")
		b.WriteString(*u.BindName)
	}
	return b.String()
}
func (*Use) instructionNode() {}
