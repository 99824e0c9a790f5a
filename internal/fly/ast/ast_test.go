package ast

import (
	"testing"

	"github.com/flylang/flylang/internal/fly/module"
	"github.com/flylang/flylang/internal/fly/token"
)

func testSlice(t *testing.T, code string) module.Slice {
	t.Helper()
	m := module.New("<test>", code)
	return module.Slice{Module: m, Start: 0, End: m.Len()}
}

func TestValueOfWrapsBareExpression(t *testing.T) {
	slc := testSlice(t, "true")
	v := &ValueOf{Slc: slc, Expr: &BooleanLiteral{Slc: slc, Value: true}}
	if v.String() != "true" {
		t.Fatalf("String() = %q, want %q", v.String(), "true")
	}
	var _ Instruction = v
}

func TestOperationPrecedenceFamilyStringsByFamily(t *testing.T) {
	slc := testSlice(t, "1 + 2")
	one := &NumberLiteral{Slc: module.Slice{Module: slc.Module, Start: 0, End: 1}, Value: 1}
	two := &NumberLiteral{Slc: module.Slice{Module: slc.Module, Start: 4, End: 5}, Value: 2}

	arith := &Operation{Slc: slc, Family: Arithmetic, Op: token.Add, Left: one, Right: two}
	if arith.String() != "(1 + 2)" {
		t.Fatalf("arithmetic String() = %q", arith.String())
	}

	bin := &Operation{Slc: slc, Family: Binary, BinOp: token.Or, Left: one, Right: two}
	if bin.String() != "(1 ? 2)" {
		t.Fatalf("binary String() = %q", bin.String())
	}

	cmp := &Operation{Slc: slc, Family: Comparison, CompOp: token.Less, Left: one, Right: two}
	if cmp.Family != Comparison || cmp.CompOp != token.Less {
		t.Fatalf("expected Comparison family with Less op, got %+v", cmp)
	}
}

func TestReverseString(t *testing.T) {
	slc := testSlice(t, "!x")
	id := &Identifier{Slc: slc, Name: "x"}
	r := &Reverse{Slc: slc, Kind: ReverseBoolean, Operand: id}
	if r.String() != "!x" {
		t.Fatalf("String() = %q", r.String())
	}
	r2 := &Reverse{Slc: slc, Kind: ReverseSign, Operand: id}
	if r2.String() != "-x" {
		t.Fatalf("String() = %q", r2.String())
	}
}

func TestCallAndReturnOf(t *testing.T) {
	slc := testSlice(t, "foo(1, 2)")
	callee := &Identifier{Slc: slc, Name: "foo"}
	one := &NumberLiteral{Slc: module.Slice{Module: slc.Module, Start: 4, End: 5}, Value: 1}
	two := &NumberLiteral{Slc: module.Slice{Module: slc.Module, Start: 7, End: 8}, Value: 2}
	call := &Call{Slc: slc, Callee: callee, Arguments: []Expression{one, two}}
	ret := &ReturnOf{Slc: slc, Call: call}
	if ret.String() != "foo(1, 2)" {
		t.Fatalf("String() = %q", ret.String())
	}
}

func TestPropertyKindRendering(t *testing.T) {
	slc := testSlice(t, "a.b")
	base := &Identifier{Slc: slc, Name: "a"}
	key := &Property{Slc: slc, Base: base, Kind: PropertyKey, Key: "b"}
	if key.String() != "a.b" {
		t.Fatalf("String() = %q", key.String())
	}
	idx := &Property{Slc: slc, Base: base, Kind: PropertyIndex, Index: 2}
	if idx.String() != "a.2" {
		t.Fatalf("String() = %q", idx.String())
	}
}

func TestStructureAndArrayRendering(t *testing.T) {
	slc := testSlice(t, "{a: 1}")
	one := &NumberLiteral{Slc: module.Slice{Module: slc.Module, Start: 4, End: 5}, Value: 1}
	s := &Structure{Slc: slc, Entries: []StructureEntry{{Key: "a", Value: one}}}
	if s.String() != "{a: 1}" {
		t.Fatalf("String() = %q", s.String())
	}
	arr := &Array{Slc: slc, Elements: []Expression{one, one}}
	if arr.String() != "{1, 1}" {
		t.Fatalf("String() = %q", arr.String())
	}
}

func TestDefineVariableConstantRendering(t *testing.T) {
	slc := testSlice(t, "x:: 1")
	one := &NumberLiteral{Slc: module.Slice{Module: slc.Module, Start: 4, End: 5}, Value: 1}
	d := &DefineVariable{
		Slc:         slc,
		Emplacement: Emplacement{Kind: EmplaceWord, Word: "x"},
		Constant:    true,
		Value:       one,
	}
	if d.String() != "x:: 1" {
		t.Fatalf("String() = %q", d.String())
	}
}

func TestScopeTargetRendering(t *testing.T) {
	slc := testSlice(t, "@outer")
	named := &ScopeTarget{Slc: slc, IsNamed: true, Named: "outer"}
	if named.String() != "@outer" {
		t.Fatalf("String() = %q", named.String())
	}
	numbered := &ScopeTarget{Slc: slc, Numbered: 2}
	if numbered.String() != "@<<" {
		t.Fatalf("String() = %q", numbered.String())
	}
}

func TestUseRendering(t *testing.T) {
	slc := testSlice(t, `use a, b from "./mod.fly"`)
	u := &Use{Slc: slc, Selectors: []string{"a", "b"}, Location: "./mod.fly", IsFile: true}
	if u.String() != `use a, b from "./mod.fly"` {
		t.Fatalf("String() = %q", u.String())
	}
}

func TestBreakKinds(t *testing.T) {
	slc := testSlice(t, "stop")
	stop := &Break{Slc: slc, Kind: BreakStop}
	if stop.String() != "stop" {
		t.Fatalf("String() = %q", stop.String())
	}
	pass := &Break{Slc: slc, Kind: BreakPass}
	if pass.String() != "pass" {
		t.Fatalf("String() = %q", pass.String())
	}
	ret := &Break{Slc: slc, Kind: BreakReturn}
	if ret.String() != "return" {
		t.Fatalf("String() = %q", ret.String())
	}
}
