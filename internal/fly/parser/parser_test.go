package parser

import (
	"testing"

	"github.com/flylang/flylang/internal/fly/ast"
	"github.com/flylang/flylang/internal/fly/lexer"
	"github.com/flylang/flylang/internal/fly/module"
	"github.com/flylang/flylang/internal/fly/token"
)

func parseSource(t *testing.T, src string) (*ast.Program, []error, error) {
	t.Helper()
	m := module.New("<test>", src)
	toks, lexErrs := lexer.New(m).Tokenize()
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	return New(m, toks).Parse()
}

func singleStatement(t *testing.T, src string) ast.Instruction {
	t.Helper()
	prog, warnings, err := parseSource(t, src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(prog.Instructions) != 1 {
		t.Fatalf("expected exactly one instruction, got %d", len(prog.Instructions))
	}
	return prog.Instructions[0]
}

// S1
func TestBareBooleanLiteral(t *testing.T) {
	instr := singleStatement(t, "true")
	v, ok := instr.(*ast.ValueOf)
	if !ok {
		t.Fatalf("expected ValueOf, got %T", instr)
	}
	lit, ok := v.Expr.(*ast.BooleanLiteral)
	if !ok || !lit.Value {
		t.Fatalf("expected true literal, got %#v", v.Expr)
	}
}

// S2
func TestNegativeNumberSignFolding(t *testing.T) {
	instr := singleStatement(t, "-.9874")
	v := instr.(*ast.ValueOf)
	num, ok := v.Expr.(*ast.NumberLiteral)
	if !ok {
		t.Fatalf("expected NumberLiteral, got %T", v.Expr)
	}
	if num.Value != -0.9874 {
		t.Fatalf("expected -0.9874, got %v", num.Value)
	}
}

func TestSubtractBetweenWordAndNumberIsOperation(t *testing.T) {
	instr := singleStatement(t, "a-5")
	v := instr.(*ast.ValueOf)
	op, ok := v.Expr.(*ast.Operation)
	if !ok || op.Family != ast.Arithmetic || op.Op != token.Substract {
		t.Fatalf("expected Operation(Substract, a, 5), got %#v", v.Expr)
	}
	if _, ok := op.Left.(*ast.Identifier); !ok {
		t.Fatalf("expected left operand to be the identifier a, got %T", op.Left)
	}
	num, ok := op.Right.(*ast.NumberLiteral)
	if !ok || num.Value != 5 {
		t.Fatalf("expected right operand to be the literal 5, got %#v", op.Right)
	}
}

func TestDotBetweenWordAndDigitIsPropertyIndex(t *testing.T) {
	instr := singleStatement(t, "x.5")
	v := instr.(*ast.ValueOf)
	prop, ok := v.Expr.(*ast.Property)
	if !ok || prop.Kind != ast.PropertyIndex || prop.Index != 5 {
		t.Fatalf("expected Property(Index, x, 5), got %#v", v.Expr)
	}
	if _, ok := prop.Base.(*ast.Identifier); !ok {
		t.Fatalf("expected base to be the identifier x, got %T", prop.Base)
	}
}

// S3
func TestBinaryNumberLiteral(t *testing.T) {
	instr := singleStatement(t, "0b10110")
	v := instr.(*ast.ValueOf)
	num, ok := v.Expr.(*ast.NumberLiteral)
	if !ok {
		t.Fatalf("expected NumberLiteral, got %T", v.Expr)
	}
	if num.Value != 22 {
		t.Fatalf("expected 22, got %v", num.Value)
	}
}

// S4
func TestHexWithDecimalPointIsError(t *testing.T) {
	m := module.New("<test>", "0xeff.a55")
	toks, lexErrs := lexer.New(m).Tokenize()
	if len(lexErrs) != 0 {
		return
	}
	_, _, err := New(m, toks).Parse()
	if err == nil {
		t.Fatalf("expected an error for a hex literal with a decimal point")
	}
}

// S5
func TestOperatorPrecedenceClimbsRight(t *testing.T) {
	instr := singleStatement(t, "1 + 2 * 3")
	v := instr.(*ast.ValueOf)
	op, ok := v.Expr.(*ast.Operation)
	if !ok || op.Family != ast.Arithmetic {
		t.Fatalf("expected a top-level Add operation, got %#v", v.Expr)
	}
	if _, ok := op.Left.(*ast.NumberLiteral); !ok {
		t.Fatalf("expected left operand to be the literal 1, got %T", op.Left)
	}
	rhs, ok := op.Right.(*ast.Operation)
	if !ok || rhs.Family != ast.Arithmetic {
		t.Fatalf("expected right operand to be Multiply(2, 3), got %#v", op.Right)
	}
}

// S6
func TestInfixNegatedComparison(t *testing.T) {
	instr := singleStatement(t, "a !< b")
	v := instr.(*ast.ValueOf)
	rev, ok := v.Expr.(*ast.Reverse)
	if !ok || rev.Kind != ast.ReverseBoolean {
		t.Fatalf("expected Reverse{Boolean, ...}, got %#v", v.Expr)
	}
	op, ok := rev.Operand.(*ast.Operation)
	if !ok || op.Family != ast.Comparison || !op.Strict {
		t.Fatalf("expected a strict comparison operand, got %#v", rev.Operand)
	}
}

// S7
func TestFunctionSingleExpressionBodyWrappedInReturn(t *testing.T) {
	instr := singleStatement(t, "fn id(x, x)")
	fn, ok := instr.(*ast.DefineFunction)
	if !ok {
		t.Fatalf("expected DefineFunction, got %T", instr)
	}
	if fn.Name == nil || *fn.Name != "id" {
		t.Fatalf("expected name id, got %#v", fn.Name)
	}
	if len(fn.Arguments) != 1 || fn.Arguments[0] != "x" {
		t.Fatalf("expected a single argument x, got %#v", fn.Arguments)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("expected a single body instruction, got %d", len(fn.Body))
	}
	brk, ok := fn.Body[0].(*ast.Break)
	if !ok || brk.Kind != ast.BreakReturn {
		t.Fatalf("expected an implicit Break{Return}, got %#v", fn.Body[0])
	}
	ident, ok := brk.Value.(*ast.Identifier)
	if !ok || ident.Name != "x" {
		t.Fatalf("expected the return value to be x, got %#v", brk.Value)
	}
}

// S8
func TestStringInterpolationParts(t *testing.T) {
	instr := singleStatement(t, `"hi &(x + 1)!"`)
	v := instr.(*ast.ValueOf)
	str, ok := v.Expr.(*ast.StringLiteral)
	if !ok {
		t.Fatalf("expected StringLiteral, got %T", v.Expr)
	}
	if len(str.Parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(str.Parts))
	}
	if str.Parts[0].Literal == nil || *str.Parts[0].Literal != "hi " {
		t.Fatalf("expected first part to be %q, got %#v", "hi ", str.Parts[0])
	}
	op, ok := str.Parts[1].Expr.(*ast.Operation)
	if !ok || op.Family != ast.Arithmetic || op.Op.String() != "+" {
		t.Fatalf("expected second part to be an Add operation, got %#v", str.Parts[1].Expr)
	}
	if str.Parts[2].Literal == nil || *str.Parts[2].Literal != "!" {
		t.Fatalf("expected third part to be %q, got %#v", "!", str.Parts[2])
	}
}

// S9
func TestIfTernaryAndFallback(t *testing.T) {
	instr := singleStatement(t, "if(c, a, b)")
	v, ok := instr.(*ast.ValueOf)
	if !ok {
		t.Fatalf("expected ValueOf, got %T", instr)
	}
	tern, ok := v.Expr.(*ast.Ternary)
	if !ok {
		t.Fatalf("expected Ternary, got %T", v.Expr)
	}
	if _, ok := tern.Condition.(*ast.Identifier); !ok {
		t.Fatalf("expected condition to be an identifier, got %#v", tern.Condition)
	}

	instr2 := singleStatement(t, "if(c, a) else (b)")
	ifNode, ok := instr2.(*ast.If)
	if !ok {
		t.Fatalf("expected If, got %T", instr2)
	}
	if ifNode.Fallback == nil || ifNode.Fallback.Chain != nil {
		t.Fatalf("expected a terminal Process fallback, got %#v", ifNode.Fallback)
	}
	if len(ifNode.Fallback.Process) != 1 {
		t.Fatalf("expected a single instruction in the fallback, got %d", len(ifNode.Fallback.Process))
	}
}

// S10
func TestEachLoopWithItemAndIndex(t *testing.T) {
	instr := singleStatement(t, "each(xs, i, k, body)")
	loop, ok := instr.(*ast.Loop)
	if !ok {
		t.Fatalf("expected Loop, got %T", instr)
	}
	if loop.Through.Kind != ast.LoopEach {
		t.Fatalf("expected LoopEach, got %v", loop.Through.Kind)
	}
	iterable, ok := loop.Through.Iterable.(*ast.Identifier)
	if !ok || iterable.Name != "xs" {
		t.Fatalf("expected iterable xs, got %#v", loop.Through.Iterable)
	}
	if loop.Through.Item == nil || *loop.Through.Item != "i" {
		t.Fatalf("expected item i, got %#v", loop.Through.Item)
	}
	if loop.Through.Index == nil || *loop.Through.Index != "k" {
		t.Fatalf("expected index k, got %#v", loop.Through.Index)
	}
	if len(loop.Process) != 1 {
		t.Fatalf("expected a single body instruction, got %d", len(loop.Process))
	}
}

func TestEmptyFileParsesToEmptyProgram(t *testing.T) {
	prog, warnings, err := parseSource(t, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(prog.Instructions) != 0 {
		t.Fatalf("expected no instructions, got %d", len(prog.Instructions))
	}
}

func TestUnbalancedParenIsError(t *testing.T) {
	m := module.New("<test>", "fn id(x, x")
	toks, lexErrs := lexer.New(m).Tokenize()
	_, _, err := New(m, toks).Parse()
	if len(lexErrs) == 0 && err == nil {
		t.Fatalf("expected an error for an unclosed scope")
	}
}

func TestCoalescedEndOfInstructionTokens(t *testing.T) {
	prog, _, err := parseSource(t, "a: 1;;;; b: 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Instructions) != 2 {
		t.Fatalf("expected 2 instructions, got %d", len(prog.Instructions))
	}
}

func TestEmptyScopeProducesWarning(t *testing.T) {
	_, warnings, err := parseSource(t, "fn foo()")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, w := range warnings {
		if _, ok := w.(*EmptyScope); ok {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an EmptyScope warning, got %v", warnings)
	}
}

func TestVariableDefinitionPlain(t *testing.T) {
	instr := singleStatement(t, "count: 1")
	def, ok := instr.(*ast.DefineVariable)
	if !ok {
		t.Fatalf("expected DefineVariable, got %T", instr)
	}
	if def.Emplacement.Kind != ast.EmplaceWord || def.Emplacement.Word != "count" {
		t.Fatalf("expected emplacement word count, got %#v", def.Emplacement)
	}
	if def.Constant {
		t.Fatalf("expected a non-constant definition")
	}
}

func TestVariableDefinitionConstant(t *testing.T) {
	instr := singleStatement(t, "count:: 1")
	def := instr.(*ast.DefineVariable)
	if !def.Constant {
		t.Fatalf("expected a constant definition")
	}
}

func TestVariableDefinitionWithOperatorFold(t *testing.T) {
	instr := singleStatement(t, "count -: 1")
	def, ok := instr.(*ast.DefineVariable)
	if !ok {
		t.Fatalf("expected DefineVariable, got %T", instr)
	}
	op, ok := def.Value.(*ast.Operation)
	if !ok || op.Family != ast.Arithmetic || op.Op.String() != "-" {
		t.Fatalf("expected the value to be Operation(Substract, count, 1), got %#v", def.Value)
	}
	left, ok := op.Left.(*ast.Identifier)
	if !ok || left.Name != "count" {
		t.Fatalf("expected the left operand to be count, got %#v", op.Left)
	}
}

func TestClassWithParentAndConstructor(t *testing.T) {
	instr := singleStatement(t, "cs Cat(Animal, fn(n, name: n), sound: \"meow\")")
	cls, ok := instr.(*ast.DefineClass)
	if !ok {
		t.Fatalf("expected DefineClass, got %T", instr)
	}
	if cls.Name != "Cat" {
		t.Fatalf("expected name Cat, got %q", cls.Name)
	}
	if len(cls.Parents) != 1 || cls.Parents[0] != "Animal" {
		t.Fatalf("expected parent Animal, got %#v", cls.Parents)
	}
	if cls.Constructor == nil || len(cls.Constructor.Arguments) != 1 {
		t.Fatalf("expected a one-argument constructor, got %#v", cls.Constructor)
	}
	if len(cls.Items) != 1 || cls.Items[0].Variable == nil {
		t.Fatalf("expected a single field item, got %#v", cls.Items)
	}
}

func TestUseWithSelectorsAndBinding(t *testing.T) {
	instr := singleStatement(t, `use {a, b} from "./mod.fly" in m`)
	use, ok := instr.(*ast.Use)
	if !ok {
		t.Fatalf("expected Use, got %T", instr)
	}
	if len(use.Selectors) != 2 || use.Selectors[0] != "a" || use.Selectors[1] != "b" {
		t.Fatalf("expected selectors [a b], got %#v", use.Selectors)
	}
	if !use.IsFile {
		t.Fatalf("expected a file-path location")
	}
	if use.BindName == nil || *use.BindName != "m" {
		t.Fatalf("expected binding m, got %#v", use.BindName)
	}
}

func TestUntilLowersToWhileWithReversedCondition(t *testing.T) {
	instr := singleStatement(t, "until(done, stop)")
	loop, ok := instr.(*ast.Loop)
	if !ok {
		t.Fatalf("expected Loop, got %T", instr)
	}
	if loop.Through.Kind != ast.LoopWhile {
		t.Fatalf("expected LoopWhile, got %v", loop.Through.Kind)
	}
	if _, ok := loop.Through.Condition.(*ast.Reverse); !ok {
		t.Fatalf("expected the condition to be wrapped in Reverse, got %#v", loop.Through.Condition)
	}
}

func TestModifiedVariableDefinition(t *testing.T) {
	instr := singleStatement(t, "#(deprecated) count: 1")
	md, ok := instr.(*ast.ModifiedDefinable)
	if !ok {
		t.Fatalf("expected ModifiedDefinable, got %T", instr)
	}
	if len(md.Modifiers) != 1 {
		t.Fatalf("expected a single modifier, got %#v", md.Modifiers)
	}
	if _, ok := md.Definable.(*ast.DefineVariable); !ok {
		t.Fatalf("expected a wrapped DefineVariable, got %T", md.Definable)
	}
}
