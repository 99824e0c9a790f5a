package diagnostics

import (
	"strings"
	"testing"

	"github.com/flylang/flylang/internal/fly/lexer"
	"github.com/flylang/flylang/internal/fly/module"
	"github.com/flylang/flylang/internal/fly/parser"
)

func TestCategoryString(t *testing.T) {
	tests := []struct {
		category Category
		expected string
	}{
		{Warn, "warning"},
		{Hint, "hint"},
		{Stop, "error"},
	}
	for _, tt := range tests {
		if got := tt.category.String(); got != tt.expected {
			t.Errorf("Category(%d).String() = %q, want %q", tt.category, got, tt.expected)
		}
	}
}

func TestFormatIncludesCaretAtColumn(t *testing.T) {
	m := module.New("<test>", "let x = @\n")
	at := module.Slice{Module: m, Start: 8, End: 9}

	d := Diagnostic{Category: Stop, Code: CodeUnexpectedToken, Message: "unknown character", Slice: at}
	out := d.Format(false)

	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected at least 3 lines, got %d: %q", len(lines), out)
	}
	caretLine := lines[2]
	if !strings.HasSuffix(caretLine, "^") {
		t.Fatalf("expected caret line to end in `^`, got %q", caretLine)
	}
	if !strings.Contains(out, "unknown character") {
		t.Errorf("expected message in output, got %q", out)
	}
}

func TestFormatWithoutSourceSlice(t *testing.T) {
	d := Diagnostic{Category: Warn, Code: CodeExpected, Message: "expected a .fly file"}
	out := d.Format(false)
	if !strings.HasPrefix(out, "Warning: ") {
		t.Fatalf("expected header without position, got %q", out)
	}
}

func TestClassifyLexerErrors(t *testing.T) {
	m := module.New("<test>", "@")
	at := module.Slice{Module: m, Start: 0, End: 1}

	d := Classify(&lexer.UnknownCharacter{At: at})
	if d.Category != Stop || d.Code != CodeUnexpectedToken {
		t.Errorf("UnknownCharacter classified as %v/%d, want Stop/%d", d.Category, d.Code, CodeUnexpectedToken)
	}
}

func TestClassifyParserErrors(t *testing.T) {
	m := module.New("<test>", "fn id(x, x")
	at := module.Slice{Module: m, Start: 9, End: 10}

	d := Classify(&parser.UnableToParse{At: at, Reason: "unbalanced parens"})
	if d.Category != Stop || d.Code != CodeUnableToParse {
		t.Errorf("UnableToParse classified as %v/%d, want Stop/%d", d.Category, d.Code, CodeUnableToParse)
	}

	warn := Classify(&parser.EmptyScope{At: at})
	if warn.Category != Warn {
		t.Errorf("EmptyScope classified as %v, want Warn", warn.Category)
	}
}

func TestFormatAllBatchesMultiple(t *testing.T) {
	m := module.New("<test>", "a\nb\n")
	diags := []Diagnostic{
		{Category: Stop, Code: CodeUnableToParse, Message: "first", Slice: module.Slice{Module: m, Start: 0, End: 1}},
		{Category: Warn, Code: CodeExpected, Message: "second", Slice: module.Slice{Module: m, Start: 2, End: 3}},
	}
	out := FormatAll(diags, false)
	if !strings.Contains(out, "[1 of 2]") || !strings.Contains(out, "[2 of 2]") {
		t.Errorf("expected batch labels in output, got %q", out)
	}
	if !HasStop(diags) {
		t.Error("expected HasStop to report true when a Stop diagnostic is present")
	}
}

func TestMarshalYAMLRoundTrips(t *testing.T) {
	m := module.New("<test>", "x\n")
	diags := []Diagnostic{
		{Category: Stop, Code: CodeUnableToParse, Message: "bad token", Slice: module.Slice{Module: m, Start: 0, End: 1}},
	}
	out, err := MarshalYAML(diags)
	if err != nil {
		t.Fatalf("MarshalYAML returned error: %v", err)
	}
	if !strings.Contains(string(out), "bad token") {
		t.Errorf("expected message in YAML output, got %q", string(out))
	}
}
