package token

import (
	"testing"

	"github.com/flylang/flylang/internal/fly/module"
)

func TestLookupWord(t *testing.T) {
	cases := []struct {
		lexeme string
		want   Kind
	}{
		{"fn", Fn},
		{"cs", Cs},
		{"kind", KindKeyword},
		{"new", New},
		{"while", While},
		{"until", Until},
		{"each", Each},
		{"return", Return},
		{"stop", Stop},
		{"pass", Pass},
		{"if", If},
		{"else", Else},
		{"true", True},
		{"false", False},
		{"use", Use},
		{"in", In},
		{"from", From},
		{"whatever", Word},
		{"x", Word},
		{"Fn", Word}, // case sensitive
	}

	for _, tc := range cases {
		t.Run(tc.lexeme, func(t *testing.T) {
			if got := LookupWord(tc.lexeme); got != tc.want {
				t.Errorf("LookupWord(%q) = %v, want %v", tc.lexeme, got, tc.want)
			}
		})
	}
}

func TestBinaryOperatorOrdinalIsPrecedence(t *testing.T) {
	if !(And < Xor && Xor < Or) {
		t.Fatalf("expected And < Xor < Or, got %d %d %d", And, Xor, Or)
	}
}

func TestTokenLiteralAndPos(t *testing.T) {
	m := module.New("<test>", "abc + 1")
	tok := Token{Kind: Word, Slice: module.Slice{Module: m, Start: 0, End: 3}}

	if got, want := tok.Literal(), "abc"; got != want {
		t.Errorf("Literal() = %q, want %q", got, want)
	}
	if got, want := tok.Pos().String(), "1:1"; got != want {
		t.Errorf("Pos() = %q, want %q", got, want)
	}
}

func TestKindString(t *testing.T) {
	if got := Word.String(); got != "Word" {
		t.Errorf("Word.String() = %q", got)
	}
	if got := Kind(-1).String(); got != "Unknown" {
		t.Errorf("Kind(-1).String() = %q, want Unknown", got)
	}
}
