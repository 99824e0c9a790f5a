package lexer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// dumpTokens renders a token stream in the same `[KIND] "literal"` shape
// the debug CLI's `lex` command prints, so a snapshot failure here reads
// the same way a CLI regression would.
func dumpTokens(toks []tokenLike) string {
	var sb strings.Builder
	for _, t := range toks {
		fmt.Fprintf(&sb, "[%-16s] %q\n", t.Kind, t.Literal)
	}
	return sb.String()
}

type tokenLike struct {
	Kind    string
	Literal string
}

// TestTokenizeSnapshots locks down the token stream for a handful of
// representative programs exercising most of the lexer's dispatch rules
// (numbers in every base, string interpolation, operators, scope
// targets). A diff here means a lexing change altered output shape, not
// necessarily that it's wrong — inspect and update the snapshot.
func TestTokenizeSnapshots(t *testing.T) {
	samples := map[string]string{
		"numbers":       "0b1011 0o17 0xAF 42 3.14 -.5",
		"interpolation": `"hello &(name)!"`,
		"definitions":   "count: 1; total -: count; PI:: 3.14",
		"control":       "if(c, a) else (b); while(cond, body); each(xs, item, body)",
		"scope_target":  "fn greet@out(name, name)",
	}

	for name, src := range samples {
		t.Run(name, func(t *testing.T) {
			toks, errs := tokenize(t, src)
			if len(errs) != 0 {
				t.Fatalf("unexpected lex errors: %v", errs)
			}
			rendered := make([]tokenLike, len(toks))
			for i, tok := range toks {
				rendered[i] = tokenLike{Kind: tok.Kind.String(), Literal: tok.Literal()}
			}
			snaps.MatchSnapshot(t, dumpTokens(rendered))
		})
	}
}
