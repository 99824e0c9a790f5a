package parser

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestParseSnapshots locks down the AST's String() rendering for a set of
// representative programs spanning most grammar rules. Unlike the
// targeted unit tests above, a snapshot catches an unintended shift in
// how a construct stringifies even when no single assertion was written
// to catch that specific shift.
func TestParseSnapshots(t *testing.T) {
	samples := map[string]string{
		"var_def":       "count: 1 + 2 * 3",
		"function":      "fn add(a, b, a + b)",
		"class":         "cs Cat(Animal, fn(n, name: n), sound: \"meow\")",
		"if_ternary":    "if(c, a, b)",
		"if_fallback":   "if(c, a) else (b)",
		"each_loop":     "each(xs, item, index, item)",
		"use_statement": `use {a, b} from "./mod.fly" in m`,
		"modifier":      "#(deprecated) count: 1",
		"string_interp": `"hi &(x + 1)!"`,
	}

	for name, src := range samples {
		t.Run(name, func(t *testing.T) {
			program, warnings, err := parseSource(t, src)
			if err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			if len(warnings) != 0 {
				t.Fatalf("unexpected warnings: %v", warnings)
			}
			snaps.MatchSnapshot(t, program.String())
		})
	}
}
