package cmd

import (
	"encoding/json"

	"github.com/flylang/flylang/internal/fly/diagnostics"
)

// exitCodeFor maps a diagnostic to the process exit code spec §6
// specifies: 0 unless it's Stop-category, in which case its numeric Code
// (1 unexpected node, 2 unexpected token/unknown character, 3 expected-X,
// 4 unable to parse) doubles as the exit status.
func exitCodeFor(d diagnostics.Diagnostic) int {
	if d.Category != diagnostics.Stop {
		return 0
	}
	return int(d.Code)
}

// jsonMarshal is the plain encoding/json pass tidwall/pretty's formatter
// sits on top of for --format=json; pretty only re-indents/colors bytes,
// it doesn't produce them.
func jsonMarshal(v any) ([]byte, error) {
	return json.Marshal(v)
}
