package diagnostics

import "github.com/goccy/go-yaml"

// record is the YAML-facing shape of a Diagnostic: a plain line/column
// pair instead of a module.Slice, since a Slice's backing *Module isn't
// meaningfully serializable and only the file-relative coordinates are
// wanted.
type record struct {
	Category string `yaml:"category"`
	Code     int    `yaml:"code"`
	Message  string `yaml:"message"`
	Line     int    `yaml:"line"`
	Column   int    `yaml:"column"`
}

func (d Diagnostic) toRecord() record {
	r := record{
		Category: d.Category.String(),
		Code:     int(d.Code),
		Message:  d.Message,
	}
	if d.Slice.Module != nil {
		pos := d.Slice.Pos()
		r.Line, r.Column = pos.Line, pos.Column
	}
	return r
}

// MarshalYAML renders a batch of diagnostics as a YAML sequence. The CLI
// does not call it: its --format=yaml mode covers token and AST output,
// while diagnostics are always printed as text.
func MarshalYAML(diags []Diagnostic) ([]byte, error) {
	records := make([]record, 0, len(diags))
	for _, d := range diags {
		records = append(records, d.toRecord())
	}
	return yaml.Marshal(records)
}
