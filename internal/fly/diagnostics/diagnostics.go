// Package diagnostics formats the lexer's and parser's errors into the
// caret-pointing, source-anchored reports described in spec §6/§7: every
// diagnostic carries a Category (Warn, Hint, Stop), a numeric Code, a
// message, and the module.Slice it points at.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/flylang/flylang/internal/fly/module"
)

// Category classifies how a diagnostic affects the surrounding driver: a
// Stop diagnostic is non-recoverable and ends the run; Warn and Hint print
// inline and let the caller continue.
type Category int

const (
	Warn Category = iota
	Hint
	Stop
)

func (c Category) String() string {
	switch c {
	case Warn:
		return "warning"
	case Hint:
		return "hint"
	case Stop:
		return "error"
	default:
		return "unknown"
	}
}

// Code is the small fixed set of numeric codes spec §6 maps to CLI exit
// statuses: 1 unexpected node, 2 unexpected token or unknown character, 3
// expected-X / unexpected-character / unclosed-scope, 4 unable to parse.
type Code int

const (
	CodeUnexpectedNode  Code = 1
	CodeUnexpectedToken Code = 2
	CodeExpected        Code = 3
	CodeUnableToParse   Code = 4
)

// Diagnostic is the uniform shape every lexer/parser error is classified
// into before formatting or batch reporting.
type Diagnostic struct {
	Category Category
	Code     Code
	Message  string
	Slice    module.Slice
}

func (d Diagnostic) Error() string {
	return d.Format(false)
}

// Format renders one diagnostic as a header line, the offending source
// line with a `^` caret under the error column, and the message.
func (d Diagnostic) Format(color bool) string {
	var sb strings.Builder

	label := strings.ToUpper(d.Category.String()[:1]) + d.Category.String()[1:]

	// A module-loader diagnostic (bad path, wrong extension) has no source
	// slice to anchor a caret to — it never made it past Load.
	if d.Slice.Module == nil {
		sb.WriteString(label)
		sb.WriteString(": ")
	} else {
		pos := d.Slice.Pos()
		path := d.Slice.Module.Path
		if path != "" {
			sb.WriteString(fmt.Sprintf("%s in %s:%d:%d\n", label, path, pos.Line, pos.Column))
		} else {
			sb.WriteString(fmt.Sprintf("%s at %d:%d\n", label, pos.Line, pos.Column))
		}

		if line := sourceLine(d.Slice.Module, pos.Line); line != "" {
			lineNumStr := fmt.Sprintf("%4d | ", pos.Line)
			sb.WriteString(lineNumStr)
			sb.WriteString(line)
			sb.WriteString("\n")

			sb.WriteString(strings.Repeat(" ", len(lineNumStr)+pos.Column-1))
			if color {
				sb.WriteString(caretColor(d.Category))
			}
			sb.WriteString("^")
			if color {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")
		}
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(fmt.Sprintf("[%s%d] %s", codePrefix(d.Category), d.Code, d.Message))
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func caretColor(c Category) string {
	switch c {
	case Stop:
		return "\033[1;31m" // red bold
	case Warn:
		return "\033[1;33m" // yellow bold
	default:
		return "\033[1;36m" // cyan bold
	}
}

func codePrefix(c Category) string {
	switch c {
	case Stop:
		return "E"
	case Warn:
		return "W"
	default:
		return "H"
	}
}

// sourceLine extracts the 1-indexed source line from a module's code by
// walking module.Module's rune buffer rather than splitting a raw string
// on every call.
func sourceLine(m *module.Module, lineNum int) string {
	if lineNum < 1 {
		return ""
	}
	line := 1
	start := -1
	for i := 0; i < m.Len(); i++ {
		if line == lineNum && start == -1 {
			start = i
		}
		if m.Rune(i) == '\n' {
			if line == lineNum {
				return string(m.Runes(start, i))
			}
			line++
		}
	}
	if line == lineNum && start != -1 {
		return string(m.Runes(start, m.Len()))
	}
	return ""
}

// FormatAll renders a batch of diagnostics: a single diagnostic is just
// its own Format, several get a summary header and an `[N of M]` label
// apiece.
func FormatAll(diags []Diagnostic, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return diags[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d diagnostics:\n\n", len(diags)))
	for i, d := range diags {
		sb.WriteString(fmt.Sprintf("[%d of %d]\n", i+1, len(diags)))
		sb.WriteString(d.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// HasStop reports whether any diagnostic in the batch is Stop-category —
// the condition the top-level driver (spec §7) uses to decide whether to
// terminate after printing.
func HasStop(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Category == Stop {
			return true
		}
	}
	return false
}
