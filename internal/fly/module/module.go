// Package module holds the immutable source unit that every token and AST
// node in flylang is anchored to: a Module (path + code) and the Slice /
// CharView views over it used for diagnostics and value recovery.
package module

import (
	"fmt"
	"os"
	"strings"
)

const expectedExtension = ".fly"

// Position is a 1-based line/column pair plus the 0-based rune offset it
// corresponds to. It never outlives the Module it was computed from.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Module is an immutable source file: its path and its contents, decoded
// once into runes so that Slice and CharView can index by code point
// rather than by byte, matching the lexer's character-at-a-time Analyser.
//
// A Module is never mutated after New returns. It is shared by reference
// among every Slice, Token, and AST Node derived from it; since nothing
// writes to it after construction, that sharing is race-free by
// construction rather than by locking.
type Module struct {
	Path  string
	Code  string
	runes []rune
}

// New constructs a Module from a path and its source text, stripping a
// leading UTF-8 byte-order mark if present so the lexer never sees it as a
// character.
func New(path, code string) *Module {
	code = strings.TrimPrefix(code, "\xef\xbb\xbf")
	return &Module{Path: path, Code: code, runes: []rune(code)}
}

// WeirdExtension is a non-fatal diagnostic raised when a loaded file does
// not end in .fly; parsing still proceeds.
type WeirdExtension struct {
	Path string
}

func (e *WeirdExtension) Error() string {
	return fmt.Sprintf("%s: expected a %s file", e.Path, expectedExtension)
}

// InvalidEntryPoint reports a file that could not be read at all.
type InvalidEntryPoint struct {
	Path string
	Err  error
}

func (e *InvalidEntryPoint) Error() string {
	return fmt.Sprintf("cannot load %s: %v", e.Path, e.Err)
}

// Load reads path and constructs a Module from its contents. A non-.fly
// extension yields a WeirdExtension warning alongside the loaded module
// rather than failing; a read failure yields InvalidEntryPoint and a nil
// module.
func Load(path string) (*Module, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &InvalidEntryPoint{Path: path, Err: err}
	}
	m := New(path, string(content))
	if !strings.HasSuffix(path, expectedExtension) {
		return m, &WeirdExtension{Path: path}
	}
	return m, nil
}

// Len returns the number of runes in the module's source.
func (m *Module) Len() int {
	return len(m.runes)
}

// Rune returns the rune at the given index. It panics if index is out of
// [0, Len()) — callers are expected to have checked bounds via Len() or to
// be iterating within a known-valid Slice.
func (m *Module) Rune(index int) rune {
	return m.runes[index]
}

// Runes returns the rune slice in [start, end). The returned slice aliases
// the module's own backing array and must not be mutated by callers.
func (m *Module) Runes(start, end int) []rune {
	return m.runes[start:end]
}

// PositionAt computes the 1-based line/column for a rune offset by
// scanning the module's runes up to that offset. This is O(offset), which
// is acceptable for a front-end that only computes positions for
// diagnostics, not on every token.
func (m *Module) PositionAt(offset int) Position {
	line, col := 1, 1
	for i := 0; i < offset && i < len(m.runes); i++ {
		if m.runes[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Position{Line: line, Column: col, Offset: offset}
}

// Slice is a half-open rune range [Start, End) into a Module. It is cheap
// to copy (two ints and a pointer) and carries its module by shared
// reference so diagnostics and value recovery can always re-read the
// original source.
//
// Invariant: 0 <= Start <= End <= Module.Len(). An empty slice with
// Start == End == Module.Len() denotes end-of-file.
type Slice struct {
	Module *Module
	Start  int
	End    int
}

// EOF returns the empty end-of-file slice for m.
func EOF(m *Module) Slice {
	n := m.Len()
	return Slice{Module: m, Start: n, End: n}
}

// Empty reports whether the slice spans zero runes.
func (s Slice) Empty() bool {
	return s.Start == s.End
}

// Code returns the source text covered by the slice.
func (s Slice) Code() string {
	return string(s.Module.Runes(s.Start, s.End))
}

// Len returns the number of runes covered by the slice.
func (s Slice) Len() int {
	return s.End - s.Start
}

// Union returns the smallest slice covering both s and other. Both slices
// must share the same module; Union panics otherwise, since a slice must
// never span two modules.
func (s Slice) Union(other Slice) Slice {
	if s.Module != other.Module {
		panic("module: cannot union slices from different modules")
	}
	start := s.Start
	if other.Start < start {
		start = other.Start
	}
	end := s.End
	if other.End > end {
		end = other.End
	}
	return Slice{Module: s.Module, Start: start, End: end}
}

// Pos returns the starting position of the slice, suitable for caret
// diagnostics.
func (s Slice) Pos() Position {
	return s.Module.PositionAt(s.Start)
}

// CharView is a cursor onto a single rune of a Module, exposing its
// line/column alongside the character itself.
type CharView struct {
	Module *Module
	Index  int
}

// Rune returns the character at this view, or 0 if the view is at or past
// end-of-file.
func (c CharView) Rune() rune {
	if c.Index < 0 || c.Index >= c.Module.Len() {
		return 0
	}
	return c.Module.Rune(c.Index)
}

// Pos returns the 1-based line/column/offset of this view.
func (c CharView) Pos() Position {
	return c.Module.PositionAt(c.Index)
}

// Slice returns the single-rune slice [Index, Index+1) this view denotes.
func (c CharView) Slice() Slice {
	return Slice{Module: c.Module, Start: c.Index, End: c.Index + 1}
}
