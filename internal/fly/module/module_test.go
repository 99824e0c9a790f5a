package module

import "testing"

func TestNewStripsLeadingBOM(t *testing.T) {
	m := New("<test>", "\xef\xbb\xbflet x")
	if m.Code != "let x" {
		t.Errorf("expected BOM stripped, got %q", m.Code)
	}
}

func TestPositionAtTracksLinesAndColumns(t *testing.T) {
	m := New("<test>", "ab\ncd")
	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{Line: 1, Column: 1, Offset: 0}},
		{2, Position{Line: 1, Column: 3, Offset: 2}},
		{3, Position{Line: 2, Column: 1, Offset: 3}},
		{4, Position{Line: 2, Column: 2, Offset: 4}},
	}
	for _, tt := range tests {
		if got := m.PositionAt(tt.offset); got != tt.want {
			t.Errorf("PositionAt(%d) = %+v, want %+v", tt.offset, got, tt.want)
		}
	}
}

func TestSliceCodeAndLen(t *testing.T) {
	m := New("<test>", "hello")
	s := Slice{Module: m, Start: 1, End: 4}
	if s.Code() != "ell" {
		t.Errorf("Code() = %q, want %q", s.Code(), "ell")
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if s.Empty() {
		t.Error("expected non-empty slice")
	}
}

func TestSliceUnionCoversBothRanges(t *testing.T) {
	m := New("<test>", "0123456789")
	a := Slice{Module: m, Start: 2, End: 4}
	b := Slice{Module: m, Start: 6, End: 8}

	u := a.Union(b)
	if u.Start != 2 || u.End != 8 {
		t.Errorf("Union = [%d,%d), want [2,8)", u.Start, u.End)
	}
}

func TestSliceUnionPanicsAcrossModules(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic when unioning slices from different modules")
		}
	}()
	a := Slice{Module: New("a", "x"), Start: 0, End: 1}
	b := Slice{Module: New("b", "y"), Start: 0, End: 1}
	a.Union(b)
}

func TestEOFIsEmptyAtModuleEnd(t *testing.T) {
	m := New("<test>", "abc")
	eof := EOF(m)
	if !eof.Empty() {
		t.Error("expected EOF slice to be empty")
	}
	if eof.Start != 3 {
		t.Errorf("expected EOF.Start == 3, got %d", eof.Start)
	}
}

func TestLoadMissingFileReturnsInvalidEntryPoint(t *testing.T) {
	_, err := Load("/nonexistent/path/does-not-exist.fly")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if _, ok := err.(*InvalidEntryPoint); !ok {
		t.Errorf("expected *InvalidEntryPoint, got %T", err)
	}
}
