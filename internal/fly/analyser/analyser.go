// Package analyser implements the generic sliding-window cursor shared by
// the lexer (over runes) and the parser (over tokens), generalized over
// the element type so both can reuse the same cursor logic.
package analyser

// Analyser is a cursor over an owned sequence of items, with a current
// half-open window [start, end) into it. The lexer instantiates
// Analyser[rune]; the parser instantiates Analyser[token.Token].
type Analyser[T any] struct {
	items []T
	start int
	end   int
}

// New constructs an Analyser over items with an empty window at position 0.
func New[T any](items []T) *Analyser[T] {
	return &Analyser[T]{items: items, start: 0, end: 0}
}

// Get returns the items within the current window.
func (a *Analyser[T]) Get() []T {
	return a.items[a.start:a.end]
}

// Range returns the current window bounds.
func (a *Analyser[T]) Range() (int, int) {
	return a.start, a.end
}

// Len returns the length of the underlying sequence.
func (a *Analyser[T]) Len() int {
	return len(a.items)
}

// Set moves the window to [start, end). It panics if the range is invalid,
// matching the spec's "panic if invalid" contract for this primitive.
func (a *Analyser[T]) Set(start, end int) {
	if start > end || end > len(a.items) || start < 0 {
		panic("analyser: invalid range")
	}
	a.start = start
	a.end = end
}

// Next shifts the window to [end+skip, end+skip+length), i.e. it advances
// past the current window plus skip, then opens a window of the given
// length.
func (a *Analyser[T]) Next(skip, length int) {
	start := a.end + skip
	a.Set(start, start+length)
}

// Increase extends the window's end by n, growing it without moving start.
func (a *Analyser[T]) Increase(n int) {
	a.Set(a.start, a.end+n)
}

// MinLen tries to grow the window so its length is at least n, without
// moving past the end of the sequence, then reports whether it succeeded.
func (a *Analyser[T]) MinLen(n int) bool {
	if a.end-a.start >= n {
		return true
	}
	want := a.start + n
	if want > len(a.items) {
		want = len(a.items)
	}
	a.end = want
	return a.end-a.start >= n
}

// Lookup peeks at items[end+skip : end+skip+length) without moving the
// window. It returns (nil, false) if that range falls outside the
// sequence.
func (a *Analyser[T]) Lookup(skip, length int) ([]T, bool) {
	start := a.end + skip
	end := start + length
	if start < 0 || end > len(a.items) || start > end {
		return nil, false
	}
	return a.items[start:end], true
}

// AbleTo reports whether items[end+skip : end+skip+length) lies within the
// sequence, without allocating or moving the window.
func (a *Analyser[T]) AbleTo(skip, length int) bool {
	start := a.end + skip
	end := start + length
	return start >= 0 && end <= len(a.items) && start <= end
}

// ProcessFinished reports whether the window is empty and sits at the end
// of the sequence — the cursor has nothing left to offer.
func (a *Analyser[T]) ProcessFinished() bool {
	return a.start == a.end && a.end == len(a.items)
}
