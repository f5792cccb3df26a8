package parsing

import "fmt"

// Location identifies a single position within a grammar's source or
// a parser's input: 1-indexed line and column, plus the 0-indexed
// byte cursor offset from the start.
type Location struct {
	Line   int
	Column int
	Cursor int
}

// Span covers the region between two locations; used exclusively for
// error reporting. Node carries no position of its own — only text,
// children and name.
type Span struct {
	Start Location
	End   Location
}

// NewSpan returns the Span covering [start, end).
func NewSpan(start, end Location) Span {
	return Span{Start: start, End: end}
}

func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		if s.Start.Column == s.End.Column {
			return fmt.Sprintf("%d:%d", s.Start.Line, s.Start.Column)
		}
		return fmt.Sprintf("%d:%d..%d", s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%d:%d..%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// locationAt walks full from its start counting lines and columns up
// to the byte offset cursor (as produced by len() on a prefix of
// full). Line and column count runes, not bytes, so multi-byte UTF-8
// input still reports a sane column; the walk itself advances by byte
// index, matching the offsets every call site already has on hand. It
// is only ever called on error paths, so an O(cursor) scan is
// acceptable.
func locationAt(full string, cursor int) Location {
	line, col := 1, 1
	for i, r := range full {
		if i >= cursor {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Location{Line: line, Column: col, Cursor: cursor}
}

// spanFor builds the Span describing the region of full consumed
// between startOffset and endOffset, both byte offsets from the start
// of full (e.g. len(matchedText)).
func spanFor(full string, startOffset, endOffset int) Span {
	return NewSpan(locationAt(full, startOffset), locationAt(full, endOffset))
}
