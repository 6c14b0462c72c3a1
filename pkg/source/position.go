package source

import (
	"sort"
	"unicode/utf8"
)

// Range is a half-open byte range [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty reports whether the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether offset lies in the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Overlaps reports whether two ranges share at least one byte.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Encloses reports whether other lies entirely within r.
func (r Range) Encloses(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Location is a resolved position in a Text.
type Location struct {
	// Offset is the byte offset.
	Offset int

	// Line is 1-based.
	Line int

	// Column is the 1-based column counted in UTF-8 bytes.
	Column int

	// Character is the 1-based column counted in UTF-16 code units.
	Character int
}

// IsValid reports whether the location has a positive line and column.
func (l Location) IsValid() bool {
	return l.Line > 0 && l.Column > 0
}

// Compare orders locations by offset.
func (l Location) Compare(other Location) int {
	switch {
	case l.Offset < other.Offset:
		return -1
	case l.Offset > other.Offset:
		return 1
	default:
		return 0
	}
}

// LocationAt resolves a byte offset. Offsets past the end clamp to the end.
func (t *Text) LocationAt(offset int) Location {
	offset = clamp(offset, 0, len(t.content))
	idx := t.LineIndex(offset)
	line := t.lines[idx]

	return Location{
		Offset:    offset,
		Line:      idx + 1,
		Column:    offset - line.StartOffset + 1,
		Character: utf16Len(t.content[line.StartOffset:offset]) + 1,
	}
}

// LineColumn returns the 1-based line and byte column of offset.
func (t *Text) LineColumn(offset int) (int, int) {
	loc := t.LocationAt(offset)
	return loc.Line, loc.Column
}

// LineCharacter returns the 1-based line and UTF-16 column of a byte offset.
func (t *Text) LineCharacter(offset int) (int, int) {
	loc := t.LocationAt(offset)
	return loc.Line, loc.Character
}

// UTF16Offset converts a byte offset to a UTF-16 offset from the start of content.
func (t *Text) UTF16Offset(offset int) int {
	offset = clamp(offset, 0, len(t.content))
	idx := t.LineIndex(offset)
	line := t.lines[idx]
	return line.UTF16Start + utf16Len(t.content[line.StartOffset:offset])
}

// ByteOffsetForUTF16 converts a UTF-16 offset into a byte offset.
// Returns ok=false when the offset is out of range or splits a surrogate pair.
func (t *Text) ByteOffsetForUTF16(u16 int) (int, bool) {
	if u16 < 0 {
		return 0, false
	}
	idx := sort.Search(len(t.lines), func(i int) bool {
		return t.lines[i].UTF16Start > u16
	}) - 1
	if idx < 0 {
		return 0, false
	}
	line := t.lines[idx]
	return walkUTF16(t.content, line.StartOffset, len(t.content), u16-line.UTF16Start)
}

// LineCharacterForUTF16 resolves a UTF-16 offset to a 1-based line and UTF-16 column.
func (t *Text) LineCharacterForUTF16(u16 int) (int, int, bool) {
	offset, ok := t.ByteOffsetForUTF16(u16)
	if !ok {
		return 0, 0, false
	}
	line, char := t.LineCharacter(offset)
	return line, char, true
}

// Offset converts a 1-based line and byte column to a byte offset.
// The column may point one past the last byte of the line.
func (t *Text) Offset(line, column int) (int, bool) {
	info, ok := t.Line(line)
	if !ok || column < 1 {
		return 0, false
	}
	offset := info.StartOffset + column - 1
	if offset > info.NewlineStart {
		return 0, false
	}
	return offset, true
}

// OffsetForCharacter converts a 1-based line and UTF-16 column to a byte offset.
func (t *Text) OffsetForCharacter(line, character int) (int, bool) {
	info, ok := t.Line(line)
	if !ok || character < 1 {
		return 0, false
	}
	return walkUTF16(t.content, info.StartOffset, info.NewlineStart, character-1)
}

// walkUTF16 advances units code units from start without passing limit.
func walkUTF16(content []byte, start, limit, units int) (int, bool) {
	offset := start
	for units > 0 {
		if offset >= limit {
			return 0, false
		}
		r, size := utf8.DecodeRune(content[offset:limit])
		width := 1
		if r >= 0x10000 {
			width = 2
		}
		if width > units {
			return 0, false
		}
		units -= width
		offset += size
	}
	return offset, true
}
