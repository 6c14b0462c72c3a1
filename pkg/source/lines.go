package source

// LineInfo describes one line of a Text.
type LineInfo struct {
	// StartOffset is the byte offset of the first byte of the line.
	StartOffset int

	// NewlineStart is the offset of the line terminator (\n or \r\n),
	// or the end of content for the last line.
	NewlineStart int

	// EndOffset is the offset just past the line terminator.
	EndOffset int

	// UTF16Start is the UTF-16 offset of the first code unit of the line.
	UTF16Start int
}

// buildLines constructs line metadata, handling both LF and CRLF endings.
func buildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{{}}
	}

	var lines []LineInfo
	lineStart := 0
	utf16Start := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
			UTF16Start:   utf16Start,
		})
		utf16Start += utf16Len(content[lineStart : idx+1])
		lineStart = idx + 1
	}

	// A trailing newline still opens an (empty) final line.
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
		UTF16Start:   utf16Start,
	})

	return lines
}

// LineCount returns the number of lines.
func (t *Text) LineCount() int {
	return len(t.lines)
}

// Line returns the metadata for a 1-based line number.
func (t *Text) Line(line int) (LineInfo, bool) {
	if line < 1 || line > len(t.lines) {
		return LineInfo{}, false
	}
	return t.lines[line-1], true
}

// LineContent returns the content of a 1-based line, excluding the newline.
// Returns nil when the line is out of range.
func (t *Text) LineContent(line int) []byte {
	info, ok := t.Line(line)
	if !ok {
		return nil
	}
	return t.content[info.StartOffset:info.NewlineStart]
}

// LineRange returns the byte range of a 1-based line, excluding the newline.
func (t *Text) LineRange(line int) (Range, bool) {
	info, ok := t.Line(line)
	if !ok {
		return Range{}, false
	}
	return Range{Start: info.StartOffset, End: info.NewlineStart}, true
}
