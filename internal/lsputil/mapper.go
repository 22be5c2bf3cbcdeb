// Package lsputil converts between byte offsets in UTF-8 text and LSP
// positions, whose character field counts UTF-16 code units.
//
// Positions past the end of a line clamp to the line end, positions past the
// last line clamp to the end of the text, and a position never lands inside a
// multi-byte sequence.
package lsputil

import (
	"sort"
	"unicode/utf16"

	"go.lsp.dev/protocol"
)

// Mapper indexes the line starts of one text snapshot.
type Mapper struct {
	text       string
	lineStarts []int
}

func NewMapper(text string) *Mapper {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Mapper{text: text, lineStarts: starts}
}

func (m *Mapper) Text() string {
	return m.text
}

func (m *Mapper) lineCount() int {
	return len(m.lineStarts)
}

// line returns the text of line i without its terminator.
func (m *Mapper) line(i int) string {
	start := m.lineStarts[i]
	end := len(m.text)
	if i+1 < len(m.lineStarts) {
		end = m.lineStarts[i+1] - 1
	}
	return m.text[start:end]
}

// Offset maps an LSP position to a byte offset.
func (m *Mapper) Offset(pos protocol.Position) int {
	line := int(pos.Line)
	if line >= len(m.lineStarts) {
		return len(m.text)
	}
	return m.lineStarts[line] + ByteOffset(m.line(line), int(pos.Character))
}

// Position maps a byte offset to an LSP position.
func (m *Mapper) Position(offset int) protocol.Position {
	if offset <= 0 {
		return protocol.Position{}
	}
	if offset > len(m.text) {
		offset = len(m.text)
	}
	line := sort.Search(len(m.lineStarts), func(i int) bool {
		return m.lineStarts[i] > offset
	}) - 1
	col := UTF16Offset(m.line(line), offset-m.lineStarts[line])
	return protocol.Position{Line: uint32(line), Character: uint32(col)}
}

// Range maps the byte range [start, end) to an LSP range.
func (m *Mapper) Range(start, end int) protocol.Range {
	if start > end {
		start, end = end, start
	}
	return protocol.Range{Start: m.Position(start), End: m.Position(end)}
}

// Apply returns the text with r replaced by newText.
func (m *Mapper) Apply(r protocol.Range, newText string) string {
	start, end := m.Offset(r.Start), m.Offset(r.End)
	if start > end {
		start, end = end, start
	}
	return m.text[:start] + newText + m.text[end:]
}

func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// ByteOffset converts a UTF-16 column within line to a byte offset. A column
// splitting a surrogate pair resolves to the end of that rune.
func ByteOffset(line string, col int) int {
	units := 0
	for i, r := range line {
		if units >= col {
			return i
		}
		units += utf16.RuneLen(r)
	}
	return len(line)
}

// UTF16Offset converts a byte offset within line to a UTF-16 column. An
// offset inside a multi-byte sequence counts the whole rune.
func UTF16Offset(line string, offset int) int {
	units := 0
	for i, r := range line {
		if i >= offset {
			break
		}
		units += utf16.RuneLen(r)
	}
	return units
}
