package span

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Mode selects how bytes map to lines and columns.
type Mode int

const (
	// ASCII counts one column per byte and breaks lines on LF.
	ASCII Mode = iota
	// UTF8LF counts display width per rune and breaks lines on LF.
	UTF8LF
	// UTF8CRLF counts display width per rune and breaks lines on CRLF.
	UTF8CRLF
	// UTF8AnyLF counts display width per rune and breaks lines on
	// either LF or CRLF.
	UTF8AnyLF
)

var modeNames = map[Mode]string{
	ASCII:     "ASCII",
	UTF8LF:    "UTF8-LF",
	UTF8CRLF:  "UTF8-CRLF",
	UTF8AnyLF: "UTF8-AnyLF",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "Unknown"
}

// DefaultTabWidth is the tab stop width used when none is configured.
const DefaultTabWidth = 4

// Metrics computes line and column advances over source text.
type Metrics struct {
	Mode     Mode
	TabWidth int
}

func (m Metrics) tabWidth() int {
	if m.TabWidth <= 0 {
		return DefaultTabWidth
	}
	return m.TabWidth
}

// Advance walks the first nbytes of text, which is assumed to begin at
// base, and returns the resulting position. Tabs advance the column to
// the next tab stop; line breaks follow the metrics mode.
func (m Metrics) Advance(text string, base Pos, nbytes int) Pos {
	tw := m.tabWidth()
	pos := base
	if nbytes > len(text) {
		nbytes = len(text)
	}
	i := 0
	for i < nbytes {
		if (m.Mode == UTF8CRLF || m.Mode == UTF8AnyLF) && strings.HasPrefix(text[i:], "\r\n") {
			pos.Byte += 2
			pos.Line++
			pos.Column = 1
			i += 2
			continue
		}
		if m.Mode != UTF8CRLF && text[i] == '\n' {
			pos.Byte++
			pos.Line++
			pos.Column = 1
			i++
			continue
		}
		if text[i] == '\t' {
			pos.Byte++
			pos.Column = ((pos.Column-1)/tw+1)*tw + 1
			i++
			continue
		}
		if m.Mode == ASCII {
			pos.Byte++
			pos.Column++
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		pos.Byte += size
		pos.Column += runewidth.RuneWidth(r)
		i += size
	}
	return pos
}

// Width returns the column width of the first nbytes of text when
// advanced from base.
func (m Metrics) Width(text string, base Pos, nbytes int) int {
	return m.Advance(text, base, nbytes).Column - base.Column
}

// LineStart returns the position of the first column of the line
// containing pos. The text is the full source text pos was computed
// against.
func (m Metrics) LineStart(text string, pos Pos) Pos {
	b := pos.Byte
	for b > 0 && text[b-1] != '\n' {
		b--
	}
	return Pos{Byte: b, Line: pos.Line, Column: 1}
}

// LineEnd returns the position just before the line break that ends the
// line containing pos, or the end of text on the last line.
func (m Metrics) LineEnd(text string, pos Pos) Pos {
	rest := text[pos.Byte:]
	n := strings.IndexByte(rest, '\n')
	if n < 0 {
		return m.Advance(rest, pos, len(rest))
	}
	if (m.Mode == UTF8CRLF || m.Mode == UTF8AnyLF) && n > 0 && rest[n-1] == '\r' {
		n--
	}
	return m.Advance(rest, pos, n)
}
