package span

import "fmt"

// Span is a half-open range [Start, End) within one source text.
type Span struct {
	Start Pos
	End   Pos
}

// At returns the empty span at pos.
func At(pos Pos) Span {
	return Span{Start: pos, End: pos}
}

// New returns the span from start to end. It panics if end precedes
// start.
func New(start, end Pos) Span {
	if end.Before(start) {
		panic(fmt.Sprintf("span end %v precedes start %v", end, start))
	}
	return Span{Start: start, End: end}
}

// Empty reports whether the span covers no bytes.
func (s Span) Empty() bool {
	return s.Start.Byte == s.End.Byte
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return s.End.Byte - s.Start.Byte
}

// Contains reports whether pos lies within the span.
func (s Span) Contains(pos Pos) bool {
	return s.Start.Byte <= pos.Byte && pos.Byte < s.End.Byte
}

// Encloses reports whether t lies entirely within s.
func (s Span) Encloses(t Span) bool {
	return s.Start.Byte <= t.Start.Byte && t.End.Byte <= s.End.Byte
}

// Join returns the smallest span enclosing both s and t. It is
// associative and commutative for spans of the same source.
func (s Span) Join(t Span) Span {
	out := s
	if t.Start.Before(out.Start) {
		out.Start = t.Start
	}
	if out.End.Before(t.End) {
		out.End = t.End
	}
	return out
}

func (s Span) String() string {
	if s.Empty() {
		return s.Start.String()
	}
	return fmt.Sprintf("%v-%v", s.Start, s.End)
}
