package span

// Source is an immutable piece of source text together with a display
// name and the metrics used to compute positions within it.
type Source struct {
	text    string
	name    string
	metrics Metrics
	eof     Pos
	hasEOF  bool
}

// Option configures a Source.
type Option func(*Source)

// WithName sets the display name reported in diagnostics.
func WithName(name string) Option {
	return func(s *Source) { s.name = name }
}

// WithMetrics sets the column metrics for the source.
func WithMetrics(m Metrics) Option {
	return func(s *Source) { s.metrics = m }
}

// NewSource returns a source over text. The default metrics are UTF8LF
// with the default tab width.
func NewSource(text string, opts ...Option) *Source {
	s := &Source{
		text:    text,
		metrics: Metrics{Mode: UTF8LF},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Text returns the full source text.
func (s *Source) Text() string { return s.text }

// Name returns the display name, which may be empty.
func (s *Source) Name() string { return s.name }

// Metrics returns the column metrics of the source.
func (s *Source) Metrics() Metrics { return s.metrics }

// Len returns the length of the source text in bytes.
func (s *Source) Len() int { return len(s.text) }

// Slice returns the text covered by sp.
func (s *Source) Slice(sp Span) string {
	return s.text[sp.Start.Byte:sp.End.Byte]
}

// EOF returns the position of the end of the text. The position is
// computed once and cached.
func (s *Source) EOF() Pos {
	if !s.hasEOF {
		s.eof = s.metrics.Advance(s.text, Start, len(s.text))
		s.hasEOF = true
	}
	return s.eof
}

// Full returns the span covering the whole text.
func (s *Source) Full() Span {
	return Span{Start: Start, End: s.EOF()}
}

// Line returns the span of the full line containing pos.
func (s *Source) Line(pos Pos) Span {
	return Span{
		Start: s.metrics.LineStart(s.text, pos),
		End:   s.metrics.LineEnd(s.text, pos),
	}
}
