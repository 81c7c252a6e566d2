package diag

import (
	"github.com/dhamidi/parsekit/span"
)

// RecordSpan locates a span for diagnostic export.
type RecordSpan struct {
	Source    string `json:"source,omitempty"`
	ByteStart int    `json:"byte_start"`
	ByteEnd   int    `json:"byte_end"`
	Line      int    `json:"line"`
	Col       int    `json:"col"`
}

// RecordHighlight pairs an exported span with its message.
type RecordHighlight struct {
	Span    RecordSpan `json:"span"`
	Message string     `json:"message"`
}

// Record is the stable serializable form of an Error. Renderers and
// tooling consume records instead of live errors.
type Record struct {
	Kind       string            `json:"kind"`
	Primary    RecordHighlight   `json:"primary"`
	Highlights []RecordHighlight `json:"highlights,omitempty"`
	Notes      []string          `json:"notes,omitempty"`
	Help       string            `json:"help,omitempty"`
	Source     *Record           `json:"source,omitempty"`
	Errors     []*Record         `json:"errors,omitempty"`
}

func recordSpan(src *span.Source, sp span.Span) RecordSpan {
	out := RecordSpan{
		ByteStart: sp.Start.Byte,
		ByteEnd:   sp.End.Byte,
		Line:      sp.Start.Line,
		Col:       sp.Start.Column,
	}
	if src != nil {
		out.Source = src.Name()
	}
	return out
}

// Record exports the error resolved against src. The source may be nil
// when no file name is available.
func (e *Error) Record(src *span.Source) *Record {
	rec := &Record{
		Kind: e.Kind.String(),
		Primary: RecordHighlight{
			Span:    recordSpan(src, e.Span),
			Message: e.Msg,
		},
		Notes: e.Notes,
		Help:  e.Help,
	}
	for _, h := range e.Highlights {
		rec.Highlights = append(rec.Highlights, RecordHighlight{
			Span:    recordSpan(src, h.Span),
			Message: h.Msg,
		})
	}
	if cause, ok := e.Cause.(*Error); ok {
		rec.Source = cause.Record(src)
	}
	for _, err := range e.Errs {
		rec.Errors = append(rec.Errors, err.Record(src))
	}
	return rec
}
