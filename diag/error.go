package diag

import (
	"fmt"

	"github.com/dhamidi/parsekit/lex"
	"github.com/dhamidi/parsekit/span"
)

// Highlight annotates a span with a message, in addition to an error's
// primary span.
type Highlight struct {
	Span span.Span
	Msg  string
}

// Error is a parse error. The zero value is not useful; use the
// constructors, then the With* decorators as the error propagates
// through enclosing contexts.
type Error struct {
	Kind       Kind
	Span       span.Span
	Msg        string
	Highlights []Highlight
	Notes      []string
	Help       string
	Severity   Severity

	// Found and Expected describe token mismatches.
	Found    lex.Token
	Expected string

	// Raw marks an error that surfaced from a raw region; enclosing
	// contexts leave it undecorated.
	Raw bool

	// Cause chains an underlying error; Errs holds the members of an
	// Aggregate error.
	Cause error
	Errs  []*Error
}

func (e *Error) Error() string {
	if e.Span.Empty() {
		return fmt.Sprintf("%v: %s", e.Span.Start, e.Msg)
	}
	return fmt.Sprintf("%v: %s", e.Span, e.Msg)
}

// Unwrap exposes the cause chain and aggregate members to errors.Is
// and errors.As.
func (e *Error) Unwrap() []error {
	var out []error
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	for _, err := range e.Errs {
		out = append(out, err)
	}
	return out
}

// NewUnexpectedEOF reports that the text ended where expected was
// required. The expected description may be empty.
func NewUnexpectedEOF(pos span.Pos, expected string) *Error {
	msg := "unexpected end of text"
	if expected != "" {
		msg = fmt.Sprintf("unexpected end of text, expected %s", expected)
	}
	return &Error{
		Kind:     UnexpectedEOF,
		Span:     span.At(pos),
		Msg:      msg,
		Severity: SeverityLexer,
		Expected: expected,
	}
}

// NewUnexpectedToken reports that found appeared where expected was
// required.
func NewUnexpectedToken(found lex.Token, sp span.Span, expected string) *Error {
	msg := fmt.Sprintf("unexpected token %s", found)
	if expected != "" {
		msg = fmt.Sprintf("expected %s, found %s", expected, found)
	}
	return &Error{
		Kind:     UnexpectedToken,
		Span:     sp,
		Msg:      msg,
		Severity: SeverityLexer,
		Found:    found,
		Expected: expected,
	}
}

// NewExpectedEOF reports that found appeared where the text was
// required to end.
func NewExpectedEOF(found lex.Token, sp span.Span) *Error {
	return &Error{
		Kind:     ExpectedEOF,
		Span:     sp,
		Msg:      fmt.Sprintf("expected end of text, found %s", found),
		Severity: SeverityLexer,
		Found:    found,
	}
}

// NewUnrecognizedToken reports a run of bytes the scanner could not
// match.
func NewUnrecognizedToken(sp span.Span) *Error {
	return &Error{
		Kind:     UnrecognizedToken,
		Span:     sp,
		Msg:      "unrecognized token",
		Severity: SeverityLexer,
	}
}

// NewUnmatchedDelimiter reports an opening delimiter whose close was
// never found. The primary span is the opening delimiter.
func NewUnmatchedDelimiter(open span.Span, expectedClose string) *Error {
	return &Error{
		Kind:     UnmatchedDelimiter,
		Span:     open,
		Msg:      fmt.Sprintf("unmatched delimiter, expected %s", expectedClose),
		Severity: SeverityDelimited,
		Expected: expectedClose,
	}
}

// NewValidation reports a consumer-raised failure over sp.
func NewValidation(sp span.Span, msg string) *Error {
	return &Error{
		Kind:     Validation,
		Span:     sp,
		Msg:      msg,
		Severity: SeverityValidation,
	}
}

// NewAggregate bundles the errors collected during a recovering parse.
// The severity is the maximum of the members.
func NewAggregate(errs []*Error) *Error {
	sev := SeverityLexer
	sp := span.Span{}
	for i, err := range errs {
		if err.Severity > sev {
			sev = err.Severity
		}
		if i == 0 {
			sp = err.Span
		} else {
			sp = sp.Join(err.Span)
		}
	}
	return &Error{
		Kind:     Aggregate,
		Span:     sp,
		Msg:      fmt.Sprintf("parse failed with %d errors", len(errs)),
		Severity: sev,
		Errs:     errs,
	}
}

// FromLexError converts a lexer error into a parse error. The expected
// description may be empty.
func FromLexError(err error, expected string) *Error {
	switch e := err.(type) {
	case *lex.UnexpectedEOF:
		return NewUnexpectedEOF(e.Pos, expected)
	case *lex.UnrecognizedToken:
		out := NewUnrecognizedToken(e.Span)
		out.Expected = expected
		return out
	default:
		out := NewValidation(span.Span{}, err.Error())
		out.Cause = err
		return out
	}
}

// WithHighlight appends a highlighted span.
func (e *Error) WithHighlight(sp span.Span, msg string) *Error {
	e.Highlights = append(e.Highlights, Highlight{Span: sp, Msg: msg})
	return e
}

// WithNote appends a note.
func (e *Error) WithNote(note string) *Error {
	e.Notes = append(e.Notes, note)
	return e
}

// WithHelp sets the help string.
func (e *Error) WithHelp(help string) *Error {
	e.Help = help
	return e
}

// WithCause chains an underlying error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithSpanStart widens the primary span so it begins at pos. Positions
// after the current start are ignored.
func (e *Error) WithSpanStart(pos span.Pos) *Error {
	if pos.Before(e.Span.Start) {
		e.Span.Start = pos
	}
	return e
}

// Elevate raises the severity to at least s.
func (e *Error) Elevate(s Severity) *Error {
	if e.Severity < s {
		e.Severity = s
	}
	return e
}

// Demote lowers the severity to at most s.
func (e *Error) Demote(s Severity) *Error {
	if e.Severity > s {
		e.Severity = s
	}
	return e
}
