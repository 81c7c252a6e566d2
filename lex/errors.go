package lex

import (
	"fmt"

	"github.com/dhamidi/parsekit/span"
)

// UnexpectedEOF reports that the end of text was reached while a token
// was required.
type UnexpectedEOF struct {
	Pos span.Pos
}

func (e *UnexpectedEOF) Error() string {
	return fmt.Sprintf("unexpected end of text at %v", e.Pos)
}

// UnrecognizedToken reports a run of bytes the scanner could not match.
// The span covers everything up to the next point where the scanner
// recognizes a token again, or the end of text.
type UnrecognizedToken struct {
	Span span.Span
}

func (e *UnrecognizedToken) Error() string {
	return fmt.Sprintf("unrecognized token at %v", e.Span)
}
