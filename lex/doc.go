// Package lex provides the token cursor that drives parsing.
//
// Consumers supply a Scanner that recognizes one token at a time from a
// text suffix. The Lexer wraps a scanner and a span.Source and exposes
// peek/advance semantics, cheap snapshots for backtracking, token
// filtering (typically whitespace and comments), and the span anchoring
// that parsers use to report positions.
//
// The lexer maintains three positions: the span anchor (where the
// current implicit span began), the start of the most recently consumed
// token, and the cursor (the next byte to scan). Filtered tokens are
// skipped silently; they advance the cursor but are never handed to the
// caller and never count as visible consumption.
package lex
