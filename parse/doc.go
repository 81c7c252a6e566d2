// Package parse provides the combinator algebra on top of the lex
// cursor and the diag error model.
//
// A Parser[V] consumes tokens from a *lex.Lexer and returns a
// Result[V]. Parsers mutate the lexer in place; on failure the lexer is
// left at the failure state so the caller can inspect it. Combinators
// that backtrack take a Snapshot before the attempt and Restore it when
// the attempt fails with a suppressible error. Failures at
// diag.SeverityAtomic or above are committed: optional and alternative
// combinators propagate them instead of backtracking.
//
// The Context carries the frame stack that decorates errors as they
// propagate (sections, atomic regions, delimited regions, raw regions)
// and the optional error sink that enables multi-error recovery inside
// bracketed regions.
package parse
