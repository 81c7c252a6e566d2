package parse

import (
	"github.com/dhamidi/parsekit/diag"
	"github.com/dhamidi/parsekit/lex"
	"github.com/dhamidi/parsekit/span"
)

// Result is the outcome of running a parser. Exactly one of Value and
// Err is meaningful: Err == nil means success.
type Result[V any] struct {
	Value V
	Err   *diag.Error
}

// Ok returns a successful result.
func Ok[V any](v V) Result[V] {
	return Result[V]{Value: v}
}

// Fail returns a failed result.
func Fail[V any](err *diag.Error) Result[V] {
	return Result[V]{Err: err}
}

// IsErr reports whether the result is a failure.
func (r Result[V]) IsErr() bool {
	return r.Err != nil
}

// Parser consumes tokens from the lexer and produces a value. The
// lexer is mutated in place; on failure it is left at the failure
// state. Callers that want to backtrack must take a lexer Snapshot
// before calling.
type Parser[V any] func(*lex.Lexer, *Context) Result[V]

// Opt is a value that may be absent, either because an optional parse
// matched nothing or because a recovering combinator substituted a
// placeholder for a failed region.
type Opt[V any] struct {
	Val V
	Ok  bool
}

// Some returns a present Opt.
func Some[V any](v V) Opt[V] {
	return Opt[V]{Val: v, Ok: true}
}

// Pair holds the two values produced by Both.
type Pair[A, B any] struct {
	A A
	B B
}

// Located pairs a parsed value with the span it covers.
type Located[V any] struct {
	Value V
	Span  span.Span
}

// suppressible reports whether an enclosing optional or alternative
// combinator may swallow err and backtrack.
func suppressible(err *diag.Error) bool {
	return err.Severity < diag.SeverityAtomic
}
