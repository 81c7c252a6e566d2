package parse

import (
	"github.com/dhamidi/parsekit/diag"
	"github.com/dhamidi/parsekit/lex"
	"github.com/dhamidi/parsekit/span"
)

// Map transforms the value of a successful parse.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(lx *lex.Lexer, ctx *Context) Result[B] {
		r := p(lx, ctx)
		if r.IsErr() {
			return Fail[B](r.Err)
		}
		return Ok(f(r.Value))
	}
}

// Discard drops the value of a successful parse.
func Discard[V any](p Parser[V]) Parser[struct{}] {
	return Map(p, func(V) struct{} { return struct{}{} })
}

// Spanned pairs the value with the implicit span at the end of the
// parse. Combine with Section or a sublexer to scope the span to the
// sub-parse alone.
func Spanned[V any](p Parser[V]) Parser[Located[V]] {
	return func(lx *lex.Lexer, ctx *Context) Result[Located[V]] {
		r := p(lx, ctx)
		if r.IsErr() {
			return Fail[Located[V]](r.Err)
		}
		return Ok(Located[V]{Value: r.Value, Span: lx.CurrentSpan()})
	}
}

// Text discards the value and yields the source text of the implicit
// span instead.
func Text[V any](p Parser[V]) Parser[string] {
	return func(lx *lex.Lexer, ctx *Context) Result[string] {
		r := p(lx, ctx)
		if r.IsErr() {
			return Fail[string](r.Err)
		}
		return Ok(lx.Slice(lx.CurrentSpan()))
	}
}

// FilterWith runs p with set as the active filter. The previous filter
// is restored on every exit path.
func FilterWith[V any](set *lex.FilterSet, p Parser[V]) Parser[V] {
	return func(lx *lex.Lexer, ctx *Context) Result[V] {
		lx.PushFilter(set)
		defer lx.PopFilter()
		return p(lx, ctx)
	}
}

// Unfiltered runs p with filtering disabled, so whitespace-like tokens
// become visible.
func Unfiltered[V any](p Parser[V]) Parser[V] {
	return FilterWith(nil, p)
}

// Section runs p on a sublexer with a fresh span anchor and decorates
// failures with desc. The outer lexer adopts the sublexer's progress
// on both success and failure, so the failure state stays inspectable.
func Section[V any](desc string, p Parser[V]) Parser[V] {
	return func(lx *lex.Lexer, ctx *Context) Result[V] {
		sub := lx.Sublexer()
		anchor := span.At(sub.Pos())
		ctx.push(frame{kind: frameSection, desc: desc, anchor: anchor})
		defer ctx.pop()
		log.Debugf("section %q at %v", desc, anchor.Start)

		r := p(sub, ctx)
		lx.Adopt(sub)
		if r.IsErr() && !ctx.InRaw() && !r.Err.Raw {
			r.Err.WithSpanStart(anchor.Start)
			r.Err.WithHighlight(anchor, "in "+desc)
			r.Err.Elevate(diag.SeverityUnbounded)
		}
		return r
	}
}

// Raw runs p with context decoration disabled, so only the underlying
// error surfaces. Use for deeply nested parses where only lexer errors
// are possible and decoration overhead is unwanted.
func Raw[V any](p Parser[V]) Parser[V] {
	return func(lx *lex.Lexer, ctx *Context) Result[V] {
		ctx.push(frame{kind: frameRaw})
		defer ctx.pop()
		r := p(lx, ctx)
		if r.IsErr() {
			r.Err.Raw = true
			r.Err.Highlights = nil
			r.Err.Notes = nil
			r.Err.Help = ""
		}
		return r
	}
}
