package parse

import (
	"github.com/dhamidi/parsekit/diag"
	"github.com/dhamidi/parsekit/lex"
	"github.com/dhamidi/parsekit/span"
)

// Both runs a then b and yields both values. It fails fast and implies
// no commit.
func Both[A, B any](a Parser[A], b Parser[B]) Parser[Pair[A, B]] {
	return func(lx *lex.Lexer, ctx *Context) Result[Pair[A, B]] {
		ra := a(lx, ctx)
		if ra.IsErr() {
			return Fail[Pair[A, B]](ra.Err)
		}
		rb := b(lx, ctx)
		if rb.IsErr() {
			return Fail[Pair[A, B]](rb.Err)
		}
		return Ok(Pair[A, B]{A: ra.Value, B: rb.Value})
	}
}

// Left runs a then b and keeps a's value.
func Left[A, B any](a Parser[A], b Parser[B]) Parser[A] {
	return Map(Both(a, b), func(p Pair[A, B]) A { return p.A })
}

// Right runs a then b and keeps b's value.
func Right[A, B any](a Parser[A], b Parser[B]) Parser[B] {
	return Map(Both(a, b), func(p Pair[A, B]) B { return p.B })
}

// Center runs a, b, c in order and keeps b's value.
func Center[A, B, C any](a Parser[A], b Parser[B], c Parser[C]) Parser[B] {
	return Left(Right(a, b), c)
}

// Bracket parses open, inner, close. The result is present on a clean
// parse. When a sink is installed and inner (or close) fails, the
// failure is emitted, the lexer advances past the close delimiter, and
// the result is an absent placeholder. Reaching end of text first
// yields an UnmatchedDelimiter failure anchored at the open delimiter.
func Bracket[V any](open lex.Token, inner Parser[V], close lex.Token) Parser[Opt[V]] {
	return bracket(open, inner, func(string) lex.Token { return close })
}

// BracketDynamic is Bracket with the close token computed from the
// matched open token's text.
func BracketDynamic[V any](open lex.Token, inner Parser[V], mkClose func(openText string) lex.Token) Parser[Opt[V]] {
	return bracket(open, inner, mkClose)
}

func bracket[V any](open lex.Token, inner Parser[V], mkClose func(string) lex.Token) Parser[Opt[V]] {
	return func(lx *lex.Lexer, ctx *Context) Result[Opt[V]] {
		ro := One(open)(lx, ctx)
		if ro.IsErr() {
			return Fail[Opt[V]](ro.Err)
		}
		return delimitedBody(lx, ctx, inner, mkClose(ro.Value), lx.TokenSpan())
	}
}

// BracketMatching parses one of opens, inner, and the close paired by
// index with the matched open. Before running inner it verifies, over
// a snapshot, that a matching close exists at the same nesting depth;
// a missing or mispaired close fails as UnmatchedDelimiter without
// consuming the region.
func BracketMatching[V any](opens []lex.Token, inner Parser[V], closes []lex.Token) Parser[Opt[V]] {
	return func(lx *lex.Lexer, ctx *Context) Result[Opt[V]] {
		ro := Any(opens...)(lx, ctx)
		if ro.IsErr() {
			return Fail[Opt[V]](ro.Err)
		}
		idx := 0
		for i, tok := range opens {
			if tok == ro.Value {
				idx = i
				break
			}
		}
		openSpan := lx.TokenSpan()
		close := closes[idx]
		if err := matchNested(lx, opens, closes, close, openSpan); err != nil {
			if ctx.Recovering() {
				ctx.Emit(err)
			}
			return Fail[Opt[V]](err)
		}
		return delimitedBody(lx, ctx, inner, close, openSpan)
	}
}

// matchNested scans a snapshot forward from just after an open
// delimiter, tracking nesting over all open/close pairs, and checks
// that the close ending the region is the expected one.
func matchNested(lx *lex.Lexer, opens, closes []lex.Token, want lex.Token, openSpan span.Span) *diag.Error {
	probe := lx.Snapshot()
	depth := 1
	for {
		tok, sp, err := probe.Next()
		if err != nil {
			return diag.NewUnmatchedDelimiter(openSpan, want.String()).
				WithHighlight(span.At(probe.Pos()), "text ends here").
				WithCause(err)
		}
		for _, o := range opens {
			if tok == o {
				depth++
			}
		}
		for _, c := range closes {
			if tok == c {
				depth--
			}
		}
		if depth == 0 {
			if tok != want {
				return diag.NewUnmatchedDelimiter(openSpan, want.String()).
					WithHighlight(sp, "found "+tok.String())
			}
			return nil
		}
	}
}

func delimitedBody[V any](lx *lex.Lexer, ctx *Context, inner Parser[V], close lex.Token, openSpan span.Span) Result[Opt[V]] {
	closeDesc := close.String()
	sync := func(t lex.Token) bool { return t == close }
	ctx.push(frame{kind: frameDelimited, desc: closeDesc, anchor: openSpan, sync: sync})
	defer ctx.pop()

	var ferr *diag.Error
	r := inner(lx, ctx)
	if r.IsErr() {
		ferr = r.Err
	} else {
		rc := One(close)(lx, ctx)
		if !rc.IsErr() {
			return Ok(Some(r.Value))
		}
		ferr = rc.Err
	}
	return recoverDelimited[V](lx, ctx, ferr, openSpan, closeDesc, sync)
}

// recoverDelimited implements the delimited-frame failure policy: the
// error is widened to the bracket pair; end-of-text failures reshape
// to UnmatchedDelimiter and propagate; otherwise, with a sink
// installed, the error is emitted once and the lexer resynchronizes
// past the close delimiter, yielding an absent placeholder.
func recoverDelimited[V any](lx *lex.Lexer, ctx *Context, ferr *diag.Error, openSpan span.Span, closeDesc string, sync func(lex.Token) bool) Result[Opt[V]] {
	if !ctx.InRaw() && !ferr.Raw {
		ferr.WithSpanStart(openSpan.Start)
		ferr.Elevate(diag.SeverityDelimited)
	}
	if ferr.Kind == diag.UnexpectedEOF {
		ud := diag.NewUnmatchedDelimiter(openSpan, closeDesc).
			WithHighlight(span.At(lx.Pos()), "text ends here").
			WithCause(ferr)
		if ctx.Recovering() {
			ctx.Emit(ud)
		}
		return Fail[Opt[V]](ud)
	}
	if !ctx.Recovering() {
		return Fail[Opt[V]](ferr)
	}
	if _, aerr := lx.AdvancePast(sync); aerr != nil {
		ud := diag.NewUnmatchedDelimiter(openSpan, closeDesc).
			WithHighlight(span.At(lx.Pos()), "text ends here").
			WithCause(ferr)
		ctx.Emit(ud)
		return Fail[Opt[V]](ud)
	}
	ctx.Emit(ferr)
	log.Debugf("recovered past %s at %v", closeDesc, lx.Pos())
	return Ok(Opt[V]{})
}
