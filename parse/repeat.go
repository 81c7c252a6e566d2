package parse

import (
	"fmt"

	"github.com/dhamidi/parsekit/diag"
	"github.com/dhamidi/parsekit/lex"
	"github.com/dhamidi/parsekit/span"
)

// Repetition combinators are greedy: another item always wins over a
// stop condition. An item that succeeds without consuming any visible
// token ends the loop so unbounded repetitions terminate. max < 0
// means unbounded.

// Repeat runs p between min and max times and yields the count.
func Repeat[V any](min, max int, p Parser[V]) Parser[int] {
	return count(RepeatCollect(min, max, p))
}

// RepeatCollect runs p between min and max times and collects the
// values.
func RepeatCollect[V any](min, max int, p Parser[V]) Parser[[]V] {
	return repeatEngine(min, max, p, nil)
}

// RepeatUntil is Repeat, but when p stops matching, stop must be
// pending at the current position (checked without consuming).
func RepeatUntil[V, S any](min, max int, p Parser[V], stop Parser[S]) Parser[int] {
	return count(RepeatCollectUntil(min, max, p, stop))
}

// RepeatCollectUntil is the collecting form of RepeatUntil.
func RepeatCollectUntil[V, S any](min, max int, p Parser[V], stop Parser[S]) Parser[[]V] {
	return repeatEngine(min, max, p, Discard(stop))
}

// Intersperse parses items separated by sep and yields the item count.
// Trailing separators are not consumed; callers wanting to tolerate
// them add a trailing Maybe(sep).
func Intersperse[V, S any](min, max int, item Parser[V], sep Parser[S]) Parser[int] {
	return count(IntersperseCollect(min, max, item, sep))
}

// IntersperseCollect is the collecting form of Intersperse.
func IntersperseCollect[V, S any](min, max int, item Parser[V], sep Parser[S]) Parser[[]V] {
	return intersperseEngine(min, max, item, Discard(sep), nil)
}

// IntersperseUntil is Intersperse with a required pending stop.
func IntersperseUntil[V, S, T any](min, max int, item Parser[V], sep Parser[S], stop Parser[T]) Parser[int] {
	return count(IntersperseCollectUntil(min, max, item, sep, stop))
}

// IntersperseCollectUntil is the collecting form of IntersperseUntil.
func IntersperseCollectUntil[V, S, T any](min, max int, item Parser[V], sep Parser[S], stop Parser[T]) Parser[[]V] {
	return intersperseEngine(min, max, item, Discard(sep), Discard(stop))
}

func count[V any](p Parser[[]V]) Parser[int] {
	return Map(p, func(vs []V) int { return len(vs) })
}

func repeatEngine[V any](min, max int, p Parser[V], stop Parser[struct{}]) Parser[[]V] {
	return func(lx *lex.Lexer, ctx *Context) Result[[]V] {
		var out []V
		var lastErr *diag.Error
		start := lx.Pos()
		noMatch := false
		for max < 0 || len(out) < max {
			snap := lx.Snapshot()
			before := lx.Visible()
			r := p(lx, ctx)
			if r.IsErr() {
				if !suppressible(r.Err) {
					return Fail[[]V](r.Err)
				}
				lastErr = r.Err
				lx.Restore(snap)
				noMatch = true
				break
			}
			out = append(out, r.Value)
			if lx.Visible() == before {
				break
			}
		}
		return finishRun(lx, ctx, out, min, start, lastErr, stop, noMatch)
	}
}

func intersperseEngine[V any](min, max int, item Parser[V], sep, stop Parser[struct{}]) Parser[[]V] {
	return func(lx *lex.Lexer, ctx *Context) Result[[]V] {
		var out []V
		var lastErr *diag.Error
		start := lx.Pos()
		noMatch := false
		for max < 0 || len(out) < max {
			snap := lx.Snapshot()
			before := lx.Visible()
			if len(out) > 0 {
				rs := sep(lx, ctx)
				if rs.IsErr() {
					if !suppressible(rs.Err) {
						return Fail[[]V](rs.Err)
					}
					lastErr = rs.Err
					lx.Restore(snap)
					noMatch = true
					break
				}
			}
			r := item(lx, ctx)
			if r.IsErr() {
				if !suppressible(r.Err) {
					return Fail[[]V](r.Err)
				}
				lastErr = r.Err
				lx.Restore(snap)
				noMatch = true
				break
			}
			out = append(out, r.Value)
			if lx.Visible() == before {
				break
			}
		}
		return finishRun(lx, ctx, out, min, start, lastErr, stop, noMatch)
	}
}

// finishRun applies the until and min requirements shared by the
// repetition engines.
func finishRun[V any](lx *lex.Lexer, ctx *Context, out []V, min int, start span.Pos, lastErr *diag.Error, stop Parser[struct{}], noMatch bool) Result[[]V] {
	if stop != nil && noMatch {
		snap := lx.Snapshot()
		rs := stop(lx, ctx)
		lx.Restore(snap)
		if rs.IsErr() {
			if lastErr != nil {
				return Fail[[]V](lastErr.WithSpanStart(start))
			}
			return Fail[[]V](rs.Err)
		}
	}
	if len(out) < min {
		if lastErr != nil {
			return Fail[[]V](lastErr.WithSpanStart(start))
		}
		sp := span.Span{Start: start, End: lx.Pos()}
		return Fail[[]V](diag.NewValidation(sp,
			fmt.Sprintf("expected at least %d items, found %d", min, len(out))))
	}
	return Ok(out)
}

// IntersperseRecover parses items separated by the sep token, with
// per-item recovery when a sink is installed: a failed item is emitted
// once, the lexer resynchronizes at the next separator or the
// enclosing close delimiter, and an absent placeholder takes the
// item's position. Errors after a placeholder and before the next
// successful item are dropped.
func IntersperseRecover[V any](min, max int, item Parser[V], sep lex.Token) Parser[[]Opt[V]] {
	sepParser := One(sep)
	return func(lx *lex.Lexer, ctx *Context) Result[[]Opt[V]] {
		var out []Opt[V]
		var lastErr *diag.Error
		start := lx.Pos()
		emitted := false
		for max < 0 || len(out) < max {
			snap := lx.Snapshot()
			before := lx.Visible()
			if len(out) > 0 {
				rs := sepParser(lx, ctx)
				if rs.IsErr() {
					if !suppressible(rs.Err) {
						return Fail[[]Opt[V]](rs.Err)
					}
					lx.Restore(snap)
					break
				}
			}
			r := item(lx, ctx)
			if !r.IsErr() {
				out = append(out, Some(r.Value))
				emitted = false
				if lx.Visible() == before {
					break
				}
				continue
			}
			if !suppressible(r.Err) {
				return Fail[[]Opt[V]](r.Err)
			}
			lastErr = r.Err
			if !ctx.Recovering() {
				lx.Restore(snap)
				break
			}
			if !emitted {
				ctx.Emit(r.Err)
				emitted = true
			}
			frameSync := ctx.syncPred()
			pred := func(t lex.Token) bool {
				if t == sep {
					return true
				}
				return frameSync != nil && frameSync(t)
			}
			if _, aerr := lx.AdvanceTo(pred); aerr != nil {
				return Fail[[]Opt[V]](r.Err)
			}
			log.Debugf("recovered list item at %v", lx.Pos())
			out = append(out, Opt[V]{})
		}
		if len(out) < min {
			if lastErr != nil {
				return Fail[[]Opt[V]](lastErr.WithSpanStart(start))
			}
			sp := span.Span{Start: start, End: lx.Pos()}
			return Fail[[]Opt[V]](diag.NewValidation(sp,
				fmt.Sprintf("expected at least %d items, found %d", min, len(out))))
		}
		return Ok(out)
	}
}
