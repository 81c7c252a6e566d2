package parse

import (
	"github.com/dhamidi/parsekit/diag"
	"github.com/dhamidi/parsekit/lex"
)

// Maybe tries p. On success the value is present; on a suppressible
// failure the lexer is restored and the parse succeeds with an absent
// value. Committed failures propagate unchanged.
func Maybe[V any](p Parser[V]) Parser[Opt[V]] {
	return func(lx *lex.Lexer, ctx *Context) Result[Opt[V]] {
		snap := lx.Snapshot()
		r := p(lx, ctx)
		if !r.IsErr() {
			return Ok(Some(r.Value))
		}
		if !suppressible(r.Err) {
			return Fail[Opt[V]](r.Err)
		}
		lx.Restore(snap)
		return Ok(Opt[V]{})
	}
}

// Either tries a, then b from the same starting state. A committed
// failure of a propagates without trying b. When both fail, the
// higher-severity error wins; ties go to a.
func Either[V any](a, b Parser[V]) Parser[V] {
	return func(lx *lex.Lexer, ctx *Context) Result[V] {
		snap := lx.Snapshot()
		ra := a(lx, ctx)
		if !ra.IsErr() {
			return ra
		}
		if !suppressible(ra.Err) {
			return ra
		}
		lx.Restore(snap)
		rb := b(lx, ctx)
		if !rb.IsErr() {
			log.Debugf("alternative: second branch selected after %v", ra.Err.Kind)
			return rb
		}
		if rb.Err.Severity > ra.Err.Severity {
			return rb
		}
		return Fail[V](ra.Err)
	}
}

// Atomic runs p as a committed region. A failure after any visible
// token was consumed past the entry point is elevated so enclosing
// Maybe and Either cannot swallow it; a failure with no visible
// consumption stays suppressible.
func Atomic[V any](p Parser[V]) Parser[V] {
	return func(lx *lex.Lexer, ctx *Context) Result[V] {
		anchor := lx.Visible()
		ctx.push(frame{kind: frameAtomic, anchor: lx.CurrentSpan()})
		defer ctx.pop()

		r := p(lx, ctx)
		if r.IsErr() {
			if lx.Visible() > anchor {
				r.Err.Elevate(diag.SeverityAtomic)
			} else {
				r.Err.Demote(diag.SeverityBounded)
			}
		}
		return r
	}
}

// RequireIf behaves as Atomic(p) when required is true and as Maybe(p)
// otherwise.
func RequireIf[V any](required bool, p Parser[V]) Parser[Opt[V]] {
	return func(lx *lex.Lexer, ctx *Context) Result[Opt[V]] {
		if !required {
			return Maybe(p)(lx, ctx)
		}
		r := Atomic(p)(lx, ctx)
		if r.IsErr() {
			return Fail[Opt[V]](r.Err)
		}
		return Ok(Some(r.Value))
	}
}

// Cond runs p only when pred holds for the next visible token;
// otherwise it succeeds with an absent value without consuming. A
// lexer error on lookahead counts as pred not holding.
func Cond[V any](pred func(lex.Token) bool, p Parser[V]) Parser[Opt[V]] {
	return func(lx *lex.Lexer, ctx *Context) Result[Opt[V]] {
		tok, _, err := lx.Peek()
		if err != nil || !pred(tok) {
			return Ok(Opt[V]{})
		}
		r := p(lx, ctx)
		if r.IsErr() {
			return Fail[Opt[V]](r.Err)
		}
		return Ok(Some(r.Value))
	}
}

// Implies makes a optional and b required once a has succeeded. When a
// matches nothing, the whole parse succeeds with an absent value. When
// a consumed visible tokens, a failure of b is committed.
func Implies[A, B any](a Parser[A], b Parser[B]) Parser[Opt[Pair[A, B]]] {
	return func(lx *lex.Lexer, ctx *Context) Result[Opt[Pair[A, B]]] {
		anchor := lx.Visible()
		ra := Maybe(a)(lx, ctx)
		if ra.IsErr() {
			return Fail[Opt[Pair[A, B]]](ra.Err)
		}
		if !ra.Value.Ok {
			return Ok(Opt[Pair[A, B]]{})
		}
		rb := b(lx, ctx)
		if rb.IsErr() {
			if lx.Visible() > anchor {
				rb.Err.Elevate(diag.SeverityAtomic)
			}
			return Fail[Opt[Pair[A, B]]](rb.Err)
		}
		return Ok(Some(Pair[A, B]{A: ra.Value.Val, B: rb.Value}))
	}
}

// Antecedent is Implies projected to the optional first value.
func Antecedent[A, B any](a Parser[A], b Parser[B]) Parser[Opt[A]] {
	return Map(Implies(a, b), func(v Opt[Pair[A, B]]) Opt[A] {
		if !v.Ok {
			return Opt[A]{}
		}
		return Some(v.Val.A)
	})
}

// Consequent is Implies projected to the optional second value.
func Consequent[A, B any](a Parser[A], b Parser[B]) Parser[Opt[B]] {
	return Map(Implies(a, b), func(v Opt[Pair[A, B]]) Opt[B] {
		if !v.Ok {
			return Opt[B]{}
		}
		return Some(v.Val.B)
	})
}
