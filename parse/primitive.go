package parse

import (
	"strings"

	"github.com/dhamidi/parsekit/diag"
	"github.com/dhamidi/parsekit/lex"
	"github.com/dhamidi/parsekit/span"
)

// Empty succeeds without consuming anything.
func Empty() Parser[struct{}] {
	return func(lx *lex.Lexer, ctx *Context) Result[struct{}] {
		return Ok(struct{}{})
	}
}

// FailWith fails unconditionally with a validation error at the
// current position.
func FailWith[V any](msg string) Parser[V] {
	return func(lx *lex.Lexer, ctx *Context) Result[V] {
		return Fail[V](diag.NewValidation(span.At(lx.Pos()), msg))
	}
}

// One matches exactly tok and yields the matched text. Nothing is
// consumed on a mismatch.
func One(tok lex.Token) Parser[string] {
	return func(lx *lex.Lexer, ctx *Context) Result[string] {
		got, sp, err := lx.Peek()
		if err != nil {
			return Fail[string](diag.FromLexError(err, tok.String()))
		}
		if got != tok {
			return Fail[string](diag.NewUnexpectedToken(got, sp, tok.String()))
		}
		lx.Next()
		return Ok(lx.Slice(sp))
	}
}

// Any matches the first of toks equal to the next token and yields the
// matched token.
func Any(toks ...lex.Token) Parser[lex.Token] {
	return func(lx *lex.Lexer, ctx *Context) Result[lex.Token] {
		expected := describeAny(toks)
		got, sp, err := lx.Peek()
		if err != nil {
			return Fail[lex.Token](diag.FromLexError(err, expected))
		}
		for _, tok := range toks {
			if got == tok {
				lx.Next()
				return Ok(got)
			}
		}
		return Fail[lex.Token](diag.NewUnexpectedToken(got, sp, expected))
	}
}

func describeAny(toks []lex.Token) string {
	if len(toks) == 1 {
		return toks[0].String()
	}
	names := make([]string, len(toks))
	for i, tok := range toks {
		names[i] = tok.String()
	}
	return "one of " + strings.Join(names, ", ")
}

// Seq matches toks pointwise in order, respecting the active filter,
// and yields the text from the first to the last matched token. On a
// mismatch the failure span covers the whole attempted run. Wrap in
// Unfiltered for adjacency-sensitive sequences.
func Seq(toks ...lex.Token) Parser[string] {
	return func(lx *lex.Lexer, ctx *Context) Result[string] {
		var begin, end span.Pos
		for i, want := range toks {
			got, sp, err := lx.Peek()
			if err != nil {
				e := diag.FromLexError(err, want.String())
				if i > 0 {
					e.WithSpanStart(begin)
				}
				return Fail[string](e)
			}
			if got != want {
				e := diag.NewUnexpectedToken(got, sp, want.String())
				if i > 0 {
					e.WithSpanStart(begin)
				}
				return Fail[string](e)
			}
			if i == 0 {
				begin = sp.Start
			}
			end = sp.End
			lx.Next()
		}
		if len(toks) == 0 {
			return Ok("")
		}
		return Ok(lx.Slice(span.Span{Start: begin, End: end}))
	}
}

// EndOfText succeeds when only filtered tokens (or nothing) remain.
func EndOfText() Parser[struct{}] {
	return func(lx *lex.Lexer, ctx *Context) Result[struct{}] {
		got, sp, err := lx.Peek()
		if err == nil {
			return Fail[struct{}](diag.NewExpectedEOF(got, sp))
		}
		if _, ok := err.(*lex.UnexpectedEOF); ok {
			return Ok(struct{}{})
		}
		return Fail[struct{}](diag.FromLexError(err, "end of text"))
	}
}
