package parse

import (
	"github.com/dhamidi/parsekit/diag"
	"github.com/dhamidi/parsekit/lex"
)

// Parse runs p over lx, requires the text to be fully consumed, and
// folds the recovery sink into the outcome: any emitted error turns
// the parse into a failure aggregating, in emission order, every sink
// entry followed by the root failure when one exists.
func Parse[V any](lx *lex.Lexer, ctx *Context, p Parser[V]) Result[V] {
	r := p(lx, ctx)
	if !r.IsErr() {
		if re := EndOfText()(lx, ctx); re.IsErr() {
			r = Fail[V](re.Err)
		}
	}
	if sink := ctx.Sink(); sink != nil && sink.Len() > 0 {
		errs := append([]*diag.Error(nil), sink.Errs()...)
		if r.IsErr() && errs[len(errs)-1] != r.Err {
			errs = append(errs, r.Err)
		}
		return Fail[V](diag.NewAggregate(errs))
	}
	return r
}

// TryParse runs p over lx without requiring end of text and without
// folding the sink.
func TryParse[V any](lx *lex.Lexer, ctx *Context, p Parser[V]) Result[V] {
	return p(lx, ctx)
}
