package parse

import (
	"testing"

	"github.com/dhamidi/parsekit/diag"
)

// listOf parses a bracketed, comma-separated identifier list with an
// optional trailing comma.
func listOf() Parser[Opt[[]string]] {
	items := IntersperseCollect(0, -1, One(tIdent), One(tComma))
	body := Left(items, Maybe(One(tComma)))
	return Bracket(tLBr, body, tRBr)
}

func TestParseEmptyList(t *testing.T) {
	lx := newLexer("[]")
	r := Parse(lx, NewContext(), listOf())
	if r.IsErr() {
		t.Fatalf("parse failed: %v", r.Err)
	}
	if !r.Value.Ok || len(r.Value.Val) != 0 {
		t.Errorf("value = %+v, want present empty list", r.Value)
	}
}

func TestParseTrailingComma(t *testing.T) {
	lx := newLexer("[a, b,]")
	r := Parse(lx, NewContext(), listOf())
	if r.IsErr() {
		t.Fatalf("parse failed: %v", r.Err)
	}
	got := r.Value.Val
	if !r.Value.Ok || len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("value = %+v, want [a b]", r.Value)
	}
}

func TestParseCommittedAlternative(t *testing.T) {
	binding := Map(Both(One(tLet), One(tIdent)), func(p Pair[string, string]) string { return p.B })
	expr := Either(Atomic(binding), One(tNum))

	lx := newLexer("let 3")
	r := TryParse(lx, NewContext(), expr)
	if !r.IsErr() {
		t.Fatalf("parse succeeded, want a committed failure")
	}
	if r.Err.Kind != diag.UnexpectedToken {
		t.Errorf("Kind = %v, want unexpected-token", r.Err.Kind)
	}
	if r.Err.Found != tNum || r.Err.Expected != "identifier" {
		t.Errorf("Found/Expected = %v/%q, want number/identifier", r.Err.Found, r.Err.Expected)
	}
	if r.Err.Span.Start.Byte != 4 || r.Err.Span.End.Byte != 5 {
		t.Errorf("span = [%d,%d), want [4,5)", r.Err.Span.Start.Byte, r.Err.Span.End.Byte)
	}
	if r.Err.Severity != diag.SeverityAtomic {
		t.Errorf("Severity = %v, want atomic", r.Err.Severity)
	}
}

func TestParseListRecovery(t *testing.T) {
	sink := diag.NewSink()
	ctx := NewContext(WithSink(sink))
	p := Bracket(tLBr, IntersperseRecover(0, -1, One(tIdent), tComma), tRBr)

	lx := newLexer("[a, , b]")
	r := TryParse(lx, ctx, p)
	if r.IsErr() {
		t.Fatalf("parse did not recover: %v", r.Err)
	}
	items := r.Value.Val
	if !r.Value.Ok || len(items) != 3 {
		t.Fatalf("items = %+v, want 3 positions", r.Value)
	}
	if !items[0].Ok || items[0].Val != "a" {
		t.Errorf("items[0] = %+v, want a", items[0])
	}
	if items[1].Ok {
		t.Errorf("items[1] = %+v, want placeholder", items[1])
	}
	if !items[2].Ok || items[2].Val != "b" {
		t.Errorf("items[2] = %+v, want b", items[2])
	}

	if sink.Len() != 1 {
		t.Fatalf("sink has %d errors, want 1", sink.Len())
	}
	err := sink.Errs()[0]
	if err.Kind != diag.UnexpectedToken || err.Found != tComma {
		t.Errorf("err = %v, want unexpected comma", err)
	}
	if err.Span.Start.Byte != 4 || err.Span.End.Byte != 5 {
		t.Errorf("span = [%d,%d), want [4,5)", err.Span.Start.Byte, err.Span.End.Byte)
	}
}

func TestParseUnclosedList(t *testing.T) {
	sink := diag.NewSink()
	ctx := NewContext(WithSink(sink))

	lx := newLexer("[a, b")
	r := Parse(lx, ctx, listOf())
	if !r.IsErr() {
		t.Fatalf("parse succeeded on unclosed list")
	}
	if r.Err.Kind != diag.Aggregate || len(r.Err.Errs) != 1 {
		t.Fatalf("root = %v with %d members, want aggregate of 1", r.Err.Kind, len(r.Err.Errs))
	}
	ud := r.Err.Errs[0]
	if ud.Kind != diag.UnmatchedDelimiter {
		t.Fatalf("member kind = %v, want unmatched-delimiter", ud.Kind)
	}
	if ud.Span.Start.Byte != 0 || ud.Span.End.Byte != 1 {
		t.Errorf("span = [%d,%d), want the open delimiter at [0,1)", ud.Span.Start.Byte, ud.Span.End.Byte)
	}
	found := false
	for _, h := range ud.Highlights {
		if h.Msg == "text ends here" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing end-of-text highlight: %+v", ud.Highlights)
	}
	var cause *diag.Error
	if c, ok := ud.Cause.(*diag.Error); ok {
		cause = c
	}
	if cause == nil || cause.Kind != diag.UnexpectedEOF {
		t.Errorf("cause = %v, want unexpected-eof", ud.Cause)
	}
}

func TestParseRawSection(t *testing.T) {
	lx := newLexer("")
	r := Section("program", Raw(One(tIdent)))(lx, NewContext())
	if !r.IsErr() {
		t.Fatalf("parse of empty text succeeded")
	}
	if r.Err.Kind != diag.UnexpectedEOF {
		t.Errorf("Kind = %v, want unexpected-eof", r.Err.Kind)
	}
	if len(r.Err.Highlights) != 0 || r.Err.Help != "" {
		t.Errorf("raw error was decorated: %+v", r.Err)
	}
	if r.Err.Severity != diag.SeverityLexer {
		t.Errorf("Severity = %v, want lexer", r.Err.Severity)
	}
}
