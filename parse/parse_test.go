package parse

import (
	"testing"

	"github.com/dhamidi/parsekit/diag"
	"github.com/dhamidi/parsekit/lex"
	"github.com/dhamidi/parsekit/span"
)

type tok string

func (t tok) String() string { return string(t) }

const (
	tIdent tok = "identifier"
	tNum   tok = "number"
	tWs    tok = "whitespace"
	tComma tok = ","
	tLBr   tok = "["
	tRBr   tok = "]"
	tLPar  tok = "("
	tRPar  tok = ")"
	tLet   tok = "let"
)

// testScanner recognizes brackets, parens, commas, the "let" keyword,
// lowercase identifiers, digit runs, and whitespace runs.
type testScanner struct{}

func (testScanner) Clone() lex.Scanner { return testScanner{} }

func (testScanner) Scan(text string, base span.Pos) (lex.Token, int, bool) {
	isWs := func(c byte) bool { return c == ' ' || c == '\t' || c == '\n' }
	switch c := text[0]; {
	case c == '[':
		return tLBr, 1, true
	case c == ']':
		return tRBr, 1, true
	case c == '(':
		return tLPar, 1, true
	case c == ')':
		return tRPar, 1, true
	case c == ',':
		return tComma, 1, true
	case isWs(c):
		n := 1
		for n < len(text) && isWs(text[n]) {
			n++
		}
		return tWs, n, true
	case 'a' <= c && c <= 'z':
		n := 1
		for n < len(text) && 'a' <= text[n] && text[n] <= 'z' {
			n++
		}
		if text[:n] == "let" {
			return tLet, n, true
		}
		return tIdent, n, true
	case '0' <= c && c <= '9':
		n := 1
		for n < len(text) && '0' <= text[n] && text[n] <= '9' {
			n++
		}
		return tNum, n, true
	}
	return nil, 0, false
}

func newLexer(text string) *lex.Lexer {
	src := span.NewSource(text, span.WithMetrics(span.Metrics{Mode: span.ASCII}))
	return lex.NewLexer(src, testScanner{}, lex.WithFilter(lex.NewFilterSet(tWs)))
}

func TestOne(t *testing.T) {
	t.Run("match", func(t *testing.T) {
		lx := newLexer("abc ")
		r := One(tIdent)(lx, NewContext())
		if r.IsErr() {
			t.Fatalf("One(identifier) failed: %v", r.Err)
		}
		if r.Value != "abc" {
			t.Errorf("value = %q, want %q", r.Value, "abc")
		}
	})

	t.Run("mismatch consumes nothing", func(t *testing.T) {
		lx := newLexer("123")
		r := One(tIdent)(lx, NewContext())
		if !r.IsErr() {
			t.Fatalf("One(identifier) on number succeeded")
		}
		if r.Err.Kind != diag.UnexpectedToken {
			t.Errorf("Kind = %v, want unexpected-token", r.Err.Kind)
		}
		if r.Err.Found != tNum || r.Err.Expected != "identifier" {
			t.Errorf("Found/Expected = %v/%q, want number/identifier", r.Err.Found, r.Err.Expected)
		}
		if lx.Pos().Byte != 0 || lx.Visible() != 0 {
			t.Errorf("lexer advanced on mismatch: byte %d, visible %d", lx.Pos().Byte, lx.Visible())
		}
	})

	t.Run("end of text", func(t *testing.T) {
		lx := newLexer("  ")
		r := One(tIdent)(lx, NewContext())
		if !r.IsErr() || r.Err.Kind != diag.UnexpectedEOF {
			t.Errorf("result = %+v, want unexpected-eof failure", r)
		}
	})
}

func TestAny(t *testing.T) {
	lx := newLexer(",")
	r := Any(tComma, tRBr)(lx, NewContext())
	if r.IsErr() {
		t.Fatalf("Any failed: %v", r.Err)
	}
	if r.Value != tComma {
		t.Errorf("value = %v, want comma", r.Value)
	}

	lx = newLexer("abc")
	r = Any(tComma, tRBr)(lx, NewContext())
	if !r.IsErr() {
		t.Fatalf("Any on identifier succeeded")
	}
	if r.Err.Expected != "one of ,, ]" {
		t.Errorf("Expected = %q, want %q", r.Err.Expected, "one of ,, ]")
	}
}

func TestSeq(t *testing.T) {
	t.Run("respects filter", func(t *testing.T) {
		lx := newLexer("[ abc ]")
		r := Seq(tLBr, tIdent, tRBr)(lx, NewContext())
		if r.IsErr() {
			t.Fatalf("Seq failed: %v", r.Err)
		}
		if r.Value != "[ abc ]" {
			t.Errorf("value = %q, want %q", r.Value, "[ abc ]")
		}
	})

	t.Run("mismatch spans attempted run", func(t *testing.T) {
		lx := newLexer("[abc,")
		r := Seq(tLBr, tIdent, tRBr)(lx, NewContext())
		if !r.IsErr() {
			t.Fatalf("Seq succeeded on mismatched close")
		}
		if r.Err.Span.Start.Byte != 0 || r.Err.Span.End.Byte != 5 {
			t.Errorf("failure span = [%d,%d), want [0,5)", r.Err.Span.Start.Byte, r.Err.Span.End.Byte)
		}
	})

	t.Run("adjacency under unfiltered", func(t *testing.T) {
		lx := newLexer("[abc]")
		r := Unfiltered(Seq(tLBr, tIdent, tRBr))(lx, NewContext())
		if r.IsErr() {
			t.Fatalf("unfiltered Seq failed: %v", r.Err)
		}
		lx = newLexer("[ abc ]")
		r = Unfiltered(Seq(tLBr, tIdent, tRBr))(lx, NewContext())
		if !r.IsErr() {
			t.Errorf("unfiltered Seq succeeded across whitespace")
		}
	})
}

func TestEndOfText(t *testing.T) {
	lx := newLexer("abc  ")
	ctx := NewContext()
	One(tIdent)(lx, ctx)
	r := EndOfText()(lx, ctx)
	if r.IsErr() {
		t.Errorf("EndOfText failed over trailing whitespace: %v", r.Err)
	}

	lx = newLexer("abc def")
	One(tIdent)(lx, ctx)
	r = EndOfText()(lx, ctx)
	if !r.IsErr() || r.Err.Kind != diag.ExpectedEOF {
		t.Errorf("result = %+v, want expected-eof failure", r)
	}
}

func TestEmptyAndFailWith(t *testing.T) {
	lx := newLexer("abc")
	r := Empty()(lx, NewContext())
	if r.IsErr() || lx.Pos().Byte != 0 {
		t.Errorf("Empty consumed input or failed")
	}

	rf := FailWith[string]("not allowed here")(lx, NewContext())
	if !rf.IsErr() || rf.Err.Kind != diag.Validation {
		t.Fatalf("FailWith = %+v, want validation failure", rf)
	}
	if rf.Err.Msg != "not allowed here" {
		t.Errorf("Msg = %q, want %q", rf.Err.Msg, "not allowed here")
	}
}
