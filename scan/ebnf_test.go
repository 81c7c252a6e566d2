package scan

import (
	"testing"

	"github.com/dhamidi/parsekit/lex"
	"github.com/dhamidi/parsekit/span"
)

const wordGrammar = `
Ident = letter { letter } .
Number = digit { digit } .
Space = " " { " " } .
letter = "a" … "z" .
digit = "0" … "9" .
`

func TestEBNFScanner(t *testing.T) {
	grammar, err := ParseGrammar("words.ebnf", wordGrammar)
	if err != nil {
		t.Fatalf("ParseGrammar failed: %v", err)
	}
	sc := NewEBNFScanner(grammar)

	tests := []struct {
		input string
		token lex.Token
		n     int
		ok    bool
	}{
		{"abc 12", Word("Ident"), 3, true},
		{"12", Word("Number"), 2, true},
		{"  x", Word("Space"), 2, true},
		{"@", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, n, ok := sc.Scan(tt.input, span.Start)
			if ok != tt.ok || n != tt.n || tok != tt.token {
				t.Errorf("Scan(%q) = %v, %d, %v, want %v, %d, %v",
					tt.input, tok, n, ok, tt.token, tt.n, tt.ok)
			}
		})
	}
}

func TestEBNFScannerLongestMatch(t *testing.T) {
	grammar, err := ParseGrammar("kw.ebnf", `
Keyword = "let" .
Ident = letter { letter } .
letter = "a" … "z" .
`)
	if err != nil {
		t.Fatalf("ParseGrammar failed: %v", err)
	}
	sc := NewEBNFScanner(grammar)

	tok, n, ok := sc.Scan("letx", span.Start)
	if !ok || tok != Word("Ident") || n != 4 {
		t.Errorf("Scan(letx) = %v, %d, %v, want Ident, 4, true", tok, n, ok)
	}

	tok, n, ok = sc.Scan("let", span.Start)
	if !ok || tok != Word("Ident") || n != 3 {
		t.Errorf("Scan(let) = %v, %d, %v, want the tie broken to Ident, 3, true", tok, n, ok)
	}
}

func TestEBNFScannerCycle(t *testing.T) {
	grammar, err := ParseGrammar("cycle.ebnf", `Expr = Expr "a" | "a" .`)
	if err != nil {
		t.Fatalf("ParseGrammar failed: %v", err)
	}
	sc := NewEBNFScanner(grammar)

	tok, n, ok := sc.Scan("aa", span.Start)
	if !ok || tok != Word("Expr") || n != 2 {
		t.Errorf("Scan(aa) = %v, %d, %v, want Expr, 2, true", tok, n, ok)
	}
}

func TestParseGrammarError(t *testing.T) {
	if _, err := ParseGrammar("bad.ebnf", `Ident = `); err == nil {
		t.Errorf("ParseGrammar accepted a truncated production")
	}
}

func TestEBNFScannerLexing(t *testing.T) {
	grammar, err := ParseGrammar("words.ebnf", wordGrammar)
	if err != nil {
		t.Fatalf("ParseGrammar failed: %v", err)
	}
	src := span.NewSource("ab 12")
	lx := lex.NewLexer(src, NewEBNFScanner(grammar), lex.WithFilter(lex.NewFilterSet(Word("Space"))))

	want := []lex.Token{Word("Ident"), Word("Number")}
	for i, wantTok := range want {
		tok, _, err := lx.Next()
		if err != nil {
			t.Fatalf("token %d: %v", i, err)
		}
		if tok != wantTok {
			t.Errorf("token %d = %v, want %v", i, tok, wantTok)
		}
	}
	if !lx.AtEnd() {
		t.Errorf("lexer not at end after all tokens")
	}
}
