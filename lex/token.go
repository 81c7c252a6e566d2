package lex

import (
	"sort"
	"strings"

	"github.com/dhamidi/parsekit/span"
)

// Token is a lexical tag produced by a Scanner. Tokens carry no payload
// beyond their identity; any semantic value is extracted from the
// token's span by the parser. Tokens are compared with ==.
type Token interface {
	String() string
}

// Scanner recognizes one token at a time. Scan receives the unconsumed
// text suffix and the position of its first byte and returns the token
// together with the number of bytes it consumed. A false result means
// no token matches at this point. Scanners may carry internal mode
// state across calls; Clone must deep-copy that state.
type Scanner interface {
	Scan(text string, base span.Pos) (Token, int, bool)
	Clone() Scanner
}

// FilterSet is an immutable set of tokens to skip. The zero value
// filters nothing.
type FilterSet struct {
	tokens map[Token]struct{}
}

// NewFilterSet returns a filter set containing the given tokens.
func NewFilterSet(tokens ...Token) *FilterSet {
	set := make(map[Token]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return &FilterSet{tokens: set}
}

// Contains reports whether tok is filtered.
func (f *FilterSet) Contains(tok Token) bool {
	if f == nil {
		return false
	}
	_, ok := f.tokens[tok]
	return ok
}

// Len returns the number of filtered tokens.
func (f *FilterSet) Len() int {
	if f == nil {
		return 0
	}
	return len(f.tokens)
}

func (f *FilterSet) String() string {
	if f.Len() == 0 {
		return "{}"
	}
	names := make([]string, 0, len(f.tokens))
	for tok := range f.tokens {
		names = append(names, tok.String())
	}
	sort.Strings(names)
	return "{" + strings.Join(names, ", ") + "}"
}
