package scan

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/parsekit/lex"
	"github.com/dhamidi/parsekit/span"
)

// EBNFScanner matches the token productions of an EBNF grammar against
// the unconsumed suffix. Productions whose names start with an
// uppercase letter are tokens; the longest match wins, ties break
// toward the lexically smaller name. Matches emit Words named after
// the winning production.
type EBNFScanner struct {
	grammar ebnf.Grammar
	tokens  []string
}

// NewEBNFScanner builds a scanner over the grammar's token productions.
func NewEBNFScanner(grammar ebnf.Grammar) *EBNFScanner {
	var tokens []string
	for name, prod := range grammar {
		if prod.Expr == nil {
			continue
		}
		if name == "" || name[0] < 'A' || name[0] > 'Z' {
			continue
		}
		tokens = append(tokens, name)
	}
	sort.Strings(tokens)
	return &EBNFScanner{grammar: grammar, tokens: tokens}
}

// ParseGrammar parses an EBNF grammar from source text.
func ParseGrammar(name, src string) (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse(name, strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

// LoadGrammar loads an EBNF grammar from a file.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	grammar, err := ebnf.Parse(filename, f)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

// Scan implements lex.Scanner.
func (s *EBNFScanner) Scan(text string, base span.Pos) (lex.Token, int, bool) {
	m := &ebnfMatch{
		grammar: s.grammar,
		text:    text,
		memo:    make(map[memoKey]int),
	}
	bestLen := 0
	bestName := ""
	for _, name := range s.tokens {
		m.visiting = make(map[memoKey]bool)
		if n := m.match(s.grammar[name].Expr, 0); n > bestLen {
			bestLen = n
			bestName = name
		}
	}
	if bestLen == 0 {
		return nil, 0, false
	}
	return Word(bestName), bestLen, true
}

// Clone implements lex.Scanner. All match state lives for one Scan
// call, so the receiver is its own clone.
func (s *EBNFScanner) Clone() lex.Scanner { return s }

type memoKey struct {
	name   string
	offset int
}

// ebnfMatch is the state of one Scan call. The memo maps a production
// and offset to its match length, -1 meaning no match; visiting breaks
// left-recursive cycles.
type ebnfMatch struct {
	grammar  ebnf.Grammar
	text     string
	memo     map[memoKey]int
	visiting map[memoKey]bool
}

func (m *ebnfMatch) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		return m.matchLiteral(e.String, offset)
	case *ebnf.Range:
		return m.matchRange(e.Begin.String, e.End.String, offset)
	case ebnf.Sequence:
		total := 0
		pos := offset
		for _, item := range e {
			n := m.match(item, pos)
			if n == 0 {
				// Repetitions and options may match the empty string.
				switch item.(type) {
				case *ebnf.Repetition, *ebnf.Option:
					continue
				}
				return 0
			}
			total += n
			pos += n
		}
		return total
	case ebnf.Alternative:
		best := 0
		for _, alt := range e {
			if n := m.match(alt, offset); n > best {
				best = n
			}
		}
		return best
	case *ebnf.Repetition:
		total := 0
		pos := offset
		for {
			n := m.match(e.Body, pos)
			if n == 0 {
				break
			}
			total += n
			pos += n
		}
		return total
	case *ebnf.Option:
		return m.match(e.Body, offset)
	case *ebnf.Group:
		return m.match(e.Body, offset)
	case *ebnf.Name:
		return m.matchName(e.String, offset)
	default:
		return 0
	}
}

func (m *ebnfMatch) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if cached, ok := m.memo[key]; ok {
		if cached == -1 {
			return 0
		}
		return cached
	}
	if m.visiting[key] {
		return 0
	}
	prod, ok := m.grammar[name]
	if !ok || prod.Expr == nil {
		m.memo[key] = -1
		return 0
	}
	m.visiting[key] = true
	result := m.match(prod.Expr, offset)
	delete(m.visiting, key)
	if result == 0 {
		m.memo[key] = -1
	} else {
		m.memo[key] = result
	}
	return result
}

func (m *ebnfMatch) matchLiteral(lit string, offset int) int {
	s := strings.Trim(lit, `"`)
	if s == "" || offset+len(s) > len(m.text) {
		return 0
	}
	if m.text[offset:offset+len(s)] == s {
		return len(s)
	}
	return 0
}

func (m *ebnfMatch) matchRange(begin, end string, offset int) int {
	if offset >= len(m.text) {
		return 0
	}
	lo := []rune(strings.Trim(begin, `"`))
	hi := []rune(strings.Trim(end, `"`))
	if len(lo) != 1 || len(hi) != 1 {
		return 0
	}
	r, size := utf8.DecodeRuneInString(m.text[offset:])
	if r < lo[0] || r > hi[0] {
		return 0
	}
	return size
}
