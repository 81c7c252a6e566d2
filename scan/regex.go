package scan

import (
	"fmt"

	"github.com/dlclark/regexp2"

	"github.com/dhamidi/parsekit/lex"
	"github.com/dhamidi/parsekit/span"
)

// Rule pairs a regular expression with the token it produces.
type Rule struct {
	Pattern string
	Token   lex.Token
}

type compiledRule struct {
	re    *regexp2.Regexp
	token lex.Token
}

// RegexScanner matches an ordered rule table against the unconsumed
// suffix. Rules are tried in order and the first matching rule wins;
// every pattern is anchored at the suffix start. Zero-length matches
// are skipped so the cursor always advances.
type RegexScanner struct {
	rules []compiledRule
}

// NewRegexScanner compiles the rule table.
func NewRegexScanner(rules ...Rule) (*RegexScanner, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		re, err := regexp2.Compile(`\A(?:`+r.Pattern+`)`, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("compile rule %s: %w", r.Token, err)
		}
		compiled = append(compiled, compiledRule{re: re, token: r.Token})
	}
	return &RegexScanner{rules: compiled}, nil
}

// Scan implements lex.Scanner.
func (s *RegexScanner) Scan(text string, base span.Pos) (lex.Token, int, bool) {
	for _, r := range s.rules {
		m, err := r.re.FindStringMatch(text)
		if err != nil || m == nil {
			continue
		}
		matched := m.String()
		if len(matched) == 0 {
			continue
		}
		return r.token, len(matched), true
	}
	return nil, 0, false
}

// Clone implements lex.Scanner. The rule table is immutable after
// construction, so the receiver is its own clone.
func (s *RegexScanner) Clone() lex.Scanner { return s }
