package diag

// Kind classifies a parse error.
type Kind int

const (
	UnexpectedEOF Kind = iota
	UnexpectedToken
	ExpectedEOF
	UnrecognizedToken
	UnmatchedDelimiter
	Validation
	Aggregate
)

var kindNames = map[Kind]string{
	UnexpectedEOF:      "unexpected-eof",
	UnexpectedToken:    "unexpected-token",
	ExpectedEOF:        "expected-eof",
	UnrecognizedToken:  "unrecognized-token",
	UnmatchedDelimiter: "unmatched-delimiter",
	Validation:         "validation",
	Aggregate:          "aggregate",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Severity orders errors for reconciliation between alternatives. A
// failure at SeverityAtomic or above cannot be suppressed by optional
// or alternative combinators.
type Severity int

const (
	SeverityLexer Severity = iota
	SeverityValidation
	SeverityUnbounded
	SeverityDelimited
	SeverityBounded
	SeverityAtomic
)

var severityNames = map[Severity]string{
	SeverityLexer:      "lexer",
	SeverityValidation: "validation",
	SeverityUnbounded:  "unbounded",
	SeverityDelimited:  "delimited",
	SeverityBounded:    "bounded",
	SeverityAtomic:     "atomic",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "unknown"
}
