package lex

import (
	"slices"
	"unicode/utf8"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/parsekit/span"
)

var log = commonlog.GetLogger("parsekit.lex")

// Lexer is a cursor over a source text, driven by a Scanner. It tracks
// the anchor of the current implicit span, the most recently consumed
// token, and the next byte to scan. Backtracking callers take a
// Snapshot before a fallible attempt and Restore it on failure.
type Lexer struct {
	src     *span.Source
	scanner Scanner

	parseBegin span.Pos
	tokenBegin span.Pos
	cursor     span.Pos

	peeked      bool
	peekTok     Token
	peekBegin   span.Pos
	peekCursor  span.Pos
	peekScanner Scanner
	peekErr     error

	filter      *FilterSet
	filterStack []*FilterSet

	// visible counts non-filtered tokens consumed so far. Commit
	// checks compare counts rather than positions so that filtered
	// runs never count as advancement.
	visible int
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithFilter sets the initial filter set.
func WithFilter(set *FilterSet) Option {
	return func(l *Lexer) { l.filter = set }
}

// NewLexer returns a lexer over src driven by sc, positioned at the
// start of the text.
func NewLexer(src *span.Source, sc Scanner, opts ...Option) *Lexer {
	l := &Lexer{
		src:        src,
		scanner:    sc,
		parseBegin: span.Start,
		tokenBegin: span.Start,
		cursor:     span.Start,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Source returns the source the lexer reads from.
func (l *Lexer) Source() *span.Source { return l.src }

// Pos returns the position of the next byte to scan.
func (l *Lexer) Pos() span.Pos { return l.cursor }

// Visible returns the number of non-filtered tokens consumed so far.
func (l *Lexer) Visible() int { return l.visible }

// Filter returns the active filter set.
func (l *Lexer) Filter() *FilterSet { return l.filter }

// fillPeek scans forward from the cursor, skipping filtered tokens,
// and caches the next visible token or the lexer error that stops it.
// The lexer's own scanner state is never mutated; scanning happens on
// a clone that becomes current only when Next commits.
func (l *Lexer) fillPeek() {
	if l.peeked {
		return
	}
	sc := l.scanner.Clone()
	text := l.src.Text()
	pos := l.cursor
	for {
		if pos.Byte >= len(text) {
			l.peekErr = &UnexpectedEOF{Pos: pos}
			l.peekCursor = pos
			break
		}
		tok, n, ok := sc.Scan(text[pos.Byte:], pos)
		if !ok || n <= 0 {
			end := l.unrecognizedEnd(pos)
			l.peekErr = &UnrecognizedToken{Span: span.Span{Start: pos, End: end}}
			l.peekCursor = end
			break
		}
		next := l.src.Metrics().Advance(text[pos.Byte:], pos, n)
		if l.filter.Contains(tok) {
			pos = next
			continue
		}
		l.peekTok = tok
		l.peekBegin = pos
		l.peekCursor = next
		l.peekScanner = sc
		l.peekErr = nil
		break
	}
	l.peeked = true
}

// unrecognizedEnd walks forward rune by rune until the scanner matches
// again or the text ends, bounding the span of an unrecognized run.
func (l *Lexer) unrecognizedEnd(pos span.Pos) span.Pos {
	text := l.src.Text()
	p := pos
	for p.Byte < len(text) {
		probe := l.scanner.Clone()
		if _, n, ok := probe.Scan(text[p.Byte:], p); ok && n > 0 {
			return p
		}
		_, size := utf8.DecodeRuneInString(text[p.Byte:])
		p = l.src.Metrics().Advance(text[p.Byte:], p, size)
	}
	return p
}

// dropPeek discards the cached lookahead.
func (l *Lexer) dropPeek() {
	l.peeked = false
	l.peekTok = nil
	l.peekScanner = nil
	l.peekErr = nil
}

// Peek returns the next visible token and its span without committing:
// a subsequent Peek or Next observes the same token. The error is
// *UnexpectedEOF or *UnrecognizedToken.
func (l *Lexer) Peek() (Token, span.Span, error) {
	l.fillPeek()
	if l.peekErr != nil {
		return nil, span.At(l.cursor), l.peekErr
	}
	return l.peekTok, span.Span{Start: l.peekBegin, End: l.peekCursor}, nil
}

// Next returns the next visible token and commits the advance,
// consuming any filtered tokens before it. On a lexer error the cursor
// is left unchanged.
func (l *Lexer) Next() (Token, span.Span, error) {
	l.fillPeek()
	if l.peekErr != nil {
		return nil, span.At(l.cursor), l.peekErr
	}
	l.scanner = l.peekScanner
	l.tokenBegin = l.peekBegin
	l.cursor = l.peekCursor
	l.visible++
	tok := l.peekTok
	l.dropPeek()
	sp := span.Span{Start: l.tokenBegin, End: l.cursor}
	log.Debugf("token %s at %v", tok, sp)
	return tok, sp, nil
}

// AtEnd reports whether only filtered tokens (or nothing) remain.
func (l *Lexer) AtEnd() bool {
	l.fillPeek()
	_, ok := l.peekErr.(*UnexpectedEOF)
	return ok
}

// Snapshot returns an independent copy of the lexer. The copy shares
// the source but owns its scanner state, so the original and the copy
// diverge freely.
func (l *Lexer) Snapshot() *Lexer {
	cp := *l
	cp.scanner = l.scanner.Clone()
	if l.peekScanner != nil {
		cp.peekScanner = l.peekScanner.Clone()
	}
	cp.filterStack = slices.Clone(l.filterStack)
	return &cp
}

// Restore replaces the lexer's state from a snapshot. The snapshot
// remains valid for further restores.
func (l *Lexer) Restore(snap *Lexer) {
	*l = *snap
	l.scanner = snap.scanner.Clone()
	if snap.peekScanner != nil {
		l.peekScanner = snap.peekScanner.Clone()
	}
	l.filterStack = slices.Clone(snap.filterStack)
}

// CurrentSpan returns the implicit span from the current anchor to the
// cursor.
func (l *Lexer) CurrentSpan() span.Span {
	return span.Span{Start: l.parseBegin, End: l.cursor}
}

// TokenSpan returns the span of the most recently consumed visible
// token.
func (l *Lexer) TokenSpan() span.Span {
	return span.Span{Start: l.tokenBegin, End: l.cursor}
}

// CutSpan moves the span anchor to the cursor and returns the span it
// covered before the cut.
func (l *Lexer) CutSpan() span.Span {
	prev := l.CurrentSpan()
	l.parseBegin = l.cursor
	return prev
}

// Sublexer returns a snapshot with a fresh span anchor at the cursor.
// The receiver is left untouched, so it can serve as the backtracking
// point while the sublexer runs ahead.
func (l *Lexer) Sublexer() *Lexer {
	sub := l.Snapshot()
	sub.CutSpan()
	return sub
}

// Adopt takes over a sublexer's progress while keeping the receiver's
// span anchor.
func (l *Lexer) Adopt(sub *Lexer) {
	anchor := l.parseBegin
	l.Restore(sub)
	l.parseBegin = anchor
}

// Slice returns the source text covered by sp.
func (l *Lexer) Slice(sp span.Span) string {
	return l.src.Slice(sp)
}

// PushFilter makes set the active filter, saving the previous one.
func (l *Lexer) PushFilter(set *FilterSet) {
	l.filterStack = append(l.filterStack, l.filter)
	l.filter = set
	l.dropPeek()
}

// PopFilter restores the filter saved by the matching PushFilter. It
// panics if the stack is empty.
func (l *Lexer) PopFilter() {
	if len(l.filterStack) == 0 {
		panic("lex: PopFilter on empty filter stack")
	}
	l.filter = l.filterStack[len(l.filterStack)-1]
	l.filterStack = l.filterStack[:len(l.filterStack)-1]
	l.dropPeek()
}

// AdvanceTo consumes visible tokens until pred matches the next one,
// which is left unconsumed. It returns the span advanced over.
// Unrecognized runs are skipped. Reaching the end of text without a
// match returns the UnexpectedEOF error.
func (l *Lexer) AdvanceTo(pred func(Token) bool) (span.Span, error) {
	return l.advance(pred, false)
}

// AdvancePast is AdvanceTo but also consumes the matching token.
func (l *Lexer) AdvancePast(pred func(Token) bool) (span.Span, error) {
	return l.advance(pred, true)
}

func (l *Lexer) advance(pred func(Token) bool, consume bool) (span.Span, error) {
	start := l.cursor
	for {
		tok, _, err := l.Peek()
		switch e := err.(type) {
		case nil:
		case *UnrecognizedToken:
			l.skipTo(e.Span.End)
			continue
		default:
			log.Debugf("recovery scan hit end of text from %v", start)
			return span.Span{Start: start, End: l.cursor}, err
		}
		if pred(tok) {
			if consume {
				l.Next()
			}
			sp := span.Span{Start: start, End: l.cursor}
			log.Debugf("recovery scan advanced over %v", sp)
			return sp, nil
		}
		l.Next()
	}
}

// skipTo moves the cursor to pos without consuming a token.
func (l *Lexer) skipTo(pos span.Pos) {
	l.cursor = pos
	l.dropPeek()
}
