package parse

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/parsekit/diag"
	"github.com/dhamidi/parsekit/lex"
	"github.com/dhamidi/parsekit/span"
)

var log = commonlog.GetLogger("parsekit.parse")

type frameKind int

const (
	frameSection frameKind = iota
	frameAtomic
	frameDelimited
	frameRaw
)

// frame is one entry of the context stack. Frames are pushed by
// context-introducing combinators and popped on every exit path.
type frame struct {
	kind   frameKind
	desc   string
	anchor span.Span
	sync   func(lex.Token) bool
}

// Context carries the error-context stack, the optional recovery sink,
// and the raw-region depth for one parse invocation. A Context must
// not be shared between concurrent parses.
type Context struct {
	frames   []frame
	sink     *diag.Sink
	rawDepth int
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithSink installs the error sink that enables recovery. Without a
// sink, delimited regions propagate failures instead of recovering.
func WithSink(sink *diag.Sink) ContextOption {
	return func(c *Context) { c.sink = sink }
}

// NewContext returns an empty context.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sink returns the installed sink, or nil.
func (c *Context) Sink() *diag.Sink { return c.sink }

// Recovering reports whether a sink is installed and the parse is not
// inside a raw region.
func (c *Context) Recovering() bool {
	return c.sink != nil && c.rawDepth == 0
}

// InRaw reports whether the parse is inside a raw region, where
// context decoration is disabled.
func (c *Context) InRaw() bool { return c.rawDepth > 0 }

func (c *Context) push(f frame) {
	c.frames = append(c.frames, f)
	if f.kind == frameRaw {
		c.rawDepth++
	}
}

func (c *Context) pop() {
	f := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	if f.kind == frameRaw {
		c.rawDepth--
	}
}

// syncPred returns the sync predicate of the innermost delimited
// frame, or nil when no delimited region encloses the parse.
func (c *Context) syncPred() func(lex.Token) bool {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if c.frames[i].kind == frameDelimited {
			return c.frames[i].sync
		}
	}
	return nil
}

// Emit decorates err with the descriptions of the enclosing section
// frames and appends it to the sink. Emitting without a sink panics;
// callers gate on Recovering.
func (c *Context) Emit(err *diag.Error) {
	if c.sink == nil {
		panic("parse: Emit without a sink")
	}
	if err.Raw {
		c.sink.Emit(err)
		return
	}
	for i := len(c.frames) - 1; i >= 0; i-- {
		f := c.frames[i]
		if f.kind == frameSection {
			err.WithHighlight(f.anchor, fmt.Sprintf("in %s", f.desc))
		}
	}
	c.sink.Emit(err)
}
