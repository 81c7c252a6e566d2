// Package span provides source text positions, spans, and the column
// metrics used to compute them.
//
// A Pos identifies a location in source text by byte offset, line, and
// column. Lines and columns are 1-based; byte offsets are 0-based. A Span
// is a half-open range of two positions within one source. Metrics
// describes how bytes map to lines and columns (newline convention, tab
// width, and whether columns count bytes or display width), and Source
// bundles immutable text with a name and its metrics.
//
// Positions are always produced by walking text through Metrics.Advance,
// so a Pos is only meaningful relative to the metrics and text that
// produced it. Joining spans from different sources is not supported.
package span
