// Package diag defines the parse error record, its severity and kind
// taxonomy, and the sink used to collect errors during recovery.
//
// Errors carry a primary span and message plus ordered highlights,
// notes, and an optional help string, so a downstream renderer can
// produce annotated source listings without this package knowing how
// to draw them. Error.Record exports a stable serializable form.
package diag
