// Package scan provides ready-made Scanner implementations for
// consumers that do not want to hand-write lexical analysis: a
// regex-driven rule table and a grammar-driven scanner over EBNF token
// productions. Both emit Word tokens and plug directly into lex.NewLexer.
package scan
