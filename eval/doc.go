// Package eval expands $[...] expressions embedded in specification
// documents. Expressions are evaluated with expr-lang against the
// document's variables section and caller-supplied data.
package eval
