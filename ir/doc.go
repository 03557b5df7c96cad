// Package ir holds the in-memory representation of a specification
// document: ordered nodes, their per-kind attribute schemas, and the
// arena that issues node identities.
package ir
