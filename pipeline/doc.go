// Package pipeline runs an ordered sequence of rewrite passes over a
// specification document. Each processor first declares the attributes
// it owns, then mutates the tree; the reference resolver is the pass
// that turns an aliased node graph into a strict tree.
package pipeline
