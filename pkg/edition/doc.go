// Package edition holds the in-memory model of a manuscript edition.
//
// An edition is a tree of text fragments → lines → signs → sign
// interpretations. Each interpretation carries attributes (classified by
// package catalog) and a set of next-interpretation references: directed
// edges to interpretations that may legally follow it in some reading order.
// Restricted to a single line, those references form a DAG.
//
// The model is built once from a fully received input document by [Build]
// and is immutable afterwards. Build validates eagerly - unresolved
// references, cycles, and missing required fields fail with a
// [*MalformedGraphError] and never produce a partially constructed edition -
// so downstream traversal code can assume a valid DAG.
//
// Next-interpretation references are weak: they are stored as identifiers
// and resolved through the owning line's lookup table
// ([Line.Interpretation]), never as object pointers, which keeps the model
// free of ownership cycles.
package edition
