// Package pkg provides the core libraries for linea manuscript transcription.
//
// # Overview
//
// Linea turns the per-line sign interpretation graphs of a digital
// manuscript edition into readable transcriptions. The pkg directory is
// organized into the following areas:
//
//  1. [edition] - Input schema, graph construction and validation
//  2. [catalog] - The attribute-value classification table
//  3. [linear] - Reading-order enumeration over interpretation DAGs
//  4. [transcript] - Filtering and serialization to text and token trees
//  5. [pipeline] - Orchestration (load → build → serialize) with caching
//  6. [cache], [store] - Infrastructure (artifact cache, edition library)
//  7. [viz] - Graphviz rendering of interpretation graphs
//
// # Architecture
//
// The typical data flow through linea:
//
//	Edition JSON document
//	         ↓
//	    [edition] package (build + validate the interpretation graphs)
//	         ↓
//	    [linear] package (default order or full enumeration)
//	         ↓
//	    [transcript] package (filter + serialize)
//	         ↓
//	    text/JSON/DOT output
//
// # Quick Start
//
//	doc, err := edition.ReadDocumentFile("edition.json")
//	if err != nil { ... }
//	ed, err := edition.Build(doc)
//	if err != nil { ... }
//	text := transcript.EditionText(ed, transcript.DefaultOrders, transcript.DefaultFilter())
package pkg
