// Package transcript projects ordered sign interpretations into text.
//
// The projections are deliberately lossy: formatting and structural
// attributes (breaks, corrections, relative positions) are dropped, and a
// configurable filter removes interpretations the reader does not want -
// by default reconstructed text and everything that is neither a letter nor
// a space, mirroring the convention of printing transcriptions without
// bracketed reconstructions.
//
// All functions are pure: given the same edition, order selection, and
// filter configuration they produce identical output and mutate nothing.
package transcript

import (
	"strings"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/catalog"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/edition"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/linear"
)

// FilterConfig selects which interpretations survive serialization.
type FilterConfig struct {
	// ExcludeReconstructed drops interpretations carrying the
	// is-reconstructed flag, regardless of their sign type.
	ExcludeReconstructed bool

	// IncludeTypes limits output to the listed sign types. A nil map means
	// every sign type is included.
	IncludeTypes map[catalog.SignType]bool
}

// DefaultFilter returns the plain-text default: reconstructed text excluded,
// only letters and spaces included.
func DefaultFilter() FilterConfig {
	return FilterConfig{
		ExcludeReconstructed: true,
		IncludeTypes: map[catalog.SignType]bool{
			catalog.Letter: true,
			catalog.Space:  true,
		},
	}
}

// Keep reports whether an interpretation survives the filter. Attributes the
// catalog does not recognize never exclude an interpretation; they pass
// through so newly introduced codes don't change existing output.
func (c FilterConfig) Keep(si *edition.SignInterpretation) bool {
	included := c.IncludeTypes == nil
	for _, attr := range si.Attributes() {
		class := catalog.Classify(attr.AttributeValueID)
		switch class.Kind {
		case catalog.KindIsReconstructed:
			if c.ExcludeReconstructed {
				return false
			}
		case catalog.KindSignType:
			if c.IncludeTypes != nil && c.IncludeTypes[class.Sign] {
				included = true
			}
		}
	}
	return included
}

// token returns the textual contribution of a surviving interpretation:
// the character for letters, a single space for spaces, nothing otherwise.
func token(si *edition.SignInterpretation) string {
	for _, attr := range si.Attributes() {
		class := catalog.Classify(attr.AttributeValueID)
		if class.Kind != catalog.KindSignType {
			continue
		}
		switch class.Sign {
		case catalog.Letter:
			return si.Character()
		case catalog.Space:
			return " "
		}
	}
	return ""
}

// OrderFunc selects the reading order to serialize for a line.
type OrderFunc func(*edition.Line) linear.Order

// DefaultOrders is the OrderFunc for the editorially curated default order.
func DefaultOrders(l *edition.Line) linear.Order { return linear.DefaultOrder(l) }

// LineText serializes one ordered sequence of interpretations. Filtered
// interpretations contribute nothing but the remaining ones keep their
// positions, so the output stays aligned with the source order.
func LineText(order linear.Order, cfg FilterConfig) string {
	var b strings.Builder
	for _, si := range order {
		if !cfg.Keep(si) {
			continue
		}
		b.WriteString(token(si))
	}
	return b.String()
}

// PlainText serializes a fragment: the fragment name on its own line, then
// each line prefixed by its display name. Every line is terminated by
// exactly one newline, so concatenated fragments never double separators.
func PlainText(f *edition.TextFragment, orderOf OrderFunc, cfg FilterConfig) string {
	var b strings.Builder
	b.WriteString(f.Name())
	b.WriteString("\n")
	for _, l := range f.Lines() {
		b.WriteString(l.Name())
		b.WriteString("\t")
		b.WriteString(LineText(orderOf(l), cfg))
		b.WriteString("\n")
	}
	return b.String()
}

// EditionText serializes every fragment of an edition in editor order.
func EditionText(e *edition.Edition, orderOf OrderFunc, cfg FilterConfig) string {
	var b strings.Builder
	for _, f := range e.Fragments() {
		b.WriteString(PlainText(f, orderOf, cfg))
	}
	return b.String()
}

// FragmentTree is the structured counterpart of [PlainText]: the same
// filtering and classification, with line and fragment boundaries kept as
// structure instead of text markers.
type FragmentTree struct {
	Fragment string     `json:"fragment" bson:"fragment"`
	Lines    []LineTree `json:"lines" bson:"lines"`
}

// LineTree is one line's surviving tokens, in order.
type LineTree struct {
	Line   string   `json:"line" bson:"line"`
	Tokens []string `json:"tokens" bson:"tokens"`
}

// Tree builds the structured projection of a fragment. Interpretations that
// survive the filter but contribute no text (e.g. damage markers when their
// type is included) are omitted from the token list.
func Tree(f *edition.TextFragment, orderOf OrderFunc, cfg FilterConfig) FragmentTree {
	tree := FragmentTree{Fragment: f.Name(), Lines: make([]LineTree, 0, len(f.Lines()))}
	for _, l := range f.Lines() {
		lt := LineTree{Line: l.Name(), Tokens: []string{}}
		for _, si := range orderOf(l) {
			if !cfg.Keep(si) {
				continue
			}
			if tok := token(si); tok != "" {
				lt.Tokens = append(lt.Tokens, tok)
			}
		}
		tree.Lines = append(tree.Lines, lt)
	}
	return tree
}

// EditionTree builds the structured projection of every fragment.
func EditionTree(e *edition.Edition, orderOf OrderFunc, cfg FilterConfig) []FragmentTree {
	trees := make([]FragmentTree, 0, len(e.Fragments()))
	for _, f := range e.Fragments() {
		trees = append(trees, Tree(f, orderOf, cfg))
	}
	return trees
}
