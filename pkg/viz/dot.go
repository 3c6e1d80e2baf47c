// Package viz renders per-line sign interpretation DAGs for inspection.
//
// The DOT export shows every interpretation of a line as a node (labelled
// with its character or sign-type code) and every next-interpretation
// reference as an edge. Reconstructed interpretations get dashed outlines so
// editors can see at a glance which readings are extant. The DOT string can
// be rendered to SVG with Graphviz via [RenderSVG].
package viz

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/catalog"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/edition"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes attribute-value IDs in node labels.
	// When false, only the character or sign-type code is shown.
	Detailed bool
}

// ToDOT converts a line's interpretation DAG to Graphviz DOT format.
// Node order follows sign order, so output is deterministic for a given
// line.
func ToDOT(line *edition.Line, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, s := range line.Signs() {
		for _, si := range s.Interpretations() {
			label := fmtLabel(si, opts.Detailed)
			attrs := fmtAttrs(si, label)
			fmt.Fprintf(&buf, "  %d [%s];\n", si.ID(), strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("\n")
	for _, s := range line.Signs() {
		for _, si := range s.Interpretations() {
			for _, next := range si.NextIDs() {
				fmt.Fprintf(&buf, "  %d -> %d;\n", si.ID(), next)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(si *edition.SignInterpretation, detailed bool) string {
	label := si.Character()
	if label == "" {
		// Formatting sign: show its sign-type code instead.
		for _, attr := range si.Attributes() {
			if c := catalog.Classify(attr.AttributeValueID); c.Kind == catalog.KindSignType {
				label = c.Sign.String()
				break
			}
		}
	}
	if label == "" {
		label = fmt.Sprintf("#%d", si.ID())
	}

	if !detailed {
		return label
	}

	ids := make([]string, 0, len(si.Attributes()))
	for _, attr := range si.Attributes() {
		ids = append(ids, fmt.Sprintf("%d", attr.AttributeValueID))
	}
	return label + "\navid: " + strings.Join(ids, ",")
}

func fmtAttrs(si *edition.SignInterpretation, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if isReconstructed(si) {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

func isReconstructed(si *edition.SignInterpretation) bool {
	for _, attr := range si.Attributes() {
		if catalog.Classify(attr.AttributeValueID).Reconstructed() {
			return true
		}
	}
	return false
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
