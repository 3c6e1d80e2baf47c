package viz_test

import (
	"strings"
	"testing"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/edition"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/viz"
)

func buildLine(t *testing.T, signs []edition.SignDoc) *edition.Line {
	t.Helper()
	doc := edition.Document{
		ID:   1,
		Name: "test",
		TextFragments: []edition.FragmentDoc{{
			ID:               1,
			TextFragmentName: "frg. 1",
			Lines: []edition.LineDoc{{
				ID:       1,
				LineName: "1",
				Signs:    signs,
			}},
		}},
	}
	ed, err := edition.Build(doc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return ed.Fragments()[0].Lines()[0]
}

func interp(id uint32, char string, avIDs []uint32, next []uint32) edition.InterpretationDoc {
	attrs := make([]edition.AttributeDoc, len(avIDs))
	for i, av := range avIDs {
		attrs[i] = edition.AttributeDoc{ID: id*100 + uint32(i), AttributeValueID: av}
	}
	return edition.InterpretationDoc{
		ID:                       id,
		Character:                char,
		Attributes:               attrs,
		NextSignInterpretations: next,
	}
}

func TestToDOT(t *testing.T) {
	line := buildLine(t, []edition.SignDoc{
		{SignInterpretations: []edition.InterpretationDoc{interp(1, "א", []uint32{1}, []uint32{2})}},
		{SignInterpretations: []edition.InterpretationDoc{interp(2, "", []uint32{2}, nil)}},
	})

	dot := viz.ToDOT(line, viz.Options{})

	for _, want := range []string{
		"digraph G {",
		`1 [label="א"]`,
		`2 [label="SPACE"]`,
		"1 -> 2;",
		"rankdir=LR;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
}

func TestToDOTReconstructedDashed(t *testing.T) {
	line := buildLine(t, []edition.SignDoc{
		{SignInterpretations: []edition.InterpretationDoc{interp(1, "ב", []uint32{1, 20}, nil)}},
	})

	dot := viz.ToDOT(line, viz.Options{})

	if !strings.Contains(dot, "dashed") {
		t.Errorf("ToDOT() should mark reconstructed interpretations dashed:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	line := buildLine(t, []edition.SignDoc{
		{SignInterpretations: []edition.InterpretationDoc{interp(1, "ג", []uint32{1, 17}, nil)}},
	})

	dot := viz.ToDOT(line, viz.Options{Detailed: true})

	if !strings.Contains(dot, "avid: 1,17") {
		t.Errorf("ToDOT() detailed labels missing attribute IDs:\n%s", dot)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	signs := []edition.SignDoc{
		{SignInterpretations: []edition.InterpretationDoc{
			interp(1, "א", []uint32{1}, []uint32{2, 3}),
		}},
		{SignInterpretations: []edition.InterpretationDoc{
			interp(2, "ב", []uint32{1}, []uint32{4}),
			interp(3, "כ", []uint32{1}, []uint32{4}),
		}},
		{SignInterpretations: []edition.InterpretationDoc{interp(4, "ל", []uint32{1}, nil)}},
	}

	a := viz.ToDOT(buildLine(t, signs), viz.Options{})
	b := viz.ToDOT(buildLine(t, signs), viz.Options{})
	if a != b {
		t.Error("ToDOT() output should be deterministic")
	}
}
