package edition

import (
	"errors"
	"testing"
)

// interp builds an interpretation doc with the given attribute-value IDs and
// next-interpretation references.
func interp(id uint32, ch string, avids []uint32, next ...uint32) InterpretationDoc {
	attrs := make([]AttributeDoc, len(avids))
	for i, av := range avids {
		attrs[i] = AttributeDoc{ID: id*100 + uint32(i), AttributeValueID: av}
	}
	return InterpretationDoc{
		ID:                      id,
		Character:               ch,
		Attributes:              attrs,
		NextSignInterpretations: next,
	}
}

// sign wraps interpretations into a sign doc.
func sign(interps ...InterpretationDoc) SignDoc {
	return SignDoc{SignInterpretations: interps}
}

// doc wraps lines into a single-fragment document.
func doc(lines ...LineDoc) Document {
	return Document{
		ID:   1,
		Name: "Test Edition",
		TextFragments: []FragmentDoc{
			{ID: 10, TextFragmentName: "Col. I", Lines: lines},
		},
	}
}

func TestBuildValid(t *testing.T) {
	d := doc(LineDoc{
		ID:       100,
		LineName: "1",
		Signs: []SignDoc{
			sign(interp(1, "א", []uint32{1}, 2)),
			sign(interp(2, "", []uint32{2}, 3)),
			sign(interp(3, "ב", []uint32{1})),
		},
	})

	e, err := Build(d)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if e.ID() != 1 || e.Name() != "Test Edition" {
		t.Errorf("edition = %d %q", e.ID(), e.Name())
	}
	frags := e.Fragments()
	if len(frags) != 1 || frags[0].Name() != "Col. I" {
		t.Fatalf("fragments = %v", frags)
	}
	lines := frags[0].Lines()
	if len(lines) != 1 || lines[0].Name() != "1" {
		t.Fatalf("lines = %v", lines)
	}
	signs := lines[0].Signs()
	if len(signs) != 3 {
		t.Fatalf("signs = %d, want 3", len(signs))
	}
	if got := signs[0].Primary().Character(); got != "א" {
		t.Errorf("primary character = %q, want א", got)
	}

	si, ok := lines[0].Interpretation(2)
	if !ok || si.Character() != "" {
		t.Errorf("Interpretation(2) = %v, %v", si, ok)
	}
	if _, ok := lines[0].Interpretation(999); ok {
		t.Errorf("Interpretation(999) resolved unexpectedly")
	}

	next := lines[0].Next(signs[0].Primary())
	if len(next) != 1 || next[0].ID() != 2 {
		t.Errorf("Next = %v", next)
	}
}

func TestBuildSignWithoutExplicitID(t *testing.T) {
	d := doc(LineDoc{
		ID:       100,
		LineName: "1",
		Signs:    []SignDoc{sign(interp(7, "א", []uint32{1}))},
	})
	e, err := Build(d)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := e.Fragments()[0].Lines()[0].Signs()[0]
	if s.ID() != 7 {
		t.Errorf("sign ID = %d, want 7 (first interpretation)", s.ID())
	}
}

func TestBuildNextReferencesSorted(t *testing.T) {
	d := doc(LineDoc{
		ID:       100,
		LineName: "1",
		Signs: []SignDoc{
			sign(interp(1, "א", []uint32{1}, 5, 3, 3)),
			sign(interp(3, "ב", []uint32{1}), interp(5, "ג", []uint32{1})),
		},
	})
	e, err := Build(d)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	line := e.Fragments()[0].Lines()[0]
	next := line.Signs()[0].Primary().NextIDs()
	if len(next) != 2 || next[0] != 3 || next[1] != 5 {
		t.Errorf("NextIDs = %v, want [3 5] (sorted, deduplicated)", next)
	}
}

func TestBuildMalformed(t *testing.T) {
	tests := []struct {
		name   string
		doc    Document
		want   error
		detail func(t *testing.T, e *MalformedGraphError)
	}{
		{
			name: "EmptyEditionName",
			doc:  Document{ID: 1},
			want: ErrMissingField,
		},
		{
			name: "EmptyFragmentName",
			doc: Document{
				ID: 1, Name: "e",
				TextFragments: []FragmentDoc{{ID: 10}},
			},
			want: ErrMissingField,
			detail: func(t *testing.T, e *MalformedGraphError) {
				if e.FragmentID != 10 {
					t.Errorf("FragmentID = %d, want 10", e.FragmentID)
				}
			},
		},
		{
			name: "EmptyLineName",
			doc:  doc(LineDoc{ID: 100}),
			want: ErrMissingField,
		},
		{
			name: "SignWithoutInterpretations",
			doc: doc(LineDoc{
				ID: 100, LineName: "1",
				Signs: []SignDoc{{ID: 50}},
			}),
			want: ErrMissingField,
		},
		{
			name: "InterpretationWithoutID",
			doc: doc(LineDoc{
				ID: 100, LineName: "1",
				Signs: []SignDoc{sign(interp(0, "א", []uint32{1}))},
			}),
			want: ErrMissingField,
		},
		{
			name: "InterpretationWithoutAttributes",
			doc: doc(LineDoc{
				ID: 100, LineName: "1",
				Signs: []SignDoc{sign(InterpretationDoc{ID: 1, Character: "א"})},
			}),
			want: ErrMissingField,
		},
		{
			name: "InterpretationWithoutSignType",
			doc: doc(LineDoc{
				ID: 100, LineName: "1",
				Signs: []SignDoc{sign(interp(1, "א", []uint32{20}))},
			}),
			want: ErrMissingField,
		},
		{
			name: "LetterWithoutCharacter",
			doc: doc(LineDoc{
				ID: 100, LineName: "1",
				Signs: []SignDoc{sign(interp(1, "", []uint32{1}))},
			}),
			want: ErrMissingField,
		},
		{
			name: "UnresolvedReference",
			doc: doc(LineDoc{
				ID: 100, LineName: "1",
				Signs: []SignDoc{sign(interp(1, "א", []uint32{1}, 999))},
			}),
			want: ErrUnresolvedReference,
			detail: func(t *testing.T, e *MalformedGraphError) {
				if e.InterpretationID != 1 || e.RefID != 999 {
					t.Errorf("ids = interp %d ref %d, want 1 999", e.InterpretationID, e.RefID)
				}
				if e.LineID != 100 {
					t.Errorf("LineID = %d, want 100", e.LineID)
				}
			},
		},
		{
			name: "CrossLineReference",
			doc: doc(
				LineDoc{
					ID: 100, LineName: "1",
					Signs: []SignDoc{sign(interp(1, "א", []uint32{1}, 2))},
				},
				LineDoc{
					ID: 101, LineName: "2",
					Signs: []SignDoc{sign(interp(2, "ב", []uint32{1}))},
				},
			),
			want: ErrUnresolvedReference,
		},
		{
			name: "TwoNodeCycle",
			doc: doc(LineDoc{
				ID: 100, LineName: "1",
				Signs: []SignDoc{
					sign(interp(1, "א", []uint32{1}, 2)),
					sign(interp(2, "ב", []uint32{1}, 1)),
				},
			}),
			want: ErrGraphCycle,
			detail: func(t *testing.T, e *MalformedGraphError) {
				if e.LineID != 100 {
					t.Errorf("LineID = %d, want 100", e.LineID)
				}
			},
		},
		{
			name: "SelfReference",
			doc: doc(LineDoc{
				ID: 100, LineName: "1",
				Signs: []SignDoc{sign(interp(1, "א", []uint32{1}, 1))},
			}),
			want: ErrGraphCycle,
		},
		{
			name: "DuplicateInterpretationID",
			doc: doc(LineDoc{
				ID: 100, LineName: "1",
				Signs: []SignDoc{
					sign(interp(1, "א", []uint32{1})),
					sign(interp(1, "ב", []uint32{1})),
				},
			}),
			want: ErrDuplicateInterpretation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Build(tt.doc)
			if e != nil {
				t.Fatalf("Build returned a partial edition alongside error %v", err)
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Build error = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, ErrMalformedGraph) {
				t.Errorf("error does not match ErrMalformedGraph umbrella")
			}
			var mg *MalformedGraphError
			if !errors.As(err, &mg) {
				t.Fatalf("error is not a *MalformedGraphError: %T", err)
			}
			if tt.detail != nil {
				tt.detail(t, mg)
			}
		})
	}
}

func TestBuildEmptyLine(t *testing.T) {
	d := doc(LineDoc{ID: 100, LineName: "1"})
	e, err := Build(d)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := len(e.Fragments()[0].Lines()[0].Signs()); got != 0 {
		t.Errorf("signs = %d, want 0", got)
	}
}

func TestBuildDiamondIsAcyclic(t *testing.T) {
	// Shared source and sink with two alternative middles must build cleanly.
	d := doc(LineDoc{
		ID: 100, LineName: "1",
		Signs: []SignDoc{
			sign(interp(1, "א", []uint32{1}, 2, 3)),
			sign(interp(2, "ב", []uint32{1}, 4), interp(3, "ג", []uint32{1}, 4)),
			sign(interp(4, "ד", []uint32{1})),
		},
	})
	if _, err := Build(d); err != nil {
		t.Fatalf("Build: %v", err)
	}
}
