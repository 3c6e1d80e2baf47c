package edition

import (
	"slices"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/catalog"
)

// Build constructs the in-memory model from a document and validates all
// model invariants eagerly:
//
//   - required fields are present (names, interpretation IDs, at least one
//     interpretation per sign, a sign-type attribute per interpretation,
//     a character on LETTER interpretations)
//   - every next-interpretation reference resolves within its own line
//   - the per-line next-interpretation relation is acyclic
//
// On any violation Build returns a [*MalformedGraphError] and no Edition -
// there is no partially constructed result. Next-interpretation references
// are stored sorted ascending by ID so traversal order is deterministic.
func Build(doc Document) (*Edition, error) {
	if doc.Name == "" {
		return nil, &MalformedGraphError{Cause: ErrMissingField, Field: "name", EditionID: doc.ID}
	}

	e := &Edition{
		id:        doc.ID,
		name:      doc.Name,
		license:   doc.License,
		editors:   doc.Editors,
		fragments: make([]*TextFragment, 0, len(doc.TextFragments)),
	}

	for _, fd := range doc.TextFragments {
		f, err := buildFragment(doc.ID, fd)
		if err != nil {
			return nil, err
		}
		e.fragments = append(e.fragments, f)
	}

	return e, nil
}

func buildFragment(editionID uint32, fd FragmentDoc) (*TextFragment, error) {
	if fd.TextFragmentName == "" {
		return nil, &MalformedGraphError{
			Cause: ErrMissingField, Field: "textFragmentName",
			EditionID: editionID, FragmentID: fd.ID,
		}
	}

	f := &TextFragment{
		id:    fd.ID,
		name:  fd.TextFragmentName,
		lines: make([]*Line, 0, len(fd.Lines)),
	}

	for _, ld := range fd.Lines {
		l, err := buildLine(editionID, fd.ID, ld)
		if err != nil {
			return nil, err
		}
		f.lines = append(f.lines, l)
	}

	return f, nil
}

func buildLine(editionID, fragmentID uint32, ld LineDoc) (*Line, error) {
	if ld.LineName == "" {
		return nil, &MalformedGraphError{
			Cause: ErrMissingField, Field: "lineName",
			EditionID: editionID, FragmentID: fragmentID, LineID: ld.ID,
		}
	}

	l := &Line{
		id:    ld.ID,
		name:  ld.LineName,
		signs: make([]*Sign, 0, len(ld.Signs)),
		index: make(map[uint32]*SignInterpretation),
	}

	for _, sd := range ld.Signs {
		s, err := buildSign(editionID, fragmentID, ld.ID, sd, l.index)
		if err != nil {
			return nil, err
		}
		l.signs = append(l.signs, s)
	}

	if err := resolveReferences(editionID, fragmentID, l); err != nil {
		return nil, err
	}
	if err := detectCycles(editionID, fragmentID, l); err != nil {
		return nil, err
	}

	return l, nil
}

func buildSign(editionID, fragmentID, lineID uint32, sd SignDoc, index map[uint32]*SignInterpretation) (*Sign, error) {
	if len(sd.SignInterpretations) == 0 {
		return nil, &MalformedGraphError{
			Cause: ErrMissingField, Field: "signInterpretations",
			EditionID: editionID, FragmentID: fragmentID, LineID: lineID, SignID: sd.ID,
		}
	}

	signID := sd.ID
	if signID == 0 {
		// Some exports omit the sign ID; identify the sign by its primary
		// interpretation instead.
		signID = sd.SignInterpretations[0].ID
	}

	s := &Sign{
		id:      signID,
		interps: make([]*SignInterpretation, 0, len(sd.SignInterpretations)),
	}

	for _, id := range sd.SignInterpretations {
		si, err := buildInterpretation(editionID, fragmentID, lineID, signID, id)
		if err != nil {
			return nil, err
		}
		if _, dup := index[si.id]; dup {
			return nil, &MalformedGraphError{
				Cause:     ErrDuplicateInterpretation,
				EditionID: editionID, FragmentID: fragmentID, LineID: lineID,
				SignID: signID, InterpretationID: si.id,
			}
		}
		index[si.id] = si
		s.interps = append(s.interps, si)
	}

	return s, nil
}

func buildInterpretation(editionID, fragmentID, lineID, signID uint32, id InterpretationDoc) (*SignInterpretation, error) {
	malformed := func(cause error, field string) error {
		return &MalformedGraphError{
			Cause: cause, Field: field,
			EditionID: editionID, FragmentID: fragmentID, LineID: lineID,
			SignID: signID, InterpretationID: id.ID,
		}
	}

	if id.ID == 0 {
		return nil, malformed(ErrMissingField, "id")
	}
	if len(id.Attributes) == 0 {
		return nil, malformed(ErrMissingField, "attributes")
	}

	si := &SignInterpretation{
		id:        id.ID,
		character: id.Character,
		attrs:     make([]Attribute, 0, len(id.Attributes)),
	}

	hasSignType := false
	isLetter := false
	for _, ad := range id.Attributes {
		if ad.AttributeValueID == 0 {
			return nil, malformed(ErrMissingField, "attributeValueId")
		}
		attr := Attribute{ID: ad.ID, AttributeValueID: ad.AttributeValueID}
		if ad.Value != nil {
			attr.Value = *ad.Value
			attr.HasValue = true
		}
		si.attrs = append(si.attrs, attr)

		c := catalog.Classify(ad.AttributeValueID)
		if c.Kind == catalog.KindSignType {
			hasSignType = true
			if c.Sign == catalog.Letter {
				isLetter = true
			}
		}
	}

	if !hasSignType {
		return nil, malformed(ErrMissingField, "sign type attribute")
	}
	if isLetter && si.character == "" {
		return nil, malformed(ErrMissingField, "character")
	}

	if len(id.NextSignInterpretations) > 0 {
		si.next = slices.Clone(id.NextSignInterpretations)
		slices.Sort(si.next)
		si.next = slices.Compact(si.next)
	}

	return si, nil
}

// resolveReferences checks that every next-interpretation reference points at
// an interpretation within the same line.
func resolveReferences(editionID, fragmentID uint32, l *Line) error {
	for _, s := range l.signs {
		for _, si := range s.interps {
			for _, ref := range si.next {
				if _, ok := l.index[ref]; !ok {
					return &MalformedGraphError{
						Cause:     ErrUnresolvedReference,
						EditionID: editionID, FragmentID: fragmentID, LineID: l.id,
						SignID: s.id, InterpretationID: si.id, RefID: ref,
					}
				}
			}
		}
	}
	return nil
}

// detectCycles runs a white/gray/black DFS over the line's
// next-interpretation relation and fails on the first back edge.
func detectCycles(editionID, fragmentID uint32, l *Line) error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[uint32]int, len(l.index))
	var back *MalformedGraphError

	var dfs func(id uint32)
	dfs = func(id uint32) {
		color[id] = gray
		for _, next := range l.index[id].next {
			switch color[next] {
			case white:
				dfs(next)
				if back != nil {
					return
				}
			case gray:
				back = &MalformedGraphError{
					Cause:     ErrGraphCycle,
					EditionID: editionID, FragmentID: fragmentID, LineID: l.id,
					InterpretationID: id, RefID: next,
				}
				return
			}
		}
		color[id] = black
	}

	// Iterate signs in order rather than the index map so the reported cycle
	// is deterministic for a given document.
	for _, s := range l.signs {
		for _, si := range s.interps {
			if color[si.id] == white {
				dfs(si.id)
				if back != nil {
					return back
				}
			}
		}
	}
	return nil
}
