package edition

// Edition is the in-memory model of a built edition. All accessors return
// read-only views: the model is never mutated after [Build] returns.
type Edition struct {
	id        uint32
	name      string
	license   License
	editors   map[string]Editor
	fragments []*TextFragment
}

// ID returns the edition identifier.
func (e *Edition) ID() uint32 { return e.id }

// Name returns the edition display name.
func (e *Edition) Name() string { return e.name }

// License returns the edition's license metadata.
func (e *Edition) License() License { return e.license }

// Editors returns the editor registry keyed by editor ID.
// The returned map must not be modified.
func (e *Edition) Editors() map[string]Editor { return e.editors }

// Fragments returns the text fragments in editor order.
// The returned slice must not be modified.
func (e *Edition) Fragments() []*TextFragment { return e.fragments }

// Fragment returns the fragment with the given ID, or nil if absent.
func (e *Edition) Fragment(id uint32) *TextFragment {
	for _, f := range e.fragments {
		if f.id == id {
			return f
		}
	}
	return nil
}

// TextFragment is one fragment (typically a column) of an edition.
type TextFragment struct {
	id    uint32
	name  string
	lines []*Line
}

// ID returns the fragment identifier.
func (f *TextFragment) ID() uint32 { return f.id }

// Name returns the fragment display name (e.g. "Col. I").
func (f *TextFragment) Name() string { return f.name }

// Lines returns the lines in editor-suggested order.
// The returned slice must not be modified.
func (f *TextFragment) Lines() []*Line { return f.lines }

// Line is one line of a fragment. The sign sequence as given is the default
// reading order; the per-line interpretation index resolves weak
// next-interpretation references.
type Line struct {
	id    uint32
	name  string
	signs []*Sign
	index map[uint32]*SignInterpretation
}

// ID returns the line identifier.
func (l *Line) ID() uint32 { return l.id }

// Name returns the line display name (e.g. "1" or "line 4a").
func (l *Line) Name() string { return l.name }

// Signs returns the signs in default reading order.
// The returned slice must not be modified.
func (l *Line) Signs() []*Sign { return l.signs }

// Interpretation resolves an interpretation ID within this line.
// The second return value is false when the ID does not belong to the line.
func (l *Line) Interpretation(id uint32) (*SignInterpretation, bool) {
	si, ok := l.index[id]
	return si, ok
}

// Next resolves the next-interpretation references of si within this line.
// The result is ordered ascending by ID (the order Build stored them in).
// Build guarantees every reference resolves, so the result always has
// len(si.NextIDs()) entries for interpretations belonging to this line.
func (l *Line) Next(si *SignInterpretation) []*SignInterpretation {
	if len(si.next) == 0 {
		return nil
	}
	out := make([]*SignInterpretation, 0, len(si.next))
	for _, id := range si.next {
		if target, ok := l.index[id]; ok {
			out = append(out, target)
		}
	}
	return out
}

// Sign is one position in a line carrying one or more alternative
// interpretations. The first interpretation is the editorially designated
// primary reading.
type Sign struct {
	id      uint32
	interps []*SignInterpretation
}

// ID returns the sign identifier. When the source document did not carry a
// sign ID, this is the ID of the sign's first interpretation.
func (s *Sign) ID() uint32 { return s.id }

// Interpretations returns the alternative readings of this sign, primary
// first. The returned slice must not be modified.
func (s *Sign) Interpretations() []*SignInterpretation { return s.interps }

// Primary returns the designated primary interpretation (the first listed).
// Build guarantees at least one interpretation per sign.
func (s *Sign) Primary() *SignInterpretation { return s.interps[0] }

// SignInterpretation is one concrete reading of a sign: a character or a
// formatting marker, plus its attributes and outgoing next-interpretation
// references.
type SignInterpretation struct {
	id        uint32
	character string
	attrs     []Attribute
	next      []uint32 // sorted ascending by Build
}

// ID returns the interpretation identifier.
func (si *SignInterpretation) ID() uint32 { return si.id }

// Character returns the interpretation's character, or "" for formatting
// signs (spaces, vacats, damage markers and the like).
func (si *SignInterpretation) Character() string { return si.character }

// Attributes returns the interpretation's attributes.
// The returned slice must not be modified.
func (si *SignInterpretation) Attributes() []Attribute { return si.attrs }

// NextIDs returns the IDs of interpretations that may follow this one,
// sorted ascending. The returned slice must not be modified.
func (si *SignInterpretation) NextIDs() []uint32 { return si.next }

// Attribute is one classification tag on an interpretation. The
// AttributeValueID is a foreign key into the attribute catalog; Value is
// only meaningful when HasValue is true.
type Attribute struct {
	ID               uint32
	AttributeValueID uint32
	Value            float64
	HasValue         bool
}
