// Package catalog maps attribute-value identifiers to semantic classes.
//
// Sign interpretations carry attributes identified by numeric attribute-value
// IDs. The catalog classifies those IDs into a closed set of categories
// (sign type, break type, readability, corrections, relative position, and
// boolean flags such as "is reconstructed") that the linearization and
// serialization layers consume.
//
// The identifier space is open-ended: editions produced by newer versions of
// the transcription database may carry IDs this catalog has never seen.
// Unrecognized IDs classify as [KindUnknown] rather than failing, so the
// engine stays forward-compatible without a code change for every new code.
//
// The table is process-wide immutable state, initialized once at package load.
package catalog

// Kind is the top-level category of an attribute classification.
type Kind int

const (
	// KindUnknown marks an attribute-value ID the catalog does not recognize.
	KindUnknown Kind = iota
	// KindSignType classifies the interpretation itself (letter, space, damage...).
	KindSignType
	// KindBreakType marks structural boundaries (line, column, manuscript).
	KindBreakType
	// KindMightBeWider flags a sign whose extent is uncertain.
	KindMightBeWider
	// KindReadability grades how legible the sign is.
	KindReadability
	// KindIsReconstructed flags editorially reconstructed (non-extant) text.
	KindIsReconstructed
	// KindEditorialFlag marks editorial judgements (conjecture, addition, deletion).
	KindEditorialFlag
	// KindCorrection marks scribal correction techniques.
	KindCorrection
	// KindRelativePosition places the sign relative to the line or margins.
	KindRelativePosition
)

// SignType identifies what kind of sign an interpretation represents.
// Every valid interpretation carries exactly one sign-type attribute.
type SignType int

const (
	Letter SignType = iota + 1
	Space
	PossibleVacat
	Vacat
	Damage
	BlankLine
	ParagraphMarker
	Lacuna
	Break
)

// BreakType identifies a structural boundary marker.
type BreakType int

const (
	LineStart BreakType = iota + 1
	LineEnd
	ColumnStart
	ColumnEnd
	ManuscriptStart
	ManuscriptEnd
)

// Readability grades partially legible signs.
type Readability int

const (
	IncompleteButClear Readability = iota + 1
	IncompleteAndNotClear
)

// EditorialFlag marks an editorial judgement about the sign.
type EditorialFlag int

const (
	Conjecture EditorialFlag = iota + 1
	ShouldBeAdded
	ShouldBeDeleted
)

// Correction identifies a scribal correction technique applied to the sign.
type Correction int

const (
	Overwritten Correction = iota + 1
	HorizontalLine
	DiagonalLeftLine
	DiagonalRightLine
	DotBelow
	DotAbove
	LineBelow
	LineAbove
	Boxed
	Erased
)

// RelativePosition places a sign outside the normal flow of its line.
type RelativePosition int

const (
	AboveLine RelativePosition = iota + 1
	BelowLine
	LeftMargin
	RightMargin
	Margin
	UpperMargin
	LowerMargin
)

// Class is the tagged-variant result of classifying an attribute-value ID.
// Kind selects which of the typed fields is meaningful; the others are zero.
// RawID always carries the original attribute-value ID, including for
// unknown classifications.
type Class struct {
	Kind        Kind
	Sign        SignType
	Break       BreakType
	Readability Readability
	Editorial   EditorialFlag
	Correction  Correction
	Position    RelativePosition
	RawID       uint32
}

// IsSign reports whether the class is a sign type equal to t.
func (c Class) IsSign(t SignType) bool {
	return c.Kind == KindSignType && c.Sign == t
}

// Reconstructed reports whether the class is the is-reconstructed flag.
func (c Class) Reconstructed() bool { return c.Kind == KindIsReconstructed }

// Known reports whether the catalog recognized the attribute-value ID.
func (c Class) Known() bool { return c.Kind != KindUnknown }

// table is the static attribute-value catalog. The numeric IDs follow the
// public layout of the transcription database's attribute catalog; in
// particular ID 20 is the is-reconstructed flag.
var table = map[uint32]Class{
	1: {Kind: KindSignType, Sign: Letter},
	2: {Kind: KindSignType, Sign: Space},
	3: {Kind: KindSignType, Sign: PossibleVacat},
	4: {Kind: KindSignType, Sign: Vacat},
	5: {Kind: KindSignType, Sign: Damage},
	6: {Kind: KindSignType, Sign: BlankLine},
	7: {Kind: KindSignType, Sign: ParagraphMarker},
	8: {Kind: KindSignType, Sign: Lacuna},
	9: {Kind: KindSignType, Sign: Break},

	10: {Kind: KindBreakType, Break: LineStart},
	11: {Kind: KindBreakType, Break: LineEnd},
	12: {Kind: KindBreakType, Break: ColumnStart},
	13: {Kind: KindBreakType, Break: ColumnEnd},
	14: {Kind: KindBreakType, Break: ManuscriptStart},
	15: {Kind: KindBreakType, Break: ManuscriptEnd},

	16: {Kind: KindMightBeWider},

	17: {Kind: KindReadability, Readability: IncompleteButClear},
	18: {Kind: KindReadability, Readability: IncompleteAndNotClear},

	20: {Kind: KindIsReconstructed},

	21: {Kind: KindEditorialFlag, Editorial: Conjecture},
	22: {Kind: KindEditorialFlag, Editorial: ShouldBeAdded},
	23: {Kind: KindEditorialFlag, Editorial: ShouldBeDeleted},

	24: {Kind: KindCorrection, Correction: Overwritten},
	25: {Kind: KindCorrection, Correction: HorizontalLine},
	26: {Kind: KindCorrection, Correction: DiagonalLeftLine},
	27: {Kind: KindCorrection, Correction: DiagonalRightLine},
	28: {Kind: KindCorrection, Correction: DotBelow},
	29: {Kind: KindCorrection, Correction: DotAbove},
	30: {Kind: KindCorrection, Correction: LineBelow},
	31: {Kind: KindCorrection, Correction: LineAbove},
	32: {Kind: KindCorrection, Correction: Boxed},
	33: {Kind: KindCorrection, Correction: Erased},

	34: {Kind: KindRelativePosition, Position: AboveLine},
	35: {Kind: KindRelativePosition, Position: BelowLine},
	36: {Kind: KindRelativePosition, Position: LeftMargin},
	37: {Kind: KindRelativePosition, Position: RightMargin},
	38: {Kind: KindRelativePosition, Position: Margin},
	39: {Kind: KindRelativePosition, Position: UpperMargin},
	40: {Kind: KindRelativePosition, Position: LowerMargin},
}

// Classify returns the semantic class of an attribute-value ID.
// Unrecognized IDs return a Class with [KindUnknown] and RawID set; callers
// must treat unknown classes as pass-through rather than as errors.
func Classify(attributeValueID uint32) Class {
	c, ok := table[attributeValueID]
	if !ok {
		return Class{Kind: KindUnknown, RawID: attributeValueID}
	}
	c.RawID = attributeValueID
	return c
}
