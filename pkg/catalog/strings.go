package catalog

import "fmt"

// String returns the canonical catalog code for the sign type (e.g. "LETTER").
func (t SignType) String() string {
	switch t {
	case Letter:
		return "LETTER"
	case Space:
		return "SPACE"
	case PossibleVacat:
		return "POSSIBLE_VACAT"
	case Vacat:
		return "VACAT"
	case Damage:
		return "DAMAGE"
	case BlankLine:
		return "BLANK_LINE"
	case ParagraphMarker:
		return "PARAGRAPH_MARKER"
	case Lacuna:
		return "LACUNA"
	case Break:
		return "BREAK"
	default:
		return fmt.Sprintf("SIGN_TYPE(%d)", int(t))
	}
}

// ParseSignType converts a canonical catalog code back to a SignType.
// The second return value reports whether the code was recognized.
func ParseSignType(code string) (SignType, bool) {
	for t := Letter; t <= Break; t++ {
		if t.String() == code {
			return t, true
		}
	}
	return 0, false
}

// String returns a short name for the classification kind.
func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "unknown"
	case KindSignType:
		return "sign_type"
	case KindBreakType:
		return "break_type"
	case KindMightBeWider:
		return "might_be_wider"
	case KindReadability:
		return "readability"
	case KindIsReconstructed:
		return "is_reconstructed"
	case KindEditorialFlag:
		return "editorial_flag"
	case KindCorrection:
		return "correction"
	case KindRelativePosition:
		return "relative_position"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}
