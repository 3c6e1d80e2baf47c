package catalog

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		id       uint32
		wantKind Kind
		check    func(t *testing.T, c Class)
	}{
		{
			name:     "Letter",
			id:       1,
			wantKind: KindSignType,
			check: func(t *testing.T, c Class) {
				if !c.IsSign(Letter) {
					t.Errorf("IsSign(Letter) = false, want true")
				}
			},
		},
		{
			name:     "Space",
			id:       2,
			wantKind: KindSignType,
			check: func(t *testing.T, c Class) {
				if !c.IsSign(Space) {
					t.Errorf("IsSign(Space) = false, want true")
				}
			},
		},
		{
			name:     "Reconstructed",
			id:       20,
			wantKind: KindIsReconstructed,
			check: func(t *testing.T, c Class) {
				if !c.Reconstructed() {
					t.Errorf("Reconstructed() = false, want true")
				}
			},
		},
		{
			name:     "LineEnd",
			id:       11,
			wantKind: KindBreakType,
			check: func(t *testing.T, c Class) {
				if c.Break != LineEnd {
					t.Errorf("Break = %v, want LineEnd", c.Break)
				}
			},
		},
		{
			name:     "Erased",
			id:       33,
			wantKind: KindCorrection,
			check: func(t *testing.T, c Class) {
				if c.Correction != Erased {
					t.Errorf("Correction = %v, want Erased", c.Correction)
				}
			},
		},
		{
			name:     "UnknownID",
			id:       9999,
			wantKind: KindUnknown,
			check: func(t *testing.T, c Class) {
				if c.Known() {
					t.Errorf("Known() = true, want false")
				}
				if c.RawID != 9999 {
					t.Errorf("RawID = %d, want 9999", c.RawID)
				}
			},
		},
		{
			name:     "UnassignedGap",
			id:       19,
			wantKind: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.id)
			if c.Kind != tt.wantKind {
				t.Fatalf("Classify(%d).Kind = %v, want %v", tt.id, c.Kind, tt.wantKind)
			}
			if c.RawID != tt.id {
				t.Errorf("RawID = %d, want %d", c.RawID, tt.id)
			}
			if tt.check != nil {
				tt.check(t, c)
			}
		})
	}
}

func TestClassifyDoesNotMutateTable(t *testing.T) {
	first := Classify(1)
	second := Classify(1)
	if first != second {
		t.Errorf("repeated Classify(1) differs: %+v vs %+v", first, second)
	}
}

func TestSignTypeString(t *testing.T) {
	tests := []struct {
		t    SignType
		want string
	}{
		{Letter, "LETTER"},
		{Space, "SPACE"},
		{PossibleVacat, "POSSIBLE_VACAT"},
		{BlankLine, "BLANK_LINE"},
		{Break, "BREAK"},
		{SignType(99), "SIGN_TYPE(99)"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseSignType(t *testing.T) {
	for typ := Letter; typ <= Break; typ++ {
		got, ok := ParseSignType(typ.String())
		if !ok || got != typ {
			t.Errorf("ParseSignType(%q) = %v, %v", typ.String(), got, ok)
		}
	}
	if _, ok := ParseSignType("NOT_A_TYPE"); ok {
		t.Errorf("ParseSignType accepted invalid code")
	}
}
