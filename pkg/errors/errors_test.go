package errors

import (
	stderrors "errors"
	"testing"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/edition"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/linear"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad file %q", "x.json")
	want := `INVALID_INPUT: bad file "x.json"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	wrapped := Wrap(ErrCodeStore, stderrors.New("disk full"), "save edition")
	if got := wrapped.Error(); got != "STORE_ERROR: save edition: disk full" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := New(ErrCodeEditionNotFound, "no such edition")
	if !Is(err, ErrCodeEditionNotFound) {
		t.Errorf("Is = false, want true")
	}
	if Is(err, ErrCodeInternal) {
		t.Errorf("Is matched wrong code")
	}
	if GetCode(err) != ErrCodeEditionNotFound {
		t.Errorf("GetCode = %q", GetCode(err))
	}
	if GetCode(stderrors.New("plain")) != "" {
		t.Errorf("GetCode on plain error should be empty")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := Wrap(ErrCodeInternal, cause, "context")
	if !stderrors.Is(err, cause) {
		t.Errorf("wrapped cause not reachable via errors.Is")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{
			name: "MalformedGraph",
			err:  &edition.MalformedGraphError{Cause: edition.ErrGraphCycle, LineID: 7},
			want: ErrCodeMalformedGraph,
		},
		{
			name: "TooManyOrderings",
			err:  &linear.TooManyOrderingsError{LineID: 7, Enumerated: 10, Limit: 10},
			want: ErrCodeTooManyOrderings,
		},
		{
			name: "AlreadyClassified",
			err:  New(ErrCodeFileNotFound, "gone"),
			want: ErrCodeFileNotFound,
		},
		{
			name: "Unknown",
			err:  stderrors.New("boom"),
			want: ErrCodeInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err).Code; got != tt.want {
				t.Errorf("Classify code = %q, want %q", got, tt.want)
			}
		})
	}
	if Classify(nil) != nil {
		t.Errorf("Classify(nil) should be nil")
	}
}

func TestValidateStoreID(t *testing.T) {
	valid := []string{"894", "4Q51-samuel", "edition_12"}
	for _, id := range valid {
		if err := ValidateStoreID(id); err != nil {
			t.Errorf("ValidateStoreID(%q) = %v, want nil", id, err)
		}
	}

	invalid := []string{"", "../escape", "a/b", "a\\b", "bad\x00id", string(make([]byte, 200))}
	for _, id := range invalid {
		if err := ValidateStoreID(id); err == nil {
			t.Errorf("ValidateStoreID(%q) = nil, want error", id)
		}
	}
}
