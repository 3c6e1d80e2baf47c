package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/cache"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/edition"
	lerrors "github.com/Scripta-Qumranica-Electronica/linea/pkg/errors"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/linear"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"json", false},
		{"dot", false},
		{"invalid", true},
		{"TEXT", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Input: "edition.json"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("Valid options should pass: %v", err)
	}

	if opts.MaxOrders != linear.DefaultMaxOrders {
		t.Errorf("MaxOrders should be %d, got %d", linear.DefaultMaxOrders, opts.MaxOrders)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatText {
		t.Errorf("Formats should default to [text], got %v", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should get a default")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code lerrors.Code
	}{
		{
			name: "missing input",
			opts: Options{},
			code: lerrors.ErrCodeInvalidInput,
		},
		{
			name: "bad format",
			opts: Options{Input: "x.json", Formats: []string{"yaml"}},
			code: lerrors.ErrCodeInvalidFormat,
		},
		{
			name: "dot without line",
			opts: Options{Input: "x.json", Formats: []string{"dot"}},
			code: lerrors.ErrCodeInvalidInput,
		},
		{
			name: "unknown sign type",
			opts: Options{Input: "x.json", SignTypes: []string{"GLYPH"}},
			code: lerrors.ErrCodeInvalidFilter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("ValidateAndSetDefaults() error = nil, want error")
			}
			if got := lerrors.GetCode(err); got != tt.code {
				t.Errorf("error code = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestFilterConfig(t *testing.T) {
	opts := Options{Input: "x.json", IncludeReconstructed: true, SignTypes: []string{"LETTER", "DAMAGE"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	cfg := opts.FilterConfig()
	if cfg.ExcludeReconstructed {
		t.Error("ExcludeReconstructed should be false when IncludeReconstructed is set")
	}
	if len(cfg.IncludeTypes) != 2 {
		t.Errorf("IncludeTypes has %d entries, want 2", len(cfg.IncludeTypes))
	}
}

func interp(id uint32, char string, avIDs []uint32, next []uint32) edition.InterpretationDoc {
	attrs := make([]edition.AttributeDoc, len(avIDs))
	for i, av := range avIDs {
		attrs[i] = edition.AttributeDoc{ID: id*100 + uint32(i), AttributeValueID: av}
	}
	return edition.InterpretationDoc{
		ID:                      id,
		Character:               char,
		Attributes:              attrs,
		NextSignInterpretations: next,
	}
}

func sampleDocument() *edition.Document {
	return &edition.Document{
		ID:   894,
		Name: "4Q51 Samuel",
		TextFragments: []edition.FragmentDoc{{
			ID:               10,
			TextFragmentName: "Col. I",
			Lines: []edition.LineDoc{{
				ID:       100,
				LineName: "1",
				Signs: []edition.SignDoc{
					{SignInterpretations: []edition.InterpretationDoc{
						interp(1, "ש", []uint32{1}, []uint32{2, 3}),
					}},
					{SignInterpretations: []edition.InterpretationDoc{
						interp(2, "מ", []uint32{1}, []uint32{4}),
						interp(3, "כ", []uint32{1}, []uint32{4}),
					}},
					{SignInterpretations: []edition.InterpretationDoc{
						interp(4, "ם", []uint32{1}, nil),
					}},
				},
			}},
		}},
	}
}

func TestExecuteFromFile(t *testing.T) {
	data, err := edition.MarshalDocument(*sampleDocument())
	if err != nil {
		t.Fatalf("MarshalDocument() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "edition.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	runner := NewRunner(cache.NewNullCache(), nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Input:   path,
		Formats: []string{FormatText},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got, want := string(result.Artifacts[FormatText]), "Col. I\n1\tשמם\n"; got != want {
		t.Errorf("text artifact = %q, want %q", got, want)
	}
}

func TestExecuteText(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Document: sampleDocument(),
		Formats:  []string{FormatText},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got := string(result.Artifacts[FormatText])
	want := "Col. I\n1\tשמם\n"
	if got != want {
		t.Errorf("text artifact = %q, want %q", got, want)
	}
	if result.DocHash == "" {
		t.Error("DocHash should be set")
	}
	if result.RunID == "" {
		t.Error("RunID should be set")
	}
	if result.Stats.LineCount != 1 || result.Stats.SignCount != 3 {
		t.Errorf("stats = %+v", result.Stats)
	}
}

func TestExecuteAllOrders(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Document:  sampleDocument(),
		AllOrders: true,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got := string(result.Artifacts[FormatText])
	for _, want := range []string{"1\t[1/2]\tשמם", "1\t[2/2]\tשכם"} {
		if !strings.Contains(got, want) {
			t.Errorf("all-orders artifact missing %q:\n%s", want, got)
		}
	}
}

func TestExecuteJSONAndDOT(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Document: sampleDocument(),
		Formats:  []string{FormatJSON, FormatDOT},
		Line:     100,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(string(result.Artifacts[FormatJSON]), `"fragment": "Col. I"`) {
		t.Errorf("json artifact missing fragment name:\n%s", result.Artifacts[FormatJSON])
	}
	if !strings.Contains(string(result.Artifacts[FormatDOT]), "1 -> 2;") {
		t.Errorf("dot artifact missing edge:\n%s", result.Artifacts[FormatDOT])
	}
}

func TestExecuteCountOrders(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Document:    sampleDocument(),
		CountOrders: true,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if got := result.OrderCounts[100]; got != 2 {
		t.Errorf("OrderCounts[100] = %d, want 2", got)
	}
}

func TestExecuteFragmentNotFound(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	_, err := runner.Execute(context.Background(), Options{
		Document: sampleDocument(),
		Fragment: 999,
	})
	if !lerrors.Is(err, lerrors.ErrCodeNotFound) {
		t.Errorf("Execute() error = %v, want NOT_FOUND", err)
	}
}

func TestExecuteArtifactCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	opts := Options{Document: sampleDocument()}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if first.CacheInfo.ArtifactHit {
		t.Error("first run should not hit the cache")
	}

	second, err := runner.Execute(context.Background(), Options{Document: sampleDocument()})
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.ArtifactHit {
		t.Error("second run should hit the cache")
	}
	if string(first.Artifacts[FormatText]) != string(second.Artifacts[FormatText]) {
		t.Error("cached artifact should match the rendered one")
	}

	third, err := runner.Execute(context.Background(), Options{Document: sampleDocument(), Refresh: true})
	if err != nil {
		t.Fatalf("third Execute() error = %v", err)
	}
	if third.CacheInfo.ArtifactHit {
		t.Error("refresh run should bypass the cache")
	}
}

func TestExecuteMalformedDocument(t *testing.T) {
	doc := sampleDocument()
	// Point the first interpretation at a nonexistent ID.
	doc.TextFragments[0].Lines[0].Signs[0].SignInterpretations[0].NextSignInterpretations = []uint32{999}

	runner := NewRunner(cache.NewNullCache(), nil, nil)
	_, err := runner.Execute(context.Background(), Options{Document: doc})
	if !lerrors.Is(err, lerrors.ErrCodeMalformedGraph) {
		t.Errorf("Execute() error = %v, want MALFORMED_GRAPH", err)
	}
}
