// Package pipeline provides the core transcription pipeline for linea.
//
// This package implements the complete load → build → serialize pipeline
// shared by the CLI commands. Centralizing it keeps caching, filtering and
// defaulting consistent across every entry point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a sign-interpretation document from a file or an in-memory
//     document
//  2. Build: Construct and validate the in-memory edition graph
//  3. Serialize: Produce output artifacts (plain text, JSON tree, DOT)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "edition.json",
//	    Formats: []string{"text"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	text := result.Artifacts["text"]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/cache"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/catalog"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/edition"
	lerrors "github.com/Scripta-Qumranica-Electronica/linea/pkg/errors"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/linear"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/transcript"
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatDOT:  true,
}

// Options contains all configuration for the transcription pipeline.
// This struct supports JSON serialization so runs can be recorded.
type Options struct {
	// Load options. Exactly one of Input or Document must be set.
	Input    string            `json:"input,omitempty"`
	Document *edition.Document `json:"-"`

	// Fragment restricts output to one text fragment. Zero means all.
	Fragment uint32 `json:"fragment,omitempty"`
	// Line selects the line for DOT output. Required for the dot format.
	Line uint32 `json:"line,omitempty"`

	// Filter options
	IncludeReconstructed bool     `json:"include_reconstructed,omitempty"`
	SignTypes            []string `json:"sign_types,omitempty"`

	// Order options
	AllOrders bool `json:"all_orders,omitempty"`
	MaxOrders int  `json:"max_orders,omitempty"`

	// CountOrders enumerates the number of reading orders per line.
	CountOrders bool `json:"count_orders,omitempty"`

	// Serialize options
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this pipeline run.
	RunID string

	// Edition is the built edition graph.
	Edition *edition.Edition

	// DocHash is the content hash of the source document.
	DocHash string

	// Artifacts contains serialized outputs keyed by format.
	Artifacts map[string][]byte

	// OrderCounts maps line IDs to their number of reading orders.
	// Populated only when Options.CountOrders is set. Lines that hit the
	// enumeration cap report the cap.
	OrderCounts map[uint32]int

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FragmentCount int
	LineCount     int
	SignCount     int
	LoadTime      time.Duration
	BuildTime     time.Duration
	SerializeTime time.Duration
	CountTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ArtifactHit bool // Whether all artifacts came from cache
	OrdersHit   bool // Whether all order counts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return lerrors.New(lerrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: text, json, dot)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" && o.Document == nil {
		return lerrors.New(lerrors.ErrCodeInvalidInput, "input path or document is required")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	if slices.Contains(o.Formats, FormatDOT) && o.Line == 0 {
		return lerrors.New(lerrors.ErrCodeInvalidInput, "dot output requires a line")
	}
	for _, code := range o.SignTypes {
		if _, ok := catalog.ParseSignType(code); !ok {
			return lerrors.New(lerrors.ErrCodeInvalidFilter, "unknown sign type: %q", code)
		}
	}
	if o.MaxOrders <= 0 {
		o.MaxOrders = linear.DefaultMaxOrders
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// FilterConfig translates the filter options into a transcript filter.
func (o *Options) FilterConfig() transcript.FilterConfig {
	cfg := transcript.DefaultFilter()
	cfg.ExcludeReconstructed = !o.IncludeReconstructed
	if len(o.SignTypes) > 0 {
		cfg.IncludeTypes = make(map[catalog.SignType]bool, len(o.SignTypes))
		for _, code := range o.SignTypes {
			if t, ok := catalog.ParseSignType(code); ok {
				cfg.IncludeTypes[t] = true
			}
		}
	}
	return cfg
}

// OrdersKeyOpts returns cache key options for one line's order count.
func (o *Options) OrdersKeyOpts(lineID uint32) cache.OrdersKeyOpts {
	return cache.OrdersKeyOpts{
		LineID:    lineID,
		MaxOrders: o.MaxOrders,
	}
}

// ArtifactKeyOpts returns cache key options for artifact serialization.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	types := slices.Clone(o.SignTypes)
	slices.Sort(types)
	return cache.ArtifactKeyOpts{
		Format:               format,
		Fragment:             o.Fragment,
		ExcludeReconstructed: !o.IncludeReconstructed,
		IncludeTypes:         types,
		AllOrders:            o.AllOrders,
		MaxOrders:            o.MaxOrders,
	}
}

// selectFragments resolves the fragment filter against an edition.
func selectFragments(e *edition.Edition, fragmentID uint32) ([]*edition.TextFragment, error) {
	if fragmentID == 0 {
		return e.Fragments(), nil
	}
	f := e.Fragment(fragmentID)
	if f == nil {
		return nil, lerrors.New(lerrors.ErrCodeNotFound,
			"fragment %d not found in edition %q", fragmentID, e.Name())
	}
	return []*edition.TextFragment{f}, nil
}

// findLine resolves a line ID within the selected fragments.
func findLine(fragments []*edition.TextFragment, lineID uint32) (*edition.Line, error) {
	for _, f := range fragments {
		for _, l := range f.Lines() {
			if l.ID() == lineID {
				return l, nil
			}
		}
	}
	return nil, lerrors.New(lerrors.ErrCodeNotFound, "line %d not found", lineID)
}

func countSigns(fragments []*edition.TextFragment) (lines, signs int) {
	for _, f := range fragments {
		lines += len(f.Lines())
		for _, l := range f.Lines() {
			signs += len(l.Signs())
		}
	}
	return lines, signs
}
