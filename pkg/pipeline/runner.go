package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/cache"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/edition"
	lerrors "github.com/Scripta-Qumranica-Electronica/linea/pkg/errors"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/linear"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/observability"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/transcript"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/viz"
)

// countWorkers bounds the parallelism of per-line order counting.
const countWorkers = 8

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → build → serialize pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	doc, err := r.Load(opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)

	// The document hash keys every cacheable stage downstream.
	data, err := edition.MarshalDocument(doc)
	if err != nil {
		return nil, lerrors.Wrap(lerrors.ErrCodeInternal, err, "serialize document for hashing")
	}
	result.DocHash = cache.Hash(data)

	// Stage 2: Build
	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, doc.Name)
	ed, err := edition.Build(doc)
	if err != nil {
		observability.Pipeline().OnBuildComplete(ctx, doc.Name, 0, time.Since(buildStart), err)
		return nil, lerrors.Classify(err)
	}
	result.Edition = ed
	result.Stats.BuildTime = time.Since(buildStart)

	fragments, err := selectFragments(ed, opts.Fragment)
	if err != nil {
		return nil, err
	}
	result.Stats.FragmentCount = len(fragments)
	result.Stats.LineCount, result.Stats.SignCount = countSigns(fragments)
	observability.Pipeline().OnBuildComplete(ctx, doc.Name, result.Stats.SignCount, result.Stats.BuildTime, nil)

	r.Logger.Info("built edition",
		"edition", ed.Name(),
		"fragments", result.Stats.FragmentCount,
		"lines", result.Stats.LineCount,
		"signs", result.Stats.SignCount,
		"duration", result.Stats.BuildTime)

	// Stage 3: Serialize
	serializeStart := time.Now()
	observability.Pipeline().OnSerializeStart(ctx, opts.Formats)
	artifacts, artifactHit, err := r.SerializeWithCacheInfo(ctx, result.DocHash, fragments, opts)
	observability.Pipeline().OnSerializeComplete(ctx, opts.Formats, time.Since(serializeStart), err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.SerializeTime = time.Since(serializeStart)
	result.CacheInfo.ArtifactHit = artifactHit

	r.Logger.Info("serialized outputs",
		"formats", opts.Formats,
		"cache_hit", artifactHit,
		"duration", result.Stats.SerializeTime)

	// Optional: per-line order counts
	if opts.CountOrders {
		countStart := time.Now()
		counts, countsHit, err := r.CountOrdersWithCacheInfo(ctx, result.DocHash, fragments, opts)
		if err != nil {
			return nil, err
		}
		result.OrderCounts = counts
		result.Stats.CountTime = time.Since(countStart)
		result.CacheInfo.OrdersHit = countsHit

		r.Logger.Info("counted reading orders",
			"lines", len(counts),
			"cache_hit", countsHit,
			"duration", result.Stats.CountTime)
	}

	return result, nil
}

// Load reads the source document from the configured input.
func (r *Runner) Load(opts Options) (edition.Document, error) {
	if opts.Document != nil {
		return *opts.Document, nil
	}
	doc, err := edition.ReadDocumentFile(opts.Input)
	if err != nil {
		return edition.Document{}, lerrors.Wrap(lerrors.ErrCodeFileNotFound, err,
			"read edition file %q", opts.Input)
	}
	return doc, nil
}

// SerializeWithCacheInfo produces all requested artifacts, serving them from
// the cache when every format is present and Refresh is not set.
func (r *Runner) SerializeWithCacheInfo(ctx context.Context, docHash string, fragments []*edition.TextFragment, opts Options) (map[string][]byte, bool, error) {
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		allCached := true
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := r.serializeFormat(ctx, format, fragments, opts)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data
	}

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return artifacts, false, nil
}

// Serialize is a convenience wrapper that discards the cache hit info.
func (r *Runner) Serialize(ctx context.Context, docHash string, fragments []*edition.TextFragment, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.SerializeWithCacheInfo(ctx, docHash, fragments, opts)
	return artifacts, err
}

func (r *Runner) serializeFormat(ctx context.Context, format string, fragments []*edition.TextFragment, opts Options) ([]byte, error) {
	switch format {
	case FormatText:
		if opts.AllOrders {
			return renderAllOrdersText(ctx, fragments, opts)
		}
		return renderText(fragments, opts), nil
	case FormatJSON:
		return renderJSON(fragments, opts)
	case FormatDOT:
		line, err := findLine(fragments, opts.Line)
		if err != nil {
			return nil, err
		}
		return []byte(viz.ToDOT(line, viz.Options{})), nil
	default:
		return nil, ValidateFormat(format)
	}
}

func renderText(fragments []*edition.TextFragment, opts Options) []byte {
	cfg := opts.FilterConfig()
	var b bytes.Buffer
	for _, f := range fragments {
		b.WriteString(transcript.PlainText(f, transcript.DefaultOrders, cfg))
	}
	return b.Bytes()
}

// renderAllOrdersText writes every reading order of every line, numbered, so
// editors can inspect alternatives side by side. Lines that exceed the cap
// produce their partial enumeration followed by a truncation marker.
func renderAllOrdersText(ctx context.Context, fragments []*edition.TextFragment, opts Options) ([]byte, error) {
	cfg := opts.FilterConfig()
	lopts := linear.Options{MaxOrders: opts.MaxOrders}

	var b bytes.Buffer
	for _, f := range fragments {
		b.WriteString(f.Name())
		b.WriteString("\n")
		for _, l := range f.Lines() {
			orders, err := linear.AllOrders(ctx, l, lopts)
			truncated := false
			if err != nil {
				var tooMany *linear.TooManyOrderingsError
				if !errors.As(err, &tooMany) {
					return nil, lerrors.Classify(err)
				}
				truncated = true
			}
			for i, o := range orders {
				fmt.Fprintf(&b, "%s\t[%d/%d]\t%s\n", l.Name(), i+1, len(orders), transcript.LineText(o, cfg))
			}
			if truncated {
				fmt.Fprintf(&b, "%s\t[truncated at %d]\n", l.Name(), opts.MaxOrders)
			}
		}
	}
	return b.Bytes(), nil
}

func renderJSON(fragments []*edition.TextFragment, opts Options) ([]byte, error) {
	cfg := opts.FilterConfig()
	trees := make([]transcript.FragmentTree, 0, len(fragments))
	for _, f := range fragments {
		trees = append(trees, transcript.Tree(f, transcript.DefaultOrders, cfg))
	}
	data, err := json.MarshalIndent(trees, "", "  ")
	if err != nil {
		return nil, lerrors.Wrap(lerrors.ErrCodeInternal, err, "encode tree")
	}
	return data, nil
}

// CountOrdersWithCacheInfo counts the reading orders of every line across
// the selected fragments, in parallel. Counts are cached per line under the
// document hash. The hit flag reports whether every line came from cache.
func (r *Runner) CountOrdersWithCacheInfo(ctx context.Context, docHash string, fragments []*edition.TextFragment, opts Options) (map[uint32]int, bool, error) {
	var lines []*edition.Line
	for _, f := range fragments {
		lines = append(lines, f.Lines()...)
	}

	counts := make(map[uint32]int, len(lines))
	allHit := true
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(countWorkers)
	for _, l := range lines {
		g.Go(func() error {
			key := r.Keyer.OrdersKey(docHash, opts.OrdersKeyOpts(l.ID()))
			if !opts.Refresh {
				if data, hit, err := r.Cache.Get(gctx, key); err == nil && hit {
					if n, err := strconv.Atoi(string(data)); err == nil {
						mu.Lock()
						counts[l.ID()] = n
						mu.Unlock()
						return nil
					}
				}
			}

			enumStart := time.Now()
			observability.Pipeline().OnEnumerateStart(gctx, l.ID())
			n, err := linear.CountOrders(gctx, l, linear.Options{MaxOrders: opts.MaxOrders})
			observability.Pipeline().OnEnumerateComplete(gctx, l.ID(), n, time.Since(enumStart), err)
			if err != nil {
				var tooMany *linear.TooManyOrderingsError
				if !errors.As(err, &tooMany) {
					return lerrors.Classify(err)
				}
			}
			mu.Lock()
			counts[l.ID()] = n
			allHit = false
			mu.Unlock()

			_ = r.Cache.Set(gctx, key, []byte(strconv.Itoa(n)), cache.TTLOrders)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false, err
	}
	return counts, allHit && len(lines) > 0, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
