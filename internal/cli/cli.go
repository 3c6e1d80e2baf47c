// Package cli implements the linea command-line interface.
//
// This package provides commands for rendering manuscript editions as plain
// text or structured trees, enumerating alternative reading orders, managing
// the artifact cache, and keeping a local library of editions. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - text: Render an edition as plain text
//   - tree: Render an edition as a JSON token tree
//   - orders: Enumerate or count alternative reading orders
//   - validate: Check an edition file for structural problems
//   - viz: Render a line's interpretation graph as DOT or SVG
//   - store: Manage the local edition library
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/buildinfo"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/cache"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/config"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/pipeline"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "linea"

// Execute runs the linea CLI and returns an error if any command fails.
// This is the main entry point for the CLI application. Cancelling ctx
// aborts in-flight enumeration and store operations.
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext. Default level is info; --verbose switches to debug.
func Execute(ctx context.Context) error {
	var verbose bool
	var configPath string

	root := &cobra.Command{
		Use:          "linea",
		Short:        "Linea renders manuscript editions from sign interpretation graphs",
		Long:         `Linea is a CLI tool for working with digital manuscript editions. It turns per-line graphs of sign interpretations into readable transcriptions, enumerates alternative reading orders, and manages a local library of edition files.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/linea/config.toml)")

	app := &app{configPath: &configPath}

	root.AddCommand(app.textCommand())
	root.AddCommand(app.treeCommand())
	root.AddCommand(app.ordersCommand())
	root.AddCommand(app.validateCommand())
	root.AddCommand(app.vizCommand())
	root.AddCommand(app.fragmentsCommand())
	root.AddCommand(app.storeCommand())
	root.AddCommand(app.cacheCommand())

	return root.ExecuteContext(ctx)
}

// app holds shared state for all commands.
type app struct {
	configPath *string
}

// loadConfig reads the config file selected by --config.
func (a *app) loadConfig() (config.Config, error) {
	return config.Load(*a.configPath)
}

// newRunner creates a pipeline runner for CLI use. The cache backend comes
// from the config file unless noCache disables caching entirely.
func (a *app) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	c, err := a.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(c, nil, loggerFromContext(ctx)), nil
}

func (a *app) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	switch cfg.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	default:
		dir := cfg.Cache.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
}

// newStore creates the edition store selected by the config file.
func (a *app) newStore(ctx context.Context) (store.Store, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Store.Backend == "mongo" {
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Store.Mongo.URI,
			Database:   cfg.Store.Mongo.Database,
			Collection: cfg.Store.Mongo.Collection,
		})
	}
	return store.NewFileStore(cfg.Store.Dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/linea/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseTypes parses a comma-separated sign-type list into a slice.
func parseTypes(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	types := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			types = append(types, strings.ToUpper(p))
		}
	}
	return types
}

// writeArtifact writes data to path, or stdout when path is empty.
func writeArtifact(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	printFile(path)
	return nil
}
