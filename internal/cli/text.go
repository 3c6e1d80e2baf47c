package cli

import (
	"github.com/spf13/cobra"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/pipeline"
)

// renderOpts holds the command-line flags shared by the text and tree
// commands. These options control fragment selection, filtering and caching.
type renderOpts struct {
	fragment      uint32 // restrict output to one fragment (0 = all)
	reconstructed bool   // include reconstructed readings
	types         string // comma-separated sign types to include
	allOrders     bool   // emit every reading order instead of the default
	maxOrders     int    // enumeration cap per line
	output        string // output file path (stdout if empty)
	noCache       bool   // disable the artifact cache
	refresh       bool   // bypass cached artifacts
}

func (o *renderOpts) register(cmd *cobra.Command) {
	cmd.Flags().Uint32VarP(&o.fragment, "fragment", "f", 0, "render only this text fragment ID")
	cmd.Flags().BoolVar(&o.reconstructed, "reconstructed", false, "include reconstructed readings")
	cmd.Flags().StringVarP(&o.types, "types", "t", "", "comma-separated sign types to include (e.g. LETTER,SPACE,DAMAGE)")
	cmd.Flags().IntVar(&o.maxOrders, "max-orders", 0, "cap on reading orders per line")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "bypass cached artifacts")
}

func (o *renderOpts) pipelineOptions(input, format string) pipeline.Options {
	return pipeline.Options{
		Input:                input,
		Fragment:             o.fragment,
		IncludeReconstructed: o.reconstructed,
		SignTypes:            parseTypes(o.types),
		AllOrders:            o.allOrders,
		MaxOrders:            o.maxOrders,
		Formats:              []string{format},
		Refresh:              o.refresh,
	}
}

// textCommand creates the text rendering command.
func (a *app) textCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "text <edition-file>",
		Short: "Render an edition as plain text",
		Long: `Render an edition file as a plain-text transcription.

Each fragment starts with its name; each line is prefixed by its display
name. By default reconstructed readings are dropped and only letters and
spaces are printed.

Examples:
  linea text edition.json
  linea text edition.json --fragment 10
  linea text edition.json --reconstructed --types LETTER,SPACE,DAMAGE
  linea text edition.json --all-orders --max-orders 100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner, err := a.newRunner(ctx, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(logger)
			popts := opts.pipelineOptions(args[0], pipeline.FormatText)
			popts.Logger = logger
			result, err := runner.Execute(ctx, popts)
			if err != nil {
				return err
			}
			prog.done("Rendered transcription")
			printStats(result.Stats.FragmentCount, result.Stats.LineCount, result.Stats.SignCount, result.CacheInfo.ArtifactHit)

			return writeArtifact(opts.output, result.Artifacts[pipeline.FormatText])
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.allOrders, "all-orders", false, "emit every reading order of each line")

	return cmd
}
