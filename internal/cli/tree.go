package cli

import (
	"github.com/spf13/cobra"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/pipeline"
)

// treeCommand creates the structured tree rendering command.
func (a *app) treeCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "tree <edition-file>",
		Short: "Render an edition as a JSON token tree",
		Long: `Render an edition file as a JSON tree of fragments, lines and tokens.

The same filtering rules as the text command apply, but fragment and line
boundaries are kept as structure instead of text markers.

Examples:
  linea tree edition.json
  linea tree edition.json --fragment 10 -o col1.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner, err := a.newRunner(ctx, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			popts := opts.pipelineOptions(args[0], pipeline.FormatJSON)
			popts.Logger = logger
			result, err := runner.Execute(ctx, popts)
			if err != nil {
				return err
			}
			printStats(result.Stats.FragmentCount, result.Stats.LineCount, result.Stats.SignCount, result.CacheInfo.ArtifactHit)

			return writeArtifact(opts.output, result.Artifacts[pipeline.FormatJSON])
		},
	}

	opts.register(cmd)

	return cmd
}
