package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/edition"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/pipeline"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/viz"
)

// vizCommand creates the graph visualization command.
func (a *app) vizCommand() *cobra.Command {
	opts := renderOpts{}
	var lineID uint32
	var detailed bool

	cmd := &cobra.Command{
		Use:   "viz <edition-file>",
		Short: "Render a line's interpretation graph as DOT or SVG",
		Long: `Render the sign interpretation graph of one line in Graphviz DOT format,
or as SVG/PNG when the output file ends in .svg or .png. Reconstructed
interpretations are drawn dashed.

Examples:
  linea viz edition.json --line 100
  linea viz edition.json --line 100 -o line100.dot
  linea viz edition.json --line 100 -o line100.svg --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner, err := a.newRunner(ctx, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			popts := opts.pipelineOptions(args[0], pipeline.FormatDOT)
			popts.Line = lineID
			popts.Logger = logger
			// Detailed labels are cheap to compute and rarely reused.
			if detailed {
				popts.Refresh = true
			}
			result, err := runner.Execute(ctx, popts)
			if err != nil {
				return err
			}

			dot := result.Artifacts[pipeline.FormatDOT]
			if detailed {
				line, err := findEditionLine(result, lineID)
				if err != nil {
					return err
				}
				dot = []byte(viz.ToDOT(line, viz.Options{Detailed: true}))
			}

			switch strings.ToLower(filepath.Ext(opts.output)) {
			case ".svg":
				svg, err := viz.RenderSVG(string(dot))
				if err != nil {
					return fmt.Errorf("render SVG: %w", err)
				}
				return writeArtifact(opts.output, svg)
			case ".png":
				png, err := viz.RenderPNG(string(dot))
				if err != nil {
					return fmt.Errorf("render PNG: %w", err)
				}
				return writeArtifact(opts.output, png)
			default:
				return writeArtifact(opts.output, dot)
			}
		},
	}

	opts.register(cmd)
	cmd.Flags().Uint32VarP(&lineID, "line", "l", 0, "line ID to visualize (required)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include attribute IDs in node labels")
	_ = cmd.MarkFlagRequired("line")

	return cmd
}

func findEditionLine(result *pipeline.Result, lineID uint32) (*edition.Line, error) {
	for _, f := range result.Edition.Fragments() {
		for _, l := range f.Lines() {
			if l.ID() == lineID {
				return l, nil
			}
		}
	}
	return nil, fmt.Errorf("line %d not found", lineID)
}
