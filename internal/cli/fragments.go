package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/edition"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/transcript"
)

// fragmentsCommand creates the interactive fragment browser command.
func (a *app) fragmentsCommand() *cobra.Command {
	opts := renderOpts{}
	var plain bool

	cmd := &cobra.Command{
		Use:   "fragments <edition-file>",
		Short: "Browse the fragments of an edition",
		Long: `Browse the text fragments of an edition interactively and print the
selected fragment as plain text. With --plain, just list the fragments.

Examples:
  linea fragments edition.json
  linea fragments edition.json --plain`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := edition.ReadDocumentFile(args[0])
			if err != nil {
				return err
			}
			ed, err := edition.Build(doc)
			if err != nil {
				return err
			}

			if plain {
				printInfo("Fragments of %q", ed.Name())
				for _, f := range ed.Fragments() {
					printKeyValue(fmt.Sprintf("%d", f.ID()), fmt.Sprintf("%s%s", f.Name(), StyleDim.Render(lineCountLabel(len(f.Lines())))))
				}
				return nil
			}

			model := NewFragmentListModel(ed.Fragments())
			program := tea.NewProgram(model)
			final, err := program.Run()
			if err != nil {
				return fmt.Errorf("run fragment browser: %w", err)
			}

			result, ok := final.(FragmentListModel)
			if !ok || result.Selected == nil {
				return nil // quit without selection
			}

			cfg := transcript.DefaultFilter()
			cfg.ExcludeReconstructed = !opts.reconstructed
			fmt.Print(transcript.PlainText(result.Selected, transcript.DefaultOrders, cfg))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "list fragments without the interactive browser")
	cmd.Flags().BoolVar(&opts.reconstructed, "reconstructed", false, "include reconstructed readings")

	return cmd
}
