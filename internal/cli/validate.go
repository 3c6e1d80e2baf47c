package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/edition"
)

// validateCommand creates the edition validation command.
func (a *app) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <edition-file>",
		Short: "Check an edition file for structural problems",
		Long: `Check an edition file for structural problems: missing required fields,
dangling interpretation references, duplicate IDs and cyclic reading graphs.

The command exits non-zero when validation fails and reports where in the
edition the problem sits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			doc, err := edition.ReadDocumentFile(args[0])
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			ed, err := edition.Build(doc)
			if err != nil {
				var malformed *edition.MalformedGraphError
				if errors.As(err, &malformed) {
					printError("Edition is malformed")
					printDetail("%v", malformed)
					return err
				}
				return err
			}
			prog.done("Validated edition")

			fragments := ed.Fragments()
			lines, signs := 0, 0
			for _, f := range fragments {
				lines += len(f.Lines())
				for _, l := range f.Lines() {
					signs += len(l.Signs())
				}
			}

			printSuccess("Edition %q is well-formed", ed.Name())
			printStats(len(fragments), lines, signs, false)
			return nil
		},
	}
}
