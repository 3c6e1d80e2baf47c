package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/edition"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/store"
)

// storeCommand creates the edition library command.
func (a *app) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the local edition library",
		Long: `Manage the library of stored edition files.

The library keeps raw edition documents under stable IDs so repeated runs
don't need the original file. The backend (local files or MongoDB) is
selected in the config file.`,
	}

	cmd.AddCommand(a.storeSaveCommand())
	cmd.AddCommand(a.storeListCommand())
	cmd.AddCommand(a.storeGetCommand())
	cmd.AddCommand(a.storeDeleteCommand())

	return cmd
}

// storeSaveCommand creates the "store save" subcommand.
func (a *app) storeSaveCommand() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "save <edition-file>",
		Short: "Save an edition file to the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			doc, err := edition.ReadDocumentFile(args[0])
			if err != nil {
				return err
			}
			// Reject malformed editions before they enter the library.
			if _, err := edition.Build(doc); err != nil {
				return fmt.Errorf("refusing to store malformed edition: %w", err)
			}

			s, err := a.newStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			rec := store.NewRecord(id, doc)
			if err := s.Put(ctx, rec); err != nil {
				return err
			}
			printSuccess("Saved edition %q", rec.Name)
			printKeyValue("id", rec.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "record ID (random UUID if empty)")
	return cmd
}

// storeListCommand creates the "store list" subcommand.
func (a *app) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored editions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := a.newStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			summaries, err := s.List(ctx)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				printInfo("Library is empty")
				return nil
			}
			for _, sum := range summaries {
				printKeyValue(sum.ID, fmt.Sprintf("%s %s", sum.Name, StyleDim.Render(sum.SavedAt.Format("2006-01-02 15:04"))))
			}
			return nil
		},
	}
}

// storeGetCommand creates the "store get" subcommand.
func (a *app) storeGetCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Write a stored edition back out as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := a.newStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			rec, err := s.Get(ctx, args[0])
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					printError("No edition with ID %q", args[0])
				}
				return err
			}

			data, err := edition.MarshalDocument(rec.Document)
			if err != nil {
				return err
			}
			if output == "" {
				_, err := os.Stdout.Write(data)
				return err
			}
			return writeArtifact(output, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

// storeDeleteCommand creates the "store delete" subcommand.
func (a *app) storeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a stored edition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := a.newStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Delete(ctx, args[0]); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					printError("No edition with ID %q", args[0])
				}
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}
