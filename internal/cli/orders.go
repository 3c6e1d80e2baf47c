package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/edition"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/linear"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/pipeline"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/transcript"
)

// ordersCommand creates the reading-order enumeration command.
func (a *app) ordersCommand() *cobra.Command {
	opts := renderOpts{}
	var lineID uint32
	var count bool

	cmd := &cobra.Command{
		Use:   "orders <edition-file>",
		Short: "Enumerate or count alternative reading orders",
		Long: `Enumerate the alternative reading orders a line's interpretation graph
admits, or count them for every line of the edition.

With --line, every order of that line is printed as filtered text. With
--count, only the number of orders per line is reported. Enumeration is
capped per line; lines that exceed the cap report a truncated result.

Examples:
  linea orders edition.json --count
  linea orders edition.json --line 100
  linea orders edition.json --line 100 --max-orders 5000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count == (lineID != 0) {
				return fmt.Errorf("exactly one of --line or --count is required")
			}
			if count {
				return a.runOrderCounts(cmd, args[0], &opts)
			}
			return a.runLineOrders(cmd, args[0], lineID, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().Uint32VarP(&lineID, "line", "l", 0, "enumerate the orders of this line ID")
	cmd.Flags().BoolVarP(&count, "count", "c", false, "count orders for every line")

	return cmd
}

// runOrderCounts counts orders per line through the pipeline so results are
// cached under the document hash.
func (a *app) runOrderCounts(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := a.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := opts.pipelineOptions(input, pipeline.FormatText)
	popts.CountOrders = true
	popts.Logger = logger
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spinner := newSpinner(ctx, "Counting reading orders...")
	spinner.Start()
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Enumeration failed")
		return err
	}
	spinner.Stop()

	ids := make([]uint32, 0, len(result.OrderCounts))
	for id := range result.OrderCounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	printInfo("Reading orders per line")
	for _, id := range ids {
		n := result.OrderCounts[id]
		suffix := ""
		if n >= popts.MaxOrders {
			suffix = " " + StyleWarning.Render("(capped)")
		}
		printKeyValue(fmt.Sprintf("line %d", id), fmt.Sprintf("%d%s", n, suffix))
	}
	printStats(result.Stats.FragmentCount, result.Stats.LineCount, result.Stats.SignCount, result.CacheInfo.OrdersHit)
	return nil
}

// runLineOrders enumerates and prints every order of a single line.
func (a *app) runLineOrders(cmd *cobra.Command, input string, lineID uint32, opts *renderOpts) error {
	ctx := cmd.Context()

	doc, err := edition.ReadDocumentFile(input)
	if err != nil {
		return err
	}
	ed, err := edition.Build(doc)
	if err != nil {
		return err
	}

	var line *edition.Line
	for _, f := range ed.Fragments() {
		for _, l := range f.Lines() {
			if l.ID() == lineID {
				line = l
			}
		}
	}
	if line == nil {
		return fmt.Errorf("line %d not found in edition %q", lineID, ed.Name())
	}

	spinner := newSpinner(ctx, fmt.Sprintf("Enumerating orders of line %s...", line.Name()))
	spinner.Start()
	orders, err := linear.AllOrders(ctx, line, linear.Options{MaxOrders: opts.maxOrders})
	truncated := false
	if err != nil {
		var tooMany *linear.TooManyOrderingsError
		if errors.As(err, &tooMany) {
			truncated = true
		} else {
			spinner.StopWithError("Enumeration failed")
			return err
		}
	}
	spinner.StopWithSuccess(fmt.Sprintf("Found %d reading orders", len(orders)))
	if truncated {
		printWarning("Enumeration capped; rerun with a higher --max-orders to see more")
	}

	popts := opts.pipelineOptions(input, pipeline.FormatText)
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	cfg := popts.FilterConfig()

	for i, o := range orders {
		printKeyValue(fmt.Sprintf("[%d/%d]", i+1, len(orders)), transcript.LineText(o, cfg))
	}
	return nil
}
