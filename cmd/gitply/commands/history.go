package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitply/internal/plot"
	"github.com/Sumatoshi-tech/gitply/internal/report"
	"github.com/Sumatoshi-tech/gitply/internal/stats"
)

// HistoryCommand reports per-user contribution history bucketed by ISO
// week, with inactivity gaps.
type HistoryCommand struct {
	opts reportOptions
}

// NewHistoryCommand creates and configures the history command.
func NewHistoryCommand() *cobra.Command {
	hc := &HistoryCommand{}

	cobraCmd := &cobra.Command{
		Use:   "history <repository>...",
		Short: "Per-user weekly contribution history with gap detection",
		Long: `Walk the commit log of one or more repositories and report the
number of commits, inserted and deleted lines per contributor and ISO
week. Silent stretches between active weeks are reported as gaps.`,
		Args: cobra.MinimumNArgs(1),
		RunE: hc.run,
	}

	hc.opts.register(cobraCmd)

	return cobraCmd
}

func (hc *HistoryCommand) run(cmd *cobra.Command, args []string) error {
	if err := hc.opts.resolve(cmd); err != nil {
		return err
	}

	writer, err := hc.opts.writer(report.LayoutHistory)
	if err != nil {
		return err
	}

	resolver, err := hc.opts.resolver()
	if err != nil {
		return err
	}

	result, err := aggregateRepos(cmd.Context(), resolver, stats.Weekly, hc.opts.since, args)
	if err != nil {
		return err
	}

	if result.Empty() {
		slog.Warn("no commits found", "repos", args)
	}

	if !hc.opts.noPrint {
		if writeErr := writer.Write(cmd.OutOrStdout(), result); writeErr != nil {
			return writeErr
		}
	}

	if hc.opts.plotOutput != "" {
		return writePlotFile(hc.opts.plotOutput, func(w io.Writer) error {
			return plot.WriteHistoryPage(w, result)
		})
	}

	return nil
}
