package commands

import (
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitply/internal/calendar"
	"github.com/Sumatoshi-tech/gitply/internal/plot"
	"github.com/Sumatoshi-tech/gitply/internal/report"
	"github.com/Sumatoshi-tech/gitply/internal/stats"
)

// YearCommand reports a rolling year of daily activity, rendered as a
// contribution-calendar heatmap when plotting is enabled.
type YearCommand struct {
	opts reportOptions

	now func() time.Time
}

// NewYearCommand creates and configures the year command.
func NewYearCommand() *cobra.Command {
	yc := &YearCommand{now: time.Now}

	cobraCmd := &cobra.Command{
		Use:   "year <repository>...",
		Short: "Rolling-year commit summary per contributor",
		Long: `Report the past year of activity on one or more repositories,
bucketed per contributor and calendar day. With --plot, render a
contribution-calendar heatmap per contributor.`,
		Args: cobra.MinimumNArgs(1),
		RunE: yc.run,
	}

	yc.opts.register(cobraCmd)

	return cobraCmd
}

func (yc *YearCommand) run(cmd *cobra.Command, args []string) error {
	if err := yc.opts.resolve(cmd); err != nil {
		return err
	}

	if yc.opts.since == "" {
		yc.opts.since = yc.defaultSince()
	}

	writer, err := yc.opts.writer(report.LayoutAnnual)
	if err != nil {
		return err
	}

	resolver, err := yc.opts.resolver()
	if err != nil {
		return err
	}

	result, err := aggregateRepos(cmd.Context(), resolver, stats.Daily, yc.opts.since, args)
	if err != nil {
		return err
	}

	if result.Empty() {
		slog.Warn("no commits found", "repos", args, "since", yc.opts.since)
	}

	if !yc.opts.noPrint {
		if writeErr := writer.Write(cmd.OutOrStdout(), result); writeErr != nil {
			return writeErr
		}
	}

	if yc.opts.plotOutput != "" {
		return writePlotFile(yc.opts.plotOutput, func(w io.Writer) error {
			return plot.WriteYearPage(w, result)
		})
	}

	return nil
}

// defaultSince aligns the reporting window to the start of the ISO week
// one year back, so the heatmap begins on a Monday column.
func (yc *YearCommand) defaultSince() string {
	yearAgo := yc.now().AddDate(-1, 0, 0)

	return calendar.WeekStart(yearAgo).Format(sinceLayout)
}
