package commands

import (
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitply/internal/plot"
	"github.com/Sumatoshi-tech/gitply/internal/report"
	"github.com/Sumatoshi-tech/gitply/internal/stats"
)

// weeklyLookbackDays is the default reporting window of the weekly
// command: the past seven days.
const weeklyLookbackDays = 7

// sinceLayout is the date format passed to the git subprocess.
const sinceLayout = "2006-01-02"

// WeeklyCommand reports the past week of activity bucketed by calendar
// day.
type WeeklyCommand struct {
	opts reportOptions

	// now is injectable for tests.
	now func() time.Time
}

// NewWeeklyCommand creates and configures the weekly command.
func NewWeeklyCommand() *cobra.Command {
	wc := &WeeklyCommand{now: time.Now}

	cobraCmd := &cobra.Command{
		Use:   "weekly <repository>...",
		Short: "Daily activity summary for the past week",
		Long: `Report the past seven days of activity on one or more
repositories, bucketed per contributor and calendar day.`,
		Args: cobra.MinimumNArgs(1),
		RunE: wc.run,
	}

	wc.opts.register(cobraCmd)

	return cobraCmd
}

func (wc *WeeklyCommand) run(cmd *cobra.Command, args []string) error {
	if err := wc.opts.resolve(cmd); err != nil {
		return err
	}

	if wc.opts.since == "" {
		wc.opts.since = wc.defaultSince()
	}

	writer, err := wc.opts.writer(report.LayoutWeekly)
	if err != nil {
		return err
	}

	resolver, err := wc.opts.resolver()
	if err != nil {
		return err
	}

	result, err := aggregateRepos(cmd.Context(), resolver, stats.Daily, wc.opts.since, args)
	if err != nil {
		return err
	}

	if result.Empty() {
		slog.Warn("no commits found", "repos", args, "since", wc.opts.since)
	}

	if !wc.opts.noPrint {
		if writeErr := writer.Write(cmd.OutOrStdout(), result); writeErr != nil {
			return writeErr
		}
	}

	if wc.opts.plotOutput != "" {
		return writePlotFile(wc.opts.plotOutput, func(w io.Writer) error {
			return plot.WriteDailyPage(w, result)
		})
	}

	return nil
}

// defaultSince is the window start when --since is not given: seven
// days before now.
func (wc *WeeklyCommand) defaultSince() string {
	weekAgo := wc.now().AddDate(0, 0, -weeklyLookbackDays)

	return weekAgo.Format(sinceLayout)
}
