// Package commands implements CLI command handlers for gitply.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitply/internal/config"
	"github.com/Sumatoshi-tech/gitply/internal/gitlog"
	"github.com/Sumatoshi-tech/gitply/internal/identity"
	"github.com/Sumatoshi-tech/gitply/internal/report"
	"github.com/Sumatoshi-tech/gitply/internal/stats"
)

// reportOptions are the flags shared by every reporting command.
// Values left unset fall back to the loaded configuration.
type reportOptions struct {
	configPath string
	format     string
	userMap    string
	since      string
	plotOutput string
	noPrint    bool
	noColor    bool
}

func (o *reportOptions) register(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringVar(&o.configPath, "config", "", "config file (default: .gitply.yaml in CWD or $HOME)")
	flags.StringVarP(&o.format, "format", "f", config.DefaultFormat, "report format (text, table, yaml, json)")
	flags.StringVar(&o.userMap, "users", "", "file mapping author emails to display names")
	flags.StringVar(&o.since, "since", "", "only include commits after this date (YYYY-MM-DD)")
	flags.StringVar(&o.plotOutput, "plot", "", "write charts to this HTML file")
	flags.BoolVar(&o.noPrint, "noprint", false, "suppress the textual report")
	flags.BoolVar(&o.noColor, "no-color", false, "disable colored output")
}

// resolve loads the configuration and fills in every option whose flag
// was not set explicitly.
func (o *reportOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()

	if !flags.Changed("format") && cfg.Format != "" {
		o.format = cfg.Format
	}

	if !flags.Changed("users") {
		o.userMap = cfg.UserMap
	}

	if !flags.Changed("since") {
		o.since = cfg.Since
	}

	if !flags.Changed("plot") {
		o.plotOutput = cfg.Plot.Output
	}

	if !flags.Changed("noprint") {
		o.noPrint = cfg.Plot.NoPrint
	}

	if !flags.Changed("no-color") {
		o.noColor = cfg.NoColor
	}

	return nil
}

// writer builds the report writer for the selected format and the
// command's text layout.
func (o *reportOptions) writer(layout report.Layout) (*report.Writer, error) {
	format, err := report.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}

	return &report.Writer{Format: format, NoColor: o.noColor, Layout: layout}, nil
}

// resolver builds the identity resolver: the file-backed map when one
// was configured, otherwise the email itself is the identity.
func (o *reportOptions) resolver() (identity.Resolver, error) {
	if o.userMap == "" {
		return identity.NullResolver{}, nil
	}

	return identity.NewFileResolver(o.userMap)
}

// aggregateRepos folds the history of every listed repository into one
// result. Repositories are processed sequentially; a source failure in
// any of them aborts the whole pass.
func aggregateRepos(
	ctx context.Context,
	resolver identity.Resolver,
	granularity stats.Granularity,
	since string,
	repos []string,
) (*stats.Result, error) {
	acc := stats.NewAccumulator(resolver, granularity)

	for _, repo := range repos {
		src, err := gitlog.NewCLISource(ctx, repo, gitlog.SourceOptions{Since: since})
		if err != nil {
			return nil, err
		}

		acc.Consume(gitlog.ParseCommits(ctx, src.Lines()))

		if waitErr := src.Wait(); waitErr != nil {
			return nil, fmt.Errorf("aggregate %s: %w", repo, waitErr)
		}
	}

	return acc.Result(), nil
}

// writePlotFile renders a chart page into a freshly created file.
func writePlotFile(path string, render func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}

	if renderErr := render(file); renderErr != nil {
		file.Close()

		return renderErr
	}

	if closeErr := file.Close(); closeErr != nil {
		return fmt.Errorf("close plot file: %w", closeErr)
	}

	return nil
}
