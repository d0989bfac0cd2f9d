package commands

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitply/internal/identity"
	"github.com/Sumatoshi-tech/gitply/internal/report"
	"github.com/Sumatoshi-tech/gitply/internal/stats"
)

func reportingCommands() map[string]*cobra.Command {
	return map[string]*cobra.Command{
		"history": NewHistoryCommand(),
		"weekly":  NewWeeklyCommand(),
		"year":    NewYearCommand(),
	}
}

func TestReportingCommands_FlagsRegistered(t *testing.T) {
	t.Parallel()

	flagNames := []string{
		"config",
		"format",
		"users",
		"since",
		"plot",
		"noprint",
		"no-color",
	}

	for name, cmd := range reportingCommands() {
		for _, flagName := range flagNames {
			flag := cmd.Flags().Lookup(flagName)
			require.NotNil(t, flag, "%s --%s should be registered", name, flagName)
		}
	}
}

func TestReportingCommands_RequireRepositoryArg(t *testing.T) {
	t.Parallel()

	for name, cmd := range reportingCommands() {
		err := cmd.Args(cmd, []string{})
		assert.Error(t, err, "%s should reject zero arguments", name)

		err = cmd.Args(cmd, []string{"some/repo"})
		assert.NoError(t, err, "%s should accept one repository", name)
	}
}

func TestReportOptions_Resolve_FlagBeatsConfig(t *testing.T) {
	t.Parallel()

	configPath := writeConfigFile(t, "format: json\nsince: \"2024-01-01\"\n")

	cmd := NewHistoryCommand()
	require.NoError(t, cmd.Flags().Set("config", configPath))
	require.NoError(t, cmd.Flags().Set("format", "table"))

	// The flag set attached to cmd carries the Changed state.
	opts := &reportOptions{configPath: configPath, format: "table"}
	require.NoError(t, opts.resolve(cmd))

	assert.Equal(t, "table", opts.format)
	assert.Equal(t, "2024-01-01", opts.since)
}

func TestReportOptions_Resolve_ConfigFillsUnsetFlags(t *testing.T) {
	t.Parallel()

	configPath := writeConfigFile(t, "format: yaml\nno_color: true\n")

	cmd := NewHistoryCommand()
	require.NoError(t, cmd.Flags().Set("config", configPath))

	opts := &reportOptions{configPath: configPath}
	require.NoError(t, opts.resolve(cmd))

	assert.Equal(t, "yaml", opts.format)
	assert.True(t, opts.noColor)
}

func TestReportOptions_Resolve_InvalidConfigFormat(t *testing.T) {
	t.Parallel()

	configPath := writeConfigFile(t, "format: powerpoint\n")

	cmd := NewHistoryCommand()
	require.NoError(t, cmd.Flags().Set("config", configPath))

	opts := &reportOptions{configPath: configPath}
	err := opts.resolve(cmd)
	require.Error(t, err)
}

func TestReportOptions_Writer(t *testing.T) {
	t.Parallel()

	opts := &reportOptions{format: "json", noColor: true}

	writer, err := opts.writer(report.LayoutAnnual)
	require.NoError(t, err)
	assert.Equal(t, report.FormatJSON, writer.Format)
	assert.Equal(t, report.LayoutAnnual, writer.Layout)
	assert.True(t, writer.NoColor)
}

func TestReportOptions_Writer_UnknownFormat(t *testing.T) {
	t.Parallel()

	opts := &reportOptions{format: "csv"}

	_, err := opts.writer(report.LayoutHistory)
	require.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestReportOptions_Resolver_DefaultsToNull(t *testing.T) {
	t.Parallel()

	opts := &reportOptions{}

	resolver, err := opts.resolver()
	require.NoError(t, err)
	assert.IsType(t, identity.NullResolver{}, resolver)
}

func TestReportOptions_Resolver_FileBacked(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "users.txt")
	require.NoError(t, os.WriteFile(path, []byte("alice@example.com Alice\n"), 0o600))

	opts := &reportOptions{userMap: path}

	resolver, err := opts.resolver()
	require.NoError(t, err)
	assert.Equal(t, "Alice", resolver.Resolve("alice@example.com"))
}

func TestReportOptions_Resolver_MissingFile(t *testing.T) {
	t.Parallel()

	opts := &reportOptions{userMap: filepath.Join(t.TempDir(), "absent.txt")}

	_, err := opts.resolver()
	require.Error(t, err)
}

func TestAggregateRepos_MissingRepository(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "no-such-repo")

	_, err := aggregateRepos(context.Background(), identity.NullResolver{}, stats.Weekly, "", []string{missing})
	require.Error(t, err)
}

func TestWritePlotFile_WritesRenderedContent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plot.html")

	err := writePlotFile(path, func(w io.Writer) error {
		_, writeErr := w.Write([]byte("<html></html>"))

		return writeErr
	})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(content))
}

func TestWritePlotFile_RenderErrorPropagates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plot.html")
	renderErr := errors.New("render failed")

	err := writePlotFile(path, func(io.Writer) error { return renderErr })
	require.ErrorIs(t, err, renderErr)
}

func TestWritePlotFile_UnwritablePath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing-dir", "plot.html")

	err := writePlotFile(path, func(io.Writer) error { return nil })
	require.Error(t, err)
}

func TestWeeklyCommand_DefaultSince(t *testing.T) {
	t.Parallel()

	wc := &WeeklyCommand{now: func() time.Time {
		return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	}}

	assert.Equal(t, "2024-03-08", wc.defaultSince())
}

func TestYearCommand_DefaultSince(t *testing.T) {
	t.Parallel()

	// 2023-03-15 is a Wednesday; the window snaps back to Monday the 13th.
	yc := &YearCommand{now: func() time.Time {
		return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	}}

	assert.Equal(t, "2023-03-13", yc.defaultSince())
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".gitply.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}
