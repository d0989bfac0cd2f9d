// Package report renders aggregation results for humans and machines.
// The text format follows the classic per-user history layout; table,
// yaml and json formats serve terminals and downstream tooling.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/gitply/internal/stats"
)

// Format selects the report output encoding.
type Format string

// Supported output formats.
const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
)

// ErrUnknownFormat is returned for format names outside the supported
// set.
var ErrUnknownFormat = errors.New("report: unknown format")

// ParseFormat validates a format name from a flag or config value.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatText, FormatTable, FormatYAML, FormatJSON:
		return Format(name), nil
	default:
		return "", fmt.Errorf("%w: %q (want text, table, yaml or json)", ErrUnknownFormat, name)
	}
}

// Date layouts used by the text renderers.
const (
	dayLayout     = "Mon, Jan 02"
	isoDateLayout = "2006-01-02"
)

// Layout selects the heading and row shape of the text format. The
// serial formats are layout-independent.
type Layout int

// Text layouts, one per reporting command.
const (
	// LayoutHistory prints weekly rows with line counts and gaps.
	LayoutHistory Layout = iota
	// LayoutWeekly prints daily rows with line counts.
	LayoutWeekly
	// LayoutAnnual prints daily rows with commit counts only.
	LayoutAnnual
)

// Writer renders results in a fixed format.
type Writer struct {
	Format  Format
	NoColor bool
	Layout  Layout
}

// Document is the marshalable form of a result, shared by the yaml and
// json formats.
type Document struct {
	Granularity string       `yaml:"granularity" json:"granularity"`
	Begin       string       `yaml:"begin,omitempty" json:"begin,omitempty"`
	End         string       `yaml:"end,omitempty" json:"end,omitempty"`
	Users       []UserReport `yaml:"users" json:"users"`
}

// UserReport groups one identity's periods, gaps and totals.
type UserReport struct {
	Name    string         `yaml:"name" json:"name"`
	Periods []PeriodReport `yaml:"periods" json:"periods"`
	Gaps    []GapReport    `yaml:"gaps,omitempty" json:"gaps,omitempty"`
	Totals  Totals         `yaml:"totals" json:"totals"`
}

// PeriodReport is one bucket row. Weekly rows carry year/week, daily
// rows carry the date.
type PeriodReport struct {
	Year       int    `yaml:"year,omitempty" json:"year,omitempty"`
	Week       int    `yaml:"week,omitempty" json:"week,omitempty"`
	Date       string `yaml:"date,omitempty" json:"date,omitempty"`
	Start      string `yaml:"start" json:"start"`
	Commits    int    `yaml:"commits" json:"commits"`
	Insertions int    `yaml:"insertions" json:"insertions"`
	Deletions  int    `yaml:"deletions" json:"deletions"`
}

// GapReport is one run of silent weeks.
type GapReport struct {
	After  string `yaml:"after" json:"after"`
	Before string `yaml:"before" json:"before"`
	Weeks  int    `yaml:"weeks" json:"weeks"`
}

// Totals sums a user's activity across all periods.
type Totals struct {
	Commits    int `yaml:"commits" json:"commits"`
	Insertions int `yaml:"insertions" json:"insertions"`
	Deletions  int `yaml:"deletions" json:"deletions"`
}

// BuildDocument converts a result into its marshalable form.
func BuildDocument(result *stats.Result) Document {
	doc := Document{Granularity: result.Granularity.String()}

	if !result.MinDate.IsZero() {
		doc.Begin = result.MinDate.Format(isoDateLayout)
		doc.End = result.MaxDate.Format(isoDateLayout)
	}

	for _, user := range result.Users() {
		userReport := UserReport{Name: user}

		for _, bucket := range result.UserBuckets(user) {
			row := PeriodReport{
				Start:      bucket.PeriodStart.Format(isoDateLayout),
				Commits:    bucket.Commits,
				Insertions: bucket.Insertions,
				Deletions:  bucket.Deletions,
			}

			if result.Granularity == stats.Weekly {
				row.Year = bucket.Period.Year
				row.Week = bucket.Period.Week
			} else {
				row.Date = bucket.PeriodStart.Format(isoDateLayout)
			}

			userReport.Periods = append(userReport.Periods, row)

			userReport.Totals.Commits += bucket.Commits
			userReport.Totals.Insertions += bucket.Insertions
			userReport.Totals.Deletions += bucket.Deletions
		}

		for _, gap := range result.Gaps(user) {
			userReport.Gaps = append(userReport.Gaps, GapReport{
				After:  gap.After.Format(isoDateLayout),
				Before: gap.Before.Format(isoDateLayout),
				Weeks:  gap.Weeks,
			})
		}

		doc.Users = append(doc.Users, userReport)
	}

	return doc
}

// Write renders the result to out in the writer's format.
func (w *Writer) Write(out io.Writer, result *stats.Result) error {
	switch w.Format {
	case FormatYAML:
		return w.writeYAML(out, result)
	case FormatJSON:
		return w.writeJSON(out, result)
	case FormatTable:
		return w.writeTable(out, result)
	case FormatText:
		return w.writeText(out, result)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, w.Format)
	}
}

func (w *Writer) writeYAML(out io.Writer, result *stats.Result) error {
	enc := yaml.NewEncoder(out)
	defer enc.Close()

	if err := enc.Encode(BuildDocument(result)); err != nil {
		return fmt.Errorf("report: encode yaml: %w", err)
	}

	return nil
}

func (w *Writer) writeJSON(out io.Writer, result *stats.Result) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	if err := enc.Encode(BuildDocument(result)); err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}

	return nil
}

func (w *Writer) writeText(out io.Writer, result *stats.Result) error {
	plus := color.New(color.FgGreen)
	minus := color.New(color.FgRed)

	if w.NoColor {
		plus.DisableColor()
		minus.DisableColor()
	}

	title := "History"

	switch w.Layout {
	case LayoutWeekly:
		title = "Weekly report"
	case LayoutAnnual:
		title = "Annual summary"
	case LayoutHistory:
	}

	for _, user := range result.Users() {
		fmt.Fprintf(out, "%s for %s\n", title, user)

		gaps := result.Gaps(user)
		gapIndex := 0

		for _, bucket := range result.UserBuckets(user) {
			if gapIndex < len(gaps) && gaps[gapIndex].Before.Equal(bucket.PeriodStart) {
				weeks := gaps[gapIndex].Weeks

				plural := ""
				if weeks > 1 {
					plural = "s"
				}

				fmt.Fprintf(out, "  -- Gap of %d week%s\n", weeks, plural)
				gapIndex++
			}

			label := periodLabel(result.Granularity, bucket)

			if w.Layout == LayoutAnnual {
				fmt.Fprintf(out, "  %s: %2d commits\n", label, bucket.Commits)

				continue
			}

			fmt.Fprintf(out, "  %s: %2d commits, %s %s\n",
				label,
				bucket.Commits,
				plus.Sprintf("+%-4d", bucket.Insertions),
				minus.Sprintf("-%-4d", bucket.Deletions))
		}

		fmt.Fprintln(out)
	}

	return nil
}

func periodLabel(granularity stats.Granularity, bucket stats.UserBucket) string {
	if granularity == stats.Daily {
		return bucket.PeriodStart.Format(dayLayout)
	}

	return fmt.Sprintf("%d, week %2d", bucket.Period.Year, bucket.Period.Week)
}

func (w *Writer) writeTable(out io.Writer, result *stats.Result) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(out)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"User", "Period", "Commits", "Added", "Deleted"})

	for _, user := range result.Users() {
		totals := Totals{}

		for _, bucket := range result.UserBuckets(user) {
			tbl.AppendRow(table.Row{
				user,
				periodLabel(result.Granularity, bucket),
				bucket.Commits,
				bucket.Insertions,
				bucket.Deletions,
			})

			totals.Commits += bucket.Commits
			totals.Insertions += bucket.Insertions
			totals.Deletions += bucket.Deletions
		}

		tbl.AppendFooter(table.Row{
			user,
			"total",
			humanize.Comma(int64(totals.Commits)),
			humanize.Comma(int64(totals.Insertions)),
			humanize.Comma(int64(totals.Deletions)),
		})
	}

	tbl.Render()

	return nil
}
