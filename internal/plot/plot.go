// Package plot renders aggregation results as HTML chart pages. Each
// user gets one chart; weekly history uses the calendar ordinal table
// as its x-axis so multi-year spans stay contiguous.
package plot

import (
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/gitply/internal/calendar"
	"github.com/Sumatoshi-tech/gitply/internal/stats"
)

// Series colors: additions green, deletions red, matching the usual
// diff convention.
const (
	colorAdditions = "#2f9e44"
	colorDeletions = "#e03131"

	chartWidth  = "1400px"
	chartHeight = "400px"

	dayLayout = "Jan 02"

	daysPerWeek = 7
)

// heatmapColors is the GitHub-style green ramp for the year summary.
var heatmapColors = []string{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"}

// weekdayLabels index weekdays Monday-first, matching ISO weeks.
var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WriteHistoryPage renders one stacked activity chart per user across
// the full observed week range: insertion and deletion bars with a
// commit-count line overlay.
func WriteHistoryPage(w io.Writer, result *stats.Result) error {
	page := components.NewPage()
	page.PageTitle = "gitply history"

	if !result.Empty() {
		minYear, firstWeek := result.MinDate.ISOWeek()
		maxYear, _ := result.MaxDate.ISOWeek()

		table := calendar.NewOrdinalTable(minYear, maxYear)
		labels := table.Labels(firstWeek)

		for _, user := range result.Users() {
			page.AddCharts(historyChart(result, table, labels, user))
		}
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("plot: render history page: %w", err)
	}

	return nil
}

func historyChart(result *stats.Result, table *calendar.OrdinalTable, labels []string, user string) *charts.Bar {
	additions := make([]opts.BarData, len(labels))
	deletions := make([]opts.BarData, len(labels))
	commits := make([]opts.LineData, len(labels))

	for i := range labels {
		additions[i] = opts.BarData{Value: 0}
		deletions[i] = opts.BarData{Value: 0}
		commits[i] = opts.LineData{Value: 0}
	}

	for _, bucket := range result.UserBuckets(user) {
		ord, err := table.Ordinal(bucket.Period.Year, bucket.Period.Week)
		if err != nil {
			continue
		}

		additions[ord] = opts.BarData{Value: bucket.Insertions}
		deletions[ord] = opts.BarData{Value: bucket.Deletions}
		commits[ord] = opts.LineData{Value: bucket.Commits}
	}

	bar := newActivityBar(fmt.Sprintf("Modification history for %s", user), "Week number")
	bar.SetXAxis(labels)
	addActivitySeries(bar, additions, deletions)

	line := charts.NewLine()
	line.SetXAxis(labels)
	line.AddSeries("Commits", commits)
	bar.Overlap(line)

	return bar
}

// WriteDailyPage renders one chart per user with a bar per calendar
// day across the observed date range.
func WriteDailyPage(w io.Writer, result *stats.Result) error {
	page := components.NewPage()
	page.PageTitle = "gitply weekly report"

	if !result.Empty() {
		labels, offsets := dayAxis(result.MinDate, result.MaxDate)

		for _, user := range result.Users() {
			page.AddCharts(dailyChart(result, labels, offsets, user))
		}
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("plot: render daily page: %w", err)
	}

	return nil
}

func dayAxis(first, last time.Time) ([]string, map[time.Time]int) {
	var labels []string

	offsets := make(map[time.Time]int)

	for cur := first; !cur.After(last); cur = cur.AddDate(0, 0, 1) {
		offsets[cur] = len(labels)
		labels = append(labels, cur.Format(dayLayout))
	}

	return labels, offsets
}

func dailyChart(result *stats.Result, labels []string, offsets map[time.Time]int, user string) *charts.Bar {
	additions := make([]opts.BarData, len(labels))
	deletions := make([]opts.BarData, len(labels))
	commits := make([]opts.LineData, len(labels))

	for i := range labels {
		additions[i] = opts.BarData{Value: 0}
		deletions[i] = opts.BarData{Value: 0}
		commits[i] = opts.LineData{Value: 0}
	}

	for _, bucket := range result.UserBuckets(user) {
		pos, ok := offsets[bucket.PeriodStart]
		if !ok {
			continue
		}

		additions[pos] = opts.BarData{Value: bucket.Insertions}
		deletions[pos] = opts.BarData{Value: bucket.Deletions}
		commits[pos] = opts.LineData{Value: bucket.Commits}
	}

	bar := newActivityBar(fmt.Sprintf("Weekly report for %s", user), "Day")
	bar.SetXAxis(labels)
	addActivitySeries(bar, additions, deletions)

	line := charts.NewLine()
	line.SetXAxis(labels)
	line.AddSeries("Commits", commits)
	bar.Overlap(line)

	return bar
}

// WriteYearPage renders one week-by-weekday commit heatmap per user
// from a daily-granularity result.
func WriteYearPage(w io.Writer, result *stats.Result) error {
	page := components.NewPage()
	page.PageTitle = "gitply year summary"

	if !result.Empty() {
		minYear, firstWeek := result.MinDate.ISOWeek()
		maxYear, _ := result.MaxDate.ISOWeek()

		table := calendar.NewOrdinalTable(minYear, maxYear)
		labels := table.Labels(firstWeek)

		for _, user := range result.Users() {
			page.AddCharts(yearHeatmap(result, table, labels, user))
		}
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("plot: render year page: %w", err)
	}

	return nil
}

func yearHeatmap(result *stats.Result, table *calendar.OrdinalTable, labels []string, user string) *charts.HeatMap {
	var (
		data      []opts.HeatMapData
		maxCommit int
	)

	for _, bucket := range result.UserBuckets(user) {
		year, week := bucket.PeriodStart.ISOWeek()

		ord, err := table.Ordinal(year, week)
		if err != nil {
			continue
		}

		weekday := (int(bucket.PeriodStart.Weekday()) + daysPerWeek - 1) % daysPerWeek
		data = append(data, opts.HeatMapData{Value: []any{ord, weekday, bucket.Commits}})

		if bucket.Commits > maxCommit {
			maxCommit = bucket.Commits
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Commit summary for %s", user)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			Data:      labels,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "category",
			Data:      weekdayLabels,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxCommit),
			InRange:    &opts.VisualMapInRange{Color: heatmapColors},
			Orient:     "horizontal",
			Left:       "center",
			Bottom:     "2%",
		}),
	)
	hm.AddSeries("Commits", data)

	return hm
}

func newActivityBar(title, xName string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Lines added/deleted"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Left: "center", Top: "5%"}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "slider", Start: 0, End: 100},
			opts.DataZoom{Type: "inside"},
		),
	)

	return bar
}

func addActivitySeries(bar *charts.Bar, additions, deletions []opts.BarData) {
	bar.AddSeries("Insertions", additions, charts.WithItemStyleOpts(opts.ItemStyle{Color: colorAdditions}))
	bar.AddSeries("Deletions", deletions, charts.WithItemStyleOpts(opts.ItemStyle{Color: colorDeletions}))
}
