package plot_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitply/internal/gitlog"
	"github.com/Sumatoshi-tech/gitply/internal/plot"
	"github.com/Sumatoshi-tech/gitply/internal/stats"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func weeklyResult() *stats.Result {
	acc := stats.NewAccumulator(nil, stats.Weekly)
	acc.Add(gitlog.Commit{AuthorEmail: "a@x.com", Date: day(2022, time.December, 30), Insertions: 4, Deletions: 1})
	acc.Add(gitlog.Commit{AuthorEmail: "b@x.com", Date: day(2023, time.January, 10), Insertions: 2, Deletions: 2})

	return acc.Result()
}

func dailyResult() *stats.Result {
	acc := stats.NewAccumulator(nil, stats.Daily)
	acc.Add(gitlog.Commit{AuthorEmail: "a@x.com", Date: day(2023, time.May, 15), Insertions: 4, Deletions: 1})
	acc.Add(gitlog.Commit{AuthorEmail: "a@x.com", Date: day(2023, time.May, 18), Insertions: 2, Deletions: 2})

	return acc.Result()
}

func TestWriteHistoryPage_ContainsChartPerUser(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, plot.WriteHistoryPage(&buf, weeklyResult()))

	html := buf.String()
	assert.Contains(t, html, "Modification history for a@x.com")
	assert.Contains(t, html, "Modification history for b@x.com")
	assert.Contains(t, html, "Insertions")
	assert.Contains(t, html, "Deletions")
}

func TestWriteHistoryPage_EmptyResultStillRenders(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	result := stats.NewAccumulator(nil, stats.Weekly).Result()
	require.NoError(t, plot.WriteHistoryPage(&buf, result))
	assert.NotZero(t, buf.Len())
}

func TestWriteDailyPage_ContainsDayAxis(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, plot.WriteDailyPage(&buf, dailyResult()))

	html := buf.String()
	assert.Contains(t, html, "Weekly report for a@x.com")
	assert.Contains(t, html, "May 15")
	assert.Contains(t, html, "May 18")
}

func TestWriteYearPage_ContainsHeatmap(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, plot.WriteYearPage(&buf, dailyResult()))

	html := buf.String()
	assert.Contains(t, html, "Commit summary for a@x.com")
	assert.Contains(t, html, "Mon")
}
