// Package calendar implements ISO-8601 week arithmetic for the history
// reports: week counts per year, week-start normalization, and a dense
// ordinal numbering of (year, week) pairs used as a chart axis.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	daysPerWeek = 7

	// minISOWeeks and maxISOWeeks bound the possible week counts of an
	// ISO year. Anything else indicates a bug.
	minISOWeeks = 52
	maxISOWeeks = 53
)

// ErrOutOfRange is returned when an ordinal lookup falls outside the
// year span the table was built over.
var ErrOutOfRange = errors.New("calendar: year/week outside ordinal table range")

// WeeksInISOYear returns the number of ISO-8601 weeks in the given
// year, either 52 or 53. December 31 is either in the last week of the
// requested year or in week 1 of the next ISO year; in the latter case
// the date is stepped back until it leaves week 1.
func WeeksInISOYear(year int) int {
	d := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	_, week := d.ISOWeek()
	for week <= 1 {
		d = d.AddDate(0, 0, -1)
		_, week = d.ISOWeek()
	}

	return week
}

// WeekStart trims a date to midnight UTC of the Monday beginning its
// ISO week.
func WeekStart(t time.Time) time.Time {
	day := DayStart(t)

	weekday := int(day.Weekday())
	if weekday == 0 { // Sunday
		weekday = daysPerWeek
	}

	return day.AddDate(0, 0, -(weekday - 1))
}

// DayStart trims a date to midnight UTC of the same calendar day.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// OrdinalTable assigns contiguous, strictly increasing integers to
// every (year, week) pair across a year span, in chronological order.
// Charts spanning multiple years use the ordinals as x-axis positions
// so that year boundaries introduce no gaps or overlaps.
type OrdinalTable struct {
	minYear int
	maxYear int

	// yearOffset[y - minYear] is the ordinal of week 1 of year y.
	yearOffset []int

	// weeks[y - minYear] caches WeeksInISOYear(y).
	weeks []int
}

// NewOrdinalTable builds the ordinal table covering every ISO week of
// every year in [minYear, maxYear]. The table must cover the full
// observed date span before Ordinal is queried.
func NewOrdinalTable(minYear, maxYear int) *OrdinalTable {
	if maxYear < minYear {
		minYear, maxYear = maxYear, minYear
	}

	span := maxYear - minYear + 1
	table := &OrdinalTable{
		minYear:    minYear,
		maxYear:    maxYear,
		yearOffset: make([]int, span),
		weeks:      make([]int, span),
	}

	offset := 0
	for i := 0; i < span; i++ {
		table.yearOffset[i] = offset
		table.weeks[i] = WeeksInISOYear(minYear + i)
		offset += table.weeks[i]
	}

	return table
}

// Ordinal returns the dense chronological position of the given ISO
// (year, week) pair. Lookups outside the built span, or with a week
// number the year does not have, return ErrOutOfRange.
func (t *OrdinalTable) Ordinal(year, week int) (int, error) {
	if year < t.minYear || year > t.maxYear {
		return 0, fmt.Errorf("%w: year %d not in [%d, %d]", ErrOutOfRange, year, t.minYear, t.maxYear)
	}

	i := year - t.minYear
	if week < 1 || week > t.weeks[i] {
		return 0, fmt.Errorf("%w: week %d not in [1, %d] of %d", ErrOutOfRange, week, t.weeks[i], year)
	}

	return t.yearOffset[i] + week - 1, nil
}

// Size returns the total number of weeks covered by the table.
func (t *OrdinalTable) Size() int {
	last := len(t.weeks) - 1

	return t.yearOffset[last] + t.weeks[last]
}

// MinYear returns the first year covered by the table.
func (t *OrdinalTable) MinYear() int { return t.minYear }

// MaxYear returns the last year covered by the table.
func (t *OrdinalTable) MaxYear() int { return t.maxYear }

// WeeksIn returns the cached week count for a covered year.
func (t *OrdinalTable) WeeksIn(year int) (int, error) {
	if year < t.minYear || year > t.maxYear {
		return 0, fmt.Errorf("%w: year %d not in [%d, %d]", ErrOutOfRange, year, t.minYear, t.maxYear)
	}

	return t.weeks[year-t.minYear], nil
}

// Labels generates one axis label per covered week. The first week of
// each year, and the very first covered week, carry the year prefix;
// the remaining weeks are bare week numbers. firstWeek is the ISO week
// number of the first covered week in the first year.
func (t *OrdinalTable) Labels(firstWeek int) []string {
	labels := make([]string, 0, t.Size())

	for i, weeks := range t.weeks {
		year := t.minYear + i
		for w := 1; w <= weeks; w++ {
			if w == 1 || (year == t.minYear && w == firstWeek) {
				labels = append(labels, fmt.Sprintf("%d - %d", year, w))
			} else {
				labels = append(labels, strconv.Itoa(w))
			}
		}
	}

	return labels
}
