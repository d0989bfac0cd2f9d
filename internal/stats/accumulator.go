// Package stats folds parsed commit records into per-user, per-period
// contribution tallies. Periods are ISO weeks or calendar days; the
// fold is associative and commutative, so totals are independent of
// the order commits arrive in.
package stats

import (
	"sort"
	"time"

	"github.com/Sumatoshi-tech/gitply/internal/calendar"
	"github.com/Sumatoshi-tech/gitply/internal/gitlog"
	"github.com/Sumatoshi-tech/gitply/internal/identity"
)

// Granularity selects the reporting bucket size.
type Granularity int

// Supported granularities.
const (
	Weekly Granularity = iota
	Daily
)

// String returns the granularity name used in reports and config.
func (g Granularity) String() string {
	if g == Daily {
		return "daily"
	}

	return "weekly"
}

// Gap detection thresholds. A delta of exactly one week between
// consecutive weekly buckets is contiguous activity, not a gap.
const (
	gapMinDays  = 8
	daysPerWeek = 7
)

// PeriodKey identifies one reporting bucket. Weekly keys carry the ISO
// year and week number; daily keys carry the calendar date. Two
// commits map to the same key iff they fall in the same bucket.
type PeriodKey struct {
	Year  int
	Week  int
	Month time.Month
	Day   int
}

// WeekKey returns the weekly period key for a commit date.
func WeekKey(t time.Time) PeriodKey {
	year, week := t.ISOWeek()

	return PeriodKey{Year: year, Week: week}
}

// DayKey returns the daily period key for a commit date.
func DayKey(t time.Time) PeriodKey {
	return PeriodKey{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// BucketKey is the flat composite key of the bucket map: one bucket
// per (identity, period).
type BucketKey struct {
	User   string
	Period PeriodKey
}

// Bucket holds the tallies of one user within one period. PeriodStart
// is the normalized first day of the bucket — the ISO week's Monday,
// or the day itself in daily mode — and never exceeds any commit date
// folded into the bucket.
type Bucket struct {
	Commits     int
	Insertions  int
	Deletions   int
	PeriodStart time.Time
}

// Accumulator folds a commit stream into buckets. Each aggregation
// pass owns its accumulator exclusively; memory stays proportional to
// the number of distinct (user, period) pairs, not to commit count.
type Accumulator struct {
	resolver    identity.Resolver
	granularity Granularity
	buckets     map[BucketKey]*Bucket
	minDate     time.Time
	maxDate     time.Time
}

// NewAccumulator creates an accumulator using the given identity
// resolver and granularity. A nil resolver falls back to the identity
// of the raw email.
func NewAccumulator(resolver identity.Resolver, granularity Granularity) *Accumulator {
	if resolver == nil {
		resolver = identity.NullResolver{}
	}

	return &Accumulator{
		resolver:    resolver,
		granularity: granularity,
		buckets:     make(map[BucketKey]*Bucket),
	}
}

// Add folds one commit into its bucket, creating the bucket on first
// contribution.
func (a *Accumulator) Add(c gitlog.Commit) {
	var (
		period PeriodKey
		start  time.Time
	)

	if a.granularity == Daily {
		period = DayKey(c.Date)
		start = calendar.DayStart(c.Date)
	} else {
		period = WeekKey(c.Date)
		start = calendar.WeekStart(c.Date)
	}

	key := BucketKey{User: a.resolver.Resolve(c.AuthorEmail), Period: period}

	bucket, ok := a.buckets[key]
	if !ok {
		bucket = &Bucket{PeriodStart: start}
		a.buckets[key] = bucket
	}

	bucket.Commits++
	bucket.Insertions += c.Insertions
	bucket.Deletions += c.Deletions

	if a.minDate.IsZero() || start.Before(a.minDate) {
		a.minDate = start
	}

	if a.maxDate.IsZero() || start.After(a.maxDate) {
		a.maxDate = start
	}
}

// Consume drains a commit channel into the accumulator.
func (a *Accumulator) Consume(commits <-chan gitlog.Commit) {
	for c := range commits {
		a.Add(c)
	}
}

// Result freezes the pass into a read-only view for reporting.
func (a *Accumulator) Result() *Result {
	return &Result{
		Granularity: a.granularity,
		Buckets:     a.buckets,
		MinDate:     a.minDate,
		MaxDate:     a.maxDate,
	}
}

// Result is the aggregated outcome of one pass: the full bucket map
// and the observed period-start range for axis fitting. Buckets are
// read-only once handed out.
type Result struct {
	Granularity Granularity
	Buckets     map[BucketKey]*Bucket
	MinDate     time.Time
	MaxDate     time.Time
}

// Empty reports whether the pass saw no commits.
func (r *Result) Empty() bool {
	return len(r.Buckets) == 0
}

// Users returns the distinct identities in sorted order.
func (r *Result) Users() []string {
	seen := make(map[string]struct{})
	for key := range r.Buckets {
		seen[key.User] = struct{}{}
	}

	users := make([]string, 0, len(seen))
	for user := range seen {
		users = append(users, user)
	}

	sort.Strings(users)

	return users
}

// UserBucket pairs a period key with its bucket for ordered traversal.
type UserBucket struct {
	Period PeriodKey
	*Bucket
}

// UserBuckets returns one user's buckets in chronological order.
func (r *Result) UserBuckets(user string) []UserBucket {
	var buckets []UserBucket

	for key, bucket := range r.Buckets {
		if key.User == user {
			buckets = append(buckets, UserBucket{Period: key.Period, Bucket: bucket})
		}
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].PeriodStart.Before(buckets[j].PeriodStart)
	})

	return buckets
}

// Gap is a run of ISO weeks without activity for one user, bounded by
// weeks that do have activity.
type Gap struct {
	// After is the period start of the last active week before the gap.
	After time.Time
	// Before is the period start of the first active week after it.
	Before time.Time
	// Weeks is the number of silent weeks in between.
	Weeks int
}

// Gaps reports the inactivity gaps of one user. Gaps are defined for
// weekly aggregation only; daily results return nil. The scan never
// mutates the bucket map.
func (r *Result) Gaps(user string) []Gap {
	if r.Granularity != Weekly {
		return nil
	}

	buckets := r.UserBuckets(user)

	var gaps []Gap

	for i := 1; i < len(buckets); i++ {
		prev, cur := buckets[i-1].PeriodStart, buckets[i].PeriodStart

		days := int(cur.Sub(prev).Hours()) / 24
		if days < gapMinDays {
			continue
		}

		gaps = append(gaps, Gap{
			After:  prev,
			Before: cur,
			Weeks:  days/daysPerWeek - 1,
		})
	}

	return gaps
}
