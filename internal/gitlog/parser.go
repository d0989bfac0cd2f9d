// Package gitlog turns the line-oriented output of `git log --numstat
// --date=short --no-notes` into a stream of per-commit records. The
// parser is a two-state machine: it discards leading noise until the
// first commit boundary, then classifies every line as an author line,
// a date line, a numstat line, the next boundary, or ignorable text.
package gitlog

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Line prefixes of the git log grammar.
const (
	commitPrefix = "commit "
	authorPrefix = "Author:"
	datePrefix   = "Date:"

	// dateLayout matches --date=short output.
	dateLayout = "2006-01-02"

	// commitBuffer softens the handoff between the scanning goroutine
	// and the consumer without retaining more than a handful of records.
	commitBuffer = 16
)

// numstatPattern extracts the insertion and deletion counts from the
// head of a --numstat line. Binary-file markers ("-\t-\tpath") and
// message lines start with a non-digit and do not match.
var numstatPattern = regexp.MustCompile(`^([0-9]+)[ \t]+([0-9]+)`)

// Commit is one parsed commit record. Insertions and Deletions are the
// sums over every file touched by the commit.
type Commit struct {
	AuthorEmail string
	Date        time.Time
	Insertions  int
	Deletions   int
}

// pending accumulates one commit between boundary lines. A record is
// emitted only when both the author and the date were seen.
type pending struct {
	email      string
	date       time.Time
	dated      bool
	insertions int
	deletions  int
}

func (p *pending) complete() bool {
	return p.email != "" && p.dated
}

func (p *pending) commit() Commit {
	return Commit{
		AuthorEmail: p.email,
		Date:        p.date,
		Insertions:  p.insertions,
		Deletions:   p.deletions,
	}
}

// ParseCommits consumes log lines and produces commits in input order
// on the returned channel. The channel is closed once the input is
// exhausted or ctx is cancelled; cancellation is a hard stop and never
// emits a partially assembled record. Input that contains no commit
// boundary at all yields an empty stream, not an error — malformed
// fragments degrade to missing stats rather than aborting the scan.
func ParseCommits(ctx context.Context, lines <-chan string) <-chan Commit {
	out := make(chan Commit, commitBuffer)

	go func() {
		defer close(out)

		parser := parser{out: out}

		for {
			select {
			case <-ctx.Done():
				return
			case line, ok := <-lines:
				if !ok {
					parser.finish(ctx)

					return
				}

				if !parser.consume(ctx, line) {
					return
				}
			}
		}
	}()

	return out
}

type parser struct {
	out      chan<- Commit
	inCommit bool
	cur      pending
}

// consume feeds one line through the state machine. It reports false
// only when an emission was cancelled mid-send.
func (p *parser) consume(ctx context.Context, line string) bool {
	if !p.inCommit {
		// Tolerate banner or warning lines before the first commit.
		if strings.HasPrefix(line, commitPrefix) {
			p.inCommit = true
			p.cur = pending{}
		}

		return true
	}

	switch {
	case strings.HasPrefix(line, commitPrefix):
		if !p.emit(ctx) {
			return false
		}

		p.cur = pending{}
	case strings.HasPrefix(line, authorPrefix):
		if email, ok := extractEmail(line[len(authorPrefix):]); ok {
			p.cur.email = email
		}
	case strings.HasPrefix(line, datePrefix):
		date, err := time.Parse(dateLayout, strings.TrimSpace(line[len(datePrefix):]))
		if err == nil {
			p.cur.date = date
			p.cur.dated = true
		}
	default:
		p.consumeStat(line)
	}

	return true
}

// consumeStat folds a numstat line into the running totals. Lines that
// do not match the numstat shape are message text, binary markers, or
// blanks, and are skipped.
func (p *parser) consumeStat(line string) {
	match := numstatPattern.FindStringSubmatch(line)
	if match == nil {
		return
	}

	insertions, insErr := strconv.Atoi(match[1])
	deletions, delErr := strconv.Atoi(match[2])

	if insErr != nil || delErr != nil {
		return
	}

	p.cur.insertions += insertions
	p.cur.deletions += deletions
}

// finish flushes the trailing record: the last commit in the log has
// no following boundary line to trigger its emission.
func (p *parser) finish(ctx context.Context) {
	if p.inCommit {
		p.emit(ctx)
	}
}

// emit sends the pending record if it is complete. Records missing the
// author or the date are dropped rather than emitted — a guard against
// malformed input that must not abort the scan.
func (p *parser) emit(ctx context.Context) bool {
	if !p.cur.complete() {
		return true
	}

	select {
	case <-ctx.Done():
		return false
	case p.out <- p.cur.commit():
		return true
	}
}

// extractEmail pulls the angle-bracket-delimited address out of an
// author line remainder ("Display Name <email>").
func extractEmail(s string) (string, bool) {
	_, addr, found := strings.Cut(strings.TrimSpace(s), "<")
	if !found {
		return "", false
	}

	return strings.TrimRight(addr, ">"), true
}
