package gitlog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

const (
	// Scanner buffer sizing: numstat path lines are usually short, but
	// vendored or generated paths can run long.
	scanBufInitial = 64 * 1024
	scanBufMax     = 1024 * 1024

	lineBuffer = 64
)

// ErrSourceFailed wraps abnormal termination of the underlying git
// process. A stream that ended this way must not be treated as a
// complete history.
var ErrSourceFailed = errors.New("gitlog: log source failed")

// SourceOptions configures the git log invocation.
type SourceOptions struct {
	// Since, when non-empty, is passed as --since=<date> to bound the
	// history. It limits input size without changing parser behavior.
	Since string
}

// CLISource streams the commit log of a local repository by invoking
// the git CLI as a subprocess. Lines are yielded one at a time; the
// consumer owns the pace and may cancel through the context passed at
// construction, which kills the subprocess.
type CLISource struct {
	lines chan string
	done  chan struct{}
	err   error
}

// NewCLISource starts `git log --numstat --date=short --no-notes` in
// the given repository directory and begins streaming its output.
func NewCLISource(ctx context.Context, repoPath string, opts SourceOptions) (*CLISource, error) {
	args := []string{"log", "--numstat", "--date=short", "--no-notes"}
	if opts.Since != "" {
		args = append(args, "--since="+opts.Since)
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = repoPath

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("gitlog: open stdout pipe: %w", err)
	}

	if startErr := cmd.Start(); startErr != nil {
		stdout.Close()

		return nil, fmt.Errorf("%w: start git in %s: %w", ErrSourceFailed, repoPath, startErr)
	}

	src := &CLISource{
		lines: make(chan string, lineBuffer),
		done:  make(chan struct{}),
	}

	go func() {
		defer close(src.done)
		defer close(src.lines)

		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, scanBufInitial), scanBufMax)

		for scanner.Scan() {
			select {
			case <-ctx.Done():
				src.err = ctx.Err()
				_ = cmd.Wait()

				return
			case src.lines <- scanner.Text():
			}
		}

		scanErr := scanner.Err()
		waitErr := cmd.Wait()

		switch {
		case scanErr != nil:
			src.err = fmt.Errorf("%w: read git output: %w", ErrSourceFailed, scanErr)
		case waitErr != nil:
			src.err = fmt.Errorf("%w: git log in %s: %w", ErrSourceFailed, repoPath, waitErr)
		}
	}()

	return src, nil
}

// Lines returns the channel of raw log lines. It is closed when the
// subprocess output is exhausted, fails, or the context is cancelled.
func (s *CLISource) Lines() <-chan string {
	return s.lines
}

// Wait blocks until the subprocess has terminated and reports how the
// stream ended. A nil result means the full log was delivered.
func (s *CLISource) Wait() error {
	<-s.done

	return s.err
}
