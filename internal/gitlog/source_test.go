package gitlog_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitply/internal/gitlog"
)

func TestNewCLISource_MissingDirectory_ReturnsError(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "no-such-repo")

	_, err := gitlog.NewCLISource(context.Background(), missing, gitlog.SourceOptions{})
	assert.Error(t, err)
}

func TestCLISource_NonRepositoryDirectory_WaitReportsFailure(t *testing.T) {
	t.Parallel()

	// git starts fine in a plain directory but exits non-zero because
	// there is no repository to walk.
	src, err := gitlog.NewCLISource(context.Background(), t.TempDir(), gitlog.SourceOptions{})
	require.NoError(t, err)

	for range src.Lines() {
	}

	assert.ErrorIs(t, src.Wait(), gitlog.ErrSourceFailed)
}
