package identity_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitply/internal/identity"
)

func writeUserMap(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "users.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestNullResolver_EmailIsIdentity(t *testing.T) {
	t.Parallel()

	var resolver identity.NullResolver

	assert.Equal(t, "a@x.com", resolver.Resolve("a@x.com"))
}

func TestFileResolver_MapsKnownEmails(t *testing.T) {
	t.Parallel()

	path := writeUserMap(t, "alice@example.com Alice Smith\nbob@work.io Bob\n")

	resolver, err := identity.NewFileResolver(path)
	require.NoError(t, err)

	assert.Equal(t, 2, resolver.Len())
	assert.Equal(t, "Alice Smith", resolver.Resolve("alice@example.com"))
	assert.Equal(t, "Bob", resolver.Resolve("bob@work.io"))
}

func TestFileResolver_UnknownEmailResolvesToSentinel(t *testing.T) {
	t.Parallel()

	path := writeUserMap(t, "alice@example.com Alice\n")

	resolver, err := identity.NewFileResolver(path)
	require.NoError(t, err)

	assert.Equal(t, identity.Unknown, resolver.Resolve("stranger@nowhere.net"))
}

func TestFileResolver_TabSeparatorAccepted(t *testing.T) {
	t.Parallel()

	path := writeUserMap(t, "alice@example.com\tAlice\n")

	resolver, err := identity.NewFileResolver(path)
	require.NoError(t, err)

	assert.Equal(t, "Alice", resolver.Resolve("alice@example.com"))
}

func TestFileResolver_MalformedLinesSkipped(t *testing.T) {
	t.Parallel()

	path := writeUserMap(t, "no-separator-line\n\nalice@example.com Alice\n")

	resolver, err := identity.NewFileResolver(path)
	require.NoError(t, err)

	assert.Equal(t, 1, resolver.Len())
}

func TestNewFileResolver_MissingFile_ReturnsError(t *testing.T) {
	t.Parallel()

	_, err := identity.NewFileResolver(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}
