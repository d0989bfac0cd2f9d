// Package identity maps commit author emails to display identities.
// Contributors often configure different emails on different machines;
// resolving them to one identity keeps their activity accounted
// together. Resolution is total: unknown emails map to a sentinel
// rather than failing.
package identity

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Unknown is the sentinel identity returned by FileResolver for emails
// absent from its table.
const Unknown = "unknown"

// Resolver resolves an author email to a display identity. Resolve is
// a total function and never fails; implementations define their own
// behavior for unmapped inputs.
type Resolver interface {
	Resolve(email string) string
}

// NullResolver performs no mapping: the email itself is the identity.
type NullResolver struct{}

// Resolve returns the email unchanged.
func (NullResolver) Resolve(email string) string {
	return email
}

// FileResolver resolves emails through a table loaded from a text
// file of "<email> <display name>" lines. Emails absent from the
// table resolve to Unknown.
type FileResolver struct {
	names map[string]string
}

// NewFileResolver loads the mapping table from path. Lines without a
// separator between email and name are skipped, not errors.
func NewFileResolver(path string) (*FileResolver, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("identity: open user map: %w", err)
	}
	defer file.Close()

	resolver := &FileResolver{names: make(map[string]string)}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		sep := strings.IndexAny(line, " \t")
		if sep < 0 {
			continue
		}

		email := strings.TrimSpace(line[:sep])
		name := strings.TrimSpace(line[sep+1:])

		if email == "" || name == "" {
			continue
		}

		resolver.names[email] = name
	}

	if scanErr := scanner.Err(); scanErr != nil {
		return nil, fmt.Errorf("identity: read user map: %w", scanErr)
	}

	return resolver, nil
}

// Resolve returns the mapped display name, or Unknown when the email
// has no entry.
func (r *FileResolver) Resolve(email string) string {
	if name, ok := r.names[email]; ok {
		return name
	}

	return Unknown
}

// Len returns the number of loaded mappings.
func (r *FileResolver) Len() int {
	return len(r.names)
}
