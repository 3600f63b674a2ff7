package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var (
	// ErrUnsetVariable is returned by ExpandPath when the path references an
	// environment variable that is not set.
	ErrUnsetVariable = errors.New("environment variable not set")
	// ErrInvalidEncoding is returned by ExpandPath when the path is not valid UTF-8.
	ErrInvalidEncoding = errors.New("path is not valid UTF-8")
)

// ExpandPath expands a leading ~ to the home directory and $VAR / ${VAR}
// references to their environment values, the way a POSIX shell would for an
// unquoted word. Unlike os.ExpandEnv, referencing an unset variable is an error.
// The result is not made absolute; callers decide what relative paths mean.
func ExpandPath(path string) (string, error) {
	if !utf8.ValidString(path) {
		return "", fmt.Errorf("%w: %q", ErrInvalidEncoding, path)
	}

	// Expand ~
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to expand ~: %w", err)
		}
		path = home + path[1:]
	}

	var missing []string
	expanded := os.Expand(path, func(name string) string {
		v, ok := os.LookupEnv(name)
		if !ok {
			missing = append(missing, name)
		}
		return v
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s in %q", ErrUnsetVariable, strings.Join(missing, ", "), path)
	}
	return expanded, nil
}
