package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// gitignoreContent keeps session data and logs out of version control.
// Only config.yaml is meant to be tracked.
const gitignoreContent = `# eventcarbon project-local data (auto-generated)
data/
*.tmp
*.log
`

// GitignoreContent returns the .gitignore written into project directories.
func GitignoreContent() string {
	return gitignoreContent
}

// EnsureGitignore writes dir/.gitignore unless one exists, creating dir as
// needed. Reports whether a file was written. An existing file is never touched.
func EnsureGitignore(dir string) (bool, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, ".gitignore")
	//nolint:gosec // .gitignore must be world-readable (0644).
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating .gitignore at %s: %w", path, err)
	}

	_, writeErr := f.WriteString(gitignoreContent)
	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return false, fmt.Errorf("writing .gitignore at %s: %w", path, writeErr)
	}
	return true, nil
}
