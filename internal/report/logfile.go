package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// LogFileName is the file created inside the log directory.
const LogFileName = "fetgithub.log"

// OpenLog opens dir/fetgithub.log for appending, creating dir as needed.
// The caller closes the returned file.
func OpenLog(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	path := filepath.Join(dir, LogFileName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}
