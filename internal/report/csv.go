// Package report writes fetch results to the configured output location.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/naka-gawa/fetgithub/internal/domain"
)

// CSVFileName is the file created inside the output directory.
const CSVFileName = "github_stats.csv"

var csvHeader = []string{"User", "Repository_Name", "Stars", "Forks", "Branches_Count", "Commits_Count"}

// WriteCSV appends one row per repository to dir/github_stats.csv, creating
// dir as needed. The header is written only when the file is new.
// It returns the path of the file written.
func WriteCSV(dir string, r *domain.Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, CSVFileName)

	_, statErr := os.Stat(path)
	isNew := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(csvHeader); err != nil {
			return "", fmt.Errorf("failed to write header: %w", err)
		}
	}
	for _, rs := range r.Repositories {
		row := []string{r.User, rs.Name, cell(rs.Stars), cell(rs.Forks), cell(rs.Branches), cell(rs.Commits)}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write row for %s: %w", rs.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return path, nil
}

// cell renders an unselected metric as an empty field.
func cell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
