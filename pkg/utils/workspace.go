package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Workspace handles output file organization for migration runs
type Workspace struct {
	BaseOutputDir string
}

// NewWorkspace creates a workspace rooted at the given output directory
func NewWorkspace(baseOutputDir string) *Workspace {
	return &Workspace{BaseOutputDir: baseOutputDir}
}

// EnsureOutputDirExists creates the base output directory if needed
func (ws *Workspace) EnsureOutputDirExists() error {
	if err := os.MkdirAll(ws.BaseOutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// LogFilePath returns a timestamped, run-scoped log file path
func (ws *Workspace) LogFilePath(now time.Time) string {
	return filepath.Join(ws.BaseOutputDir, fmt.Sprintf("migration_log_%s.txt", now.Format("20060102_150405")))
}

// ArtifactPath resolves a file name inside the output directory, stripping
// any path separators from the name.
func (ws *Workspace) ArtifactPath(fileName string) string {
	return filepath.Join(ws.BaseOutputDir, filepath.Base(fileName))
}

// FileSize returns the size of a file in bytes
func (ws *Workspace) FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
