// Package workdir manages the isolated working areas that relay runs
// download media into. Every area is uniquely named per run and owned
// exclusively by the run that created it.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	dirPrefix  = "relay-"
	filePrefix = "relay-tmp-"
)

// Dir is one working area on disk, restricted to the owning process.
type Dir struct {
	path string
}

// New creates a fresh working area under baseDir with mode 0700.
func New(baseDir string) (*Dir, error) {
	path := filepath.Join(baseDir, dirPrefix+uuid.NewString())
	if err := os.MkdirAll(path, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create working area: %w", err)
	}
	return &Dir{path: path}, nil
}

func (d *Dir) Path() string {
	return d.path
}

// Cleanup removes the working area recursively. Safe to call on every exit
// path; removing an already-removed area is not an error.
func (d *Dir) Cleanup() error {
	if err := os.RemoveAll(d.path); err != nil {
		return fmt.Errorf("failed to remove working area: %w", err)
	}
	return nil
}

// TempFilePath builds a run-unique file name under baseDir for single-file
// downloads, so concurrent requests for the same username never collide.
// The name carries the sweepable prefix so a leaked file is reclaimed by
// SweepStale like a leaked working area.
func TempFilePath(baseDir, stem, ext string) string {
	return filepath.Join(baseDir, fmt.Sprintf("%s%s-%s%s", filePrefix, stem, uuid.NewString(), ext))
}

// SweepStale removes working areas and single-file temps older than maxAge.
// Covers anything leaked by a process torn down mid-run.
func SweepStale(baseDir string, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read working area base dir: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if !sweepable(entry) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(baseDir, entry.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove stale working area %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}

func sweepable(entry os.DirEntry) bool {
	if entry.IsDir() {
		return strings.HasPrefix(entry.Name(), dirPrefix)
	}
	return strings.HasPrefix(entry.Name(), filePrefix)
}
