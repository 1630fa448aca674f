package spool

import (
	"errors"
	"fmt"
	"io/fs"
	"miniraw/contract"
	errs "miniraw/errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

var _ contract.PathNamer = (*FileNamer)(nil)

const timestampLayout = "20060102-150405.000"

// FileNamer builds destination paths as job-<local time>-<seq><ext>.
// The sequence is process-wide and strictly increasing, so two calls within
// the same millisecond never return the same name. Names already present on
// disk (left by a previous run) are skipped.
type FileNamer struct {
	seq       atomic.Uint64
	extension string
	now       func() time.Time
}

func NewFileNamer(extension string) *FileNamer {
	return &FileNamer{extension: extension, now: time.Now}
}

func (n *FileNamer) NextPath(baseDir string) (string, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %s: %v", errs.ErrDirectoryUnwritable, baseDir, err)
	}
	info, err := os.Stat(baseDir)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", errs.ErrDirectoryUnwritable, baseDir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", errs.ErrDirectoryUnwritable, baseDir)
	}

	for {
		name := fmt.Sprintf("job-%s-%06d%s", n.now().Format(timestampLayout), n.seq.Add(1), n.extension)
		path := filepath.Join(baseDir, name)
		_, err := os.Lstat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", errs.ErrDirectoryUnwritable, path, err)
		}
	}
}
