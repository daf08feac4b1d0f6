package storage

import (
	"os"
	"path/filepath"
	"strings"
)

// ReceiptChecker is the file-storage boundary the approval pipeline calls.
// The core only asks whether a stored receipt is present and readable; it
// never parses file bytes.
type ReceiptChecker interface {
	Exists(path string) bool
}

// LocalDisk resolves receipt references under a base directory.
type LocalDisk struct {
	BaseDir string
}

func NewLocalDisk(baseDir string) *LocalDisk {
	return &LocalDisk{BaseDir: baseDir}
}

func (l *LocalDisk) Exists(path string) bool {
	p := strings.TrimSpace(path)
	if p == "" {
		return false
	}
	// refuse escapes out of the base dir
	full := filepath.Join(l.BaseDir, filepath.Clean("/"+p))
	info, err := os.Stat(full)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
