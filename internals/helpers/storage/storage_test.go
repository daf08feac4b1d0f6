package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDiskExists(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "receipts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "receipts", "or-1.pdf"), []byte("pdf"), 0o644))

	disk := NewLocalDisk(base)

	assert.True(t, disk.Exists("receipts/or-1.pdf"))
	assert.False(t, disk.Exists("receipts/or-2.pdf"))
	assert.False(t, disk.Exists(""))
	assert.False(t, disk.Exists("   "))

	// directories are not receipts
	assert.False(t, disk.Exists("receipts"))
}

func TestLocalDiskRefusesEscape(t *testing.T) {
	base := t.TempDir()
	outside := filepath.Join(filepath.Dir(base), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))
	t.Cleanup(func() { _ = os.Remove(outside) })

	disk := NewLocalDisk(base)
	assert.False(t, disk.Exists("../secret.txt"))
	assert.False(t, disk.Exists("../../etc/passwd"))
}
