package bcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCsetID    = "11d67a32-6e55-46c5-8dd2-29747fa5f352"
	testBackingID = "f8a7ef7c-51f5-4654-bbba-1d17e0d0f9ef"
)

// writeFixture lays out a fake sysfs tree:
//
//	fs/<cset>/bdev0 -> block/sdb/bcache (real dir with attribute files)
//	fs/<cset>/cache0 -> dangling link whose path names the cache device
//	block/sdb/bcache/dev -> dangling link whose basename is the bcache device
func writeFixture(t *testing.T) *Sysfs {
	t.Helper()
	root := t.TempDir()

	backingDir := filepath.Join(root, "block", "sdb", "bcache")
	require.NoError(t, os.MkdirAll(backingDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(backingDir, "backing_dev_name"), []byte("sdb\n"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(backingDir, "backing_dev_uuid"), []byte(testBackingID+"\n"), 0o644))
	require.NoError(t, os.Symlink(
		"../../../devices/virtual/block/bcache0",
		filepath.Join(backingDir, "dev")))

	csetDir := filepath.Join(root, "fs", testCsetID)
	require.NoError(t, os.MkdirAll(csetDir, 0o755))
	require.NoError(t, os.Symlink(backingDir, filepath.Join(csetDir, "bdev0")))
	require.NoError(t, os.Symlink(
		"../../devices/pci0000:00/nvme0n1/bcache",
		filepath.Join(csetDir, "cache0")))

	return &Sysfs{
		FSRoot:    filepath.Join(root, "fs"),
		BlockRoot: filepath.Join(root, "class"),
	}
}

func TestSysfs_Discover(t *testing.T) {
	sys := writeFixture(t)

	devices, err := sys.Discover()
	require.NoError(t, err)

	assert.Equal(t, []Device{
		{Type: TypeCacheSet, ID: testCsetID, Path: "bcache0"},
		{Type: "bdev0", Parent: testCsetID, Path: "sdb", ID: testBackingID},
		{Type: "cache0", Parent: testCsetID, ID: NullID, Path: "nvme0n1"},
	}, devices)
}

func TestSysfs_DiscoverEmpty(t *testing.T) {
	sys := &Sysfs{FSRoot: t.TempDir(), BlockRoot: t.TempDir()}

	devices, err := sys.Discover()
	require.NoError(t, err)
	assert.Empty(t, devices)
}

func TestSysfs_DiscoverMissingRoot(t *testing.T) {
	sys := &Sysfs{FSRoot: filepath.Join(t.TempDir(), "missing")}

	_, err := sys.Discover()
	assert.Error(t, err)
}

func TestSysfs_DiscoverIgnoresFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "register"), nil, 0o644))

	sys := &Sysfs{FSRoot: root}
	devices, err := sys.Discover()
	require.NoError(t, err)
	assert.Empty(t, devices)
}

func TestSysfs_Blocks(t *testing.T) {
	root := t.TempDir()

	// sda has no bcache attribute and is skipped.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sda"), 0o755))

	// bcache0 exposes a plain directory.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bcache0", "bcache"), 0o755))

	// sdb exposes a symlink, marking a cache-set member.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sdb"), 0o755))
	require.NoError(t, os.Symlink(
		"../../fs/bcache/"+testCsetID,
		filepath.Join(root, "sdb", "bcache")))

	sys := &Sysfs{BlockRoot: root}
	devices, err := sys.Blocks()
	require.NoError(t, err)

	assert.Equal(t, []Device{
		{Type: TypeUnknown, Path: "bcache0"},
		{Type: TypeCacheSet, Path: "sdb"},
	}, devices)
}
