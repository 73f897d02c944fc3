package backup_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/backup"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/filesystem"
)

func makeBackupDir(t *testing.T, root, name string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	return dir
}

func TestManifest_RoundTrip(t *testing.T) {
	fsys := filesystem.NewOS()
	root := t.TempDir()
	dir := makeBackupDir(t, root, "Saves-backup-20240315-093045")

	created := time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC)
	m := backup.Manifest{
		SaveDir:     "/home/player/.config/StardewValley/Saves",
		CreatedAt:   created,
		ToolVersion: "dev",
	}
	require.NoError(t, backup.WriteManifest(fsys, dir, m))

	// The manifest sits next to the backup, not inside it, so a restore
	// never copies tool metadata back into the save folder.
	assert.FileExists(t, dir+".toml")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	got, err := backup.ReadManifest(fsys, dir)
	require.NoError(t, err)
	assert.Equal(t, m.SaveDir, got.SaveDir)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.Equal(t, "dev", got.ToolVersion)
}

func TestReadManifest_Missing(t *testing.T) {
	fsys := filesystem.NewOS()
	_, err := backup.ReadManifest(fsys, filepath.Join(t.TempDir(), "Saves-backup-x"))
	assert.Error(t, err)
}

func TestList_NewestFirst(t *testing.T) {
	fsys := filesystem.NewOS()
	root := t.TempDir()

	old := makeBackupDir(t, root, "Saves-backup-20240101-120000")
	require.NoError(t, backup.WriteManifest(fsys, old, backup.Manifest{
		SaveDir:   "/saves",
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}))
	recent := makeBackupDir(t, root, "Saves-backup-20240601-120000")
	require.NoError(t, backup.WriteManifest(fsys, recent, backup.Manifest{
		SaveDir:   "/saves",
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}))

	records, err := backup.List(fsys, root)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, recent, records[0].Path)
	assert.Equal(t, old, records[1].Path)
}

func TestList_SkipsEntriesWithoutManifest(t *testing.T) {
	fsys := filesystem.NewOS()
	root := t.TempDir()

	// Pre-manifest backup and an unrelated directory.
	makeBackupDir(t, root, "Saves-backup-20230101-000000")
	makeBackupDir(t, root, "unrelated")

	with := makeBackupDir(t, root, "Saves-backup-20240101-000000")
	require.NoError(t, backup.WriteManifest(fsys, with, backup.Manifest{
		SaveDir:   "/saves",
		CreatedAt: time.Now(),
	}))

	records, err := backup.List(fsys, root)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, with, records[0].Path)
}

func TestList_MissingRoot(t *testing.T) {
	fsys := filesystem.NewOS()
	records, err := backup.List(fsys, filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFindLatest_MatchesSaveDir(t *testing.T) {
	fsys := filesystem.NewOS()
	root := t.TempDir()

	mine := makeBackupDir(t, root, "Saves-backup-20240301-000000")
	require.NoError(t, backup.WriteManifest(fsys, mine, backup.Manifest{
		SaveDir:   "/saves/mine",
		CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}))
	other := makeBackupDir(t, root, "Saves-backup-20240401-000000")
	require.NoError(t, backup.WriteManifest(fsys, other, backup.Manifest{
		SaveDir:   "/saves/other",
		CreatedAt: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}))

	rec, ok := backup.FindLatest(fsys, root, "/saves/mine")
	require.True(t, ok)
	assert.Equal(t, mine, rec.Path)

	_, ok = backup.FindLatest(fsys, root, "/saves/unknown")
	assert.False(t, ok)
}
