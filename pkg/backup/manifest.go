// Package backup persists a small manifest alongside each backup
// directory so that Restore can be reconstructed by scanning the backup
// root, independent of any in-memory session state.
package backup

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/errors"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/paths"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/types"
)

// ManifestSuffix is appended to the backup directory path to form the
// manifest file path. The manifest lives next to the backup, not inside
// it, so restoring never copies tool metadata back into the save
// folder.
const ManifestSuffix = ".toml"

// Manifest records where a backup came from and when.
type Manifest struct {
	// SaveDir is the normalized save directory the backup was taken from
	SaveDir string `toml:"save_dir"`

	// CreatedAt is the backup creation time
	CreatedAt time.Time `toml:"created_at"`

	// ToolVersion is the version of the tool that wrote the backup
	ToolVersion string `toml:"tool_version"`
}

// ManifestPath returns the manifest file path for a backup directory.
func ManifestPath(backupDir string) string {
	return backupDir + ManifestSuffix
}

// WriteManifest writes the manifest for backupDir.
func WriteManifest(fsys types.FS, backupDir string, m Manifest) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, errors.ErrBackup, "failed to encode backup manifest")
	}
	if err := fsys.WriteFile(ManifestPath(backupDir), data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrBackup, "failed to write backup manifest for %s", backupDir)
	}
	return nil
}

// ReadManifest reads the manifest for backupDir.
func ReadManifest(fsys types.FS, backupDir string) (*Manifest, error) {
	data, err := fsys.ReadFile(ManifestPath(backupDir))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNoBackup, "no manifest for backup %s", backupDir)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrNoBackup, "invalid manifest for backup %s", backupDir)
	}
	return &m, nil
}

// List returns the backups under backupRoot that carry a readable
// manifest, newest first. A missing backup root yields an empty list.
func List(fsys types.FS, backupRoot string) ([]types.BackupRecord, error) {
	entries, err := fsys.ReadDir(backupRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrNoBackup, "failed to read backup root %s", backupRoot)
	}

	var records []types.BackupRecord
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), paths.BackupNamePrefix) {
			continue
		}
		dir := filepath.Join(backupRoot, entry.Name())
		m, err := ReadManifest(fsys, dir)
		if err != nil {
			// Backups from before manifests were introduced, or with a
			// damaged manifest, are skipped rather than failing the scan.
			continue
		}
		records = append(records, types.BackupRecord{
			Path:      dir,
			SaveDir:   m.SaveDir,
			CreatedAt: m.CreatedAt,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

// FindLatest returns the most recent backup of saveDir under
// backupRoot, or ok=false if none is known.
func FindLatest(fsys types.FS, backupRoot, saveDir string) (types.BackupRecord, bool) {
	records, err := List(fsys, backupRoot)
	if err != nil {
		return types.BackupRecord{}, false
	}
	for _, rec := range records {
		if rec.SaveDir == saveDir {
			return rec, true
		}
	}
	return types.BackupRecord{}, false
}
