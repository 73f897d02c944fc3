// Package paths provides centralized path handling for the cross-save
// tool: the backup root layout, the cloud target mapping, and the
// normalization applied to every user-supplied path before comparison
// or storage.
package paths

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/errors"
)

// Default directory and file names.
// The backup layout must remain consistent across releases so that
// manifest scanning keeps finding older backups.
const (
	// DefaultBackupDirName is the directory under the user's home that
	// holds all timestamped backups
	DefaultBackupDirName = "StardewValleyCrossSaves_Backups"

	// DefaultSavesDirName is the directory appended to the cloud root to
	// form the cloud target
	DefaultSavesDirName = "Saves"

	// BackupNamePrefix prefixes every timestamped backup directory
	BackupNamePrefix = "Saves-backup-"

	// BackupTimestampFormat is the second-resolution timestamp appended
	// to BackupNamePrefix
	BackupTimestampFormat = "20060102-150405"

	// ConfigDirName is the subdirectory of the XDG config home holding
	// the optional user configuration file
	ConfigDirName = "crosssave"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"
)

// Paths resolves the application's well-known locations. It is
// constructed once at process start and passed by reference; there is
// no ambient global state.
type Paths struct {
	home          string
	backupDirName string
	savesDirName  string
}

// New creates a Paths instance. Empty names fall back to the defaults.
func New(backupDirName, savesDirName string) (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot determine home directory")
	}
	if backupDirName == "" {
		backupDirName = DefaultBackupDirName
	}
	if savesDirName == "" {
		savesDirName = DefaultSavesDirName
	}
	return &Paths{
		home:          home,
		backupDirName: backupDirName,
		savesDirName:  savesDirName,
	}, nil
}

// BackupRoot returns the directory under which timestamped backups are
// created, e.g. ~/StardewValleyCrossSaves_Backups.
func (p *Paths) BackupRoot() string {
	return filepath.Join(p.home, p.backupDirName)
}

// CloudTarget maps a cloud root to the directory the saves live in,
// always <cloudRoot>/<savesDirName>.
func (p *Paths) CloudTarget(cloudRoot string) string {
	return filepath.Join(cloudRoot, p.savesDirName)
}

// BackupName returns the backup directory name for the given creation
// time.
func BackupName(t time.Time) string {
	return BackupNamePrefix + t.Format(BackupTimestampFormat)
}

// ConfigFilePath returns the location of the optional user
// configuration file inside the XDG config home.
func ConfigFilePath() string {
	return filepath.Join(xdg.ConfigHome, ConfigDirName, ConfigFileName)
}

// ExpandHome expands a leading ~ or ~/ to the user's home directory.
// Paths without the shorthand are returned unchanged.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Normalize expands user-home shorthand and resolves the path to an
// absolute, canonical form. Symlinks in intermediate segments are
// resolved; the final segment is kept untouched so that a save
// directory which is itself a link still looks like one to the
// workflows' is-link checks.
func Normalize(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New(errors.ErrValidation, "path is empty")
	}

	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrValidation, "cannot resolve path %q", path)
	}

	dir, base := filepath.Split(abs)
	resolvedDir, dirErr := filepath.EvalSymlinks(filepath.Clean(dir))
	if dirErr != nil {
		if os.IsNotExist(dirErr) {
			return abs, nil
		}
		return "", errors.Wrapf(dirErr, errors.ErrValidation, "cannot resolve path %q", path)
	}
	return filepath.Join(resolvedDir, base), nil
}
