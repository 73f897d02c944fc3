// Package fsops provides the primitive, reusable filesystem operations
// the workflows are built from: directory-merge copy, timestamped
// backup, safe removal, and existence checks. All operations go through
// types.FS so they can be exercised against a test filesystem.
package fsops

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/errors"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/logging"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/types"
)

// Exists reports whether path exists. Errors other than non-existence
// are treated as "does not exist"; callers that need the distinction
// use the FS directly.
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Lstat(path)
	return err == nil
}

// EnsureDirectory creates path and any missing parents. Idempotent.
func EnsureDirectory(fsys types.FS, path string) error {
	if err := fsys.MkdirAll(path, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", path)
	}
	return nil
}

// CopyContents merges every direct child of src into dst, creating dst
// if absent. With overwrite true, a same-named destination entry is
// deleted first and then deep-copied from the source. With overwrite
// false, pre-existing destination entries are skipped and logged; file
// contents are never silently merged.
func CopyContents(fsys types.FS, src, dst string, overwrite bool) error {
	logger := logging.GetLogger("fsops")

	if err := EnsureDirectory(fsys, dst); err != nil {
		return err
	}

	entries, err := fsys.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "failed to read source directory %s", src)
	}

	for _, entry := range entries {
		s := filepath.Join(src, entry.Name())
		d := filepath.Join(dst, entry.Name())

		if Exists(fsys, d) {
			if !overwrite {
				logger.Info().Str("path", d).Msg("Destination entry exists, skipping")
				continue
			}
			if err := RemovePath(fsys, d); err != nil {
				return err
			}
		}

		if err := copyEntry(fsys, s, d); err != nil {
			return err
		}
	}
	return nil
}

// BackupFolder deep-copies src into a newly created, collision-free
// directory named prefix plus a second-resolution timestamp under
// backupRoot, creating backupRoot if absent. Returns the backup
// directory's path. src is never mutated.
func BackupFolder(fsys types.FS, src, backupRoot, prefix string) (string, error) {
	if err := EnsureDirectory(fsys, backupRoot); err != nil {
		return "", errors.Wrapf(err, errors.ErrBackup, "failed to create backup root %s", backupRoot)
	}

	name := prefix + time.Now().Format("20060102-150405")
	backupPath := filepath.Join(backupRoot, name)
	for n := 2; Exists(fsys, backupPath); n++ {
		// Same-second collision; disambiguate with a numeric suffix.
		backupPath = filepath.Join(backupRoot, name+"-"+strconv.Itoa(n))
	}

	if err := copyDir(fsys, src, backupPath); err != nil {
		return "", errors.Wrapf(err, errors.ErrBackup, "failed to back up %s", src)
	}
	return backupPath, nil
}

// RemovePath deletes path. A symlink is unlinked without touching its
// target, a directory is removed recursively, and a missing path is a
// no-op.
func RemovePath(fsys types.FS, path string) error {
	info, err := fsys.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrRemoval, "failed to stat %s", path)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if err := fsys.Remove(path); err != nil {
			return errors.Wrapf(err, errors.ErrRemoval, "failed to remove link %s", path)
		}
		return nil
	}

	if info.IsDir() {
		if err := fsys.RemoveAll(path); err != nil {
			return errors.Wrapf(err, errors.ErrRemoval, "failed to remove directory %s", path)
		}
		return nil
	}

	if err := fsys.Remove(path); err != nil {
		return errors.Wrapf(err, errors.ErrRemoval, "failed to remove %s", path)
	}
	return nil
}

// copyEntry dispatches on the entry type. Symlinked children are
// recreated as links rather than followed, so a save folder containing
// links round-trips faithfully.
func copyEntry(fsys types.FS, src, dst string) error {
	info, err := fsys.Lstat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "failed to stat %s", src)
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := fsys.Readlink(src)
		if err != nil {
			return errors.Wrapf(err, errors.ErrCopy, "failed to read link %s", src)
		}
		if err := fsys.Symlink(target, dst); err != nil {
			return errors.Wrapf(err, errors.ErrCopy, "failed to recreate link %s", dst)
		}
		return nil
	case info.IsDir():
		return copyDir(fsys, src, dst)
	default:
		return copyFile(fsys, src, dst)
	}
}

// copyDir deep-copies a directory tree, preserving file permissions
// and modification times.
func copyDir(fsys types.FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "failed to stat %s", src)
	}
	if err := fsys.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "failed to create directory %s", dst)
	}

	entries, err := fsys.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "failed to read directory %s", src)
	}
	for _, entry := range entries {
		if err := copyEntry(fsys, filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// copyFile copies a single file with permissions and mtime preserved.
func copyFile(fsys types.FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "failed to stat %s", src)
	}

	data, err := fsys.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "failed to read %s", src)
	}
	if err := fsys.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "failed to write %s", dst)
	}

	// WriteFile's perm only applies on create; enforce it on overwrite.
	if err := fsys.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "failed to set permissions on %s", dst)
	}
	if err := fsys.Chtimes(dst, time.Now(), info.ModTime()); err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "failed to set times on %s", dst)
	}
	return nil
}
