// Package restore brings the save directory back from a backup. It is
// the only path from the linked state back to a real directory.
package restore

import (
	"github.com/rs/zerolog"

	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/backup"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/errors"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/filesystem"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/fsops"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/logging"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/paths"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/platform"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/types"
)

// Options holds the inputs for the restore workflow.
type Options struct {
	// SaveDir is the location to restore into. Whatever currently
	// occupies it (link or real directory) is removed first.
	SaveDir string

	// BackupPath is the backup directory to restore from. When empty,
	// the most recent backup of SaveDir found under BackupRoot is used.
	BackupPath string

	// BackupRoot is scanned for backup manifests when BackupPath is
	// empty.
	BackupRoot string

	// Strategy is the platform link strategy. Defaults to the host
	// platform's.
	Strategy platform.Strategy

	// FileSystem allows injecting a filesystem for testing. Defaults to
	// the OS filesystem.
	FileSystem types.FS

	// Log receives the human-readable progress lines.
	Log types.LogSink
}

// Run executes the restore workflow: ValidateBackupPresent,
// RemoveCurrent, CopyBackupBack.
func Run(opts Options) *types.OperationResult {
	logger := logging.GetLogger("commands.restore")

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	strategy := opts.Strategy
	if strategy == nil {
		strategy = platform.New()
	}
	sink := opts.Log
	if sink == nil {
		sink = types.DiscardSink
	}

	saveDir, err := paths.Normalize(opts.SaveDir)
	if err != nil {
		return fail(sink, logger, err)
	}

	backupPath, err := resolveBackup(fsys, opts, saveDir)
	if err != nil {
		return fail(sink, logger, err)
	}

	logger.Info().
		Str("save_dir", saveDir).
		Str("backup", backupPath).
		Msg("Starting restore")

	sink("[RESTORE] Removing link/junction...")
	if strategy.IsLink(saveDir) {
		if err := strategy.RemoveLink(saveDir); err != nil {
			return fail(sink, logger, err)
		}
	} else if err := fsops.RemovePath(fsys, saveDir); err != nil {
		return fail(sink, logger, err)
	}

	sink("[RESTORE] Restoring from " + backupPath + "...")
	if err := fsops.EnsureDirectory(fsys, saveDir); err != nil {
		return fail(sink, logger, err)
	}
	if err := fsops.CopyContents(fsys, backupPath, saveDir, true); err != nil {
		return fail(sink, logger, err)
	}

	sink("[OK] Restore complete!")
	logger.Info().Str("save_dir", saveDir).Msg("Restore completed")
	return &types.OperationResult{
		Success: true,
		Message: "Backup restored successfully!",
	}
}

// resolveBackup picks the backup directory to restore from: the
// explicit path when given, otherwise the newest manifest under the
// backup root that matches saveDir.
func resolveBackup(fsys types.FS, opts Options, saveDir string) (string, error) {
	if opts.BackupPath != "" {
		backupPath, err := paths.Normalize(opts.BackupPath)
		if err != nil {
			return "", err
		}
		if !fsops.Exists(fsys, backupPath) {
			return "", errors.Newf(errors.ErrNoBackup, "backup %s no longer exists on disk", backupPath)
		}
		return backupPath, nil
	}

	if opts.BackupRoot == "" {
		return "", errors.New(errors.ErrNoBackup, "no backup available. Backup path not set")
	}
	backupRoot, err := paths.Normalize(opts.BackupRoot)
	if err != nil {
		return "", err
	}
	rec, ok := backup.FindLatest(fsys, backupRoot, saveDir)
	if !ok {
		return "", errors.Newf(errors.ErrNoBackup, "no backup of %s found under %s", saveDir, backupRoot)
	}
	return rec.Path, nil
}

// fail converts an error into a failed OperationResult at the workflow
// boundary.
func fail(sink types.LogSink, logger zerolog.Logger, err error) *types.OperationResult {
	logger.Error().Err(err).Msg("Restore workflow failed")
	sink("[ERROR] " + err.Error())
	return &types.OperationResult{
		Success: false,
		Message: err.Error(),
		Err:     err,
	}
}
