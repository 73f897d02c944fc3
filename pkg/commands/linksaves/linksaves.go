// Package linksaves relocates the save directory into the cloud target
// and replaces it with a directory link.
//
// The step ordering is the core safety invariant: the save data must
// exist in two places (cloud copy and local backup) before the original
// directory is ever removed. Completed steps are never rolled back on
// failure; the cloud copy and the backup are strictly additive and safe
// to leave in place.
package linksaves

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/internal/version"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/backup"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/errors"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/filesystem"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/fsops"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/logging"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/paths"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/platform"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/types"
)

// Options holds the inputs for the link workflow.
type Options struct {
	// SaveDir is the game's save directory. Must exist, be a directory,
	// and not already be a link.
	SaveDir string

	// CloudTarget is the directory inside the cloud root that becomes
	// authoritative once the link is in place.
	CloudTarget string

	// BackupRoot is where the timestamped pre-link backup is created.
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

// Run executes the link workflow:
// CheckNotAlreadyLinked, EnsureCloudDir, CopyToCloud, BackupLocal,
// RemoveLocal, CreateLink.
func Run(opts Options) *types.OperationResult {
	logger := logging.GetLogger("commands.linksaves")
	done := logging.LogOperationStart(logger, "link")
	defer done()

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

	saveDir, cloudTarget, backupRoot, err := validate(opts)
	if err != nil {
		return fail(sink, logger, err)
	}

	logger.Info().
		Str("save_dir", saveDir).
		Str("cloud_target", cloudTarget).
		Str("backup_root", backupRoot).
		Str("strategy", strategy.Name()).
		Msg("Starting link setup")
	sink("[LINK] Starting link setup...")

	// Guard against double-linking, which would silently point a link at
	// another link or at itself. No writes have happened yet.
	if strategy.IsLink(saveDir) {
		return fail(sink, logger, errors.Newf(errors.ErrAlreadyLinked,
			"the saves folder %s is already a link. Use restore first", saveDir))
	}

	info, err := fsys.Stat(saveDir)
	if err != nil {
		return fail(sink, logger, errors.Wrapf(err, errors.ErrValidation, "save directory %s does not exist", saveDir))
	}
	if !info.IsDir() {
		return fail(sink, logger, errors.Newf(errors.ErrValidation, "save path %s is not a directory", saveDir))
	}

	if err := fsops.EnsureDirectory(fsys, cloudTarget); err != nil {
		return fail(sink, logger, err)
	}

	// Cloud becomes authoritative going forward.
	sink("[LINK] Copying saves to cloud folder...")
	if err := fsops.CopyContents(fsys, saveDir, cloudTarget, true); err != nil {
		return fail(sink, logger, err)
	}

	// The backup runs after the cloud copy so a failure here still
	// leaves the cloud copy intact and the local directory untouched.
	sink("[LINK] Creating backup...")
	backupPath, err := fsops.BackupFolder(fsys, saveDir, backupRoot, paths.BackupNamePrefix)
	if err != nil {
		return fail(sink, logger, err)
	}
	manifest := backup.Manifest{
		SaveDir:     saveDir,
		CreatedAt:   time.Now(),
		ToolVersion: version.Version,
	}
	if err := backup.WriteManifest(fsys, backupPath, manifest); err != nil {
		return fail(sink, logger, err)
	}
	sink("[BACKUP] Created: " + backupPath)

	// Only now, with the data in two other places, remove the original.
	sink("[LINK] Removing original saves folder...")
	if err := fsops.RemovePath(fsys, saveDir); err != nil {
		return fail(sink, logger, err)
	}

	sink("[LINK] Creating " + strategy.Name() + "...")
	if err := strategy.CreateLink(saveDir, cloudTarget); err != nil {
		return fail(sink, logger, err)
	}

	sink("[OK] Link created successfully! Saves are now synced via cloud.")
	logger.Info().
		Str("save_dir", saveDir).
		Str("backup", backupPath).
		Msg("Link workflow completed")
	return &types.OperationResult{
		Success:    true,
		Message:    "Link created successfully!",
		BackupPath: backupPath,
	}
}

// validate normalizes the input paths and checks the preconditions that
// can be checked without mutation.
func validate(opts Options) (saveDir, cloudTarget, backupRoot string, err error) {
	saveDir, err = paths.Normalize(opts.SaveDir)
	if err != nil {
		return "", "", "", err
	}
	cloudTarget, err = paths.Normalize(opts.CloudTarget)
	if err != nil {
		return "", "", "", err
	}
	backupRoot, err = paths.Normalize(opts.BackupRoot)
	if err != nil {
		return "", "", "", err
	}

	cloudRoot := filepath.Dir(cloudTarget)
	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	if !fsops.Exists(fsys, cloudRoot) {
		return "", "", "", errors.Newf(errors.ErrValidation, "cloud folder %s does not exist", cloudRoot)
	}
	if saveDir == cloudTarget {
		return "", "", "", errors.New(errors.ErrValidation, "save directory and cloud target are the same path")
	}
	return saveDir, cloudTarget, backupRoot, nil
}

// fail converts an error into a failed OperationResult at the workflow
// boundary.
func fail(sink types.LogSink, logger zerolog.Logger, err error) *types.OperationResult {
	logger.Error().Err(err).Msg("Link workflow failed")
	sink("[ERROR] " + err.Error())
	return &types.OperationResult{
		Success: false,
		Message: err.Error(),
		Err:     err,
	}
}
