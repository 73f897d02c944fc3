// Package migrate copies the save directory into the cloud target
// without touching the original. It is the non-destructive sibling of
// the link workflow: any failure leaves both directories in their
// pre-call state except for partially copied entries at the
// destination, which the next run repairs by recopying.
package migrate

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/errors"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/filesystem"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/fsops"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/logging"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/paths"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/types"
)

// Options holds the inputs for the migrate workflow.
type Options struct {
	// SaveDir is the game's save directory. Must exist and be a
	// directory.
	SaveDir string

	// CloudTarget is the directory inside the cloud root the saves are
	// copied into. Its parent must exist; the target itself is created
	// on demand.
	CloudTarget string

	// FileSystem allows injecting a filesystem for testing. Defaults to
	// the OS filesystem.
	FileSystem types.FS

	// Log receives the human-readable progress lines.
	Log types.LogSink
}

// Run executes the migrate workflow: EnsureCloudDir, then CopyContents.
// No destructive step exists.
func Run(opts Options) *types.OperationResult {
	logger := logging.GetLogger("commands.migrate")

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	sink := opts.Log
	if sink == nil {
		sink = types.DiscardSink
	}

	saveDir, cloudTarget, err := validate(fsys, opts.SaveDir, opts.CloudTarget)
	if err != nil {
		return fail(sink, logger, err)
	}

	logger.Info().
		Str("save_dir", saveDir).
		Str("cloud_target", cloudTarget).
		Msg("Starting migration")
	sink("[MIGRATE] Starting migration to cloud...")

	if err := fsops.EnsureDirectory(fsys, cloudTarget); err != nil {
		return fail(sink, logger, err)
	}

	if err := fsops.CopyContents(fsys, saveDir, cloudTarget, true); err != nil {
		return fail(sink, logger, err)
	}

	sink("[OK] Migration complete! Saves copied to cloud.")
	logger.Info().Str("cloud_target", cloudTarget).Msg("Migration completed")
	return &types.OperationResult{
		Success: true,
		Message: "Saves migrated to cloud successfully!",
	}
}

// validate normalizes the input paths and checks the workflow
// preconditions before any filesystem mutation.
func validate(fsys types.FS, saveDir, cloudTarget string) (string, string, error) {
	saveDir, err := paths.Normalize(saveDir)
	if err != nil {
		return "", "", err
	}
	cloudTarget, err = paths.Normalize(cloudTarget)
	if err != nil {
		return "", "", err
	}

	info, err := fsys.Stat(saveDir)
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrValidation, "save directory %s does not exist", saveDir)
	}
	if !info.IsDir() {
		return "", "", errors.Newf(errors.ErrValidation, "save path %s is not a directory", saveDir)
	}

	cloudRoot := filepath.Dir(cloudTarget)
	if !fsops.Exists(fsys, cloudRoot) {
		return "", "", errors.Newf(errors.ErrValidation, "cloud folder %s does not exist", cloudRoot)
	}

	return saveDir, cloudTarget, nil
}

// fail converts an error into a failed OperationResult at the workflow
// boundary.
func fail(sink types.LogSink, logger zerolog.Logger, err error) *types.OperationResult {
	logger.Error().Err(err).Msg("Migrate workflow failed")
	sink("[ERROR] " + err.Error())
	return &types.OperationResult{
		Success: false,
		Message: err.Error(),
		Err:     err,
	}
}
