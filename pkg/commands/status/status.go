// Package status reports the current state of the save directory and
// the known backups. It is strictly read-only.
package status

import (
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/backup"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/filesystem"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/fsops"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/logging"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/paths"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/platform"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/types"
)

// State classifies what currently occupies the save directory path.
type State string

const (
	// StateMissing means nothing exists at the save directory path
	StateMissing State = "missing"

	// StateDirectory means the save directory is a real directory
	StateDirectory State = "directory"

	// StateLinked means the save directory is a link to the cloud copy
	StateLinked State = "linked"
)

// Options holds the inputs for the status query.
type Options struct {
	// SaveDir is the save directory to inspect
	SaveDir string

	// BackupRoot is scanned for backups of SaveDir
	BackupRoot string

	// Strategy is the platform link strategy. Defaults to the host
	// platform's.
	Strategy platform.Strategy

	// FileSystem allows injecting a filesystem for testing. Defaults to
	// the OS filesystem.
	FileSystem types.FS
}

// Report is the result of the status query.
type Report struct {
	// SaveDir is the normalized save directory
	SaveDir string

	// State classifies the save directory
	State State

	// LinkTarget is the resolved link target when State is StateLinked
	LinkTarget string

	// Backups are the known backups of SaveDir, newest first
	Backups []types.BackupRecord
}

// Run inspects the save directory and the backup root.
func Run(opts Options) (*Report, error) {
	logger := logging.GetLogger("commands.status")

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	strategy := opts.Strategy
	if strategy == nil {
		strategy = platform.New()
	}

	saveDir, err := paths.Normalize(opts.SaveDir)
	if err != nil {
		return nil, err
	}

	report := &Report{SaveDir: saveDir, State: StateMissing}

	switch {
	case strategy.IsLink(saveDir):
		report.State = StateLinked
		if target, err := strategy.Resolve(saveDir); err == nil {
			report.LinkTarget = target
		}
	case fsops.Exists(fsys, saveDir):
		report.State = StateDirectory
	}

	if opts.BackupRoot != "" {
		backupRoot, err := paths.Normalize(opts.BackupRoot)
		if err != nil {
			return nil, err
		}
		records, err := backup.List(fsys, backupRoot)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if rec.SaveDir == saveDir {
				report.Backups = append(report.Backups, rec)
			}
		}
	}

	logger.Debug().
		Str("save_dir", saveDir).
		Str("state", string(report.State)).
		Int("backups", len(report.Backups)).
		Msg("Status computed")
	return report, nil
}
