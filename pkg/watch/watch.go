// Package watch re-runs the migrate workflow whenever the save
// directory changes, after a short quiet period. The game rewrites a
// whole save as a burst of file events, so migrations are debounced and
// executed one at a time on the event loop goroutine; the cloud folder
// only ever receives complete copies of whatever the last burst left
// behind.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/commands/migrate"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/errors"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/logging"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/types"
)

// DefaultDebounce is the quiet period after the last event before a
// migration runs.
const DefaultDebounce = 2 * time.Second

// Options holds the inputs for the watcher.
type Options struct {
	// SaveDir is the directory to watch
	SaveDir string

	// CloudTarget is where changed saves are migrated to
	CloudTarget string

	// Debounce overrides DefaultDebounce when positive
	Debounce time.Duration

	// FileSystem is passed through to the migrate workflow
	FileSystem types.FS

	// Log receives the migrate workflow's progress lines
	Log types.LogSink
}

// Watcher drives the watch loop.
type Watcher struct {
	opts    Options
	watcher *fsnotify.Watcher
}

// New creates a watcher for the save directory and its subdirectories.
func New(opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrWatch, "failed to create filesystem watcher")
	}

	if err := addRecursive(w, opts.SaveDir); err != nil {
		_ = w.Close()
		return nil, err
	}

	return &Watcher{opts: opts, watcher: w}, nil
}

// Run blocks until ctx is cancelled, migrating after each quiesced
// change burst. Event handling and migration run on this goroutine, so
// at most one workflow touches the save directory at a time.
func (w *Watcher) Run(ctx context.Context) error {
	logger := logging.GetLogger("watch")
	defer func() { _ = w.watcher.Close() }()

	logger.Info().
		Str("save_dir", w.opts.SaveDir).
		Dur("debounce", w.opts.Debounce).
		Msg("Watching save directory")

	timer := time.NewTimer(w.opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			logger.Debug().Str("op", event.Op.String()).Str("path", event.Name).Msg("Filesystem event")

			// New subdirectories need their own watch before the game
			// writes into them.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.watcher.Add(event.Name)
				}
			}

			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.opts.Debounce)
			pending = true

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("Watcher error")

		case <-timer.C:
			pending = false
			result := migrate.Run(migrate.Options{
				SaveDir:     w.opts.SaveDir,
				CloudTarget: w.opts.CloudTarget,
				FileSystem:  w.opts.FileSystem,
				Log:         w.opts.Log,
			})
			if !result.Success {
				logger.Error().Err(result.Err).Msg("Auto-migration failed")
			} else {
				logger.Info().Msg("Auto-migration completed")
			}
		}
	}
}

// addRecursive watches root and every subdirectory under it.
func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrWatch, "failed to walk %s", path)
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				return errors.Wrapf(err, errors.ErrWatch, "failed to watch %s", path)
			}
		}
		return nil
	})
}
