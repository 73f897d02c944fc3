package types

import (
	"io/fs"
	"time"
)

// FS abstracts the filesystem operations used by the facade and the
// workflows, so they can run against the real OS filesystem or a test
// double.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
	Chmod(name string, mode fs.FileMode) error
	Chtimes(name string, atime, mtime time.Time) error
}

// LogSink receives one human-readable line per workflow state
// transition, prefixed with a tag such as [LINK] or [OK]. The UI layer
// supplies one; workflows never write to stdout themselves.
type LogSink func(line string)

// DiscardSink drops all log lines. Used when the caller does not care
// about the human-readable stream.
func DiscardSink(string) {}

// OperationResult is the uniform return contract of every workflow.
// Workflows convert all failures into a result with Success=false;
// nothing is propagated past the orchestrator boundary.
type OperationResult struct {
	// Success indicates whether the workflow ran to completion
	Success bool

	// Message is the user-facing summary of the outcome
	Message string

	// BackupPath is set by a successful Link workflow and points at the
	// timestamped backup created before the original directory was
	// removed. Empty for Migrate and Restore.
	BackupPath string

	// Err carries the typed error for programmatic callers. Nil when
	// Success is true.
	Err error
}

// BackupRecord describes one timestamped backup under the backup root.
type BackupRecord struct {
	// Path is the backup directory itself
	Path string

	// SaveDir is the save directory the backup was taken from
	SaveDir string

	// CreatedAt is when the backup was created
	CreatedAt time.Time
}
