package platform

import (
	"os"
	"os/exec"
	"strings"

	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/errors"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/logging"
)

// JunctionStrategy manages NTFS directory junctions on Windows.
// Junctions are used instead of directory symlinks because mklink /D
// requires elevation on most systems while /J does not.
type JunctionStrategy struct{}

func (j *JunctionStrategy) Name() string { return "junction" }

// CreateLink shells out to mklink /J. The native diagnostic text is
// preserved in the returned error.
func (j *JunctionStrategy) CreateLink(linkPath, targetPath string) error {
	cmd := exec.Command("cmd", "/c", "mklink", "/J", linkPath, targetPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			msg = "mklink failed"
		}
		return errors.Wrapf(err, errors.ErrLinkCreate, "failed to create junction %s -> %s: %s", linkPath, targetPath, msg)
	}
	logger := logging.GetLogger("platform.junction")
	logger.Debug().
		Str("link", linkPath).
		Str("target", targetPath).
		Msg("Created junction")
	return nil
}

// IsLink queries the reparse-point metadata for the path. A plain
// existence check is insufficient: junctions look like ordinary
// directories to naive checks.
func (j *JunctionStrategy) IsLink(path string) bool {
	if _, err := os.Lstat(path); err != nil {
		return false
	}
	cmd := exec.Command("cmd", "/c", "fsutil", "reparsepoint", "query", path)
	return cmd.Run() == nil
}

// RemoveLink deletes the junction entry itself. os.Remove unlinks the
// reparse point without descending into the target.
func (j *JunctionStrategy) RemoveLink(path string) error {
	if !j.IsLink(path) {
		return nil
	}
	if err := os.Remove(path); err != nil {
		return errors.Wrapf(err, errors.ErrRemoval, "failed to remove junction %s", path)
	}
	return nil
}

// Resolve reads the junction target. Go's Readlink understands
// junction reparse points on Windows.
func (j *JunctionStrategy) Resolve(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "failed to resolve junction %s", path)
	}
	return target, nil
}
