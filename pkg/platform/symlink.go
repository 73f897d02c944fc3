package platform

import (
	"os"

	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/errors"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/logging"
)

// SymlinkStrategy manages directory symbolic links on POSIX systems
// (Linux and macOS).
type SymlinkStrategy struct{}

func (s *SymlinkStrategy) Name() string { return "symlink" }

// CreateLink creates a symbolic link at linkPath pointing to
// targetPath.
func (s *SymlinkStrategy) CreateLink(linkPath, targetPath string) error {
	if err := os.Symlink(targetPath, linkPath); err != nil {
		return errors.Wrapf(err, errors.ErrLinkCreate, "failed to create symlink %s -> %s", linkPath, targetPath)
	}
	logger := logging.GetLogger("platform.symlink")
	logger.Debug().
		Str("link", linkPath).
		Str("target", targetPath).
		Msg("Created symlink")
	return nil
}

// IsLink checks the POSIX symlink file-type bit.
func (s *SymlinkStrategy) IsLink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

// RemoveLink unlinks the symlink entry. The target is untouched.
func (s *SymlinkStrategy) RemoveLink(path string) error {
	if !s.IsLink(path) {
		return nil
	}
	if err := os.Remove(path); err != nil {
		return errors.Wrapf(err, errors.ErrRemoval, "failed to remove symlink %s", path)
	}
	return nil
}

// Resolve reads the symlink target.
func (s *SymlinkStrategy) Resolve(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "failed to read symlink %s", path)
	}
	return target, nil
}
