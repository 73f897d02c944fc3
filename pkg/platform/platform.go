// Package platform isolates the one genuine OS-divergence point in the
// system: creating, detecting, and removing a directory link. POSIX
// systems get a symbolic link; Windows gets an NTFS junction, because
// directory symlinks there commonly require elevation while junctions
// do not.
//
// The variant is chosen once at process start and injected into the
// workflows, which stay platform-agnostic.
package platform

import "runtime"

// Strategy is the platform-specific capability to manage a directory
// link.
type Strategy interface {
	// Name identifies the link flavor for log output ("symlink" or
	// "junction").
	Name() string

	// CreateLink creates a directory-type link at linkPath resolving to
	// targetPath.
	CreateLink(linkPath, targetPath string) error

	// IsLink reports whether path is a link of this strategy's flavor.
	// A missing path is reported as false, never as an error.
	IsLink(path string) bool

	// RemoveLink unlinks the link entry itself, never the data it
	// points to. No-op if path does not exist or is not a link.
	RemoveLink(path string) error

	// Resolve returns the target a link at path points to.
	Resolve(path string) (string, error)
}

// New selects the strategy for the host OS.
func New() Strategy {
	if runtime.GOOS == "windows" {
		return &JunctionStrategy{}
	}
	return &SymlinkStrategy{}
}

// Name returns the user-facing platform name, matching how the tool
// reports it in detection hints.
func Name() string {
	switch runtime.GOOS {
	case "darwin":
		return "macOS"
	case "windows":
		return "Windows"
	default:
		return "Linux"
	}
}
