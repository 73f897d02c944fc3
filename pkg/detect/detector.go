// Package detect locates the game's save directory and installation on
// the current machine by probing the places each platform is known to
// use, and enumerates the save games inside a saves directory.
package detect

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/filesystem"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/fsops"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/logging"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/types"
)

// Detector supplies the platform-specific candidate paths.
type Detector interface {
	// SavesPaths returns the candidate save directories, most likely
	// first.
	SavesPaths() []string

	// InstallPaths returns the candidate game installation directories.
	InstallPaths() []string

	// Hint is a human-readable pointer to the typical saves location.
	Hint() string
}

// New returns the detector for the host OS.
func New() Detector {
	switch runtime.GOOS {
	case "darwin":
		return &darwinDetector{}
	case "windows":
		return &windowsDetector{}
	default:
		return &linuxDetector{}
	}
}

type darwinDetector struct{}

func (d *darwinDetector) SavesPaths() []string {
	home, _ := os.UserHomeDir()
	return []string{
		filepath.Join(home, "Library", "Application Support", "StardewValley", "Saves"),
		filepath.Join(home, ".config", "StardewValley", "Saves"),
	}
}

func (d *darwinDetector) InstallPaths() []string {
	home, _ := os.UserHomeDir()
	return []string{
		"/Applications/Stardew Valley.app",
		filepath.Join(home, "Applications", "Stardew Valley.app"),
		filepath.Join(home, "Library", "Application Support", "Steam", "steamapps", "common", "Stardew Valley"),
		"/Applications/Stardew Valley GOG.app",
	}
}

func (d *darwinDetector) Hint() string {
	return "macOS: typical Saves = ~/Library/Application Support/StardewValley/Saves"
}

type windowsDetector struct{}

func (d *windowsDetector) SavesPaths() []string {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		appData = filepath.Join(home, "AppData", "Roaming")
	}
	return []string{filepath.Join(appData, "StardewValley", "Saves")}
}

func (d *windowsDetector) InstallPaths() []string {
	home, _ := os.UserHomeDir()
	paths := []string{
		`C:\Program Files (x86)\Steam\steamapps\common\Stardew Valley`,
		`C:\Program Files\Steam\steamapps\common\Stardew Valley`,
		`C:\GOG Games\Stardew Valley`,
		`C:\Program Files (x86)\GOG Galaxy\Games\Stardew Valley`,
	}
	steamConfig := filepath.Join(home, "AppData", "Local", "Steam")
	if _, err := os.Stat(steamConfig); err == nil {
		paths = append(paths, filepath.Join(steamConfig, "steamapps", "common", "Stardew Valley"))
	}
	return paths
}

func (d *windowsDetector) Hint() string {
	return `Windows: typical Saves = %AppData%\StardewValley\Saves`
}

type linuxDetector struct{}

func (d *linuxDetector) SavesPaths() []string {
	home, _ := os.UserHomeDir()
	return []string{filepath.Join(home, ".config", "StardewValley", "Saves")}
}

func (d *linuxDetector) InstallPaths() []string {
	home, _ := os.UserHomeDir()
	return []string{
		filepath.Join(home, ".steam", "steam", "steamapps", "common", "Stardew Valley"),
		filepath.Join(home, ".local", "share", "Steam", "steamapps", "common", "Stardew Valley"),
		filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam", "steamapps", "common", "Stardew Valley"),
	}
}

func (d *linuxDetector) Hint() string {
	return "Linux: typical Saves = ~/.config/StardewValley/Saves"
}

// Service runs the detection probes against a filesystem.
type Service struct {
	detector Detector
	fsys     types.FS
}

// NewService creates a detection service. A nil detector or filesystem
// falls back to the host defaults.
func NewService(detector Detector, fsys types.FS) *Service {
	if detector == nil {
		detector = New()
	}
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	return &Service{detector: detector, fsys: fsys}
}

// FindSavesPath returns the first existing candidate save directory.
func (s *Service) FindSavesPath() (string, bool) {
	logger := logging.GetLogger("detect")
	for _, candidate := range s.detector.SavesPaths() {
		info, err := s.fsys.Stat(candidate)
		if err == nil && info.IsDir() {
			logger.Debug().Str("path", candidate).Msg("Found saves directory")
			return candidate, true
		}
	}
	return "", false
}

// FindInstallation returns the first candidate that looks like a real
// game installation.
func (s *Service) FindInstallation() (string, bool) {
	for _, candidate := range s.detector.InstallPaths() {
		if !fsops.Exists(s.fsys, candidate) {
			continue
		}
		if s.looksLikeInstall(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// looksLikeInstall validates a candidate with a platform-appropriate
// marker: the executable on Windows/Linux, the bundle layout on macOS.
func (s *Service) looksLikeInstall(path string) bool {
	switch runtime.GOOS {
	case "darwin":
		if filepath.Ext(path) == ".app" {
			return true
		}
		if fsops.Exists(s.fsys, filepath.Join(path, "Contents")) {
			return true
		}
		return fsops.Exists(s.fsys, filepath.Join(path, "Stardew Valley.app"))
	case "windows":
		return fsops.Exists(s.fsys, filepath.Join(path, "Stardew Valley.exe"))
	default:
		return fsops.Exists(s.fsys, filepath.Join(path, "Stardew Valley"))
	}
}

// Hint returns the platform hint string.
func (s *Service) Hint() string {
	return s.detector.Hint()
}
