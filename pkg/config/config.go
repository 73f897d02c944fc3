// Package config loads the tool's configuration from embedded
// defaults, an optional user config file in the XDG config directory,
// and CROSSSAVE_* environment variables, in that order of precedence.
//
// The result is a plain value constructed once at process start and
// passed explicitly into the workflows; there is no singleton.
package config

import (
	_ "embed"
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	csrerr "github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/errors"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/paths"
)

//go:embed defaults.toml
var defaultConfig []byte

// Config holds the user-tunable settings.
type Config struct {
	// AppName is the user-facing application title
	AppName string `koanf:"app_name"`

	// SaveDir is the game's save directory. Empty means auto-detect.
	SaveDir string `koanf:"save_dir"`

	// CloudRoot is the cloud-synced folder the saves are relocated
	// into. The tool never syncs anything itself; third-party software
	// is assumed to mirror this folder across machines.
	CloudRoot string `koanf:"cloud_root"`

	// BackupDirName is the name of the backup root under the user's
	// home directory
	BackupDirName string `koanf:"backup_dir_name"`

	// SavesDirName is appended to CloudRoot to form the cloud target
	SavesDirName string `koanf:"saves_dir_name"`
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Load builds the configuration from defaults, the user config file
// (if present) and environment overrides.
func Load() (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, csrerr.Wrap(err, csrerr.ErrConfigLoad, "failed to load default config")
	}

	// 2. User config file, if present
	configPath := paths.ConfigFilePath()
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, csrerr.Wrapf(err, csrerr.ErrConfigLoad, "failed to load config from %s", configPath)
		}
	}

	// 3. Environment variables: CROSSSAVE_CLOUD_ROOT -> cloud_root
	if err := k.Load(env.Provider("CROSSSAVE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "CROSSSAVE_"))
	}), nil); err != nil {
		return nil, csrerr.Wrap(err, csrerr.ErrConfigLoad, "failed to load env vars")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, csrerr.Wrap(err, csrerr.ErrConfigLoad, "failed to unmarshal config")
	}
	return &cfg, nil
}
