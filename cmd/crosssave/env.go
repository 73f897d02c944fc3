package crosssave

import (
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/config"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/detect"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/errors"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/paths"
)

// runtimeEnv bundles the configuration and path policy resolved once
// per invocation.
type runtimeEnv struct {
	cfg *config.Config
	pth *paths.Paths
}

func newEnv() (*runtimeEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	pth, err := paths.New(cfg.BackupDirName, cfg.SavesDirName)
	if err != nil {
		return nil, err
	}
	return &runtimeEnv{cfg: cfg, pth: pth}, nil
}

// resolveSaveDir picks the save directory: the flag wins, then the
// config file, then platform auto-detection.
func (e *runtimeEnv) resolveSaveDir(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if e.cfg.SaveDir != "" {
		return e.cfg.SaveDir, nil
	}
	service := detect.NewService(nil, nil)
	if found, ok := service.FindSavesPath(); ok {
		return found, nil
	}
	return "", errors.Newf(errors.ErrValidation,
		"no save directory found; pass --save-dir or set save_dir in the config. %s", service.Hint())
}

// resolveCloudTarget picks the cloud root (flag, then config) and maps
// it to the cloud target directory.
func (e *runtimeEnv) resolveCloudTarget(flagValue string) (string, error) {
	root := flagValue
	if root == "" {
		root = e.cfg.CloudRoot
	}
	if root == "" {
		return "", errors.New(errors.ErrValidation,
			"no cloud folder given; pass --cloud-root or set cloud_root in the config")
	}
	return e.pth.CloudTarget(paths.ExpandHome(root)), nil
}
