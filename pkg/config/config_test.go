package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Stardew Valley Cross-Save Tool", cfg.AppName)
	assert.Equal(t, "StardewValleyCrossSaves_Backups", cfg.BackupDirName)
	assert.Equal(t, "Saves", cfg.SavesDirName)
	assert.Empty(t, cfg.SaveDir, "save dir defaults to auto-detect")
	assert.Empty(t, cfg.CloudRoot)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CROSSSAVE_CLOUD_ROOT", "/dropbox/StardewSync")
	t.Setenv("CROSSSAVE_SAVE_DIR", "/custom/Saves")
	t.Setenv("CROSSSAVE_BACKUP_DIR_NAME", "MyBackups")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/dropbox/StardewSync", cfg.CloudRoot)
	assert.Equal(t, "/custom/Saves", cfg.SaveDir)
	assert.Equal(t, "MyBackups", cfg.BackupDirName)

	// Untouched keys keep their defaults.
	assert.Equal(t, "Saves", cfg.SavesDirName)
}
