package platform_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/errors"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/platform"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("symlink strategy tests are POSIX-only")
	}
}

func TestNew_PicksHostStrategy(t *testing.T) {
	strategy := platform.New()
	if runtime.GOOS == "windows" {
		assert.Equal(t, "junction", strategy.Name())
	} else {
		assert.Equal(t, "symlink", strategy.Name())
	}
}

func TestName(t *testing.T) {
	name := platform.Name()
	assert.Contains(t, []string{"macOS", "Windows", "Linux"}, name)
}

func TestSymlink_CreateIsRemove(t *testing.T) {
	skipOnWindows(t)
	s := &platform.SymlinkStrategy{}
	dir := t.TempDir()
	target := filepath.Join(dir, "cloud")
	link := filepath.Join(dir, "saves")
	require.NoError(t, os.Mkdir(target, 0755))

	require.NoError(t, s.CreateLink(link, target))
	assert.True(t, s.IsLink(link))

	resolved, err := s.Resolve(link)
	require.NoError(t, err)
	assert.Equal(t, target, resolved)

	require.NoError(t, s.RemoveLink(link))
	_, err = os.Lstat(link)
	assert.True(t, os.IsNotExist(err))
	assert.DirExists(t, target, "removing the link never touches the target")
}

func TestSymlink_IsLink_MissingPath(t *testing.T) {
	skipOnWindows(t)
	s := &platform.SymlinkStrategy{}
	assert.False(t, s.IsLink(filepath.Join(t.TempDir(), "gone")))
}

func TestSymlink_IsLink_RealDirectory(t *testing.T) {
	skipOnWindows(t)
	s := &platform.SymlinkStrategy{}
	assert.False(t, s.IsLink(t.TempDir()))
}

func TestSymlink_RemoveLink_NotALinkIsNoop(t *testing.T) {
	skipOnWindows(t)
	s := &platform.SymlinkStrategy{}
	dir := t.TempDir()

	require.NoError(t, s.RemoveLink(dir))
	assert.DirExists(t, dir, "real directories are never removed")

	require.NoError(t, s.RemoveLink(filepath.Join(dir, "gone")))
}

func TestSymlink_CreateLink_ExistingPathFails(t *testing.T) {
	skipOnWindows(t)
	s := &platform.SymlinkStrategy{}
	dir := t.TempDir()
	link := filepath.Join(dir, "saves")
	require.NoError(t, os.Mkdir(link, 0755))

	err := s.CreateLink(link, dir)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrLinkCreate))
	assert.Contains(t, err.Error(), "file exists", "native OS error text is preserved")
}

func TestJunction_HostOnly(t *testing.T) {
	if runtime.GOOS != "windows" {
		t.Skip("junction strategy requires Windows")
	}
	j := &platform.JunctionStrategy{}
	dir := t.TempDir()
	target := filepath.Join(dir, "cloud")
	link := filepath.Join(dir, "saves")
	require.NoError(t, os.Mkdir(target, 0755))

	require.NoError(t, j.CreateLink(link, target))
	assert.True(t, j.IsLink(link))
	require.NoError(t, j.RemoveLink(link))
	assert.False(t, j.IsLink(link))
	assert.DirExists(t, target)
}
