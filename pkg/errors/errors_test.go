package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/errors"
)

func TestNew(t *testing.T) {
	err := errors.New(errors.ErrValidation, "save directory missing")
	assert.Equal(t, "[VALIDATION] save directory missing", err.Error())
	assert.Equal(t, errors.ErrValidation, err.Code)
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrNoBackup, "no backup of %s", "/saves")
	assert.Equal(t, "[NO_BACKUP] no backup of /saves", err.Error())
}

func TestWrap_PreservesNativeText(t *testing.T) {
	native := stderrors.New("permission denied")
	err := errors.Wrap(native, errors.ErrLinkCreate, "failed to create symlink")

	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "permission denied", "native OS error text must survive wrapping")
	assert.Contains(t, err.Error(), "LINK_CREATE")
	assert.ErrorIs(t, err, native)
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrCopy, "should vanish"))
}

func TestIs_MatchesByCode(t *testing.T) {
	err := errors.Newf(errors.ErrAlreadyLinked, "already a link")
	target := errors.New(errors.ErrAlreadyLinked, "")

	assert.ErrorIs(t, err, target)
	assert.NotErrorIs(t, err, errors.New(errors.ErrCopy, ""))
}

func TestIs_ThroughWrapping(t *testing.T) {
	inner := errors.New(errors.ErrBackup, "backup failed")
	outer := fmt.Errorf("workflow: %w", inner)

	assert.ErrorIs(t, outer, errors.New(errors.ErrBackup, ""))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, errors.ErrRemoval, errors.GetCode(errors.New(errors.ErrRemoval, "x")))
	assert.Equal(t, errors.ErrUnknown, errors.GetCode(stderrors.New("plain")))
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", errors.New(errors.ErrValidation, "bad path"))
	assert.True(t, errors.HasCode(err, errors.ErrValidation))
	assert.False(t, errors.HasCode(err, errors.ErrCopy))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrCopy, "copy failed").WithDetail("path", "/saves/A.txt")
	assert.Equal(t, "/saves/A.txt", err.Details["path"])
}
