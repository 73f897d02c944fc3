package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/watch"
)

// sink collects progress lines across goroutines.
type sink struct {
	mu    sync.Mutex
	lines []string
}

func (s *sink) add(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
}

func (s *sink) count(substr string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, line := range s.lines {
		if len(line) >= len(substr) && line[:len(substr)] == substr {
			n++
		}
	}
	return n
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestNew_MissingSaveDir(t *testing.T) {
	_, err := watch.New(watch.Options{
		SaveDir:     filepath.Join(t.TempDir(), "gone"),
		CloudTarget: filepath.Join(t.TempDir(), "Saves"),
	})
	assert.Error(t, err)
}

func TestRun_MigratesAfterQuietPeriod(t *testing.T) {
	saveDir := t.TempDir()
	cloudTarget := filepath.Join(t.TempDir(), "Saves")

	s := &sink{}
	w, err := watch.New(watch.Options{
		SaveDir:     saveDir,
		CloudTarget: cloudTarget,
		Debounce:    100 * time.Millisecond,
		Log:         s.add,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(saveDir, "A.txt"), []byte("alpha"), 0644))

	waitFor(t, 5*time.Second, func() bool {
		_, err := os.Stat(filepath.Join(cloudTarget, "A.txt"))
		return err == nil
	})

	data, err := os.ReadFile(filepath.Join(cloudTarget, "A.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(data))

	cancel()
	require.NoError(t, <-done)
}

func TestRun_BurstCoalescesIntoOneMigration(t *testing.T) {
	saveDir := t.TempDir()
	cloudTarget := filepath.Join(t.TempDir(), "Saves")

	s := &sink{}
	w, err := watch.New(watch.Options{
		SaveDir:     saveDir,
		CloudTarget: cloudTarget,
		Debounce:    300 * time.Millisecond,
		Log:         s.add,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// A burst of writes well inside one debounce window.
	for i := 0; i < 5; i++ {
		name := filepath.Join(saveDir, "file"+string(rune('a'+i))+".txt")
		require.NoError(t, os.WriteFile(name, []byte("data"), 0644))
		time.Sleep(20 * time.Millisecond)
	}

	waitFor(t, 5*time.Second, func() bool { return s.count("[OK]") >= 1 })

	// Give a second migration a chance to (incorrectly) fire.
	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, 1, s.count("[OK]"), "one burst must produce one migration")

	entries, err := os.ReadDir(cloudTarget)
	require.NoError(t, err)
	assert.Len(t, entries, 5)

	cancel()
	require.NoError(t, <-done)
}

func TestRun_PicksUpNewSubdirectories(t *testing.T) {
	saveDir := t.TempDir()
	cloudTarget := filepath.Join(t.TempDir(), "Saves")

	w, err := watch.New(watch.Options{
		SaveDir:     saveDir,
		CloudTarget: cloudTarget,
		Debounce:    100 * time.Millisecond,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	sub := filepath.Join(saveDir, "Farmer_1")
	require.NoError(t, os.Mkdir(sub, 0755))
	// Let the watch on the new directory land before writing into it.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "SaveGameInfo"), []byte("x"), 0644))

	waitFor(t, 5*time.Second, func() bool {
		_, err := os.Stat(filepath.Join(cloudTarget, "Farmer_1", "SaveGameInfo"))
		return err == nil
	})

	cancel()
	require.NoError(t, <-done)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	w, err := watch.New(watch.Options{
		SaveDir:     t.TempDir(),
		CloudTarget: filepath.Join(t.TempDir(), "Saves"),
		Debounce:    50 * time.Millisecond,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}
