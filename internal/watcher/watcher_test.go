package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isToday(name string) bool { return name == "2024-06-15-tasks.json" }

func TestWatcher_DebouncesMatchingChanges(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	fired := make(chan struct{}, 10)

	w, err := New(dir, func() {
		calls.Add(1)
		fired <- struct{}{}
	}, WithDelay(50*time.Millisecond), WithMatch(isToday))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, nil)

	target := filepath.Join(dir, "2024-06-15-tasks.json")
	for i := range 5 {
		require.NoError(t, os.WriteFile(target, []byte{byte('0' + i)}, 0o600))
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("callback not invoked")
	}
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "burst collapses to one call")
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32

	w, err := New(dir, func() { calls.Add(1) },
		WithDelay(20*time.Millisecond), WithMatch(isToday))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, nil)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent"), func() {})
	require.Error(t, err)
}
