package filelock

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireCreatesDirAndLockFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tasks")

	l, err := Acquire(dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, FileName))
	require.NoError(t, l.Release())
	require.NoError(t, l.Release(), "second release is a no-op")
}

func TestWithLockSerializes(t *testing.T) {
	d := Dir(t.TempDir())
	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := d.WithLock(func() error {
				mu.Lock()
				inside++
				maxSeen = max(maxSeen, inside)
				mu.Unlock()
				time.Sleep(5 * time.Millisecond)
				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}
