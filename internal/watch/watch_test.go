package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeKind(t *testing.T) {
	pending := Batch{}
	assert.Equal(t, Created, mergeKind(pending, "a.ts", Created))

	pending["a.ts"] = Created
	assert.Equal(t, Created, mergeKind(pending, "a.ts", Modified))

	pending["b.ts"] = Modified
	assert.Equal(t, Removed, mergeKind(pending, "b.ts", Removed))

	pending["c.ts"] = Removed
	assert.Equal(t, Created, mergeKind(pending, "c.ts", Created))
}

func TestWatcher_DebouncesBurstIntoOneBatch(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.ts")
	require.NoError(t, os.WriteFile(file, []byte("const a = 1"), 0o644))

	var batches []Batch
	done := make(chan struct{}, 10)

	w, err := New([]string{dir}, 30*time.Millisecond, func(p string) bool {
		return filepath.Ext(p) == ".ts"
	}, func(b Batch) {
		batches = append(batches, b)
		done <- struct{}{}
	}, nil)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(file, []byte("const a = 2"), 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced batch")
	}

	require.Len(t, batches, 1)
	assert.Contains(t, batches[0], file)
}
