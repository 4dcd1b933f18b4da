package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/chorus/internal/config"
)

func TestWatcher_DebouncesBurstIntoOneBatch(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"main.go": "package main"})

	cfg := &config.Config{
		Project: config.Project{Root: root},
		Index:   config.Index{WatchMode: true, WatchDebounceMs: 50},
	}

	w, err := NewWatcher(cfg, New(cfg))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	path := filepath.Join(root, "main.go")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("package main // edit"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case batch := <-w.Events():
		assert.Contains(t, batch, path)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced batch")
	}
}

func TestNewWatcher_DisabledWhenWatchModeOff(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"main.go": "package main"})

	cfg := &config.Config{
		Project: config.Project{Root: root},
		Index:   config.Index{WatchMode: false},
	}

	w, err := NewWatcher(cfg, New(cfg))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go w.Run(ctx)

	select {
	case <-w.Events():
		t.Fatal("expected no events when watch mode is disabled")
	case <-time.After(150 * time.Millisecond):
	}
	cancel()
}
