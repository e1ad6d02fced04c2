package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/interlinked/config"
	"github.com/viant/interlinked/inspector/graph"
	"github.com/viant/interlinked/interlink"
)

type syncBuffer struct {
	mux    sync.Mutex
	buffer bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.buffer.Write(p)
}

func (b *syncBuffer) String() string {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.buffer.String()
}

func newTestWatcher(out *syncBuffer, debounce time.Duration) *watcher {
	fs := afs.New()
	logger := slog.New(slog.NewTextHandler(out, nil))
	return newWatcher(interlink.New(config.DefaultConfig(), interlink.WithFS(fs), interlink.WithLogger(logger)), fs, logger, debounce)
}

func readFile(t *testing.T, path string) string {
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWatcher_Sync(t *testing.T) {
	path := writeFile(t, t.TempDir(), "Test.swift", unsynced)
	out := &syncBuffer{}
	w := newTestWatcher(out, 0)
	ctx := context.Background()

	written, err := graph.Hash([]byte(unsynced))
	require.NoError(t, err)
	w.written[path] = written
	w.sync(ctx, path)
	assert.Equal(t, unsynced, readFile(t, path), "own write is not synced again")

	delete(w.written, path)
	w.sync(ctx, path)
	assert.Equal(t, synced, readFile(t, path))
	expect, err := graph.Hash([]byte(synced))
	require.NoError(t, err)
	assert.Equal(t, expect, w.written[path])

	w.sync(ctx, path)
	assert.Equal(t, synced, readFile(t, path))
	assert.Equal(t, 1, strings.Count(out.String(), "file synced"))
}

func TestWatcher_Flush(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "A.swift", unsynced)
	second := writeFile(t, dir, "Sources/B.swift", unsynced)
	broken := writeFile(t, dir, "C.swift", "struct Test {\n")
	out := &syncBuffer{}
	w := newTestWatcher(out, 0)

	w.flush(context.Background(), map[string]bool{second: true, broken: true, first: true})
	assert.Equal(t, synced, readFile(t, first))
	assert.Equal(t, synced, readFile(t, second))
	assert.Equal(t, "struct Test {\n", readFile(t, broken))
	assert.Contains(t, out.String(), "sync failed")
	assert.Less(t, strings.Index(out.String(), first), strings.Index(out.String(), second))
}

func TestWatcher_Run(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Sources"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".build"), 0755))
	out := &syncBuffer{}
	w := newTestWatcher(out, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.run(ctx, dir)
	}()
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "watching")
	}, 5*time.Second, 10*time.Millisecond)

	first := writeFile(t, dir, "A.swift", unsynced)
	second := writeFile(t, dir, "Sources/B.swift", unsynced)
	ignored := writeFile(t, dir, ".build/C.swift", unsynced)
	assert.Eventually(t, func() bool {
		data, _ := os.ReadFile(first)
		other, _ := os.ReadFile(second)
		return string(data) == synced && string(other) == synced
	}, 5*time.Second, 20*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, unsynced, readFile(t, ignored))
	assert.Equal(t, 2, strings.Count(out.String(), "file synced"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
