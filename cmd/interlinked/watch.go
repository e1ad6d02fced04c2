package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/interlinked/inspector"
	"github.com/viant/interlinked/inspector/graph"
	"github.com/viant/interlinked/interlink"
)

func newWatchCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Sync swift files in place whenever they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afs.New()
			cfg, _, err := opts.loadConfig(cmd, fs)
			if err != nil {
				return err
			}
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			logger := opts.logger(cmd.ErrOrStderr())
			w := newWatcher(interlink.New(cfg, interlink.WithLogger(logger), interlink.WithFS(fs)), fs, logger, opts.debounce)
			return w.run(cmd.Context(), location(root))
		},
	}
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 200*time.Millisecond, "quiet period before changed files are synced")
	return cmd
}

// watcher re-syncs changed sources, files it wrote itself are recognized by content hash
type watcher struct {
	service  *interlink.Service
	fs       afs.Service
	logger   *slog.Logger
	debounce time.Duration
	written  map[string]uint64
}

func newWatcher(service *interlink.Service, fs afs.Service, logger *slog.Logger, debounce time.Duration) *watcher {
	return &watcher{service: service, fs: fs, logger: logger, debounce: debounce, written: map[string]uint64{}}
}

func (w *watcher) run(ctx context.Context, root string) error {
	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer notify.Close()
	if err = w.add(ctx, notify, root); err != nil {
		return err
	}
	w.logger.Info("watching", slog.String("dir", root))

	pending := map[string]bool{}
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-notify.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if object, err := w.fs.Object(ctx, event.Name); err == nil && object.IsDir() {
					if err := w.add(ctx, notify, event.Name); err != nil {
						w.logger.Warn("failed to watch directory", slog.String("dir", event.Name), slog.String("error", err.Error()))
					}
					continue
				}
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) || !inspector.Supports(event.Name) {
				continue
			}
			pending[event.Name] = true
			timer.Reset(w.debounce)
		case err, ok := <-notify.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", slog.String("error", err.Error()))
		case <-timer.C:
			w.flush(ctx, pending)
			pending = map[string]bool{}
		}
	}
}

// flush syncs files changed within the quiet period in path order
func (w *watcher) flush(ctx context.Context, pending map[string]bool) {
	paths := make([]string, 0, len(pending))
	for path := range pending {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		w.sync(ctx, path)
	}
}

// add watches root and its subdirectories
func (w *watcher) add(ctx context.Context, notify *fsnotify.Watcher, root string) error {
	if err := notify.Add(root); err != nil {
		return err
	}
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if !info.IsDir() {
			return true, nil
		}
		if interlink.IsIgnoredDir(info.Name()) {
			return false, nil
		}
		return true, notify.Add(url.Path(url.Join(url.Join(baseURL, parent), info.Name())))
	}
	return w.fs.Walk(ctx, root, visitor)
}

func (w *watcher) sync(ctx context.Context, path string) {
	if data, err := w.fs.DownloadWithURL(ctx, path); err == nil {
		if hash, err := graph.Hash(data); err == nil && w.written[path] == hash {
			return
		}
	}
	result, err := w.service.SyncURL(ctx, path, true)
	if err != nil {
		w.logger.Warn("sync failed", slog.String("file", path), slog.String("error", err.Error()))
		return
	}
	w.written[path] = result.Hash
	if result.Changed {
		w.logger.Info("file synced", slog.String("file", path))
	}
}
