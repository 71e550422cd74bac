package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/podcast-flow/internal/episode"
	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
)

type implWatcher struct {
	opts      Options
	handler   EventHandler
	logger    logger.Logger
	watcher   *fsnotify.Watcher
	semaphore *semaphore
	wg        sync.WaitGroup

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// Start begins monitoring the inbox for new media files. It returns when ctx
// is done, after in-flight runs have finished.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.opts.MaxConcurrent, w.opts.Dir)
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(w.opts.Extensions, ", "))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !w.isMediaFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-media file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New recording detected: %s", event.Name)
			select {
			case <-time.After(w.opts.SettleDelay):
			case <-ctx.Done():
				continue
			}
			if err := w.dispatch(ctx, event.Name); err != nil {
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// dispatch hands path to the handler in its own goroutine, bounded by the
// semaphore. A file whose episode is already being processed is skipped.
func (w *implWatcher) dispatch(ctx context.Context, path string) error {
	key := path
	if src, err := episode.FromInput(path); err == nil {
		key = src.Name
	}

	w.mu.Lock()
	if _, busy := w.inFlight[key]; busy {
		w.mu.Unlock()
		w.logger.Warn(ctx, "Episode %s is already being processed, skipping %s", key, path)
		return nil
	}
	w.inFlight[key] = struct{}{}
	w.mu.Unlock()

	if err := w.semaphore.acquire(ctx); err != nil {
		w.finish(key)
		return err
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.semaphore.release()
		defer w.finish(key)

		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}()
	return nil
}

func (w *implWatcher) finish(key string) {
	w.mu.Lock()
	delete(w.inFlight, key)
	w.mu.Unlock()
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// isMediaFile checks if the file has one of the configured extensions
func (w *implWatcher) isMediaFile(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	return slices.Contains(w.opts.Extensions, strings.ToLower(filepath.Ext(path)))
}
