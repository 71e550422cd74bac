package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
)

// Options configure a Watcher.
type Options struct {
	Dir           string
	Extensions    []string
	MaxConcurrent int
	// SettleDelay is how long to wait after a create event before handling
	// the file, so that copies can finish.
	SettleDelay time.Duration
}

// New creates a new Watcher instance with concurrency control
func New(opts Options, handler EventHandler, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(opts.Dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	w := newWatcher(opts, handler, log)
	w.watcher = watcher
	return w, nil
}

func newWatcher(opts Options, handler EventHandler, log logger.Logger) *implWatcher {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 2
	}
	if opts.SettleDelay == 0 {
		opts.SettleDelay = 500 * time.Millisecond
	}
	return &implWatcher{
		opts:      opts,
		handler:   handler,
		logger:    log,
		semaphore: newSemaphore(opts.MaxConcurrent),
		inFlight:  make(map[string]struct{}),
	}
}
