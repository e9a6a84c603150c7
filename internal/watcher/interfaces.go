package watcher

import "context"

// FileWatcher reports source file changes in debounced batches and can be
// paused while the caller rewrites files itself.
type FileWatcher interface {
	// Start begins watching, calling callback with each batch of changed paths.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop stops the watcher and releases its resources. Safe to call more than once.
	Stop() error

	// Pause stops firing callbacks but keeps accumulating events.
	Pause()

	// Resume fires immediately if events accumulated while paused.
	Resume()
}

// Matcher reports whether a changed path should be included in a batch.
type Matcher func(path string) bool
