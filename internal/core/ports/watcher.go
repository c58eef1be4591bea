package ports

import (
	"context"
	"iter"
)

//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks

// Watcher reports changes to a fixed set of files.
type Watcher interface {
	// Watch starts watching paths. The returned sequence yields each debounced
	// batch of changed paths, sorted, and ends when ctx is cancelled.
	Watch(ctx context.Context, paths []string) (iter.Seq[[]string], error)
}
