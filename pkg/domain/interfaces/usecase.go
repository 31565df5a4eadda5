package interfaces

import "context"

// Watcher defines the interface for the single-pass run over all
// configured repositories.
type Watcher interface {
	// Run performs one pass: fetch, compare, notify, then persist state.
	// Only state load/save failures propagate; everything else is logged
	// per repository.
	Run(ctx context.Context) error
}
