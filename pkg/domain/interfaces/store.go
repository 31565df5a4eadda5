package interfaces

import "github.com/m-mizutani/relwatch/pkg/domain/model"

// StateStore loads and persists the last-seen release per repository.
// Pure data access, no decision logic.
type StateStore interface {
	// Load reads the persisted state. A missing store is a normal first
	// run and returns an empty map, not an error.
	Load() (model.StateMap, error)

	// Save replaces the persisted content with the full map in a single
	// write. Called exactly once, after the whole pass.
	Save(states model.StateMap) error
}
