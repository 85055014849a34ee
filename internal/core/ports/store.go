package ports

import "go.trai.ch/phased/internal/core/domain"

// ResultStore persists and restores the result record of an experiment
// run. Load must hand back values that share nothing with the backing
// file or with other loads, so resumed results can be mutated freely.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ResultStore interface {
	// Load reads the checkpoint at path into a fresh Record.
	// Returns domain.ErrReuseNotFound if no checkpoint exists there.
	Load(path string) (*domain.Record, error)

	// Save writes the record to path, rotating any existing file to a
	// backup first. Entries that cannot be serialized are skipped and
	// logged; the rest are still written.
	Save(path string, record *domain.Record) error
}
