package ports

import "go.trai.ch/phased/internal/core/domain"

// ConfigLoader reads an experiment configuration into a Record.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the config file at path. An empty path yields an empty
	// config carrying only the defaults (NAME, UNIQUE_NAME). Parameter
	// order in the file is preserved in the Record.
	Load(path string) (*domain.Record, error)
}
