// Package config provides the experiment configuration loader.
package config

import (
	"fmt"
	"os"
	"time"

	"go.trai.ch/phased/internal/core/domain"
	"go.trai.ch/phased/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultName is the experiment name used when neither the config file
// nor the caller provides one.
const DefaultName = "run"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger

	now func() time.Time
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, now: time.Now}
}

// Load reads the config file at path into an ordered Record. An empty
// path yields a config carrying only NAME and UNIQUE_NAME. Parameters
// appear in the record in the order they are declared in the file.
func (l *Loader) Load(path string) (*domain.Record, error) {
	var file File
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path comes from the --config flag
		if err != nil {
			return nil, zerr.With(
				zerr.Wrap(err, domain.ErrConfigReadFailed.Error()),
				"path", path,
			)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, zerr.With(
				zerr.Wrap(err, domain.ErrConfigParseFailed.Error()),
				"path", path,
			)
		}
		l.Logger.Debug(fmt.Sprintf("loaded config from %s", path))
	} else {
		l.Logger.Info("no config specified, starting from an empty one")
	}

	name := file.Name
	if name == "" {
		name = DefaultName
	}
	name = domain.SanitizeName(name)

	record := domain.NewRecord()
	record.Set(domain.ConfigNameKey, name)
	record.Set(domain.ConfigUniqueNameKey, name+"_"+domain.UniqueSuffix(l.now()))

	if err := appendParams(record, &file.Params); err != nil {
		return nil, err
	}

	if file.Reuse != "" {
		record.Set(domain.ConfigReuseFileKey, file.Reuse)
	}
	if file.Result != "" {
		record.Set(domain.ConfigResultFileKey, file.Result)
	}

	return record, nil
}

// appendParams copies the params mapping into the record, preserving
// the declaration order of the YAML document.
func appendParams(record *domain.Record, params *yaml.Node) error {
	if params.Kind == 0 || params.IsZero() {
		return nil
	}
	if params.Kind != yaml.MappingNode {
		return zerr.Wrap(domain.ErrConfigParseFailed, "params must be a mapping")
	}

	// Mapping node content alternates key and value nodes.
	for i := 0; i+1 < len(params.Content); i += 2 {
		key := params.Content[i].Value
		var value any
		if err := params.Content[i+1].Decode(&value); err != nil {
			return zerr.With(
				zerr.Wrap(err, domain.ErrConfigParseFailed.Error()),
				"param", key,
			)
		}
		record.Set(key, value)
	}
	return nil
}
