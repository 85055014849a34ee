package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/phased/internal/adapters/config"
	"go.trai.ch/phased/internal/core/domain"
	"go.trai.ch/phased/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newTestLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	return config.NewLoader(logger)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_EmptyPath(t *testing.T) {
	loader := newTestLoader(t)

	record, err := loader.Load("")
	require.NoError(t, err)

	name, ok := record.GetString(domain.ConfigNameKey)
	require.True(t, ok)
	assert.Equal(t, config.DefaultName, name)

	unique, ok := record.GetString(domain.ConfigUniqueNameKey)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(unique, config.DefaultName+"_"), unique)
	assert.Contains(t, unique, "_on_")
}

func TestLoader_FullConfig(t *testing.T) {
	loader := newTestLoader(t)
	path := writeConfig(t, `
version: "1"
name: my experiment
params:
  SAMPLES: 1024
  FREQUENCIES: [1, 5, 11]
  LABEL: baseline
reuse: prior.result.json
result: out/custom.result.json
`)

	record, err := loader.Load(path)
	require.NoError(t, err)

	name, _ := record.GetString(domain.ConfigNameKey)
	assert.Equal(t, "my_experiment", name, "the name is sanitized for filesystem use")

	want := []string{
		domain.ConfigNameKey,
		domain.ConfigUniqueNameKey,
		"SAMPLES",
		"FREQUENCIES",
		"LABEL",
		domain.ConfigReuseFileKey,
		domain.ConfigResultFileKey,
	}
	assert.Equal(t, want, record.Keys(), "parameter order follows the file")

	v, _ := record.Get("SAMPLES")
	assert.Equal(t, 1024, v)

	v, _ = record.Get("FREQUENCIES")
	assert.Equal(t, []any{1, 5, 11}, v)

	reuse, _ := record.GetString(domain.ConfigReuseFileKey)
	assert.Equal(t, "prior.result.json", reuse)

	result, _ := record.GetString(domain.ConfigResultFileKey)
	assert.Equal(t, "out/custom.result.json", result)
}

func TestLoader_MinimalConfig(t *testing.T) {
	loader := newTestLoader(t)
	path := writeConfig(t, "name: demo\n")

	record, err := loader.Load(path)
	require.NoError(t, err)

	name, _ := record.GetString(domain.ConfigNameKey)
	assert.Equal(t, "demo", name)
	assert.False(t, record.Has(domain.ConfigReuseFileKey))
	assert.False(t, record.Has(domain.ConfigResultFileKey))
}

func TestLoader_MissingFile(t *testing.T) {
	loader := newTestLoader(t)

	_, err := loader.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}

func TestLoader_InvalidYAML(t *testing.T) {
	loader := newTestLoader(t)
	path := writeConfig(t, "name: [unclosed\n")

	_, err := loader.Load(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())
}

func TestLoader_ParamsMustBeMapping(t *testing.T) {
	loader := newTestLoader(t)
	path := writeConfig(t, "name: demo\nparams:\n  - 1\n  - 2\n")

	_, err := loader.Load(path)
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
}
