package checkpoint_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/phased/internal/adapters/checkpoint"
	"go.trai.ch/phased/internal/core/domain"
	"go.trai.ch/phased/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newTestStore(t *testing.T) (*checkpoint.Store, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	return checkpoint.NewStore(logger), logger
}

func TestStore_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	path := filepath.Join(t.TempDir(), "run.result.json")

	record := domain.NewRecord()
	record.Set("generate_result", []any{1.5, 2.5})
	record.Set("train_result", map[string]any{"units": 2.0})
	record.Set("score", 0.25)

	require.NoError(t, store.Save(path, record))

	loaded, err := store.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"generate_result", "train_result", "score"}, loaded.Keys())

	v, _ := loaded.Get("generate_result")
	assert.Equal(t, []any{1.5, 2.5}, v)

	v, _ = loaded.Get("train_result")
	assert.Equal(t, map[string]any{"units": 2.0}, v)
}

func TestStore_LoadIsolation(t *testing.T) {
	store, _ := newTestStore(t)
	path := filepath.Join(t.TempDir(), "run.result.json")

	record := domain.NewRecord()
	record.Set("a", 1)
	record.Set("b", []any{4, []any{5, 6, 7}})
	require.NoError(t, store.Save(path, record))

	first, err := store.Load(path)
	require.NoError(t, err)
	second, err := store.Load(path)
	require.NoError(t, err)

	// Mutating one load must not leak into another.
	v, _ := first.Get("b")
	v.([]any)[1].([]any)[0] = 99.0

	w, _ := second.Get("b")
	assert.Equal(t, []any{5.0, 6.0, 7.0}, w.([]any)[1])
}

func TestStore_SaveRotatesBackup(t *testing.T) {
	store, _ := newTestStore(t)
	path := filepath.Join(t.TempDir(), "run.result.json")

	record := domain.NewRecord()
	record.Set("round", 1)
	require.NoError(t, store.Save(path, record))

	record.Set("round", 2)
	require.NoError(t, store.Save(path, record))

	backup, err := store.Load(path + domain.BackupSuffix)
	require.NoError(t, err)
	v, _ := backup.Get("round")
	assert.Equal(t, 1.0, v)

	current, err := store.Load(path)
	require.NoError(t, err)
	v, _ = current.Get("round")
	assert.Equal(t, 2.0, v)
}

func TestStore_SaveCreatesDirectories(t *testing.T) {
	store, _ := newTestStore(t)
	path := filepath.Join(t.TempDir(), "demo", "run.result.json")

	record := domain.NewRecord()
	record.Set("a", 1)
	require.NoError(t, store.Save(path, record))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestStore_SaveSkipsUnserializableEntries(t *testing.T) {
	store, logger := newTestStore(t)
	path := filepath.Join(t.TempDir(), "run.result.json")

	logger.EXPECT().Error(gomock.Any()).Times(1)

	record := domain.NewRecord()
	record.Set("good", "value")
	record.Set("bad", make(chan int))
	record.Set("also_good", 7)

	require.NoError(t, store.Save(path, record))

	loaded, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"good", "also_good"}, loaded.Keys())
}

func TestStore_LoadMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Load(filepath.Join(t.TempDir(), "nope.result.json"))
	require.ErrorIs(t, err, domain.ErrReuseNotFound)
}

func TestStore_LoadCorrupt(t *testing.T) {
	store, _ := newTestStore(t)
	path := filepath.Join(t.TempDir(), "run.result.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := store.Load(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrStoreDecodeFailed.Error())
}

func TestStore_LoadChecksumMismatchWarnsAndProceeds(t *testing.T) {
	store, logger := newTestStore(t)
	path := filepath.Join(t.TempDir(), "run.result.json")

	tampered := `{
  "version": 1,
  "saved_at": "2026-01-01T00:00:00Z",
  "checksum": "00000000deadbeef",
  "entries": [{"key": "a", "value": 1}]
}`
	require.NoError(t, os.WriteFile(path, []byte(tampered), 0o644))

	logger.EXPECT().Warn(gomock.Any()).Times(1)

	loaded, err := store.Load(path)
	require.NoError(t, err)
	v, _ := loaded.Get("a")
	assert.Equal(t, 1.0, v)
}
