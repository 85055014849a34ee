// Package checkpoint implements the file-backed result store used to
// persist and resume experiment runs.
package checkpoint

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/phased/internal/core/domain"
	"go.trai.ch/phased/internal/core/ports"
	"go.trai.ch/phased/internal/fsutil"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// envelopeVersion identifies the on-disk checkpoint format.
const envelopeVersion = 1

// entry is one key/value pair of the persisted record. Entries keep
// the record's insertion order.
type entry struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// envelope is the on-disk checkpoint format.
type envelope struct {
	Version  int       `json:"version"`
	SavedAt  time.Time `json:"saved_at"`
	Checksum string    `json:"checksum"`
	Entries  []entry   `json:"entries"`
}

// Store implements ports.ResultStore on a single JSON file per
// checkpoint. Values that fail to serialize are skipped individually,
// so one unserializable result never loses the rest of the store.
type Store struct {
	logger ports.Logger
	now    func() time.Time
}

// NewStore creates a checkpoint store logging skips and integrity
// warnings to the given logger.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger, now: time.Now}
}

// Load reads the checkpoint at path into a fresh Record. Decoding each
// value from JSON yields values that share nothing with the file or
// with other loads.
func (s *Store) Load(path string) (*domain.Record, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-chosen by design
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(
				zerr.Wrap(domain.ErrReuseNotFound, "reuse checkpoint"),
				"path", path,
			)
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreDecodeFailed.Error())
	}

	if sum := checksum(env.Entries); sum != env.Checksum {
		s.logger.Warn(fmt.Sprintf(
			"%s: %s (stored %s, computed %s)",
			path, domain.ErrChecksumMismatch.Error(), env.Checksum, sum,
		))
	}

	record := domain.NewRecord()
	for _, e := range env.Entries {
		var value any
		if err := json.Unmarshal(e.Value, &value); err != nil {
			return nil, zerr.With(
				zerr.Wrap(err, domain.ErrStoreDecodeFailed.Error()),
				"key", e.Key,
			)
		}
		record.Set(e.Key, value)
	}
	return record, nil
}

// Save writes the record to path. The existing file, if any, is rotated
// to a backup first so a checkpoint is never silently lost. Entries are
// marshaled concurrently; a value that cannot be serialized is logged
// and skipped while the rest of the store is still written.
func (s *Store) Save(path string, record *domain.Record) error {
	keys := record.Keys()
	raws := make([]json.RawMessage, len(keys))
	failures := make([]error, len(keys))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, key := range keys {
		value, _ := record.Get(key)
		g.Go(func() error {
			data, err := json.Marshal(value)
			if err != nil {
				failures[i] = err
				return nil
			}
			raws[i] = data
			return nil
		})
	}
	// Marshal goroutines never return errors; skips are per-key.
	_ = g.Wait()

	entries := make([]entry, 0, len(keys))
	for i, key := range keys {
		if failures[i] != nil {
			s.logger.Error(zerr.With(
				zerr.Wrap(failures[i], "cannot serialize entry, skipping"),
				"key", key,
			))
			continue
		}
		entries = append(entries, entry{Key: key, Value: raws[i]})
	}

	env := envelope{
		Version:  envelopeVersion,
		SavedAt:  s.now(),
		Checksum: checksum(entries),
		Entries:  entries,
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreEncodeFailed.Error())
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
			return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
		}
	}

	rotated, err := fsutil.Rotate(path, domain.BackupSuffix)
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if rotated {
		s.logger.Debug(fmt.Sprintf("rotated previous checkpoint to %s%s", path, domain.BackupSuffix))
	}

	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

// checksum fingerprints the serialized entries so a tampered or
// truncated checkpoint is flagged on load. Values are compacted first:
// the indented file layout must not change the fingerprint.
func checksum(entries []entry) string {
	h := xxhash.New()
	var buf bytes.Buffer
	for _, e := range entries {
		_, _ = h.WriteString(e.Key)
		buf.Reset()
		if err := json.Compact(&buf, e.Value); err != nil {
			_, _ = h.Write(e.Value)
			continue
		}
		_, _ = h.Write(buf.Bytes())
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
