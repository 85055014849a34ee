package domain

import (
	"fmt"
	"iter"
	"strings"
)

// Record is an ordered mapping from string keys to arbitrary values.
// It backs both the experiment configuration and the accumulated result
// store. Keys are unique and iteration follows insertion order, so
// display and persistence are deterministic.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord creates an empty Record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Set stores value under key. A new key is appended to the insertion
// order; an existing key keeps its position.
func (r *Record) Set(key string, value any) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// GetString returns the value under key if it is a string.
func (r *Record) GetString(key string) (string, bool) {
	v, ok := r.values[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Delete removes key and its value. Removing an absent key is a no-op.
func (r *Record) Delete(key string) {
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of entries.
func (r *Record) Len() int {
	return len(r.keys)
}

// All iterates over the entries in insertion order.
func (r *Record) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range r.keys {
			if !yield(k, r.values[k]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the Record. Nested maps, slices and
// Records are copied recursively so the clone shares no mutable state
// with the original.
func (r *Record) Clone() *Record {
	clone := NewRecord()
	for k, v := range r.All() {
		clone.Set(k, deepCopy(v))
	}
	return clone
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = deepCopy(e)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = deepCopy(e)
		}
		return s
	case *Record:
		return t.Clone()
	default:
		return v
	}
}

// String renders the entries one per line in insertion order.
func (r *Record) String() string {
	var b strings.Builder
	b.WriteString("Record{\n")
	for k, v := range r.All() {
		fmt.Fprintf(&b, "  %s: %v\n", k, v)
	}
	b.WriteString("}")
	return b.String()
}
