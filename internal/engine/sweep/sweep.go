// Package sweep implements a restartable iterator over the cartesian
// product of named parameter dimensions.
//
// A Sweep walks every combination of its dimensions in ripple-carry
// order: the last dimension advances fastest, like the rightmost digit
// of a counter. Dimensions only need to expose a length and a
// restartable sequence of values, so large or generated dimensions
// never have to be materialized.
package sweep

import (
	"fmt"
	"iter"
	"strings"

	"go.trai.ch/phased/internal/core/ports"
)

// Dimension is a single named axis of a sweep.
type Dimension struct {
	Name string

	length int
	values func() iter.Seq[any]
}

// Values creates a dimension over an explicit list of values.
func Values(name string, vals ...any) Dimension {
	return Dimension{
		Name:   name,
		length: len(vals),
		values: func() iter.Seq[any] {
			return func(yield func(any) bool) {
				for _, v := range vals {
					if !yield(v) {
						return
					}
				}
			}
		},
	}
}

// Ints creates a dimension over the integers 0..n-1.
func Ints(name string, n int) Dimension {
	return Seq(name, n, func(i int) any { return i })
}

// Seq creates a dimension of length n whose i-th value is produced by
// fn. The values are generated on demand, each time the sweep passes
// over the dimension.
func Seq(name string, n int, fn func(i int) any) Dimension {
	return Dimension{
		Name:   name,
		length: n,
		values: func() iter.Seq[any] {
			return func(yield func(any) bool) {
				for i := 0; i < n; i++ {
					if !yield(fn(i)) {
						return
					}
				}
			}
		},
	}
}

// Len returns the number of values in the dimension.
func (d Dimension) Len() int { return d.length }

// Sweep iterates over every combination of its dimensions.
type Sweep struct {
	dims   []Dimension
	length int
	logger ports.Logger
}

// New creates a sweep over the given dimensions. The total length is
// the product of the dimension lengths; a sweep with no dimensions or
// with any empty dimension has length zero.
func New(dims ...Dimension) *Sweep {
	length := 0
	if len(dims) > 0 {
		length = 1
		for _, d := range dims {
			length *= d.length
		}
	}
	return &Sweep{dims: dims, length: length}
}

// WithLogger enables debug logging of dimension transitions.
func (s *Sweep) WithLogger(logger ports.Logger) *Sweep {
	s.logger = logger
	return s
}

// Len returns the total number of assignments the sweep yields.
func (s *Sweep) Len() int { return s.length }

// All yields every assignment of the sweep in ripple-carry order, the
// last dimension advancing fastest. The sequence is restartable: every
// call starts the traversal from the beginning.
func (s *Sweep) All() iter.Seq[Assignment] {
	return func(yield func(Assignment) bool) {
		if s.length == 0 {
			return
		}

		cursors := make([]*cursor, len(s.dims))
		for i, d := range s.dims {
			cursors[i] = newCursor(d)
		}
		defer func() {
			for _, c := range cursors {
				c.stop()
			}
		}()

		current := make([]any, len(s.dims))
		for i, c := range cursors {
			v, ok := c.next()
			if !ok {
				return
			}
			current[i] = v
		}

		for {
			if !yield(s.assignment(current)) {
				return
			}

			// Advance like a counter: bump the last dimension, carry
			// into the one before it whenever a dimension wraps around.
			pos := len(s.dims) - 1
			for pos >= 0 {
				v, ok := cursors[pos].next()
				if ok {
					current[pos] = v
					break
				}
				s.logTransition(pos)
				cursors[pos].restart()
				v, ok = cursors[pos].next()
				if !ok {
					return
				}
				current[pos] = v
				pos--
			}
			if pos < 0 {
				return
			}
		}
	}
}

// assignment snapshots the current values into an Assignment.
func (s *Sweep) assignment(current []any) Assignment {
	names := make([]string, len(s.dims))
	vals := make([]any, len(current))
	for i, d := range s.dims {
		names[i] = d.Name
	}
	copy(vals, current)
	return Assignment{names: names, vals: vals}
}

func (s *Sweep) logTransition(pos int) {
	if s.logger == nil {
		return
	}
	indent := strings.Repeat("  ", len(s.dims)-1-pos)
	s.logger.Debug(fmt.Sprintf("%swrapped dimension %s", indent, s.dims[pos].Name))
}

// cursor pulls values from a dimension one at a time and can restart
// the underlying sequence.
type cursor struct {
	dim  Dimension
	next func() (any, bool)
	stop func()
}

func newCursor(d Dimension) *cursor {
	c := &cursor{dim: d}
	c.next, c.stop = iter.Pull(d.values())
	return c
}

func (c *cursor) restart() {
	c.stop()
	c.next, c.stop = iter.Pull(c.dim.values())
}

// Assignment is one combination of dimension values, ordered the way
// the dimensions were declared.
type Assignment struct {
	names []string
	vals  []any
}

// Names returns the dimension names in declaration order.
func (a Assignment) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Value returns the value assigned to the named dimension.
func (a Assignment) Value(name string) (any, bool) {
	for i, n := range a.names {
		if n == name {
			return a.vals[i], true
		}
	}
	return nil, false
}

// At returns the value of the i-th dimension.
func (a Assignment) At(i int) any { return a.vals[i] }

// Len returns the number of dimensions in the assignment.
func (a Assignment) Len() int { return len(a.names) }

// String renders the assignment as "name=value" pairs.
func (a Assignment) String() string {
	var b strings.Builder
	for i, n := range a.names {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s=%v", n, a.vals[i])
	}
	return b.String()
}
