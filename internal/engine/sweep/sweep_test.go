package sweep_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/phased/internal/engine/sweep"
)

func collect(sw *sweep.Sweep) []string {
	var out []string
	for a := range sw.All() {
		out = append(out, a.String())
	}
	return out
}

func TestSweep_Len(t *testing.T) {
	tests := []struct {
		name string
		sw   *sweep.Sweep
		want int
	}{
		{
			name: "two dimensions",
			sw:   sweep.New(sweep.Ints("a", 2), sweep.Ints("b", 3)),
			want: 6,
		},
		{
			name: "single dimension",
			sw:   sweep.New(sweep.Values("x", "p", "q")),
			want: 2,
		},
		{
			name: "no dimensions",
			sw:   sweep.New(),
			want: 0,
		},
		{
			name: "empty dimension zeroes the product",
			sw:   sweep.New(sweep.Ints("a", 4), sweep.Ints("b", 0)),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sw.Len())
			assert.Len(t, collect(tt.sw), tt.want)
		})
	}
}

func TestSweep_RippleCarryOrder(t *testing.T) {
	sw := sweep.New(
		sweep.Values("outer", "a", "b"),
		sweep.Ints("inner", 3),
	)

	want := []string{
		"outer=a inner=0",
		"outer=a inner=1",
		"outer=a inner=2",
		"outer=b inner=0",
		"outer=b inner=1",
		"outer=b inner=2",
	}
	assert.Equal(t, want, collect(sw))
}

func TestSweep_ThreeDimensions(t *testing.T) {
	sw := sweep.New(
		sweep.Ints("x", 2),
		sweep.Ints("y", 2),
		sweep.Ints("z", 2),
	)

	got := collect(sw)
	require.Len(t, got, 8)
	assert.Equal(t, "x=0 y=0 z=0", got[0])
	assert.Equal(t, "x=0 y=0 z=1", got[1])
	assert.Equal(t, "x=0 y=1 z=0", got[2])
	assert.Equal(t, "x=1 y=1 z=1", got[7])
}

func TestSweep_Restartable(t *testing.T) {
	sw := sweep.New(sweep.Ints("a", 2), sweep.Values("b", 1.5, 2.5))

	first := collect(sw)
	second := collect(sw)
	assert.Equal(t, first, second, "every traversal starts from the beginning")
}

func TestSweep_EarlyBreak(t *testing.T) {
	sw := sweep.New(sweep.Ints("a", 100), sweep.Ints("b", 100))

	count := 0
	for range sw.All() {
		count++
		if count == 5 {
			break
		}
	}
	assert.Equal(t, 5, count)

	// A fresh traversal is unaffected by the abandoned one.
	assert.Len(t, collect(sw), 10000)
}

func TestSweep_GeneratedValues(t *testing.T) {
	sw := sweep.New(sweep.Seq("pow", 4, func(i int) any { return 1 << i }))

	want := []string{"pow=1", "pow=2", "pow=4", "pow=8"}
	assert.Equal(t, want, collect(sw))
}

func TestAssignment_Accessors(t *testing.T) {
	sw := sweep.New(sweep.Values("name", "x"), sweep.Ints("idx", 1))

	var got []sweep.Assignment
	for a := range sw.All() {
		got = append(got, a)
	}
	require.Len(t, got, 1)

	a := got[0]
	assert.Equal(t, []string{"name", "idx"}, a.Names())
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, "x", a.At(0))

	v, ok := a.Value("idx")
	require.True(t, ok)
	assert.Equal(t, 0, v)

	_, ok = a.Value("missing")
	assert.False(t, ok)
}

func TestAssignment_SnapshotIsStable(t *testing.T) {
	sw := sweep.New(sweep.Ints("i", 3))

	var all []sweep.Assignment
	for a := range sw.All() {
		all = append(all, a)
	}

	// Assignments collected earlier must not be mutated by later steps.
	assert.Equal(t, 0, all[0].At(0))
	assert.Equal(t, 1, all[1].At(0))
	assert.Equal(t, 2, all[2].At(0))
}
