package experiment

import (
	"encoding/gob"
	"math"
	"os"

	"go.trai.ch/phased/internal/core/domain"
	"go.trai.ch/zerr"
)

// Scaler is a trainable unit that learns the mean and spread of its
// input and normalizes data with them once training is closed.
type Scaler struct {
	count  int
	sum    float64
	sumSq  float64
	mean   float64
	stddev float64

	closed bool
}

// NewScaler creates an untrained Scaler.
func NewScaler() *Scaler { return &Scaler{} }

// IsTrainable reports whether the unit can be trained at all.
func (s *Scaler) IsTrainable() bool { return true }

// IsTraining reports whether the unit still accepts training data.
func (s *Scaler) IsTraining() bool { return !s.closed }

// Train accumulates the running statistics of one batch.
func (s *Scaler) Train(data any) error {
	values, err := asFloats(data)
	if err != nil {
		return err
	}
	for _, v := range values {
		s.count++
		s.sum += v
		s.sumSq += v * v
	}
	return nil
}

// StopTraining fixes the learned statistics. Further Train calls are
// rejected by the pipeline via IsTraining.
func (s *Scaler) StopTraining() error {
	if s.count > 0 {
		n := float64(s.count)
		s.mean = s.sum / n
		variance := s.sumSq/n - s.mean*s.mean
		if variance > 0 {
			s.stddev = math.Sqrt(variance)
		}
	}
	if s.stddev == 0 {
		s.stddev = 1
	}
	s.closed = true
	return nil
}

// Transform normalizes data with the learned mean and spread.
func (s *Scaler) Transform(data any) (any, error) {
	values, err := asFloats(data)
	if err != nil {
		return nil, err
	}
	if !s.closed {
		return values, nil
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - s.mean) / s.stddev
	}
	return out, nil
}

// Save writes the learned statistics to path.
func (s *Scaler) Save(path string) error {
	return saveGob(path, scalerState{
		Count: s.count, Sum: s.sum, SumSq: s.sumSq,
		Mean: s.mean, Stddev: s.stddev, Closed: s.closed,
	})
}

type scalerState struct {
	Count        int
	Sum, SumSq   float64
	Mean, Stddev float64
	Closed       bool
}

// Differencer replaces a series with its first differences. It has no
// parameters to learn.
type Differencer struct{}

// NewDifferencer creates a Differencer.
func NewDifferencer() *Differencer { return &Differencer{} }

func (d *Differencer) IsTrainable() bool { return false }

func (d *Differencer) IsTraining() bool { return false }

func (d *Differencer) Train(any) error { return nil }

func (d *Differencer) StopTraining() error { return nil }

// Transform returns the first differences of the series. The output
// is one sample shorter than the input.
func (d *Differencer) Transform(data any) (any, error) {
	values, err := asFloats(data)
	if err != nil {
		return nil, err
	}
	if len(values) < 2 {
		return []float64{}, nil
	}
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i] - values[i-1]
	}
	return out, nil
}

func (d *Differencer) Save(path string) error {
	return saveGob(path, struct{}{})
}

// asFloats accepts the two shapes a series shows up in: the native
// []float64 and the []any a JSON checkpoint round trip produces.
func asFloats(data any) ([]float64, error) {
	switch v := data.(type) {
	case []float64:
		return v, nil
	case []any:
		out := make([]float64, len(v))
		for i, raw := range v {
			switch n := raw.(type) {
			case float64:
				out[i] = n
			case int:
				out[i] = float64(n)
			default:
				return nil, zerr.Wrap(domain.ErrTrainingFailed, "series contains non-numeric value")
			}
		}
		return out, nil
	default:
		return nil, zerr.Wrap(domain.ErrTrainingFailed, "unsupported data type")
	}
}

func saveGob(path string, state any) error {
	f, err := os.Create(path) //nolint:gosec // snapshot path is built from the experiment name
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}
	defer f.Close() //nolint:errcheck

	if err := gob.NewEncoder(f).Encode(state); err != nil {
		return zerr.Wrap(err, domain.ErrStoreEncodeFailed.Error())
	}
	return nil
}
