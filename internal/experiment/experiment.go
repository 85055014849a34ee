// Package experiment ships the built-in demo experiment: a small
// signal-processing pipeline split into generate, train and evaluate
// phases.
package experiment

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"go.trai.ch/phased/internal/core/domain"
	"go.trai.ch/phased/internal/core/ports"
	"go.trai.ch/phased/internal/engine/sweep"
	"go.trai.ch/phased/internal/engine/training"
)

// Config keys the demo experiment reads, with their defaults.
const (
	KeySamples     = "SAMPLES"
	KeyFrequencies = "FREQUENCIES"
	KeyBatches     = "BATCHES"

	defaultSamples = 512
	defaultBatches = 2
)

// resultGenerate is the key the generate phase's series is recorded
// under, derived from the phase name by the scheduler.
const (
	resultGenerate = "generate_result"
	resultTrain    = "train_result"
)

// Experiment holds the state shared between the demo phases: the
// pipeline units the train phase fits and the evaluate phase applies.
type Experiment struct {
	logger ports.Logger
	units  []ports.Trainer
}

// Phases builds the demo experiment and returns its phases in
// execution order.
func Phases(logger ports.Logger) []domain.Phase {
	e := &Experiment{
		logger: logger,
		units:  []ports.Trainer{NewScaler(), NewDifferencer()},
	}
	return []domain.Phase{
		&generatePhase{e},
		&trainPhase{e},
		&evaluatePhase{e},
	}
}

type generatePhase struct{ e *Experiment }

func (p *generatePhase) Name() string { return "generate" }

func (p *generatePhase) NeedsRun(_ context.Context, _, result *domain.Record) (bool, error) {
	return !result.Has(resultGenerate), nil
}

// Run produces a noiseless sum-of-sines series from the config.
func (p *generatePhase) Run(_ context.Context, config, _ *domain.Record) (domain.Outcome, error) {
	samples := intParam(config, KeySamples, defaultSamples)
	frequencies := floatsParam(config, KeyFrequencies, []float64{1, 5, 11})

	series := make([]float64, samples)
	for i := range series {
		t := float64(i) / float64(samples)
		for _, f := range frequencies {
			series[i] += math.Sin(2 * math.Pi * f * t)
		}
	}

	p.e.logger.Debug(fmt.Sprintf("generated %d samples from %d frequencies", samples, len(frequencies)))
	return domain.Done(series), nil
}

type trainPhase struct{ e *Experiment }

func (p *trainPhase) Name() string { return "train" }

func (p *trainPhase) NeedsRun(_ context.Context, _, result *domain.Record) (bool, error) {
	return !result.Has(resultTrain), nil
}

// Run fits the pipeline units on noisy variants of the generated
// series, sweeping over noise levels and segment offsets.
func (p *trainPhase) Run(ctx context.Context, config, result *domain.Record) (domain.Outcome, error) {
	raw, ok := result.Get(resultGenerate)
	if !ok {
		return domain.NeedsPrerequisite("generate"), nil
	}
	series, err := asFloats(raw)
	if err != nil {
		return domain.Outcome{}, err
	}

	batches := intParam(config, KeyBatches, defaultBatches)

	sw := sweep.New(
		sweep.Values("NOISE", 0.0, 0.01, 0.1),
		sweep.Ints("SEGMENT", 4),
	).WithLogger(p.e.logger)

	pipeline := training.NewPipeline(p.e.units, p.e.logger)
	repetitions := make([]int, len(p.e.units))
	for i := range repetitions {
		repetitions[i] = batches
	}

	err = pipeline.Train(ctx, sw, repetitions, func(_ context.Context, a sweep.Assignment) (any, error) {
		return noisySegment(series, a)
	})
	if err != nil {
		return domain.Outcome{}, err
	}

	return domain.Done(map[string]any{
		"units":        len(p.e.units),
		"sweep_points": sw.Len(),
		"batches":      batches,
	}), nil
}

type evaluatePhase struct{ e *Experiment }

func (p *evaluatePhase) Name() string { return "evaluate" }

// Run scores the trained pipeline by pushing the clean series through
// it and measuring the spread of the output.
func (p *evaluatePhase) Run(_ context.Context, _, result *domain.Record) (domain.Outcome, error) {
	if !result.Has(resultTrain) {
		return domain.NeedsPrerequisite("train"), nil
	}

	raw, ok := result.Get(resultGenerate)
	if !ok {
		return domain.NeedsPrerequisite("generate"), nil
	}
	series, err := asFloats(raw)
	if err != nil {
		return domain.Outcome{}, err
	}

	data := any(series)
	for _, unit := range p.e.units {
		data, err = unit.Transform(data)
		if err != nil {
			return domain.Outcome{}, err
		}
	}

	transformed, err := asFloats(data)
	if err != nil {
		return domain.Outcome{}, err
	}

	score := rootMeanSquare(transformed)
	p.e.logger.Info(fmt.Sprintf("pipeline output RMS: %.4f", score))
	return domain.Done(score), nil
}

// noisySegment cuts one of four segments out of the series and adds
// gaussian noise at the swept level. The noise source is seeded from
// the assignment so batches are reproducible.
func noisySegment(series []float64, a sweep.Assignment) (any, error) {
	noiseVal, _ := a.Value("NOISE")
	segmentVal, _ := a.Value("SEGMENT")
	noise, _ := noiseVal.(float64)
	segment, _ := segmentVal.(int)

	quarter := len(series) / 4
	start := segment * quarter
	end := start + quarter
	if end > len(series) {
		end = len(series)
	}

	rng := rand.New(rand.NewPCG(uint64(segment), math.Float64bits(noise)))
	out := make([]float64, end-start)
	for i, v := range series[start:end] {
		out[i] = v + noise*rng.NormFloat64()
	}
	return out, nil
}

func rootMeanSquare(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(values)))
}

// intParam reads an integer config value, tolerating the float64 a
// JSON or YAML round trip may have turned it into.
func intParam(config *domain.Record, key string, fallback int) int {
	raw, ok := config.Get(key)
	if !ok {
		return fallback
	}
	switch v := raw.(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return fallback
	}
}

func floatsParam(config *domain.Record, key string, fallback []float64) []float64 {
	raw, ok := config.Get(key)
	if !ok {
		return fallback
	}
	values, err := asFloats(raw)
	if err != nil {
		return fallback
	}
	return values
}
