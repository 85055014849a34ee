package experiment_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/phased/internal/core/domain"
	"go.trai.ch/phased/internal/core/ports/mocks"
	"go.trai.ch/phased/internal/experiment"
	"go.uber.org/mock/gomock"
)

func newPhases(t *testing.T) map[string]domain.Phase {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	byName := make(map[string]domain.Phase)
	for _, p := range experiment.Phases(logger) {
		byName[p.Name()] = p
	}
	return byName
}

func TestPhases_Names(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	phases := experiment.Phases(logger)
	require.Len(t, phases, 3)
	assert.Equal(t, "generate", phases[0].Name())
	assert.Equal(t, "train", phases[1].Name())
	assert.Equal(t, "evaluate", phases[2].Name())
}

func TestGenerate_ProducesSeries(t *testing.T) {
	phases := newPhases(t)

	config := domain.NewRecord()
	config.Set(experiment.KeySamples, 64)

	outcome, err := phases["generate"].Run(context.Background(), config, domain.NewRecord())
	require.NoError(t, err)

	v, ok := outcome.Value()
	require.True(t, ok)
	series, ok := v.([]float64)
	require.True(t, ok)
	assert.Len(t, series, 64)
}

func TestGenerate_NeedsRunProbesResult(t *testing.T) {
	phases := newPhases(t)
	checker, ok := phases["generate"].(domain.NeedsRunner)
	require.True(t, ok)

	result := domain.NewRecord()
	needs, err := checker.NeedsRun(context.Background(), domain.NewRecord(), result)
	require.NoError(t, err)
	assert.True(t, needs)

	result.Set("generate_result", []float64{1})
	needs, err = checker.NeedsRun(context.Background(), domain.NewRecord(), result)
	require.NoError(t, err)
	assert.False(t, needs)
}

func TestTrain_DeclaresPrerequisite(t *testing.T) {
	phases := newPhases(t)

	outcome, err := phases["train"].Run(context.Background(), domain.NewRecord(), domain.NewRecord())
	require.NoError(t, err)

	prereq, ok := outcome.Prerequisite()
	require.True(t, ok)
	assert.Equal(t, "generate", prereq)
}

func TestEvaluate_DeclaresPrerequisite(t *testing.T) {
	phases := newPhases(t)

	outcome, err := phases["evaluate"].Run(context.Background(), domain.NewRecord(), domain.NewRecord())
	require.NoError(t, err)

	prereq, ok := outcome.Prerequisite()
	require.True(t, ok)
	assert.Equal(t, "train", prereq)
}

func TestFullPipeline(t *testing.T) {
	phases := newPhases(t)
	ctx := context.Background()

	config := domain.NewRecord()
	config.Set(experiment.KeySamples, 128)
	config.Set(experiment.KeyBatches, 1)
	result := domain.NewRecord()

	outcome, err := phases["generate"].Run(ctx, config, result)
	require.NoError(t, err)
	series, _ := outcome.Value()
	result.Set("generate_result", series)

	outcome, err = phases["train"].Run(ctx, config, result)
	require.NoError(t, err)
	summary, ok := outcome.Value()
	require.True(t, ok)
	result.Set("train_result", summary)

	stats, ok := summary.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 2, stats["units"])
	assert.Equal(t, 12, stats["sweep_points"])

	outcome, err = phases["evaluate"].Run(ctx, config, result)
	require.NoError(t, err)

	score, ok := outcome.Value()
	require.True(t, ok)
	assert.Greater(t, score.(float64), 0.0)
}

func TestScaler(t *testing.T) {
	s := experiment.NewScaler()
	require.True(t, s.IsTrainable())
	require.True(t, s.IsTraining())

	require.NoError(t, s.Train([]float64{0, 2}))
	require.NoError(t, s.StopTraining())
	assert.False(t, s.IsTraining())

	out, err := s.Transform([]float64{2})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out.([]float64)[0], 1e-9)
}

func TestScaler_UntrainedTransformIsIdentity(t *testing.T) {
	s := experiment.NewScaler()

	out, err := s.Transform([]float64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, out)
}

func TestScaler_AcceptsDecodedSeries(t *testing.T) {
	s := experiment.NewScaler()

	// A checkpoint round trip turns series into []any.
	require.NoError(t, s.Train([]any{0.0, 2.0}))
	require.NoError(t, s.StopTraining())

	_, err := s.Transform([]any{1, 2})
	require.NoError(t, err)

	err = s.Train([]any{"not a number"})
	require.Error(t, err)
}

func TestScaler_Save(t *testing.T) {
	s := experiment.NewScaler()
	require.NoError(t, s.Train([]float64{1, 2, 3}))
	require.NoError(t, s.StopTraining())

	path := filepath.Join(t.TempDir(), "scaler.gob")
	require.NoError(t, s.Save(path))

	assert.FileExists(t, path)
}

func TestDifferencer(t *testing.T) {
	d := experiment.NewDifferencer()
	assert.False(t, d.IsTrainable())

	out, err := d.Transform([]float64{1, 3, 6})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, out)

	out, err = d.Transform([]float64{5})
	require.NoError(t, err)
	assert.Empty(t, out)
}
