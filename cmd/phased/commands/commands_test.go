package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/phased/cmd/phased/commands"
	"go.trai.ch/phased/internal/app"
	"go.trai.ch/phased/internal/build"
)

type mockApp struct {
	runFunc   func(ctx context.Context, phaseNames []string, opts app.RunOptions) error
	cleanFunc func(ctx context.Context, opts app.CleanOptions) error
	phases    []string
}

func (m *mockApp) Run(ctx context.Context, phaseNames []string, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, phaseNames, opts)
	}
	return nil
}

func (m *mockApp) Phases() []string {
	return m.phases
}

func (m *mockApp) Clean(ctx context.Context, opts app.CleanOptions) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, opts)
	}
	return nil
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.RunOptions
		var capturedPhases []string

		mock := &mockApp{
			runFunc: func(_ context.Context, phaseNames []string, opts app.RunOptions) error {
				capturedOpts = opts
				capturedPhases = phaseNames
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{
			"run", "train", "evaluate",
			"--config", "exp.yaml",
			"--name", "override",
			"--force",
			"--stop-on-error",
			"--no-checkpoint",
			"--no-save",
			"--reuse", "prior.result.json",
			"--result", "out.result.json",
		})

		err := cli.Execute(context.Background())
		require.NoError(t, err)

		assert.Equal(t, []string{"train", "evaluate"}, capturedPhases)
		assert.Equal(t, "exp.yaml", capturedOpts.ConfigPath)
		assert.Equal(t, "override", capturedOpts.Name)
		assert.True(t, capturedOpts.Force)
		assert.True(t, capturedOpts.StopOnError)
		assert.True(t, capturedOpts.NoCheckpoint)
		assert.True(t, capturedOpts.NoSave)
		assert.Equal(t, "prior.result.json", capturedOpts.ReusePath)
		assert.Equal(t, "out.result.json", capturedOpts.ResultPath)
	})

	t.Run("no arguments runs everything", func(t *testing.T) {
		var capturedPhases []string

		mock := &mockApp{
			runFunc: func(_ context.Context, phaseNames []string, _ app.RunOptions) error {
				capturedPhases = phaseNames
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Empty(t, capturedPhases)
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "train"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Phases(t *testing.T) {
	mock := &mockApp{phases: []string{"generate", "train", "evaluate"}}

	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"phases"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "generate\ntrain\nevaluate\n", buf.String())
}

func TestCommands_Clean(t *testing.T) {
	var captured app.CleanOptions

	mock := &mockApp{
		cleanFunc: func(_ context.Context, opts app.CleanOptions) error {
			captured = opts
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"clean", "--config", "exp.yaml", "--name", "demo"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "exp.yaml", captured.ConfigPath)
	assert.Equal(t, "demo", captured.Name)
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), build.Version)
}

func TestCommands_UnknownCommand(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"explode"})

	err := cli.Execute(context.Background())
	require.Error(t, err)
}
