// Package app implements the application layer for phased.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.trai.ch/phased/internal/core/domain"
	"go.trai.ch/phased/internal/core/ports"
	"go.trai.ch/phased/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	store        ports.ResultStore
	logger       ports.Logger
	tracer       ports.Tracer
	phases       []domain.Phase

	now func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	store ports.ResultStore,
	log ports.Logger,
	tracer ports.Tracer,
	phases []domain.Phase,
) *App {
	return &App{
		configLoader: loader,
		store:        store,
		logger:       log,
		tracer:       tracer,
		phases:       phases,
		now:          time.Now,
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// ConfigPath is the experiment config file. Empty means no config.
	ConfigPath string
	// Name overrides the experiment name from the config.
	Name string
	// Force runs phases even when they report they do not need to run.
	Force bool
	// StopOnError aborts the batch at the first failing phase.
	StopOnError bool
	// NoCheckpoint suppresses the checkpoint for this run.
	NoCheckpoint bool
	// NoSave disables result persistence entirely.
	NoSave bool
	// ReusePath seeds the run with a previous checkpoint.
	ReusePath string
	// ResultPath overrides where the checkpoint is written.
	ResultPath string
}

// Run executes the named phases of the experiment. An empty name list
// runs every registered phase.
func (a *App) Run(ctx context.Context, phaseNames []string, opts RunOptions) error {
	sched, config, err := a.buildScheduler(opts)
	if err != nil {
		return err
	}

	if reusePath := reusePath(opts, config); reusePath != "" {
		if err := sched.Reuse(reusePath); err != nil {
			return err
		}
	}

	if len(phaseNames) == 0 {
		phaseNames = []string{domain.ReservedPhaseName}
	}

	name, _ := config.GetString(domain.ConfigNameKey)
	a.logger.Info(fmt.Sprintf("running experiment %s", name))

	return sched.Run(ctx, phaseNames, scheduler.RunOptions{
		Force:          opts.Force,
		StopOnError:    opts.StopOnError,
		SkipCheckpoint: opts.NoCheckpoint,
	})
}

// Phases returns the names of the registered phases in execution order.
func (a *App) Phases() []string {
	names := make([]string, len(a.phases))
	for i, phase := range a.phases {
		names[i] = domain.NormalizeName(phase.Name())
	}
	return names
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// ConfigPath is the experiment config whose results are removed.
	ConfigPath string
	// Name overrides the experiment name from the config.
	Name string
}

// Clean removes the results directory of the experiment.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	config, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	name := opts.Name
	if name == "" {
		name, _ = config.GetString(domain.ConfigNameKey)
	}
	name = domain.SanitizeName(name)

	a.logger.Info(fmt.Sprintf("removing results of experiment %s...", name))
	if err := os.RemoveAll(name); err != nil {
		return zerr.Wrap(err, fmt.Sprintf("failed to remove results of %s", name))
	}
	a.logger.Info(fmt.Sprintf("removed results of experiment %s", name))

	return nil
}

// buildScheduler loads the config, applies overrides and assembles a
// scheduler for one run.
func (a *App) buildScheduler(opts RunOptions) (*scheduler.Scheduler, *domain.Record, error) {
	config, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}

	if opts.Name != "" {
		name := domain.SanitizeName(opts.Name)
		config.Set(domain.ConfigNameKey, name)
		config.Set(domain.ConfigUniqueNameKey, name+"_"+domain.UniqueSuffix(a.now()))
	}

	sched, err := scheduler.New(a.phases, config, a.store, a.logger, a.tracer, scheduler.Options{
		CheckpointPath: resultPath(opts, config),
		SaveResults:    !opts.NoSave,
	})
	if err != nil {
		return nil, nil, err
	}

	return sched, config, nil
}

// resultPath picks the checkpoint location: the flag wins over the
// config file, which wins over the default layout.
func resultPath(opts RunOptions, config *domain.Record) string {
	if opts.ResultPath != "" {
		return opts.ResultPath
	}
	if path, ok := config.GetString(domain.ConfigResultFileKey); ok && path != "" {
		return path
	}

	name, _ := config.GetString(domain.ConfigNameKey)
	uniqueName, _ := config.GetString(domain.ConfigUniqueNameKey)
	return domain.DefaultResultPath(name, uniqueName)
}

// reusePath picks the checkpoint to seed from, flag over config.
func reusePath(opts RunOptions, config *domain.Record) string {
	if opts.ReusePath != "" {
		return opts.ReusePath
	}
	if path, ok := config.GetString(domain.ConfigReuseFileKey); ok {
		return path
	}
	return ""
}
