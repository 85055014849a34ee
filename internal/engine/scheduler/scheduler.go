// Package scheduler runs experiment phases through their lifecycle and
// checkpoints the accumulated results.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.trai.ch/phased/internal/core/domain"
	"go.trai.ch/phased/internal/core/ports"
	"go.trai.ch/zerr"
)

// PhaseStatus represents the status of a phase.
type PhaseStatus string

const (
	// StatusPending indicates the phase is waiting to be executed.
	StatusPending PhaseStatus = "Pending"
	// StatusRunning indicates the phase is currently executing.
	StatusRunning PhaseStatus = "Running"
	// StatusSkipped indicates the phase reported it does not need to run.
	StatusSkipped PhaseStatus = "Skipped"
	// StatusForbidden indicates the phase refused permission to run.
	StatusForbidden PhaseStatus = "Forbidden"
	// StatusCompleted indicates the phase has finished successfully.
	StatusCompleted PhaseStatus = "Completed"
	// StatusFailed indicates the phase execution failed.
	StatusFailed PhaseStatus = "Failed"
)

// ResultKeySuffix is appended to a phase name to form the result key
// under which the phase's returned value is recorded.
const ResultKeySuffix = "_result"

// Options configures a Scheduler.
type Options struct {
	// CheckpointPath is where the result record is persisted after a run.
	CheckpointPath string
	// SaveResults disables checkpointing entirely when false.
	SaveResults bool
}

// RunOptions configures a single Run invocation.
type RunOptions struct {
	// Force runs phases even when they report they do not need to run.
	// Phases that refuse permission to run stay forbidden.
	Force bool
	// StopOnError aborts the batch at the first failing phase.
	StopOnError bool
	// SkipCheckpoint suppresses the checkpoint for this run only.
	SkipCheckpoint bool
}

// Scheduler executes registered phases in order, honoring their
// needs-run and permission checks, following declared prerequisites,
// and accumulating results into a shared record.
type Scheduler struct {
	order  []string
	index  map[string]domain.Phase
	config *domain.Record
	result *domain.Record
	store  ports.ResultStore
	logger ports.Logger
	tracer ports.Tracer
	opts   Options

	mu       sync.RWMutex
	statuses map[string]PhaseStatus
	counters map[string]int
}

// New creates a Scheduler over the given phases. Phase names are
// normalized to lowercase; the name "all" is reserved and duplicate
// names are rejected.
func New(
	phases []domain.Phase,
	config *domain.Record,
	store ports.ResultStore,
	logger ports.Logger,
	tracer ports.Tracer,
	opts Options,
) (*Scheduler, error) {
	s := &Scheduler{
		order:    make([]string, 0, len(phases)),
		index:    make(map[string]domain.Phase, len(phases)),
		config:   config,
		result:   domain.NewRecord(),
		store:    store,
		logger:   logger,
		tracer:   tracer,
		opts:     opts,
		statuses: make(map[string]PhaseStatus),
		counters: make(map[string]int),
	}

	for _, phase := range phases {
		name := domain.NormalizeName(phase.Name())
		if err := domain.ValidatePhaseName(name); err != nil {
			return nil, err
		}
		if _, exists := s.index[name]; exists {
			return nil, zerr.With(
				zerr.Wrap(domain.ErrDuplicatePhaseName, "registering phases"),
				"phase", name,
			)
		}
		s.index[name] = phase
		s.order = append(s.order, name)
	}

	return s, nil
}

// Names returns the registered phase names in registration order.
func (s *Scheduler) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Config returns the configuration record phases run against.
func (s *Scheduler) Config() *domain.Record { return s.config }

// Result returns the accumulated result record.
func (s *Scheduler) Result() *domain.Record { return s.result }

// Checkpoint returns the path results are persisted to.
func (s *Scheduler) Checkpoint() string { return s.opts.CheckpointPath }

// RunCount returns how many times the named phase has been invoked.
func (s *Scheduler) RunCount(name string) int {
	resolved, err := s.resolve(name)
	if err != nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[resolved]
}

// Status returns the current status of the named phase.
func (s *Scheduler) Status(name string) PhaseStatus {
	resolved, err := s.resolve(name)
	if err != nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statuses[resolved]
}

// Reuse loads a previously checkpointed result record from path and
// seeds the scheduler's result with deep copies of its entries, so
// phases that already ran can be skipped.
func (s *Scheduler) Reuse(path string) error {
	record, err := s.store.Load(path)
	if err != nil {
		return err
	}

	for key, value := range record.Clone().All() {
		s.result.Set(key, value)
	}
	s.logger.Info(fmt.Sprintf("reusing %d result entries from %s", record.Len(), path))

	return nil
}

// Run executes the named phases in registration order. The reserved
// name "all" selects every registered phase. Name resolution is
// case-insensitive and tolerates a trailing "-phase" suffix; unknown
// names fail the whole batch before anything runs.
//
// A failing phase is logged and the batch continues unless
// StopOnError is set. The result record is checkpointed after the
// batch regardless of failures, and Run reports an error only for
// unresolvable names, a StopOnError abort, or a failed checkpoint.
func (s *Scheduler) Run(ctx context.Context, names []string, opts RunOptions) error {
	selected, err := s.resolveNames(names)
	if err != nil {
		return err
	}

	s.initStatuses(selected)

	var failed []string
	for _, name := range selected {
		if ctx.Err() != nil {
			break
		}

		chain := map[string]bool{}
		if err := s.execute(ctx, name, opts.Force, chain); err != nil {
			failed = append(failed, name)
			s.logger.Error(err)
			if opts.StopOnError {
				s.logger.Warn("stopping after first failure")
				break
			}
		}
	}

	var runErr error
	if opts.StopOnError && len(failed) > 0 {
		runErr = zerr.With(
			zerr.Wrap(domain.ErrPhaseExecutionFailed, "batch aborted"),
			"phase", failed[0],
		)
	}
	if ctx.Err() != nil {
		runErr = errors.Join(runErr, ctx.Err())
	}

	if s.opts.SaveResults && !opts.SkipCheckpoint {
		if err := s.store.Save(s.opts.CheckpointPath, s.result); err != nil {
			return errors.Join(runErr, err)
		}
	}

	return runErr
}

// resolveNames maps requested names to registered phases before any
// phase runs. The reserved name "all" expands to every phase in
// registration order.
func (s *Scheduler) resolveNames(names []string) ([]string, error) {
	for _, name := range names {
		if domain.NormalizeName(name) == domain.ReservedPhaseName {
			return s.Names(), nil
		}
	}

	selected := make([]string, 0, len(names))
	for _, name := range names {
		resolved, err := s.resolve(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, resolved)
	}
	return selected, nil
}

// resolve normalizes a requested name and retries without the
// "-phase" suffix before giving up.
func (s *Scheduler) resolve(name string) (string, error) {
	normalized := domain.NormalizeName(name)
	if _, ok := s.index[normalized]; ok {
		return normalized, nil
	}

	if trimmed := strings.TrimSuffix(normalized, domain.PhaseSuffix); trimmed != normalized {
		if _, ok := s.index[trimmed]; ok {
			return trimmed, nil
		}
	}

	return "", zerr.With(
		zerr.Wrap(domain.ErrPhaseNotFound, "resolving phase name"),
		"phase", name,
	)
}

func (s *Scheduler) initStatuses(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		s.statuses[name] = StatusPending
	}
}

func (s *Scheduler) setStatus(name string, status PhaseStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[name] = status
}

func (s *Scheduler) incrementCounter(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[name]++
}

// execute runs one phase through its lifecycle: permission check,
// needs-run check, then the run itself, retried after any declared
// prerequisite has been executed. chain carries the names already on
// the current prerequisite path so cycles are detected instead of
// recursing forever.
func (s *Scheduler) execute(ctx context.Context, name string, force bool, chain map[string]bool) error {
	phase := s.index[name]
	chain[name] = true

	start := time.Now()
	defer func() {
		s.logger.Info(fmt.Sprintf("finished phase %s in %s", name, time.Since(start).Round(time.Millisecond)))
	}()

	// Permission is checked even in force mode. A phase that refuses
	// to run stays forbidden no matter how it was requested.
	if gate, ok := phase.(domain.RunGate); ok {
		allowed, err := gate.AllowedToRun(ctx, s.config, s.result)
		if err != nil {
			s.logger.Warn(fmt.Sprintf("permission check of phase %s failed, treating as forbidden: %v", name, err))
			allowed = false
		}
		if !allowed {
			s.setStatus(name, StatusForbidden)
			s.logger.Info(fmt.Sprintf("phase %s is not allowed to run", name))
			return nil
		}
	}

	if !force {
		if checker, ok := phase.(domain.NeedsRunner); ok {
			needs, err := checker.NeedsRun(ctx, s.config, s.result)
			if err != nil {
				s.logger.Warn(fmt.Sprintf("needs-run check of phase %s failed, running anyway: %v", name, err))
				needs = true
			}
			if !needs {
				s.setStatus(name, StatusSkipped)
				s.logger.Info(fmt.Sprintf("phase %s does not need to run, skipping", name))
				return nil
			}
		}
	}

	for {
		s.setStatus(name, StatusRunning)
		s.logger.Info(fmt.Sprintf("running phase %s", name))

		runCtx, span := s.tracer.Start(ctx, name)

		outcome, err := phase.Run(runCtx, s.config, s.result)
		if err != nil {
			s.incrementCounter(name)
			span.RecordError(err)
			span.End()
			s.setStatus(name, StatusFailed)
			return zerr.With(
				zerr.Wrap(err, domain.ErrPhaseExecutionFailed.Error()),
				"phase", name,
			)
		}

		// Declaring a prerequisite is not a run; only actual
		// executions count.
		if prerequisite, ok := outcome.Prerequisite(); ok {
			span.SetAttribute("phase.prerequisite", prerequisite)
			span.End()

			resolved, err := s.resolve(prerequisite)
			if err != nil {
				s.setStatus(name, StatusFailed)
				return err
			}
			if chain[resolved] {
				s.setStatus(name, StatusFailed)
				cycleErr := zerr.Wrap(domain.ErrDependencyCycle, "following prerequisites")
				cycleErr = zerr.With(cycleErr, "phase", name)
				return zerr.With(cycleErr, "prerequisite", resolved)
			}

			s.logger.Info(fmt.Sprintf("phase %s needs %s to run first", name, resolved))
			if err := s.execute(ctx, resolved, false, chain); err != nil {
				s.setStatus(name, StatusFailed)
				return err
			}
			continue
		}

		s.incrementCounter(name)

		if value, ok := outcome.Value(); ok {
			s.result.Set(name+ResultKeySuffix, value)
		}

		span.End()
		s.setStatus(name, StatusCompleted)
		s.logger.Info(fmt.Sprintf("phase %s completed", name))
		return nil
	}
}
