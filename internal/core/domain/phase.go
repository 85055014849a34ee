package domain

import (
	"context"
	"reflect"
	"runtime"
	"strings"

	"go.trai.ch/zerr"
)

// ReservedPhaseName is the selector that expands to every registered
// phase. No phase may carry this name.
const ReservedPhaseName = "all"

// PhaseSuffix is an optional suffix accepted when resolving phase
// names, so "train-phase" resolves to the phase named "train".
const PhaseSuffix = "-phase"

// Phase is a named unit of experiment work. Phases are constructed once
// before scheduling begins and may be run any number of times by a
// single scheduler.
type Phase interface {
	// Name returns the stable, case-insensitive identifier of the phase.
	Name() string

	// Run performs the phase's work. It may read the config, mutate the
	// result store, and return an Outcome carrying a value to record or
	// a prerequisite request.
	Run(ctx context.Context, config, result *Record) (Outcome, error)
}

// NeedsRunner is implemented by phases that can decide whether a run is
// needed, typically by probing the result store for their own output.
// Absent, the scheduler assumes the phase always needs to run.
type NeedsRunner interface {
	NeedsRun(ctx context.Context, config, result *Record) (bool, error)
}

// RunGate is implemented by phases that can veto their own execution.
// The gate is stronger than NeedsRun: it is consulted even for forced
// runs. Absent, the scheduler assumes the phase is always allowed.
type RunGate interface {
	AllowedToRun(ctx context.Context, config, result *Record) (bool, error)
}

type outcomeKind int

const (
	outcomeDone outcomeKind = iota
	outcomeNeedsPrerequisite
)

// Outcome is the result variant of a phase run: either the phase is
// done (optionally with a value to record), or it declares that another
// named phase must run first. The zero value is Done with no value.
type Outcome struct {
	kind   outcomeKind
	value  any
	prereq string
}

// Done returns an Outcome carrying a value to record under
// "<phase>_result". A nil value records nothing.
func Done(value any) Outcome {
	return Outcome{kind: outcomeDone, value: value}
}

// NeedsPrerequisite returns an Outcome declaring that the named phase
// must complete before this one can be re-attempted.
func NeedsPrerequisite(name string) Outcome {
	return Outcome{kind: outcomeNeedsPrerequisite, prereq: name}
}

// Value returns the recorded value, if any.
func (o Outcome) Value() (any, bool) {
	if o.kind != outcomeDone || o.value == nil {
		return nil, false
	}
	return o.value, true
}

// Prerequisite returns the requested prerequisite phase name, if any.
func (o Outcome) Prerequisite() (string, bool) {
	if o.kind != outcomeNeedsPrerequisite {
		return "", false
	}
	return o.prereq, true
}

// NormalizeName canonicalizes a phase name for comparison: names are
// case-insensitive and surrounding whitespace is ignored.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidatePhaseName rejects the reserved "all" selector and empty names.
func ValidatePhaseName(name string) error {
	n := NormalizeName(name)
	if n == "" {
		return ErrEmptyPhaseName
	}
	if n == ReservedPhaseName {
		return zerr.With(
			zerr.Wrap(ErrReservedPhaseName, "validating phase name"),
			"phase", name,
		)
	}
	return nil
}

// PhaseFunc is the signature of a plain function adapted into a phase.
type PhaseFunc func(ctx context.Context, config, result *Record) (Outcome, error)

// PredicateFunc is the signature of the optional needs-run and
// allowed-to-run predicates of a FuncPhase.
type PredicateFunc func(ctx context.Context, config, result *Record) (bool, error)

// FuncPhase adapts a plain function into a Phase. It is the function
// variant of the phase contract; struct phases implement the Phase
// interface directly.
type FuncPhase struct {
	name    string
	run     PhaseFunc
	needs   PredicateFunc
	allowed PredicateFunc
}

// FuncPhaseOption configures a FuncPhase.
type FuncPhaseOption func(*FuncPhase)

// WithNeedsRun attaches a needs-run predicate to a FuncPhase.
func WithNeedsRun(fn PredicateFunc) FuncPhaseOption {
	return func(p *FuncPhase) { p.needs = fn }
}

// WithRunGate attaches an allowed-to-run predicate to a FuncPhase.
func WithRunGate(fn PredicateFunc) FuncPhaseOption {
	return func(p *FuncPhase) { p.allowed = fn }
}

// NewFuncPhase wraps run into a phase. An empty name is derived from
// the function's name. The reserved name "all" is rejected.
func NewFuncPhase(name string, run PhaseFunc, opts ...FuncPhaseOption) (*FuncPhase, error) {
	if run == nil {
		return nil, ErrNilPhaseFunc
	}
	if name == "" {
		name = funcName(run)
	}
	if err := ValidatePhaseName(name); err != nil {
		return nil, err
	}
	p := &FuncPhase{name: name, run: run}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Name returns the phase name.
func (p *FuncPhase) Name() string { return p.name }

// Run invokes the wrapped function.
func (p *FuncPhase) Run(ctx context.Context, config, result *Record) (Outcome, error) {
	return p.run(ctx, config, result)
}

// NeedsRun evaluates the attached predicate; without one the phase
// always needs to run.
func (p *FuncPhase) NeedsRun(ctx context.Context, config, result *Record) (bool, error) {
	if p.needs == nil {
		return true, nil
	}
	return p.needs(ctx, config, result)
}

// AllowedToRun evaluates the attached predicate; without one the phase
// is always allowed.
func (p *FuncPhase) AllowedToRun(ctx context.Context, config, result *Record) (bool, error) {
	if p.allowed == nil {
		return true, nil
	}
	return p.allowed(ctx, config, result)
}

// funcName derives a short name from a function value, e.g.
// "go.trai.ch/phased/internal/experiment.generateData" becomes
// "generateData".
func funcName(fn any) string {
	full := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()
	if i := strings.LastIndex(full, "."); i >= 0 {
		full = full[i+1:]
	}
	return strings.TrimSuffix(full, "-fm")
}
