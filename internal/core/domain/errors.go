package domain

import "go.trai.ch/zerr"

var (
	// ErrPhaseNotFound is returned when a requested phase name does not
	// resolve to any registered phase.
	ErrPhaseNotFound = zerr.New("phase not found")

	// ErrReservedPhaseName is returned when a phase uses the reserved
	// name "all".
	ErrReservedPhaseName = zerr.New("phase name 'all' is reserved")

	// ErrEmptyPhaseName is returned when a phase has no name.
	ErrEmptyPhaseName = zerr.New("phase name must not be empty")

	// ErrDuplicatePhaseName is returned when two registered phases share
	// a name.
	ErrDuplicatePhaseName = zerr.New("duplicate phase name")

	// ErrNilPhaseFunc is returned when a FuncPhase is constructed
	// without a function.
	ErrNilPhaseFunc = zerr.New("phase function must not be nil")

	// ErrDependencyCycle is returned when prerequisite requests form a
	// cycle.
	ErrDependencyCycle = zerr.New("phase dependency cycle detected")

	// ErrPhaseExecutionFailed is returned from a scheduling pass that
	// was halted by a phase failure in stop-on-error mode.
	ErrPhaseExecutionFailed = zerr.New("phase execution failed")

	// ErrReuseNotFound is returned when a named reuse checkpoint does
	// not exist.
	ErrReuseNotFound = zerr.New("reuse checkpoint not found")

	// ErrStoreReadFailed is returned when a checkpoint cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read checkpoint")

	// ErrStoreDecodeFailed is returned when a checkpoint cannot be
	// decoded.
	ErrStoreDecodeFailed = zerr.New("failed to decode checkpoint")

	// ErrStoreEncodeFailed is returned when the checkpoint envelope
	// cannot be encoded.
	ErrStoreEncodeFailed = zerr.New("failed to encode checkpoint")

	// ErrStoreWriteFailed is returned when a checkpoint cannot be
	// written.
	ErrStoreWriteFailed = zerr.New("failed to write checkpoint")

	// ErrStoreCreateFailed is returned when the checkpoint directory
	// cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create checkpoint directory")

	// ErrChecksumMismatch is reported when a loaded checkpoint fails its
	// integrity check. Loading proceeds; the mismatch is logged.
	ErrChecksumMismatch = zerr.New("checkpoint checksum mismatch")

	// ErrConfigReadFailed is returned when the experiment config file
	// cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the experiment config file
	// cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrBatchCountMismatch is returned when a training pipeline has
	// fewer batch counts than units.
	ErrBatchCountMismatch = zerr.New("batch count list shorter than unit pipeline")

	// ErrDataGeneration is returned when the training data generator
	// fails.
	ErrDataGeneration = zerr.New("training data generation failed")

	// ErrTrainingFailed is returned when a unit's training step fails.
	ErrTrainingFailed = zerr.New("training step failed")
)
