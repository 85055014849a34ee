package ports

// Trainer is the opaque contract of a trainable unit in a training
// pipeline. The core never inspects what a unit learns; it only drives
// the train/stop/persist lifecycle and feeds each unit's output forward
// into the next.
//
//go:generate mockgen -source=trainer.go -destination=mocks/mock_trainer.go -package=mocks
type Trainer interface {
	// IsTrainable reports whether the unit can learn at all.
	IsTrainable() bool

	// IsTraining reports whether the unit still accepts training data.
	IsTraining() bool

	// Train consumes one batch of training data.
	Train(data any) error

	// StopTraining finalizes the unit; afterwards IsTraining is false.
	StopTraining() error

	// Transform passes data through the (partially) trained unit,
	// producing the input for the next unit in the pipeline.
	Transform(data any) (any, error)

	// Save persists the unit's state to path.
	Save(path string) error
}
