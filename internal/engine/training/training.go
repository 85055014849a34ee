// Package training drives a pipeline of trainable units through a
// parameter sweep, batch by batch.
package training

import (
	"context"
	"fmt"

	"go.trai.ch/phased/internal/core/domain"
	"go.trai.ch/phased/internal/core/ports"
	"go.trai.ch/phased/internal/engine/sweep"
	"go.trai.ch/phased/internal/fsutil"
	"go.trai.ch/zerr"
)

// DataFunc produces one batch of training data for a sweep assignment.
type DataFunc func(ctx context.Context, assignment sweep.Assignment) (any, error)

// Pipeline trains a sequence of units one after another. Each unit is
// trained on data that has been transformed by every unit before it,
// so later units learn on the output of earlier ones.
type Pipeline struct {
	units  []ports.Trainer
	logger ports.Logger

	// DumpPath, when set, is where unit snapshots are written before
	// and after a unit finishes training. An index and ".gob" suffix
	// are appended per unit.
	DumpPath string
}

// NewPipeline creates a Pipeline over the given units.
func NewPipeline(units []ports.Trainer, logger ports.Logger) *Pipeline {
	return &Pipeline{units: units, logger: logger}
}

// Train walks the sweep once per unit and feeds every generated batch
// through the pipeline up to that unit. batches gives the number of
// repetitions per sweep point for each unit and must have one entry
// per unit. Units that are not trainable or have already finished
// training are skipped.
func (p *Pipeline) Train(ctx context.Context, sw *sweep.Sweep, batches []int, data DataFunc) error {
	if len(batches) != len(p.units) {
		err := zerr.Wrap(domain.ErrBatchCountMismatch, "training pipeline")
		err = zerr.With(err, "units", len(p.units))
		return zerr.With(err, "batches", len(batches))
	}

	for i, unit := range p.units {
		if !unit.IsTrainable() {
			p.logger.Debug(fmt.Sprintf("unit %d is not trainable, skipping", i))
			continue
		}
		if !unit.IsTraining() {
			p.logger.Debug(fmt.Sprintf("unit %d already finished training, skipping", i))
			continue
		}

		if err := p.trainUnit(ctx, i, sw, batches[i], data); err != nil {
			return err
		}
	}

	return nil
}

// trainUnit trains a single unit on every sweep point, then closes its
// training. Snapshots are attempted before and after closing so a
// crash in StopTraining does not lose the trained state.
func (p *Pipeline) trainUnit(ctx context.Context, i int, sw *sweep.Sweep, repetitions int, data DataFunc) error {
	p.logger.Info(fmt.Sprintf("training unit %d over %d sweep points, %d batches each", i, sw.Len(), repetitions))

	for assignment := range sw.All() {
		for batch := 0; batch < repetitions; batch++ {
			if err := ctx.Err(); err != nil {
				return err
			}

			raw, err := data(ctx, assignment)
			if err != nil {
				wrapped := zerr.Wrap(err, domain.ErrDataGeneration.Error())
				wrapped = zerr.With(wrapped, "unit", i)
				return zerr.With(wrapped, "assignment", assignment.String())
			}

			transformed, err := p.feedThrough(i, raw)
			if err != nil {
				return err
			}

			if err := p.units[i].Train(transformed); err != nil {
				wrapped := zerr.Wrap(err, domain.ErrTrainingFailed.Error())
				wrapped = zerr.With(wrapped, "unit", i)
				return zerr.With(wrapped, "assignment", assignment.String())
			}
		}
	}

	p.dump(i)
	if err := p.units[i].StopTraining(); err != nil {
		return zerr.With(
			zerr.Wrap(err, domain.ErrTrainingFailed.Error()),
			"unit", i,
		)
	}
	p.dump(i)

	return nil
}

// feedThrough transforms raw data through every unit before index i.
func (p *Pipeline) feedThrough(i int, raw any) (any, error) {
	data := raw
	for j := 0; j < i; j++ {
		var err error
		data, err = p.units[j].Transform(data)
		if err != nil {
			return nil, zerr.With(
				zerr.Wrap(err, domain.ErrTrainingFailed.Error()),
				"unit", j,
			)
		}
	}
	return data, nil
}

// dump snapshots a unit to disk. Failures are logged, not fatal:
// losing a snapshot must not abort a long training run.
func (p *Pipeline) dump(i int) {
	if p.DumpPath == "" {
		return
	}

	path := fmt.Sprintf("%s.%d.gob", p.DumpPath, i)
	if _, err := fsutil.Rotate(path, domain.BackupSuffix); err != nil {
		p.logger.Warn(fmt.Sprintf("could not rotate unit snapshot %s: %v", path, err))
		return
	}
	if err := p.units[i].Save(path); err != nil {
		p.logger.Warn(fmt.Sprintf("could not snapshot unit %d to %s: %v", i, path, err))
	}
}
