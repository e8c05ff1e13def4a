package scene

import (
	"context"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/google/uuid"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/measure"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
)

// Compiled is one kernel-ready dictionary, tagged with the measure and
// spectral context it was compiled for
type Compiled struct {
	Measure string
	Context spectral.Context
	Dict    *kernel.Dict
}

// task pairs a (measure, spectral context) combination with its position in
// the overall compilation order
type task struct {
	id      int
	measure measure.Measure
	ctx     spectral.Context
}

// tasks enumerates the scene's compilation work: for each measure in
// configuration order, one task per spectral context in config order
func (s *Scene) tasks() []task {
	var out []task
	for _, m := range s.measures {
		for _, sctx := range m.SpectralConfig().Contexts() {
			out = append(out, task{id: len(out), measure: m, ctx: sctx})
		}
	}
	return out
}

// CompileAll compiles one dictionary per (measure, spectral context) pair,
// in deterministic order. It stops at the first failure.
func (s *Scene) CompileAll(ctx context.Context) ([]Compiled, error) {
	run := uuid.NewString()
	tasks := s.tasks()
	logs.WithTag("run_id", run).
		WithTag("dictionaries", len(tasks)).
		Info("compiling scene")
	start := time.Now()

	out := make([]Compiled, len(tasks))
	for _, t := range tasks {
		if err := ctx.Err(); err != nil {
			return nil, errors.New("compilation interrupted").Wrap(err)
		}
		compiled, err := s.compileTask(t)
		if err != nil {
			return nil, err
		}
		out[t.id] = compiled
	}

	logs.WithTag("run_id", run).
		WithTag("dictionaries", len(out)).
		WithTag("duration", time.Since(start)).
		Info("scene compiled")
	return out, nil
}

func (s *Scene) compileTask(t task) (Compiled, error) {
	start := time.Now()
	d, err := s.Compile(t.measure, t.ctx)
	if err != nil {
		instrumentCompilationError(t.measure.ID(), err)
		return Compiled{}, errors.New("compiling kernel dictionary failed").
			WithTag("measure", t.measure.ID()).
			WithTag("spectral_key", t.ctx.Key()).
			Wrap(err)
	}
	instrumentCompilation(t.measure.ID(), time.Since(start))

	logs.WithTag("measure", t.measure.ID()).
		WithTag("spectral_key", t.ctx.Key()).
		WithTag("entries", d.Len()).
		Debug("kernel dictionary compiled")
	return Compiled{Measure: t.measure.ID(), Context: t.ctx, Dict: d}, nil
}
