package gnc

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type fleetEntry struct {
	sc       *Satellite
	schedule Schedule
}

// Fleet steps independent satellites in parallel. Satellites share no state, so
// each one is advanced by a single goroutine per step.
type Fleet struct {
	Workers int              // Maximum number of concurrent steps, defaults to GOMAXPROCS.
	OnStep  func(*Satellite) // Called after each satellite step, from the worker goroutine.
	entries []fleetEntry
}

// Add adds a satellite and its optional burn schedule to the fleet.
func (f *Fleet) Add(sc *Satellite, schedule Schedule) {
	f.entries = append(f.entries, fleetEntry{sc, schedule})
}

// Satellites returns the satellites of this fleet.
func (f *Fleet) Satellites() []*Satellite {
	scs := make([]*Satellite, len(f.entries))
	for i, e := range f.entries {
		scs[i] = e.sc
	}
	return scs
}

// Step commands and advances every satellite by dt seconds. If the context is
// cancelled during a step, the satellites already stepped are not rolled back.
func (f *Fleet) Step(ctx context.Context, dt float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	workers := f.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, e := range f.entries {
		e := e
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if e.schedule != nil {
				e.schedule.Command(e.sc)
			}
			e.sc.Advance(dt)
			if f.OnStep != nil {
				f.OnStep(e.sc)
			}
			return nil
		})
	}
	return g.Wait()
}

// Run performs the requested number of steps, stopping early if the context is done.
func (f *Fleet) Run(ctx context.Context, dt float64, steps int) error {
	for i := 0; i < steps; i++ {
		if err := f.Step(ctx, dt); err != nil {
			return err
		}
	}
	return nil
}
