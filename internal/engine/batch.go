package engine

import (
	"context"
	"fmt"
	"runtime"

	"github.com/redactyl/piiredact/internal/types"
	"golang.org/x/sync/errgroup"
	yaml "gopkg.in/yaml.v3"
)

// Job is one input row. Root is nil and Err set when the row failed to
// parse; such jobs become pass-through verdicts.
type Job struct {
	ID   string
	Raw  string
	Root *yaml.Node
	Err  error
}

// Workers normalises a thread count: zero or less means GOMAXPROCS.
func Workers(threads int) int {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	return threads
}

// BatchSize is how many rows a caller should hand to ProcessAll at once.
func BatchSize(threads int) int {
	threads = Workers(threads)
	if threads < 2 {
		threads = 2
	}
	if threads > 32 {
		threads = 32
	}
	return threads * 4
}

// ProcessAll runs jobs over a pool of threads workers. Verdicts are returned
// in job order. A panic while processing one record turns that record into
// a pass-through verdict; only context cancellation stops the batch.
func ProcessAll(ctx context.Context, p *Processor, jobs []Job, threads int) ([]types.Verdict, error) {
	out := make([]types.Verdict, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(Workers(threads))
	for i := range jobs {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = p.run(jobs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, ctx.Err()
}

func (p *Processor) run(j Job) (v types.Verdict) {
	defer func() {
		if r := recover(); r != nil {
			v = p.PassThrough(j.ID, j.Raw, fmt.Errorf("processing panicked: %v", r))
		}
	}()
	if j.Err != nil || j.Root == nil {
		err := j.Err
		if err == nil {
			err = errNoData
		}
		return p.PassThrough(j.ID, j.Raw, err)
	}
	v = p.Process(types.Record{ID: j.ID, Root: j.Root})
	v.Raw = j.Raw
	return v
}
