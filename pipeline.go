package dimuplot

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of a full pass over a source.
type Result struct {
	Hist    *Accumulator
	CutFlow *CutFlow
	Events  int64
	Pairs   int64
	Elapsed time.Duration
}

type worker struct {
	id       int
	beg, end int64

	hist    *Accumulator
	cutflow *CutFlow
	pairs   int64
	masses  []float64
}

// Run fills the dimuon mass spectrum of every event in src.
//
// Rows are split into cfg.Threads contiguous partitions, each processed by
// its own worker into a private histogram and cut-flow. The partial results
// are summed in partition order once all workers are done.
func Run(ctx context.Context, src Source, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := src.Len()
	if n == 0 {
		return nil, ErrNoEvents
	}

	log := cfg.logger()
	start := time.Now()
	cutflow := NewCutFlow(MinMuons(2))
	workers := partition(n, cfg.Threads)
	log.Info("processing events", "events", n, "workers", len(workers))

	grp, ctx := errgroup.WithContext(ctx)
	for i := range workers {
		w := &workers[i]
		w.hist = NewAccumulator(cfg.Bins, cfg.Low, cfg.High)
		w.cutflow = cutflow.clone()
		grp.Go(func() error {
			t0 := time.Now()
			err := src.Range(ctx, w.beg, w.end, w.process)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w.id, err)
			}
			log.Debug("worker done",
				"worker", w.id, "rows", w.end-w.beg, "pairs", w.pairs,
				"elapsed", time.Since(t0),
			)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Hist:    NewAccumulator(cfg.Bins, cfg.Low, cfg.High),
		CutFlow: cutflow,
		Events:  n,
	}
	for i := range workers {
		w := &workers[i]
		res.Hist.Merge(w.hist)
		res.CutFlow.Add(w.cutflow)
		res.Pairs += w.pairs
	}
	res.Elapsed = time.Since(start)

	log.Info("processed events",
		"events", res.Events, "pairs", res.Pairs,
		"underflow", res.Hist.Tally.Underflow, "overflow", res.Hist.Tally.Overflow,
		"elapsed", res.Elapsed,
	)
	return res, nil
}

func (w *worker) process(row int64, ev *Event) error {
	if err := ev.Validate(); err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	if !w.cutflow.Apply(ev) {
		return nil
	}

	w.masses = AppendPairMasses(w.masses[:0], ev)
	for _, m := range w.masses {
		w.hist.Fill(m)
	}
	w.pairs += int64(len(w.masses))
	return nil
}

// partition splits [0, n) into at most nthreads contiguous ranges whose
// sizes differ by at most one.
func partition(n int64, nthreads int) []worker {
	if nthreads <= 0 {
		nthreads = runtime.NumCPU()
	}
	if int64(nthreads) > n {
		nthreads = int(n)
	}

	var (
		workers = make([]worker, nthreads)
		size    = n / int64(nthreads)
		rem     = n % int64(nthreads)
		beg     int64
	)
	for i := range workers {
		end := beg + size
		if int64(i) < rem {
			end++
		}
		workers[i] = worker{id: i, beg: beg, end: end}
		beg = end
	}
	return workers
}
