package batchverify

import (
	"context"
	"time"
)

// CollectorFlushInterval bounds how long a submitted job can sit in the
// Collector's queue before being flushed even if MaxBatch hasn't been
// reached, so a quiet gossip period never starves a lone submitter.
const CollectorFlushInterval = 50 * time.Millisecond

// CollectorMaxBatch is the default number of queued jobs that forces an
// immediate flush rather than waiting for the next tick.
const CollectorMaxBatch = 50

// pendingJob is one caller submission waiting in the Collector's queue.
type pendingJob struct {
	req   WorkReq
	resCh chan WorkResult
}

// Collector accumulates individually-submitted jobs from many concurrent
// producers — gossip validators, sync range requests, block processing —
// and periodically flushes them as a single WorkerRuntime.Submit call, so
// a WorkerRuntime's batching can amortize across producers instead of
// verifying everything it receives one job at a time.
//
// It is the asynchronous sibling of WorkerRuntime.Submit: callers that
// already hold a whole slice of WorkReq should call Submit directly, and
// only route through Collector when jobs arrive one at a time from
// independent goroutines.
type Collector struct {
	runtime  *WorkerRuntime
	maxBatch int
	interval time.Duration
	submitCh chan *pendingJob
	done     chan struct{}
}

// NewCollector starts a collector goroutine backed by runtime. Call Stop
// to shut it down; any jobs queued but not yet flushed at that point are
// failed with ErrCancelled.
func NewCollector(runtime *WorkerRuntime, maxBatch int, interval time.Duration) *Collector {
	if maxBatch <= 0 {
		maxBatch = CollectorMaxBatch
	}
	if interval <= 0 {
		interval = CollectorFlushInterval
	}
	c := &Collector{
		runtime:  runtime,
		maxBatch: maxBatch,
		interval: interval,
		submitCh: make(chan *pendingJob),
		done:     make(chan struct{}),
	}
	go c.loop()
	return c
}

// Submit enqueues a single job and blocks until its result is flushed and
// returned, or ctx is cancelled first.
func (c *Collector) Submit(ctx context.Context, req WorkReq) (WorkResult, error) {
	job := &pendingJob{req: req, resCh: make(chan WorkResult, 1)}

	select {
	case c.submitCh <- job:
	case <-ctx.Done():
		return WorkResult{}, ctx.Err()
	case <-c.done:
		return WorkResult{}, context.Canceled
	}

	select {
	case res := <-job.resCh:
		return res, nil
	case <-ctx.Done():
		return WorkResult{}, ctx.Err()
	}
}

// Stop flushes any pending jobs as ErrCancelled and shuts the collector
// goroutine down. Submit calls made after Stop returns will fail.
func (c *Collector) Stop() {
	close(c.done)
}

func (c *Collector) loop() {
	pending := make([]*pendingJob, 0, c.maxBatch)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			c.fail(pending, context.Canceled)
			return
		case job := <-c.submitCh:
			pending = append(pending, job)
			if len(pending) >= c.maxBatch {
				pending = c.flush(pending)
			}
		case <-ticker.C:
			if len(pending) > 0 {
				pending = c.flush(pending)
			}
		}
	}
}

// flush submits every pending job to the runtime as one batch and routes
// each result back to its waiting caller, returning a fresh empty queue.
func (c *Collector) flush(pending []*pendingJob) []*pendingJob {
	reqs := make([]WorkReq, len(pending))
	for i, p := range pending {
		reqs[i] = p.req
	}

	res, err := c.runtime.Submit(context.Background(), reqs)
	if err != nil {
		c.fail(pending, err)
		return pending[:0]
	}
	for i, p := range pending {
		p.resCh <- res.Results[i]
	}
	return pending[:0]
}

func (c *Collector) fail(pending []*pendingJob, _ error) {
	for _, p := range pending {
		p.resCh <- Failure(ErrCancelled)
	}
}
