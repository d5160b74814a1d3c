package batchverify

import (
	"context"
	"fmt"
	"runtime/debug"
)

// Config configures a WorkerRuntime. NewWorkerRuntime fills in a default
// for every zero-valued field (threshold, Primitive, Clock), so a zero or
// partially filled Config is usable; DefaultConfig spells the defaults out.
type Config struct {
	// BatchableMinPerChunk is the Chunker's minimum chunk weight. Must
	// be in [1, 1024]; DefaultConfig sets it to DefaultBatchableMinPerChunk.
	BatchableMinPerChunk int
	// Primitive is the crypto collaborator; nil selects the crypto/bls
	// backed default.
	Primitive Primitive
	// Clock is injected so tests can control Metrics.WorkerStart/End.
	Clock Clock
	// InboxSize bounds how many Submit calls can be queued ahead of the
	// worker goroutine before Submit blocks. Zero means unbuffered.
	InboxSize int
}

// DefaultConfig returns a Config with the spec's defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchableMinPerChunk: DefaultBatchableMinPerChunk,
		Clock:                realClock{},
	}
}

type workMsg struct {
	ctx    context.Context
	reqs   []WorkReq
	respCh chan *BlsWorkResult
}

// WorkerRuntime hosts a single-threaded, cooperative executor: it
// receives WorkReq batches over a channel, runs them through the
// BatchVerifier state machine, and returns a BlsWorkResult. Exactly one
// request is in flight at a time; parallelism across requests is the
// caller's job, achieved by running multiple independent WorkerRuntimes.
type WorkerRuntime struct {
	cfg      *Config
	verifier *batchVerifier
	inbox    chan *workMsg
	done     chan struct{}
}

// NewWorkerRuntime starts a worker goroutine and returns a handle to it.
// Call Stop to shut the goroutine down once no more requests will be
// submitted.
func NewWorkerRuntime(cfg *Config) *WorkerRuntime {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Clock == nil {
		cfg.Clock = realClock{}
	}
	minPerChunk := cfg.BatchableMinPerChunk
	if minPerChunk <= 0 {
		minPerChunk = DefaultBatchableMinPerChunk
	}

	w := &WorkerRuntime{
		cfg:      cfg,
		verifier: newBatchVerifier(cfg.Primitive, minPerChunk),
		inbox:    make(chan *workMsg, cfg.InboxSize),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w
}

// Submit processes one request FIFO relative to every other Submit call
// on this runtime, and blocks until the result is ready or ctx is done.
// It never panics across this boundary: a panic inside the worker is
// converted into an Error{InternalError} result on every index.
func (w *WorkerRuntime) Submit(ctx context.Context, reqs []WorkReq) (*BlsWorkResult, error) {
	msg := &workMsg{ctx: ctx, reqs: reqs, respCh: make(chan *BlsWorkResult, 1)}

	// Checked on its own first: with a buffered inbox the send below could
	// otherwise win against done and leave msg queued with no worker left.
	select {
	case <-w.done:
		return nil, fmt.Errorf("batchverify: worker runtime is stopped")
	default:
	}

	select {
	case w.inbox <- msg:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-w.done:
		return nil, fmt.Errorf("batchverify: worker runtime is stopped")
	}

	select {
	case res := <-msg.respCh:
		return res, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Stop signals the worker goroutine to exit once its inbox has drained.
// Submit calls made after Stop returns will fail.
func (w *WorkerRuntime) Stop() {
	close(w.done)
}

func (w *WorkerRuntime) loop() {
	for {
		// done takes priority over inbox: once Stop has been called, a
		// message that's been sitting in the buffer is drained rather
		// than started, even though both cases may be ready at once.
		select {
		case <-w.done:
			w.drain()
			return
		default:
		}

		select {
		case msg := <-w.inbox:
			msg.respCh <- w.process(msg)
		case <-w.done:
			w.drain()
			return
		}
	}
}

// drain fails every message still sitting in the inbox once Stop has been
// called: these were accepted by Submit's first select but never started,
// so they get the same Cancelled verdict as a job cancelled mid-run rather
// than being left for their submitter to block on forever.
func (w *WorkerRuntime) drain() {
	for {
		select {
		case msg := <-w.inbox:
			results := make([]WorkResult, len(msg.reqs))
			for i := range results {
				results[i] = Failure(ErrCancelled)
			}
			now := w.cfg.Clock.Now()
			msg.respCh <- &BlsWorkResult{Results: results, Metrics: Metrics{WorkerStart: now, WorkerEnd: now}}
		default:
			return
		}
	}
}

// process runs one request to completion, recovering from any panic so
// that a bug in the Primitive or state machine never crosses the message
// boundary: it degrades to a whole-request InternalError instead.
func (w *WorkerRuntime) process(msg *workMsg) (out *BlsWorkResult) {
	start := w.cfg.Clock.Now()

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).WithField("stack", string(debug.Stack())).Error("worker panicked, failing request")
			results := make([]WorkResult, len(msg.reqs))
			for i := range results {
				results[i] = Failure(fmt.Errorf("%w: %v", ErrInternal, r))
			}
			out = &BlsWorkResult{
				Results: results,
				Metrics: Metrics{WorkerStart: start, WorkerEnd: w.cfg.Clock.Now()},
			}
		}
	}()

	if len(msg.reqs) == 0 {
		end := w.cfg.Clock.Now()
		return &BlsWorkResult{Results: nil, Metrics: Metrics{WorkerStart: start, WorkerEnd: end}}
	}

	results, metrics := w.verifier.run(msg.ctx, msg.reqs)
	metrics.WorkerStart = start
	metrics.WorkerEnd = w.cfg.Clock.Now()
	recordMetrics(metrics)

	return &BlsWorkResult{Results: results, Metrics: metrics}
}
