// Package batchverify implements the batch signature-verification engine:
// it decides which independent verification jobs can be grouped into
// batch-verification chunks, dispatches them through the crypto/bls
// Primitive, falls back to per-job verification on partial-batch
// failure, and returns a per-job verdict in the caller's original order.
package batchverify

import (
	"errors"
	"time"

	"github.com/prysmaticlabs/bls-batch-verifier/crypto/bls"
)

// Sentinel error kinds surfaced through WorkResult.Err. A cryptographically
// invalid signature is never one of these: it is a successful Result with
// Value false. These describe verification that could not be performed.
var (
	// ErrInvalidInput means a set was malformed: a bad point, a wrong
	// length, or a WorkReq with no sets at all.
	ErrInvalidInput = errors.New("batchverify: invalid input")
	// ErrPrimitiveFault means the crypto library raised an internal
	// error while checking a job individually.
	ErrPrimitiveFault = errors.New("batchverify: primitive fault")
	// ErrCancelled means the caller's cancellation signal fired before
	// a job was verified.
	ErrCancelled = errors.New("batchverify: cancelled")
	// ErrInternal is reported on every index of a request when the
	// worker recovers from a panic; the caller is expected to retry at
	// a higher level.
	ErrInternal = errors.New("batchverify: internal error")
)

// WorkOpts carries per-job caller assertions.
type WorkOpts struct {
	// Batchable, when true, asserts the job's sets may be interleaved
	// with sets from other jobs inside a single batch-verification
	// call. The caller is responsible for this being safe.
	Batchable bool
}

// WorkReq is a single caller-submitted verification job: it is valid iff
// every one of its sets verifies. There is no partial-job semantics.
type WorkReq struct {
	Sets []*bls.SignatureSet
	Opts WorkOpts
}

// WorkResult is a per-job verdict. Exactly one of the two shapes applies:
// a successful verification (Err == nil, Value carries the conjunction of
// all the job's sets) or a verification that could not be performed at
// all (Err != nil).
type WorkResult struct {
	// Value is only meaningful when Err == nil.
	Value bool
	Err   error
}

// Success builds a WorkResult reporting that verification was performed
// and reached the given verdict.
func Success(v bool) WorkResult { return WorkResult{Value: v} }

// Failure builds a WorkResult reporting that verification could not be
// performed at all.
func Failure(err error) WorkResult { return WorkResult{Err: err} }

// IsSuccess reports whether the job was actually verified (regardless of
// whether the signature turned out to be valid).
func (r WorkResult) IsSuccess() bool { return r.Err == nil }

// Metrics counts emitted by the engine per request. Opaque to the
// verifier's caller beyond what's here; WorkerRuntime also adds them to
// the process-wide Prometheus counters (see recordMetrics in metrics.go).
type Metrics struct {
	// BatchRetries counts chunks whose batch verification failed
	// (or errored) and were demoted to individual verification.
	BatchRetries int
	// BatchSigsSuccess counts sets admitted via a chunk whose batch
	// verification succeeded outright. Never incremented for a chunk
	// that was demoted, even if every job in it later verifies
	// individually.
	BatchSigsSuccess int
	// WorkerStart and WorkerEnd bracket request execution using a
	// monotonic clock.
	WorkerStart time.Time
	WorkerEnd   time.Time
}

// BlsWorkResult is the per-request outcome: one WorkResult per input
// WorkReq, indexed identically, plus the metrics gathered while
// processing the request.
type BlsWorkResult struct {
	Results []WorkResult
	Metrics Metrics
}
