package batchverify

import (
	"context"
	"errors"
	"fmt"

	"github.com/prysmaticlabs/bls-batch-verifier/crypto/bls"
	"github.com/prysmaticlabs/bls-batch-verifier/crypto/bls/common"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "batchverify")

// Primitive is the cryptographic collaborator the BatchVerifier state
// machine drives: verify_set and verify_many from spec.md §4.1. It is an
// interface here purely so tests can substitute deterministic fakes;
// defaultPrimitive forwards to crypto/bls in production.
type Primitive interface {
	VerifySet(set *bls.SignatureSet) (bool, error)
	VerifyMany(sets []*bls.SignatureSet) (bool, error)
}

type defaultPrimitive struct{}

func (defaultPrimitive) VerifySet(set *bls.SignatureSet) (bool, error) { return bls.VerifySet(set) }

func (defaultPrimitive) VerifyMany(sets []*bls.SignatureSet) (bool, error) {
	return bls.VerifyMany(sets)
}

// batchVerifier runs one request through the state machine described in
// spec.md §4.4: Split -> Chunk -> TryBatch -> (demote on failure) ->
// VerifyIndividually -> Assemble.
type batchVerifier struct {
	primitive   Primitive
	minPerChunk int
}

func newBatchVerifier(p Primitive, minPerChunk int) *batchVerifier {
	if p == nil {
		p = defaultPrimitive{}
	}
	return &batchVerifier{primitive: p, minPerChunk: minPerChunk}
}

func flattenChunk(c chunk) []*bls.SignatureSet {
	sets := make([]*bls.SignatureSet, 0, c.weight)
	for _, it := range c.items {
		sets = append(sets, it.sets...)
	}
	return sets
}

// classifyErr maps a Primitive error into the engine's small closed error
// taxonomy. Malformed curve input is InvalidInput; anything else raised
// by the crypto library is treated as a PrimitiveFault.
func classifyErr(err error) error {
	if errors.Is(err, common.ErrInvalidLength) ||
		errors.Is(err, common.ErrDeserialize) ||
		errors.Is(err, common.ErrInfinitePubKey) ||
		errors.Is(err, common.ErrInfiniteSignature) {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	return fmt.Errorf("%w: %s", ErrPrimitiveFault, err)
}

// run verifies every job in reqs and returns a result per index plus the
// metrics gathered while doing so. It never blocks on anything but the
// Primitive calls themselves and never returns early except on ctx
// cancellation, at which point any job not yet verified is marked
// Cancelled and jobs already verified keep their verdicts.
func (v *batchVerifier) run(ctx context.Context, reqs []WorkReq) ([]WorkResult, Metrics) {
	results := make([]WorkResult, len(reqs))
	var metrics Metrics

	batchable, nonBatchable := route(reqs, results)
	chunks := chunkItems(batchable, v.minPerChunk)

	var individualQueue []item
	processedChunks := len(chunks)

chunkLoop:
	for i, c := range chunks {
		select {
		case <-ctx.Done():
			processedChunks = i
			break chunkLoop
		default:
		}

		ok, err := v.primitive.VerifyMany(flattenChunk(c))
		if err == nil && ok {
			for _, it := range c.items {
				results[it.idx] = Success(true)
			}
			metrics.BatchSigsSuccess += c.weight
			continue
		}
		// Both "false" and "error" are recovered locally: the chunk is
		// demoted to individual verification, which is authoritative.
		metrics.BatchRetries++
		if err != nil {
			log.WithError(err).Debug("batch verification errored, falling back to individual verification")
		} else {
			log.Debug("batch verification failed, falling back to individual verification")
		}
		individualQueue = append(individualQueue, c.items...)
	}

	if processedChunks < len(chunks) {
		// Cancelled before we reached the remainder of the chunks. Nothing
		// in the unreached chunks or in nonBatchable was ever attempted,
		// but items already demoted into individualQueue by an earlier
		// failed chunk weren't verified either — only their chunk-level
		// batch attempt ran, which is not authoritative. All three groups
		// get the same verdict: never individually verified.
		for _, it := range individualQueue {
			results[it.idx] = Failure(ErrCancelled)
		}
		for _, c := range chunks[processedChunks:] {
			for _, it := range c.items {
				results[it.idx] = Failure(ErrCancelled)
			}
		}
		for _, it := range nonBatchable {
			results[it.idx] = Failure(ErrCancelled)
		}
		return results, metrics
	}

	individualQueue = append(individualQueue, nonBatchable...)
	for _, it := range individualQueue {
		select {
		case <-ctx.Done():
			results[it.idx] = Failure(ErrCancelled)
			continue
		default:
		}
		ok, err := v.primitive.VerifyMany(it.sets)
		if err != nil {
			results[it.idx] = Failure(classifyErr(err))
			continue
		}
		results[it.idx] = Success(ok)
	}

	return results, metrics
}
