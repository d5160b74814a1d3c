package batchverify

import "github.com/prysmaticlabs/bls-batch-verifier/crypto/bls"

// DefaultBatchableMinPerChunk is the observed inflection point past which
// batch verification's marginal savings plateau: batching N sets costs
// roughly N+k (k small), so keeping chunks near this size bounds the cost
// of re-verifying a failed batch (O(N)) without giving up much of the
// batching speedup.
const DefaultBatchableMinPerChunk = 16

// item is one batchable job as seen by the chunker and the individual
// verification fallback: its position in the caller's original WorkReq
// slice, and the sets it must verify.
type item struct {
	idx  int
	sets []*bls.SignatureSet
}

func (it item) weight() int { return len(it.sets) }

// chunk is a contiguous, ordered group of items destined for a single
// batch-verification call.
type chunk struct {
	items  []item
	weight int
}

// chunkItems greedily partitions an ordered list of batchable items into
// chunks whose total weight is at least minPerChunk, except possibly the
// final chunk if not enough items remain. Item boundaries are never
// split; the concatenation of the returned chunks' items equals items.
func chunkItems(items []item, minPerChunk int) []chunk {
	if minPerChunk < 1 {
		minPerChunk = 1
	}
	if len(items) == 0 {
		return nil
	}

	var chunks []chunk
	cur := chunk{}
	for _, it := range items {
		cur.items = append(cur.items, it)
		cur.weight += it.weight()
		if cur.weight >= minPerChunk {
			chunks = append(chunks, cur)
			cur = chunk{}
		}
	}
	if len(cur.items) > 0 {
		chunks = append(chunks, cur)
	}
	return chunks
}
