package batchverify

// route splits an incoming request array into batchable and
// non-batchable streams, preserving the caller's original index on each
// item and the relative order within each stream. A WorkReq with zero
// sets is rejected outright as a caller bug: its verdict is written
// directly into results and it never enters either stream.
func route(reqs []WorkReq, results []WorkResult) (batchable, nonBatchable []item) {
	for idx, req := range reqs {
		if len(req.Sets) == 0 {
			results[idx] = Failure(ErrInvalidInput)
			continue
		}
		it := item{idx: idx, sets: req.Sets}
		if req.Opts.Batchable {
			batchable = append(batchable, it)
		} else {
			nonBatchable = append(nonBatchable, it)
		}
	}
	return batchable, nonBatchable
}
