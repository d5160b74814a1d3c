package batchverify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute_SplitsAndPreservesIndices(t *testing.T) {
	reqs := []WorkReq{
		{Sets: sets("a", 1), Opts: WorkOpts{Batchable: true}},
		{Sets: sets("b", 1), Opts: WorkOpts{Batchable: false}},
		{Sets: sets("c", 2), Opts: WorkOpts{Batchable: true}},
		{Sets: sets("d", 1), Opts: WorkOpts{Batchable: false}},
	}
	results := make([]WorkResult, len(reqs))
	batchable, nonBatchable := route(reqs, results)

	require.Len(t, batchable, 2)
	assert.Equal(t, 0, batchable[0].idx)
	assert.Equal(t, 2, batchable[1].idx)

	require.Len(t, nonBatchable, 2)
	assert.Equal(t, 1, nonBatchable[0].idx)
	assert.Equal(t, 3, nonBatchable[1].idx)

	for _, r := range results {
		assert.Equal(t, WorkResult{}, r)
	}
}

func TestRoute_RejectsZeroSetJobsImmediately(t *testing.T) {
	reqs := []WorkReq{
		{Sets: nil, Opts: WorkOpts{Batchable: true}},
		{Sets: sets("a", 1), Opts: WorkOpts{Batchable: true}},
	}
	results := make([]WorkResult, len(reqs))
	batchable, nonBatchable := route(reqs, results)

	require.Len(t, batchable, 1)
	assert.Equal(t, 1, batchable[0].idx)
	assert.Empty(t, nonBatchable)

	require.False(t, results[0].IsSuccess())
	assert.ErrorIs(t, results[0].Err, ErrInvalidInput)
	assert.Equal(t, WorkResult{}, results[1])
}
