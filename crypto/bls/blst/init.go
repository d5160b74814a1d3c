//go:build ((linux && amd64) || (linux && arm64) || (darwin && amd64) || (darwin && arm64) || (windows && amd64)) && !blst_disabled

// Package blst wraps the supranational/blst BLS12-381 bindings behind the
// common.PublicKey / common.Signature interfaces, and provides the
// randomized multi-set batch verification the rest of this module treats
// as the Primitive.
package blst

import (
	"runtime"

	"github.com/dgraph-io/ristretto"
	"github.com/pkg/errors"
	blst "github.com/supranational/blst/bindings/go"
)

// maxKeys bounds the decompressed-public-key cache. Decompressing a
// compressed G1 point is the most expensive part of turning wire bytes
// into a usable PublicKey, so repeated verifications against the same
// validator set (the common case on a beacon node) are memoized.
var maxKeys = int64(1_000_000)

var pubkeyCache *ristretto.Cache

func init() {
	// Reserve one core for the rest of the process; blst parallelizes
	// pairing computations internally via its own thread pool.
	maxProcs := runtime.GOMAXPROCS(0) - 1
	if maxProcs <= 0 {
		maxProcs = 1
	}
	blst.SetMaxProcs(maxProcs)

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxKeys,
		MaxCost:     1 << 26, // ~64MB
		BufferItems: 64,
	})
	if err != nil {
		panic(errors.Wrap(err, "could not initialize bls public key cache"))
	}
	pubkeyCache = cache
}
