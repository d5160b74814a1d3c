package bls

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/bls-batch-verifier/crypto/bls/blst"
	"github.com/prysmaticlabs/bls-batch-verifier/crypto/bls/common"
)

// VerifySet is the Primitive's verify_single: it checks one SignatureSet
// on its own. A false return means the signature is cryptographically
// invalid; an error means the set could not be checked at all (malformed
// input).
func VerifySet(set *SignatureSet) (bool, error) {
	if set == nil || set.PublicKey == nil || set.Signature == nil {
		return false, errors.Wrap(common.ErrInvalidLength, "signature set is missing a required field")
	}
	return set.Signature.Verify(set.PublicKey, set.Message[:]), nil
}

// VerifyMany is the Primitive's verify_multiple_aggregate: batch
// verification of N independent SignatureSets using the underlying
// library's randomized multi-pairing check. It returns true iff every
// set verifies, and is semantically equivalent to the conjunction of
// VerifySet calls modulo the randomization's negligible soundness error.
//
// It performs no allocation beyond the call's own scratch and is safe to
// call from multiple goroutines concurrently; it never blocks on I/O.
func VerifyMany(sets []*SignatureSet) (bool, error) {
	if len(sets) == 0 {
		return false, errors.New("cannot batch-verify zero signature sets")
	}
	sigs, msgs, pubs := flatten(sets)
	return blst.VerifyMultipleSignatures(sigs, msgs, pubs)
}
