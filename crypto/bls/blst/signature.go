//go:build ((linux && amd64) || (linux && arm64) || (darwin && amd64) || (darwin && arm64) || (windows && amd64)) && !blst_disabled

package blst

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/bls-batch-verifier/crypto/bls/common"
	blst "github.com/supranational/blst/bindings/go"
)

type blstSignature = blst.P2Affine

// dst is the domain separation tag for the min-pk BLS12-381 ciphersuite
// used on the Ethereum consensus layer. Callers already domain-separate
// their 32-byte message digests upstream of this package; this tag is
// the curve library's own hash-to-curve DST, a distinct concern.
var dst = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_")

// Signature used in the BLS signature scheme.
type Signature struct {
	s *blstSignature
}

// SignatureFromBytes creates a BLS signature from a compressed, 96-byte
// big-endian byte slice.
func SignatureFromBytes(sig []byte) (common.Signature, error) {
	if len(sig) != common.SignatureLength {
		return nil, errors.Wrapf(common.ErrInvalidLength, "signature must be %d bytes, got %d", common.SignatureLength, len(sig))
	}
	signature := new(blstSignature).Uncompress(sig)
	if signature == nil {
		return nil, common.ErrDeserialize
	}
	// Subgroup check; rejects small-subgroup and identity-adjacent points
	// that would otherwise let a batch verification pass spuriously.
	if !signature.SigValidate(true) {
		return nil, errors.Wrap(common.ErrDeserialize, "signature is not in the correct subgroup")
	}
	return &Signature{s: signature}, nil
}

// Marshal a signature into a compressed byte slice.
func (s *Signature) Marshal() []byte {
	return s.s.Compress()
}

// Copy the signature to a new, unlinked object.
func (s *Signature) Copy() common.Signature {
	ns := *s.s
	return &Signature{s: &ns}
}

// Verify a single signature against a single public key and message.
// This is verify_set, the Primitive's non-batch operation.
func (s *Signature) Verify(pubKey common.PublicKey, msg []byte) bool {
	return s.s.Verify(true, pubKey.(*PublicKey).p, true, msg, dst)
}

// AggregateVerify verifies this signature is the aggregate of one
// signature per (pubKey, msg) pair, checking the distinct messages in a
// single multi-pairing operation. No random scalars are involved, and
// verify_many does not go through it: the check over a batch of
// independently-aggregated sets is VerifyMultipleSignatures.
func (s *Signature) AggregateVerify(pubKeys []common.PublicKey, msgs [][32]byte) bool {
	size := len(pubKeys)
	if size == 0 {
		return false
	}
	rawKeys := make([]*blstPublicKey, size)
	rawMsgs := make([][]byte, size)
	for i := 0; i < size; i++ {
		rawKeys[i] = pubKeys[i].(*PublicKey).p
		rawMsgs[i] = msgs[i][:]
	}
	return s.s.AggregateVerify(true, rawKeys, true, rawMsgs, dst)
}

// VerifyMultipleSignatures is the Primitive's verify_many: it checks N
// independent (signature, public key, message) sets in a single
// multi-pairing call using per-set random scalars, so the check is sound
// even when the same message repeats across sets (which SignatureSet's
// contract asks callers to avoid, but does not require the primitive to
// assume). Returns true iff every set verifies.
func VerifyMultipleSignatures(sigs []common.Signature, msgs [][32]byte, pubKeys []common.PublicKey) (bool, error) {
	size := len(sigs)
	if size == 0 {
		return false, nil
	}
	if size != len(pubKeys) || size != len(msgs) {
		return false, errors.Errorf("mismatched set lengths: sigs=%d pubkeys=%d msgs=%d", size, len(pubKeys), len(msgs))
	}
	rawSigs := make([]*blstSignature, size)
	rawKeys := make([]*blstPublicKey, size)
	rawMsgs := make([][]byte, size)
	for i := 0; i < size; i++ {
		rawSigs[i] = sigs[i].(*Signature).s
		rawKeys[i] = pubKeys[i].(*PublicKey).p
		rawMsgs[i] = msgs[i][:]
	}
	dummy := new(blstSignature)
	return dummy.MultipleAggregateVerify(rawSigs, true, rawKeys, true, rawMsgs, dst), nil
}
