//go:build ((linux && amd64) || (linux && arm64) || (darwin && amd64) || (darwin && arm64) || (windows && amd64)) && !blst_disabled

package blst

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/bls-batch-verifier/crypto/bls/common"
	blst "github.com/supranational/blst/bindings/go"
)

type blstPublicKey = blst.P1Affine

// PublicKey used in the BLS signature scheme.
type PublicKey struct {
	p *blstPublicKey
}

// PublicKeyFromBytes creates a BLS public key, already aggregated by the
// caller, from a compressed 48-byte G1 point.
func PublicKeyFromBytes(pubKey []byte) (common.PublicKey, error) {
	if len(pubKey) != common.PublicKeyLength {
		return nil, errors.Wrapf(common.ErrInvalidLength, "public key must be %d bytes, got %d", common.PublicKeyLength, len(pubKey))
	}
	if cv, ok := pubkeyCache.Get(string(pubKey)); ok {
		return cv.(*PublicKey).Copy(), nil
	}
	// Subgroup check is done below, after the infinity check.
	p := new(blstPublicKey).Uncompress(pubKey)
	if p == nil {
		return nil, common.ErrDeserialize
	}
	pubKeyObj := &PublicKey{p: p}
	if pubKeyObj.IsInfinite() {
		return nil, common.ErrInfinitePubKey
	}
	if !p.KeyValidate() {
		return nil, errors.Wrap(common.ErrDeserialize, "public key is not in the correct subgroup")
	}
	pubkeyCache.Set(string(pubKey), pubKeyObj.Copy(), common.PublicKeyLength)
	return pubKeyObj, nil
}

// Marshal a public key into a LittleEndian byte slice.
func (p *PublicKey) Marshal() []byte {
	return p.p.Compress()
}

// Copy the public key to a new, unlinked object.
func (p *PublicKey) Copy() common.PublicKey {
	np := *p.p
	return &PublicKey{p: &np}
}

// IsInfinite checks if the public key is equal to the point at infinity.
func (p *PublicKey) IsInfinite() bool {
	zeroKey := new(blstPublicKey)
	return p.p.Equals(zeroKey)
}

// Aggregate two public keys in-place; used by callers who pre-aggregate
// public keys for shared-message signature sets before submission.
func (p *PublicKey) Aggregate(p2 common.PublicKey) common.PublicKey {
	agg := new(blst.P1Aggregate)
	agg.Add(p.p, false)
	agg.Add(p2.(*PublicKey).p, false)
	p.p = agg.ToAffine()
	return p
}
