// Package bls exposes the cryptographic Primitive the batch verification
// engine treats as an opaque collaborator: single-set and multi-set BLS
// verification over the BLS12-381 curve.
package bls

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/bls-batch-verifier/crypto/bls/common"
)

// SignatureSet is one atomic verification unit: an aggregate public key,
// a domain-separated message digest, and the signature over it. Callers
// pre-aggregate same-message public keys before constructing a set.
type SignatureSet struct {
	PublicKey common.PublicKey
	Message   [32]byte
	Signature common.Signature
}

// NewSignatureSet validates and constructs a SignatureSet. All three
// fields are required; a set missing any of them cannot be verified and
// indicates a caller bug rather than a cryptographic failure.
func NewSignatureSet(pub common.PublicKey, msg [32]byte, sig common.Signature) (*SignatureSet, error) {
	if pub == nil || sig == nil {
		return nil, errors.New("signature set requires a non-nil public key and signature")
	}
	return &SignatureSet{PublicKey: pub, Message: msg, Signature: sig}, nil
}

// Copy returns a deep copy of the set.
func (s *SignatureSet) Copy() *SignatureSet {
	return &SignatureSet{
		PublicKey: s.PublicKey.Copy(),
		Message:   s.Message,
		Signature: s.Signature.Copy(),
	}
}

// flatten unpacks an ordered list of independent SignatureSets into the
// parallel slices the underlying multi-pairing call expects.
func flatten(sets []*SignatureSet) (sigs []common.Signature, msgs [][32]byte, pubs []common.PublicKey) {
	sigs = make([]common.Signature, len(sets))
	msgs = make([][32]byte, len(sets))
	pubs = make([]common.PublicKey, len(sets))
	for i, s := range sets {
		sigs[i] = s.Signature
		msgs[i] = s.Message
		pubs[i] = s.PublicKey
	}
	return sigs, msgs, pubs
}
