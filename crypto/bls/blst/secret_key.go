//go:build ((linux && amd64) || (linux && arm64) || (darwin && amd64) || (darwin && arm64) || (windows && amd64)) && !blst_disabled

package blst

import (
	"crypto/rand"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/bls-batch-verifier/crypto/bls/common"
	blst "github.com/supranational/blst/bindings/go"
)

// SecretKey used in the BLS signature scheme. This module never persists
// or manages these; they exist solely so tests can mint known-valid
// SignatureSets.
type SecretKey struct {
	p *blst.SecretKey
}

// RandKey creates a new private key from 32 bytes of crypto/rand entropy.
func RandKey() (*SecretKey, error) {
	var ikm [32]byte
	if _, err := rand.Read(ikm[:]); err != nil {
		return nil, errors.Wrap(err, "could not read randomness")
	}
	return &SecretKey{p: blst.KeyGen(ikm[:])}, nil
}

// SecretKeyFromBytes creates a BLS private key from a BigEndian byte slice.
func SecretKeyFromBytes(privKey []byte) (common.SecretKey, error) {
	if len(privKey) != common.SecretKeyLength {
		return nil, errors.Wrapf(common.ErrInvalidLength, "secret key must be %d bytes", common.SecretKeyLength)
	}
	secKey := new(blst.SecretKey).Deserialize(privKey)
	if secKey == nil {
		return nil, errors.New("could not unmarshal bytes into secret key")
	}
	return &SecretKey{p: secKey}, nil
}

// PublicKey obtains the public key corresponding to this secret key.
func (s *SecretKey) PublicKey() common.PublicKey {
	return &PublicKey{p: new(blstPublicKey).From(s.p)}
}

// Sign a message using the secret key.
func (s *SecretKey) Sign(msg []byte) common.Signature {
	signature := new(blstSignature).Sign(s.p, msg, dst)
	return &Signature{s: signature}
}

// Marshal a secret key into a big-endian byte slice.
func (s *SecretKey) Marshal() []byte {
	keyBytes := s.p.Serialize()
	if len(keyBytes) < common.SecretKeyLength {
		emptyBytes := make([]byte, common.SecretKeyLength-len(keyBytes))
		keyBytes = append(emptyBytes, keyBytes...)
	}
	return keyBytes
}
