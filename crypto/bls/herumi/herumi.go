//go:build herumi

// Package herumi wraps github.com/herumi/bls-eth-go-binary as a secondary
// BLS12-381 backend. It is not part of the default build: it exists to
// give crypto/bls/crossbackend_test.go an independent implementation to
// check blst's batch verification against, the same role
// shared/bls/spectest played opposite shared/bls/blst in the teacher
// repository. Build with -tags herumi to include it.
package herumi

import (
	"sync"

	"github.com/herumi/bls-eth-go-binary/bls"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/bls-batch-verifier/crypto/bls/common"
)

var initOnce sync.Once

// Init allows the required curve orders and appropriate sub-groups to be
// initialized. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		if err := bls.Init(bls.BLS12_381); err != nil {
			panic(err)
		}
		if err := bls.SetETHmode(bls.EthModeDraft07); err != nil {
			panic(err)
		}
		bls.VerifyPublicKeyOrder(true)
		bls.VerifySignatureOrder(true)
	})
}

// SecretKey used in the BLS signature scheme.
type SecretKey struct {
	p bls.SecretKey
}

// RandKey creates a new private key.
func RandKey() *SecretKey {
	Init()
	sk := &SecretKey{}
	sk.p.SetByCSPRNG()
	return sk
}

// PublicKey returns the public key for this secret key.
func (s *SecretKey) PublicKey() common.PublicKey {
	pub := s.p.GetPublicKey()
	return &PublicKey{p: *pub}
}

// Sign a message using the secret key.
func (s *SecretKey) Sign(msg []byte) common.Signature {
	sig := s.p.SignByte(msg)
	return &Signature{s: *sig}
}

// Marshal the secret key to bytes.
func (s *SecretKey) Marshal() []byte {
	return s.p.Serialize()
}

// PublicKey wraps a herumi public key.
type PublicKey struct {
	p bls.PublicKey
}

// PublicKeyFromBytes decompresses a public key.
func PublicKeyFromBytes(b []byte) (common.PublicKey, error) {
	Init()
	pub := &bls.PublicKey{}
	if err := pub.Deserialize(b); err != nil {
		return nil, errors.Wrap(common.ErrDeserialize, err.Error())
	}
	return &PublicKey{p: *pub}, nil
}

// Marshal the public key to compressed bytes.
func (p *PublicKey) Marshal() []byte { return p.p.Serialize() }

// Copy returns a copy of the public key.
func (p *PublicKey) Copy() common.PublicKey {
	cp := p.p
	return &PublicKey{p: cp}
}

// IsInfinite reports whether the key is the identity element.
func (p *PublicKey) IsInfinite() bool { return p.p.IsZero() }

// Aggregate combines two public keys in place.
func (p *PublicKey) Aggregate(p2 common.PublicKey) common.PublicKey {
	p.p.Add(&p2.(*PublicKey).p)
	return p
}

// Signature wraps a herumi signature.
type Signature struct {
	s bls.Sign
}

// SignatureFromBytes decompresses a signature.
func SignatureFromBytes(b []byte) (common.Signature, error) {
	Init()
	sig := &bls.Sign{}
	if err := sig.Deserialize(b); err != nil {
		return nil, errors.Wrap(common.ErrDeserialize, err.Error())
	}
	return &Signature{s: *sig}, nil
}

// Marshal the signature to compressed bytes.
func (s *Signature) Marshal() []byte { return s.s.Serialize() }

// Copy returns a copy of the signature.
func (s *Signature) Copy() common.Signature {
	cp := s.s
	return &Signature{s: cp}
}

// Verify a single set.
func (s *Signature) Verify(pubKey common.PublicKey, msg []byte) bool {
	return s.s.VerifyByte(&pubKey.(*PublicKey).p, msg)
}

// AggregateVerify checks this signature against distinct public keys and
// messages.
func (s *Signature) AggregateVerify(pubKeys []common.PublicKey, msgs [][32]byte) bool {
	rawKeys := make([]bls.PublicKey, len(pubKeys))
	rawMsgs := make([]byte, 0, len(msgs)*32)
	for i := range pubKeys {
		rawKeys[i] = pubKeys[i].(*PublicKey).p
		rawMsgs = append(rawMsgs, msgs[i][:]...)
	}
	return s.s.VerifyAggregateHashes(rawKeys, rawMsgs)
}

// VerifyMultipleSignatures checks N independent sets in one call. herumi
// does not expose randomized multi-set verification directly, so this
// backend falls back to a plain per-set conjunction; it is only ever used
// as a cross-check oracle in tests, never on the hot path.
func VerifyMultipleSignatures(sigs []common.Signature, msgs [][32]byte, pubKeys []common.PublicKey) (bool, error) {
	if len(sigs) != len(msgs) || len(sigs) != len(pubKeys) {
		return false, errors.New("mismatched set lengths")
	}
	for i := range sigs {
		if !sigs[i].Verify(pubKeys[i], msgs[i][:]) {
			return false, nil
		}
	}
	return true, nil
}
