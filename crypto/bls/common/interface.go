package common

// PublicKey corresponding to a secret key used in the BLS signature scheme.
type PublicKey interface {
	Marshal() []byte
	Copy() PublicKey
	IsInfinite() bool
	Aggregate(p2 PublicKey) PublicKey
}

// Signature used in the BLS signature scheme.
type Signature interface {
	Marshal() []byte
	Copy() Signature
	Verify(pubKey PublicKey, msg []byte) bool
	// AggregateVerify checks an aggregate signature against distinct
	// public keys and messages, one message per public key. The batch
	// primitive (VerifyMultipleSignatures) does not use it.
	AggregateVerify(pubKeys []PublicKey, msgs [][32]byte) bool
}

// SecretKey used to produce signatures. Key generation and storage are out
// of scope for this package; this interface exists only so tests can
// produce known-valid SignatureSets without going through the wire format.
type SecretKey interface {
	PublicKey() PublicKey
	Sign(msg []byte) Signature
	Marshal() []byte
}
