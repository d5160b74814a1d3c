package common

import "errors"

// ErrZeroKey describes an error due to a zero secret key.
var ErrZeroKey = errors.New("received secret key is zero")

// ErrInfinitePubKey describes an error due to an infinite public key.
var ErrInfinitePubKey = errors.New("received an infinite public key")

// ErrInfiniteSignature describes an error due to an infinite signature.
var ErrInfiniteSignature = errors.New("received an infinite signature")

// ErrInvalidLength describes a byte slice that was deserialized at the
// wrong length for the curve element it claims to be.
var ErrInvalidLength = errors.New("bls: invalid input length")

// ErrDeserialize describes a byte slice that could not be decompressed
// into a valid curve point (not on curve, not in the correct subgroup).
var ErrDeserialize = errors.New("bls: could not deserialize curve point")
