package bls_test

import (
	"testing"

	"github.com/prysmaticlabs/bls-batch-verifier/crypto/bls"
	"github.com/prysmaticlabs/bls-batch-verifier/crypto/bls/blst"
	"github.com/stretchr/testify/require"
)

func validSet(t *testing.T, msg string) *bls.SignatureSet {
	t.Helper()
	sk, err := blst.RandKey()
	require.NoError(t, err)
	var digest [32]byte
	copy(digest[:], msg)
	sig := sk.Sign(digest[:])
	set, err := bls.NewSignatureSet(sk.PublicKey(), digest, sig)
	require.NoError(t, err)
	return set
}

func invalidSet(t *testing.T, msg string) *bls.SignatureSet {
	t.Helper()
	sk, err := blst.RandKey()
	require.NoError(t, err)
	other, err := blst.RandKey()
	require.NoError(t, err)
	sig := sk.Sign([]byte(msg))
	var digest [32]byte
	copy(digest[:], msg)
	set, err := bls.NewSignatureSet(other.PublicKey(), digest, sig)
	require.NoError(t, err)
	return set
}

func TestVerifySet(t *testing.T) {
	ok, err := bls.VerifySet(validSet(t, "hello"))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = bls.VerifySet(invalidSet(t, "hello"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifySet_MissingFields(t *testing.T) {
	_, err := bls.VerifySet(&bls.SignatureSet{})
	require.Error(t, err)
}

func TestVerifyMany_AllValid(t *testing.T) {
	sets := []*bls.SignatureSet{
		validSet(t, "a"),
		validSet(t, "b"),
		validSet(t, "c"),
	}
	ok, err := bls.VerifyMany(sets)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyMany_OneInvalid(t *testing.T) {
	sets := []*bls.SignatureSet{
		validSet(t, "a"),
		invalidSet(t, "b"),
		validSet(t, "c"),
	}
	ok, err := bls.VerifyMany(sets)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyMany_Empty(t *testing.T) {
	_, err := bls.VerifyMany(nil)
	require.Error(t, err)
}

func TestVerifyMany_ConjunctionEquivalence(t *testing.T) {
	sets := []*bls.SignatureSet{
		validSet(t, "x"),
		validSet(t, "y"),
		invalidSet(t, "z"),
		validSet(t, "w"),
	}
	batchOK, err := bls.VerifyMany(sets)
	require.NoError(t, err)

	allIndividuallyOK := true
	for _, s := range sets {
		ok, err := bls.VerifySet(s)
		require.NoError(t, err)
		if !ok {
			allIndividuallyOK = false
		}
	}
	require.Equal(t, allIndividuallyOK, batchOK)
}
