package batchverify

import (
	"time"

	"github.com/prysmaticlabs/bls-batch-verifier/crypto/bls"
	"github.com/prysmaticlabs/bls-batch-verifier/crypto/bls/common"
)

// fakePubKey and fakeSig are minimal common.PublicKey / common.Signature
// implementations so tests can build SignatureSets without depending on
// the cgo-backed blst bindings. Their cryptographic methods are never
// exercised directly: the fakePrimitive in tests decides verdicts by
// inspecting set identity (via id), not by calling Verify/AggregateVerify.
type fakePubKey struct{ id string }

func (f fakePubKey) Marshal() []byte                             { return []byte(f.id) }
func (f fakePubKey) Copy() common.PublicKey                      { return f }
func (f fakePubKey) IsInfinite() bool                            { return false }
func (f fakePubKey) Aggregate(common.PublicKey) common.PublicKey { return f }

type fakeSig struct{ id string }

func (f fakeSig) Marshal() []byte                                     { return []byte(f.id) }
func (f fakeSig) Copy() common.Signature                              { return f }
func (f fakeSig) Verify(common.PublicKey, []byte) bool                { return true }
func (f fakeSig) AggregateVerify([]common.PublicKey, [][32]byte) bool { return true }

// set builds a SignatureSet identified by id; fakePrimitive keys its
// verdicts off this id.
func set(id string) *bls.SignatureSet {
	return &bls.SignatureSet{
		PublicKey: fakePubKey{id: id},
		Signature: fakeSig{id: id},
	}
}

// sets builds n distinct SignatureSets sharing a prefix, used wherever a
// test only cares about counting, not identity.
func sets(prefix string, n int) []*bls.SignatureSet {
	out := make([]*bls.SignatureSet, n)
	for i := range out {
		out[i] = set(prefix + string(rune('a'+i)))
	}
	return out
}

// idOf extracts the identity fakePrimitive keys decisions on.
func idOf(s *bls.SignatureSet) string {
	return s.PublicKey.(fakePubKey).id
}

// fakePrimitive is a Primitive whose verdicts are entirely controlled by
// the test: bad marks a set of ids as cryptographically invalid, and
// erroring marks ids that make a multi-set VerifyMany call return an
// error instead — mirroring how a crafted input can make the batch
// pairing math throw while single-set (individual) verification of the
// same set reports a clean false. onVerifyMany, if set, runs before each
// VerifyMany call decides its verdict, so tests can trigger side effects
// (like cancellation) at a specific point in the chunk/individual order.
type fakePrimitive struct {
	bad          map[string]bool
	erroring     map[string]error
	onVerifyMany func(ids []string)
	verifyManyN  int
	verifySetN   int
	lastBatches  [][]string
}

func newFakePrimitive() *fakePrimitive {
	return &fakePrimitive{bad: map[string]bool{}, erroring: map[string]error{}}
}

func (f *fakePrimitive) VerifySet(s *bls.SignatureSet) (bool, error) {
	f.verifySetN++
	id := idOf(s)
	if err, ok := f.erroring[id]; ok {
		return false, err
	}
	return !f.bad[id], nil
}

func (f *fakePrimitive) VerifyMany(sets []*bls.SignatureSet) (bool, error) {
	f.verifyManyN++
	ids := make([]string, len(sets))
	for i, s := range sets {
		ids[i] = idOf(s)
	}
	f.lastBatches = append(f.lastBatches, ids)
	if f.onVerifyMany != nil {
		f.onVerifyMany(ids)
	}

	if len(ids) > 1 {
		for _, id := range ids {
			if err, ok := f.erroring[id]; ok {
				return false, err
			}
		}
	}
	for _, id := range ids {
		if f.bad[id] {
			return false, nil
		}
	}
	return true, nil
}

// fakeClock returns a monotonically advancing sequence of timestamps so
// tests can assert WorkerStart <= WorkerEnd deterministically.
type fakeClock struct {
	base  time.Time
	calls int
}

func newFakeClock() *fakeClock {
	return &fakeClock{base: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.calls++
	return c.base.Add(time.Duration(c.calls) * time.Millisecond)
}
