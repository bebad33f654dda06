package pvss

import (
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/pvss/pkg/curve"
)

// VerifyEncryptedShares verifies a batch of shares against their
// participants' public keys concurrently, since each check is independent
// and side-effect free (spec §5). It returns a parallel slice of booleans,
// one per input share; a malformed pubKeys/shares length mismatch verifies
// every entry false rather than erroring.
func VerifyEncryptedShares(group curve.Curve, h curve.Point, commitments []Commitment, pubKeys []curve.Point, shares []*EncryptedShare) []bool {
	out := make([]bool, len(shares))
	if len(pubKeys) != len(shares) {
		return out
	}
	var g errgroup.Group
	for i := range shares {
		i := i
		g.Go(func() error {
			out[i] = VerifyEncryptedShare(group, h, commitments, pubKeys[i], shares[i])
			return nil
		})
	}
	_ = g.Wait() // verification funcs never return an error
	return out
}

// VerifyDecryptedShares is the decrypted-share analogue of
// VerifyEncryptedShares.
func VerifyDecryptedShares(group curve.Curve, pubKeys []curve.Point, encShares []*EncryptedShare, decShares []*DecryptedShare) []bool {
	out := make([]bool, len(decShares))
	if len(pubKeys) != len(encShares) || len(encShares) != len(decShares) {
		return out
	}
	var g errgroup.Group
	for i := range decShares {
		i := i
		g.Go(func() error {
			out[i] = VerifyDecryptedShare(group, pubKeys[i], encShares[i], decShares[i])
			return nil
		})
	}
	_ = g.Wait()
	return out
}
