package scrape

import (
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/pvss/pkg/curve"
)

// VerifyDecryptedShares verifies a batch of decrypted shares against their
// participants' public keys and encrypted shares concurrently, since each
// check is independent and side-effect free (spec §5). It returns a
// parallel slice of booleans, one per input share; a pubKeys/encrypted/
// decrypted length mismatch verifies every entry false rather than
// erroring.
func VerifyDecryptedShares(group curve.Curve, pubKeys []curve.Point, encShares []EncryptedSi, decShares []*DecryptedShare) []bool {
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
	_ = g.Wait() // verification funcs never return an error
	return out
}
