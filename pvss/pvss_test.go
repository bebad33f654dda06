package pvss_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/pvss/pkg/curve"
	"github.com/luxfi/pvss/pvss"
)

type harness struct {
	group       curve.Curve
	escrow      *pvss.Escrow
	commitments []pvss.Commitment
	keyPairs    []*pvss.KeyPair
	pubKeys     []curve.Point
	shares      []*pvss.EncryptedShare
}

func setup(t *testing.T, threshold, n int) *harness {
	t.Helper()
	group := curve.Secp256k1{}

	keyPairs := make([]*pvss.KeyPair, n)
	pubKeys := make([]curve.Point, n)
	for i := range keyPairs {
		kp, err := pvss.GenerateKeyPair(group, rand.Reader)
		require.NoError(t, err)
		keyPairs[i] = kp
		pubKeys[i] = kp.Public
	}

	escrow, err := pvss.NewEscrow(group, rand.Reader, threshold)
	require.NoError(t, err)
	commitments := pvss.CreateCommitments(escrow)
	require.Len(t, commitments, threshold)

	shares, err := pvss.SharesCreate(group, rand.Reader, escrow, pubKeys)
	require.NoError(t, err)

	return &harness{
		group: group, escrow: escrow, commitments: commitments,
		keyPairs: keyPairs, pubKeys: pubKeys, shares: shares,
	}
}

// S1: t=2, n=3, decrypt shares 1 and 2, recover, verify.
func TestS1HappyPath(t *testing.T) {
	h := setup(t, 2, 3)

	var decShares []*pvss.DecryptedShare
	for i := 0; i < 2; i++ {
		dec, err := pvss.ShareDecrypt(h.group, rand.Reader, h.keyPairs[i], h.shares[i])
		require.NoError(t, err)
		assert.True(t, pvss.VerifyDecryptedShare(h.group, h.pubKeys[i], h.shares[i], dec))
		decShares = append(decShares, dec)
	}

	secret, err := pvss.Recover(h.group, decShares)
	require.NoError(t, err)
	assert.True(t, secret.Equal(h.escrow.Secret))
	assert.True(t, pvss.VerifySecret(h.group, h.escrow.H, h.commitments, secret, h.escrow.Proof))
}

// S2: recovering from threshold-minus-one shares yields an incorrect secret.
func TestS2ThresholdMinusOneFailsVerification(t *testing.T) {
	h := setup(t, 2, 3)

	dec, err := pvss.ShareDecrypt(h.group, rand.Reader, h.keyPairs[0], h.shares[0])
	require.NoError(t, err)

	secret, err := pvss.Recover(h.group, []*pvss.DecryptedShare{dec})
	require.NoError(t, err)

	assert.False(t, secret.Equal(h.escrow.Secret))
	assert.False(t, pvss.VerifySecret(h.group, h.escrow.H, h.commitments, secret, h.escrow.Proof))
}

// S3: flipping a bit of Y_2 invalidates only share 2's verification.
func TestS3TamperedShareFailsOnlyForThatShare(t *testing.T) {
	h := setup(t, 2, 3)

	tamperedY := h.shares[1].Y.Add(h.group.Generator())
	tampered := &pvss.EncryptedShare{ShareID: h.shares[1].ShareID, Y: tamperedY, Proof: h.shares[1].Proof}

	assert.True(t, pvss.VerifyEncryptedShare(h.group, h.escrow.H, h.commitments, h.pubKeys[0], h.shares[0]))
	assert.False(t, pvss.VerifyEncryptedShare(h.group, h.escrow.H, h.commitments, h.pubKeys[1], tampered))
	assert.True(t, pvss.VerifyEncryptedShare(h.group, h.escrow.H, h.commitments, h.pubKeys[2], h.shares[2]))
}

func TestVerifyEncryptedShareTruePerShare(t *testing.T) {
	h := setup(t, 3, 5)
	for i := range h.shares {
		assert.True(t, pvss.VerifyEncryptedShare(h.group, h.escrow.H, h.commitments, h.pubKeys[i], h.shares[i]))
	}
}

func TestVerifyEncryptedSharesBatch(t *testing.T) {
	h := setup(t, 3, 5)
	results := pvss.VerifyEncryptedShares(h.group, h.escrow.H, h.commitments, h.pubKeys, h.shares)
	for _, ok := range results {
		assert.True(t, ok)
	}
}

func TestRecoverInvariantUnderShareChoice(t *testing.T) {
	h := setup(t, 3, 6)

	recoverFrom := func(indices []int) curve.Point {
		var decShares []*pvss.DecryptedShare
		for _, i := range indices {
			dec, err := pvss.ShareDecrypt(h.group, rand.Reader, h.keyPairs[i], h.shares[i])
			require.NoError(t, err)
			decShares = append(decShares, dec)
		}
		secret, err := pvss.Recover(h.group, decShares)
		require.NoError(t, err)
		return secret
	}

	s1 := recoverFrom([]int{0, 1, 2})
	s2 := recoverFrom([]int{1, 3, 5})
	s3 := recoverFrom([]int{0, 2, 5})

	assert.True(t, s1.Equal(h.escrow.Secret))
	assert.True(t, s1.Equal(s2))
	assert.True(t, s1.Equal(s3))
}

func TestGetValidRecoveryShares(t *testing.T) {
	h := setup(t, 2, 4)

	var triples []pvss.RecoveryTriple
	for i := range h.shares {
		dec, err := pvss.ShareDecrypt(h.group, rand.Reader, h.keyPairs[i], h.shares[i])
		require.NoError(t, err)
		triples = append(triples, pvss.RecoveryTriple{Encrypted: h.shares[i], PublicKey: h.pubKeys[i], Decrypted: dec})
	}
	// Corrupt one decrypted share's proof.
	triples[1].Decrypted = &pvss.DecryptedShare{ShareID: triples[1].Decrypted.ShareID, S: triples[1].Decrypted.S, Proof: h.escrow.Proof}

	valid := pvss.GetValidRecoveryShares(h.group, 2, triples)
	assert.Len(t, valid, 2)
	assert.NotEqual(t, "2", string(valid[1].Decrypted.ShareID))
}

func TestVerifySecretPanicsOnEmptyCommitments(t *testing.T) {
	h := setup(t, 2, 3)
	assert.Panics(t, func() {
		pvss.VerifySecret(h.group, h.escrow.H, nil, h.escrow.Secret, h.escrow.Proof)
	})
}

func TestEndToEndForVariousThresholds(t *testing.T) {
	cases := []struct{ t, n int }{
		{1, 1}, {1, 3}, {2, 3}, {3, 5}, {4, 7},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(formatTC(tc.t, tc.n), func(t *testing.T) {
			h := setup(t, tc.t, tc.n)

			var decShares []*pvss.DecryptedShare
			for i := 0; i < tc.t; i++ {
				dec, err := pvss.ShareDecrypt(h.group, rand.Reader, h.keyPairs[i], h.shares[i])
				require.NoError(t, err)
				decShares = append(decShares, dec)
			}
			secret, err := pvss.Recover(h.group, decShares)
			require.NoError(t, err)
			assert.True(t, secret.Equal(h.escrow.Secret))
			assert.True(t, pvss.VerifySecret(h.group, h.escrow.H, h.commitments, secret, h.escrow.Proof))
		})
	}
}

func formatTC(t, n int) string {
	return "t=" + itoa(t) + ",n=" + itoa(n)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
