// Package scrape implements the SCRAPE-over-DDH variant of PVSS (spec
// §4.5): the same dealer/verifier surface as package pvss, but with n
// per-participant commitments instead of t coefficient commitments, a
// single batched DLEQ proof over all n encrypted shares, and a "perp code"
// check that verifies every share in one group check (O(n) instead of
// O(nt)).
package scrape

import (
	"fmt"
	"io"

	"github.com/luxfi/pvss/pkg/curve"
	"github.com/luxfi/pvss/pkg/dleq"
	"github.com/luxfi/pvss/pkg/party"
	"github.com/luxfi/pvss/pkg/polynomial"
)

// KeyPair mirrors pvss.KeyPair; SCRAPE reuses the same encryption keypair
// shape, kept as a distinct type so this package does not import pvss.
type KeyPair struct {
	Private curve.Scalar
	Public  curve.Point
}

// GenerateKeyPair samples a fresh keypair.
func GenerateKeyPair(group curve.Curve, rand io.Reader) (*KeyPair, error) {
	sk, err := group.RandomScalar(rand)
	if err != nil {
		return nil, fmt.Errorf("scrape: failed to sample private key: %w", err)
	}
	return &KeyPair{Private: sk, Public: curve.PointFromSecret(group, sk)}, nil
}

// Escrow bundles the extra generator, generating polynomial, public secret,
// and escrow proof for one SCRAPE instance. The generating polynomial has
// degree t-1, matching package pvss (spec §9's resolved convention, see
// DESIGN.md).
type Escrow struct {
	Group     curve.Curve
	Threshold int
	N         int

	H      curve.Point
	Poly   *polynomial.Polynomial
	Secret curve.Point
	// C0 is h .* p(0), the commitment the escrow proof binds. SCRAPE's n
	// public commitments are V_i = h .* p(i) for i = 1..n and never include
	// C0 itself, so it is carried here for VerifySecret (spec §4.5).
	C0    curve.Point
	Proof *dleq.Proof
}

// NewEscrow creates a fresh SCRAPE escrow for a t-of-n sharing.
func NewEscrow(group curve.Curve, rand io.Reader, threshold, n int) (*Escrow, error) {
	if threshold < 1 || threshold > n {
		return nil, fmt.Errorf("scrape: threshold must satisfy 1 <= t <= n, got t=%d n=%d", threshold, n)
	}
	poly, err := polynomial.Generate(group, threshold-1, rand)
	if err != nil {
		return nil, fmt.Errorf("scrape: failed to generate polynomial: %w", err)
	}

	r, err := group.RandomScalar(rand)
	if err != nil {
		return nil, fmt.Errorf("scrape: failed to sample extra generator scalar: %w", err)
	}
	h := curve.PointFromSecret(group, r)

	secretScalar := poly.AtZero()
	secret := curve.PointFromSecret(group, secretScalar)
	c0 := h.ScalarMult(secretScalar)

	proof, err := dleq.Prove(group, rand, dleq.Statement{
		G1: group.Generator(), H1: secret,
		G2: h, H2: c0,
	}, secretScalar)
	if err != nil {
		return nil, fmt.Errorf("scrape: failed to build escrow proof: %w", err)
	}

	return &Escrow{
		Group: group, Threshold: threshold, N: n,
		H: h, Poly: poly, Secret: secret, C0: c0, Proof: proof,
	}, nil
}

// Destroy zeroes the escrow's polynomial coefficients (spec §9).
func (e *Escrow) Destroy() {
	e.Poly.Destroy()
}

// Commitment is V_i = h .* s_i, one per participant (n of them, unlike
// package pvss's t coefficient commitments).
type Commitment = curve.Point

// CreateCommitments emits the n participant commitments [V_1, ..., V_n].
func CreateCommitments(e *Escrow) []Commitment {
	out := make([]Commitment, e.N)
	for i := 0; i < e.N; i++ {
		id := party.NewID(i + 1)
		x, _ := id.Scalar(e.Group) // i+1 always parses; Scalar cannot fail here
		si := e.Poly.Evaluate(x)
		out[i] = e.H.ScalarMult(si)
	}
	return out
}

// EncryptedSi is a bare encrypted share point E_i = PK_i .* s_i.
type EncryptedSi = curve.Point

// EncryptedShares holds the n encrypted shares together with the single
// batched DLEQ proof attesting every log_H(V_i) == log_{PK_i}(E_i).
type EncryptedShares struct {
	E     []EncryptedSi
	Proof *dleq.ParallelProofs
}

// SharesCreate computes all n encrypted shares and the single parallel
// proof covering them (spec §4.5's batch proof).
func SharesCreate(group curve.Curve, rand io.Reader, e *Escrow, pubKeys []curve.Point) (*EncryptedShares, error) {
	if len(pubKeys) != e.N {
		return nil, fmt.Errorf("scrape: expected %d public keys, got %d", e.N, len(pubKeys))
	}
	statements := make([]dleq.Statement, e.N)
	witnesses := make([]curve.Scalar, e.N)
	E := make([]EncryptedSi, e.N)
	for i := 0; i < e.N; i++ {
		id := party.NewID(i + 1)
		x, _ := id.Scalar(e.Group)
		si := e.Poly.Evaluate(x)
		vi := e.H.ScalarMult(si)
		ei := pubKeys[i].ScalarMult(si)

		statements[i] = dleq.Statement{G1: e.H, H1: vi, G2: pubKeys[i], H2: ei}
		witnesses[i] = si
		E[i] = ei
	}

	proof, err := dleq.ProveParallel(group, rand, statements, witnesses)
	if err != nil {
		return nil, fmt.Errorf("scrape: failed to build batch proof: %w", err)
	}
	return &EncryptedShares{E: E, Proof: proof}, nil
}

// VerifyEncryptedShares verifies the batched DLEQ proof and then the
// perp-code check (spec §4.5): for a random dual-codeword polynomial m(x)
// of degree n-t-1, Σ V_i .* (v_i * m(i)) must equal the identity, where
// v_i = Π_{j≠i}(i-j)⁻¹. For n == t the dual code is the zero-dimensional
// space and the check is vacuously satisfied (spec §9's degenerate case).
func VerifyEncryptedShares(group curve.Curve, rand io.Reader, h curve.Point, t int, commitments []Commitment, encShares *EncryptedShares, pubKeys []curve.Point) (bool, error) {
	n := len(commitments)
	if len(pubKeys) != n || encShares == nil || len(encShares.E) != n {
		return false, nil
	}

	statements := make([]dleq.Statement, n)
	for i := 0; i < n; i++ {
		statements[i] = dleq.Statement{G1: h, H1: commitments[i], G2: pubKeys[i], H2: encShares.E[i]}
	}
	if !encShares.Proof.VerifyParallel(group, statements) {
		return false, nil
	}

	if n == t {
		return true, nil
	}

	dualDegree := n - t - 1
	m, err := polynomial.Generate(group, dualDegree, rand)
	if err != nil {
		return false, fmt.Errorf("scrape: failed to sample dual-code polynomial: %w", err)
	}

	ids := party.Sequential(n)
	perp := make([]curve.Scalar, n)
	for idx, id := range ids {
		i, _ := id.Int()
		xi, _ := id.Scalar(group)

		vi := group.OneScalar()
		for jdx, jd := range ids {
			if jdx == idx {
				continue
			}
			xj, _ := jd.Scalar(group)
			diff := xi.Sub(xj)
			inv, err := diff.Invert()
			if err != nil {
				return false, fmt.Errorf("scrape: perp check: degenerate participant indices: %w", err)
			}
			vi = vi.Mul(inv)
		}
		mi := m.Evaluate(curve.KeyFromNum(group, uint64(i)))
		perp[idx] = vi.Mul(mi)
	}

	sum := curve.MulAndSum(group, commitments, perp)
	return sum.IsIdentity(), nil
}

// DecryptedShare is (S_i, proof); the caller tracks the associated
// participant out-of-band via the order of the slice it came from (spec §3).
type DecryptedShare struct {
	S     curve.Point
	Proof *dleq.Proof
}

// ShareDecrypt decrypts one participant's share and proves the decryption
// consistent with their public key.
func ShareDecrypt(group curve.Curve, rand io.Reader, kp *KeyPair, ei EncryptedSi) (*DecryptedShare, error) {
	xInv, err := curve.KeyInverse(kp.Private)
	if err != nil {
		return nil, fmt.Errorf("scrape: cannot decrypt with zero private key: %w", err)
	}
	s := ei.ScalarMult(xInv)

	proof, err := dleq.Prove(group, rand, dleq.Statement{
		G1: group.Generator(), H1: kp.Public,
		G2: s, H2: ei,
	}, kp.Private)
	if err != nil {
		return nil, fmt.Errorf("scrape: failed to build decryption proof: %w", err)
	}
	return &DecryptedShare{S: s, Proof: proof}, nil
}

// VerifyDecryptedShare checks a decryption's consistency proof.
func VerifyDecryptedShare(group curve.Curve, pk curve.Point, ei EncryptedSi, dec *DecryptedShare) bool {
	if dec == nil || dec.Proof == nil {
		return false
	}
	return dec.Proof.Verify(group, dleq.Statement{
		G1: group.Generator(), H1: pk,
		G2: dec.S, H2: ei,
	})
}

// IdentifiedDecryptedShare pairs a decrypted share with the share_id
// recovered for it, the output of ReorderDecryptShares.
type IdentifiedDecryptedShare struct {
	ShareID party.ID
	Dec     *DecryptedShare
}

// ReorderDecryptShares looks up each (PK, dec) pair's participant in the
// dealer's participant list to recover its 1-based share_id. It returns
// nil, false if any public key is absent from participants. The order of
// the result matches the input, not participant order (spec §4.5).
func ReorderDecryptShares(participants []curve.Point, pubKeys []curve.Point, decs []*DecryptedShare) ([]IdentifiedDecryptedShare, bool) {
	if len(pubKeys) != len(decs) {
		return nil, false
	}
	out := make([]IdentifiedDecryptedShare, len(decs))
	for i, pk := range pubKeys {
		idx := -1
		for j, cand := range participants {
			if cand.Equal(pk) {
				idx = j
				break
			}
		}
		if idx < 0 {
			return nil, false
		}
		out[i] = IdentifiedDecryptedShare{ShareID: party.NewID(idx + 1), Dec: decs[i]}
	}
	return out, true
}

// Recover interpolates G .* p(0) from decrypted shares tagged with their
// share_id via Lagrange interpolation in the exponent. Same caller
// obligations as pvss.Recover: supply exactly t distinct valid shares.
func Recover(group curve.Curve, shares []IdentifiedDecryptedShare) (curve.Point, error) {
	ids := make(party.IDSlice, len(shares))
	for i, s := range shares {
		ids[i] = s.ShareID
	}
	coeffs, err := polynomial.Lagrange(group, ids)
	if err != nil {
		return nil, fmt.Errorf("scrape: recover: %w", err)
	}

	points := make([]curve.Point, len(shares))
	scalars := make([]curve.Scalar, len(shares))
	for i, s := range shares {
		points[i] = s.Dec.S
		scalars[i] = coeffs[s.ShareID]
	}
	return curve.MulAndSum(group, points, scalars), nil
}

// VerifySecret checks the original escrow proof: that secret and c0 share a
// discrete log with respect to G and h. c0 = h .* p(0) is the escrow's
// C0 (not one of the n per-participant commitments V_i, which commit to
// p(1)..p(n) rather than p(0) — spec §4.5).
func VerifySecret(group curve.Curve, h curve.Point, c0 curve.Point, secret curve.Point, escrowProof *dleq.Proof) bool {
	if c0 == nil {
		panic("scrape: VerifySecret: c0 must not be nil")
	}
	if escrowProof == nil {
		return false
	}
	return escrowProof.Verify(group, dleq.Statement{
		G1: group.Generator(), H1: secret,
		G2: h, H2: c0,
	})
}
