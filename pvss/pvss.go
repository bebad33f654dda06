// Package pvss implements Schoenmakers Publicly Verifiable Secret Sharing
// (spec §4.3): a dealer splits a group-element secret among n parties so
// that any t can reconstruct it, with every step producing a proof any
// third party can verify without learning private information.
//
// The package is purely computational and stateless (spec §5): every
// function is deterministic given its inputs and the randomness it reads,
// and Escrow/Commitment/share values are safe to share across goroutines
// once constructed.
package pvss

import (
	"fmt"
	"io"

	"github.com/luxfi/pvss/pkg/curve"
	"github.com/luxfi/pvss/pkg/dleq"
	"github.com/luxfi/pvss/pkg/party"
	"github.com/luxfi/pvss/pkg/polynomial"
)

// KeyPair is a participant's encryption keypair, PublicKey = G .* PrivateKey.
type KeyPair struct {
	Private curve.Scalar
	Public  curve.Point
}

// GenerateKeyPair samples a fresh keypair.
func GenerateKeyPair(group curve.Curve, rand io.Reader) (*KeyPair, error) {
	sk, err := group.RandomScalar(rand)
	if err != nil {
		return nil, fmt.Errorf("pvss: failed to sample private key: %w", err)
	}
	return &KeyPair{Private: sk, Public: curve.PointFromSecret(group, sk)}, nil
}

// Escrow is the dealer-side bundle produced once per secret: the extra
// generator h, the generating polynomial, the public secret point, and the
// proof that the secret point and the zeroth commitment share a discrete
// log. It is ephemeral: Destroy should be called once commitments and
// shares have been emitted, since the polynomial is key-equivalent
// material (spec §9).
type Escrow struct {
	Group     curve.Curve
	Threshold int

	H      curve.Point // ExtraGen
	Poly   *polynomial.Polynomial
	Secret curve.Point // G .* p(0)
	Proof  *dleq.Proof // log_G(Secret) == log_H(H .* p(0))
}

// NewEscrow creates a fresh escrow for a threshold-t sharing. The
// generating polynomial has degree t-1, so any t evaluations determine
// p(0) (spec §9's resolved convention: PVSS and SCRAPE share the same
// degree-(t-1) convention in this module; see DESIGN.md).
func NewEscrow(group curve.Curve, rand io.Reader, threshold int) (*Escrow, error) {
	if threshold < 1 {
		return nil, fmt.Errorf("pvss: threshold must be >= 1, got %d", threshold)
	}
	poly, err := polynomial.Generate(group, threshold-1, rand)
	if err != nil {
		return nil, fmt.Errorf("pvss: failed to generate polynomial: %w", err)
	}

	r, err := group.RandomScalar(rand)
	if err != nil {
		return nil, fmt.Errorf("pvss: failed to sample extra generator scalar: %w", err)
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
		return nil, fmt.Errorf("pvss: failed to build escrow proof: %w", err)
	}

	return &Escrow{
		Group:     group,
		Threshold: threshold,
		H:         h,
		Poly:      poly,
		Secret:    secret,
		Proof:     proof,
	}, nil
}

// Destroy zeroes the escrow's polynomial coefficients. The secret point and
// commitments remain valid; only the sensitive evaluation material is wiped.
func (e *Escrow) Destroy() {
	e.Poly.Destroy()
}

// Commitment is a public group element binding one coefficient of the
// generating polynomial: C_j = h .* a_j.
type Commitment = curve.Point

// CreateCommitments emits the t coefficient commitments [h.*a0, ..., h.*a(t-1)].
func CreateCommitments(e *Escrow) []Commitment {
	coeffs := e.Poly.Coefficients()
	out := make([]Commitment, len(coeffs))
	for i, a := range coeffs {
		out[i] = e.H.ScalarMult(a)
	}
	return out
}

// EncryptedShare is the triple (share_id, Y_i, proof) of spec §3: Y_i = PK_i
// .* p(i), and the proof attests log_H(X_i) == log_{PK_i}(Y_i) == p(i).
type EncryptedShare struct {
	ShareID party.ID
	Y       curve.Point
	Proof   *dleq.Proof
}

// createXi computes X_i = Σ_j commitments[j] .* i^j = H .* p(i), the
// polynomial commitment evaluated in the exponent at participant i (spec
// §4.4).
func createXi(group curve.Curve, id party.ID, commitments []Commitment) (curve.Point, error) {
	x, err := id.Scalar(group)
	if err != nil {
		return nil, err
	}
	return curve.MulPowerAndSum(group, commitments, x), nil
}

// ShareCreate produces the encrypted share for one participant.
func ShareCreate(group curve.Curve, rand io.Reader, h curve.Point, poly *polynomial.Polynomial, id party.ID, pk curve.Point) (*EncryptedShare, error) {
	x, err := id.Scalar(group)
	if err != nil {
		return nil, err
	}
	si := poly.Evaluate(x)
	y := pk.ScalarMult(si)
	xi := h.ScalarMult(si)

	proof, err := dleq.Prove(group, rand, dleq.Statement{
		G1: h, H1: xi,
		G2: pk, H2: y,
	}, si)
	if err != nil {
		return nil, fmt.Errorf("pvss: failed to build share proof for %s: %w", id, err)
	}
	return &EncryptedShare{ShareID: id, Y: y, Proof: proof}, nil
}

// SharesCreate maps ShareCreate over the 1-based-indexed participant list.
func SharesCreate(group curve.Curve, rand io.Reader, e *Escrow, pubKeys []curve.Point) ([]*EncryptedShare, error) {
	out := make([]*EncryptedShare, len(pubKeys))
	for i, pk := range pubKeys {
		id := party.NewID(i + 1)
		share, err := ShareCreate(group, rand, e.H, e.Poly, id, pk)
		if err != nil {
			return nil, err
		}
		out[i] = share
	}
	return out, nil
}

// VerifyEncryptedShare checks a share's DLEQ proof against the recomputed
// commitment-polynomial evaluation at its index.
func VerifyEncryptedShare(group curve.Curve, h curve.Point, commitments []Commitment, pk curve.Point, share *EncryptedShare) bool {
	if share == nil || share.Proof == nil {
		return false
	}
	xi, err := createXi(group, share.ShareID, commitments)
	if err != nil {
		return false
	}
	return share.Proof.Verify(group, dleq.Statement{
		G1: h, H1: xi,
		G2: pk, H2: share.Y,
	})
}

// DecryptedShare is (share_id, S_i, proof): S_i = Y_i .* PK_i_privatekey⁻¹,
// and the proof attests log_G(PK_i) == log_{S_i}(Y_i).
type DecryptedShare struct {
	ShareID party.ID
	S       curve.Point
	Proof   *dleq.Proof
}

// ShareDecrypt decrypts one encrypted share. Verification of
// the inbound share is the caller's responsibility via VerifyEncryptedShare;
// this function only produces the decryption and its consistency proof.
func ShareDecrypt(group curve.Curve, rand io.Reader, kp *KeyPair, share *EncryptedShare) (*DecryptedShare, error) {
	xInv, err := curve.KeyInverse(kp.Private)
	if err != nil {
		return nil, fmt.Errorf("pvss: cannot decrypt with zero private key: %w", err)
	}
	s := share.Y.ScalarMult(xInv)

	proof, err := dleq.Prove(group, rand, dleq.Statement{
		G1: group.Generator(), H1: kp.Public,
		G2: s, H2: share.Y,
	}, kp.Private)
	if err != nil {
		return nil, fmt.Errorf("pvss: failed to build decryption proof for %s: %w", share.ShareID, err)
	}
	return &DecryptedShare{ShareID: share.ShareID, S: s, Proof: proof}, nil
}

// VerifyDecryptedShare checks a decryption's consistency proof against the
// participant's public key and encrypted share.
func VerifyDecryptedShare(group curve.Curve, pk curve.Point, enc *EncryptedShare, dec *DecryptedShare) bool {
	if dec == nil || dec.Proof == nil {
		return false
	}
	return dec.Proof.Verify(group, dleq.Statement{
		G1: group.Generator(), H1: pk,
		G2: dec.S, H2: enc.Y,
	})
}

// RecoveryTriple bundles one participant's encrypted share, public key, and
// (claimed) decryption, the unit GetValidRecoveryShares filters.
type RecoveryTriple struct {
	Encrypted *EncryptedShare
	PublicKey curve.Point
	Decrypted *DecryptedShare
}

// GetValidRecoveryShares filters triples by VerifyDecryptedShare and returns
// the first t that verify. Fewer than t may be returned if insufficient
// valid shares exist; callers must check the returned length.
func GetValidRecoveryShares(group curve.Curve, t int, triples []RecoveryTriple) []RecoveryTriple {
	var out []RecoveryTriple
	for _, tr := range triples {
		if len(out) == t {
			break
		}
		if VerifyDecryptedShare(group, tr.PublicKey, tr.Encrypted, tr.Decrypted) {
			out = append(out, tr)
		}
	}
	return out
}

// Recover interpolates G .* p(0) from the given decrypted shares via
// Lagrange interpolation in the exponent. The caller is responsible for
// supplying exactly t distinct, valid shares; duplicate share_ids produce a
// division by zero, and fewer than t shares silently yields an incorrect
// point rather than an error (spec §4.3 — use VerifySecret to confirm
// correctness).
func Recover(group curve.Curve, shares []*DecryptedShare) (curve.Point, error) {
	ids := make(party.IDSlice, len(shares))
	for i, s := range shares {
		ids[i] = s.ShareID
	}
	coeffs, err := polynomial.Lagrange(group, ids)
	if err != nil {
		return nil, fmt.Errorf("pvss: recover: %w", err)
	}

	points := make([]curve.Point, len(shares))
	scalars := make([]curve.Scalar, len(shares))
	for i, s := range shares {
		points[i] = s.S
		scalars[i] = coeffs[s.ShareID]
	}
	return curve.MulAndSum(group, points, scalars), nil
}

// VerifySecret checks the original escrow proof: that the recovered secret
// S and the zeroth commitment C_0 share a discrete log with respect to G
// and h. commitments must be non-empty (spec §9: an empty commitment list
// is a precondition violation).
func VerifySecret(group curve.Curve, h curve.Point, commitments []Commitment, secret curve.Point, escrowProof *dleq.Proof) bool {
	if len(commitments) == 0 {
		panic("pvss: VerifySecret: commitments must not be empty")
	}
	if escrowProof == nil {
		return false
	}
	return escrowProof.Verify(group, dleq.Statement{
		G1: group.Generator(), H1: secret,
		G2: h, H2: commitments[0],
	})
}
