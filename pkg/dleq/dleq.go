// Package dleq implements non-interactive Chaum-Pedersen discrete-log
// equality proofs (spec §4.2), in both a single-statement form and a
// batched "parallel" form sharing one Fiat-Shamir challenge across many
// statements. Verification never errors: invalid proofs are data, not
// programmer errors (spec §7).
package dleq

import (
	"fmt"
	"io"

	"github.com/luxfi/pvss/pkg/curve"
)

// Statement is the four group elements (g1, h1, g2, h2) of a DLEQ claim:
// knowledge of α such that h1 = g1 .* α and h2 = g2 .* α.
type Statement struct {
	G1, H1, G2, H2 curve.Point
}

// Proof is a non-interactive Chaum-Pedersen proof (c, z).
type Proof struct {
	C curve.Scalar
	Z curve.Scalar
}

// Prove produces a DLEQ proof that witness satisfies the given statement.
func Prove(group curve.Curve, rand io.Reader, st Statement, witness curve.Scalar) (*Proof, error) {
	w, err := group.RandomScalar(rand)
	if err != nil {
		return nil, fmt.Errorf("dleq: failed to sample commitment scalar: %w", err)
	}
	a1 := st.G1.ScalarMult(w)
	a2 := st.G2.ScalarMult(w)
	c := group.HashToScalar(a1, a2)
	z := w.Add(c.Mul(witness))
	return &Proof{C: c, Z: z}, nil
}

// Verify checks the proof against the statement. It never returns an
// error: a malformed or mismatched proof simply fails to verify.
func (p *Proof) Verify(group curve.Curve, st Statement) bool {
	if p == nil || p.C == nil || p.Z == nil {
		return false
	}
	a1 := st.G1.ScalarMult(p.Z).Add(st.H1.ScalarMult(p.C).ScalarMult(negOne(group)))
	a2 := st.G2.ScalarMult(p.Z).Add(st.H2.ScalarMult(p.C).ScalarMult(negOne(group)))
	c := group.HashToScalar(a1, a2)
	return c.Equal(p.C)
}

// negOne returns -1 as a scalar, used to turn an add-only Point.Add into
// the subtraction a1' = g1.*z - h1.*c demanded by the verification equation.
func negOne(group curve.Curve) curve.Scalar {
	return group.ZeroScalar().Sub(group.OneScalar())
}

// ParallelProofs is a single batched DLEQ proof over m statements of
// identical shape but distinct points and witnesses, sharing one challenge
// (spec §4.2's ParallelProofs). This is the basis of SCRAPE's O(n)
// share-batch proof.
type ParallelProofs struct {
	C curve.Scalar
	Z []curve.Scalar
}

// ProveParallel emits one proof covering every (statement, witness) pair.
// len(statements) must equal len(witnesses).
func ProveParallel(group curve.Curve, rand io.Reader, statements []Statement, witnesses []curve.Scalar) (*ParallelProofs, error) {
	if len(statements) != len(witnesses) {
		return nil, fmt.Errorf("dleq: parallel: %d statements but %d witnesses", len(statements), len(witnesses))
	}
	m := len(statements)
	w := make([]curve.Scalar, m)
	a1 := make([]curve.Point, m)
	a2 := make([]curve.Point, m)
	transcript := make([]curve.Point, 0, 2*m)
	for i, st := range statements {
		wi, err := group.RandomScalar(rand)
		if err != nil {
			return nil, fmt.Errorf("dleq: parallel: failed to sample commitment scalar %d: %w", i, err)
		}
		w[i] = wi
		a1[i] = st.G1.ScalarMult(wi)
		a2[i] = st.G2.ScalarMult(wi)
		transcript = append(transcript, a1[i], a2[i])
	}

	c := group.HashToScalar(transcript...)

	z := make([]curve.Scalar, m)
	for i := range statements {
		z[i] = w[i].Add(c.Mul(witnesses[i]))
	}
	return &ParallelProofs{C: c, Z: z}, nil
}

// VerifyParallel recomputes every commitment under the shared challenge and
// rehashes, returning false on any mismatch or a length-mismatched input
// (spec §4.2's failure-mode rule: never throw).
func (p *ParallelProofs) VerifyParallel(group curve.Curve, statements []Statement) bool {
	if p == nil || p.C == nil {
		return false
	}
	if len(statements) != len(p.Z) {
		return false
	}
	transcript := make([]curve.Point, 0, 2*len(statements))
	for i, st := range statements {
		if p.Z[i] == nil {
			return false
		}
		a1 := st.G1.ScalarMult(p.Z[i]).Add(st.H1.ScalarMult(p.C).ScalarMult(negOne(group)))
		a2 := st.G2.ScalarMult(p.Z[i]).Add(st.H2.ScalarMult(p.C).ScalarMult(negOne(group)))
		transcript = append(transcript, a1, a2)
	}
	c := group.HashToScalar(transcript...)
	return c.Equal(p.C)
}
